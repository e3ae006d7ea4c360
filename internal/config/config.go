package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBDSN        string
	LogFile      string
	QueryTimeout time.Duration
}

func Load() Config {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "bookswap.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./bookswap.log"
	}
	timeout := 5000 * time.Millisecond
	if ms := os.Getenv("QUERY_TIMEOUT_MS"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Millisecond
		}
	}

	cfg := Config{DBDSN: dsn, LogFile: logFile, QueryTimeout: timeout}
	log.Printf("[config] DB_DSN=%s LOG_FILE=%s QUERY_TIMEOUT=%s", cfg.DBDSN, cfg.LogFile, cfg.QueryTimeout)
	return cfg
}
