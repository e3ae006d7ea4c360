package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bookswap/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// Insert stores a new user, assigning id and created_at. The unique index
// on LOWER(username) is the single enforcement point for username
// uniqueness; a violation surfaces as a ValidationError.
func (r *UserRepo) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO users(id,username,email,location,password_hash,created_at)
	  VALUES(?,?,?,?,?,?)
	`, u.ID, u.Username, u.Email, u.Location, u.Hash, u.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.User{}, &domain.ValidationError{Field: "username", Reason: "already taken"}
		}
		return domain.User{}, storeErr("users.insert", err)
	}
	return u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `
	  SELECT id,username,email,location,password_hash,created_at
	  FROM users WHERE id=?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "user", ID: id}
	}
	if err != nil {
		return nil, storeErr("users.get", err)
	}
	return &u, nil
}

func (r *UserRepo) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `
	  SELECT id,username,email,location,password_hash,created_at
	  FROM users WHERE LOWER(username)=LOWER(?)
	`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "user", ID: username}
	}
	if err != nil {
		return nil, storeErr("users.get", err)
	}
	return &u, nil
}

// Exists is the creation-time owner check. It is the only place the
// book→user reference is verified; afterwards the reference is weak.
func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE id=?`, id); err != nil {
		return false, storeErr("users.exists", err)
	}
	return n > 0, nil
}
