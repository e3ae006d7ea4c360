// Console gallery report: prints what the public gallery would show, with
// the same display fallbacks the web layer uses. Handy for checking a
// freshly seeded catalog.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bookswap/internal/config"
	"bookswap/internal/domain"
	"bookswap/internal/repos"
	"bookswap/internal/services"
)

func main() {
	cfg := config.Load()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	catalog := services.NewCatalogService(repos.NewBookRepo(db), repos.NewUserRepo(db))

	op := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), cfg.QueryTimeout)
	}

	ctx, cancel := op()
	total, err := catalog.CountBooks(ctx)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Total books in database: %d\n", total)
	if total == 0 {
		fmt.Println("No books found. Run cmd/seed first.")
		return
	}

	ctx, cancel = op()
	listings, err := catalog.ListBooks(ctx, services.DefaultGalleryLimit)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nMost recent listings (first %d):\n", services.DefaultGalleryLimit)
	fmt.Println(strings.Repeat("-", 80))
	for i, l := range listings {
		fmt.Printf("%d. %q by %s\n", i+1, l.Title, orNA(l.Author))
		fmt.Printf("   Genre: %s | Type: %s | Condition: %s\n",
			orNA(l.Genre), orNA(string(l.Type)), orNA(l.Condition))
		fmt.Printf("   Image: %s\n", orElse(l.Image, "No image"))
		owner := "No owner"
		if l.Owner != nil {
			owner = l.Owner.Username
		}
		fmt.Printf("   Owner: %s\n", owner)
		fmt.Printf("   Rating: %.1f/5 (%d ratings)\n\n", displayRating(l.Book), l.TotalRatings)
	}

	ctx, cancel = op()
	uploaded, err := catalog.ListUploadedImages(ctx, 5)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nBooks with uploaded images (%d shown):\n", len(uploaded))
	fmt.Println(strings.Repeat("-", 80))
	for i, l := range uploaded {
		fmt.Printf("%d. %q by %s\n", i+1, l.Title, orNA(l.Author))
		fmt.Printf("   Image: %s\n", l.Image)
		fmt.Printf("   Genre: %s | Type: %s\n\n", orNA(l.Genre), l.Type)
	}

	ctx, cancel = op()
	genres, err := catalog.CountByGenre(ctx)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\nBooks by genre:")
	fmt.Println(strings.Repeat("-", 30))
	for _, g := range genres {
		fmt.Printf("   %-15s : %d books\n", g.Genre, g.Count)
	}
}

// displayRating applies the display rule: the average is only defined when
// ratings exist, otherwise it shows as 0.0.
func displayRating(b domain.Book) float64 {
	if b.TotalRatings == 0 {
		return 0.0
	}
	return b.AverageRating
}

func orNA(s string) string { return orElse(s, "N/A") }

func orElse(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
