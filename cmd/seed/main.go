// One-shot demo seeder: ensures a sample user exists, clears the catalog
// and loads twelve sample listings through the privileged bulk-load path.
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"bookswap/internal/config"
	"bookswap/internal/domain"
	applog "bookswap/internal/log"
	"bookswap/internal/repos"
	"bookswap/internal/services"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(db)
	bookRepo := repos.NewBookRepo(db)
	accounts := services.NewAccountService(userRepo)
	admin := services.NewAdminService(bookRepo)

	op := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), cfg.QueryTimeout)
	}

	// Ensure the sample user exists before attributing listings to it.
	ctx, cancel := op()
	owner, err := accounts.ByUsername(ctx, "sampleuser")
	cancel()
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		ctx, cancel = op()
		created, cerr := accounts.Create(ctx, services.NewUser{
			Username: "sampleuser",
			Email:    "sample@bookswap.com",
			Location: "New York",
			Password: "sample123",
		})
		cancel()
		if cerr != nil {
			applog.Error("seed.user.create", cerr, nil)
			os.Exit(1)
		}
		owner = &created
		applog.Info("seed.user.created", map[string]any{"username": owner.Username})
	} else if err != nil {
		applog.Error("seed.user.lookup", err, nil)
		os.Exit(1)
	}

	ctx, cancel = op()
	cleared, err := admin.ClearBooks(ctx)
	cancel()
	if err != nil {
		applog.Error("seed.books.clear", err, nil)
		os.Exit(1)
	}
	applog.Audit("seed.books.cleared", map[string]any{"removed": cleared})

	for _, b := range sampleBooks(owner.ID) {
		ctx, cancel = op()
		book, err := admin.ImportBook(ctx, b)
		cancel()
		if err != nil {
			applog.Error("seed.book.import", err, map[string]any{"title": b.Title})
			os.Exit(1)
		}
		applog.Info("seed.book.added", map[string]any{"title": book.Title, "author": book.Author})
	}

	ctx, cancel = op()
	total, err := bookRepo.CountAll(ctx)
	cancel()
	if err != nil {
		applog.Error("seed.books.count", err, nil)
		os.Exit(1)
	}
	applog.Info("seed.done", map[string]any{"total_books": total})
}

func sampleBooks(ownerID string) []services.SeedBook {
	mk := func(title, author, genre, condition, typ, location, description string,
		avg float64, total, year int) services.SeedBook {
		return services.SeedBook{
			NewBook: services.NewBook{
				Title:       title,
				Author:      author,
				Genre:       genre,
				Condition:   condition,
				Type:        typ,
				Location:    location,
				Contact:     "sample@bookswap.com",
				OwnerID:     ownerID,
				Description: description,
				PublishYear: year,
			},
			AverageRating: avg,
			TotalRatings:  total,
		}
	}

	return []services.SeedBook{
		mk("The Great Gatsby", "F. Scott Fitzgerald", "Fiction", "Good", "Donate", "New York, NY",
			"A classic American novel about the Jazz Age and the American Dream.", 4.2, 15, 1925),
		mk("To Kill a Mockingbird", "Harper Lee", "Fiction", "New", "Swap", "Brooklyn, NY",
			"A gripping tale of racial injustice and childhood innocence.", 4.5, 23, 1960),
		mk("1984", "George Orwell", "Fiction", "Used", "Donate", "Manhattan, NY",
			"A dystopian social science fiction novel and cautionary tale.", 4.7, 31, 1949),
		mk("Pride and Prejudice", "Jane Austen", "Romance", "Good", "Swap", "Queens, NY",
			"A romantic novel of manners written by Jane Austen.", 4.3, 18, 1813),
		mk("The Catcher in the Rye", "J.D. Salinger", "Fiction", "Fair", "Donate", "Bronx, NY",
			"A controversial novel originally published for adults.", 3.8, 12, 1951),
		mk("A Brief History of Time", "Stephen Hawking", "Science", "New", "Swap", "Staten Island, NY",
			"A popular science book on cosmology by Stephen Hawking.", 4.1, 9, 1988),
		mk("The Alchemist", "Paulo Coelho", "Self-help", "Good", "Donate", "Long Island, NY",
			"A philosophical book about following your dreams.", 4.0, 27, 1988),
		mk("Sapiens", "Yuval Noah Harari", "History", "New", "Swap", "Buffalo, NY",
			"A brief history of humankind exploring human evolution.", 4.4, 21, 2011),
		mk("The Da Vinci Code", "Dan Brown", "Mystery", "Used", "Donate", "Albany, NY",
			"A mystery thriller novel exploring art, history, and religion.", 3.9, 16, 2003),
		mk("Harry Potter and the Sorcerer's Stone", "J.K. Rowling", "Fantasy", "Good", "Swap", "Rochester, NY",
			"The first book in the Harry Potter series.", 4.6, 42, 1997),
		mk("Atomic Habits", "James Clear", "Self-help", "New", "Donate", "Syracuse, NY",
			"A practical guide to building good habits and breaking bad ones.", 4.5, 19, 2018),
		// 5th century BC
		mk("The Art of War", "Sun Tzu", "Philosophy", "Good", "Swap", "Ithaca, NY",
			"An ancient Chinese military treatise and philosophy.", 4.2, 14, -500),
	}
}
