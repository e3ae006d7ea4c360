package services

import (
	"context"

	"bookswap/internal/domain"
	"bookswap/internal/repos"
	"bookswap/internal/validate"
)

// AdminService is the privileged bulk-load path used by the bootstrap
// collaborator. Unlike CatalogService.Create it accepts pre-filled rating
// aggregates, so demo data can carry rating history ordinary callers
// cannot fabricate.
type AdminService struct {
	Books *repos.BookRepo
}

func NewAdminService(books *repos.BookRepo) *AdminService {
	return &AdminService{Books: books}
}

// SeedBook is a NewBook plus trusted aggregate values.
type SeedBook struct {
	NewBook
	AverageRating float64
	TotalRatings  int
}

// ImportBook persists a listing with its aggregates as given. Type is
// still validated even on this path; owner existence is not checked,
// matching the trust placed in seed data.
func (s *AdminService) ImportBook(ctx context.Context, in SeedBook) (domain.Book, error) {
	title, ok := validate.Title(in.Title)
	if !ok {
		return domain.Book{}, &domain.ValidationError{Field: "title", Reason: "required"}
	}
	author, ok := validate.Title(in.Author)
	if !ok {
		return domain.Book{}, &domain.ValidationError{Field: "author", Reason: "required"}
	}
	typ, ok := validate.BookType(in.Type)
	if !ok {
		return domain.Book{}, &domain.ValidationError{Field: "type", Reason: "must be Donate or Swap"}
	}
	if in.TotalRatings < 0 {
		return domain.Book{}, &domain.ValidationError{Field: "totalRatings", Reason: "must not be negative"}
	}

	return s.Books.Insert(ctx, domain.Book{
		Title:         title,
		Author:        author,
		Genre:         in.Genre,
		Condition:     in.Condition,
		Type:          domain.BookType(typ),
		Location:      in.Location,
		Contact:       in.Contact,
		OwnerID:       in.OwnerID,
		Description:   in.Description,
		AverageRating: in.AverageRating,
		TotalRatings:  in.TotalRatings,
		PublishYear:   in.PublishYear,
		Image:         in.Image,
	})
}

// ClearBooks deletes every listing. Explicit and irreversible; meant only
// for reseeding demo catalogs.
func (s *AdminService) ClearBooks(ctx context.Context) (int64, error) {
	return s.Books.DeleteAll(ctx)
}
