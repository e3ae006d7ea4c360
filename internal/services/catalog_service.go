package services

import (
	"context"

	"bookswap/internal/domain"
	"bookswap/internal/repos"
	"bookswap/internal/validate"
)

// DefaultGalleryLimit is what the gallery collaborators ask for when the
// caller does not say otherwise.
const DefaultGalleryLimit = 10

type CatalogService struct {
	Books *repos.BookRepo
	Users *repos.UserRepo
}

func NewCatalogService(books *repos.BookRepo, users *repos.UserRepo) *CatalogService {
	return &CatalogService{Books: books, Users: users}
}

// NewBook is the caller-supplied portion of a listing. Id, timestamps and
// rating aggregates are store-assigned.
type NewBook struct {
	Title       string
	Author      string
	Genre       string
	Condition   string
	Type        string
	Location    string
	Contact     string
	OwnerID     string
	Description string
	PublishYear int
	Image       string
}

// Create validates and persists a new listing with zeroed rating
// aggregates. The owner must exist now; the stored reference stays weak
// afterwards.
func (s *CatalogService) Create(ctx context.Context, in NewBook) (domain.Book, error) {
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
	ownerID, ok := validate.ID(in.OwnerID)
	if !ok {
		return domain.Book{}, &domain.ValidationError{Field: "ownerRef", Reason: "required"}
	}
	exists, err := s.Users.Exists(ctx, ownerID)
	if err != nil {
		return domain.Book{}, err
	}
	if !exists {
		return domain.Book{}, &domain.NotFoundError{Entity: "user", ID: ownerID}
	}

	return s.Books.Insert(ctx, domain.Book{
		Title:       title,
		Author:      author,
		Genre:       in.Genre,
		Condition:   in.Condition,
		Type:        domain.BookType(typ),
		Location:    in.Location,
		Contact:     in.Contact,
		OwnerID:     ownerID,
		Description: in.Description,
		PublishYear: in.PublishYear,
		Image:       in.Image,
	})
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.Book, error) {
	return s.Books.Get(ctx, id)
}

// ListBooks returns the newest listings first, each with its owner
// projection. A dangling owner reference degrades to a nil projection,
// never to an error.
func (s *CatalogService) ListBooks(ctx context.Context, limit int) ([]domain.Listing, error) {
	return s.Books.ListRecent(ctx, limit)
}

// ListUploadedImages returns only listings whose image is hosted on the
// platform's upload path.
func (s *CatalogService) ListUploadedImages(ctx context.Context, limit int) ([]domain.Listing, error) {
	return s.Books.ListUploaded(ctx, limit)
}

// CountByGenre tallies the whole catalog by genre; missing genres land in
// the "Unknown" bucket. The counts always sum to CountBooks.
func (s *CatalogService) CountByGenre(ctx context.Context) ([]repos.GenreCount, error) {
	return s.Books.CountByGenre(ctx)
}

func (s *CatalogService) CountBooks(ctx context.Context) (int, error) {
	return s.Books.CountAll(ctx)
}
