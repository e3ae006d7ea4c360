package services

import (
	"context"

	"bookswap/internal/domain"
	"bookswap/internal/repos"
	"bookswap/internal/validate"
)

type RatingService struct {
	Books *repos.BookRepo
}

func NewRatingService(books *repos.BookRepo) *RatingService {
	return &RatingService{Books: books}
}

// Apply folds one rating in [1,5] into a book's stored aggregate and
// returns the updated aggregate. The update works from the stored average
// and count, never from a rating history, and is atomic, so concurrent
// ratings on the same book are all counted.
func (s *RatingService) Apply(ctx context.Context, bookID string, value float64) (domain.RatingAggregate, error) {
	if !validate.Rating(value) {
		return domain.RatingAggregate{}, &domain.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	id, ok := validate.ID(bookID)
	if !ok {
		return domain.RatingAggregate{}, &domain.ValidationError{Field: "bookId", Reason: "required"}
	}
	return s.Books.ApplyRating(ctx, id, value)
}
