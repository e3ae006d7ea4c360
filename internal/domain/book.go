package domain

// BookType is the exchange mode of a listing. Exactly two values exist.
type BookType string

const (
	TypeDonate BookType = "Donate"
	TypeSwap   BookType = "Swap"
)

// UploadPrefix marks images hosted on the platform's own storage,
// as opposed to externally linked URLs. Matched case-insensitively.
const UploadPrefix = "/uploads/"

type Book struct {
	ID            string   `db:"id"`
	Title         string   `db:"title"`
	Author        string   `db:"author"`
	Genre         string   `db:"genre"` // open vocabulary; "" renders as Unknown
	Condition     string   `db:"condition"`
	Type          BookType `db:"type"`
	Location      string   `db:"location"`
	Contact       string   `db:"contact"`
	OwnerID       string   `db:"owner_id"` // weak reference; dangling is legal
	Description   string   `db:"description"`
	AverageRating float64  `db:"average_rating"` // full precision; round at display only
	TotalRatings  int      `db:"total_ratings"`
	PublishYear   int      `db:"publish_year"` // any int; negative means before the epoch
	Image         string   `db:"image"`        // "" renders as No image
	CreatedAt     string   `db:"created_at"`   // RFC3339Nano, store-assigned
}

// OwnerSummary is the partial owner projection attached to gallery rows.
// It never carries credential material.
type OwnerSummary struct {
	Username string
	Location string
}

// Listing is a Book enriched for display. Owner is nil when the
// reference dangles.
type Listing struct {
	Book
	Owner *OwnerSummary
}

// RatingAggregate is the derived summary kept per book.
type RatingAggregate struct {
	Average float64
	Count   int
}
