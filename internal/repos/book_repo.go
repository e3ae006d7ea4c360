package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bookswap/internal/domain"
)

type BookRepo struct{ db *sqlx.DB }

func NewBookRepo(db *sqlx.DB) *BookRepo { return &BookRepo{db: db} }

// listingRow carries a book row plus the COALESCE'd owner projection from
// the LEFT JOIN. Empty owner_username means the reference dangles.
type listingRow struct {
	domain.Book
	OwnerUsername string `db:"owner_username"`
	OwnerLocation string `db:"owner_location"`
}

const listingCols = `
  b.id, b.title, b.author, b.genre, b.condition, b.type,
  b.location, b.contact, b.owner_id, b.description,
  b.average_rating, b.total_ratings, b.publish_year, b.image, b.created_at,
  COALESCE(u.username,'') AS owner_username,
  COALESCE(u.location,'') AS owner_location`

// Insert stores a new book, assigning id and created_at. Rating aggregates
// pass through as given; the service layer decides whether they are zeroed
// (normal creation) or pre-filled (privileged bulk load).
func (r *BookRepo) Insert(ctx context.Context, b domain.Book) (domain.Book, error) {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO books(
	    id, title, author, genre, condition, type, location, contact,
	    owner_id, description, average_rating, total_ratings, publish_year,
	    image, created_at
	  ) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, b.ID, b.Title, b.Author, b.Genre, b.Condition, string(b.Type),
		b.Location, b.Contact, b.OwnerID, b.Description,
		b.AverageRating, b.TotalRatings, b.PublishYear, b.Image, b.CreatedAt)
	if err != nil {
		return domain.Book{}, storeErr("books.insert", err)
	}
	return b, nil
}

func (r *BookRepo) Get(ctx context.Context, id string) (domain.Book, error) {
	var b domain.Book
	err := r.db.GetContext(ctx, &b, `
	  SELECT id, title, author, genre, condition, type, location, contact,
	         owner_id, description, average_rating, total_ratings,
	         publish_year, image, created_at
	  FROM books WHERE id=?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Book{}, &domain.NotFoundError{Entity: "book", ID: id}
	}
	if err != nil {
		return domain.Book{}, storeErr("books.get", err)
	}
	return b, nil
}

// ListRecent returns listings newest first, ties broken so the latest
// insert leads. limit <= 0 returns everything.
func (r *BookRepo) ListRecent(ctx context.Context, limit int) ([]domain.Listing, error) {
	var rows []listingRow
	err := r.db.SelectContext(ctx, &rows, `
	  SELECT `+listingCols+`
	  FROM books b
	  LEFT JOIN users u ON u.id = b.owner_id
	  ORDER BY b.created_at DESC, b.rowid DESC
	  LIMIT ?
	`, limitArg(limit))
	if err != nil {
		return nil, storeErr("books.list", err)
	}
	return toListings(rows), nil
}

// ListUploaded returns listings whose image lives under the platform's
// upload path, matched case-insensitively. Same order and limit contract
// as ListRecent.
func (r *BookRepo) ListUploaded(ctx context.Context, limit int) ([]domain.Listing, error) {
	var rows []listingRow
	err := r.db.SelectContext(ctx, &rows, `
	  SELECT `+listingCols+`
	  FROM books b
	  LEFT JOIN users u ON u.id = b.owner_id
	  WHERE b.image <> '' AND LOWER(b.image) LIKE ? || '%'
	  ORDER BY b.created_at DESC, b.rowid DESC
	  LIMIT ?
	`, domain.UploadPrefix, limitArg(limit))
	if err != nil {
		return nil, storeErr("books.list_uploaded", err)
	}
	return toListings(rows), nil
}

type GenreCount struct {
	Genre string `db:"genre"`
	Count int    `db:"count"`
}

// CountByGenre tallies books per genre, bucketing missing genres under
// "Unknown". Ordered by count descending, then genre ascending for
// determinism.
func (r *BookRepo) CountByGenre(ctx context.Context) ([]GenreCount, error) {
	var out []GenreCount
	err := r.db.SelectContext(ctx, &out, `
	  SELECT CASE WHEN genre = '' THEN 'Unknown' ELSE genre END AS genre,
	         COUNT(*) AS count
	  FROM books
	  GROUP BY 1
	  ORDER BY count DESC, genre ASC
	`)
	if err != nil {
		return nil, storeErr("books.count_by_genre", err)
	}
	return out, nil
}

func (r *BookRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM books`); err != nil {
		return 0, storeErr("books.count", err)
	}
	return n, nil
}

// ApplyRating folds one rating into the stored aggregate in a single
// conditional UPDATE, so concurrent ratings on the same book are both
// counted. RETURNING makes the update and the readback one statement.
func (r *BookRepo) ApplyRating(ctx context.Context, id string, value float64) (domain.RatingAggregate, error) {
	var agg domain.RatingAggregate
	err := r.db.QueryRowxContext(ctx, `
	  UPDATE books
	  SET average_rating = (average_rating * total_ratings + ?) / (total_ratings + 1),
	      total_ratings  = total_ratings + 1
	  WHERE id = ?
	  RETURNING average_rating, total_ratings
	`, value, id).Scan(&agg.Average, &agg.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RatingAggregate{}, &domain.NotFoundError{Entity: "book", ID: id}
	}
	if err != nil {
		return domain.RatingAggregate{}, storeErr("books.apply_rating", err)
	}
	return agg, nil
}

// DeleteAll wipes the catalog. Destructive and irreversible; only the
// bootstrap collaborator calls this before reseeding.
func (r *BookRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books`)
	if err != nil {
		return 0, storeErr("books.delete_all", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// SQLite treats a negative LIMIT as unbounded.
func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func toListings(rows []listingRow) []domain.Listing {
	out := make([]domain.Listing, 0, len(rows))
	for _, row := range rows {
		l := domain.Listing{Book: row.Book}
		if row.OwnerUsername != "" {
			l.Owner = &domain.OwnerSummary{Username: row.OwnerUsername, Location: row.OwnerLocation}
		}
		out = append(out, l)
	}
	return out
}
