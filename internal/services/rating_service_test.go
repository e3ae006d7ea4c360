package services_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"bookswap/internal/domain"
	"bookswap/internal/repos"
	"bookswap/internal/services"
)

func mkBook(t *testing.T, svc *services.CatalogService, ownerID string) domain.Book {
	t.Helper()
	b, err := svc.Create(context.Background(), services.NewBook{
		Title: "The Alchemist", Author: "Paulo Coelho", Type: "Donate", OwnerID: ownerID,
	})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRatingService_Apply(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	owner := mkOwner(t, db, "sampleuser")
	catalog := services.NewCatalogService(repos.NewBookRepo(db), repos.NewUserRepo(db))
	ratings := services.NewRatingService(repos.NewBookRepo(db))

	book := mkBook(t, catalog, owner.ID)

	agg, err := ratings.Apply(ctx, book.ID, 4)
	if err != nil {
		t.Fatal(err)
	}
	if agg.Count != 1 || agg.Average != 4 {
		t.Fatalf("after one rating want (4.0, 1), got %+v", agg)
	}

	agg, err = ratings.Apply(ctx, book.ID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if agg.Count != 2 || math.Abs(agg.Average-4.5) > 1e-9 {
		t.Fatalf("after [4,5] want (4.5, 2), got %+v", agg)
	}
}

func TestRatingService_RunningMean(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	owner := mkOwner(t, db, "sampleuser")
	catalog := services.NewCatalogService(repos.NewBookRepo(db), repos.NewUserRepo(db))
	ratings := services.NewRatingService(repos.NewBookRepo(db))

	book := mkBook(t, catalog, owner.ID)

	values := []float64{1, 5, 3.5, 2.25, 4, 4, 1.1, 5}
	sum := 0.0
	for _, v := range values {
		sum += v
		agg, err := ratings.Apply(ctx, book.ID, v)
		if err != nil {
			t.Fatal(err)
		}
		want := sum / float64(agg.Count)
		if math.Abs(agg.Average-want) > 1e-9 {
			t.Fatalf("running mean drifted: want %v, got %v", want, agg.Average)
		}
	}

	got, err := catalog.Get(ctx, book.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalRatings != len(values) {
		t.Fatalf("want %d ratings counted, got %d", len(values), got.TotalRatings)
	}
}

func TestRatingService_Validation(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	ratings := services.NewRatingService(repos.NewBookRepo(db))

	for _, v := range []float64{0, 0.99, 5.01, -3, 100} {
		_, err := ratings.Apply(ctx, "whatever", v)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("value %v: want ValidationError, got %v", v, err)
		}
	}

	_, err := ratings.Apply(ctx, "no-such-book", 3)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError for unknown book, got %v", err)
	}
}

func TestRatingService_ConcurrentNoLostUpdate(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	owner := mkOwner(t, db, "sampleuser")
	catalog := services.NewCatalogService(repos.NewBookRepo(db), repos.NewUserRepo(db))
	ratings := services.NewRatingService(repos.NewBookRepo(db))

	book := mkBook(t, catalog, owner.ID)

	const raters = 25
	var wg sync.WaitGroup
	errs := make(chan error, raters)
	for i := 0; i < raters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ratings.Apply(ctx, book.ID, 3)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := catalog.Get(ctx, book.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalRatings != raters {
		t.Fatalf("lost update: want %d ratings, got %d", raters, got.TotalRatings)
	}
	if math.Abs(got.AverageRating-3) > 1e-9 {
		t.Fatalf("want average 3.0, got %v", got.AverageRating)
	}
}

func TestRatingService_CanceledContextIsUnavailable(t *testing.T) {
	db := memdb(t)
	ratings := services.NewRatingService(repos.NewBookRepo(db))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ratings.Apply(ctx, "some-book", 3)
	var ue *domain.UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("canceled context must surface as UnavailableError, got %v", err)
	}
}
