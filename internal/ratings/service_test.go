package ratings

import (
	"context"
	"errors"
	"testing"

	"movierec/internal/catalog"
	"movierec/internal/store"
	"movierec/pkg/types"
)

func fixtureService(t *testing.T) Service {
	t.Helper()
	cat, err := catalog.New([]types.Movie{
		{MovieID: 42, Title: "Dead Presidents (1995)", Genres: "Action|Crime|Drama"},
		{MovieID: 50, Title: "Usual Suspects, The (1995)", Genres: "Crime|Mystery|Thriller"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewService(cat, store.NewMemoryRepository())
}

func TestSubmitByTitleUpsert(t *testing.T) {
	svc := fixtureService(t)
	ctx := context.Background()

	created, err := svc.SubmitByTitle(ctx, 7, "Dead Presidents (1995)", 5.0)
	if err != nil || !created {
		t.Fatalf("primer submit: created=%v err=%v", created, err)
	}

	// segundo rating del mismo usuario sobre la misma película: no-op
	created, err = svc.SubmitByTitle(ctx, 7, "dead presidents", 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("el segundo submit debe devolver created=false")
	}

	rated, err := svc.ListForUser(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(rated) != 1 {
		t.Fatalf("ratings = %d, want 1", len(rated))
	}
	if rated[0].Value != 5.0 {
		t.Fatalf("value = %v, want 5.0 (primer valor gana)", rated[0].Value)
	}
	if rated[0].Title != "Dead Presidents (1995)" {
		t.Fatalf("title = %q", rated[0].Title)
	}
}

func TestSubmitUnknownTitle(t *testing.T) {
	svc := fixtureService(t)

	_, err := svc.SubmitByTitle(context.Background(), 7, "No Existe (1999)", 4.0)
	if !errors.Is(err, catalog.ErrTitleNotFound) {
		t.Fatalf("err = %v, want ErrTitleNotFound", err)
	}
}

func TestListForUserEmpty(t *testing.T) {
	svc := fixtureService(t)

	rated, err := svc.ListForUser(context.Background(), 99)
	if err != nil {
		t.Fatal(err)
	}
	if len(rated) != 0 {
		t.Fatalf("ratings = %v, want vacío", rated)
	}
}
