package store

import (
	"context"
	"sync"
	"testing"

	"movierec/pkg/types"
)

func TestUpsertRatingFirstValueWins(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.UpsertRating(ctx, 7, 42, 5.0)
	if err != nil || !created {
		t.Fatalf("primer upsert: created=%v err=%v", created, err)
	}

	created, err = repo.UpsertRating(ctx, 7, 42, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("segundo upsert del mismo par debe ser no-op")
	}

	ratings, err := repo.FindRatingsForUser(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(ratings) != 1 {
		t.Fatalf("ratings = %d filas, want 1", len(ratings))
	}
	if ratings[0].Value != 5.0 {
		t.Fatalf("value = %v, want 5.0 (el primero persiste)", ratings[0].Value)
	}
}

func TestUpsertRatingConcurrentSamePair(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	const writers = 16
	results := make(chan bool, writers)
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(v float64) {
			defer wg.Done()
			created, err := repo.UpsertRating(ctx, 1, 99, v)
			if err != nil {
				t.Error(err)
				return
			}
			results <- created
		}(float64(i))
	}
	wg.Wait()
	close(results)

	createdCount := 0
	for c := range results {
		if c {
			createdCount++
		}
	}
	if createdCount != 1 {
		t.Fatalf("exactamente un writer debe crear la fila, crearon %d", createdCount)
	}

	ratings, _ := repo.FindRatingsForUser(ctx, 1)
	if len(ratings) != 1 {
		t.Fatalf("filas = %d, want 1", len(ratings))
	}
}

func TestFindSimilarityEdgesBothDirectionsSorted(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	err := repo.ReplaceAllSimilarityEdges(ctx, []types.SimilarityEdge{
		{AnchorID: 1, NeighborID: 5, WeightedSim: 0.3},
		{AnchorID: 5, NeighborID: 9, WeightedSim: 0.8},
		{AnchorID: 2, NeighborID: 5, WeightedSim: 0.5},
		{AnchorID: 1, NeighborID: 2, WeightedSim: 0.9}, // no toca a la 5
	})
	if err != nil {
		t.Fatal(err)
	}

	edges, err := repo.FindSimilarityEdges(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 3 {
		t.Fatalf("aristas = %d, want 3", len(edges))
	}
	want := []float64{0.8, 0.5, 0.3}
	for i, e := range edges {
		if e.WeightedSim != want[i] {
			t.Errorf("posición %d: sim %v, want %v", i, e.WeightedSim, want[i])
		}
		if e.AnchorID != 5 && e.NeighborID != 5 {
			t.Errorf("arista %+v no contiene a la película 5", e)
		}
	}
}

func TestReplaceAllSimilarityEdgesDropsStale(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_ = repo.ReplaceAllSimilarityEdges(ctx, []types.SimilarityEdge{
		{AnchorID: 1, NeighborID: 2, WeightedSim: 0.9},
	})
	_ = repo.ReplaceAllSimilarityEdges(ctx, []types.SimilarityEdge{
		{AnchorID: 3, NeighborID: 4, WeightedSim: 0.7},
	})

	if edges, _ := repo.FindSimilarityEdges(ctx, 1); len(edges) != 0 {
		t.Fatal("una arista vieja sobrevivió al rebuild")
	}
	if edges, _ := repo.FindSimilarityEdges(ctx, 3); len(edges) != 1 {
		t.Fatal("falta la arista nueva")
	}
}
