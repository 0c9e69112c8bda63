package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"movierec/pkg/types"
)

type ratingKey struct {
	userID  int
	movieID int
}

// MemoryRepository implementa Repository en memoria. Se usa en los tests y
// en corridas locales sin Mongo; respeta los mismos invariantes (par de
// rating único con primer valor ganador, replace total de la tabla de
// similitudes, lecturas ordenadas).
type MemoryRepository struct {
	mu      sync.RWMutex
	movies  []types.Movie
	ratings map[ratingKey]types.Rating
	edges   []types.SimilarityEdge
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		ratings: make(map[ratingKey]types.Rating),
	}
}

func (r *MemoryRepository) FindSimilarityEdges(_ context.Context, movieID int) ([]types.SimilarityEdge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.SimilarityEdge
	for _, e := range r.edges {
		if e.AnchorID == movieID || e.NeighborID == movieID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].WeightedSim != out[b].WeightedSim {
			return out[a].WeightedSim > out[b].WeightedSim
		}
		return out[a].Other(movieID) < out[b].Other(movieID)
	})
	return out, nil
}

func (r *MemoryRepository) ReplaceAllSimilarityEdges(_ context.Context, edges []types.SimilarityEdge) error {
	cp := make([]types.SimilarityEdge, len(edges))
	copy(cp, edges)

	r.mu.Lock()
	r.edges = cp
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) FindRatingsForUser(_ context.Context, userID int) ([]types.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.Rating
	for _, rt := range r.ratings {
		if rt.UserID == userID {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].MovieID < out[b].MovieID })
	return out, nil
}

func (r *MemoryRepository) UpsertRating(_ context.Context, userID, movieID int, value float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ratingKey{userID, movieID}
	if _, exists := r.ratings[key]; exists {
		return false, nil // el primer valor se conserva
	}
	r.ratings[key] = types.Rating{
		UserID:    userID,
		MovieID:   movieID,
		Value:     value,
		Timestamp: time.Now().Unix(),
	}
	return true, nil
}

func (r *MemoryRepository) FindAllMovies(_ context.Context) ([]types.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Movie, len(r.movies))
	copy(out, r.movies)
	return out, nil
}

func (r *MemoryRepository) ReplaceAllMovies(_ context.Context, movies []types.Movie) error {
	cp := make([]types.Movie, len(movies))
	copy(cp, movies)

	r.mu.Lock()
	r.movies = cp
	r.mu.Unlock()
	return nil
}
