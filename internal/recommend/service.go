// Package recommend expone la consulta de recomendación por títulos: resuelve
// títulos libres contra el catálogo, corre el engine y traduce los ids
// resultantes de vuelta a títulos.
package recommend

import (
	"context"
	"fmt"
	"sync/atomic"

	"movierec/internal/cache"
	"movierec/internal/catalog"
	"movierec/internal/engine"
	"movierec/pkg/types"
)

// TitleSeed es un seed tal como lo manda el cliente: título libre + rating.
type TitleSeed struct {
	Title  string  `json:"title" binding:"required"`
	Rating float64 `json:"rating" binding:"required"`
}

// Recommendation es una película recomendada ya traducida a título.
type Recommendation struct {
	MovieID int    `json:"movieId"`
	Title   string `json:"title"`
	Genres  string `json:"genres,omitempty"`
}

// Service define la lógica de recomendación expuesta a los handlers.
type Service interface {
	// RecommendByTitles resuelve los seeds, consulta el engine y devuelve
	// hasta maxResults recomendaciones. Lista vacía es un resultado válido.
	RecommendByTitles(ctx context.Context, userID int, seeds []TitleSeed, maxResults int) ([]Recommendation, error)
	// VerifyTitle responde si un título libre resuelve a una película.
	VerifyTitle(title string) (Recommendation, error)
	// History devuelve las últimas consultas auditadas del usuario.
	History(ctx context.Context, userID int) ([]cache.AuditEntry, error)
	// Ready informa si el modelo ya terminó de construirse.
	Ready() bool
}

type TitleRecommender struct {
	catalog *catalog.Catalog
	audit   *cache.Audit

	// el engine se publica una sola vez cuando el build del modelo termina;
	// es el único estado mutable que toca una consulta
	engine atomic.Pointer[engine.Engine]

	kPerSeed   int
	maxResults int
}

// NewService crea el servicio. El engine llega después, vía SetEngine, cuando
// el build batch del modelo (que corre fuera del camino de requests) termina.
func NewService(cat *catalog.Catalog, audit *cache.Audit, kPerSeed, maxResults int) *TitleRecommender {
	if kPerSeed <= 0 {
		kPerSeed = 10
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &TitleRecommender{
		catalog:    cat,
		audit:      audit,
		kPerSeed:   kPerSeed,
		maxResults: maxResults,
	}
}

// SetEngine publica el engine construido. A partir de acá las consultas
// dejan de fallar con ErrModelNotReady.
func (s *TitleRecommender) SetEngine(e *engine.Engine) {
	s.engine.Store(e)
}

func (s *TitleRecommender) Ready() bool {
	return s.engine.Load() != nil
}

func (s *TitleRecommender) RecommendByTitles(ctx context.Context, userID int, titleSeeds []TitleSeed, maxResults int) ([]Recommendation, error) {
	eng := s.engine.Load()
	if eng == nil {
		return nil, engine.ErrModelNotReady
	}
	if maxResults <= 0 || maxResults > s.maxResults {
		maxResults = s.maxResults
	}

	seeds := make([]types.Seed, 0, len(titleSeeds))
	seedTitles := make([]string, 0, len(titleSeeds))
	for _, ts := range titleSeeds {
		id, err := s.catalog.Resolve(ts.Title)
		if err != nil {
			return nil, err // catalog.ErrTitleNotFound con el título adentro
		}
		seeds = append(seeds, types.Seed{MovieID: id, Value: ts.Rating})
		seedTitles = append(seedTitles, ts.Title)
	}

	ids, err := eng.Recommend(ctx, seeds, maxResults, s.kPerSeed)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(ids))
	resultTitles := make([]string, 0, len(ids))
	for _, id := range ids {
		title, ok := s.catalog.TitleFor(id)
		if !ok {
			return nil, fmt.Errorf("recommend: id %d recomendado sin entrada de catálogo", id)
		}
		genres, _ := s.catalog.GenresFor(id)
		recs = append(recs, Recommendation{MovieID: id, Title: title, Genres: genres})
		resultTitles = append(resultTitles, title)
	}

	if s.audit != nil {
		s.audit.Record(ctx, userID, seedTitles, resultTitles)
	}
	return recs, nil
}

func (s *TitleRecommender) VerifyTitle(title string) (Recommendation, error) {
	id, err := s.catalog.Resolve(title)
	if err != nil {
		return Recommendation{}, err
	}
	canonical, _ := s.catalog.TitleFor(id)
	genres, _ := s.catalog.GenresFor(id)
	return Recommendation{MovieID: id, Title: canonical, Genres: genres}, nil
}

func (s *TitleRecommender) History(ctx context.Context, userID int) ([]cache.AuditEntry, error) {
	if s.audit == nil {
		return nil, nil
	}
	return s.audit.Recent(ctx, userID, 0)
}
