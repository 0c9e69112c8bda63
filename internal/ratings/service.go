// Package ratings maneja el alta y la consulta de calificaciones de usuario:
// resuelve el título contra el catálogo y delega el upsert en el store, que
// garantiza un solo rating por par (usuario, película).
package ratings

import (
	"context"

	"movierec/internal/catalog"
	"movierec/internal/store"
)

// RatedMovie es un rating persistido, traducido a título para el cliente.
type RatedMovie struct {
	MovieID int     `json:"movieId"`
	Title   string  `json:"title"`
	Value   float64 `json:"value"`
}

// Service define la lógica de ratings expuesta a los handlers.
type Service interface {
	// SubmitByTitle inserta el rating si el par no existía. Devuelve true
	// si creó la fila; false si el usuario ya había calificado esa
	// película (el valor original queda).
	SubmitByTitle(ctx context.Context, userID int, title string, value float64) (bool, error)
	// ListForUser devuelve los ratings persistidos del usuario.
	ListForUser(ctx context.Context, userID int) ([]RatedMovie, error)
}

type service struct {
	catalog *catalog.Catalog
	repo    store.Repository
}

// NewService crea el servicio de ratings.
func NewService(cat *catalog.Catalog, repo store.Repository) Service {
	return &service{catalog: cat, repo: repo}
}

func (s *service) SubmitByTitle(ctx context.Context, userID int, title string, value float64) (bool, error) {
	movieID, err := s.catalog.Resolve(title)
	if err != nil {
		return false, err
	}
	return s.repo.UpsertRating(ctx, userID, movieID, value)
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]RatedMovie, error) {
	ratings, err := s.repo.FindRatingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]RatedMovie, 0, len(ratings))
	for _, r := range ratings {
		title, ok := s.catalog.TitleFor(r.MovieID)
		if !ok {
			title = "" // rating de una película fuera del catálogo cargado
		}
		out = append(out, RatedMovie{MovieID: r.MovieID, Title: title, Value: r.Value})
	}
	return out, nil
}
