// Package store define el contrato de persistencia del recomendador y sus
// implementaciones: MongoDB para producción y una variante en memoria para
// pruebas y corridas locales.
package store

import (
	"context"
	"errors"

	"movierec/pkg/types"
)

// ErrUnavailable marca fallas de infraestructura de storage. Se propaga al
// caller como falla reintentable; la política de retry es del caller, el
// core no reintenta en silencio.
var ErrUnavailable = errors.New("store: storage unavailable")

// Repository es el colaborador de storage que consume el core.
type Repository interface {
	// FindSimilarityEdges devuelve las aristas donde movieID es anchor o
	// neighbor, ordenadas por similitud ponderada descendente.
	FindSimilarityEdges(ctx context.Context, movieID int) ([]types.SimilarityEdge, error)

	// ReplaceAllSimilarityEdges reemplaza la tabla completa de forma
	// atómica: ninguna lectura concurrente observa una tabla a medias y
	// ninguna arista vieja sobrevive al rebuild.
	ReplaceAllSimilarityEdges(ctx context.Context, edges []types.SimilarityEdge) error

	// FindRatingsForUser lista los ratings persistidos de un usuario.
	FindRatingsForUser(ctx context.Context, userID int) ([]types.Rating, error)

	// UpsertRating inserta el rating solo si el par (user, movie) no existe.
	// Devuelve true si creó la fila; false si ya había una (el valor
	// original se conserva, el segundo insert es un no-op).
	UpsertRating(ctx context.Context, userID, movieID int, value float64) (bool, error)

	// FindAllMovies carga el catálogo completo.
	FindAllMovies(ctx context.Context) ([]types.Movie, error)

	// ReplaceAllMovies reemplaza el catálogo (paso de ingesta).
	ReplaceAllMovies(ctx context.Context, movies []types.Movie) error
}
