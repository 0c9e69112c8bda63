// Package engine arma la lista final de recomendaciones: selecciona los
// seeds fuertes del usuario, junta la vecindad rankeada de cada uno (tabla
// persistida para alto soporte, cálculo en caliente para el resto) y las
// mergea en una sola lista global deduplicada con un merge k-vías.
package engine

import (
	"container/heap"
	"context"
	"errors"
	"sort"

	"movierec/internal/model"
	"movierec/internal/store"
	"movierec/pkg/types"
)

// ErrModelNotReady indica una consulta antes de que el modelo termine de
// construirse. Es un error de orden de inicialización: falla fuerte, no
// devuelve resultados vacíos en silencio.
var ErrModelNotReady = errors.New("engine: similarity model not built yet")

// Options controla la selección de seeds fuertes.
type Options struct {
	MinSeeds            int     // siempre se toman al menos tantos seeds
	HighRatingThreshold float64 // además entra todo seed con rating >= umbral
}

// DefaultOptions retorna los valores de producción.
func DefaultOptions() Options {
	return Options{MinSeeds: 3, HighRatingThreshold: 4.0}
}

// Engine responde consultas de recomendación sobre un modelo ya construido.
// Todas las estructuras que toca una consulta son inmutables después del
// build, así que múltiples consultas pueden correr en paralelo sin locks.
type Engine struct {
	model *model.Model
	repo  store.Repository
	opts  Options
}

// New crea el engine. El modelo puede ser nil si todavía no se construyó;
// en ese estado toda consulta devuelve ErrModelNotReady.
func New(m *model.Model, repo store.Repository, opts Options) *Engine {
	if opts.MinSeeds <= 0 {
		opts.MinSeeds = DefaultOptions().MinSeeds
	}
	if opts.HighRatingThreshold <= 0 {
		opts.HighRatingThreshold = DefaultOptions().HighRatingThreshold
	}
	return &Engine{model: m, repo: repo, opts: opts}
}

// SelectStrongSeeds ordena los seeds por rating descendente y corta en el
// primer seed bajo el umbral una vez acumulados al menos MinSeeds: siempre
// hay al menos MinSeeds anclas (si alcanzan), y además entra todo seed en o
// sobre el umbral.
func (e *Engine) SelectStrongSeeds(seeds []types.Seed) []int {
	sorted := make([]types.Seed, len(seeds))
	copy(sorted, seeds)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	out := make([]int, 0, len(sorted))
	for _, s := range sorted {
		if s.Value < e.opts.HighRatingThreshold && len(out) >= e.opts.MinSeeds {
			break
		}
		out = append(out, s.MovieID)
	}
	return out
}

// Recommend devuelve hasta maxResults ids de película, ordenados globalmente
// de mayor a menor por la similitud que causó la primera emisión de cada id.
// Una lista vacía es un resultado válido, no un error.
func (e *Engine) Recommend(ctx context.Context, seeds []types.Seed, maxResults, kPerSeed int) ([]int, error) {
	if e.model == nil {
		return nil, ErrModelNotReady
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	if kPerSeed <= 0 {
		kPerSeed = 10
	}

	seedSet := make(map[int]struct{}, len(seeds))
	for _, s := range seeds {
		seedSet[s.MovieID] = struct{}{}
	}

	strong := e.SelectStrongSeeds(seeds)

	// lista rankeada por seed: tabla persistida si es de alto soporte,
	// fallback en caliente si no; los seeds sin vecindad se saltean
	var lists [][]types.SimilarityEdge
	var owners []int // movieId del seed dueño de cada lista
	for _, movieID := range strong {
		var edges []types.SimilarityEdge
		if e.model.IsHighSupport(movieID) {
			found, err := e.repo.FindSimilarityEdges(ctx, movieID)
			if err != nil {
				return nil, err
			}
			edges = found
		} else {
			edges = e.model.SimilaritiesFor(movieID)
		}
		if len(edges) == 0 {
			continue
		}
		if len(edges) > kPerSeed {
			edges = edges[:kPerSeed]
		}
		lists = append(lists, edges)
		owners = append(owners, movieID)
	}
	if len(lists) == 0 {
		return nil, nil // sin anclas con vecindad: no hay recomendación
	}

	h := make(mergeHeap, 0, len(lists))
	for i, list := range lists {
		h = append(h, mergeEntry{sim: list[0].WeightedSim, seedIdx: i, pos: 0, edge: list[0]})
	}
	heap.Init(&h)

	emitted := make(map[int]struct{})
	var result []int
	for h.Len() > 0 && len(result) < maxResults {
		entry := heap.Pop(&h).(mergeEntry)

		candidate := entry.edge.Other(owners[entry.seedIdx])
		if _, isSeed := seedSet[candidate]; !isSeed {
			if _, seen := emitted[candidate]; !seen {
				emitted[candidate] = struct{}{}
				result = append(result, candidate)
			}
		}

		// avanza en la lista de ese seed
		next := entry.pos + 1
		if list := lists[entry.seedIdx]; next < len(list) {
			heap.Push(&h, mergeEntry{
				sim:     list[next].WeightedSim,
				seedIdx: entry.seedIdx,
				pos:     next,
				edge:    list[next],
			})
		}
	}
	return result, nil
}
