package model

import (
	"sort"

	"movierec/pkg/types"
)

// SimilaritiesFor calcula en caliente la vecindad de una película que quedó
// fuera del conjunto de alto soporte y por lo tanto no tiene aristas
// persistidas. Se compara solo contra el conjunto de alto soporte (costo
// acotado a O(N) por llamada, no contra el catálogo completo), se descartan
// los pares sin co-ocurrencia (el shrinkage ahí no aporta información) y el
// resultado vuelve ordenado descendente por similitud ponderada. Nunca se
// persiste: se recalcula en cada llamada, latencia a cambio de storage.
func (m *Model) SimilaritiesFor(movieID int) []types.SimilarityEdge {
	ci, ok := m.mx.ColForItem(movieID)
	if !ok || m.mx.Norm(ci) == 0 {
		return nil
	}

	edges := make([]types.SimilarityEdge, 0, len(m.highCols))
	for _, cj := range m.highCols {
		neighborItem := m.mx.ItemForCol(cj)
		if neighborItem == movieID {
			continue
		}
		raw, co := m.cosineCo(ci, cj)
		if co == 0 {
			continue
		}
		a, n := movieID, neighborItem
		if a > n {
			a, n = n, a
		}
		edges = append(edges, types.SimilarityEdge{
			AnchorID:    a,
			NeighborID:  n,
			WeightedSim: raw * m.shrink(co),
		})
	}

	sort.Slice(edges, func(a, b int) bool {
		if edges[a].WeightedSim != edges[b].WeightedSim {
			return edges[a].WeightedSim > edges[b].WeightedSim
		}
		return edges[a].Other(movieID) < edges[b].Other(movieID)
	})
	return edges
}
