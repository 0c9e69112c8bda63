package engine

import "movierec/pkg/types"

// mergeEntry es la cabeza actual de la lista de un seed dentro del merge.
type mergeEntry struct {
	sim     float64 // similitud ponderada de la arista (el heap saca la mayor)
	seedIdx int
	pos     int
	edge    types.SimilarityEdge
}

// mergeHeap es el heap del merge k-vías, con la mejor similitud global en la
// raíz. Los empates se rompen por índice de seed y posición para que el
// resultado sea determinista dadas listas deterministas.
type mergeHeap []mergeEntry

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	if h[i].sim != h[j].sim {
		return h[i].sim > h[j].sim
	}
	if h[i].seedIdx != h[j].seedIdx {
		return h[i].seedIdx < h[j].seedIdx
	}
	return h[i].pos < h[j].pos
}
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(mergeEntry)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
