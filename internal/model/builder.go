package model

import (
	"container/heap"
	"sort"
	"sync"

	"movierec/pkg/types"
)

// clave compacta de par no ordenado de columnas, como en el acumulador del
// motor de similitud
func makeKey(i, j int) uint64 {
	if i > j {
		i, j = j, i
	}
	return (uint64(uint32(i)) << 32) | uint64(uint32(j))
}

// BuildEdges calcula las aristas de similitud a persistir. Para cada película
// de alto soporte busca sus K vecinos más cercanos por coseno sobre el
// catálogo completo; de esos vecinos solo sobreviven los que también son de
// alto soporte (la regla de los dos extremos aplica al insertar, no al
// buscar). Cada arista queda con AnchorID < NeighborID y similitud ponderada
// por shrinkage.
//
// El trabajo se reparte en bloques de columnas entre Workers goroutines; cada
// worker acumula aristas en un mapa local por clave de par y al final se
// mergea todo, con lo que el par (i, j) descubierto desde ambos lados queda
// una sola vez.
func (m *Model) BuildEdges() []types.SimilarityEdge {
	workers := m.params.Workers
	blocks := chunkCols(m.highCols, blockSize(len(m.highCols), workers))

	workCh := make(chan []int)
	partCh := make(chan map[uint64]types.SimilarityEdge, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			local := make(map[uint64]types.SimilarityEdge, 1<<10)
			for blk := range workCh {
				for _, ci := range blk {
					m.edgesForCol(ci, local)
				}
			}
			partCh <- local
		}()
	}

	go func() {
		for _, blk := range blocks {
			workCh <- blk
		}
		close(workCh)
		wg.Wait()
		close(partCh)
	}()

	// merge de parciales; las claves repetidas traen la misma arista
	global := make(map[uint64]types.SimilarityEdge, 1<<12)
	for part := range partCh {
		for k, e := range part {
			global[k] = e
		}
	}

	edges := make([]types.SimilarityEdge, 0, len(global))
	for _, e := range global {
		edges = append(edges, e)
	}
	// orden estable para que el replace de la tabla sea reproducible
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].AnchorID != edges[b].AnchorID {
			return edges[a].AnchorID < edges[b].AnchorID
		}
		return edges[a].NeighborID < edges[b].NeighborID
	})
	return edges
}

// edgesForCol busca los K vecinos de la columna ci y acumula las aristas
// calificadas en out.
func (m *Model) edgesForCol(ci int, out map[uint64]types.SimilarityEdge) {
	if m.mx.Norm(ci) == 0 {
		return
	}

	// top-K por coseno sobre todas las columnas, descartando la propia
	// (equivale a pedir K+1 vecinos y tirar el match de sí misma)
	h := &types.NeighborHeap{}
	heap.Init(h)
	k := m.params.K
	for cj := 0; cj < m.mx.Items(); cj++ {
		if cj == ci || m.mx.Norm(cj) == 0 {
			continue
		}
		sim, _ := m.cosineCo(ci, cj)
		if h.Len() < k {
			heap.Push(h, types.Neighbor{Item: cj, Sim: sim})
		} else if sim > (*h)[0].Sim || (sim == (*h)[0].Sim && cj < (*h)[0].Item) {
			heap.Pop(h)
			heap.Push(h, types.Neighbor{Item: cj, Sim: sim})
		}
	}

	anchorItem := m.mx.ItemForCol(ci)
	for h.Len() > 0 {
		nb := heap.Pop(h).(types.Neighbor)
		cj := nb.Item
		neighborItem := m.mx.ItemForCol(cj)

		// solo se persisten pares con ambos extremos en alto soporte
		if !m.IsHighSupport(neighborItem) {
			continue
		}

		raw, co := m.cosineCo(ci, cj)
		a, n := anchorItem, neighborItem
		if a > n {
			a, n = n, a
		}
		out[makeKey(ci, cj)] = types.SimilarityEdge{
			AnchorID:    a,
			NeighborID:  n,
			WeightedSim: raw * m.shrink(co),
		}
	}
}

func blockSize(total, workers int) int {
	if workers < 1 {
		workers = 1
	}
	target := workers * 8
	if target < 16 {
		target = 16
	}
	size := (total + target - 1) / target
	if size < 1 {
		size = 1
	}
	return size
}

func chunkCols(all []int, size int) [][]int {
	var out [][]int
	for i := 0; i < len(all); i += size {
		j := i + size
		if j > len(all) {
			j = len(all)
		}
		out = append(out, all[i:j])
	}
	return out
}
