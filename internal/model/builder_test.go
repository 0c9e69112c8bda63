package model

import (
	"reflect"
	"testing"

	"movierec/internal/matrix"
	"movierec/pkg/types"
)

// catálogo chico: películas 1-4 quedan en alto soporte (N=4), 5 y 6 afuera.
// la 6 no comparte usuarios con ninguna de alto soporte.
func fixtureRatings() []types.Rating {
	r := func(u, m int, v float64) types.Rating {
		return types.Rating{UserID: u, MovieID: m, Value: v}
	}
	return []types.Rating{
		r(1, 1, 5), r(2, 1, 4), r(3, 1, 5), r(4, 1, 3), r(5, 1, 4),
		r(1, 2, 4), r(2, 2, 5), r(3, 2, 4), r(4, 2, 4),
		r(1, 3, 5), r(2, 3, 3), r(3, 3, 4),
		r(2, 4, 4), r(3, 4, 5), r(4, 4, 4),
		r(1, 5, 5), r(2, 5, 4),
		r(7, 6, 3), r(8, 6, 5),
	}
}

func fixtureModel(t *testing.T, workers int) *Model {
	t.Helper()
	mx := matrix.Build(fixtureRatings())
	return New(mx, Params{HighSupportN: 4, K: 3, Alpha: 10, Workers: workers})
}

func TestHighSupportPartition(t *testing.T) {
	m := fixtureModel(t, 1)

	if m.HighSupportCount() != 4 {
		t.Fatalf("HighSupportCount = %d, want 4", m.HighSupportCount())
	}
	for _, id := range []int{1, 2, 3, 4} {
		if !m.IsHighSupport(id) {
			t.Errorf("película %d debería ser de alto soporte", id)
		}
	}
	for _, id := range []int{5, 6} {
		if m.IsHighSupport(id) {
			t.Errorf("película %d no debería ser de alto soporte", id)
		}
	}
}

func TestBuildEdgesInvariants(t *testing.T) {
	m := fixtureModel(t, 2)
	edges := m.BuildEdges()

	if len(edges) == 0 {
		t.Fatal("se esperaban aristas para el fixture")
	}
	for _, e := range edges {
		if e.AnchorID >= e.NeighborID {
			t.Errorf("arista %+v viola AnchorID < NeighborID", e)
		}
		if !m.IsHighSupport(e.AnchorID) || !m.IsHighSupport(e.NeighborID) {
			t.Errorf("arista %+v tiene un extremo fuera de alto soporte", e)
		}
		if e.WeightedSim < 0 || e.WeightedSim >= 1 {
			t.Errorf("arista %+v con similitud ponderada fuera de [0,1)", e)
		}
	}
}

func TestBuildEdgesDeterministic(t *testing.T) {
	// mismo input, distinta cantidad de workers: mismo conjunto de aristas
	a := fixtureModel(t, 1).BuildEdges()
	b := fixtureModel(t, 4).BuildEdges()

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("rebuilds divergen:\n%v\nvs\n%v", a, b)
	}
}

func TestShrinkRange(t *testing.T) {
	m := fixtureModel(t, 1)

	prev := -1.0
	for co := 0; co <= 100; co++ {
		s := m.shrink(co)
		if s < 0 || s >= 1 {
			t.Fatalf("shrink(%d) = %v fuera de [0,1)", co, s)
		}
		if s <= prev {
			t.Fatalf("shrink no es estrictamente creciente en co=%d", co)
		}
		prev = s
	}
}

func TestBuildEdgesZeroNeighborsNoError(t *testing.T) {
	// dos películas sin usuarios en común y K=1: cosenos cero pero nunca error
	ratings := []types.Rating{
		{UserID: 1, MovieID: 10, Value: 5},
		{UserID: 2, MovieID: 20, Value: 5},
	}
	m := New(matrix.Build(ratings), Params{HighSupportN: 2, K: 1, Alpha: 10, Workers: 1})
	for _, e := range m.BuildEdges() {
		if e.AnchorID == e.NeighborID {
			t.Fatalf("self-arista: %+v", e)
		}
	}
}
