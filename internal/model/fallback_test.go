package model

import "testing"

func TestFallbackSortedAndBounded(t *testing.T) {
	m := fixtureModel(t, 1)

	edges := m.SimilaritiesFor(5) // la 5 está fuera de alto soporte
	if len(edges) == 0 {
		t.Fatal("la película 5 comparte usuarios con el conjunto de alto soporte")
	}
	for i, e := range edges {
		if e.AnchorID >= e.NeighborID {
			t.Errorf("arista %+v viola AnchorID < NeighborID", e)
		}
		other := e.Other(5)
		if !m.IsHighSupport(other) {
			t.Errorf("vecino %d fuera del conjunto de alto soporte", other)
		}
		if i > 0 && edges[i-1].WeightedSim < e.WeightedSim {
			t.Errorf("resultado sin ordenar en posición %d", i)
		}
	}
}

func TestFallbackExcludesZeroCoOccurrence(t *testing.T) {
	m := fixtureModel(t, 1)

	// la 6 no comparte ningún usuario con las de alto soporte
	if edges := m.SimilaritiesFor(6); len(edges) != 0 {
		t.Fatalf("se esperaba vecindad vacía, hay %d aristas", len(edges))
	}
}

func TestFallbackUnknownMovie(t *testing.T) {
	m := fixtureModel(t, 1)
	if edges := m.SimilaritiesFor(999); edges != nil {
		t.Fatalf("película desconocida debería devolver nil, devolvió %v", edges)
	}
}
