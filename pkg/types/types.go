package types

// Movie es una entrada del catálogo. Inmutable después de la carga.
type Movie struct {
	MovieID int    `bson:"movieId" json:"movieId"`
	Title   string `bson:"title" json:"title"`
	Genres  string `bson:"genres" json:"genres"`
}

// Rating representa la calificación de un usuario sobre una película.
type Rating struct {
	UserID    int     `bson:"userId" json:"userId"`
	MovieID   int     `bson:"movieId" json:"movieId"`
	Value     float64 `bson:"value" json:"value"`
	Timestamp int64   `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

// SimilarityEdge es una arista de similitud entre dos películas.
// Se almacena una sola vez por par, con AnchorID < NeighborID; las consultas
// deben buscar en ambas direcciones.
type SimilarityEdge struct {
	AnchorID    int     `bson:"anchorId" json:"anchorId"`
	NeighborID  int     `bson:"neighborId" json:"neighborId"`
	WeightedSim float64 `bson:"weightedSim" json:"weightedSim"`
}

// Other devuelve el extremo de la arista que no es id.
func (e SimilarityEdge) Other(id int) int {
	if e.AnchorID == id {
		return e.NeighborID
	}
	return e.AnchorID
}

// Seed es un par (película, rating) que el usuario entrega como base
// para pedir recomendaciones.
type Seed struct {
	MovieID int
	Value   float64
}

// Neighbor es un vecino candidato durante la búsqueda top-K.
type Neighbor struct {
	Item int
	Sim  float64
}

// NeighborHeap es un min-heap por similitud, usado para conservar los
// K mejores vecinos descartando siempre el peor.
type NeighborHeap []Neighbor

func (h NeighborHeap) Len() int { return len(h) }
func (h NeighborHeap) Less(i, j int) bool {
	if h[i].Sim != h[j].Sim {
		return h[i].Sim < h[j].Sim // min-heap
	}
	return h[i].Item > h[j].Item
}
func (h NeighborHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *NeighborHeap) Push(x interface{}) { *h = append(*h, x.(Neighbor)) }
func (h *NeighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
