// Package model calcula el modelo de similitud item-item: partición de
// películas por soporte, aristas coseno con corrección por co-ocurrencia
// (shrinkage) y el cálculo bajo demanda para películas fuera del conjunto
// de alto soporte.
package model

import (
	"runtime"
	"sort"

	"movierec/internal/matrix"
)

// Params son los parámetros del modelo. Los valores por defecto replican
// la configuración de producción sobre MovieLens.
type Params struct {
	HighSupportN int     `json:"high_support_n"` // top-N películas por soporte cuyas vecindades se persisten
	K            int     `json:"k"`              // vecinos por película
	Alpha        float64 `json:"alpha"`          // parámetro de shrinkage
	Workers      int     `json:"workers"`
}

// DefaultParams retorna los parámetros por defecto del modelo.
func DefaultParams() Params {
	return Params{
		HighSupportN: 10000,
		K:            10,
		Alpha:        10,
		Workers:      runtime.NumCPU(),
	}
}

// Model es el modelo inmutable-después-de-construir sobre el que corren las
// consultas. Construirlo es un batch pesado de CPU; una vez construido puede
// compartirse entre goroutines sin coordinación porque nada muta.
type Model struct {
	mx     *matrix.Matrix
	params Params

	highSupport map[int]struct{} // movieIds del conjunto de alto soporte
	highCols    []int            // índices de columna de alto soporte, soporte desc
}

// New computa la partición de alto soporte sobre una matriz ya construida.
// El cálculo de aristas (BuildEdges) se invoca aparte porque es el paso caro.
func New(mx *matrix.Matrix, p Params) *Model {
	if p.HighSupportN <= 0 {
		p.HighSupportN = DefaultParams().HighSupportN
	}
	if p.K <= 0 {
		p.K = DefaultParams().K
	}
	if p.Alpha <= 0 {
		p.Alpha = DefaultParams().Alpha
	}
	if p.Workers < 1 {
		p.Workers = 1
	}

	// ranking por cardinalidad de soporte; empates por movieId ascendente
	// para que dos builds con la misma entrada produzcan la misma partición
	cols := make([]int, mx.Items())
	for j := range cols {
		cols[j] = j
	}
	sort.Slice(cols, func(a, b int) bool {
		sa, sb := mx.Support(cols[a]), mx.Support(cols[b])
		if sa != sb {
			return sa > sb
		}
		return mx.ItemForCol(cols[a]) < mx.ItemForCol(cols[b])
	})

	n := p.HighSupportN
	if n > len(cols) {
		n = len(cols)
	}
	highCols := cols[:n]
	highSupport := make(map[int]struct{}, n)
	for _, c := range highCols {
		highSupport[mx.ItemForCol(c)] = struct{}{}
	}

	return &Model{
		mx:          mx,
		params:      p,
		highSupport: highSupport,
		highCols:    highCols,
	}
}

// IsHighSupport indica si la película tiene vecindad precomputada persistida.
func (m *Model) IsHighSupport(movieID int) bool {
	_, ok := m.highSupport[movieID]
	return ok
}

// HighSupportCount es el tamaño efectivo del conjunto de alto soporte.
func (m *Model) HighSupportCount() int { return len(m.highCols) }

// Params expone los parámetros con los que se construyó el modelo.
func (m *Model) Params() Params { return m.params }

// Matrix expone la matriz subyacente (solo lectura).
func (m *Model) Matrix() *matrix.Matrix { return m.mx }

// cosineCo devuelve la similitud coseno entre dos columnas y el tamaño de la
// intersección de sus conjuntos de soporte (usuarios en común).
func (m *Model) cosineCo(ci, cj int) (sim float64, co int) {
	a, b := m.mx.Col(ci), m.mx.Col(cj)
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for row, va := range a {
		if vb, ok := b[row]; ok {
			dot += va * vb
			co++
		}
	}
	ni, nj := m.mx.Norm(ci), m.mx.Norm(cj)
	if ni == 0 || nj == 0 {
		return 0, co
	}
	return dot / (ni * nj), co
}

// shrink aplica la corrección por evidencia: co/(co+alpha), en [0,1) y
// estrictamente creciente en co.
func (m *Model) shrink(co int) float64 {
	return float64(co) / (float64(co) + m.params.Alpha)
}
