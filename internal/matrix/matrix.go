// Package matrix construye la matriz dispersa usuario×película a partir del
// stream de ratings crudos, junto con los cuatro mapas de índice que
// traducen ids externos a índices densos y de vuelta.
package matrix

import (
	"math"
	"sort"

	"movierec/pkg/types"
)

// Matrix es la matriz de utilidad dispersa, almacenada por columnas
// (una columna por película, map fila->rating). Inmutable después de Build;
// todo acceso por id debe pasar por los mapas, nunca por ids crudos.
type Matrix struct {
	cols []map[int]float64 // índice de columna -> (índice de fila -> rating)

	userToRow map[int]int
	rowToUser []int
	itemToCol map[int]int
	colToItem []int

	norms []float64 // ||columna|| precomputada
}

// Build construye la matriz desde triples (userId, movieId, rating).
// Los ids distintos se ordenan ascendentemente y reciben índices 0..M-1 y
// 0..N-1. Si el stream trae el mismo par (user, movie) dos veces gana el
// último valor: es la semántica de construcción bulk, distinta a propósito
// del upsert del store (que conserva el primero) porque aquí se acepta el
// stream crudo de ingesta, no la tabla deduplicada.
func Build(ratings []types.Rating) *Matrix {
	userSet := make(map[int]struct{})
	itemSet := make(map[int]struct{})
	for _, r := range ratings {
		userSet[r.UserID] = struct{}{}
		itemSet[r.MovieID] = struct{}{}
	}

	rowToUser := sortedKeys(userSet)
	colToItem := sortedKeys(itemSet)

	userToRow := make(map[int]int, len(rowToUser))
	for i, u := range rowToUser {
		userToRow[u] = i
	}
	itemToCol := make(map[int]int, len(colToItem))
	for j, it := range colToItem {
		itemToCol[it] = j
	}

	cols := make([]map[int]float64, len(colToItem))
	for j := range cols {
		cols[j] = make(map[int]float64)
	}
	for _, r := range ratings {
		cols[itemToCol[r.MovieID]][userToRow[r.UserID]] = r.Value
	}

	norms := make([]float64, len(cols))
	for j, col := range cols {
		var sum float64
		for _, v := range col {
			sum += v * v
		}
		norms[j] = math.Sqrt(sum)
	}

	return &Matrix{
		cols:      cols,
		userToRow: userToRow,
		rowToUser: rowToUser,
		itemToCol: itemToCol,
		colToItem: colToItem,
		norms:     norms,
	}
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// Users es la cantidad de filas (usuarios distintos).
func (m *Matrix) Users() int { return len(m.rowToUser) }

// Items es la cantidad de columnas (películas distintas).
func (m *Matrix) Items() int { return len(m.colToItem) }

// Col devuelve la columna dispersa de un índice de columna. El mapa devuelto
// pertenece a la matriz y no debe modificarse.
func (m *Matrix) Col(c int) map[int]float64 { return m.cols[c] }

// Norm devuelve la norma euclidiana precomputada de una columna.
func (m *Matrix) Norm(c int) float64 { return m.norms[c] }

// Support es la cardinalidad del conjunto de soporte de la columna:
// cuántos usuarios calificaron esa película.
func (m *Matrix) Support(c int) int { return len(m.cols[c]) }

// ColForItem traduce un movieId externo a su índice de columna.
func (m *Matrix) ColForItem(movieID int) (int, bool) {
	c, ok := m.itemToCol[movieID]
	return c, ok
}

// ItemForCol traduce un índice de columna a su movieId externo.
func (m *Matrix) ItemForCol(c int) int { return m.colToItem[c] }

// RowForUser traduce un userId externo a su índice de fila.
func (m *Matrix) RowForUser(userID int) (int, bool) {
	r, ok := m.userToRow[userID]
	return r, ok
}

// UserForRow traduce un índice de fila a su userId externo.
func (m *Matrix) UserForRow(r int) int { return m.rowToUser[r] }
