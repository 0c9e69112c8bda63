package catalog

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"movierec/pkg/types"
)

// ErrTitleNotFound indica que un título no resuelve a ninguna película del
// catálogo. Es un resultado esperable de entrada de usuario, no una falla.
var ErrTitleNotFound = errors.New("catalog: title not found")

// Catalog mantiene los mapas bidireccionales id<->título construidos una vez
// al inicializar. Es de solo lectura después de New, así que puede compartirse
// entre consultas concurrentes sin coordinación.
type Catalog struct {
	titles    map[int]string // movieId -> título original
	genres    map[int]string // movieId -> tags de género
	invTitles map[string]int // clave normalizada -> movieId

	collisions int
}

// New construye el catálogo desde la lista de películas. Los ids se procesan
// en orden ascendente para que la política de colisiones sea determinista:
// si dos títulos normalizan a la misma clave gana el primero (id menor) y la
// colisión se cuenta y se registra en el log.
func New(movies []types.Movie) (*Catalog, error) {
	sorted := make([]types.Movie, len(movies))
	copy(sorted, movies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MovieID < sorted[j].MovieID })

	c := &Catalog{
		titles:    make(map[int]string, len(sorted)),
		genres:    make(map[int]string, len(sorted)),
		invTitles: make(map[string]int, len(sorted)),
	}

	for _, m := range sorted {
		if _, dup := c.titles[m.MovieID]; dup {
			return nil, fmt.Errorf("catalog: duplicate movie id %d", m.MovieID)
		}
		c.titles[m.MovieID] = m.Title
		c.genres[m.MovieID] = m.Genres

		key := Normalize(m.Title)
		if key == "" {
			continue
		}
		if _, taken := c.invTitles[key]; taken {
			c.collisions++
			continue // primera escritura gana
		}
		c.invTitles[key] = m.MovieID
	}

	if c.collisions > 0 {
		log.Printf("[CATALOG] %d títulos colisionan tras normalizar (se conserva el id menor)", c.collisions)
	}
	return c, nil
}

// Resolve busca el id de catálogo para un título libre.
// Devuelve ErrTitleNotFound si la clave normalizada no existe.
func (c *Catalog) Resolve(title string) (int, error) {
	id, ok := c.invTitles[Normalize(title)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrTitleNotFound, title)
	}
	return id, nil
}

// TitleFor devuelve el título original para un id.
func (c *Catalog) TitleFor(id int) (string, bool) {
	t, ok := c.titles[id]
	return t, ok
}

// GenresFor devuelve los tags de género para un id.
func (c *Catalog) GenresFor(id int) (string, bool) {
	g, ok := c.genres[id]
	return g, ok
}

// Size es la cantidad de películas cargadas.
func (c *Catalog) Size() int { return len(c.titles) }

// Collisions expone cuántos títulos quedaron fuera del mapa inverso.
func (c *Catalog) Collisions() int { return c.collisions }
