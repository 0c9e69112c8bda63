// Package data carga los CSV estilo MovieLens (movies.csv, ratings.csv) que
// alimentan la ingesta del catálogo y la construcción de la matriz.
package data

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"movierec/pkg/types"
)

// LoadRatings lee un CSV de ratings con encabezado
// userId,movieId,rating,timestamp. Las filas malformadas se saltean.
func LoadRatings(path string) ([]types.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo archivo de ratings: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("leyendo encabezado ratings: %w", err)
	}

	var ratings []types.Rating
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leyendo registro de rating: %w", err)
		}
		if len(rec) < 3 {
			continue
		}
		uid, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		mid, err := strconv.Atoi(rec[1])
		if err != nil {
			continue
		}
		val, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			continue
		}
		var ts int64
		if len(rec) > 3 {
			ts, _ = strconv.ParseInt(rec[3], 10, 64)
		}
		ratings = append(ratings, types.Rating{UserID: uid, MovieID: mid, Value: val, Timestamp: ts})
	}

	if len(ratings) == 0 {
		return nil, fmt.Errorf("no se encontraron ratings en %s", path)
	}
	return ratings, nil
}

// LoadMovies lee un CSV de películas con encabezado movieId,title,genres.
func LoadMovies(path string) ([]types.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo archivo de movies: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("leyendo encabezado movies: %w", err)
	}

	var movies []types.Movie
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leyendo registro de movie: %w", err)
		}
		if len(rec) < 2 {
			continue
		}
		mid, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		genres := ""
		if len(rec) > 2 {
			genres = rec[2]
		}
		movies = append(movies, types.Movie{MovieID: mid, Title: rec[1], Genres: genres})
	}

	if len(movies) == 0 {
		return nil, fmt.Errorf("no se encontraron películas en %s", path)
	}
	return movies, nil
}
