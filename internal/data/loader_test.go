package data

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRatings(t *testing.T) {
	path := writeFile(t, "ratings.csv",
		"userId,movieId,rating,timestamp\n"+
			"1,31,2.5,1260759144\n"+
			"1,1029,3.0,1260759179\n"+
			"malo,x,y,z\n"+ // fila malformada: se saltea
			"7,42,5.0,1260759200\n")

	ratings, err := LoadRatings(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(ratings) != 3 {
		t.Fatalf("ratings = %d, want 3", len(ratings))
	}
	if ratings[0].UserID != 1 || ratings[0].MovieID != 31 || ratings[0].Value != 2.5 {
		t.Fatalf("primer rating = %+v", ratings[0])
	}
	if ratings[2].Timestamp != 1260759200 {
		t.Fatalf("timestamp = %d", ratings[2].Timestamp)
	}
}

func TestLoadMovies(t *testing.T) {
	path := writeFile(t, "movies.csv",
		"movieId,title,genres\n"+
			"1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy\n"+
			"2,Jumanji (1995),Adventure|Children|Fantasy\n"+
			`3,"American President, The (1995)",Comedy|Drama|Romance`+"\n")

	movies, err := LoadMovies(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 3 {
		t.Fatalf("movies = %d, want 3", len(movies))
	}
	if movies[2].Title != "American President, The (1995)" {
		t.Fatalf("título entre comillas mal parseado: %q", movies[2].Title)
	}
}

func TestLoadRatingsEmpty(t *testing.T) {
	path := writeFile(t, "ratings.csv", "userId,movieId,rating,timestamp\n")
	if _, err := LoadRatings(path); err == nil {
		t.Fatal("archivo sin ratings debe dar error")
	}
}

func TestLoadRatingsMissingFile(t *testing.T) {
	if _, err := LoadRatings(filepath.Join(t.TempDir(), "no-existe.csv")); err == nil {
		t.Fatal("archivo inexistente debe dar error")
	}
}
