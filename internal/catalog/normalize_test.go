package catalog

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Toy Story (1995)", "toy story"},
		{"Toy Story", "toy story"},
		{"Jumanji (1995)", "jumanji"},
		{"Grumpier Old Men (1995)", "grumpier old men"},
		{"Ring, The (2002)", "ring the"},
		{"Amélie (2001)", "amelie"},
		{"Léon: The Professional (1994)", "leon the professional"},
		{"Se7en (1995)", "se7en"},
		{"  What's   Up,  Doc? (1972) ", "what s up doc"},
		{"(500) Days of Summer (2009)", "500 days of summer"},
		{"", ""},
		{"!!!", ""},
		// el corte del año es de ancho fijo y solo al final
		{"2001: A Space Odyssey (1968)", "2001 a space odyssey"},
		{"1984", "1984"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	titles := []string{
		"Toy Story (1995)",
		"Amélie (2001)",
		"Ring, The (2002)",
		"Star Wars: Episode IV - A New Hope (1977)",
		"...And Justice for All (1979)",
	}
	for _, s := range titles {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize no es idempotente para %q: %q -> %q", s, once, twice)
		}
	}
}

func TestNormalizeYearOnlyWhenTrailing(t *testing.T) {
	// el patrón de año en medio del título no dispara el corte
	if got := Normalize("(1995) Toy Story"); got != "1995 toy story" {
		t.Errorf("got %q", got)
	}
	// un año sin paréntesis al final tampoco
	if got := Normalize("Movie 1995"); got != "movie 1995" {
		t.Errorf("got %q", got)
	}
}
