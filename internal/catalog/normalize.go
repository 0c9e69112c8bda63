package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	yearSuffixRe = regexp.MustCompile(`\([0-9]{4}\)$`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
)

// Normalize convierte un título libre en su clave canónica de catálogo.
// Es pura y determinista: mismo título, misma clave, siempre.
//
// Pasos, en orden: minúsculas; si el título termina en "(DDDD)" se cortan
// los últimos 6 caracteres (el año entre paréntesis); descomposición NFD
// descartando marcas diacríticas; colapso de caracteres no alfanuméricos a
// un solo espacio y trim.
func Normalize(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	// "toy story (1995)" -> "toy story " (corte fijo de 6, no un trim genérico)
	if yearSuffixRe.MatchString(s) {
		s = s[:len(s)-6]
	}

	s = stripMarks(norm.NFD.String(s))

	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(s, " "))
}

func stripMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
