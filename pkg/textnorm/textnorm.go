// Package textnorm normaliza códigos de negocio y términos de búsqueda.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Code normaliza un código de catálogo: sin espacios en los extremos y en mayúsculas.
func Code(s string) string {
	return cases.Upper(language.Spanish).String(strings.TrimSpace(s))
}

// Fold reduce s a su forma de búsqueda: minúsculas, sin acentos y con espacios colapsados.
// "  Distribuidora  ÁLAMO " -> "distribuidora alamo".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}

// LikePattern arma un patrón LIKE "contiene" para term (ya plegado), escapando comodines.
func LikePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
