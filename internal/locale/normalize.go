// Package locale holds the Turkish-locale helpers shared by the import pipeline:
// tolerant string comparison, number and date parsing, and number formatting.
package locale

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var asciiFolder = strings.NewReplacer(
	"ı", "i",
	"ş", "s",
	"ğ", "g",
	"ü", "u",
	"ö", "o",
	"ç", "c",
	"\u0307", "", // combining dot left behind by non-Turkish lowering of "İ"
)

// Normalize lowercases s using Turkish casing rules and folds Turkish letters to
// their closest ASCII equivalent. The result is for comparison only, never display.
func Normalize(s string) string {
	lower := cases.Lower(language.Turkish).String(s)
	return strings.TrimSpace(asciiFolder.Replace(lower))
}

// EqualFold reports whether a and b are equal after Normalize.
func EqualFold(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ContainsFold reports whether the normalized s contains any of the normalized needles.
func ContainsFold(s string, needles ...string) bool {
	n := Normalize(s)
	for _, needle := range needles {
		if needle == "" {
			continue
		}
		if strings.Contains(n, Normalize(needle)) {
			return true
		}
	}
	return false
}
