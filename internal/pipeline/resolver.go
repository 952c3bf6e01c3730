package pipeline

import (
	"github.com/andresuchdata/salesboard/internal/locale"
	"github.com/andresuchdata/salesboard/internal/sheet"
)

// ResolveValue returns the first non-empty value whose header matches one of the
// candidates. Exact header matches are tried first, in candidate order; only when
// none hits are the row's headers compared case- and diacritic-insensitively, in
// column order.
//
// A header that is present but empty does not count as a match: resolution moves on
// to the next candidate, so a blank "Tip" column never hides a filled "Tür" column.
func ResolveValue(row sheet.RawRow, candidates []string) (string, bool) {
	for _, c := range candidates {
		if v, ok := row.Get(c); ok && v != "" {
			return v, true
		}
	}

	wanted := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		wanted[locale.Normalize(c)] = struct{}{}
	}
	for _, h := range row.Headers() {
		if _, ok := wanted[locale.Normalize(h)]; !ok {
			continue
		}
		if v, _ := row.Get(h); v != "" {
			return v, true
		}
	}
	return "", false
}

func resolveNumber(row sheet.RawRow, candidates []string) float64 {
	v, _ := ResolveValue(row, candidates)
	return locale.ParseNumber(v, 0)
}
