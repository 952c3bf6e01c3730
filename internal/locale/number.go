package locale

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberPrefix = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)

// ParseNumber parses a Turkish-formatted number such as "1.234,56".
//
// Every "." is treated as a thousands separator and dropped, the first "," becomes the
// decimal point, and anything other than digits, "." and "-" is stripped. The longest
// numeric prefix of what remains is parsed. def is returned for empty input or when no
// finite number can be read.
func ParseNumber(raw string, def float64) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	m := numberPrefix.FindString(s)
	if m == "" {
		return def
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
