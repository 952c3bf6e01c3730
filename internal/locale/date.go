package locale

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type dateLayout struct {
	pattern *regexp.Regexp
	// submatch positions of day, month and year
	day, month, year int
	twoDigitYear     bool
}

// Order matters: the first matching layout wins.
var dateLayouts = []dateLayout{
	{pattern: regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`), day: 1, month: 2, year: 3},
	{pattern: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`), day: 1, month: 2, year: 3},
	{pattern: regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`), day: 3, month: 2, year: 1},
	{pattern: regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2})$`), day: 1, month: 2, year: 3, twoDigitYear: true},
	{pattern: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`), day: 1, month: 2, year: 3, twoDigitYear: true},
}

// ParseDate parses DD.MM.YYYY, DD/MM/YYYY, YYYY-MM-DD, DD.MM.YY and DD/MM/YY in the
// local time zone. Two-digit years are 2000+YY.
func ParseDate(raw string) (time.Time, bool) {
	return ParseDateIn(raw, time.Local)
}

// ParseDateIn is ParseDate for an explicit location. The returned time is midnight.
// Impossible calendar dates such as 31.02.2024 or month 13 are rejected.
func ParseDateIn(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range dateLayouts {
		m := layout.pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}

		day, _ := strconv.Atoi(m[layout.day])
		month, _ := strconv.Atoi(m[layout.month])
		year, _ := strconv.Atoi(m[layout.year])
		if layout.twoDigitYear {
			year += 2000
		}

		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		if t.Year() != year || int(t.Month()) != month || t.Day() != day {
			return time.Time{}, false
		}
		return t, true
	}

	return time.Time{}, false
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
