package report

import (
	"sort"
	"strings"

	"github.com/andresuchdata/salesboard/internal/domain"
)

type SortField string

const (
	SortByName           SortField = "name"
	SortByTotalUnits     SortField = "total_units"
	SortByMonthlyAverage SortField = "monthly_average"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// TableOptions selects the ordering of an entity table.
type TableOptions struct {
	Field     SortField
	Direction SortDirection
}

// ParseTableOptions maps query values to options, falling back to total units
// descending for anything unrecognized.
func ParseTableOptions(field, direction string) TableOptions {
	opts := TableOptions{Field: SortByTotalUnits, Direction: Descending}
	switch f := SortField(strings.ToLower(strings.TrimSpace(field))); f {
	case SortByName, SortByTotalUnits, SortByMonthlyAverage:
		opts.Field = f
	}
	if SortDirection(strings.ToLower(strings.TrimSpace(direction))) == Ascending {
		opts.Direction = Ascending
	}
	return opts
}

// Table lists every entity of c with its monthly average, ordered by opts.
func Table(c domain.GroupedCollection, opts TableOptions) []domain.EntityRow {
	rows := make([]domain.EntityRow, 0, len(c))
	for _, rec := range c.Records() {
		rows = append(rows, entityRow(rec))
	}

	col := newCollator()
	byName := func(i, j int) int { return col.CompareString(rows[i].Name, rows[j].Name) }
	sort.SliceStable(rows, func(i, j int) bool {
		var cmp int
		switch opts.Field {
		case SortByName:
			cmp = byName(i, j)
		case SortByMonthlyAverage:
			cmp = compareFloat(rows[i].MonthlyAverage, rows[j].MonthlyAverage)
		default:
			cmp = compareFloat(rows[i].TotalUnits, rows[j].TotalUnits)
		}
		if cmp == 0 {
			return byName(i, j) < 0
		}
		if opts.Direction == Ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return rows
}

func entityRow(rec domain.CanonicalRecord) domain.EntityRow {
	return domain.EntityRow{
		Name:           rec.Name,
		TotalUnits:     rec.TotalUnits,
		MonthlyAverage: rec.TotalUnits / domain.MonthCount,
		MonthlySeries:  rec.MonthlySeries,
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
