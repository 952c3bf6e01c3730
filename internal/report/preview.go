package report

import "github.com/andresuchdata/salesboard/internal/domain"

const DefaultPreviewSize = 5

// BuildPreview returns the top n entities by units with the monthly totals of those
// entities and the grand total of the whole collection.
func BuildPreview(t domain.EntityType, c domain.GroupedCollection, n int) domain.Preview {
	if n <= 0 {
		n = DefaultPreviewSize
	}
	rows := Table(c, TableOptions{Field: SortByTotalUnits, Direction: Descending})
	if len(rows) > n {
		rows = rows[:n]
	}

	top := make(domain.GroupedCollection, len(rows))
	for _, r := range rows {
		top[r.Name] = c[r.Name]
	}

	return domain.Preview{
		EntityType:    t,
		Top:           rows,
		MonthlyTotals: MonthlyTotals(top, ""),
		GrandTotal:    c.TotalUnits(),
		Count:         len(c),
	}
}
