package report

import "github.com/andresuchdata/salesboard/internal/domain"

// MonthlyTotals sums each month over c. A non-empty name restricts the sum to that
// entity; an unknown name yields twelve zero points. Records are summed in name
// order so repeated runs produce identical floats.
func MonthlyTotals(c domain.GroupedCollection, name string) []domain.MonthlyTotal {
	var sum domain.MonthlySeries
	if name != "" {
		if rec, ok := c[name]; ok {
			sum = rec.MonthlySeries
		}
		return sum.Points()
	}
	for _, rec := range c.Records() {
		for m, v := range rec.MonthlySeries {
			sum[m] += v
		}
	}
	return sum.Points()
}
