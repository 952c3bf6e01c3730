package report

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/salesboard/internal/domain"
)

var ErrUnknownPeriod = errors.New("unknown period")

// Period is a sales window relative to now.
type Period string

const (
	PeriodDay      Period = "1gun"
	PeriodWeek     Period = "1hafta"
	PeriodMonth    Period = "1ay"
	PeriodQuarter  Period = "3ay"
	PeriodHalfYear Period = "6ay"
	PeriodYear     Period = "1yil"
)

const (
	DefaultPeriodLimit  = 50
	DefaultInitialStock = 300000
)

var periodLabels = map[Period]string{
	PeriodDay:      "1 Gün",
	PeriodWeek:     "1 Hafta",
	PeriodMonth:    "1 Ay",
	PeriodQuarter:  "3 Ay",
	PeriodHalfYear: "6 Ay",
	PeriodYear:     "1 Yıl",
}

// Periods lists the supported windows from shortest to longest.
func Periods() []Period {
	return []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodHalfYear, PeriodYear}
}

func (p Period) Label() string {
	return periodLabels[p]
}

// ParsePeriod accepts the identifiers of Periods.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := periodLabels[p]; !ok {
		return "", ErrUnknownPeriod
	}
	return p, nil
}

// SalesIn estimates the units sold in p from a monthly series.
func SalesIn(series domain.MonthlySeries, p Period, now time.Time) float64 {
	current := int(now.Month()) - 1
	day := float64(now.Day())

	switch p {
	case PeriodDay:
		return math.Round(series[current] / day)
	case PeriodWeek:
		return math.Round(series[current] / day * math.Min(7, day))
	case PeriodMonth:
		return series[(current+11)%12]
	case PeriodQuarter:
		return trailing(series, current, 3)
	case PeriodHalfYear:
		return trailing(series, current, 6)
	case PeriodYear:
		return series.Total()
	}
	return 0
}

// trailing sums n months ending with current, wrapping into the previous year's slots.
func trailing(series domain.MonthlySeries, current, n int) float64 {
	var total float64
	for i := 0; i < n; i++ {
		total += series[(current-i+12)%12]
	}
	return total
}

// PeriodSales ranks entities by their sales in p, dropping those with none.
func PeriodSales(c domain.GroupedCollection, p Period, now time.Time, limit int) ([]domain.PeriodEntry, error) {
	if _, ok := periodLabels[p]; !ok {
		return nil, ErrUnknownPeriod
	}
	if limit <= 0 {
		limit = DefaultPeriodLimit
	}

	entries := make([]domain.PeriodEntry, 0, len(c))
	for _, rec := range c.Records() {
		sales := SalesIn(rec.MonthlySeries, p, now)
		if sales <= 0 {
			continue
		}
		entries = append(entries, domain.PeriodEntry{Name: rec.Name, Sales: sales})
	}

	col := newCollator()
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Sales != entries[j].Sales {
			return entries[i].Sales > entries[j].Sales
		}
		return col.CompareString(entries[i].Name, entries[j].Name) < 0
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// StockLevels estimates remaining stock as initialStock minus the sales in p.
// Products with nothing left are omitted; the lowest stock comes first.
func StockLevels(c domain.GroupedCollection, p Period, now time.Time, initialStock float64) ([]domain.StockLevel, error) {
	if _, ok := periodLabels[p]; !ok {
		return nil, ErrUnknownPeriod
	}

	levels := make([]domain.StockLevel, 0, len(c))
	for _, rec := range c.Records() {
		sales := SalesIn(rec.MonthlySeries, p, now)
		remaining := math.Max(0, initialStock-sales)
		if remaining <= 0 {
			continue
		}
		levels = append(levels, domain.StockLevel{Name: rec.Name, Sales: sales, Remaining: remaining})
	}

	col := newCollator()
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Remaining != levels[j].Remaining {
			return levels[i].Remaining < levels[j].Remaining
		}
		return col.CompareString(levels[i].Name, levels[j].Name) < 0
	})
	return levels, nil
}
