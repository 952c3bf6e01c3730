// Package report derives dashboard views from grouped collections.
package report

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/andresuchdata/salesboard/internal/domain"
	"github.com/andresuchdata/salesboard/internal/locale"
)

// CategorizeByExpiry buckets products by SKT relative to now. Products without a
// parseable expiry date or without units are left out of every bucket; percentages
// are against the units of the whole collection.
func CategorizeByExpiry(products domain.GroupedCollection, now time.Time) domain.ExpiryReport {
	today := locale.StartOfDay(now)
	plus3 := today.AddDate(0, 3, 0)
	plus6 := today.AddDate(0, 6, 0)

	buckets := map[domain.ExpiryBucket][]domain.ExpiryItem{}
	for _, rec := range products.Records() {
		if rec.TotalUnits == 0 {
			continue
		}
		date, ok := locale.ParseDateIn(rec.ExpiryDate, now.Location())
		if !ok {
			continue
		}

		var b domain.ExpiryBucket
		switch {
		case date.Before(today):
			b = domain.ExpiryOverdue
		case !date.After(plus3):
			b = domain.ExpiryWithin3Months
		case !date.After(plus6):
			b = domain.Expiry3To6Months
		default:
			b = domain.ExpiryOver6Months
		}
		buckets[b] = append(buckets[b], domain.ExpiryItem{
			Name:       rec.Name,
			ExpiryDate: rec.ExpiryDate,
			TotalUnits: rec.TotalUnits,
		})
	}

	stock := products.TotalUnits()
	build := func(b domain.ExpiryBucket) domain.ExpiryBucketReport {
		items := buckets[b]
		if items == nil {
			items = []domain.ExpiryItem{}
		}
		sortExpiryItems(items)

		var total float64
		for _, it := range items {
			total += it.TotalUnits
		}
		return domain.ExpiryBucketReport{
			Bucket:     b,
			Items:      items,
			TotalUnits: total,
			Percent:    percentOf(total, stock),
		}
	}

	return domain.ExpiryReport{
		Overdue:       build(domain.ExpiryOverdue),
		Within3Months: build(domain.ExpiryWithin3Months),
		Between3And6:  build(domain.Expiry3To6Months),
		Over6Months:   build(domain.ExpiryOver6Months),
		StockTotal:    stock,
	}
}

func sortExpiryItems(items []domain.ExpiryItem) {
	col := newCollator()
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].TotalUnits != items[j].TotalUnits {
			return items[i].TotalUnits > items[j].TotalUnits
		}
		return col.CompareString(items[i].Name, items[j].Name) < 0
	})
}

func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return locale.Round(part/whole*100, 2)
}

// newCollator returns a Turkish collator. Collators keep internal buffers, so each
// sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Turkish)
}
