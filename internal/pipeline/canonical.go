package pipeline

import (
	"strings"

	"github.com/andresuchdata/salesboard/internal/domain"
	"github.com/andresuchdata/salesboard/internal/locale"
	"github.com/andresuchdata/salesboard/internal/sheet"
)

// Canonicalize turns a raw row into a typed record. It returns false when the row
// has no usable name.
func Canonicalize(row sheet.RawRow) (domain.CanonicalRecord, bool) {
	tag, name := identify(row)
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.CanonicalRecord{}, false
	}

	rec := domain.NewCanonicalRecord(name, strings.TrimSpace(tag), monthlySeries(row))
	rec.TotalAmount = resolveNumber(row, TotalHeaders)
	rec.Target = resolveNumber(row, TargetHeaders)
	rec.ForecastClose = resolveNumber(row, ForecastHeaders)
	rec.Percent = resolveNumber(row, PercentHeaders)
	if skt, ok := ResolveValue(row, ExpiryHeaders); ok {
		rec.ExpiryDate = strings.TrimSpace(skt)
	}
	return rec, true
}

// identify returns the type tag and display name. A leading type column makes the
// first two columns positional.
func identify(row sheet.RawRow) (tag, name string) {
	firstHeader, firstValue, _ := row.At(0)
	if firstHeader != "" && locale.ContainsFold(firstHeader, typeColumnMarkers...) {
		_, name, _ = row.At(1)
		return firstValue, name
	}

	tag, _ = ResolveValue(row, TypeHeaders)
	if v, ok := ResolveValue(row, NameHeaders); ok && strings.TrimSpace(v) != "" {
		return tag, v
	}
	return tag, firstValue
}

// monthlySeries fills each month from the first pass that supplies it. A slot that
// already holds a non-zero value is never overwritten or summed.
func monthlySeries(row sheet.RawRow) domain.MonthlySeries {
	var series domain.MonthlySeries

	for _, h := range row.Headers() {
		m, ok := LookupMonth(h)
		if !ok {
			continue
		}
		v, _ := row.Get(h)
		if series[m] == 0 {
			series[m] = locale.ParseNumber(v, 0)
		}
	}

	for _, mc := range MonthColumns {
		for _, variant := range mc.Variants {
			v, ok := ResolveValue(row, []string{variant})
			if !ok {
				continue
			}
			if series[mc.Month] == 0 {
				series[mc.Month] = locale.ParseNumber(v, 0)
			}
		}
	}
	return series
}
