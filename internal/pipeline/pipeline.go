// Package pipeline canonicalizes parsed spreadsheet rows and groups them by entity type.
package pipeline

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/salesboard/internal/domain"
	"github.com/andresuchdata/salesboard/internal/sheet"
)

// Process parses raw text and runs the full pipeline over it.
func Process(raw string) (domain.Dataset, Stats) {
	return Run(sheet.Parse(raw))
}

// Run canonicalizes every row and builds the five grouped collections. It never
// fails: unusable rows are dropped and unmatched type tags are left ungrouped.
func Run(rows []sheet.RawRow) (domain.Dataset, Stats) {
	start := time.Now()

	records := make([]domain.CanonicalRecord, 0, len(rows))
	for _, row := range rows {
		if rec, ok := Canonicalize(row); ok {
			records = append(records, rec)
		}
	}

	ds := domain.Dataset{
		Records:     records,
		Collections: make(map[domain.EntityType]domain.GroupedCollection, 5),
		RowCount:    len(rows),
		DroppedRows: len(rows) - len(records),
	}
	for _, t := range domain.EntityTypes() {
		ds.Collections[t] = GroupByType(records, t)
	}

	stats := Stats{
		Rows:         ds.RowCount,
		Canonical:    len(records),
		Dropped:      ds.DroppedRows,
		Unclassified: countUnclassified(records),
		Duration:     time.Since(start),
	}

	log.Debug().
		Int("rows", stats.Rows).
		Int("canonical", stats.Canonical).
		Int("dropped", stats.Dropped).
		Int("unclassified", stats.Unclassified).
		Dur("duration", stats.Duration).
		Msg("pipeline: run completed")

	return ds, stats
}

func countUnclassified(records []domain.CanonicalRecord) int {
	n := 0
	for _, rec := range records {
		matched := false
		for _, t := range domain.EntityTypes() {
			if t.Matches(rec.EntityTypeTag) {
				matched = true
				break
			}
		}
		if !matched {
			n++
		}
	}
	return n
}
