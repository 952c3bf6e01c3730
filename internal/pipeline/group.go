package pipeline

import "github.com/andresuchdata/salesboard/internal/domain"

// GroupByType keys the records whose type tag matches t by name. A later record
// with the same name replaces the earlier one.
func GroupByType(records []domain.CanonicalRecord, t domain.EntityType) domain.GroupedCollection {
	out := domain.GroupedCollection{}
	for _, rec := range records {
		if !t.Matches(rec.EntityTypeTag) {
			continue
		}
		out[rec.Name] = rec
	}
	return out
}
