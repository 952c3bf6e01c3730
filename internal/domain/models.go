// internal/domain/models.go
package domain

import "sort"

// CanonicalRecord is one spreadsheet row after header resolution and locale parsing.
// TotalUnits is always the sum of MonthlySeries.
type CanonicalRecord struct {
	Name          string        `json:"name"`
	EntityTypeTag string        `json:"entity_type_tag"`
	TotalAmount   float64       `json:"total_amount"`
	TotalUnits    float64       `json:"total_units"`
	Target        float64       `json:"target"`
	ForecastClose float64       `json:"forecast_close"`
	Percent       float64       `json:"percent"`
	ExpiryDate    string        `json:"expiry_date,omitempty"` // raw SKT value
	MonthlySeries MonthlySeries `json:"monthly_series"`
}

// NewCanonicalRecord builds a record with TotalUnits derived from series.
func NewCanonicalRecord(name, tag string, series MonthlySeries) CanonicalRecord {
	return CanonicalRecord{
		Name:          name,
		EntityTypeTag: tag,
		TotalUnits:    series.Total(),
		MonthlySeries: series,
	}
}

// GroupedCollection maps entity display name to its record, scoped to one EntityType.
type GroupedCollection map[string]CanonicalRecord

// Names returns the keys in byte order.
func (c GroupedCollection) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalUnits sums TotalUnits over every record in the collection.
func (c GroupedCollection) TotalUnits() float64 {
	var total float64
	for _, name := range c.Names() {
		total += c[name].TotalUnits
	}
	return total
}

// Records returns the records ordered by name.
func (c GroupedCollection) Records() []CanonicalRecord {
	names := c.Names()
	out := make([]CanonicalRecord, 0, len(names))
	for _, name := range names {
		out = append(out, c[name])
	}
	return out
}

// Dataset is the output of one full pipeline run.
type Dataset struct {
	Records     []CanonicalRecord                `json:"records"`
	Collections map[EntityType]GroupedCollection `json:"collections"`
	RowCount    int                              `json:"row_count"`
	DroppedRows int                              `json:"dropped_rows"`
}

// Collection returns the grouped collection for t, never nil.
func (d Dataset) Collection(t EntityType) GroupedCollection {
	if c, ok := d.Collections[t]; ok && c != nil {
		return c
	}
	return GroupedCollection{}
}

// Counts returns the size of each collection keyed by entity type.
func (d Dataset) Counts() map[EntityType]int {
	out := make(map[EntityType]int, len(entityTypes))
	for _, t := range entityTypes {
		out[t] = len(d.Collection(t))
	}
	return out
}
