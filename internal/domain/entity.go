package domain

import (
	"errors"
	"strings"

	"github.com/andresuchdata/salesboard/internal/locale"
)

// EntityType is the reporting dimension a spreadsheet row belongs to.
type EntityType string

const (
	EntityBrand    EntityType = "brand"
	EntityCategory EntityType = "category"
	EntityProduct  EntityType = "product"
	EntityCustomer EntityType = "customer"
	EntityChannel  EntityType = "channel"
)

var ErrUnknownEntityType = errors.New("unknown entity type")

var entityTypes = []EntityType{EntityBrand, EntityCategory, EntityProduct, EntityCustomer, EntityChannel}

// Keywords are matched as substrings of the normalized "Tip" value.
var entityKeywords = map[EntityType][]string{
	EntityBrand:    {"marka"},
	EntityCategory: {"kategori"},
	EntityProduct:  {"ürün", "product"},
	EntityCustomer: {"müşteri", "musteri"},
	EntityChannel:  {"kanal", "channel"},
}

var entityLabels = map[EntityType]string{
	EntityBrand:    "Marka",
	EntityCategory: "Kategori",
	EntityProduct:  "Ürün",
	EntityCustomer: "Müşteri",
	EntityChannel:  "Kanal",
}

// EntityTypes returns the five entity types in reporting order.
func EntityTypes() []EntityType {
	return append([]EntityType(nil), entityTypes...)
}

// Keywords returns the type-tag substrings that select t.
func (t EntityType) Keywords() []string {
	return entityKeywords[t]
}

// Label returns the Turkish display label of t.
func (t EntityType) Label() string {
	if label, ok := entityLabels[t]; ok {
		return label
	}
	return string(t)
}

// Matches reports whether a raw type tag belongs to t.
func (t EntityType) Matches(tag string) bool {
	return locale.ContainsFold(tag, entityKeywords[t]...)
}

// ParseEntityType accepts the English identifier or any of the Turkish keywords
// (case- and diacritic-insensitive).
func ParseEntityType(label string) (EntityType, error) {
	n := locale.Normalize(label)
	if n == "" {
		return "", ErrUnknownEntityType
	}
	for _, t := range entityTypes {
		if n == string(t) || n == locale.Normalize(entityLabels[t]) {
			return t, nil
		}
		for _, kw := range entityKeywords[t] {
			if n == locale.Normalize(kw) {
				return t, nil
			}
		}
	}
	// plural forms used in URLs, e.g. "brands", "categories"
	switch {
	case strings.HasPrefix(n, "categor"):
		return EntityCategory, nil
	case strings.HasSuffix(n, "s") && len(n) > 1:
		return ParseEntityType(n[:len(n)-1])
	}
	return "", ErrUnknownEntityType
}
