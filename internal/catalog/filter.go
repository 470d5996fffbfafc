// Package catalog implements property discovery: the predicate-based
// catalog filter behind the listing page and the similarity-based
// recommender behind the detail page. Both are pure functions over a
// catalog snapshot owned by the caller.
package catalog

import (
	"strings"

	"github.com/satish051/RealEstateApp/internal/property"
)

// Query holds optional filter criteria for the catalog.
// Absent fields mean "no constraint on this dimension": an empty
// SearchText or ListingType and nil price bounds filter nothing.
type Query struct {
	// SearchText matches as a case-insensitive substring of a
	// property's title or address.
	SearchText string

	// MinPrice and MaxPrice are inclusive bounds in cents.
	// MinPrice > MaxPrice is legal and matches nothing.
	MinPrice *int64
	MaxPrice *int64

	// ListingType restricts to for-sale or for-rent listings.
	ListingType property.ListingType
}

// Filter returns the properties matching every active predicate of q,
// preserving catalog order. It never mutates the catalog and never
// fails: malformed or missing criteria degrade to "no constraint".
func Filter(catalog []*property.Property, q Query) []*property.Property {
	search := strings.ToLower(strings.TrimSpace(q.SearchText))

	var matched []*property.Property
	for _, p := range catalog {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Address), search) {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		if q.ListingType != "" && p.ListingType != q.ListingType {
			continue
		}
		matched = append(matched, p)
	}

	return matched
}
