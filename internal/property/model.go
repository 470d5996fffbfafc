// Package property provides the property domain model and data access.
package property

import (
	"time"
)

// ListingType says whether a property is offered for sale or for rent.
// A property has exactly one listing type.
type ListingType string

const (
	ForSale ListingType = "for_sale"
	ForRent ListingType = "for_rent"
)

// ValidListingType returns true if s is a known listing type.
func ValidListingType(s string) bool {
	switch ListingType(s) {
	case ForSale, ForRent:
		return true
	}
	return false
}

// Property represents a listed property.
// Price is stored in cents.
type Property struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Address     string      `json:"address"`
	Price       int64       `json:"price"`
	Bedrooms    int         `json:"bedrooms"`
	Bathrooms   int         `json:"bathrooms"`
	ListingType ListingType `json:"listing_type"`
	CoverImage  string      `json:"cover_image,omitempty"`
	AgentName   string      `json:"agent_name,omitempty"`
	AgentEmail  string      `json:"agent_email,omitempty"`
	AgentPhone  string      `json:"agent_phone,omitempty"`
	Images      []*Image    `json:"images,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Image is a gallery image attached to a property.
// Filename is the stored file name, not a full path.
type Image struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"property_id"`
	Filename   string `json:"filename"`
}
