// Package entity contains the core business objects of the project.
package entity

import "strings"

// LocationCategory classifies a Location.
type LocationCategory string

const (
	CategoryTemple     LocationCategory = "TEMPLE"
	CategoryMarket     LocationCategory = "MARKET"
	CategoryRestaurant LocationCategory = "RESTAURANT"
	CategoryPartner    LocationCategory = "PARTNER"
)

// DefaultLocationCategory is used when a category is missing or unknown.
const DefaultLocationCategory = CategoryTemple

// String returns the string representation of the LocationCategory.
func (c LocationCategory) String() string {
	return string(c)
}

// IsValid checks if the LocationCategory is a valid value.
func (c LocationCategory) IsValid() bool {
	switch c {
	case CategoryTemple, CategoryMarket, CategoryRestaurant, CategoryPartner:
		return true
	default:
		return false
	}
}

// ParseLocationCategory matches s case-insensitively against the category
// names and falls back to DefaultLocationCategory.
func ParseLocationCategory(s string) LocationCategory {
	c := LocationCategory(strings.ToUpper(strings.TrimSpace(s)))
	if c.IsValid() {
		return c
	}

	return DefaultLocationCategory
}
