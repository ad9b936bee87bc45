package entity

import (
	"strings"
	"unicode"

	domainerrors "society/internal/domain/errors"
)

// Validate checks the invariants every stored Location must satisfy.
func (l *Location) Validate() error {
	switch {
	case l.Name == "":
		return domainerrors.Validation("location name is required")
	case l.Coordinates == nil:
		return domainerrors.Validation("location coordinates are required")
	case !ValidLatLng(l.Coordinates.Lat(), l.Coordinates.Lon()):
		return domainerrors.Validation("location coordinates are out of range")
	case !l.Category.IsValid():
		return domainerrors.Validation("unknown location category " + l.Category.String())
	case !isCountryCode(l.CountryCode):
		return domainerrors.Validation("country code must be two letters, got " + quote(l.CountryCode))
	}

	return nil
}

// Validate checks the invariants every stored Event must satisfy.
func (e *Event) Validate() error {
	switch {
	case e.ExternalID == "":
		return domainerrors.Validation("event external id is required")
	case e.Title == "":
		return domainerrors.Validation("event title is required")
	case !e.EventType.IsValid():
		return domainerrors.Validation("unknown event type " + quote(e.EventType.String()))
	case e.StartDate.IsZero():
		return domainerrors.Validation("event start date is required")
	case e.EndDate != nil && e.EndDate.Before(e.StartDate):
		return domainerrors.Validation("event end date is before its start date")
	case e.LocationID == 0:
		return domainerrors.Validation("event location is required")
	}

	return nil
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}

	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) < 0
}

func quote(s string) string {
	return "'" + s + "'"
}
