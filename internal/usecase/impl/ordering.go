package impl

import (
	"cmp"
	"slices"

	"society/internal/domain/entity"
)

// sortLocations orders by country code, then name, then ID.
func sortLocations(locations []*entity.Location) {
	slices.SortFunc(locations, func(a, b *entity.Location) int {
		return cmp.Or(
			cmp.Compare(a.CountryCode, b.CountryCode),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

// sortEvents orders by start date, ascending for upcoming listings and
// descending otherwise. ID ascending breaks ties either way.
func sortEvents(events []*entity.Event, upcoming bool) {
	slices.SortFunc(events, func(a, b *entity.Event) int {
		byStart := a.StartDate.Compare(b.StartDate)
		if !upcoming {
			byStart = -byStart
		}

		return cmp.Or(byStart, cmp.Compare(a.ID, b.ID))
	})
}

// sortNearby orders upcoming results by (start, distance) and the rest by
// (distance, start descending). ID ascending is the final tie-break.
func sortNearby(results []*entity.NearbyEvent, upcoming bool) {
	slices.SortFunc(results, func(a, b *entity.NearbyEvent) int {
		byStart := a.Event.StartDate.Compare(b.Event.StartDate)
		byDistance := cmp.Compare(a.DistanceKm, b.DistanceKm)
		byID := cmp.Compare(a.Event.ID, b.Event.ID)

		if upcoming {
			return cmp.Or(byStart, byDistance, byID)
		}

		return cmp.Or(byDistance, -byStart, byID)
	})
}
