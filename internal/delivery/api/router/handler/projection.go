package handler

import (
	"time"

	"society/internal/domain/entity"
)

// LocationOut is the public shape of a location.
type LocationOut struct {
	ID                     int64    `json:"id"`
	Name                   string   `json:"name"`
	Category               string   `json:"category"`
	Address                string   `json:"address"`
	Website                *string  `json:"website"`
	CountryCode            string   `json:"country_code"`
	RelatedStoreExternalID string   `json:"related_store_external_id"`
	Lat                    *float64 `json:"lat"`
	Lng                    *float64 `json:"lng"`
}

// EventOut is the public shape of an event with its location flattened in.
// DistanceKm is only set by the nearby search.
type EventOut struct {
	ID               int64      `json:"id"`
	ExternalID       string     `json:"event_external_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	BannerImage      string     `json:"banner_image"`
	EventType        string     `json:"event_type"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	LocationID       int64      `json:"location_id"`
	LocationName     string     `json:"location_name"`
	LocationCategory string     `json:"location_category"`
	LocationAddress  string     `json:"location_address"`
	LocationWebsite  string     `json:"location_website"`
	CountryCode      string     `json:"country_code"`
	Lat              *float64   `json:"lat"`
	Lng              *float64   `json:"lng"`
	DistanceKm       *float64   `json:"distance_km,omitempty"`
}

// MemberProfileOut is the public shape of a member profile.
type MemberProfileOut struct {
	ID            int64    `json:"id"`
	UserID        int64    `json:"user_id"`
	HomeCity      string   `json:"home_city"`
	Interests     []string `json:"interests"`
	SavedEventIDs []int64  `json:"saved_event_ids"`
}

func toLocationOut(l *entity.Location) LocationOut {
	return LocationOut{
		ID:                     l.ID,
		Name:                   l.Name,
		Category:               l.Category.String(),
		Address:                l.Address,
		Website:                l.Website,
		CountryCode:            l.CountryCode,
		RelatedStoreExternalID: l.RelatedStoreExternalID,
		Lat:                    l.Lat(),
		Lng:                    l.Lng(),
	}
}

func toLocationOuts(locations []*entity.Location) []LocationOut {
	out := make([]LocationOut, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationOut(l))
	}

	return out
}

func toEventOut(e *entity.Event) EventOut {
	out := EventOut{
		ID:          e.ID,
		ExternalID:  e.ExternalID,
		Title:       e.Title,
		Description: e.Description,
		BannerImage: e.BannerImage,
		EventType:   e.EventType.String(),
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		LocationID:  e.LocationID,
	}

	if loc := e.Location; loc != nil {
		out.LocationName = loc.Name
		out.LocationCategory = loc.Category.String()
		out.LocationAddress = loc.Address
		if loc.Website != nil {
			out.LocationWebsite = *loc.Website
		}
		out.CountryCode = loc.CountryCode
		out.Lat = loc.Lat()
		out.Lng = loc.Lng()
	}

	return out
}

func toEventOuts(events []*entity.Event) []EventOut {
	out := make([]EventOut, 0, len(events))
	for _, e := range events {
		out = append(out, toEventOut(e))
	}

	return out
}

func toNearbyEventOuts(events []*entity.NearbyEvent) []EventOut {
	out := make([]EventOut, 0, len(events))
	for _, n := range events {
		item := toEventOut(n.Event)
		distance := n.DistanceKm
		item.DistanceKm = &distance
		out = append(out, item)
	}

	return out
}

func toMemberProfileOut(p *entity.MemberProfile) MemberProfileOut {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	saved := p.SavedEventIDs
	if saved == nil {
		saved = []int64{}
	}

	return MemberProfileOut{
		ID:            p.ID,
		UserID:        p.UserID,
		HomeCity:      p.HomeCity,
		Interests:     interests,
		SavedEventIDs: saved,
	}
}
