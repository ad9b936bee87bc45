package impl

import (
	"strconv"
	"strings"
	"time"

	"society/internal/domain/entity"
	domainerrors "society/internal/domain/errors"
	"society/internal/usecase"
)

// CSV column names.
const (
	colName                     = "name"
	colCategory                 = "category"
	colAddress                  = "address"
	colWebsite                  = "website"
	colCountryCode              = "country_code"
	colRelatedStoreExternalID   = "related_store_external_id"
	colCoordinates              = "coordinates"
	colEventExternalID          = "event_external_id"
	colTitle                    = "title"
	colDescription              = "description"
	colBannerImage              = "banner_image"
	colEventType                = "event_type"
	colStartDate                = "start_date"
	colEndDate                  = "end_date"
	colEndDateLegacy            = "end_data"
	colDesignTemplateExternalID = "design_template_external_id"
	colLocationExternalID       = "location_external_id"
	colLocation                 = "location"
)

// Timestamp layouts tried in order. Layouts without an offset are read in
// the import time zone. Fractional seconds are accepted after any seconds
// field.
var (
	zonedLayouts = offsetLayouts()
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	dateLayouts = []string{
		"2006-01-02",
		"02/01/2006",
		"02-01-2006",
	}
)

// offsetLayouts covers "T" or space separators, with or without seconds,
// and offsets written as Z, ±hh:mm, ±hhmm or ±hh.
func offsetLayouts() []string {
	var layouts []string
	for _, sep := range []string{"T", " "} {
		for _, clock := range []string{"15:04:05", "15:04"} {
			for _, zone := range []string{"Z07:00", "Z0700", "Z07"} {
				layouts = append(layouts, "2006-01-02"+sep+clock+zone)
			}
		}
	}

	return layouts
}

// parseFlexibleTime accepts an ISO-8601 timestamp or a bare date. Bare dates
// resolve to midnight in loc.
func parseFlexibleTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, domainerrors.Validation("invalid datetime/date " + strconv.Quote(value))
}

// parseCoordinates reads "lat, lng" into an orb point.
func parseCoordinates(value string) (float64, float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, 0, domainerrors.Validation("missing coordinates")
	}

	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, domainerrors.Validation("invalid coordinates format " + strconv.Quote(value))
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, domainerrors.Validation("invalid latitude " + strconv.Quote(parts[0]))
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, domainerrors.Validation("invalid longitude " + strconv.Quote(parts[1]))
	}

	return lat, lng, nil
}

// normalizeURL trims value and prefixes https:// when no scheme is present.
// An empty value stays empty.
func normalizeURL(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "https://" + value
	}

	return value
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

// parseLocationRow builds a validated location from a CSV row.
func parseLocationRow(row usecase.ImportRow) (*entity.Location, error) {
	name := row.Get(colName)
	if name == "" {
		return nil, domainerrors.Validation("missing name")
	}

	lat, lng, err := parseCoordinates(row.Get(colCoordinates))
	if err != nil {
		return nil, err
	}
	point := entity.NewPoint(lat, lng)

	location := &entity.Location{
		Name:                   name,
		Category:               entity.ParseLocationCategory(row.Get(colCategory)),
		Address:                row.Get(colAddress),
		Website:                optionalString(normalizeURL(row.Get(colWebsite))),
		CountryCode:            row.Get(colCountryCode),
		RelatedStoreExternalID: row.Get(colRelatedStoreExternalID),
		Coordinates:            &point,
	}
	location.Normalize()

	if err := location.Validate(); err != nil {
		return nil, err
	}

	return location, nil
}

// parseEventRow builds an event from a CSV row. LocationID is left for the
// caller to resolve.
func parseEventRow(row usecase.ImportRow, loc *time.Location) (*entity.Event, error) {
	externalID := row.Get(colEventExternalID)
	if externalID == "" {
		return nil, domainerrors.Validation("missing event_external_id")
	}
	title := row.Get(colTitle)
	if title == "" {
		return nil, domainerrors.Validation("missing title")
	}

	startRaw := row.Get(colStartDate)
	if startRaw == "" {
		return nil, domainerrors.Validation("missing start_date")
	}
	start, err := parseFlexibleTime(startRaw, loc)
	if err != nil {
		return nil, err
	}

	var end *time.Time
	if endRaw := row.Get(colEndDate, colEndDateLegacy); endRaw != "" {
		t, err := parseFlexibleTime(endRaw, loc)
		if err != nil {
			return nil, err
		}
		end = &t
	}

	rawType := row.Get(colEventType)
	eventType, ok := entity.ParseEventType(rawType)
	if !ok {
		return nil, domainerrors.Validation("invalid event_type " + strconv.Quote(rawType))
	}

	return &entity.Event{
		ExternalID:               externalID,
		Title:                    title,
		Description:              row.Get(colDescription),
		BannerImage:              normalizeURL(row.Get(colBannerImage)),
		EventType:                eventType,
		StartDate:                start,
		EndDate:                  end,
		DesignTemplateExternalID: row.Get(colDesignTemplateExternalID),
	}, nil
}

// locationNamePrefix is the part of a location reference before any "(",
// so "Wat Pho (Bangkok)" also matches "Wat Pho".
func locationNamePrefix(name string) string {
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}

	return strings.TrimSpace(name)
}
