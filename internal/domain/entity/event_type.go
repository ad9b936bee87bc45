package entity

import "strings"

// EventType classifies an Event.
type EventType string

const (
	EventTypeReligious EventType = "RELIGIOUS"
	EventTypeConcert   EventType = "CONCERT"
	EventTypeMarket    EventType = "MARKET"
	EventTypeCommunity EventType = "COMMUNITY"
)

// eventTypeLabels maps the human-readable labels used in spreadsheets.
var eventTypeLabels = map[string]EventType{
	"religious ceremony":    EventTypeReligious,
	"concert/entertainment": EventTypeConcert,
	"market/food festival":  EventTypeMarket,
	"community gathering":   EventTypeCommunity,
}

// String returns the string representation of the EventType.
func (t EventType) String() string {
	return string(t)
}

// IsValid checks if the EventType is a valid value.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeReligious, EventTypeConcert, EventTypeMarket, EventTypeCommunity:
		return true
	default:
		return false
	}
}

// ParseEventType accepts an enum name or its display label, ignoring case.
// Unlike categories there is no fallback: ok is false for unknown input.
func ParseEventType(s string) (EventType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if t := EventType(strings.ToUpper(normalized)); t.IsValid() {
		return t, true
	}
	if t, ok := eventTypeLabels[normalized]; ok {
		return t, true
	}

	return "", false
}
