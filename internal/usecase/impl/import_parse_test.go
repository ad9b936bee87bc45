package impl

import (
	"testing"
	"time"

	domainerrors "society/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleTime(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{name: "utc timestamp", value: "2026-03-01T10:00:00Z", want: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{name: "offset timestamp", value: "2026-03-01T10:00:00+02:00", want: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)},
		{name: "fractional seconds", value: "2026-03-01T10:00:00.5Z", want: time.Date(2026, 3, 1, 10, 0, 0, 5e8, time.UTC)},
		{name: "basic offset", value: "2030-11-01T18:00:00+0700", want: time.Date(2030, 11, 1, 11, 0, 0, 0, time.UTC)},
		{name: "hour offset", value: "2030-11-01T18:00:00+07", want: time.Date(2030, 11, 1, 11, 0, 0, 0, time.UTC)},
		{name: "space and minutes with offset", value: "2030-11-01 18:00+07:00", want: time.Date(2030, 11, 1, 11, 0, 0, 0, time.UTC)},
		{name: "space with utc designator", value: "2030-11-01 18:00:00Z", want: time.Date(2030, 11, 1, 18, 0, 0, 0, time.UTC)},
		{name: "fraction with basic offset", value: "2030-11-01T18:00:00.25-0530", want: time.Date(2030, 11, 1, 23, 30, 0, 25e7, time.UTC)},
		{name: "minutes with hour offset", value: "2030-11-01T18:00-03", want: time.Date(2030, 11, 1, 21, 0, 0, 0, time.UTC)},
		{name: "naive timestamp", value: "2026-03-01T10:00:00", want: time.Date(2026, 3, 1, 10, 0, 0, 0, berlin)},
		{name: "naive with space", value: "2026-03-01 10:00:00", want: time.Date(2026, 3, 1, 10, 0, 0, 0, berlin)},
		{name: "iso date", value: "2026-06-28", want: time.Date(2026, 6, 28, 0, 0, 0, 0, berlin)},
		{name: "slashed date", value: "01/03/2026", want: time.Date(2026, 3, 1, 0, 0, 0, 0, berlin)},
		{name: "dashed date", value: " 28-06-2026 ", want: time.Date(2026, 6, 28, 0, 0, 0, 0, berlin)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlexibleTime(tt.value, berlin)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseFlexibleTime_Invalid(t *testing.T) {
	for _, value := range []string{"", "tomorrow", "2026-13-01", "31/02/2026", "2026/03/01", "2026-03-01T10:00:00+7"} {
		_, err := parseFlexibleTime(value, time.UTC)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed, value)
	}
}

func TestParseCoordinates(t *testing.T) {
	lat, lng, err := parseCoordinates(" 13.7465 ,100.4927 ")
	require.NoError(t, err)
	assert.InDelta(t, 13.7465, lat, 1e-12)
	assert.InDelta(t, 100.4927, lng, 1e-12)

	for _, value := range []string{"", "13.7", "1, 2, 3", "north, east", "13.7,"} {
		_, _, err := parseCoordinates(value)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed, value)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := map[string]string{
		"":                      "",
		"   ":                   "",
		"www.stm-society.com":   "https://www.stm-society.com",
		"http://example.com":    "http://example.com",
		"https://example.com/x": "https://example.com/x",
		"HTTPS://EXAMPLE.COM":   "HTTPS://EXAMPLE.COM",
	}

	for in, want := range tests {
		assert.Equal(t, want, normalizeURL(in), in)
	}
}

func TestLocationNamePrefix(t *testing.T) {
	assert.Equal(t, "Buddhavihara", locationNamePrefix("Buddhavihara (Birmingham)"))
	assert.Equal(t, "Wat Pho", locationNamePrefix(" Wat Pho "))
	assert.Equal(t, "", locationNamePrefix("(Cheshire)"))
}
