package usecase

import (
	"context"
	"strings"

	"society/internal/domain/entity"
)

// ImportKind names the record type of a batch.
type ImportKind string

const (
	ImportKindLocations ImportKind = "locations"
	ImportKindEvents    ImportKind = "events"
)

// UpsertOutcome tells whether an upsert created or updated its record.
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
)

// ImportRow is one data row of a CSV batch keyed by lower-case header name.
type ImportRow struct {
	Number int // 1-based position among data rows.
	Line   int // Line in the source file where the row starts.
	Fields map[string]string
	Err    error // Set when the record itself could not be parsed.
}

// Get returns the trimmed value of the first non-empty column among names.
func (r ImportRow) Get(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.Fields[name]); v != "" {
			return v
		}
	}

	return ""
}

// ImportSkip records why a row was not applied.
type ImportSkip struct {
	Row    int    `json:"row"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	Code   string `json:"code"`
}

// ImportReport tallies a batch. Interrupted is set when the context ended
// before every row was processed.
type ImportReport struct {
	BatchID     string       `json:"batch_id"`
	Kind        ImportKind   `json:"kind"`
	Created     int          `json:"created"`
	Updated     int          `json:"updated"`
	Skipped     int          `json:"skipped"`
	Skips       []ImportSkip `json:"skips"`
	Interrupted bool         `json:"interrupted"`
}

// ImportOptions adjusts a single batch.
type ImportOptions struct {
	Source            string // Recorded on the completion event.
	AllowNameFallback bool   // Resolve event locations by name when no external id is given.
}

// ImportUsecase defines the CSV upsert operations.
type ImportUsecase interface {
	UpsertLocation(ctx context.Context, row ImportRow) (UpsertOutcome, *entity.Location, error)
	UpsertEvent(ctx context.Context, row ImportRow, opts ImportOptions) (UpsertOutcome, *entity.Event, error)

	// ImportLocations applies rows in order. A failing row is skipped and
	// never aborts the batch. On cancellation the partial report is returned
	// together with the context error.
	ImportLocations(ctx context.Context, rows []ImportRow, opts ImportOptions) (*ImportReport, error)
	ImportEvents(ctx context.Context, rows []ImportRow, opts ImportOptions) (*ImportReport, error)
}
