package service

import (
	"context"
	"time"
)

// ImportCompletedEvent summarizes a finished import batch for downstream consumers.
type ImportCompletedEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	BatchID     string    `json:"batch_id"`
	Kind        string    `json:"kind"` // "locations" or "events"
	Source      string    `json:"source,omitempty"`
	Created     int       `json:"created"`
	Updated     int       `json:"updated"`
	Skipped     int       `json:"skipped"`
	Interrupted bool      `json:"interrupted,omitempty"`
	FinishedAt  time.Time `json:"finished_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishImportCompleted announces the outcome of an import batch.
	PublishImportCompleted(ctx context.Context, event *ImportCompletedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
