package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"society/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() *service.ImportCompletedEvent {
	return &service.ImportCompletedEvent{
		RequestID:  "req-1",
		BatchID:    "batch-1",
		Kind:       "events",
		Source:     "events.csv",
		Created:    3,
		Updated:    1,
		Skipped:    2,
		FinishedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PushesImportCompleted(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, testLogger())
	require.NoError(t, publisher.PublishImportCompleted(context.Background(), sampleEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, localSubscription, received.Subscription)
	assert.Equal(t, "batch-1", received.Message.MessageID)
	assert.Equal(t, "batch-1", received.Message.Attributes["batch_id"])
	assert.Equal(t, "events", received.Message.Attributes["kind"])
	assert.Equal(t, "false", received.Message.Attributes["interrupted"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.ImportCompletedEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded.Created)
	assert.Equal(t, 2, decoded.Skipped)
	assert.Equal(t, "events.csv", decoded.Source)
}

func TestLocalHTTPPublisher_RejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, testLogger())
	err := publisher.PublishImportCompleted(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestEncodeImportCompleted_OmitsEmptyRequestID(t *testing.T) {
	event := sampleEvent()
	event.RequestID = ""
	event.Interrupted = true

	_, attributes, err := encodeImportCompleted(event)
	require.NoError(t, err)

	_, ok := attributes["request_id"]
	assert.False(t, ok)
	assert.Equal(t, "true", attributes["interrupted"])
	assert.Equal(t, "import.completed", attributes["event_type"])
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher(testLogger())

	assert.NoError(t, publisher.PublishImportCompleted(context.Background(), sampleEvent()))
	assert.NoError(t, publisher.Close())
}
