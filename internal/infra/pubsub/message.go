package pubsub

import (
	"encoding/json"
	"strconv"

	"society/internal/domain/service"

	"github.com/pkg/errors"
)

// encodeImportCompleted serializes the event and builds the message
// attributes subscribers filter on.
func encodeImportCompleted(event *service.ImportCompletedEvent) ([]byte, map[string]string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	attributes := map[string]string{
		"event_type":  "import.completed",
		"batch_id":    event.BatchID,
		"kind":        event.Kind,
		"interrupted": strconv.FormatBool(event.Interrupted),
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return data, attributes, nil
}
