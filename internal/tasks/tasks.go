package tasks

import (
	"encoding/json"
	"fmt"
)

// Defines constants for task types used in Asynq.

const (
	// TypeTagSnippet is the task type for generating tags for a stored snippet.
	TypeTagSnippet = "snippet:tag"

	// QueueTagging is the queue tagging tasks are enqueued on.
	QueueTagging = "tagging"
)

// TagSnippetPayload is the JSON payload of a TypeTagSnippet task.
type TagSnippetPayload struct {
	SnippetID string `json:"snippet_id"`
}

// DecodeTagSnippetPayload parses and validates a tagging task payload.
func DecodeTagSnippetPayload(b []byte) (TagSnippetPayload, error) {
	var p TagSnippetPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("decode %s payload: %w", TypeTagSnippet, err)
	}
	if p.SnippetID == "" {
		return p, fmt.Errorf("decode %s payload: missing snippet_id", TypeTagSnippet)
	}
	return p, nil
}
