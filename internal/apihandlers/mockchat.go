package apihandlers

import (
	_ "embed"
	"encoding/json"

	"ahha/internal/models"
)

//go:embed mockchat.json
var mockChatJSON []byte

var mockChatLog []models.ChatMessage

func init() {
	if err := json.Unmarshal(mockChatJSON, &mockChatLog); err != nil {
		panic("apihandlers: invalid embedded mock chat: " + err.Error())
	}
}

// MockChatLog returns a copy of the demo conversation served at /mock-chat/.
func MockChatLog() []models.ChatMessage {
	out := make([]models.ChatMessage, len(mockChatLog))
	copy(out, mockChatLog)
	return out
}
