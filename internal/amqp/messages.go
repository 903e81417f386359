package amqp

import (
	"encoding/json"
	"time"
)

// EntrySyncMessage asks the worker to mirror one entry to the backup.
// It carries only the entry ID; the worker fetches the current row from the
// database so stale message payloads cannot overwrite newer edits.
type EntrySyncMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntrySyncMessage creates a sync message for the given entry ID
func NewEntrySyncMessage(id int64) *EntrySyncMessage {
	return &EntrySyncMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *EntrySyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntrySyncMessageFromJSON creates a message from JSON bytes
func EntrySyncMessageFromJSON(data []byte) (*EntrySyncMessage, error) {
	var msg EntrySyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
