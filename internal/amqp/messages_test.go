package amqp

import (
	"testing"
	"time"
)

func TestEntrySyncMessageRoundTrip(t *testing.T) {
	msg := NewEntrySyncMessage(42)
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := EntrySyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.ID != 42 {
		t.Errorf("ID = %d, want 42", got.ID)
	}
	if !got.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
}

func TestEntrySyncMessageFromInvalidJSON(t *testing.T) {
	if _, err := EntrySyncMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected unmarshal error")
	}
}
