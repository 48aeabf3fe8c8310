package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
	TypePaymentRecorded  = "payment.recorded"
)

// Header keys shared with downstream consumers.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// Event is a domain fact published after a state change commits.
// Key selects the Kafka partition; events for one booking stay
// ordered by keying on the booking id.
type Event struct {
	ID        string
	Type      string
	Key       string
	Payload   []byte
	Timestamp time.Time
}

func NewEvent(eventType, key string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Key:       key,
		Payload:   data,
		Timestamp: time.Now().UTC(),
	}, nil
}
