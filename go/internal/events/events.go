package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of a session event.
type EventType string

const (
	EventTypeSessionStarted    EventType = "SessionStarted"
	EventTypeSessionEnded      EventType = "SessionEnded"
	EventTypeTimerTick         EventType = "TimerTick"
	EventTypeCueFired          EventType = "CueFired"
	EventTypeTimerExpired      EventType = "TimerExpired"
	EventTypeRoundAdvanced     EventType = "RoundAdvanced"
	EventTypeArgumentSubmitted EventType = "ArgumentSubmitted"
	EventTypeReplyReceived     EventType = "ReplyReceived"
	EventTypeReplyFailed       EventType = "ReplyFailed"
)

// SessionEvent is the envelope for all session events.
type SessionEvent struct {
	ID        string          `json:"id"`         // Event UUID
	SessionID string          `json:"session_id"` // Session UUID
	Type      EventType       `json:"type"`       // Event type
	Timestamp time.Time       `json:"timestamp"`  // Event creation time
	Data      json.RawMessage `json:"data"`       // Event-specific payload
}

// NewSessionEvent builds an envelope around a marshalled payload.
func NewSessionEvent(sessionID uuid.UUID, eventType EventType, payload interface{}) (*SessionEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return &SessionEvent{
		ID:        uuid.New().String(),
		SessionID: sessionID.String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}, nil
}
