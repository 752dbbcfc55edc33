package gateway

import (
	"github.com/google/uuid"
	"github.com/mcdev12/sparring/go/internal/events"
	"github.com/rs/zerolog/log"
)

// EventConsumer feeds session events from the in-process bus into the
// connection manager's per-session broadcast pools.
type EventConsumer struct {
	connectionManager *ConnectionManager
}

// NewEventConsumer creates a consumer bound to a connection manager.
func NewEventConsumer(cm *ConnectionManager) *EventConsumer {
	return &EventConsumer{connectionManager: cm}
}

// HandleEvent routes one bus event to the session's connections. Registered
// as an events.Bus subscriber.
func (c *EventConsumer) HandleEvent(event *events.SessionEvent) {
	sessionID, err := uuid.Parse(event.SessionID)
	if err != nil {
		log.Error().
			Err(err).
			Str("session_id", event.SessionID).
			Str("event_type", string(event.Type)).
			Msg("event carries invalid session id")
		return
	}
	c.connectionManager.BroadcastToSession(sessionID, event)
}
