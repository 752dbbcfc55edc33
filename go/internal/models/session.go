package models

import (
	"time"

	"github.com/google/uuid"
)

// Stance defines which side an argument argues for.
type Stance string

const (
	StancePro Stance = "pro"
	StanceCon Stance = "con"
)

// SessionPhase defines the submission state of a session.
type SessionPhase string

const (
	SessionPhaseIdle             SessionPhase = "IDLE"
	SessionPhaseAwaitingResponse SessionPhase = "AWAITING_RESPONSE"
)

// SessionSettings holds configuration applied when a session is created.
type SessionSettings struct {
	Topic        string  `json:"topic"`
	Rounds       []Round `json:"rounds,omitempty"`
	SoundEnabled bool    `json:"sound_enabled"`
}

// Session represents one debate practice session. All state is owned by the
// session controller for the lifetime of the session; nothing is persisted
// across sessions.
type Session struct {
	ID         uuid.UUID    `json:"id"`
	Topic      string       `json:"topic"`
	Phase      SessionPhase `json:"phase"`
	Stance     Stance       `json:"stance"`
	Draft      string       `json:"draft"`
	Transcript []Exchange   `json:"transcript"`
	Rounds     []Round      `json:"rounds"`
	// Cursor indexes the active round; invariant 0 <= Cursor < len(Rounds).
	Cursor       int        `json:"cursor"`
	SoundEnabled bool       `json:"sound_enabled"`
	CreatedAt    time.Time  `json:"created_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

// ActiveRound returns the round the cursor points at.
func (s *Session) ActiveRound() Round {
	return s.Rounds[s.Cursor]
}
