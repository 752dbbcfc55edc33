package events

import (
	"time"
)

// Event payload types shared between the session controller and the gateway

// SessionStartedPayload is the payload for a SessionStarted event
type SessionStartedPayload struct {
	SessionID  string    `json:"session_id"`
	Topic      string    `json:"topic"`
	RoundLabel string    `json:"round_label"`
	RoundCount int       `json:"round_count"`
	StartedAt  time.Time `json:"started_at"`
}

// SessionEndedPayload is the payload for a SessionEnded event
type SessionEndedPayload struct {
	SessionID string    `json:"session_id"`
	EndedAt   time.Time `json:"ended_at"`
	Exchanges int       `json:"exchanges"`
}

// TimerTickPayload contains the per-second countdown update
type TimerTickPayload struct {
	RoundLabel   string    `json:"round_label"`
	RemainingSec int       `json:"remaining_sec"`
	Urgency      string    `json:"urgency"`
	TickedAt     time.Time `json:"ticked_at"`
}

// CueFiredPayload is the payload for a CueFired event
type CueFiredPayload struct {
	Cue          string    `json:"cue"`
	RemainingSec int       `json:"remaining_sec"`
	FiredAt      time.Time `json:"fired_at"`
}

// TimerExpiredPayload is the payload for a TimerExpired event
type TimerExpiredPayload struct {
	RoundLabel    string    `json:"round_label"`
	AutoSubmitted bool      `json:"auto_submitted"`
	ExpiredAt     time.Time `json:"expired_at"`
}

// RoundAdvancedPayload is the payload for a RoundAdvanced event
type RoundAdvancedPayload struct {
	Cursor      int       `json:"cursor"`
	RoundLabel  string    `json:"round_label"`
	DurationSec int       `json:"duration_sec"`
	AdvancedAt  time.Time `json:"advanced_at"`
}

// ArgumentSubmittedPayload is the payload for an ArgumentSubmitted event
type ArgumentSubmittedPayload struct {
	ExchangeID  string    `json:"exchange_id"`
	Stance      string    `json:"stance"`
	Text        string    `json:"text"`
	AutoSubmit  bool      `json:"auto_submit"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ReplyReceivedPayload is the payload for a ReplyReceived event
type ReplyReceivedPayload struct {
	ExchangeID string    `json:"exchange_id"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}

// ReplyFailedPayload is the payload for a ReplyFailed event
type ReplyFailedPayload struct {
	ExchangeID string    `json:"exchange_id"`
	Reason     string    `json:"reason"`
	FailedAt   time.Time `json:"failed_at"`
}
