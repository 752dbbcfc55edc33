package models

import (
	"time"

	"github.com/google/uuid"
)

// ExchangeKind defines the kind of a transcript entry.
type ExchangeKind string

const (
	ExchangeKindUserArgument   ExchangeKind = "USER_ARGUMENT"
	ExchangeKindGeneratedReply ExchangeKind = "GENERATED_REPLY"
	ExchangeKindFailedReply    ExchangeKind = "FAILED_REPLY"
)

// Exchange is one entry in a session transcript. The transcript is
// append-only and chronological; entries are never reordered or deduplicated.
type Exchange struct {
	ID   uuid.UUID    `json:"id"`
	Kind ExchangeKind `json:"kind"`
	Text string       `json:"text"`
	// Stance is set only for USER_ARGUMENT entries and is fixed at creation.
	Stance    Stance    `json:"stance,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
