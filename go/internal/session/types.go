package session

import (
	"github.com/mcdev12/sparring/go/internal/models"
	"github.com/mcdev12/sparring/go/internal/timer"
)

// Defaults are applied when a create request omits fields.
type Defaults struct {
	Rounds       []models.Round
	SoundEnabled bool
}

// CreateSessionRequest creates a new practice session.
type CreateSessionRequest struct {
	Topic        string         `json:"topic"`
	Rounds       []models.Round `json:"rounds,omitempty"`
	Stance       models.Stance  `json:"stance,omitempty"`
	SoundEnabled *bool          `json:"sound_enabled,omitempty"`
}

// AddRoundRequest appends a round to the plan.
type AddRoundRequest struct {
	Label       string `json:"label"`
	DurationSec int    `json:"duration_sec"`
}

// UpdateRoundRequest renames a round and/or changes its duration.
type UpdateRoundRequest struct {
	Label       *string `json:"label,omitempty"`
	DurationSec *int    `json:"duration_sec,omitempty"`
}

// ConfigureTimerRequest sets the countdown duration.
type ConfigureTimerRequest struct {
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Snapshot is a consistent read of a session and its timer.
type Snapshot struct {
	Session models.Session `json:"session"`
	Timer   timer.State    `json:"timer"`
}
