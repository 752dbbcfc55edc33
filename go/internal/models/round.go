package models

// MinRoundDurationSec is the floor enforced on round durations.
const MinRoundDurationSec = 5

// DefaultRoundDurationSec is applied when an edit supplies an invalid duration.
const DefaultRoundDurationSec = 60

// Round is a named, timed phase of a debate session.
type Round struct {
	Label       string `json:"label"`
	DurationSec int    `json:"duration_sec"`
}

// DefaultRoundPlan returns the plan used when a session is created without one.
func DefaultRoundPlan() []Round {
	return []Round{
		{Label: "Opening", DurationSec: 120},
		{Label: "Rebuttal", DurationSec: 180},
		{Label: "Closing", DurationSec: 120},
	}
}
