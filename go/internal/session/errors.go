package session

import "errors"

var (
	// ErrSessionNotFound is returned when a session ID does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrLastRound is returned when removing the only remaining round.
	ErrLastRound = errors.New("cannot remove the last remaining round")

	// ErrAtLastRound is returned when advancing past the final round.
	ErrAtLastRound = errors.New("already at the last round")

	// ErrRoundIndex is returned for an out-of-range round index.
	ErrRoundIndex = errors.New("round index out of range")

	// ErrInvalidStance is returned for a stance other than pro or con.
	ErrInvalidStance = errors.New("stance must be pro or con")
)
