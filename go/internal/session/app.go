package session

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/sparring/go/internal/events"
	"github.com/mcdev12/sparring/go/internal/models"
	"github.com/mcdev12/sparring/go/internal/timer"
	"github.com/rs/zerolog/log"
)

// failedReplyText is the fixed placeholder appended when the counter-argument
// service fails. It is user-visible and distinct from a generated reply.
const failedReplyText = "I couldn't come up with a counter-argument this time. Take the point and keep going."

// Responder generates a counter-argument for a submitted argument.
type Responder interface {
	Generate(ctx context.Context, userInput string, stance models.Stance) (string, error)
}

// App is the debate session controller. It owns all session state and is the
// only place the submission state machine and round-plan invariants are
// enforced; the HTTP and websocket layers are thin surfaces over it.
type App struct {
	repo            SessionRepository
	responder       Responder
	bus             *events.Bus
	clock           clockwork.Clock
	responseTimeout time.Duration
	defaults        Defaults
}

// NewApp creates a new session App.
func NewApp(repo SessionRepository, responder Responder, bus *events.Bus, clock clockwork.Clock, responseTimeout time.Duration, defaults Defaults) *App {
	if responseTimeout <= 0 {
		responseTimeout = 30 * time.Second
	}
	if len(defaults.Rounds) == 0 {
		defaults.Rounds = models.DefaultRoundPlan()
	}
	return &App{
		repo:            repo,
		responder:       responder,
		bus:             bus,
		clock:           clock,
		responseTimeout: responseTimeout,
		defaults:        defaults,
	}
}

// CreateSession builds a session with a sanitized round plan, wires its
// countdown engine and loads the first round paused.
func (a *App) CreateSession(req CreateSessionRequest) (*Snapshot, error) {
	stance := req.Stance
	if stance == "" {
		stance = models.StancePro
	}
	if stance != models.StancePro && stance != models.StanceCon {
		return nil, ErrInvalidStance
	}

	rounds := req.Rounds
	if len(rounds) == 0 {
		rounds = append([]models.Round(nil), a.defaults.Rounds...)
	}
	for i := range rounds {
		rounds[i] = sanitizeRound(rounds[i], i)
	}

	soundEnabled := a.defaults.SoundEnabled
	if req.SoundEnabled != nil {
		soundEnabled = *req.SoundEnabled
	}

	sess := &models.Session{
		ID:           uuid.New(),
		Topic:        req.Topic,
		Phase:        models.SessionPhaseIdle,
		Stance:       stance,
		Transcript:   []models.Exchange{},
		Rounds:       rounds,
		Cursor:       0,
		SoundEnabled: soundEnabled,
		CreatedAt:    a.clock.Now(),
	}

	rt := &Runtime{Session: sess}
	rt.Engine = timer.NewEngine(a.clock, timer.Hooks{
		OnTick: func(remainingSec int) {
			a.handleTick(rt, remainingSec)
		},
		OnCue: func(cue timer.Cue, remainingSec int) {
			a.publish(sess.ID, events.EventTypeCueFired, events.CueFiredPayload{
				Cue:          string(cue),
				RemainingSec: remainingSec,
				FiredAt:      a.clock.Now(),
			})
		},
		OnExpire: func() {
			a.handleExpiry(rt)
		},
	})
	rt.Engine.SetSoundEnabled(sess.SoundEnabled)
	rt.Engine.Configure(0, sess.ActiveRound().DurationSec)

	a.repo.Create(rt)

	log.Info().
		Str("session_id", sess.ID.String()).
		Str("topic", sess.Topic).
		Int("rounds", len(rounds)).
		Msg("session created")

	a.publish(sess.ID, events.EventTypeSessionStarted, events.SessionStartedPayload{
		SessionID:  sess.ID.String(),
		Topic:      sess.Topic,
		RoundLabel: sess.ActiveRound().Label,
		RoundCount: len(rounds),
		StartedAt:  sess.CreatedAt,
	})

	snap := a.snapshot(rt)
	return &snap, nil
}

// GetSession returns a consistent snapshot of a session and its timer.
func (a *App) GetSession(id uuid.UUID) (*Snapshot, error) {
	rt, err := a.repo.Get(id)
	if err != nil {
		return nil, err
	}
	snap := a.snapshot(rt)
	return &snap, nil
}

// SetDraft replaces the pending draft text.
func (a *App) SetDraft(id uuid.UUID, text string) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	rt.Session.Draft = text
	rt.mu.Unlock()
	return nil
}

// SetStance toggles the side attached to the next submitted argument.
// Transcript history is never altered.
func (a *App) SetStance(id uuid.UUID, stance models.Stance) error {
	if stance != models.StancePro && stance != models.StanceCon {
		return ErrInvalidStance
	}
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	rt.Session.Stance = stance
	rt.mu.Unlock()
	return nil
}

// SetSoundEnabled toggles cue emission for the session.
func (a *App) SetSoundEnabled(id uuid.UUID, enabled bool) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	rt.Session.SoundEnabled = enabled
	rt.Engine.SetSoundEnabled(enabled)
	rt.mu.Unlock()
	return nil
}

// Submit submits the pending draft. Empty or whitespace-only drafts and
// submissions while a reply is in flight are silent no-ops.
func (a *App) Submit(id uuid.UUID) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	a.submitLocked(rt, false)
	rt.mu.Unlock()
	return nil
}

// ConfigureTimer sets the countdown duration, paused.
func (a *App) ConfigureTimer(id uuid.UUID, minutes, seconds int) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	rt.Engine.Configure(minutes, seconds)
	rt.mu.Unlock()
	return nil
}

// StartTimer starts the countdown.
func (a *App) StartTimer(id uuid.UUID) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	rt.Engine.Start()
	rt.mu.Unlock()
	return nil
}

// PauseTimer pauses the countdown.
func (a *App) PauseTimer(id uuid.UUID) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	rt.Engine.Pause()
	rt.mu.Unlock()
	return nil
}

// ResetTimer pauses and restores the configured duration.
func (a *App) ResetTimer(id uuid.UUID) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	rt.Engine.Reset()
	rt.mu.Unlock()
	return nil
}

// AddRound appends a round to the plan. Invalid durations fall back to the
// default rather than erroring.
func (a *App) AddRound(id uuid.UUID, req AddRoundRequest) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	round := sanitizeRound(models.Round{Label: req.Label, DurationSec: req.DurationSec}, len(rt.Session.Rounds))
	rt.Session.Rounds = append(rt.Session.Rounds, round)
	rt.mu.Unlock()
	return nil
}

// RemoveRound removes a round unless it is the last one remaining. The
// cursor is clamped back into bounds if the removal left it past the end.
func (a *App) RemoveRound(id uuid.UUID, index int) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if index < 0 || index >= len(rt.Session.Rounds) {
		return ErrRoundIndex
	}
	if len(rt.Session.Rounds) == 1 {
		return ErrLastRound
	}

	rt.Session.Rounds = append(rt.Session.Rounds[:index], rt.Session.Rounds[index+1:]...)
	if rt.Session.Cursor >= len(rt.Session.Rounds) {
		rt.Session.Cursor = len(rt.Session.Rounds) - 1
	}
	return nil
}

// UpdateRound renames a round and/or changes its duration in place. The
// running timer is unaffected; the new duration applies when that round is
// loaded again.
func (a *App) UpdateRound(id uuid.UUID, index int, req UpdateRoundRequest) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if index < 0 || index >= len(rt.Session.Rounds) {
		return ErrRoundIndex
	}
	if req.Label != nil && strings.TrimSpace(*req.Label) != "" {
		rt.Session.Rounds[index].Label = *req.Label
	}
	if req.DurationSec != nil {
		dur := *req.DurationSec
		if dur < models.MinRoundDurationSec {
			dur = models.DefaultRoundDurationSec
		}
		rt.Session.Rounds[index].DurationSec = dur
	}
	return nil
}

// AdvanceRound moves the cursor to the next round and loads its duration
// into the engine, paused. Rejected at the last round.
func (a *App) AdvanceRound(id uuid.UUID) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.Session.Cursor >= len(rt.Session.Rounds)-1 {
		return ErrAtLastRound
	}
	rt.Session.Cursor++
	round := rt.Session.ActiveRound()
	rt.Engine.Configure(0, round.DurationSec)

	log.Info().
		Str("session_id", rt.Session.ID.String()).
		Int("cursor", rt.Session.Cursor).
		Str("round", round.Label).
		Msg("advanced to next round")

	a.publish(rt.Session.ID, events.EventTypeRoundAdvanced, events.RoundAdvancedPayload{
		Cursor:      rt.Session.Cursor,
		RoundLabel:  round.Label,
		DurationSec: round.DurationSec,
		AdvancedAt:  a.clock.Now(),
	})
	return nil
}

// EndSession tears down the session's tick source and removes it.
func (a *App) EndSession(id uuid.UUID) error {
	rt, err := a.repo.Get(id)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	rt.Engine.Teardown()
	now := a.clock.Now()
	rt.Session.EndedAt = &now
	exchanges := len(rt.Session.Transcript)
	rt.mu.Unlock()

	a.publish(id, events.EventTypeSessionEnded, events.SessionEndedPayload{
		SessionID: id.String(),
		EndedAt:   now,
		Exchanges: exchanges,
	})

	log.Info().Str("session_id", id.String()).Int("exchanges", exchanges).Msg("session ended")
	return a.repo.Delete(id)
}

// TeardownAll cancels every session's tick source. Used on shutdown.
func (a *App) TeardownAll() {
	for _, rt := range a.repo.List() {
		rt.Engine.Teardown()
	}
}

// submitLocked runs the Idle -> AwaitingResponse transition. Caller holds
// rt.mu. Returns whether a submission actually happened.
func (a *App) submitLocked(rt *Runtime, auto bool) bool {
	draft := strings.TrimSpace(rt.Session.Draft)
	if draft == "" {
		return false
	}
	if rt.Session.Phase != models.SessionPhaseIdle {
		// A reply is already in flight; an expiry-triggered submit is
		// dropped rather than queued.
		log.Debug().
			Str("session_id", rt.Session.ID.String()).
			Bool("auto", auto).
			Msg("submit dropped while awaiting response")
		return false
	}

	exchange := models.Exchange{
		ID:        uuid.New(),
		Kind:      models.ExchangeKindUserArgument,
		Text:      draft,
		Stance:    rt.Session.Stance,
		CreatedAt: a.clock.Now(),
	}
	rt.Session.Transcript = append(rt.Session.Transcript, exchange)
	rt.Session.Draft = ""
	rt.Session.Phase = models.SessionPhaseAwaitingResponse
	rt.Engine.Pause()

	log.Info().
		Str("session_id", rt.Session.ID.String()).
		Str("stance", string(exchange.Stance)).
		Bool("auto", auto).
		Msg("argument submitted")

	a.publish(rt.Session.ID, events.EventTypeArgumentSubmitted, events.ArgumentSubmittedPayload{
		ExchangeID:  exchange.ID.String(),
		Stance:      string(exchange.Stance),
		Text:        exchange.Text,
		AutoSubmit:  auto,
		SubmittedAt: exchange.CreatedAt,
	})

	go a.requestReply(rt, exchange.Text, exchange.Stance)
	return true
}

// requestReply performs the single in-flight call to the counter-argument
// service and appends exactly one reply, successful or failed. Never retried.
func (a *App) requestReply(rt *Runtime, userInput string, stance models.Stance) {
	ctx, cancel := context.WithTimeout(context.Background(), a.responseTimeout)
	defer cancel()

	reply, err := a.responder.Generate(ctx, userInput, stance)

	rt.mu.Lock()
	defer rt.mu.Unlock()

	exchange := models.Exchange{
		ID:        uuid.New(),
		CreatedAt: a.clock.Now(),
	}
	if err != nil {
		exchange.Kind = models.ExchangeKindFailedReply
		exchange.Text = failedReplyText
		rt.Session.Transcript = append(rt.Session.Transcript, exchange)
		rt.Session.Phase = models.SessionPhaseIdle

		log.Warn().
			Err(err).
			Str("session_id", rt.Session.ID.String()).
			Msg("counter-argument generation failed")

		a.publish(rt.Session.ID, events.EventTypeReplyFailed, events.ReplyFailedPayload{
			ExchangeID: exchange.ID.String(),
			Reason:     err.Error(),
			FailedAt:   exchange.CreatedAt,
		})
		return
	}

	exchange.Kind = models.ExchangeKindGeneratedReply
	exchange.Text = reply
	rt.Session.Transcript = append(rt.Session.Transcript, exchange)
	rt.Session.Phase = models.SessionPhaseIdle

	a.publish(rt.Session.ID, events.EventTypeReplyReceived, events.ReplyReceivedPayload{
		ExchangeID: exchange.ID.String(),
		Text:       exchange.Text,
		ReceivedAt: exchange.CreatedAt,
	})
}

// handleTick publishes the per-second countdown update.
func (a *App) handleTick(rt *Runtime, remainingSec int) {
	rt.mu.Lock()
	label := rt.Session.ActiveRound().Label
	sessionID := rt.Session.ID
	rt.mu.Unlock()

	a.publish(sessionID, events.EventTypeTimerTick, events.TimerTickPayload{
		RoundLabel:   label,
		RemainingSec: remainingSec,
		Urgency:      string(timer.ClassifyUrgency(remainingSec)),
		TickedAt:     a.clock.Now(),
	})
}

// handleExpiry runs when the countdown reaches zero: auto-submit the pending
// draft if there is one and no reply is in flight.
func (a *App) handleExpiry(rt *Runtime) {
	rt.mu.Lock()
	submitted := a.submitLocked(rt, true)
	label := rt.Session.ActiveRound().Label
	sessionID := rt.Session.ID
	rt.mu.Unlock()

	a.publish(sessionID, events.EventTypeTimerExpired, events.TimerExpiredPayload{
		RoundLabel:    label,
		AutoSubmitted: submitted,
		ExpiredAt:     a.clock.Now(),
	})
}

// snapshot copies the session and timer state under the runtime lock.
func (a *App) snapshot(rt *Runtime) Snapshot {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	sess := *rt.Session
	sess.Transcript = append([]models.Exchange(nil), rt.Session.Transcript...)
	sess.Rounds = append([]models.Round(nil), rt.Session.Rounds...)

	return Snapshot{
		Session: sess,
		Timer:   rt.Engine.Snapshot(),
	}
}

// publish wraps a payload in an event envelope and hands it to the bus.
func (a *App) publish(sessionID uuid.UUID, eventType events.EventType, payload interface{}) {
	if a.bus == nil {
		return
	}
	event, err := events.NewSessionEvent(sessionID, eventType, payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to build session event")
		return
	}
	a.bus.Publish(event)
}

// sanitizeRound enforces the duration floor and supplies a default label.
func sanitizeRound(r models.Round, index int) models.Round {
	if strings.TrimSpace(r.Label) == "" {
		r.Label = "Round " + strconv.Itoa(index+1)
	}
	if r.DurationSec < models.MinRoundDurationSec {
		r.DurationSec = models.DefaultRoundDurationSec
	}
	return r
}
