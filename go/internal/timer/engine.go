package timer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Hooks are the engine's outbound signals. All three are invoked outside the
// engine lock, with values taken from a single consistent read per tick, so a
// cue and the expiry signal can never disagree about the remaining time.
type Hooks struct {
	// OnTick fires after every decrement with the new remaining seconds.
	OnTick func(remainingSec int)
	// OnCue fires at most once per threshold crossing per run, only while
	// sound is enabled.
	OnCue func(cue Cue, remainingSec int)
	// OnExpire fires exactly once per run when the countdown reaches zero.
	OnExpire func()
}

// State is a snapshot of the engine.
type State struct {
	ConfiguredSec int     `json:"configured_sec"`
	RemainingSec  int     `json:"remaining_sec"`
	Running       bool    `json:"running"`
	Urgency       Urgency `json:"urgency"`
}

// Engine is the countdown for one session. It owns its tick source: Start
// spins up a 1s ticker on the injected clock, and Pause, Reset, Configure and
// the zero boundary all cancel it so no stale tick can apply a decrement
// afterward. Tests drive Tick directly or advance a clockwork.FakeClock.
type Engine struct {
	mu            sync.Mutex
	configuredSec int
	remainingSec  int
	running       bool
	soundEnabled  bool
	firedCues     map[Cue]bool
	expired       bool
	stopCh        chan struct{}

	clock clockwork.Clock
	hooks Hooks
}

// NewEngine creates a stopped engine with a zero duration.
func NewEngine(clock clockwork.Clock, hooks Hooks) *Engine {
	return &Engine{
		clock:     clock,
		hooks:     hooks,
		firedCues: make(map[Cue]bool),
	}
}

// Configure sets the countdown duration, clamping negative inputs to zero.
// It pauses the engine, restores the full duration and re-arms the cues.
func (e *Engine) Configure(minutes, seconds int) {
	if minutes < 0 {
		minutes = 0
	}
	if seconds < 0 {
		seconds = 0
	}

	e.mu.Lock()
	e.stopLocked()
	e.configuredSec = minutes*60 + seconds
	e.remainingSec = e.configuredSec
	e.firedCues = make(map[Cue]bool)
	e.expired = false
	e.mu.Unlock()

	log.Debug().Int("configured_sec", minutes*60+seconds).Msg("timer configured")
}

// SetSoundEnabled toggles cue emission. The expiry signal is never gated.
func (e *Engine) SetSoundEnabled(enabled bool) {
	e.mu.Lock()
	e.soundEnabled = enabled
	e.mu.Unlock()
}

// Start begins the countdown. It has no effect if the engine is already
// running or the remaining time is zero.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running || e.remainingSec == 0 {
		e.mu.Unlock()
		return
	}
	e.running = true
	stopCh := make(chan struct{})
	e.stopCh = stopCh
	e.mu.Unlock()

	go e.runTicker(stopCh)
}

// Pause stops the countdown and cancels the tick source. Idempotent.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.stopLocked()
	e.mu.Unlock()
}

// Reset pauses and restores the configured duration, starting a fresh run:
// cues and the expiry signal are re-armed.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.stopLocked()
	e.remainingSec = e.configuredSec
	e.firedCues = make(map[Cue]bool)
	e.expired = false
	e.mu.Unlock()
}

// Tick applies one decrement. No-op unless running with time remaining.
// Cue and expiry decisions are computed from the post-decrement value under
// the lock, then delivered outside it.
func (e *Engine) Tick() {
	e.mu.Lock()
	if !e.running || e.remainingSec == 0 {
		e.mu.Unlock()
		return
	}

	e.remainingSec--
	remaining := e.remainingSec

	var cue Cue
	fireCue := false
	fireExpire := false
	if remaining == 0 {
		// Zero boundary: stop the run so repeated ticks stay inert.
		e.stopLocked()
		if !e.firedCues[CueTimeUp] {
			e.firedCues[CueTimeUp] = true
			if e.soundEnabled {
				cue = CueTimeUp
				fireCue = true
			}
		}
		if !e.expired {
			e.expired = true
			fireExpire = true
		}
	} else if c, crossed := e.crossThresholdsLocked(remaining); crossed {
		if e.soundEnabled {
			cue = c
			fireCue = true
		}
	}
	e.mu.Unlock()

	if e.hooks.OnTick != nil {
		e.hooks.OnTick(remaining)
	}
	if fireCue && e.hooks.OnCue != nil {
		e.hooks.OnCue(cue, remaining)
	}
	if fireExpire && e.hooks.OnExpire != nil {
		e.hooks.OnExpire()
	}
}

// crossThresholdsLocked marks every cue region the countdown has entered and
// returns the cue for the tightest region entered on this tick, if any.
// Caller holds e.mu.
func (e *Engine) crossThresholdsLocked(remaining int) (Cue, bool) {
	var out Cue
	crossed := false
	tightestSeen := false
	for _, th := range cueThresholds {
		if remaining > th.Sec {
			continue
		}
		if !e.firedCues[th.Cue] {
			e.firedCues[th.Cue] = true
			if !tightestSeen {
				out = th.Cue
				crossed = true
			}
		}
		tightestSeen = true
	}
	return out, crossed
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		ConfiguredSec: e.configuredSec,
		RemainingSec:  e.remainingSec,
		Running:       e.running,
		Urgency:       ClassifyUrgency(e.remainingSec),
	}
}

// Teardown cancels the tick source when the session is torn down.
func (e *Engine) Teardown() {
	e.Pause()
}

// stopLocked halts the run and cancels any active ticker. Caller holds e.mu.
func (e *Engine) stopLocked() {
	e.running = false
	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}
}

// runTicker drives Tick once per second until the run is cancelled.
func (e *Engine) runTicker(stopCh chan struct{}) {
	ticker := e.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.Chan():
			e.Tick()
		}
	}
}
