package timer

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// cueRecorder collects hook firings for assertions.
type cueRecorder struct {
	ticks   []int
	cues    []Cue
	expires int
}

func (r *cueRecorder) hooks() Hooks {
	return Hooks{
		OnTick:   func(remaining int) { r.ticks = append(r.ticks, remaining) },
		OnCue:    func(cue Cue, remaining int) { r.cues = append(r.cues, cue) },
		OnExpire: func() { r.expires++ },
	}
}

func newTestEngine(rec *cueRecorder) *Engine {
	// A fake clock that is never advanced keeps the ticker goroutine idle so
	// tests drive Tick directly.
	return NewEngine(clockwork.NewFakeClock(), rec.hooks())
}

func TestTickDecrementsOnce(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.Configure(0, 10)
	e.Start()

	e.Tick()
	if got := e.Snapshot().RemainingSec; got != 9 {
		t.Errorf("expected 9 remaining, got %d", got)
	}
}

func TestTickNoOpWhenPaused(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.Configure(0, 10)

	e.Tick()
	if got := e.Snapshot().RemainingSec; got != 10 {
		t.Errorf("paused engine should not decrement, got %d", got)
	}
}

func TestTickNoOpAtZero(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.Configure(0, 1)
	e.Start()

	e.Tick() // 1 -> 0, stops the run
	e.Start()
	e.Tick()
	e.Tick()

	if got := e.Snapshot().RemainingSec; got != 0 {
		t.Errorf("remaining went below zero: %d", got)
	}
	if rec.expires != 1 {
		t.Errorf("expected exactly one expiry, got %d", rec.expires)
	}
}

func TestConfigureClampsNegatives(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.Configure(-1, -30)

	state := e.Snapshot()
	if state.RemainingSec != 0 || state.ConfiguredSec != 0 {
		t.Errorf("negative config should clamp to 0, got %+v", state)
	}
}

func TestStartNoOpAtZeroRemaining(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.Configure(0, 0)
	e.Start()

	if e.Snapshot().Running {
		t.Error("engine should not start with zero remaining")
	}
}

func TestPauseIsIdempotent(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.Configure(0, 10)
	e.Start()

	e.Pause()
	e.Pause()

	if e.Snapshot().Running {
		t.Error("engine should be paused")
	}
}

func TestResetRestoresConfiguredDuration(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.Configure(2, 0)
	e.Start()
	e.Tick()
	e.Tick()

	e.Reset()

	state := e.Snapshot()
	if state.Running {
		t.Error("reset should pause the engine")
	}
	if state.RemainingSec != 120 {
		t.Errorf("reset should restore 120s, got %d", state.RemainingSec)
	}
}

func TestThirtySecondCueFiresOncePerCrossing(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.SetSoundEnabled(true)
	e.Configure(0, 31)
	e.Start()

	e.Tick() // 31 -> 30
	if len(rec.cues) != 1 || rec.cues[0] != CueThirtySecond {
		t.Fatalf("expected single thirtySecond cue, got %v", rec.cues)
	}

	for i := 0; i < 14; i++ { // 30 -> 16
		e.Tick()
	}
	if len(rec.cues) != 1 {
		t.Errorf("thirtySecond cue refired: %v", rec.cues)
	}
}

func TestFiveSecondRunFiresFiveAndTimeUp(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.SetSoundEnabled(true)
	e.Configure(0, 5)
	e.Start()

	for i := 0; i < 5; i++ {
		e.Tick()
	}

	want := []Cue{CueFiveSecond, CueTimeUp}
	if len(rec.cues) != len(want) {
		t.Fatalf("expected cues %v, got %v", want, rec.cues)
	}
	for i := range want {
		if rec.cues[i] != want[i] {
			t.Errorf("cue %d: expected %s, got %s", i, want[i], rec.cues[i])
		}
	}
	if rec.expires != 1 {
		t.Errorf("expected one expiry, got %d", rec.expires)
	}
}

func TestCuesGatedBySoundFlag(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.Configure(0, 31)
	e.Start()

	for i := 0; i < 31; i++ {
		e.Tick()
	}

	if len(rec.cues) != 0 {
		t.Errorf("sound disabled but cues fired: %v", rec.cues)
	}
	if rec.expires != 1 {
		t.Errorf("expiry must fire regardless of sound, got %d", rec.expires)
	}
}

func TestShortRoundSkipsWiderThresholds(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.SetSoundEnabled(true)
	e.Configure(0, 10)
	e.Start()

	e.Tick() // 10 -> 9, enters both the 30s and 15s regions
	if len(rec.cues) != 1 || rec.cues[0] != CueFifteenSecond {
		t.Fatalf("expected only the fifteenSecond cue, got %v", rec.cues)
	}

	for i := 0; i < 4; i++ { // 9 -> 5... 5 region entered at remaining 5
		e.Tick()
	}
	if len(rec.cues) != 2 || rec.cues[1] != CueFiveSecond {
		t.Errorf("expected fiveSecond cue next, got %v", rec.cues)
	}
}

func TestResetRearmsCuesAndExpiry(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.SetSoundEnabled(true)
	e.Configure(0, 5)
	e.Start()
	for i := 0; i < 5; i++ {
		e.Tick()
	}

	e.Reset()
	e.Start()
	for i := 0; i < 5; i++ {
		e.Tick()
	}

	if len(rec.cues) != 4 {
		t.Errorf("expected cues to re-arm after reset, got %v", rec.cues)
	}
	if rec.expires != 2 {
		t.Errorf("expected one expiry per run, got %d", rec.expires)
	}
}

func TestZeroBoundaryStopsRun(t *testing.T) {
	rec := &cueRecorder{}
	e := newTestEngine(rec)
	e.Configure(0, 1)
	e.Start()
	e.Tick()

	if e.Snapshot().Running {
		t.Error("engine should stop when the countdown reaches zero")
	}
}

func TestTickerDrivesTicks(t *testing.T) {
	fc := clockwork.NewFakeClock()
	rec := &cueRecorder{}
	e := NewEngine(fc, rec.hooks())
	e.Configure(0, 10)
	e.Start()

	// Wait for the ticker goroutine to register with the fake clock.
	fc.BlockUntil(1)
	fc.Advance(time.Second)

	deadline := time.After(2 * time.Second)
	for e.Snapshot().RemainingSec != 9 {
		select {
		case <-deadline:
			t.Fatalf("ticker never applied a decrement, remaining=%d", e.Snapshot().RemainingSec)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPauseCancelsTicker(t *testing.T) {
	fc := clockwork.NewFakeClock()
	rec := &cueRecorder{}
	e := NewEngine(fc, rec.hooks())
	e.Configure(0, 10)
	e.Start()
	fc.BlockUntil(1)

	e.Pause()
	fc.Advance(time.Second)
	time.Sleep(20 * time.Millisecond)

	if got := e.Snapshot().RemainingSec; got != 10 {
		t.Errorf("stale tick applied after pause: remaining=%d", got)
	}
}

func TestClassifyUrgency(t *testing.T) {
	tests := []struct {
		remaining int
		want      Urgency
	}{
		{3600, UrgencyNormal},
		{31, UrgencyNormal},
		{30, UrgencyNotice},
		{16, UrgencyNotice},
		{15, UrgencyWarning},
		{6, UrgencyWarning},
		{5, UrgencyCritical},
		{1, UrgencyCritical},
		{0, UrgencyCritical},
	}

	for _, tt := range tests {
		if got := ClassifyUrgency(tt.remaining); got != tt.want {
			t.Errorf("ClassifyUrgency(%d) = %s, want %s", tt.remaining, got, tt.want)
		}
	}
}
