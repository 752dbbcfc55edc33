package timer

// Cue identifies an audio cue tied to a remaining-time threshold. The audio
// subsystem maps each ID to a playable asset; the engine only emits the ID.
type Cue string

const (
	CueThirtySecond  Cue = "thirtySecond"
	CueFifteenSecond Cue = "fifteenSecond"
	CueFiveSecond    Cue = "fiveSecond"
	CueTimeUp        Cue = "timeUp"
)

// cueThresholds lists the remaining-time regions that carry a cue, tightest
// first. A cue fires when the countdown first enters its region; only the
// tightest newly-entered region is voiced, so configuring a short round does
// not replay the wider thresholds it skipped. Time-up is handled separately
// at the zero boundary.
var cueThresholds = []struct {
	Sec int
	Cue Cue
}{
	{5, CueFiveSecond},
	{15, CueFifteenSecond},
	{30, CueThirtySecond},
}

// Urgency classifies remaining time for presentation.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyNotice   Urgency = "notice"
	UrgencyWarning  Urgency = "warning"
	UrgencyCritical Urgency = "critical"
)

// ClassifyUrgency is a pure, total function over non-negative remaining
// seconds: >30 normal, 16-30 notice, 6-15 warning, <=5 critical.
func ClassifyUrgency(remainingSec int) Urgency {
	switch {
	case remainingSec > 30:
		return UrgencyNormal
	case remainingSec > 15:
		return UrgencyNotice
	case remainingSec > 5:
		return UrgencyWarning
	default:
		return UrgencyCritical
	}
}
