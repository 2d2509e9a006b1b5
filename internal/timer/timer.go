// Package timer implements the focus/break countdown. The timer is a pure
// state machine; an external driver calls Tick once per second while the
// process runs.
package timer

import "fmt"

const (
	FocusSeconds = 25 * 60
	BreakSeconds = 5 * 60
)

// Notices shown when a period ends.
const (
	BreakNotice = "Time for a break!"
	FocusNotice = "Back to work!"
)

type Timer struct {
	RemainingSeconds int
	IsRunning        bool
	IsBreakPeriod    bool
}

func New() *Timer {
	return &Timer{RemainingSeconds: FocusSeconds}
}

// Tick advances the countdown by one second. When the countdown crosses zero
// the timer stops, flips between focus and break, resets to the new period's
// duration, and returns the user-visible notice for that transition. The
// notice is returned exactly once per zero-crossing; all other ticks return
// the empty string.
func (t *Timer) Tick() string {
	if !t.IsRunning {
		return ""
	}
	if t.RemainingSeconds > 0 {
		t.RemainingSeconds--
	}
	if t.RemainingSeconds > 0 {
		return ""
	}

	t.IsRunning = false
	t.IsBreakPeriod = !t.IsBreakPeriod
	if t.IsBreakPeriod {
		t.RemainingSeconds = BreakSeconds
		return BreakNotice
	}
	t.RemainingSeconds = FocusSeconds
	return FocusNotice
}

// Toggle starts or pauses the countdown.
func (t *Timer) Toggle() {
	t.IsRunning = !t.IsRunning
}

// Reset stops the countdown and restores the canonical duration for the
// current period without changing which period it is.
func (t *Timer) Reset() {
	t.IsRunning = false
	if t.IsBreakPeriod {
		t.RemainingSeconds = BreakSeconds
	} else {
		t.RemainingSeconds = FocusSeconds
	}
}

// Display formats the countdown as minutes:seconds, seconds zero-padded.
func (t *Timer) Display() string {
	return fmt.Sprintf("%d:%02d", t.RemainingSeconds/60, t.RemainingSeconds%60)
}
