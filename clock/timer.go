// Package clock provides frame-driven timers and a frame delta clock.
package clock

import "time"

// TimerMode selects whether a timer stops or wraps when it completes.
type TimerMode int

const (
	// Once timers stay finished after their first completion.
	Once TimerMode = iota
	// Repeating timers wrap their elapsed time and fire again every period.
	Repeating
)

// Timer counts frame time towards a duration. It does not read the wall
// clock; callers advance it with Tick.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     TimerMode
	paused   bool

	finished              bool
	timesFinishedThisTick uint32
}

// NewTimer creates a timer that completes after d.
func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{duration: d, mode: mode}
}

// Tick advances the timer by delta.
//
// A repeating timer that passes its duration wraps its elapsed time by
// whole periods and reports JustFinished for this tick only, however many
// periods delta covered. TimesFinishedThisTick tells how many were covered.
// A zero duration repeating timer fires exactly once per tick.
func (t *Timer) Tick(delta time.Duration) *Timer {
	if t.paused || (t.mode == Once && t.finished) {
		t.timesFinishedThisTick = 0
		return t
	}

	t.elapsed += delta
	t.finished = t.elapsed >= t.duration
	if !t.finished {
		t.timesFinishedThisTick = 0
		return t
	}

	switch {
	case t.mode == Once:
		t.timesFinishedThisTick = 1
		t.elapsed = t.duration
	case t.duration == 0:
		t.timesFinishedThisTick = 1
		t.elapsed = 0
	default:
		t.timesFinishedThisTick = uint32(t.elapsed / t.duration)
		t.elapsed %= t.duration
	}
	return t
}

// Finished reports whether the timer completed. For repeating timers this is
// only true on the tick that completed a period.
func (t *Timer) Finished() bool {
	return t.finished
}

// JustFinished reports whether the last Tick completed at least one period.
func (t *Timer) JustFinished() bool {
	return t.timesFinishedThisTick > 0
}

// TimesFinishedThisTick returns how many periods the last Tick completed.
func (t *Timer) TimesFinishedThisTick() uint32 {
	return t.timesFinishedThisTick
}

// Elapsed returns time accumulated towards the current period.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Duration returns the timer period.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// SetDuration changes the period without touching elapsed time.
func (t *Timer) SetDuration(d time.Duration) {
	t.duration = d
}

// Mode returns the timer mode.
func (t *Timer) Mode() TimerMode {
	return t.mode
}

// Remaining returns the time left in the current period.
func (t *Timer) Remaining() time.Duration {
	return max(t.duration-t.elapsed, 0)
}

// Fraction returns elapsed/duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.duration == 0 {
		return 1
	}
	return min(float64(t.elapsed)/float64(t.duration), 1)
}

// Pause stops Tick from advancing the timer.
func (t *Timer) Pause() {
	t.paused = true
}

// Unpause resumes a paused timer.
func (t *Timer) Unpause() {
	t.paused = false
}

// Paused reports whether the timer is paused.
func (t *Timer) Paused() bool {
	return t.paused
}

// Reset clears elapsed time and completion state.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.timesFinishedThisTick = 0
}
