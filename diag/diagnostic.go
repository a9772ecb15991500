// Package diag records frame-time diagnostics: the latest value, a simple
// moving average over a bounded history and a time-weighted exponential
// moving average.
package diag

import "time"

const (
	// DefaultMaxHistory bounds the samples kept for the moving average.
	DefaultMaxHistory = 20
	// DefaultSmoothing is the time constant (in seconds) of the exponential
	// moving average.
	DefaultSmoothing = 2.0 / 21.0
)

type measurement struct {
	at    time.Duration
	value float64
}

// Diagnostic keeps a bounded history of measurements.
type Diagnostic struct {
	Name   string
	Suffix string

	history   []measurement
	head      int
	size      int
	sum       float64
	ema       float64
	smoothing float64
}

// NewDiagnostic creates a diagnostic keeping up to maxHistory samples.
func NewDiagnostic(name, suffix string, maxHistory int) Diagnostic {
	return Diagnostic{
		Name:      name,
		Suffix:    suffix,
		history:   make([]measurement, max(maxHistory, 1)),
		smoothing: DefaultSmoothing,
	}
}

// Add records value measured at time at (time since some fixed origin).
func (d *Diagnostic) Add(at time.Duration, value float64) {
	if len(d.history) == 0 {
		d.history = make([]measurement, DefaultMaxHistory)
		d.smoothing = DefaultSmoothing
	}

	if latest, ok := d.latest(); ok {
		dt := (at - latest.at).Seconds()
		alpha := 1.0
		if d.smoothing > 0 {
			alpha = min(max(dt/d.smoothing, 0), 1)
		}
		d.ema += alpha * (value - d.ema)
	} else {
		d.ema = value
	}

	if d.size == len(d.history) {
		d.sum -= d.history[d.head].value
	} else {
		d.size++
	}
	d.history[d.head] = measurement{at: at, value: value}
	d.head = (d.head + 1) % len(d.history)
	d.sum += value
}

func (d *Diagnostic) latest() (measurement, bool) {
	if d.size == 0 {
		return measurement{}, false
	}
	i := (d.head - 1 + len(d.history)) % len(d.history)
	return d.history[i], true
}

// Value returns the most recent measurement.
func (d *Diagnostic) Value() (float64, bool) {
	m, ok := d.latest()
	return m.value, ok
}

// Average returns the mean of the retained history.
func (d *Diagnostic) Average() (float64, bool) {
	if d.size == 0 {
		return 0, false
	}
	return d.sum / float64(d.size), true
}

// Smoothed returns the exponential moving average.
func (d *Diagnostic) Smoothed() (float64, bool) {
	if d.size == 0 {
		return 0, false
	}
	return d.ema, true
}

// Len returns the number of retained samples.
func (d *Diagnostic) Len() int {
	return d.size
}

// Values copies the retained samples, oldest first, into dst and returns it.
func (d *Diagnostic) Values(dst []float64) []float64 {
	start := (d.head - d.size + len(d.history)) % max(len(d.history), 1)
	for i := range d.size {
		dst = append(dst, d.history[(start+i)%len(d.history)].value)
	}
	return dst
}

// Clear drops every sample.
func (d *Diagnostic) Clear() {
	d.head, d.size, d.sum, d.ema = 0, 0, 0, 0
}
