package diag_test

import (
	"testing"
	"time"

	"github.com/plus3/cubespawn/diag"
	"github.com/plus3/cubespawn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyDiagnosticHasNoSamples(t *testing.T) {
	d := diag.NewDiagnostic("fps", "", 4)

	_, ok := d.Value()
	assert.False(t, ok)
	_, ok = d.Average()
	assert.False(t, ok)
	_, ok = d.Smoothed()
	assert.False(t, ok)
}

func TestDiagnosticAverageIsBounded(t *testing.T) {
	d := diag.NewDiagnostic("fps", "", 3)

	for i, v := range []float64{10, 20, 30, 40} {
		d.Add(time.Duration(i+1)*time.Second, v)
	}

	value, ok := d.Value()
	require.True(t, ok)
	assert.Equal(t, 40.0, value)

	avg, ok := d.Average()
	require.True(t, ok)
	assert.InDelta(t, 30.0, avg, 1e-9)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []float64{20, 30, 40}, d.Values(nil))
}

func TestDiagnosticSmoothing(t *testing.T) {
	d := diag.NewDiagnostic("fps", "", 20)

	d.Add(0, 60)
	ema, _ := d.Smoothed()
	assert.Equal(t, 60.0, ema, "first sample seeds the average")

	// A gap longer than the smoothing constant replaces the average.
	d.Add(time.Second, 30)
	ema, _ = d.Smoothed()
	assert.Equal(t, 30.0, ema)

	// A short gap moves it part of the way.
	step := 10 * time.Millisecond
	d.Add(time.Second+step, 40)
	ema, _ = d.Smoothed()
	alpha := step.Seconds() / diag.DefaultSmoothing
	assert.InDelta(t, 30+alpha*10, ema, 1e-9)
}

func TestDiagnosticClear(t *testing.T) {
	d := diag.NewDiagnostic("fps", "", 2)
	d.Add(time.Second, 1)
	d.Clear()
	assert.Zero(t, d.Len())
	_, ok := d.Value()
	assert.False(t, ok)
}

func TestFrameTimeSystem(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	frameTime := ecs.NewSingleton[diag.FrameTime](storage, diag.NewFrameTime())

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&diag.FrameTimeSystem{})
	require.NoError(t, scheduler.Validate())

	scheduler.Once(0)
	ft := frameTime.Get()
	assert.Equal(t, uint64(1), ft.FrameCount)
	_, ok := ft.FPS.Value()
	assert.False(t, ok, "a zero delta frame produces no FPS sample")

	scheduler.Once(0.02)
	scheduler.Once(0.01)

	fps, ok := ft.FPS.Value()
	require.True(t, ok)
	assert.InDelta(t, 100.0, fps, 1e-3)

	avg, ok := ft.FPS.Average()
	require.True(t, ok)
	assert.InDelta(t, 75.0, avg, 1e-3)

	ms, ok := ft.FrameTime.Value()
	require.True(t, ok)
	assert.InDelta(t, 10.0, ms, 1e-3)
	assert.Equal(t, uint64(3), ft.FrameCount)
}
