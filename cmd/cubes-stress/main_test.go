package main

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/cubespawn/cubes"
	"github.com/plus3/cubespawn/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFixedFrames(t *testing.T) {
	script, err := input.ParseScript("+,-,+-,")
	require.NoError(t, err)

	world, err := cubes.NewWorld(script, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)

	report := &Report{DeltaTime: 250 * time.Millisecond, MaxFrames: 8, KeyFrames: script.Len()}
	run(context.Background(), world, script, report)

	assert.Equal(t, int64(8), report.TotalUpdates)
	assert.Equal(t, 2*time.Second, report.SimulatedTime)
	assert.Len(t, report.UpdateTime.Samples, 8)
	assert.LessOrEqual(t, report.UpdateTime.Min, report.UpdateTime.Max)

	// Each pass over the script nets zero: frame 1 adds 125, frame 2
	// subtracts it, frame 3 cancels and frame 4 holds nothing. The timer
	// fires on frames 4 and 8.
	assert.Equal(t, cubes.InitialSpawningRate, report.SpawningRate)
	assert.Equal(t, uint32(200), report.Counter)
	assert.Equal(t, 200, report.Cubes)
	assert.Len(t, report.Systems, 5)

	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "**Cubes:** 200 (counter 200)")
	assert.Contains(t, out.String(), "| SpawnSystem | 8 |")
}

func TestRunStopsOnCancel(t *testing.T) {
	world, err := cubes.NewWorld(nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := &Report{DeltaTime: time.Millisecond}
	run(ctx, world, &input.Script{}, report)
	assert.Zero(t, report.TotalUpdates)
}
