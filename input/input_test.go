package input_test

import (
	"testing"

	"github.com/plus3/cubespawn/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyboardCapture(t *testing.T) {
	kb := input.Keyboard{Source: input.Held{input.IncreaseRate: true}}
	assert.True(t, kb.Pressed(input.IncreaseRate))
	assert.False(t, kb.Pressed(input.DecreaseRate))

	kb.Captured = true
	assert.False(t, kb.Pressed(input.IncreaseRate))

	var empty input.Keyboard
	assert.False(t, empty.Pressed(input.IncreaseRate))
}

func TestParseScript(t *testing.T) {
	script, err := input.ParseScript("+,-,+-,")
	require.NoError(t, err)
	require.Equal(t, 4, script.Len())

	type frame struct{ inc, dec bool }
	var got []frame
	for range 5 {
		got = append(got, frame{script.Pressed(input.IncreaseRate), script.Pressed(input.DecreaseRate)})
		script.Step()
	}

	assert.Equal(t, []frame{
		{true, false},
		{false, true},
		{true, true},
		{false, false},
		{true, false},
	}, got)
}

func TestParseScriptErrors(t *testing.T) {
	_, err := input.ParseScript("+,x")
	assert.ErrorContains(t, err, "frame 1")

	script, err := input.ParseScript("")
	require.NoError(t, err)
	assert.False(t, script.Pressed(input.IncreaseRate))
	script.Step()
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "increase-rate", input.IncreaseRate.String())
	assert.Equal(t, "decrease-rate", input.DecreaseRate.String())
	assert.Equal(t, "Action(7)", input.Action(7).String())
}
