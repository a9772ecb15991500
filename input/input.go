// Package input maps held keys to the demo's logical actions.
package input

import (
	"fmt"
	"strings"
)

// Action is a logical button.
type Action int

const (
	IncreaseRate Action = iota
	DecreaseRate
)

func (a Action) String() string {
	switch a {
	case IncreaseRate:
		return "increase-rate"
	case DecreaseRate:
		return "decrease-rate"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// KeySource reports which actions are held during the current frame.
type KeySource interface {
	Pressed(Action) bool
}

// Keyboard is the singleton systems read input through.
type Keyboard struct {
	Source KeySource
	// Captured is set while another consumer (such as a debug overlay) owns
	// the keyboard; no action reads as held in that case.
	Captured bool
}

// Pressed reports whether the action is held and the keyboard is not
// captured.
func (k *Keyboard) Pressed(a Action) bool {
	if k.Captured || k.Source == nil {
		return false
	}
	return k.Source.Pressed(a)
}

// Held is a fixed set of held actions.
type Held map[Action]bool

func (h Held) Pressed(a Action) bool {
	return h[a]
}

// Script replays a sequence of frames, one step per Step call, looping when
// it reaches the end. Each frame is a string of '+' (increase) and '-'
// (decrease) marks; an empty frame holds nothing.
type Script struct {
	frames []Held
	pos    int
}

// ParseScript parses comma-separated frames such as "+,+,-,+-,".
func ParseScript(s string) (*Script, error) {
	script := &Script{}
	if s == "" {
		return script, nil
	}
	for i, frame := range strings.Split(s, ",") {
		held := Held{}
		for _, r := range frame {
			switch r {
			case '+':
				held[IncreaseRate] = true
			case '-':
				held[DecreaseRate] = true
			case ' ':
			default:
				return nil, fmt.Errorf("input: frame %d: unexpected %q in key script", i, r)
			}
		}
		script.frames = append(script.frames, held)
	}
	return script, nil
}

func (s *Script) Pressed(a Action) bool {
	if len(s.frames) == 0 {
		return false
	}
	return s.frames[s.pos].Pressed(a)
}

// Step moves to the next frame.
func (s *Script) Step() {
	if len(s.frames) == 0 {
		return
	}
	s.pos = (s.pos + 1) % len(s.frames)
}

// Len returns the number of frames in the script.
func (s *Script) Len() int {
	return len(s.frames)
}
