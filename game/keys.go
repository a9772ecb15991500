package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/cubespawn/input"
)

// Bindings maps each action to the keys that trigger it.
type Bindings map[input.Action][]ebiten.Key

// DefaultBindings binds W/ArrowUp to IncreaseRate and S/ArrowDown to DecreaseRate.
func DefaultBindings() Bindings {
	return Bindings{
		input.IncreaseRate: {ebiten.KeyW, ebiten.KeyArrowUp},
		input.DecreaseRate: {ebiten.KeyS, ebiten.KeyArrowDown},
	}
}

// EbitenKeys reads actions from the ebiten keyboard state.
type EbitenKeys struct {
	Bindings Bindings
}

// Pressed reports whether any key bound to a is held.
func (k EbitenKeys) Pressed(a input.Action) bool {
	for _, key := range k.Bindings[a] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
