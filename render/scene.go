package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/cubespawn/cubes"
	"github.com/plus3/cubespawn/ecs"
)

var clearColor = color.RGBA{R: 40, G: 40, B: 46, A: 255}

// Scene draws the whole frame from the storage's singletons.
type Scene struct {
	Camera ecs.Singleton[cubes.Camera]
	Assets ecs.Singleton[cubes.CubeAssets]
	Stats  ecs.Singleton[cubes.StatsText]

	cubes *CubeRenderer
}

// NewScene binds the scene singletons of storage.
func NewScene(storage *ecs.Storage) *Scene {
	s := &Scene{cubes: NewCubeRenderer(storage)}
	s.Camera.Init(storage)
	s.Assets.Init(storage)
	s.Stats.Init(storage)
	return s
}

// Draw clears screen and draws the cubes, then the stats text.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)

	bounds := screen.Bounds()
	proj := NewProjection(*s.Camera.MustGet(), bounds.Dx(), bounds.Dy())
	s.cubes.Draw(screen, &proj, s.Assets.MustGet())

	DrawStats(screen, s.Stats.MustGet())
}
