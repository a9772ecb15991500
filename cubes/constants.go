package cubes

import (
	"image/color"
	"math"
	"time"
)

const (
	InitialSpawningRate uint32 = 100
	// SpawningRateStep is how much holding a rate key changes the spawn rate
	// per second of frame time.
	SpawningRateStep = 500
	SpawnInterval    = time.Second

	// SpawnExtent bounds each axis of a new cube's position to
	// [-SpawnExtent, SpawnExtent).
	SpawnExtent float32 = 10
	CubeXRange  float32 = 20
	CubeSpeed   float32 = 10
	CubeSize    float32 = 1

	StatsSectionCount = 10

	CountSection       = 1
	RateSection        = 3
	FPSRawSection      = 5
	FPSAverageSection  = 7
	FPSSmoothedSection = 9
)

var (
	CubeColor  = color.RGBA{R: 204, G: 178, B: 153, A: 255}
	LabelColor = color.RGBA{G: 255, A: 255}
	ValueColor = color.RGBA{G: 255, B: 255, A: 255}
)

// DefaultCamera looks at the origin from above and behind the spawn volume.
func DefaultCamera() Camera {
	return Camera{
		Eye:    Vec3{-20, 25, 50},
		Target: Vec3{},
		Up:     Vec3{0, 1, 0},
		FovY:   math.Pi / 4,
		Near:   0.1,
	}
}
