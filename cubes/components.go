package cubes

import (
	"image/color"
	"time"

	"github.com/plus3/cubespawn/clock"
)

// Transform places an entity in the world.
type Transform struct {
	Translation Vec3
}

// MovingCube marks a spawned cube and holds its motion parameters.
type MovingCube struct {
	Speed  float32
	XRange float32
}

// Spawner holds the current spawn rate and the interval timer. Singleton.
type Spawner struct {
	SpawningRate uint32
	Timer        clock.Timer
}

// NewSpawner returns a spawner firing every interval.
func NewSpawner(rate uint32, interval time.Duration) Spawner {
	return Spawner{
		SpawningRate: rate,
		Timer:        clock.NewTimer(interval, clock.Repeating),
	}
}

// CubeCounter counts every cube ever spawned. Singleton.
type CubeCounter struct {
	Count uint32
}

// TextSection is one run of text drawn in a single colour.
type TextSection struct {
	Value string
	Color color.RGBA
}

// StatsText is the on-screen statistics block. Even sections are labels;
// odd sections hold the values written by StatsSystem. Singleton.
type StatsText struct {
	Sections [StatsSectionCount]TextSection
}

// NewStatsText returns the labelled block with empty values.
func NewStatsText() StatsText {
	labels := [...]string{
		"Cubes Count: ",
		"\nSpawning Rate: ",
		"\nFPS (raw): ",
		"\nFPS (SMA): ",
		"\nFPS (EMA): ",
	}

	var text StatsText
	for i, label := range labels {
		text.Sections[2*i] = TextSection{Value: label, Color: LabelColor}
		text.Sections[2*i+1] = TextSection{Color: ValueColor}
	}
	return text
}

// String concatenates every section.
func (s *StatsText) String() string {
	var n int
	for _, section := range s.Sections {
		n += len(section.Value)
	}
	b := make([]byte, 0, n)
	for _, section := range s.Sections {
		b = append(b, section.Value...)
	}
	return string(b)
}

// CubeAssets is the mesh and material shared by every cube. Singleton.
type CubeAssets struct {
	Size  float32
	Color color.RGBA
}

// Camera is the viewpoint the scene is drawn from. Singleton.
type Camera struct {
	Eye    Vec3
	Target Vec3
	Up     Vec3
	// FovY is the vertical field of view in radians.
	FovY float32
	Near float32
}
