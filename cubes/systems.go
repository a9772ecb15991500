package cubes

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/plus3/cubespawn/diag"
	"github.com/plus3/cubespawn/ecs"
	"github.com/plus3/cubespawn/input"
)

// RateInputSystem adjusts the spawn rate while a rate key is held.
type RateInputSystem struct {
	Keyboard ecs.Singleton[input.Keyboard]
	Spawner  ecs.Singleton[Spawner]
}

func (s *RateInputSystem) Execute(frame *ecs.UpdateFrame) {
	keyboard := s.Keyboard.MustGet()
	spawner := s.Spawner.MustGet()

	step := rateStep(frame.DeltaTime)
	if keyboard.Pressed(input.IncreaseRate) {
		spawner.SpawningRate = saturatingAdd(spawner.SpawningRate, step)
	}
	if keyboard.Pressed(input.DecreaseRate) {
		spawner.SpawningRate = saturatingSub(spawner.SpawningRate, step)
	}
}

// rateStep rounds half away from zero.
func rateStep(dt float64) uint32 {
	step := math.Round(SpawningRateStep * dt)
	switch {
	case step <= 0:
		return 0
	case step >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(step)
}

func saturatingAdd(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}

func saturatingSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}

// SpawnSystem spawns SpawningRate cubes each time the spawner's timer fires.
// A tick that spans several periods still spawns a single batch.
type SpawnSystem struct {
	Spawner ecs.Singleton[Spawner]
	Counter ecs.Singleton[CubeCounter]

	Rand *rand.Rand
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	spawner := s.Spawner.MustGet()
	counter := s.Counter.MustGet()

	if !spawner.Timer.Tick(frame.Delta()).JustFinished() {
		return
	}

	for range spawner.SpawningRate {
		frame.Commands.Spawn(
			Transform{Translation: Vec3{
				X: s.randomAxis(),
				Y: s.randomAxis(),
				Z: s.randomAxis(),
			}},
			MovingCube{Speed: CubeSpeed, XRange: CubeXRange},
		)
		counter.Count++
	}
}

// randomAxis draws from [-SpawnExtent, SpawnExtent). Narrowing to float32
// can round up onto the open bound, which is pulled back by one ulp.
func (s *SpawnSystem) randomAxis() float32 {
	var f float64
	if s.Rand != nil {
		f = s.Rand.Float64()
	} else {
		f = rand.Float64()
	}

	v := float32((2*f - 1) * float64(SpawnExtent))
	if v >= SpawnExtent {
		v = math.Nextafter32(SpawnExtent, 0)
	}
	return v
}

// MotionSystem moves every cube along +X and wraps it back once it passes
// its range.
type MotionSystem struct {
	Cubes ecs.Query[struct {
		*Transform
		*MovingCube
	}]
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for cube := range s.Cubes.Values() {
		Step(&cube.Transform.Translation, cube.MovingCube, dt)
	}
}

// Step advances p by one motion step of dt seconds. The wrap is a single
// jump of 2·XRange, so a position more than 2·XRange past the bound stays
// past it.
func Step(p *Vec3, cube *MovingCube, dt float32) {
	p.X += cube.Speed * dt
	if p.X > cube.XRange {
		p.X -= 2 * cube.XRange
	}
}

// StatsSystem writes the counters and FPS samples into StatsText.
type StatsSystem struct {
	Text      ecs.Singleton[StatsText]
	Counter   ecs.Singleton[CubeCounter]
	Spawner   ecs.Singleton[Spawner]
	FrameTime ecs.Singleton[diag.FrameTime]

	lastCount uint32
	rendered  bool
}

func (s *StatsSystem) Execute(frame *ecs.UpdateFrame) {
	text := s.Text.MustGet()
	count := s.Counter.MustGet().Count
	rate := s.Spawner.MustGet().SpawningRate
	frameTime := s.FrameTime.MustGet()

	if !s.rendered || count != s.lastCount {
		text.Sections[CountSection].Value = strconv.FormatUint(uint64(count), 10)
		s.lastCount = count
		s.rendered = true
	}

	text.Sections[RateSection].Value = strconv.FormatUint(uint64(rate), 10)

	if v, ok := frameTime.FPS.Value(); ok {
		text.Sections[FPSRawSection].Value = formatFPS(v)
	}
	if v, ok := frameTime.FPS.Average(); ok {
		text.Sections[FPSAverageSection].Value = formatFPS(v)
	}
	if v, ok := frameTime.FPS.Smoothed(); ok {
		text.Sections[FPSSmoothedSection].Value = formatFPS(v)
	}
}

func formatFPS(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
