// Package cubes holds the cube spawning simulation: its components,
// singletons, and the per-frame systems that drive them.
package cubes

import (
	"math/rand/v2"

	"github.com/plus3/cubespawn/diag"
	"github.com/plus3/cubespawn/ecs"
	"github.com/plus3/cubespawn/input"
)

// RegisterComponents registers the entity component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[MovingCube](registry)
}

// Setup adds the singletons every system depends on. keys is the input
// source read by RateInputSystem.
func Setup(storage *ecs.Storage, keys input.KeySource) {
	storage.AddSingleton(NewSpawner(InitialSpawningRate, SpawnInterval))
	storage.AddSingleton(CubeCounter{})
	storage.AddSingleton(NewStatsText())
	storage.AddSingleton(CubeAssets{Size: CubeSize, Color: CubeColor})
	storage.AddSingleton(DefaultCamera())
	storage.AddSingleton(input.Keyboard{Source: keys})
	storage.AddSingleton(diag.NewFrameTime())
}

// RegisterSystems adds the simulation systems in their frame order: frame
// timing, rate input, spawning, motion, then stats. Stats runs last so it
// sees this frame's rate and counter.
func RegisterSystems(scheduler *ecs.Scheduler, rng *rand.Rand) {
	scheduler.Register(&diag.FrameTimeSystem{})
	scheduler.Register(&RateInputSystem{})
	scheduler.Register(&SpawnSystem{Rand: rng})
	scheduler.Register(&MotionSystem{})
	scheduler.Register(&StatsSystem{})
}

// World is a headless, fully wired simulation.
type World struct {
	Registry  *ecs.ComponentRegistry
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
}

// NewWorld builds and validates a world reading keys from keys. A nil rng
// uses the global source.
func NewWorld(keys input.KeySource, rng *rand.Rand) (*World, error) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	Setup(storage, keys)

	scheduler := ecs.NewScheduler(storage)
	RegisterSystems(scheduler, rng)
	if err := scheduler.Validate(); err != nil {
		return nil, err
	}

	return &World{
		Registry:  registry,
		Storage:   storage,
		Scheduler: scheduler,
	}, nil
}

// Update runs one frame of dt seconds.
func (w *World) Update(dt float64) {
	w.Scheduler.Once(dt)
}

// CubeCount returns the number of cube entities.
func (w *World) CubeCount() int {
	return ecs.NewView[struct {
		*Transform
		*MovingCube
	}](w.Storage).Count()
}

// Counter returns the running spawn total.
func (w *World) Counter() uint32 {
	var counter *CubeCounter
	if !w.Storage.ReadSingleton(&counter) {
		return 0
	}
	return counter.Count
}

// Spawner returns the spawner singleton.
func (w *World) Spawner() *Spawner {
	return ecs.NewSingleton[Spawner](w.Storage).MustGet()
}

// Stats returns the stats text singleton.
func (w *World) Stats() *StatsText {
	return ecs.NewSingleton[StatsText](w.Storage).MustGet()
}
