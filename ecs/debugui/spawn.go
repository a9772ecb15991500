package debugui

import "github.com/plus3/cubespawn/ecs"

// PerformanceHistoryFrames is how many FPS samples the performance plot keeps.
const PerformanceHistoryFrames = 120

// RegisterDebugUIComponents registers the component types the overlay spawns.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// SpawnDebugUI adds the input-state singleton and spawns the performance
// and resource inspector windows. The ImguiSystem still has to be
// registered with the scheduler.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	ecs.NewSingleton[ImguiInputState](storage)

	performance := NewPerformanceWindow(scheduler, PerformanceHistoryFrames)
	inspector := NewResourceInspector()

	storage.Spawn(ImguiItem{Render: func() { performance.Render(storage) }})
	storage.Spawn(ImguiItem{Render: func() { inspector.Render(storage) }})
}
