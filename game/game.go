// Package game hosts the cube simulation in an ebiten window.
package game

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/cubespawn/clock"
	"github.com/plus3/cubespawn/cubes"
	"github.com/plus3/cubespawn/diag"
	"github.com/plus3/cubespawn/ecs"
	"github.com/plus3/cubespawn/ecs/debugui"
	debugui_ebiten "github.com/plus3/cubespawn/ecs/debugui/ebiten"
	"github.com/plus3/cubespawn/input"
	"github.com/plus3/cubespawn/render"
)

// Game implements ebiten.Game.
type Game struct {
	World *cubes.World

	config Config
	logger *log.Logger
	clock  *clock.FrameClock
	scene  *render.Scene

	keyboard     ecs.Singleton[input.Keyboard]
	frameTime    ecs.Singleton[diag.FrameTime]
	imguiBackend ecs.Singleton[debugui_ebiten.ImguiBackend]
	imguiInput   ecs.Singleton[debugui.ImguiInputState]

	summary clock.Timer
}

// New builds the world and, when enabled, the ImGui overlay. It also
// configures the ebiten window, so it must be called before Run.
func New(config Config, logger *log.Logger) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	world, err := cubes.NewWorld(EbitenKeys{Bindings: DefaultBindings()}, nil)
	if err != nil {
		return nil, err
	}

	g := &Game{
		World:  world,
		config: config,
		logger: logger,
		clock:  clock.NewFrameClock(time.Now),
		scene:  render.NewScene(world.Storage),
	}

	if config.DebugUI {
		storage := world.Storage
		debugui.RegisterDebugUIComponents(world.Registry)
		ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend(config.Title, config.Width, config.Height))
		debugui.SpawnDebugUI(storage, world.Scheduler)
		world.Scheduler.Register(&debugui.ImguiSystem{})
		if err := world.Scheduler.Validate(); err != nil {
			return nil, err
		}
	} else {
		ebiten.SetWindowSize(config.Width, config.Height)
		ebiten.SetWindowTitle(config.Title)
	}
	ebiten.SetVsyncEnabled(config.VSync)
	ebiten.SetTPS(config.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.keyboard.Init(world.Storage)
	g.frameTime.Init(world.Storage)
	g.imguiBackend.Init(world.Storage)
	g.imguiInput.Init(world.Storage)

	if config.LogInterval > 0 {
		g.summary = clock.NewTimer(time.Duration(config.LogInterval*float64(time.Second)), clock.Repeating)
	}
	return g, nil
}

// keyboardCaptured reports whether the overlay owned the keyboard on the
// previous frame.
func (g *Game) keyboardCaptured() bool {
	state := g.imguiInput.Get()
	return state != nil && state.WantCaptureKeyboard
}

func (g *Game) Update() error {
	captured := g.keyboardCaptured()
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || (!captured && ebiten.IsKeyPressed(ebiten.KeyQ)) {
		return ebiten.Termination
	}

	g.keyboard.MustGet().Captured = captured

	backend := g.imguiBackend.Get()
	if backend != nil {
		backend.BeginFrame()
	}

	delta := g.clock.Delta()
	g.World.Update(delta.Seconds())

	if backend != nil {
		backend.EndFrame()
	}

	g.logSummary(delta)
	return nil
}

func (g *Game) logSummary(delta time.Duration) {
	if g.config.LogInterval <= 0 || !g.summary.Tick(delta).JustFinished() {
		return
	}

	fps, _ := g.frameTime.MustGet().FPS.Smoothed()
	g.logger.Printf("cubes=%d rate=%d fps=%.2f", g.World.Counter(), g.World.Spawner().SpawningRate, fps)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)

	if backend := g.imguiBackend.Get(); backend != nil {
		backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if backend := g.imguiBackend.Get(); backend != nil {
		backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(config Config, logger *log.Logger) error {
	g, err := New(config, logger)
	if err != nil {
		return err
	}

	g.logger.Printf("Starting %q at %dx%d (debug UI: %t)", config.Title, config.Width, config.Height, config.DebugUI)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	g.logger.Printf("Stopped after %d frames with %d cubes", g.World.Scheduler.Frames(), g.World.Counter())
	return nil
}
