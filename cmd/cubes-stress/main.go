package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/cubespawn/cubes"
	"github.com/plus3/cubespawn/input"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	dt := flag.Duration("dt", time.Second/60, "Fixed simulated frame time; 0 uses the measured wall-clock delta.")
	maxFrames := flag.Int64("frames", 0, "Stop after this many frames; 0 runs for the full duration.")
	keys := flag.String("keys", "", `Comma-separated key script replayed one frame per entry, e.g. "+,+,-,+-,".`)
	seed := flag.Uint64("seed", 1, "Seed for cube positions.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	script, err := input.ParseScript(*keys)
	if err != nil {
		log.Fatalf("Invalid key script: %v", err)
	}

	log.Println("Starting cube spawn stress test...")

	world, err := cubes.NewWorld(script, rand.New(rand.NewPCG(*seed, *seed)))
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}

	report := &Report{
		Duration:       *duration,
		DeltaTime:      *dt,
		MaxFrames:      *maxFrames,
		KeyFrames:      script.Len(),
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	run(ctx, world, script, report)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// run steps the world until ctx is done or report.MaxFrames frames have
// run, advancing script once per frame, and fills in the results.
func run(ctx context.Context, world *cubes.World, script *input.Script, report *Report) {
	startTime := time.Now()
	lastFrameTime := startTime
	var simulated time.Duration

Loop:
	for report.MaxFrames <= 0 || report.TotalUpdates < report.MaxFrames {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		delta := report.DeltaTime
		if delta == 0 {
			delta = time.Since(lastFrameTime)
			lastFrameTime = time.Now()
		}

		updateStart := time.Now()
		world.Update(delta.Seconds())
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		script.Step()
		simulated += delta
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(startTime)
	report.SimulatedTime = simulated
	report.UpdateTime.Finalize()

	report.Cubes = world.CubeCount()
	report.Counter = world.Counter()
	report.SpawningRate = world.Spawner().SpawningRate
	report.Systems = world.Scheduler.Stats().Systems
	report.StatsText = world.Stats().String()
}
