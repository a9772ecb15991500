package main

import (
	"flag"
	"log"

	"github.com/plus3/cubespawn/game"
)

func main() {
	config := game.DefaultConfig()
	flag.IntVar(&config.Width, "width", config.Width, "Window width in pixels.")
	flag.IntVar(&config.Height, "height", config.Height, "Window height in pixels.")
	flag.StringVar(&config.Title, "title", config.Title, "Window title.")
	flag.BoolVar(&config.VSync, "vsync", config.VSync, "Synchronise presentation with the display.")
	flag.BoolVar(&config.DebugUI, "debugui", config.DebugUI, "Show the ImGui debug overlay.")
	flag.IntVar(&config.TPS, "tps", config.TPS, "Updates per second.")
	flag.Float64Var(&config.LogInterval, "log-interval", config.LogInterval, "Seconds between summary log lines; 0 disables them.")
	flag.Parse()

	if err := game.Run(config, log.Default()); err != nil {
		log.Fatalf("cubes: %v", err)
	}
}
