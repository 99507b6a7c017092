package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/navshell/levels"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics shapes and planner stats")
	levelName := flag.String("level", "courtyard", "level name in levels/ (basename, .yaml optional)")
	watch := flag.Bool("watch", false, "reload levels and scripts when they change on disk")
	legacy := flag.Bool("legacy-heuristic", false, "plan with the legacy cell heuristic")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("navshell")

	game, err := NewGame(*levelName, *debug, *legacy)
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		watcher, err := levels.NewWatcher(levels.DiskDir)
		if err != nil {
			log.Printf("watch: %v", err)
		} else {
			defer watcher.Close()
			game.watcher = watcher
		}
	}

	// The shell draws its own crosshair.
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
