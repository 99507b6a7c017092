package main

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/entity"
	"github.com/milk9111/navshell/ecs/render"
	"github.com/milk9111/navshell/ecs/system"
	"github.com/milk9111/navshell/levels"
	"github.com/milk9111/navshell/navmesh"
	"github.com/milk9111/navshell/observe"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	tickRate   = 1.0 / 60.0
)

type Game struct {
	levelName string
	debug     bool
	opts      []navmesh.Option

	world     *ecs.World
	nav       *system.NavigationSystem
	navScript *system.NavScriptSystem
	watcher   *levels.Watcher
}

func NewGame(levelName string, debug, legacyHeuristic bool) (*Game, error) {
	g := &Game{levelName: levelName, debug: debug}
	if legacyHeuristic {
		g.opts = append(g.opts, navmesh.WithHeuristic(navmesh.HeuristicLegacy))
	}
	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	return g, nil
}

// loadLevel rebuilds the world from the current level. The old world is kept
// when the level fails to load.
func (g *Game) loadLevel() error {
	lvl, err := levels.LoadLevel(g.levelName)
	if err != nil {
		return err
	}
	mesh, err := lvl.Bake(g.opts...)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, lvl, mesh, baseWidth, baseHeight); err != nil {
		return err
	}

	navScript := system.NewNavScriptSystem(levels.LoadScript)
	nav := system.NewNavigationSystem(observe.DefaultMetrics())
	w.AddSystem(system.NewInputSystem(ebitenCursor{}))
	w.AddSystem(navScript)
	w.AddSystem(nav)
	w.AddSystem(system.NewMovementSystem(tickRate))
	w.AddSystem(system.NewCollisionSystem(tickRate))
	w.AddSystem(system.NewStepSystem())

	if g.nav != nil {
		g.nav.Release()
	}
	g.world = w
	g.nav = nav
	g.navScript = navScript
	return nil
}

func (g *Game) Update() error {
	g.drainChanges()
	g.world.Update()
	return nil
}

func (g *Game) drainChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) applyChange(change levels.Change) {
	switch change.Kind {
	case levels.ChangeLevel:
		if !sameLevel(change.Name, g.levelName) {
			return
		}
		if err := g.loadLevel(); err != nil {
			log.Printf("watch: reload %s: %v", change.Name, err)
			return
		}
		log.Printf("watch: reloaded %s", change.Name)
	case levels.ChangeScript:
		g.navScript.Invalidate(change.Name)
		log.Printf("watch: reloaded %s", change.Name)
	}
}

func sameLevel(file, level string) bool {
	trim := func(s string) string {
		s = filepath.Base(s)
		return strings.TrimSuffix(s, filepath.Ext(s))
	}
	return trim(file) == trim(level)
}

func (g *Game) Draw(screen *ebiten.Image) {
	render.Draw(g.world, screen, render.Options{Debug: g.debug})
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// ebitenCursor reads the mouse through ebiten.
type ebitenCursor struct{}

func (ebitenCursor) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenCursor) IsPrimaryPressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (ebitenCursor) IsSecondaryPressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
}
