// Command navplan bakes a level's mesh and plans a path across it without
// opening a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/milk9111/navshell/levels"
	"github.com/milk9111/navshell/navmesh"
)

func main() {
	levelName := flag.String("level", "courtyard", "level name in levels/ (basename, .yaml optional)")
	from := flag.String("from", "", "start point as x,y")
	to := flag.String("to", "", "goal point as x,y")
	legacy := flag.Bool("legacy-heuristic", false, "plan with the legacy cell heuristic")
	batch := flag.Int("batch", 0, "also plan this many random queries concurrently and report timing")
	seed := flag.Int64("seed", 1, "seed for -batch")
	flag.Parse()

	if err := run(os.Stdout, config{
		level:  *levelName,
		from:   *from,
		to:     *to,
		legacy: *legacy,
		batch:  *batch,
		seed:   *seed,
	}); err != nil {
		log.Fatal(err)
	}
}

type config struct {
	level    string
	from, to string
	legacy   bool
	batch    int
	seed     int64
}

func run(out io.Writer, cfg config) error {
	lvl, err := levels.LoadLevel(cfg.level)
	if err != nil {
		return err
	}
	var opts []navmesh.Option
	if cfg.legacy {
		opts = append(opts, navmesh.WithHeuristic(navmesh.HeuristicLegacy))
	}
	mesh, err := lvl.Bake(opts...)
	if err != nil {
		return err
	}

	portals := 0
	for _, c := range mesh.Cells() {
		portals += len(c.Edges)
	}
	fmt.Fprintf(out, "level %s: %d cells, %d portals, %d agents, heuristic %s\n",
		lvl.Name, mesh.Len(), portals/2, len(lvl.Agents), mesh.Heuristic())

	if cfg.from != "" || cfg.to != "" {
		if err := planOne(out, mesh, cfg.from, cfg.to); err != nil {
			return err
		}
	}

	if cfg.batch > 0 {
		return planBatch(out, mesh, cfg.batch, cfg.seed)
	}
	return nil
}

func planOne(out io.Writer, mesh *navmesh.NavMesh, fromArg, toArg string) error {
	start, err := parsePoint(fromArg)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	goal, err := parsePoint(toArg)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}
	startCell, ok := mesh.Locate(start)
	if !ok {
		return fmt.Errorf("-from %v is off the mesh", start)
	}
	goalCell, ok := mesh.Locate(goal)
	if !ok {
		return fmt.Errorf("-to %v is off the mesh", goal)
	}

	// The channel ends with the [goal, goal] sentinel.
	crossed := len(mesh.Channel(startCell, goalCell, goal)) - 1
	via := mesh.Plan(startCell, start, goalCell, goal)

	fmt.Fprintf(out, "start %v in cell %d, goal %v in cell %d, %d portals crossed\n",
		start, startCell, goal, goalCell, crossed)
	total := float32(0)
	prev := start
	for i, p := range append(via, goal) {
		d := navmesh.Distance(prev, p)
		total += d
		fmt.Fprintf(out, "  %d: %v (+%.2f)\n", i, p, d)
		prev = p
	}
	fmt.Fprintf(out, "length %.2f\n", total)
	return nil
}

// planBatch plans n queries between random points of random cells.
func planBatch(out io.Writer, mesh *navmesh.NavMesh, n int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	queries := make([]navmesh.Query, n)
	for i := range queries {
		sc := uint32(rng.Intn(mesh.Len()))
		gc := uint32(rng.Intn(mesh.Len()))
		queries[i] = navmesh.Query{
			StartCell: sc,
			Start:     randomPointIn(rng, mesh.Cell(sc)),
			GoalCell:  gc,
			Goal:      randomPointIn(rng, mesh.Cell(gc)),
		}
	}

	began := time.Now()
	paths, err := mesh.PlanBatch(context.Background(), queries)
	if err != nil {
		return err
	}
	elapsed := time.Since(began)

	via := 0
	for _, p := range paths {
		via += len(p)
	}
	fmt.Fprintf(out, "batch: %d plans in %s (%.1f via-points avg)\n", n, elapsed, float64(via)/float64(n))
	return nil
}

// randomPointIn returns a random convex combination of the cell's polygon
// vertices, or its center.
func randomPointIn(rng *rand.Rand, cell navmesh.Cell) navmesh.Vec2 {
	if len(cell.Polygon) == 0 {
		return cell.Center
	}
	var p navmesh.Vec2
	total := float32(0)
	for _, v := range cell.Polygon {
		wt := rng.Float32() + 0.01
		p = p.Add(v.Scale(wt))
		total += wt
	}
	return p.Scale(1 / total)
}
