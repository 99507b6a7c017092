// Package navmesh plans paths over a static mesh of convex cells.
//
// A plan is computed in two phases. An A* search over the cell adjacency
// graph produces a channel: the ordered portals (shared boundary segments)
// crossed between the start and goal cells. The channel is then pulled
// taut with the simple stupid funnel algorithm, yielding the corner points
// an agent has to steer around.
//
// A NavMesh is immutable once built and may be shared by any number of
// goroutines.
package navmesh

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrEmptyMesh        = errors.New("navmesh: mesh has no cells")
	ErrDanglingNeighbor = errors.New("navmesh: edge references a missing cell")
	ErrNonFinite        = errors.New("navmesh: coordinate is NaN or infinite")
	ErrUnreachable      = errors.New("navmesh: goal cell unreachable from start cell")
)

// Edge is a directed link from its owning cell to Neighbor.
//
// Portal holds the endpoints of the shared boundary as seen from the owning
// cell: Area2(center, Portal[0], Portal[1]) is positive, which makes
// Portal[0] the left endpoint in screen space (y down) when leaving the cell.
type Edge struct {
	Portal   [2]Vec2
	Neighbor uint32
}

// Cell is a convex region of the mesh.
type Cell struct {
	Center Vec2
	Edges  []Edge
	// Polygon is the cell boundary. Only point location and rendering use it.
	Polygon []Vec2
}

// Heuristic selects how the remaining cost from a cell to the goal is
// estimated during the channel search.
type Heuristic int

const (
	// HeuristicPortal uses the distance from the nearest portal endpoint of
	// the cell to the goal.
	HeuristicPortal Heuristic = iota
	// HeuristicLegacy mixes the squared distance to the left endpoint with
	// the plain distance to the right endpoint. It overestimates wildly on
	// large meshes and is kept only to reproduce older baked plans.
	HeuristicLegacy
)

func (h Heuristic) String() string {
	switch h {
	case HeuristicPortal:
		return "portal"
	case HeuristicLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Heuristic(%d)", int(h))
	}
}

// Option configures a NavMesh.
type Option func(*NavMesh)

// WithHeuristic selects the search heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(m *NavMesh) {
		m.heuristicKind = h
	}
}

// NavMesh owns the cells of a level. Cells are addressed by their index.
type NavMesh struct {
	cells         []Cell
	heuristicKind Heuristic

	locatorOnce sync.Once
	locator     *locator
}

// New validates cells and wraps them in a NavMesh. The mesh keeps the slice;
// callers must not modify it afterwards.
func New(cells []Cell, opts ...Option) (*NavMesh, error) {
	if len(cells) == 0 {
		return nil, ErrEmptyMesh
	}
	for i, c := range cells {
		if !c.Center.Finite() {
			return nil, fmt.Errorf("navmesh: cell %d center %v: %w", i, c.Center, ErrNonFinite)
		}
		for j, e := range c.Edges {
			if int(e.Neighbor) >= len(cells) {
				return nil, fmt.Errorf("navmesh: cell %d edge %d -> %d: %w", i, j, e.Neighbor, ErrDanglingNeighbor)
			}
			if !e.Portal[0].Finite() || !e.Portal[1].Finite() {
				return nil, fmt.Errorf("navmesh: cell %d edge %d portal: %w", i, j, ErrNonFinite)
			}
		}
	}

	m := &NavMesh{cells: cells}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// Len returns the number of cells.
func (m *NavMesh) Len() int {
	if m == nil {
		return 0
	}
	return len(m.cells)
}

// Cell returns the cell at index i.
func (m *NavMesh) Cell(i uint32) Cell {
	return m.cells[i]
}

// Cells returns the backing cell slice. It must be treated as read-only.
func (m *NavMesh) Cells() []Cell {
	if m == nil {
		return nil
	}
	return m.cells
}

// Heuristic returns the heuristic the mesh plans with.
func (m *NavMesh) Heuristic() Heuristic {
	if m == nil {
		return HeuristicPortal
	}
	return m.heuristicKind
}

// Plan returns the via-points of the shortest taut route from start (inside
// startCell) to goal (inside goalCell). Neither start nor goal is part of the
// result; callers append the goal themselves when they steer towards it.
//
// Plan panics with an error wrapping ErrUnreachable if the cells are not
// connected. A baked level must never contain such a pair.
func (m *NavMesh) Plan(startCell uint32, start Vec2, goalCell uint32, goal Vec2) []Vec2 {
	channel := m.planChannel(startCell, goalCell, goal)
	return refinePath(start, channel)
}

// Channel returns the portals crossed between startCell and goalCell, ending
// with the degenerate portal [goal, goal]. It panics like Plan.
func (m *NavMesh) Channel(startCell, goalCell uint32, goal Vec2) [][2]Vec2 {
	return m.planChannel(startCell, goalCell, goal)
}
