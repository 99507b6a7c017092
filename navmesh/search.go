package navmesh

import (
	"container/heap"
	"fmt"

	"github.com/chewxy/math32"
)

// noEdge marks a cell that has not been reached yet.
const noEdge = ^uint32(0)

type cameFrom struct {
	cell uint32
	edge uint32
}

// planChannel runs A* over the cell graph and returns the portals crossed on
// the way from startCell to goalCell, terminated by the sentinel [goal, goal].
func (m *NavMesh) planChannel(startCell, goalCell uint32, goal Vec2) [][2]Vec2 {
	n := len(m.cells)
	if int(startCell) >= n || int(goalCell) >= n {
		panic(fmt.Sprintf("navmesh: cell out of range: start=%d goal=%d cells=%d", startCell, goalCell, n))
	}

	prev := make([]cameFrom, n)
	for i := range prev {
		prev[i] = cameFrom{cell: noEdge, edge: noEdge}
	}
	cost := make([]float32, n)
	for i := range cost {
		cost[i] = math32.Inf(1)
	}
	cost[startCell] = 0

	open := &openSet{}
	heap.Init(open)
	var seq uint64
	heap.Push(open, &openItem{cell: startCell, f: 0, seq: seq})

	reached := false
	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem).cell
		if current == goalCell {
			reached = true
			break
		}

		for i, e := range m.cells[current].Edges {
			next := e.Neighbor
			nextCost := cost[current] + m.edgeCost(current, i)
			if nextCost >= cost[next] {
				continue
			}
			cost[next] = nextCost
			prev[next] = cameFrom{cell: current, edge: uint32(i)}
			f := nextCost + m.heuristic(next, goal)
			if math32.IsNaN(f) {
				panic(fmt.Sprintf("navmesh: NaN priority for cell %d (goal %v)", next, goal))
			}
			seq++
			heap.Push(open, &openItem{cell: next, f: f, seq: seq})
		}
	}
	if !reached {
		panic(fmt.Errorf("%w: plan %d -> %d", ErrUnreachable, startCell, goalCell))
	}

	channel := [][2]Vec2{{goal, goal}}
	for cell := goalCell; cell != startCell; {
		from := prev[cell]
		if from.cell == noEdge {
			panic(fmt.Errorf("%w: plan %d -> %d: broken backpointer at %d", ErrUnreachable, startCell, goalCell, cell))
		}
		channel = append(channel, m.cells[from.cell].Edges[from.edge].Portal)
		cell = from.cell
	}

	for i, j := 0, len(channel)-1; i < j; i, j = i+1, j-1 {
		channel[i], channel[j] = channel[j], channel[i]
	}
	return channel
}

// edgeCost is the distance between the centers of the cell and the neighbor
// behind its edge-th edge.
func (m *NavMesh) edgeCost(cell uint32, edge int) float32 {
	c := &m.cells[cell]
	return Distance(c.Center, m.cells[c.Edges[edge].Neighbor].Center)
}

// heuristic estimates the remaining cost from cell to goal using the cell's
// portal endpoints. Cells without edges estimate +Inf; they can only ever be
// the goal itself.
func (m *NavMesh) heuristic(cell uint32, goal Vec2) float32 {
	best := math32.Inf(1)
	for _, e := range m.cells[cell].Edges {
		var h float32
		switch m.heuristicKind {
		case HeuristicLegacy:
			h = math32.Min(DistanceSquared(e.Portal[0], goal), Distance(e.Portal[1], goal))
		default:
			h = math32.Min(Distance(e.Portal[0], goal), Distance(e.Portal[1], goal))
		}
		best = math32.Min(best, h)
	}
	return best
}

type openItem struct {
	cell  uint32
	f     float32
	seq   uint64
	index int
}

// openSet is a binary heap ordered by f, then by insertion order.
type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*o = old[:n-1]
	return item
}
