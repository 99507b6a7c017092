package navmesh

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var (
	ErrDegenerateCell = errors.New("navmesh: cell polygon has fewer than 3 vertices or no area")
	ErrNotConvex      = errors.New("navmesh: cell polygon is not convex")
)

type edgeKey struct {
	a, b Vec2
}

type edgeOwner struct {
	cell uint32
	a, b Vec2
}

// Build bakes a mesh from convex polygons. Polygons may be wound either way;
// they are normalised to counter-clockwise order. Two polygons are linked
// wherever they share both endpoints of a boundary segment; partially
// overlapping segments (T-junctions) are not linked.
func Build(polygons [][]Vec2, opts ...Option) (*NavMesh, error) {
	if len(polygons) == 0 {
		return nil, ErrEmptyMesh
	}

	cells := make([]Cell, len(polygons))
	owners := make(map[edgeKey]edgeOwner)
	for i, poly := range polygons {
		ring, err := normalizeRing(poly)
		if err != nil {
			return nil, fmt.Errorf("navmesh: bake cell %d: %w", i, err)
		}

		centroid, _ := planar.CentroidArea(toOrbPolygon(ring))
		cells[i] = Cell{
			Center:  V2(float32(centroid[0]), float32(centroid[1])),
			Polygon: ring,
		}

		for j := range ring {
			a, b := ring[j], ring[(j+1)%len(ring)]
			// A neighbor walks the shared segment in the opposite direction.
			if other, ok := owners[edgeKey{a: b, b: a}]; ok {
				cells[i].Edges = append(cells[i].Edges, Edge{Portal: [2]Vec2{a, b}, Neighbor: other.cell})
				cells[other.cell].Edges = append(cells[other.cell].Edges, Edge{Portal: [2]Vec2{other.a, other.b}, Neighbor: uint32(i)})
				continue
			}
			owners[edgeKey{a: a, b: b}] = edgeOwner{cell: uint32(i), a: a, b: b}
		}
	}

	return New(cells, opts...)
}

// normalizeRing copies poly, drops a closing duplicate vertex, checks that it
// is strictly convex and returns it in counter-clockwise order.
func normalizeRing(poly []Vec2) ([]Vec2, error) {
	ring := append([]Vec2(nil), poly...)
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil, ErrDegenerateCell
	}
	for _, v := range ring {
		if !v.Finite() {
			return nil, ErrNonFinite
		}
	}

	switch toOrbRing(ring).Orientation() {
	case orb.CW:
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	case orb.CCW:
	default:
		return nil, ErrDegenerateCell
	}

	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		c := ring[(i+2)%len(ring)]
		if Area2(a, b, c) <= 0 {
			return nil, fmt.Errorf("%w: reflex or collinear vertex %v", ErrNotConvex, b)
		}
	}
	return ring, nil
}

func toOrbRing(ring []Vec2) orb.Ring {
	out := make(orb.Ring, 0, len(ring)+1)
	for _, v := range ring {
		out = append(out, orb.Point{float64(v.X), float64(v.Y)})
	}
	return append(out, out[0])
}

func toOrbPolygon(ring []Vec2) orb.Polygon {
	return orb.Polygon{toOrbRing(ring)}
}
