package navmesh

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// pointTolerance is the side length of the query box used for point lookups.
const pointTolerance = 1e-4

// cellEntry wraps a cell polygon for R-tree storage.
type cellEntry struct {
	index   uint32
	polygon orb.Polygon
	bbox    rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (c *cellEntry) Bounds() rtreego.Rect {
	return c.bbox
}

type locator struct {
	tree *rtreego.Rtree
}

func newLocator(cells []Cell) *locator {
	tree := rtreego.NewTree(2, 25, 50)
	for i, c := range cells {
		if len(c.Polygon) < 3 {
			continue
		}
		polygon := toOrbPolygon(c.Polygon)
		bound := polygon.Bound()
		// Cells of zero width or height cannot contain anything worth finding.
		bbox, err := rtreego.NewRect(
			rtreego.Point{bound.Min[0], bound.Min[1]},
			[]float64{bound.Max[0] - bound.Min[0], bound.Max[1] - bound.Min[1]},
		)
		if err != nil {
			continue
		}
		tree.Insert(&cellEntry{index: uint32(i), polygon: polygon, bbox: bbox})
	}
	return &locator{tree: tree}
}

// Locate returns the index of the cell whose polygon contains p. Points on a
// shared boundary resolve to the lowest cell index. Cells without a polygon
// are never returned.
func (m *NavMesh) Locate(p Vec2) (uint32, bool) {
	if m == nil {
		return 0, false
	}
	m.locatorOnce.Do(func() {
		m.locator = newLocator(m.cells)
	})

	q := rtreego.Point{float64(p.X), float64(p.Y)}
	pt := orb.Point{float64(p.X), float64(p.Y)}
	found := false
	var best uint32
	for _, item := range m.locator.tree.SearchIntersect(q.ToRect(pointTolerance)) {
		entry := item.(*cellEntry)
		if !planar.PolygonContains(entry.polygon, pt) {
			continue
		}
		if !found || entry.index < best {
			best = entry.index
			found = true
		}
	}
	return best, found
}
