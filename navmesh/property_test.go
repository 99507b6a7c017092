package navmesh

import (
	"math/rand"
	"testing"
)

// jitteredGrid bakes a w by h grid of perturbed quads with some cells left
// out. Shared corners are perturbed once so neighbors stay linked.
func jitteredGrid(r *rand.Rand, w, h int, holes float64) [][]Vec2 {
	const size = 10
	corners := make([][]Vec2, w+1)
	for x := range corners {
		corners[x] = make([]Vec2, h+1)
		for y := range corners[x] {
			jx := (r.Float32()*2 - 1) * 0.15 * size
			jy := (r.Float32()*2 - 1) * 0.15 * size
			corners[x][y] = V2(float32(x*size)+jx, float32(y*size)+jy)
		}
	}

	var polys [][]Vec2
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if r.Float64() < holes {
				continue
			}
			polys = append(polys, []Vec2{corners[x][y], corners[x+1][y], corners[x+1][y+1], corners[x][y+1]})
		}
	}
	return polys
}

// pointIn returns a random point strictly inside the convex polygon.
func pointIn(r *rand.Rand, poly []Vec2) Vec2 {
	var sum float32
	var p Vec2
	for _, v := range poly {
		w := r.Float32() + 0.05
		sum += w
		p = p.Add(v.Scale(w))
	}
	return p.Scale(1 / sum)
}

func checkPlanProperties(t *testing.T, seed int64, holes float64) {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	polys := jitteredGrid(r, 6, 5, holes)
	if len(polys) == 0 {
		return
	}
	m, err := Build(polys)
	if err != nil {
		t.Fatalf("seed %d: Build: %v", seed, err)
	}

	vertices := map[Vec2]bool{}
	for _, p := range polys {
		for _, v := range p {
			vertices[v] = true
		}
	}
	label, _ := m.Components()

	for q := 0; q < 20; q++ {
		startCell := uint32(r.Intn(m.Len()))
		goalCell := uint32(r.Intn(m.Len()))
		if label[startCell] != label[goalCell] {
			continue
		}
		start := pointIn(r, m.Cell(startCell).Polygon)
		goal := pointIn(r, m.Cell(goalCell).Polygon)

		channel := m.Channel(startCell, goalCell, goal)
		path := m.Plan(startCell, start, goalCell, goal)
		if len(path) > len(channel)-1 {
			t.Fatalf("seed %d: %d via-points for %d portals", seed, len(path), len(channel)-1)
		}
		for _, v := range path {
			if !v.Finite() {
				t.Fatalf("seed %d: non-finite via-point in %v", seed, path)
			}
			if !vertices[v] {
				t.Fatalf("seed %d: via-point %v is not a mesh vertex", seed, v)
			}
		}
		if again := m.Plan(startCell, start, goalCell, goal); !equalPath(path, again) {
			t.Fatalf("seed %d: Plan not repeatable: %v then %v", seed, path, again)
		}
	}
}

func TestPlanProperties(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		checkPlanProperties(t, seed, float64(seed%4)*0.1)
	}
}

func FuzzPlan(f *testing.F) {
	f.Add(int64(7), uint8(0))
	f.Add(int64(42), uint8(60))
	f.Add(int64(-3), uint8(120))
	f.Fuzz(func(t *testing.T, seed int64, holes uint8) {
		checkPlanProperties(t, seed, float64(holes)/255)
	})
}
