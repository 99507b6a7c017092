package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/navshell/navmesh"
)

func useDiskDir(t *testing.T, dir string) {
	t.Helper()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })
}

func TestEmbeddedLevelsBake(t *testing.T) {
	useDiskDir(t, t.TempDir())

	names := Names()
	if len(names) == 0 {
		t.Fatal("no embedded levels")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := LoadLevel(name)
			if err != nil {
				t.Fatalf("LoadLevel: %v", err)
			}
			mesh, err := lvl.Bake()
			if err != nil {
				t.Fatalf("Bake: %v", err)
			}
			if mesh.Len() != len(lvl.Cells) {
				t.Fatalf("mesh has %d cells, level %d", mesh.Len(), len(lvl.Cells))
			}
			for _, a := range lvl.Agents {
				if a.Script == "" {
					continue
				}
				if _, err := LoadScript(a.Script); err != nil {
					t.Fatalf("agent %s script: %v", a.Name, err)
				}
			}
		})
	}
}

func TestLoadStaircase(t *testing.T) {
	useDiskDir(t, t.TempDir())

	lvl, err := LoadLevel("staircase")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if lvl.Name != "staircase" {
		t.Fatalf("Name = %q", lvl.Name)
	}
	if got := lvl.Cells[1][2].Vec2(); got != navmesh.V2(20, 10) {
		t.Fatalf("cell 1 vertex 2 = %v, want (20, 10)", got)
	}
	if len(lvl.Agents) != 1 || lvl.Agents[0].Speed != 6 || lvl.Agents[0].Script != "patrol.tengo" {
		t.Fatalf("agents = %+v", lvl.Agents)
	}
	if wps := lvl.WaypointVecs(); len(wps) != 2 || wps[0] != navmesh.V2(22, 28) {
		t.Fatalf("waypoints = %v", wps)
	}

	mesh, err := lvl.Bake()
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	got := mesh.Plan(0, navmesh.V2(2, 8), 4, navmesh.V2(22, 28))
	want := []navmesh.Vec2{navmesh.V2(10, 10), navmesh.V2(20, 20)}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Plan = %v, want %v", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{"no_cells", "name: x\n", ErrNoCells},
		{"bad_speed", "cells: [[[0, 0], [1, 0], [0, 1]]]\nagents: [{name: a, x: 0, y: 0, speed: 0}]\n", ErrBadSpeed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.name, []byte(c.yaml))
			if !errors.Is(err, c.want) {
				t.Fatalf("Parse err = %v, want %v", err, c.want)
			}
		})
	}
}

func TestParseMalformedPoints(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"three_coordinates", "cells: [[[0, 0, 0], [1, 0], [0, 1]]]\n"},
		{"not_a_number", "cells: [[[zero, 0], [1, 0], [0, 1]]]\n"},
		{"mapping", "cells: [[{x: 0, y: 0}, [1, 0], [0, 1]]]\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse(c.name, []byte(c.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	lvl, err := Parse("levels/tiny.yaml", []byte("cells: [[[0, 0], [1, 0], [0, 1]]]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lvl.Name != "tiny.yaml" {
		t.Fatalf("Name = %q, want tiny.yaml", lvl.Name)
	}
	if lvl.Camera.Zoom != 1 {
		t.Fatalf("Zoom = %v, want 1", lvl.Camera.Zoom)
	}
}

func TestBakeRejectsAgentOffMesh(t *testing.T) {
	lvl, err := Parse("off", []byte("cells: [[[0, 0], [10, 0], [10, 10], [0, 10]]]\nagents: [{name: lost, x: 50, y: 50, speed: 1}]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := lvl.Bake(); !errors.Is(err, ErrAgentOffMesh) {
		t.Fatalf("Bake err = %v, want ErrAgentOffMesh", err)
	}
}

func TestBakeRejectsConcaveCell(t *testing.T) {
	lvl, err := Parse("concave", []byte("cells: [[[0, 0], [10, 0], [5, 2], [10, 10], [0, 10]]]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := lvl.Bake(); !errors.Is(err, navmesh.ErrNotConvex) {
		t.Fatalf("Bake err = %v, want ErrNotConvex", err)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	useDiskDir(t, dir)

	data := []byte("name: override\ncells: [[[0, 0], [4, 0], [0, 4]]]\n")
	if err := os.WriteFile(filepath.Join(dir, "staircase.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", "patrol.tengo"), []byte("goal = undefined\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lvl, err := LoadLevel("levels/staircase.yaml")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if lvl.Name != "override" || len(lvl.Cells) != 1 {
		t.Fatalf("expected disk copy, got %+v", lvl)
	}
	if _, ok := ModTime("staircase"); !ok {
		t.Fatal("ModTime should find the disk copy")
	}

	src, err := LoadScript("scripts/patrol.tengo")
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if string(src) != "goal = undefined\n" {
		t.Fatalf("expected disk script, got %q", src)
	}

	if _, ok := ModTime("courtyard"); ok {
		t.Fatal("embedded-only level should have no ModTime")
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, level, script string
	}{
		{"courtyard", "courtyard.yaml", "scripts/courtyard"},
		{"levels/courtyard.yaml", "courtyard.yaml", "scripts/courtyard.yaml"},
		{"patrol.tengo", "patrol.tengo", "scripts/patrol.tengo"},
		{"levels/scripts/patrol.tengo", "scripts/patrol.tengo", "scripts/patrol.tengo"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := cleanLevelPath(c.in); got != c.level {
				t.Fatalf("cleanLevelPath(%q) = %q, want %q", c.in, got, c.level)
			}
			if got := cleanScriptPath(c.in); got != c.script {
				t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.script)
			}
		})
	}
}

func TestBakeRejectsDisconnectedCells(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"t_junction", "cells:\n  - [[0, 0], [20, 0], [20, 10], [0, 10]]\n  - [[0, 10], [10, 10], [10, 20], [0, 20]]\n  - [[10, 10], [20, 10], [20, 20], [10, 20]]\n"},
		{"apart", "cells:\n  - [[0, 0], [10, 0], [10, 10], [0, 10]]\n  - [[30, 0], [40, 0], [40, 10], [30, 10]]\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl, err := Parse(c.name, []byte(c.yaml))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if _, err := lvl.Bake(); !errors.Is(err, ErrDisconnected) {
				t.Fatalf("Bake err = %v, want ErrDisconnected", err)
			}
		})
	}
}
