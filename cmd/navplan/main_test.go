package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/navshell/levels"
	"github.com/milk9111/navshell/navmesh"
)

func TestParsePoint(t *testing.T) {
	cases := []struct {
		in   string
		want navmesh.Vec2
		err  bool
	}{
		{"2,8", navmesh.V2(2, 8), false},
		{" 2.5 , -1 ", navmesh.V2(2.5, -1), false},
		{"2", navmesh.Vec2{}, true},
		{"1,2,3", navmesh.Vec2{}, true},
		{"a,b", navmesh.Vec2{}, true},
		{"NaN,1", navmesh.Vec2{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := parsePoint(c.in)
			if c.err {
				if !errors.Is(err, errBadPoint) {
					t.Fatalf("err = %v, want errBadPoint", err)
				}
				return
			}
			if err != nil || got != c.want {
				t.Fatalf("parsePoint(%q) = %v, %v; want %v", c.in, got, err, c.want)
			}
		})
	}
}

func useEmbedded(t *testing.T) {
	t.Helper()
	prev := levels.DiskDir
	levels.DiskDir = t.TempDir()
	t.Cleanup(func() { levels.DiskDir = prev })
}

func TestRunPlansStaircase(t *testing.T) {
	useEmbedded(t)

	var out bytes.Buffer
	err := run(&out, config{level: "staircase", from: "2,8", to: "22,28", batch: 16, seed: 3})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"level staircase: 5 cells, 4 portals, 1 agents, heuristic portal",
		"cell 0",
		"cell 4, 4 portals crossed",
		"0: (10, 10)",
		"1: (20, 20)",
		"2: (22, 28)",
		"batch: 16 plans",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunRejectsOffMeshPoints(t *testing.T) {
	useEmbedded(t)

	var out bytes.Buffer
	if err := run(&out, config{level: "staircase", from: "2,8", to: "80,80"}); err == nil {
		t.Fatal("expected an error for an off-mesh goal")
	}
	if err := run(&out, config{level: "staircase", from: "2", to: "3,3"}); !errors.Is(err, errBadPoint) {
		t.Fatalf("err = %v, want errBadPoint", err)
	}
}
