package system

import (
	"testing"

	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
	"github.com/milk9111/navshell/navmesh"
)

type fakeCursor struct {
	x, y               int
	primary, secondary bool
}

func (f *fakeCursor) CursorPosition() (int, int) { return f.x, f.y }
func (f *fakeCursor) IsPrimaryPressed() bool     { return f.primary }
func (f *fakeCursor) IsSecondaryPressed() bool   { return f.secondary }

func TestInputSpawnsBallOnRisingEdge(t *testing.T) {
	w := ecs.NewWorld()
	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{X: 10, Y: 10, Zoom: 2, ScreenW: 100, ScreenH: 100}); err != nil {
		t.Fatal(err)
	}
	cursor := ecs.CreateEntity(w)
	if err := ecs.Add(w, cursor, component.CursorComponent.Kind(), &component.Cursor{}); err != nil {
		t.Fatal(err)
	}

	src := &fakeCursor{x: 70, y: 30}
	in := NewInputSystem(src)

	frames := []struct {
		primary   bool
		wantBalls int
		pressed   bool
	}{
		{false, 0, false},
		{true, 1, true},
		{true, 1, false},
		{false, 1, false},
		{true, 2, true},
	}
	for i, f := range frames {
		src.primary = f.primary
		in.Update(w)

		c, _ := ecs.Get(w, cursor, component.CursorComponent.Kind())
		if c.PrimaryPressed != f.pressed {
			t.Fatalf("frame %d: PrimaryPressed = %v, want %v", i, c.PrimaryPressed, f.pressed)
		}
		if got := ecs.Count(w, component.BallTagComponent.Kind()); got != f.wantBalls {
			t.Fatalf("frame %d: balls = %d, want %d", i, got, f.wantBalls)
		}
		spawned := w.Events().Pending(ecs.EventBallSpawned)
		if f.pressed != (len(spawned) == 1) {
			t.Fatalf("frame %d: %d spawn events", i, len(spawned))
		}
		w.Update()
	}

	// (70, 30) on a 100x100 screen at zoom 2 around (10, 10).
	for _, ball := range ecs.Query(w, component.BallTagComponent.Kind()) {
		tr, ok := ecs.Get(w, ball, component.TransformComponent.Kind())
		if !ok {
			t.Fatal("ball has no transform")
		}
		if tr.X != 20 || tr.Y != 0 {
			t.Fatalf("ball at (%v, %v), want (20, 0)", tr.X, tr.Y)
		}
		col, ok := ecs.Get(w, ball, component.ColliderComponent.Kind())
		if !ok || col.Radius != 1 || col.Kinematic {
			t.Fatalf("unexpected ball collider %+v", col)
		}
	}
}

func TestInputSecondaryRequestsGoal(t *testing.T) {
	w := ecs.NewWorld()
	src := &fakeCursor{x: 12, y: 7, secondary: true}
	in := NewInputSystem(src)

	in.Update(w)
	evts := w.Events().Pending(ecs.EventGoalRequested)
	if len(evts) != 1 {
		t.Fatalf("got %d goal events, want 1", len(evts))
	}
	// No camera: window pixels are world units.
	if got := evts[0].Data.(navmesh.Vec2); got != navmesh.V2(12, 7) {
		t.Fatalf("goal = %v, want (12, 7)", got)
	}
	w.Update()

	in.Update(w)
	if n := len(w.Events().Pending(ecs.EventGoalRequested)); n != 0 {
		t.Fatalf("held button requested %d goals", n)
	}
}
