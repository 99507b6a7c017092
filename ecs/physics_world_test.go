package ecs

import (
	"testing"

	"github.com/milk9111/navshell/navmesh"
)

func square(x0, y0, x1, y1 float32) []navmesh.Vec2 {
	return []navmesh.Vec2{navmesh.V2(x0, y0), navmesh.V2(x1, y0), navmesh.V2(x1, y1), navmesh.V2(x0, y1)}
}

func mustBuild(t *testing.T, polys ...[]navmesh.Vec2) *navmesh.NavMesh {
	t.Helper()
	m, err := navmesh.Build(polys)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func TestPhysicsWorldWalls(t *testing.T) {
	cases := []struct {
		name  string
		mesh  *navmesh.NavMesh
		walls int
	}{
		{"open", nil, 0},
		{"one_room", mustBuild(t, square(0, 0, 10, 10)), 4},
		{"two_rooms_share_portal", mustBuild(t, square(0, 0, 10, 10), square(10, 0, 20, 10)), 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NewPhysicsWorld(c.mesh).Walls(); got != c.walls {
				t.Fatalf("Walls = %d, want %d", got, c.walls)
			}
		})
	}
}

func TestPhysicsWorldBallStaysInside(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(mustBuild(t, square(0, 0, 10, 10)))
	w.SetPhysicsWorld(pw)

	e := CreateEntity(w)
	body, _ := pw.AddBall(e, 5, 5, 1)
	body.SetVelocity(20, 0)

	for i := 0; i < 120; i++ {
		pw.Step(1.0 / 60.0)
	}

	pos := body.Position()
	if pos.X <= 0 || pos.X >= 10 || pos.Y <= 0 || pos.Y >= 10 {
		t.Fatalf("ball escaped the room: %v", pos)
	}
	if pw.Contacts(e) == 0 {
		t.Fatal("expected the ball to hit a wall")
	}

	if !DestroyEntity(w, e) {
		t.Fatal("destroy failed")
	}
	if pw.Contacts(e) != 0 {
		t.Fatal("contacts should be dropped with the entity")
	}
	if len(pw.shapes) != 0 {
		t.Fatalf("expected no tracked shapes, got %d", len(pw.shapes))
	}
}

func TestPhysicsWorldAgentPushesBall(t *testing.T) {
	pw := NewPhysicsWorld(nil)

	ball, agent := Entity(1), Entity(2)
	ballBody, _ := pw.AddBall(ball, 0, 0, 1)
	agentBody, _ := pw.AddAgent(agent, -3, 0, 1)
	agentBody.SetVelocity(10, 0)

	for i := 0; i < 30; i++ {
		pw.Step(1.0 / 60.0)
	}

	if pw.Contacts(ball) == 0 || pw.Contacts(agent) == 0 {
		t.Fatalf("expected a contact, got ball=%d agent=%d", pw.Contacts(ball), pw.Contacts(agent))
	}
	if ballBody.Position().X <= 0 {
		t.Fatalf("ball was not pushed: %v", ballBody.Position())
	}
}
