package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
)

// CollisionSystem mirrors colliders into the physics world and steps it at a
// fixed rate. Kinematic bodies follow their Transform; dynamic bodies write
// theirs back.
type CollisionSystem struct {
	dt float64
}

func NewCollisionSystem(dt float64) *CollisionSystem {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	return &CollisionSystem{dt: dt}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		if col.Body == nil {
			if col.Kinematic {
				col.Body, col.Shape = pw.AddAgent(e, t.X, t.Y, col.Radius)
			} else {
				col.Body, col.Shape = pw.AddBall(e, t.X, t.Y, col.Radius)
			}
			return
		}
		if col.Kinematic {
			pos := col.Body.Position()
			col.Body.SetVelocity((t.X-pos.X)/s.dt, (t.Y-pos.Y)/s.dt)
		}
	})

	pw.Step(s.dt)

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, col *component.Collider, t *component.Transform) {
		if col.Body == nil {
			return
		}
		if col.Kinematic {
			// Snap to the requested spot so rounding never accumulates.
			col.Body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
			col.Body.SetVelocity(0, 0)
			return
		}
		pos := col.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
	})
}
