package system

import (
	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
	"github.com/milk9111/navshell/navmesh"
)

// arriveEpsilon is the distance at which a path point counts as reached.
const arriveEpsilon = 0.01

type MovementSystem struct {
	dt float32
}

func NewMovementSystem(dt float64) *MovementSystem {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	return &MovementSystem{dt: float32(dt)}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, agent *component.NavAgent, t *component.Transform) {
		if agent.Arrived || agent.Next >= len(agent.Path) {
			return
		}

		pos := navmesh.V2(float32(t.X), float32(t.Y))
		budget := agent.Speed * s.dt
		for budget > 0 && agent.Next < len(agent.Path) {
			target := agent.Path[agent.Next]
			d := navmesh.Distance(pos, target)
			if d <= budget || d < arriveEpsilon {
				pos = target
				budget -= d
				agent.Next++
				continue
			}
			step := target.Sub(pos).Scale(budget / d)
			pos = pos.Add(step)
			budget = 0
		}

		t.X = float64(pos.X)
		t.Y = float64(pos.Y)
		if agent.Next >= len(agent.Path) {
			agent.Arrived = true
		}
	})
}
