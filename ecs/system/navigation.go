package system

import (
	"context"
	"log"
	"time"

	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
	"github.com/milk9111/navshell/navmesh"
	"github.com/milk9111/navshell/observe"
)

// NavigationSystem hands goal requests to agents and replans agents whose
// goal changed. An agent asked to walk off the mesh keeps its current path.
type NavigationSystem struct {
	metrics *observe.Metrics
	agents  map[ecs.Entity]struct{}
}

func NewNavigationSystem(metrics *observe.Metrics) *NavigationSystem {
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	return &NavigationSystem{
		metrics: metrics,
		agents:  make(map[ecs.Entity]struct{}),
	}
}

func (s *NavigationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ctx := context.Background()

	for _, evt := range w.Events().Pending(ecs.EventGoalRequested) {
		goal, ok := evt.Data.(navmesh.Vec2)
		if !ok {
			continue
		}
		ecs.ForEach(w, component.NavAgentComponent.Kind(), func(_ ecs.Entity, agent *component.NavAgent) {
			agent.SetGoal(goal)
		})
	}

	s.trackAgents(ctx, w)

	mesh := s.mesh(w)
	if mesh == nil {
		return
	}
	heuristic := mesh.Heuristic().String()

	ecs.ForEach2(w, component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, agent *component.NavAgent, t *component.Transform) {
		if !agent.Repath {
			return
		}
		agent.Repath = false

		start := navmesh.V2(float32(t.X), float32(t.Y))
		startCell, ok := mesh.Locate(start)
		if !ok {
			// Agents walk onto mesh corners, and rounding can leave them just
			// outside every cell. Plan from the last known cell.
			startCell = agent.Cell
		}

		goalCell, ok := mesh.Locate(agent.Goal)
		if !ok {
			if !agent.OffMesh {
				log.Printf("navigation: %s goal %v is off the mesh", agentLabel(e, agent), agent.Goal)
			}
			agent.OffMesh = true
			agent.HasGoal = len(agent.Path) > 0
			s.metrics.RecordRejected(ctx, observe.ResultOffMesh, heuristic)
			return
		}
		agent.OffMesh = false

		began := time.Now()
		via := mesh.Plan(startCell, start, goalCell, agent.Goal)
		s.metrics.RecordPlan(ctx, time.Since(began), len(via), heuristic)

		path := make([]navmesh.Vec2, 0, len(via)+1)
		path = append(path, via...)
		agent.Path = append(path, agent.Goal)
		agent.Next = 0
		agent.Cell = startCell
		agent.Arrived = false
	})
}

// trackAgents keeps the live agent gauge in step with the world.
func (s *NavigationSystem) trackAgents(ctx context.Context, w *ecs.World) {
	seen := make(map[ecs.Entity]struct{}, len(s.agents))
	ecs.ForEach(w, component.NavAgentComponent.Kind(), func(e ecs.Entity, _ *component.NavAgent) {
		seen[e] = struct{}{}
		if _, ok := s.agents[e]; !ok {
			s.metrics.Agents.Add(ctx, 1)
		}
	})
	for e := range s.agents {
		if _, ok := seen[e]; !ok {
			s.metrics.Agents.Add(ctx, -1)
		}
	}
	s.agents = seen
}

// Release takes the agents this system counted off the live agent gauge. Call
// it when the world is thrown away.
func (s *NavigationSystem) Release() {
	ctx := context.Background()
	for range s.agents {
		s.metrics.Agents.Add(ctx, -1)
	}
	s.agents = make(map[ecs.Entity]struct{})
}

func (s *NavigationSystem) mesh(w *ecs.World) *navmesh.NavMesh {
	e, ok := ecs.First(w, component.NavMeshRefComponent.Kind())
	if !ok {
		return nil
	}
	ref, ok := ecs.Get(w, e, component.NavMeshRefComponent.Kind())
	if !ok {
		return nil
	}
	return ref.Mesh
}

func agentLabel(e ecs.Entity, agent *component.NavAgent) string {
	if agent.Name != "" {
		return agent.Name
	}
	return e.String()
}
