package entity

import (
	"fmt"

	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
	"github.com/milk9111/navshell/levels"
)

const agentRadius = 0.75

func NewAgent(w *ecs.World, spec levels.AgentSpec) (ecs.Entity, error) {
	agent := ecs.CreateEntity(w)
	if err := ecs.Add(w, agent, component.TransformComponent.Kind(), &component.Transform{
		X: float64(spec.X),
		Y: float64(spec.Y),
	}); err != nil {
		return 0, fmt.Errorf("agent %s: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, agent, component.NavAgentComponent.Kind(), &component.NavAgent{
		Name:   spec.Name,
		Speed:  spec.Speed,
		Radius: agentRadius,
	}); err != nil {
		return 0, fmt.Errorf("agent %s: add nav agent: %w", spec.Name, err)
	}
	if err := ecs.Add(w, agent, component.ColliderComponent.Kind(), &component.Collider{
		Radius:    agentRadius,
		Kinematic: true,
	}); err != nil {
		return 0, fmt.Errorf("agent %s: add collider: %w", spec.Name, err)
	}
	if spec.Script != "" {
		if err := ecs.Add(w, agent, component.NavScriptComponent.Kind(), &component.NavScript{
			Script: spec.Script,
		}); err != nil {
			return 0, fmt.Errorf("agent %s: add nav script: %w", spec.Name, err)
		}
	}
	return agent, nil
}
