package entity

import (
	"fmt"

	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
)

// BallRadius is the radius of balls dropped with the cursor, in world units.
const BallRadius = 1.0

func NewBall(w *ecs.World, x, y float64) (ecs.Entity, error) {
	ball := ecs.CreateEntity(w)
	if err := ecs.Add(w, ball, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("ball: add transform: %w", err)
	}
	if err := ecs.Add(w, ball, component.ColliderComponent.Kind(), &component.Collider{Radius: BallRadius}); err != nil {
		return 0, fmt.Errorf("ball: add collider: %w", err)
	}
	if err := ecs.Add(w, ball, component.BallTagComponent.Kind(), &component.BallTag{}); err != nil {
		return 0, fmt.Errorf("ball: add tag: %w", err)
	}
	return ball, nil
}
