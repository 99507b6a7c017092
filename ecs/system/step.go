package system

import (
	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
)

// StepSystem advances every Step counter once per update. Counters wrap.
type StepSystem struct{}

func NewStepSystem() *StepSystem {
	return &StepSystem{}
}

func (s *StepSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.StepComponent.Kind(), func(_ ecs.Entity, step *component.Step) {
		step.Frame++
	})
}
