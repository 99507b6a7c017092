package entity

import (
	"fmt"

	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
	"github.com/milk9111/navshell/levels"
)

func NewCamera(w *ecs.World, spec levels.CameraSpec, screenW, screenH int) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		X:       spec.X,
		Y:       spec.Y,
		Zoom:    zoom,
		ScreenW: screenW,
		ScreenH: screenH,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}
	return camera, nil
}

// NewCursor creates the singleton that holds mouse state.
func NewCursor(w *ecs.World) (ecs.Entity, error) {
	cursor := ecs.CreateEntity(w)
	if err := ecs.Add(w, cursor, component.CursorComponent.Kind(), &component.Cursor{}); err != nil {
		return 0, fmt.Errorf("cursor: add cursor: %w", err)
	}
	if err := ecs.Add(w, cursor, component.StepComponent.Kind(), &component.Step{}); err != nil {
		return 0, fmt.Errorf("cursor: add step: %w", err)
	}
	return cursor, nil
}
