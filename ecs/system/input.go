package system

import (
	"log"

	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
	"github.com/milk9111/navshell/ecs/entity"
	"github.com/milk9111/navshell/navmesh"
)

// CursorSource reports the mouse state in window pixels.
type CursorSource interface {
	CursorPosition() (x, y int)
	IsPrimaryPressed() bool
	IsSecondaryPressed() bool
}

// InputSystem copies the cursor into the Cursor component. A primary click
// drops a ball at the cursor and a secondary click sends every nav agent
// there.
type InputSystem struct {
	source CursorSource

	primaryDown   bool
	secondaryDown bool
}

func NewInputSystem(source CursorSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}

	sx, sy := i.source.CursorPosition()
	primary := i.source.IsPrimaryPressed()
	secondary := i.source.IsSecondaryPressed()
	primaryPressed := primary && !i.primaryDown
	secondaryPressed := secondary && !i.secondaryDown
	i.primaryDown = primary
	i.secondaryDown = secondary

	wx, wy := float64(sx), float64(sy)
	if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
			wx, wy = cam.ScreenToWorld(float64(sx), float64(sy))
		}
	}

	ecs.ForEach(w, component.CursorComponent.Kind(), func(_ ecs.Entity, c *component.Cursor) {
		c.ScreenX = float64(sx)
		c.ScreenY = float64(sy)
		c.X = wx
		c.Y = wy
		c.Primary = primary
		c.Secondary = secondary
		c.PrimaryPressed = primaryPressed
		c.SecondaryPressed = secondaryPressed
	})

	if primaryPressed {
		ball, err := entity.NewBall(w, wx, wy)
		if err != nil {
			log.Printf("input: spawn ball: %v", err)
		} else {
			log.Printf("input: ball %s at (%.2f, %.2f)", ball, wx, wy)
			w.Events().Push(ecs.Event{Type: ecs.EventBallSpawned, Data: ball})
		}
	}

	if secondaryPressed {
		w.Events().Push(ecs.Event{
			Type: ecs.EventGoalRequested,
			Data: navmesh.V2(float32(wx), float32(wy)),
		})
	}
}
