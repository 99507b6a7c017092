package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/navshell/ecs"
	"github.com/milk9111/navshell/ecs/component"
	"github.com/milk9111/navshell/levels"
	"github.com/milk9111/navshell/navmesh"
)

// LoadLevelToWorld populates an empty world from a level and its baked mesh:
// the mesh resource, camera, cursor, agents and a physics world walled in by
// the mesh boundary.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, mesh *navmesh.NavMesh, screenW, screenH int) error {
	res := ecs.CreateEntity(w)
	if err := ecs.Add(w, res, component.NavMeshRefComponent.Kind(), &component.NavMeshRef{
		Level:     lvl.Name,
		Mesh:      mesh,
		Waypoints: lvl.WaypointVecs(),
	}); err != nil {
		return fmt.Errorf("level %s: add mesh: %w", lvl.Name, err)
	}

	if _, err := NewCamera(w, lvl.Camera, screenW, screenH); err != nil {
		return fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	if _, err := NewCursor(w); err != nil {
		return fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	for _, spec := range lvl.Agents {
		if _, err := NewAgent(w, spec); err != nil {
			return fmt.Errorf("level %s: %w", lvl.Name, err)
		}
	}

	w.SetPhysicsWorld(ecs.NewPhysicsWorld(mesh))
	log.Printf("level: loaded %s (%d cells, %d agents, heuristic %s)", lvl.Name, mesh.Len(), len(lvl.Agents), mesh.Heuristic())
	return nil
}
