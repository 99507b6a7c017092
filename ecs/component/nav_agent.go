package component

import "github.com/milk9111/navshell/navmesh"

// NavAgent steers an entity across the level mesh.
type NavAgent struct {
	Name   string
	Speed  float32
	Radius float64

	Goal    navmesh.Vec2
	HasGoal bool
	// Repath asks the navigation system to plan towards Goal again.
	Repath bool

	// Path holds the via-points followed by the goal. Next indexes the point
	// currently steered towards.
	Path []navmesh.Vec2
	Next int

	Cell    uint32
	Arrived bool
	// OffMesh is set while the last requested goal could not be located.
	OffMesh bool
}

// SetGoal requests a new plan towards goal.
func (a *NavAgent) SetGoal(goal navmesh.Vec2) {
	a.Goal = goal
	a.HasGoal = true
	a.Repath = true
	a.Arrived = false
}

var NavAgentComponent = NewComponent[NavAgent]()

// NavScript picks agent goals from a tengo script.
type NavScript struct {
	Script string
}

var NavScriptComponent = NewComponent[NavScript]()

// NavMeshRef is the level resource: the baked mesh and its waypoints.
type NavMeshRef struct {
	Level     string
	Mesh      *navmesh.NavMesh
	Waypoints []navmesh.Vec2
}

var NavMeshRefComponent = NewComponent[NavMeshRef]()
