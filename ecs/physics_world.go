package ecs

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/navshell/navmesh"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypeBall
	collisionTypeAgent
)

const (
	wallRadius = 0.1
	// The shell is top-down: no gravity, and loose bodies slow down on their
	// own.
	spaceDamping = 0.5
)

// PhysicsWorld owns the Chipmunk space. Mesh boundary edges that are not
// portals become static walls.
type PhysicsWorld struct {
	space         *cp.Space
	handlersReady bool
	walls         int

	shapeToEntity map[*cp.Shape]Entity
	shapes        map[Entity]*cp.Shape
	contacts      map[Entity]int
}

// NewPhysicsWorld creates a physics world walled in by mesh. A nil mesh gives
// an open space.
func NewPhysicsWorld(mesh *navmesh.NavMesh) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	space.SetDamping(spaceDamping)

	pw := &PhysicsWorld{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
		shapes:        make(map[Entity]*cp.Shape),
		contacts:      make(map[Entity]int),
	}
	pw.buildWalls(mesh)
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Walls returns the number of static wall segments.
func (pw *PhysicsWorld) Walls() int {
	if pw == nil {
		return 0
	}
	return pw.walls
}

// AddBall creates a dynamic ball for e centered at (x, y).
func (pw *PhysicsWorld) AddBall(e Entity, x, y, radius float64) (*cp.Body, *cp.Shape) {
	mass := 1.0
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0.8)
	shape.SetElasticity(0.6)
	shape.SetCollisionType(collisionTypeBall)
	pw.track(e, body, shape)
	return body, shape
}

// AddAgent creates a kinematic body for e. Agents push balls but are moved
// only by their own systems.
func (pw *PhysicsWorld) AddAgent(e Entity, x, y, radius float64) (*cp.Body, *cp.Shape) {
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeAgent)
	pw.track(e, body, shape)
	return body, shape
}

func (pw *PhysicsWorld) track(e Entity, body *cp.Body, shape *cp.Shape) {
	pw.RemoveEntity(e)
	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	pw.shapes[e] = shape
}

// RemoveEntity drops e's body and shape from the space.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil {
		return
	}
	shape, ok := pw.shapes[e]
	if !ok {
		return
	}
	body := shape.Body()
	pw.space.RemoveShape(shape)
	if body != nil {
		pw.space.RemoveBody(body)
	}
	delete(pw.shapeToEntity, shape)
	delete(pw.shapes, e)
	delete(pw.contacts, e)
}

// Contacts returns how many collisions e has started since it was added.
func (pw *PhysicsWorld) Contacts(e Entity) int {
	if pw == nil {
		return 0
	}
	return pw.contacts[e]
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) buildWalls(mesh *navmesh.NavMesh) {
	for _, cell := range mesh.Cells() {
		portals := make(map[[2]navmesh.Vec2]bool, len(cell.Edges))
		for _, e := range cell.Edges {
			portals[e.Portal] = true
		}
		for i, a := range cell.Polygon {
			b := cell.Polygon[(i+1)%len(cell.Polygon)]
			if portals[[2]navmesh.Vec2{a, b}] {
				continue
			}
			shape := cp.NewSegment(pw.space.StaticBody,
				cp.Vector{X: float64(a.X), Y: float64(a.Y)},
				cp.Vector{X: float64(b.X), Y: float64(b.Y)},
				wallRadius)
			shape.SetFriction(0.8)
			shape.SetElasticity(0.6)
			shape.SetCollisionType(collisionTypeWall)
			pw.space.AddShape(shape)
			pw.walls++
		}
	}
	log.Printf("physics: built %d wall segments", pw.walls)
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw.handlersReady {
		return
	}

	countContact := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		if e, ok := world.shapeToEntity[shapeA]; ok {
			world.contacts[e]++
		}
		if e, ok := world.shapeToEntity[shapeB]; ok {
			world.contacts[e]++
		}
		return true
	}

	for _, pair := range [][2]cp.CollisionType{
		{collisionTypeBall, collisionTypeWall},
		{collisionTypeBall, collisionTypeBall},
		{collisionTypeBall, collisionTypeAgent},
	} {
		handler := pw.space.NewCollisionHandler(pair[0], pair[1])
		handler.UserData = pw
		handler.BeginFunc = countContact
	}

	pw.handlersReady = true
}
