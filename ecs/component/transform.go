package component

// Transform is an entity position in world units.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
