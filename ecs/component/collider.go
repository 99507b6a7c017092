package component

import "github.com/jakecoffman/cp"

// Collider stores the Chipmunk2D runtime data of a circular body. The
// collision system creates Body and Shape on first sight.
type Collider struct {
	Radius float64
	// Kinematic colliders follow their Transform; dynamic ones drive it.
	Kinematic bool

	Body  *cp.Body
	Shape *cp.Shape
}

var ColliderComponent = NewComponent[Collider]()
