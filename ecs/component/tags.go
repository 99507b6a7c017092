package component

// BallTag marks a ball dropped with the cursor.
type BallTag struct{}

var BallTagComponent = NewComponent[BallTag]()

// Step is a frame counter that wraps around.
type Step struct {
	Frame uint32
}

var StepComponent = NewComponent[Step]()
