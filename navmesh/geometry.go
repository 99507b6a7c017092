package navmesh

import (
	"strconv"

	"github.com/chewxy/math32"
)

// Vec2 is a point or vector in world space.
type Vec2 struct {
	X float32
	Y float32
}

// V2 is shorthand for Vec2{X: x, Y: y}.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the euclidean length of v.
func (v Vec2) Len() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Finite reports whether both coordinates are finite numbers.
func (v Vec2) Finite() bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) && !math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return "(" + strconv.FormatFloat(float64(v.X), 'g', -1, 32) + ", " + strconv.FormatFloat(float64(v.Y), 'g', -1, 32) + ")"
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Vec2) float32 {
	return b.Sub(a).Len()
}

// DistanceSquared returns the squared euclidean distance between a and b.
func DistanceSquared(a, b Vec2) float32 {
	d := b.Sub(a)
	return d.X*d.X + d.Y*d.Y
}

// Area2 computes two times the signed area of the triangle a, b, c.
// Positive means the turn a->b->c is counter-clockwise.
func Area2(a, b, c Vec2) float32 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	return ab.X*ac.Y - ac.X*ab.Y
}
