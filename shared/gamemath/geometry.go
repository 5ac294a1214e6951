package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a position in screen space. Y grows downward.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Vec returns the point as an mgl64 vector.
func (p Point) Vec() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

// ApproxEqual reports whether both coordinates are within eps of q.
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return b.Vec().Sub(a.Vec()).Len()
}

// AngleBetween returns the heading in radians that leads from a toward b.
// The y axis is inverted, so counter-clockwise on screen is positive.
// PointOnCircle(a, Distance(a, b), AngleBetween(a, b)) lands on b.
func AngleBetween(a, b Point) float64 {
	return math.Atan2(a.Y-b.Y, b.X-a.X)
}

// PointOnCircle returns the point at radius from origin along angle (radians),
// using the same inverted y axis as AngleBetween.
func PointOnCircle(origin Point, radius, angle float64) Point {
	return Point{
		X: origin.X + math.Cos(angle)*radius,
		Y: origin.Y - math.Sin(angle)*radius,
	}
}

// DegreesToRadians converts a rotation in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return mgl64.DegToRad(deg)
}
