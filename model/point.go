package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Point2 is a position on the map plane, in game units.
type Point2 = mgl32.Vec2

// Point3 adds terrain height.
type Point3 = mgl32.Vec3

// Cell returns the grid cell containing p.
func Cell(p Point2) (int, int) {
	return int(math.Floor(float64(p.X()))), int(math.Floor(float64(p.Y())))
}

// DistanceSquared avoids the square root for range comparisons.
func DistanceSquared(a, b Point2) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

func Distance(a, b Point2) float32 {
	return a.Sub(b).Len()
}

// Towards returns the point offset from p by dist along angle (radians).
func Towards(p Point2, angle, dist float32) Point2 {
	s, c := math.Sincos(float64(angle))
	return p.Add(Point2{dist * float32(c), dist * float32(s)})
}

// TowardsPoint moves dist from p in the direction of q. A negative dist
// moves away from q. Returns p when the two coincide.
func TowardsPoint(p, q Point2, dist float32) Point2 {
	d := q.Sub(p)
	l := d.Len()
	if l == 0 {
		return p
	}
	return p.Add(d.Mul(dist / l))
}
