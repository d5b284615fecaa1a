// Package physics provides the 2D vector type, distance helpers and a
// broad-phase grid used by the simulation.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vector2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vector2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// PointInCircle reports whether p lies strictly inside the circle at c with the given radius.
func PointInCircle(p, c Vector2, radius float64) bool {
	return DistanceSquared(p, c) < radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(c1 Vector2, r1 float64, c2 Vector2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) < minDist*minDist
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeAngle wraps an angle to [-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
