package physics

import "math"

// Vector2 is an immutable 2D point or direction in arena units.
type Vector2 struct {
	X, Y float64
}

// Vec returns a Vector2 with the given components.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// FromAngle returns a vector of the given length pointing along angle (radians).
func FromAngle(angle, length float64) Vector2 {
	return Vector2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by f.
func (v Vector2) Scale(f float64) Vector2 {
	return Vector2{X: v.X * f, Y: v.Y * f}
}

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the magnitude of v.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared magnitude of v.
func (v Vector2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector of v, or the zero vector if v has no length.
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	if l == 0 {
		return Vector2{}
	}
	return Vector2{X: v.X / l, Y: v.Y / l}
}

// Rotate rotates v around the origin by angle radians.
func (v Vector2) Rotate(angle float64) Vector2 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle returns the direction of v in radians.
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}
