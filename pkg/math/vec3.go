// Package math provides the small vector type shared by the scene core.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Zero is the origin.
var Zero = Vec3{}

// FromArray converts an [x, y, z] array (the layout used by mesh data) to a Vec3.
func FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

// FromFloat64 narrows a double precision triple, as decoded from asset files.
func FromFloat64(a [3]float64) Vec3 {
	return Vec3{float32(a[0]), float32(a[1]), float32(a[2])}
}

// Array returns the components as [x, y, z].
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Length returns the magnitude. Squares are taken in float64 so tiny
// components do not underflow.
func (v Vec3) Length() float32 {
	return float32(v.length64())
}

func (v Vec3) length64() float64 {
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Normalize returns a unit vector. The zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	l := v.length64()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{float32(float64(v.X) / l), float32(float64(v.Y) / l), float32(float64(v.Z) / l)}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Lerp moves v toward target by fraction t. t is not clamped.
func (v Vec3) Lerp(target Vec3, t float32) Vec3 {
	return v.Add(target.Sub(v).Scale(t))
}

// ApproxEqual reports whether v and other are within eps of each other.
func (v Vec3) ApproxEqual(other Vec3, eps float32) bool {
	return v.Distance(other) <= eps
}
