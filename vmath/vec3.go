package vmath

import (
	"math"
)

// Vec3 is a float64 3D vector used throughout the simulation
// Y is up, Z is vehicle forward, X is vehicle right
type Vec3 struct {
	X, Y, Z float64
}

var (
	Up      = Vec3{0, 1, 0}
	Forward = Vec3{0, 0, 1}
	Right   = Vec3{1, 0, 0}
)

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3Neg(v Vec3) Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func V3Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// V3Cross returns a × b (right-handed)
func V3Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3ClampMagnitude limits vector magnitude to maxMag
func V3ClampMagnitude(v Vec3, maxMag float64) Vec3 {
	magSq := V3MagSq(v)
	if magSq <= maxMag*maxMag {
		return v
	}
	mag := math.Sqrt(magSq)
	if mag == 0 {
		return v
	}
	return V3Scale(v, maxMag/mag)
}
