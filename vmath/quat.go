package vmath

import (
	"math"
)

// Quat is a unit quaternion representing a rotation (W + Xi + Yj + Zk)
type Quat struct {
	W, X, Y, Z float64
}

// QIdentity returns the no-rotation quaternion
func QIdentity() Quat {
	return Quat{W: 1}
}

// QFromAxisAngle builds a rotation of angle radians around a unit axis
func QFromAxisAngle(axis Vec3, angle float64) Quat {
	half := angle * 0.5
	s := math.Sin(half)
	return Quat{
		W: math.Cos(half),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// QMul returns the composition a*b (apply b first, then a)
func QMul(a, b Quat) Quat {
	return Quat{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
	}
}

// QNormalize renormalizes after accumulated integration drift
func QNormalize(q Quat) Quat {
	mag := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if mag == 0 {
		return QIdentity()
	}
	inv := 1.0 / mag
	return Quat{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

// QRotate rotates vector v by quaternion q
// Optimization: t = 2*(q.xyz × v); v' = v + q.w*t + q.xyz × t
func QRotate(q Quat, v Vec3) Vec3 {
	qv := Vec3{q.X, q.Y, q.Z}
	t := V3Scale(V3Cross(qv, v), 2)
	return V3Add(V3Add(v, V3Scale(t, q.W)), V3Cross(qv, t))
}

// QConjugate inverts a unit quaternion
func QConjugate(q Quat) Quat {
	return Quat{q.W, -q.X, -q.Y, -q.Z}
}

// QRotateInv rotates v by the inverse of q
func QRotateInv(q Quat, v Vec3) Vec3 {
	return QRotate(QConjugate(q), v)
}

// QIntegrate advances orientation by angular velocity w over dt
// dq/dt = 0.5 * (0,w) * q, followed by renormalization
func QIntegrate(q Quat, w Vec3, dt float64) Quat {
	wq := Quat{W: 0, X: w.X, Y: w.Y, Z: w.Z}
	dq := QMul(wq, q)
	half := 0.5 * dt
	return QNormalize(Quat{
		W: q.W + dq.W*half,
		X: q.X + dq.X*half,
		Y: q.Y + dq.Y*half,
		Z: q.Z + dq.Z*half,
	})
}
