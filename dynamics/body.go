package dynamics

import (
	"fmt"

	"github.com/lixenwraith/tracksim/suspension"
	"github.com/lixenwraith/tracksim/vmath"
)

// Body is a free 6-DOF rigid body with a diagonal body-space inertia
// tensor and semi-implicit Euler integration. It implements
// suspension.Body, accumulating forces between Integrate calls so the sum
// of per-point contributions is order independent
type Body struct {
	mass       float64
	invMass    float64
	invInertia vmath.Vec3 // inverse of diagonal body-space inertia
	comOffset  vmath.Vec3 // center of mass in local space

	position    vmath.Vec3 // world position of the local origin
	orientation vmath.Quat
	linVel      vmath.Vec3
	angVel      vmath.Vec3 // world space

	gravity        vmath.Vec3
	linearDamping  float64 // fraction of velocity removed per second
	angularDamping float64

	forceAccum  vmath.Vec3
	torqueAccum vmath.Vec3
}

// NewBoxBody builds a body with the inertia tensor of a solid box of the
// given half extents, center of mass at the local origin
func NewBoxBody(mass float64, halfExtents vmath.Vec3) (*Body, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("dynamics: mass must be positive, got %v", mass)
	}
	if halfExtents.X <= 0 || halfExtents.Y <= 0 || halfExtents.Z <= 0 {
		return nil, fmt.Errorf("dynamics: box half extents must be positive")
	}

	// Solid box: I = m/3 * (b^2 + c^2) per axis, with half extents
	k := mass / 3.0
	ix := k * (halfExtents.Y*halfExtents.Y + halfExtents.Z*halfExtents.Z)
	iy := k * (halfExtents.X*halfExtents.X + halfExtents.Z*halfExtents.Z)
	iz := k * (halfExtents.X*halfExtents.X + halfExtents.Y*halfExtents.Y)

	return &Body{
		mass:           mass,
		invMass:        1.0 / mass,
		invInertia:     vmath.Vec3{X: 1.0 / ix, Y: 1.0 / iy, Z: 1.0 / iz},
		orientation:    vmath.QIdentity(),
		gravity:        vmath.Vec3{Y: -9.81},
		linearDamping:  0.0,
		angularDamping: 0.05,
	}, nil
}

// SetGravity overrides the default gravity vector
func (b *Body) SetGravity(g vmath.Vec3) {
	b.gravity = g
}

// SetPosition teleports the local origin
func (b *Body) SetPosition(p vmath.Vec3) {
	b.position = p
}

// SetOrientation overrides the body orientation
func (b *Body) SetOrientation(q vmath.Quat) {
	b.orientation = vmath.QNormalize(q)
}

// SetVelocity overrides linear and angular velocity
func (b *Body) SetVelocity(lin, ang vmath.Vec3) {
	b.linVel = lin
	b.angVel = ang
}

func (b *Body) Mass() float64               { return b.mass }
func (b *Body) Position() vmath.Vec3        { return b.position }
func (b *Body) Orientation() vmath.Quat     { return b.orientation }
func (b *Body) LinearVelocity() vmath.Vec3  { return b.linVel }
func (b *Body) AngularVelocity() vmath.Vec3 { return b.angVel }

// WorldCenterOfMass returns the center of mass in world space
func (b *Body) WorldCenterOfMass() vmath.Vec3 {
	return b.TransformPoint(b.comOffset)
}

// TransformPoint converts a body-local position to world space
func (b *Body) TransformPoint(local vmath.Vec3) vmath.Vec3 {
	return vmath.V3Add(b.position, vmath.QRotate(b.orientation, local))
}

// TransformDirection rotates a body-local direction to world space
func (b *Body) TransformDirection(local vmath.Vec3) vmath.Vec3 {
	return vmath.QRotate(b.orientation, local)
}

// InverseTransformDirection rotates a world direction into body space
func (b *Body) InverseTransformDirection(world vmath.Vec3) vmath.Vec3 {
	return vmath.QRotateInv(b.orientation, world)
}

// ApplyForceAtPosition accumulates a force (or mass-normalized
// acceleration) acting at a world position, producing torque about the
// center of mass
func (b *Body) ApplyForceAtPosition(force, worldPos vmath.Vec3, mode suspension.ForceMode) {
	f := force
	if mode == suspension.ForceModeAcceleration {
		f = vmath.V3Scale(force, b.mass)
	}
	b.forceAccum = vmath.V3Add(b.forceAccum, f)
	r := vmath.V3Sub(worldPos, b.WorldCenterOfMass())
	b.torqueAccum = vmath.V3Add(b.torqueAccum, vmath.V3Cross(r, f))
}

// ApplyForce accumulates a force through the center of mass (no torque)
func (b *Body) ApplyForce(force vmath.Vec3, mode suspension.ForceMode) {
	f := force
	if mode == suspension.ForceModeAcceleration {
		f = vmath.V3Scale(force, b.mass)
	}
	b.forceAccum = vmath.V3Add(b.forceAccum, f)
}

// Integrate advances the body by dt with semi-implicit Euler and clears
// the force and torque accumulators
func (b *Body) Integrate(dt float64) {
	if dt <= 0 {
		return
	}

	// Linear
	accel := vmath.V3Add(vmath.V3Scale(b.forceAccum, b.invMass), b.gravity)
	b.linVel = vmath.V3Add(b.linVel, vmath.V3Scale(accel, dt))
	b.linVel = vmath.V3Scale(b.linVel, damping(b.linearDamping, dt))
	b.position = vmath.V3Add(b.position, vmath.V3Scale(b.linVel, dt))

	// Angular: rotate torque into body space, scale by inverse inertia,
	// rotate the resulting acceleration back to world space
	// Gyroscopic coupling is ignored, fine at suspension time scales
	torqueBody := vmath.QRotateInv(b.orientation, b.torqueAccum)
	angAccelBody := vmath.Vec3{
		X: torqueBody.X * b.invInertia.X,
		Y: torqueBody.Y * b.invInertia.Y,
		Z: torqueBody.Z * b.invInertia.Z,
	}
	angAccel := vmath.QRotate(b.orientation, angAccelBody)
	b.angVel = vmath.V3Add(b.angVel, vmath.V3Scale(angAccel, dt))
	b.angVel = vmath.V3Scale(b.angVel, damping(b.angularDamping, dt))
	b.orientation = vmath.QIntegrate(b.orientation, b.angVel, dt)

	b.forceAccum = vmath.Vec3{}
	b.torqueAccum = vmath.Vec3{}
}

// damping returns the per-step velocity retention factor
func damping(perSecond, dt float64) float64 {
	return vmath.Clamp(1.0-perSecond*dt, 0, 1)
}
