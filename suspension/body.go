package suspension

import (
	"github.com/lixenwraith/tracksim/vmath"
)

// ForceMode selects how an applied vector is interpreted by the body
type ForceMode int

const (
	// ForceModeForce applies the vector as a force in newtons
	ForceModeForce ForceMode = iota
	// ForceModeAcceleration applies the vector as a mass-normalized
	// acceleration in m/s^2
	ForceModeAcceleration
)

// Body is the rigid body all suspension points act upon
// The rig never duplicates body state, it queries it live each step
type Body interface {
	ApplyForceAtPosition(force, worldPos vmath.Vec3, mode ForceMode)
	LinearVelocity() vmath.Vec3
	AngularVelocity() vmath.Vec3
	WorldCenterOfMass() vmath.Vec3

	// TransformPoint converts a body-local position to world space
	TransformPoint(local vmath.Vec3) vmath.Vec3
	// TransformDirection rotates a body-local direction to world space
	TransformDirection(local vmath.Vec3) vmath.Vec3
}

// RayHit is the nearest surface found by a cast
type RayHit struct {
	Distance float64
	Normal   vmath.Vec3
}

// Raycaster is the spatial ground-query service
// Absence of a hit is the ungrounded case, not an error
type Raycaster interface {
	Cast(origin, dir vmath.Vec3, maxDist float64, mask uint32) (RayHit, bool)
}

// PointVelocity returns the world velocity of a point rigidly attached to
// the body: v = linVel + angVel × (p − com)
func PointVelocity(body Body, worldPos vmath.Vec3) vmath.Vec3 {
	r := vmath.V3Sub(worldPos, body.WorldCenterOfMass())
	return vmath.V3Add(body.LinearVelocity(), vmath.V3Cross(body.AngularVelocity(), r))
}
