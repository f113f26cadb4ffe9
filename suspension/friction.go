package suspension

import (
	"github.com/lixenwraith/tracksim/vmath"
)

// ApplyLateralFriction cancels sideways slip at every grounded point with a
// force linear in lateral velocity (no slip curve, plain cornering
// resistance rather than a slip-circle model)
func ApplyLateralFriction(body Body, right vmath.Vec3, coeff float64, anchors []vmath.Vec3, states []PointState) {
	for i := range states {
		if !states[i].Grounded {
			continue
		}
		lateralVel := vmath.V3Dot(PointVelocity(body, anchors[i]), right)
		body.ApplyForceAtPosition(vmath.V3Scale(right, -lateralVel*coeff), anchors[i], ForceModeAcceleration)
	}
}
