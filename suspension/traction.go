package suspension

import (
	"math"

	"github.com/lixenwraith/tracksim/parameter"
	"github.com/lixenwraith/tracksim/vmath"
)

// ApplyTraction distributes a requested drive acceleration equally across
// grounded points as acceleration-mode forces along forward
// No-op when nothing is grounded
func ApplyTraction(body Body, forward vmath.Vec3, requested float64, anchors []vmath.Vec3, states []PointState) {
	grounded := 0
	for i := range states {
		if states[i].Grounded {
			grounded++
		}
	}
	if grounded == 0 {
		return
	}

	per := requested / float64(grounded)
	for i := range states {
		if !states[i].Grounded {
			continue
		}
		body.ApplyForceAtPosition(vmath.V3Scale(forward, per), anchors[i], ForceModeAcceleration)
	}
}

// ApplyForwardFriction applies slip-limited braking friction along forward
// at every grounded point
func ApplyForwardFriction(body Body, forward vmath.Vec3, coeff float64, anchors []vmath.Vec3, states []PointState) {
	for i := range states {
		if !states[i].Grounded {
			continue
		}
		forwardVel := vmath.V3Dot(PointVelocity(body, anchors[i]), forward)
		f := -forwardVel * coeff * SlipFactor(forwardVel)
		body.ApplyForceAtPosition(vmath.V3Scale(forward, f), anchors[i], ForceModeAcceleration)
	}
}

// SlipFactor is a simplified slip-friction curve: more grip at low speed,
// attenuated at high slip speed, bounded to a small nonzero floor
// Finite at zero velocity (a dead stop has full grip, not a singularity)
func SlipFactor(forwardVel float64) float64 {
	av := math.Abs(forwardVel)
	if av == 0 {
		return 1
	}
	return vmath.Clamp(1/(parameter.SlipVelocityScale*av), parameter.SlipFloor, 1)
}
