package suspension

import (
	"github.com/lixenwraith/tracksim/vmath"
)

// Solver computes the spring-damper strut force for one point per fixed step
// Spring and damper terms are clamped independently so a damper transient
// cannot be masked by spring saturation
type Solver struct {
	restLength float64
	spring     float64
	damper     float64
	maxSpring  float64
	maxDamper  float64
}

// NewSolver builds a solver from validated tunables
func NewSolver(t Tunables) Solver {
	return Solver{
		restLength: t.RestLength,
		spring:     t.SpringConstant,
		damper:     t.DamperConstant,
		maxSpring:  t.MaxSpringForce,
		maxDamper:  t.MaxDamperForce,
	}
}

// Step applies the strut force for one point and advances its state.
// hitDist is the probed ground distance in [0, restLength]. Returns the
// total force magnitude applied along up (0 when ungrounded).
//
// Velocity sign convention matches compression: positive while the point
// moves toward the body. When ungrounded the stored length resets to
// restLength so a velocity spike cannot occur when ground reappears.
func (s Solver) Step(body Body, st *PointState, worldAnchor, up vmath.Vec3, hitDist float64, grounded bool, dt float64) float64 {
	if !grounded {
		st.CompressedLength = s.restLength
		st.Grounded = false
		return 0
	}

	compression := s.restLength - hitDist
	velocity := (st.CompressedLength - hitDist) / dt

	springForce := vmath.Clamp(compression*s.spring, -s.maxSpring, s.maxSpring)
	damperForce := vmath.Clamp(velocity*s.damper, -s.maxDamper, s.maxDamper)
	total := springForce + damperForce

	body.ApplyForceAtPosition(vmath.V3Scale(up, total), worldAnchor, ForceModeForce)

	st.CompressedLength = hitDist
	st.Grounded = true
	return total
}
