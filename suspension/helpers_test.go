package suspension

import (
	"github.com/lixenwraith/tracksim/vmath"
)

// forceCall records one ApplyForceAtPosition invocation
type forceCall struct {
	force vmath.Vec3
	pos   vmath.Vec3
	mode  ForceMode
}

// mockBody is a stationary identity-oriented body that records applied
// forces instead of integrating them
type mockBody struct {
	position vmath.Vec3
	linVel   vmath.Vec3
	angVel   vmath.Vec3
	com      vmath.Vec3
	calls    []forceCall
}

func (m *mockBody) ApplyForceAtPosition(force, worldPos vmath.Vec3, mode ForceMode) {
	m.calls = append(m.calls, forceCall{force: force, pos: worldPos, mode: mode})
}

func (m *mockBody) LinearVelocity() vmath.Vec3    { return m.linVel }
func (m *mockBody) AngularVelocity() vmath.Vec3   { return m.angVel }
func (m *mockBody) WorldCenterOfMass() vmath.Vec3 { return vmath.V3Add(m.position, m.com) }

func (m *mockBody) TransformPoint(local vmath.Vec3) vmath.Vec3 {
	return vmath.V3Add(m.position, local)
}

func (m *mockBody) TransformDirection(local vmath.Vec3) vmath.Vec3 {
	return local
}

// callsWithMode filters recorded calls by force mode
func (m *mockBody) callsWithMode(mode ForceMode) []forceCall {
	var out []forceCall
	for _, c := range m.calls {
		if c.mode == mode {
			out = append(out, c)
		}
	}
	return out
}

// mockRay answers casts through a user function
type mockRay struct {
	cast func(origin, dir vmath.Vec3, maxDist float64, mask uint32) (RayHit, bool)
}

func (m *mockRay) Cast(origin, dir vmath.Vec3, maxDist float64, mask uint32) (RayHit, bool) {
	return m.cast(origin, dir, maxDist, mask)
}

// flatRay simulates flat ground at a given world height for downward casts
func flatRay(groundY float64) *mockRay {
	return &mockRay{cast: func(origin, dir vmath.Vec3, maxDist float64, mask uint32) (RayHit, bool) {
		if dir.Y >= 0 {
			return RayHit{}, false
		}
		dist := origin.Y - groundY
		if dist < 0 || dist > maxDist {
			return RayHit{}, false
		}
		return RayHit{Distance: dist, Normal: vmath.Up}, true
	}}
}

// missRay never hits
func missRay() *mockRay {
	return &mockRay{cast: func(vmath.Vec3, vmath.Vec3, float64, uint32) (RayHit, bool) {
		return RayHit{}, false
	}}
}

func testTunables() Tunables {
	return Tunables{
		RestLength:      0.6,
		SpringConstant:  20000,
		DamperConstant:  3000,
		MaxSpringForce:  10000,
		MaxDamperForce:  5000,
		ForwardFriction: 2,
		SideFriction:    3,
		TrackWidth:      0.4,
		RollerRadius:    0.1,
		GroundMask:      1,
		VisualSmoothing: 12,
	}
}
