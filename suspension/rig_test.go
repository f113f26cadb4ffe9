package suspension

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tracksim/vmath"
)

func fourPointRig(t *testing.T, body *mockBody, ray Raycaster) *Rig {
	t.Helper()
	points := []PointConfig{
		{Anchor: vmath.Vec3{X: -1, Z: -1}, WheelRadius: 0.25},
		{Anchor: vmath.Vec3{X: 1, Z: -1}, WheelRadius: 0.25},
		{Anchor: vmath.Vec3{X: -1, Z: 1}, WheelRadius: 0.25},
		{Anchor: vmath.Vec3{X: 1, Z: 1}, WheelRadius: 0.25},
	}
	rollers := []RollerConfig{{Offset: vmath.Vec3{Y: 0.4}, Radius: 0.1}}
	rig, err := NewRig(body, ray, testTunables(), points, rollers)
	require.NoError(t, err)
	return rig
}

func TestNewRigRejectsInvalidConfig(t *testing.T) {
	body := &mockBody{}

	_, err := NewRig(body, flatRay(0), testTunables(), nil, nil)
	require.Error(t, err)

	bad := testTunables()
	bad.RestLength = 0
	_, err = NewRig(body, flatRay(0), bad, []PointConfig{{}}, nil)
	require.Error(t, err)

	_, err = NewRig(nil, flatRay(0), testTunables(), []PointConfig{{}}, nil)
	require.Error(t, err)
}

func TestRigGroundedCountRecomputedEachStep(t *testing.T) {
	// Anchors sit at y=0.3 (body at 0.3): flat ground at 0 grounds all
	body := &mockBody{position: vmath.Vec3{Y: 0.3}}
	rig := fourPointRig(t, body, flatRay(0))

	rig.Step(0.02)
	require.Equal(t, 4, rig.GroundedCount())
	require.True(t, rig.IsGrounded())
	for _, st := range rig.States() {
		require.True(t, st.Grounded)
		require.InDelta(t, 0.3, st.CompressedLength, 1e-9)
	}

	// Body lifted out of range: all points unground in the same step and
	// stored lengths reset to restLength, count recomputed from zero
	body.position = vmath.Vec3{Y: 10}
	rig.Step(0.02)
	require.Equal(t, 0, rig.GroundedCount())
	require.False(t, rig.IsGrounded())
	for _, st := range rig.States() {
		require.False(t, st.Grounded)
		require.Equal(t, 0.6, st.CompressedLength)
	}

	// Repeated ungrounded steps stay at restLength
	rig.Step(0.02)
	for _, st := range rig.States() {
		require.Equal(t, 0.6, st.CompressedLength)
	}
}

func TestRigStateStaysInRange(t *testing.T) {
	// Drive the body through absurd heights; stored length must stay
	// within [0, restLength] after every step
	body := &mockBody{}
	rig := fourPointRig(t, body, flatRay(0))

	for _, y := range []float64{5, 0.6, 0.3, 0, -3, 0.45, 12, -0.01} {
		body.position = vmath.Vec3{Y: y}
		rig.Step(0.02)
		for _, st := range rig.States() {
			require.GreaterOrEqual(t, st.CompressedLength, 0.0)
			require.LessOrEqual(t, st.CompressedLength, 0.6)
		}
	}
}

func TestRigTractionConsumesRequestOnce(t *testing.T) {
	body := &mockBody{position: vmath.Vec3{Y: 0.3}}
	rig := fourPointRig(t, body, flatRay(0))
	rig.SetBrakeEngaged(false)

	rig.SetRequestedAcceleration(9)
	rig.Step(0.02)

	// 4 grounded points, accel mode traction 9/4 each, plus lateral
	// friction calls (zero force at rest)
	require.Equal(t, 0.0, rig.RequestedAcceleration())
	accelCalls := body.callsWithMode(ForceModeAcceleration)
	traction := 0
	for _, c := range accelCalls {
		if c.force.Z != 0 {
			require.InDelta(t, 2.25, c.force.Z, 1e-12)
			traction++
		}
	}
	require.Equal(t, 4, traction)

	// Next step without a new request applies no traction
	body.calls = nil
	rig.Step(0.02)
	for _, c := range body.callsWithMode(ForceModeAcceleration) {
		require.Equal(t, 0.0, c.force.Z)
	}
}

func TestRigRequestResetEvenWhenAirborne(t *testing.T) {
	body := &mockBody{position: vmath.Vec3{Y: 10}}
	rig := fourPointRig(t, body, missRay())
	rig.SetBrakeEngaged(false)

	rig.SetRequestedAcceleration(9)
	rig.Step(0.02)

	// Nothing grounded: no force, but the request does not accumulate
	require.Empty(t, body.calls)
	require.Equal(t, 0.0, rig.RequestedAcceleration())
	require.Equal(t, 0.0, rig.EstimateTrackSpeed())
}

func TestRigBrakeModeSkipsTraction(t *testing.T) {
	body := &mockBody{position: vmath.Vec3{Y: 0.3}, linVel: vmath.Vec3{Z: 2}}
	rig := fourPointRig(t, body, flatRay(0))
	require.True(t, rig.BrakeEngaged()) // brake is the default

	rig.SetRequestedAcceleration(9)
	rig.Step(0.02)

	// Forward forces oppose motion (braking), never drive it
	for _, c := range body.callsWithMode(ForceModeAcceleration) {
		require.LessOrEqual(t, c.force.Z, 0.0)
	}
	// The request is still consumed
	require.Equal(t, 0.0, rig.RequestedAcceleration())
}

func TestRigStaticPointsRunPhysics(t *testing.T) {
	body := &mockBody{position: vmath.Vec3{Y: 0.3}}
	points := []PointConfig{
		{Anchor: vmath.Vec3{}, WheelRadius: 0.25, Static: true},
	}
	rig, err := NewRig(body, flatRay(0), testTunables(), points, nil)
	require.NoError(t, err)

	rig.Step(0.02)

	// Static affects visuals only; the point still grounds and pushes
	require.Equal(t, 1, rig.GroundedCount())
	require.NotEmpty(t, body.callsWithMode(ForceModeForce))

	// But the render tick leaves its visual untouched
	rig.RenderTick(0.016)
	require.Equal(t, 0.0, rig.WheelVisuals()[0].Lift)
	require.Equal(t, 0.0, rig.WheelVisuals()[0].SpinAngle)
}

func TestRigRenderTickSmoothsTowardCompression(t *testing.T) {
	body := &mockBody{position: vmath.Vec3{Y: 0.3}, linVel: vmath.Vec3{Z: 2}}
	rig := fourPointRig(t, body, flatRay(0))

	rig.Step(0.02)
	compression := 0.6 - rig.States()[0].CompressedLength
	require.Greater(t, compression, 0.0)

	// Lift approaches compression without snapping or overshooting
	prev := 0.0
	for i := 0; i < 60; i++ {
		rig.RenderTick(0.016)
		lift := rig.WheelVisuals()[0].Lift
		require.Greater(t, lift, prev)
		require.LessOrEqual(t, lift, compression)
		prev = lift
	}
	require.InDelta(t, compression, prev, 0.01)

	// Wheels and rollers spin while the belt moves
	require.NotEqual(t, 0.0, rig.WheelVisuals()[0].SpinAngle)
	require.NotEqual(t, 0.0, rig.RollerVisuals()[0].SpinAngle)

	// Physics state is untouched by render ticks
	require.Equal(t, 4, rig.GroundedCount())
}
