package suspension

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tracksim/vmath"
)

func TestEstimateTrackSpeedAveragesGroundedPoints(t *testing.T) {
	// Yaw ω = 1 rad/s adds ±1 m/s forward velocity at x = ∓1
	body := &mockBody{linVel: vmath.Vec3{Z: 3}, angVel: vmath.Vec3{Y: 1}}
	anchors := []vmath.Vec3{{X: -1}, {X: 1}, {X: 0}}
	states := []PointState{
		{Grounded: true},  // forward vel 3 + 1 = 4
		{Grounded: true},  // forward vel 3 - 1 = 2
		{Grounded: false}, // excluded
	}

	speed := EstimateTrackSpeed(body, vmath.Forward, anchors, states)
	require.InDelta(t, 3.0, speed, 1e-12)
}

func TestEstimateTrackSpeedNoGroundedPoints(t *testing.T) {
	body := &mockBody{linVel: vmath.Vec3{Z: 5}}
	anchors := []vmath.Vec3{{}}
	states := []PointState{{}}

	require.Equal(t, 0.0, EstimateTrackSpeed(body, vmath.Forward, anchors, states))
}
