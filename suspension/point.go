package suspension

import (
	"github.com/lixenwraith/tracksim/vmath"
)

// PointConfig is the immutable per-wheel-station configuration
// Anchor is the strut attachment in body-local space
type PointConfig struct {
	Anchor      vmath.Vec3
	WheelRadius float64
	// Static excludes the point from visual animation only; the point
	// still runs the full physics path every step
	Static bool
}

// RollerConfig is a passive return roller, visual only
type RollerConfig struct {
	Offset vmath.Vec3
	Radius float64
}

// PointState is the per-step mutable state of one point, owned by the rig
// and written exactly once per physics step
type PointState struct {
	// CompressedLength is the strut length stored last step, always in
	// [0, restLength]; the solver derives compression velocity from it
	CompressedLength float64
	Grounded         bool
}

// WheelVisual is presentation-only wheel state, owned by the render tick
// and never read back into physics
type WheelVisual struct {
	// Lift is the smoothed upward displacement from rest position
	Lift      float64
	SpinAngle float64
}

// RollerVisual is presentation-only roller rotation state
type RollerVisual struct {
	SpinAngle float64
}
