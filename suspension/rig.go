package suspension

import (
	"fmt"

	"github.com/lixenwraith/tracksim/vmath"
)

// Rig orchestrates per-fixed-step evaluation over all suspension points of
// one rigid body and owns their mutable state
//
// Step and RenderTick must be driven from the same goroutine (or otherwise
// serialized): physics writes the per-point state, the render tick only
// reads it
type Rig struct {
	body   Body
	probe  GroundProbe
	solver Solver
	tun    Tunables

	points  []PointConfig
	rollers []RollerConfig

	states        []PointState
	wheelVisuals  []WheelVisual
	rollerVisuals []RollerVisual

	// anchors holds each point's world position, rebuilt every step
	anchors []vmath.Vec3

	groundedCount  int
	requestedAccel float64
	brakeEngaged   bool
}

// NewRig validates configuration and builds a rig. A rig with zero points
// can never ground, so it is rejected outright
func NewRig(body Body, ray Raycaster, tun Tunables, points []PointConfig, rollers []RollerConfig) (*Rig, error) {
	if body == nil || ray == nil {
		return nil, fmt.Errorf("suspension: rig requires a body and a raycaster")
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("suspension: rig requires at least one point")
	}
	if err := tun.Validate(); err != nil {
		return nil, err
	}

	r := &Rig{
		body:          body,
		probe:         NewGroundProbe(ray, tun.RestLength, tun.GroundMask),
		solver:        NewSolver(tun),
		tun:           tun,
		points:        points,
		rollers:       rollers,
		states:        make([]PointState, len(points)),
		wheelVisuals:  make([]WheelVisual, len(points)),
		rollerVisuals: make([]RollerVisual, len(rollers)),
		anchors:       make([]vmath.Vec3, len(points)),
		brakeEngaged:  true,
	}
	for i := range r.states {
		r.states[i].CompressedLength = tun.RestLength
	}
	for i := range r.anchors {
		r.anchors[i] = body.TransformPoint(points[i].Anchor)
	}
	return r, nil
}

// Step runs one fixed physics step: probe and solve every point (static
// points included), then traction or braking friction, then lateral
// friction. GroundedCount is recomputed from zero, never accumulated
func (r *Rig) Step(dt float64) {
	if dt <= 0 {
		return
	}

	up := r.body.TransformDirection(vmath.Up)
	forward := r.body.TransformDirection(vmath.Forward)
	right := r.body.TransformDirection(vmath.Right)

	r.groundedCount = 0
	for i := range r.points {
		r.anchors[i] = r.body.TransformPoint(r.points[i].Anchor)
		hitDist, grounded := r.probe.Probe(r.anchors[i], up)
		r.solver.Step(r.body, &r.states[i], r.anchors[i], up, hitDist, grounded, dt)
		if r.states[i].Grounded {
			r.groundedCount++
		}
	}

	if r.brakeEngaged {
		ApplyForwardFriction(r.body, forward, r.tun.ForwardFriction, r.anchors, r.states)
	} else {
		ApplyTraction(r.body, forward, r.requestedAccel, r.anchors, r.states)
	}
	// The request is consumed exactly once per step, applied or not
	r.requestedAccel = 0

	ApplyLateralFriction(r.body, right, r.tun.SideFriction, r.anchors, r.states)
}

// RenderTick advances visual-only wheel and roller state at render cadence
// Smoothed lift approaches the physical compression, spin follows the
// estimated belt speed; nothing here feeds back into physics
func (r *Rig) RenderTick(dt float64) {
	if dt <= 0 {
		return
	}

	speed := r.EstimateTrackSpeed()
	for i := range r.points {
		if r.points[i].Static {
			continue
		}
		lift := r.tun.RestLength - r.states[i].CompressedLength
		r.wheelVisuals[i].Lift = vmath.ApproachExp(r.wheelVisuals[i].Lift, lift, r.tun.VisualSmoothing, dt)
		if r.points[i].WheelRadius > 0 {
			r.wheelVisuals[i].SpinAngle += speed / r.points[i].WheelRadius * dt
		}
	}
	for i := range r.rollers {
		radius := r.rollers[i].Radius
		if radius <= 0 {
			radius = r.tun.RollerRadius
		}
		if radius > 0 {
			r.rollerVisuals[i].SpinAngle += speed / radius * dt
		}
	}
}

// EstimateTrackSpeed returns the current visual belt speed
func (r *Rig) EstimateTrackSpeed() float64 {
	forward := r.body.TransformDirection(vmath.Forward)
	return EstimateTrackSpeed(r.body, forward, r.anchors, r.states)
}

// SetRequestedAcceleration stores the drive request for the next step
func (r *Rig) SetRequestedAcceleration(accel float64) {
	r.requestedAccel = accel
}

// RequestedAcceleration returns the pending drive request
func (r *Rig) RequestedAcceleration() float64 {
	return r.requestedAccel
}

// SetBrakeEngaged switches between braking friction and drive traction
func (r *Rig) SetBrakeEngaged(engaged bool) {
	r.brakeEngaged = engaged
}

// BrakeEngaged reports the current brake mode
func (r *Rig) BrakeEngaged() bool {
	return r.brakeEngaged
}

// IsGrounded reports whether any point touched ground last step
func (r *Rig) IsGrounded() bool {
	return r.groundedCount > 0
}

// GroundedCount returns the number of grounded points after the last step
func (r *Rig) GroundedCount() int {
	return r.groundedCount
}

// Points returns the immutable point configuration
func (r *Rig) Points() []PointConfig {
	return r.points
}

// Rollers returns the immutable roller configuration
func (r *Rig) Rollers() []RollerConfig {
	return r.rollers
}

// States returns per-point state for read-only consumers (presentation,
// telemetry); callers must not mutate it
func (r *Rig) States() []PointState {
	return r.states
}

// Anchors returns the world anchor positions from the last step, read-only
func (r *Rig) Anchors() []vmath.Vec3 {
	return r.anchors
}

// WheelVisuals returns presentation wheel state, read-only
func (r *Rig) WheelVisuals() []WheelVisual {
	return r.wheelVisuals
}

// RollerVisuals returns presentation roller state, read-only
func (r *Rig) RollerVisuals() []RollerVisual {
	return r.rollerVisuals
}

// Tunables returns the rig's immutable tuning
func (r *Rig) Tunables() Tunables {
	return r.tun
}
