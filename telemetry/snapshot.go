package telemetry

import (
	"github.com/lixenwraith/tracksim/dynamics"
	"github.com/lixenwraith/tracksim/suspension"
)

// Snapshot is one wire-format frame of vehicle state
type Snapshot struct {
	Time          float64    `json:"time"`
	Position      [3]float64 `json:"position"`
	Orientation   [4]float64 `json:"orientation"` // w, x, y, z
	Velocity      [3]float64 `json:"velocity"`
	TrackSpeed    float64    `json:"track_speed"`
	Grounded      bool       `json:"grounded"`
	GroundedCount int        `json:"grounded_count"`
	BrakeEngaged  bool       `json:"brake_engaged"`
	Points        []PointSnapshot `json:"points"`
}

// PointSnapshot is per-wheel-station state
type PointSnapshot struct {
	Anchor           [3]float64 `json:"anchor"`
	CompressedLength float64    `json:"compressed_length"`
	Grounded         bool       `json:"grounded"`
}

// Capture reads body and rig state into a snapshot. Must be called from
// the simulation goroutine; the result is safe to hand off
func Capture(body *dynamics.Body, rig *suspension.Rig, simTime float64) Snapshot {
	pos := body.Position()
	q := body.Orientation()
	vel := body.LinearVelocity()

	snap := Snapshot{
		Time:          simTime,
		Position:      [3]float64{pos.X, pos.Y, pos.Z},
		Orientation:   [4]float64{q.W, q.X, q.Y, q.Z},
		Velocity:      [3]float64{vel.X, vel.Y, vel.Z},
		TrackSpeed:    rig.EstimateTrackSpeed(),
		Grounded:      rig.IsGrounded(),
		GroundedCount: rig.GroundedCount(),
		BrakeEngaged:  rig.BrakeEngaged(),
		Points:        make([]PointSnapshot, len(rig.States())),
	}
	anchors := rig.Anchors()
	for i, st := range rig.States() {
		snap.Points[i] = PointSnapshot{
			Anchor:           [3]float64{anchors[i].X, anchors[i].Y, anchors[i].Z},
			CompressedLength: st.CompressedLength,
			Grounded:         st.Grounded,
		}
	}
	return snap
}
