package suspension_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tracksim/config"
	"github.com/lixenwraith/tracksim/dynamics"
	"github.com/lixenwraith/tracksim/suspension"
	"github.com/lixenwraith/tracksim/terrain"
	"github.com/lixenwraith/tracksim/vmath"
)

// buildVehicle assembles the default hull over flat ground
func buildVehicle(t *testing.T) (*dynamics.Body, *suspension.Rig) {
	t.Helper()
	cfg := config.Default()

	body, err := dynamics.NewBoxBody(cfg.Vehicle.Mass, cfg.Vehicle.HalfExtents.V())
	require.NoError(t, err)
	body.SetGravity(vmath.Vec3{Y: -cfg.World.Gravity})

	ground := terrain.New(terrain.Flat(0), 1)
	rig, err := suspension.NewRig(body, ground, cfg.Tunables(), cfg.PointConfigs(), cfg.RollerConfigs())
	require.NoError(t, err)
	return body, rig
}

func TestVehicleSettlesOnFlatGround(t *testing.T) {
	body, rig := buildVehicle(t)
	// Anchors sit at local y=-0.5; start with struts roughly half
	// compressed so the drop is gentle
	body.SetPosition(vmath.Vec3{Y: 0.8})

	const dt = 0.02
	for i := 0; i < 1500; i++ {
		rig.Step(dt)
		body.Integrate(dt)

		// Invariant: stored lengths stay in [0, restLength] every step
		for _, st := range rig.States() {
			require.GreaterOrEqual(t, st.CompressedLength, 0.0)
			require.LessOrEqual(t, st.CompressedLength, rig.Tunables().RestLength)
		}
	}

	// Settled: all points grounded, body at rest
	require.Equal(t, len(rig.Points()), rig.GroundedCount())
	require.Less(t, vmath.V3Mag(body.LinearVelocity()), 0.05)
	require.Less(t, vmath.V3Mag(body.AngularVelocity()), 0.05)

	// Static equilibrium: per-point spring force carries the weight
	// compression ≈ m*g / (n*k)
	n := float64(len(rig.Points()))
	expected := body.Mass() * 9.81 / (n * rig.Tunables().SpringConstant)
	for _, st := range rig.States() {
		compression := rig.Tunables().RestLength - st.CompressedLength
		require.InDelta(t, expected, compression, 0.1)
	}
}

func TestVehicleAcceleratesAndBrakes(t *testing.T) {
	body, rig := buildVehicle(t)
	body.SetPosition(vmath.Vec3{Y: 0.8})

	const dt = 0.02
	// Settle first
	for i := 0; i < 500; i++ {
		rig.Step(dt)
		body.Integrate(dt)
	}

	// Drive forward for 2s
	rig.SetBrakeEngaged(false)
	for i := 0; i < 100; i++ {
		rig.SetRequestedAcceleration(6)
		rig.Step(dt)
		body.Integrate(dt)
	}
	forwardSpeed := body.LinearVelocity().Z
	require.Greater(t, forwardSpeed, 1.0)
	require.Greater(t, rig.EstimateTrackSpeed(), 1.0)

	// Brake: slip-limited friction bleeds the speed off
	rig.SetBrakeEngaged(true)
	for i := 0; i < 2000; i++ {
		rig.Step(dt)
		body.Integrate(dt)
	}
	require.Less(t, math.Abs(body.LinearVelocity().Z), forwardSpeed*0.25)
}

func TestVehicleOverRollingTerrain(t *testing.T) {
	cfg := config.Default()
	body, err := dynamics.NewBoxBody(cfg.Vehicle.Mass, cfg.Vehicle.HalfExtents.V())
	require.NoError(t, err)
	body.SetGravity(vmath.Vec3{Y: -cfg.World.Gravity})
	body.SetPosition(vmath.Vec3{Y: 1.2})

	ground := terrain.New(terrain.Rolling(cfg.World.TerrainAmplitude, cfg.World.TerrainWavelength), 1)
	rig, err := suspension.NewRig(body, ground, cfg.Tunables(), cfg.PointConfigs(), cfg.RollerConfigs())
	require.NoError(t, err)

	// Drive over variable geometry; nothing may blow up or leave range
	rig.SetBrakeEngaged(false)
	const dt = 0.02
	for i := 0; i < 2000; i++ {
		if rig.EstimateTrackSpeed() < 15 {
			rig.SetRequestedAcceleration(6)
		}
		rig.Step(dt)
		body.Integrate(dt)

		require.False(t, math.IsNaN(body.Position().Y))
		require.Less(t, vmath.V3Mag(body.LinearVelocity()), 100.0)
		for _, st := range rig.States() {
			require.GreaterOrEqual(t, st.CompressedLength, 0.0)
			require.LessOrEqual(t, st.CompressedLength, rig.Tunables().RestLength)
		}
	}
}
