package suspension

import (
	"fmt"

	"github.com/lixenwraith/tracksim/parameter"
)

// Tunables holds the vehicle suspension constants, loaded once and
// read-only for the simulation's lifetime
type Tunables struct {
	RestLength     float64
	SpringConstant float64
	DamperConstant float64
	MaxSpringForce float64
	MaxDamperForce float64

	// ForwardFriction and SideFriction are acceleration-mode coefficients
	ForwardFriction float64
	SideFriction    float64

	TrackWidth   float64
	RollerRadius float64

	GroundMask uint32

	// VisualSmoothing is the exponential approach rate of the render-tick
	// wheel lift, per second
	VisualSmoothing float64
}

// DefaultTunables returns the reference hull tuning
func DefaultTunables() Tunables {
	return Tunables{
		RestLength:      parameter.RestLength,
		SpringConstant:  parameter.SpringConstant,
		DamperConstant:  parameter.DamperConstant,
		MaxSpringForce:  parameter.MaxSpringForce,
		MaxDamperForce:  parameter.MaxDamperForce,
		ForwardFriction: parameter.ForwardFriction,
		SideFriction:    parameter.SideFriction,
		TrackWidth:      parameter.TrackWidth,
		RollerRadius:    parameter.RollerRadius,
		GroundMask:      parameter.GroundMask,
		VisualSmoothing: parameter.VisualSmoothing,
	}
}

// Validate rejects tunings the solver cannot run with
func (t Tunables) Validate() error {
	if t.RestLength <= 0 {
		return fmt.Errorf("suspension: rest length must be positive, got %v", t.RestLength)
	}
	if t.SpringConstant < 0 || t.DamperConstant < 0 {
		return fmt.Errorf("suspension: negative spring/damper constants")
	}
	if t.MaxSpringForce <= 0 || t.MaxDamperForce <= 0 {
		return fmt.Errorf("suspension: force clamps must be positive")
	}
	return nil
}
