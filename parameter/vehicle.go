package parameter

// Suspension strut constants, reference hull tuning at a 50 Hz fixed step
const (
	RestLength     = 0.6
	SpringConstant = 20000.0
	DamperConstant = 3000.0
	MaxSpringForce = 10000.0
	MaxDamperForce = 5000.0
)

// Traction and friction
const (
	// ForwardFriction scales the slip-limited braking friction
	ForwardFriction = 2.0
	// SideFriction scales the linear cornering resistance
	SideFriction = 3.0
	// SlipVelocityScale shapes the slip curve: slip = 1/(SlipVelocityScale*|v|)
	SlipVelocityScale = 5.0
	// SlipFloor keeps slip bounded above zero at high speed
	SlipFloor = 0.001
)

// Hull geometry
const (
	TrackWidth   = 0.4
	WheelRadius  = 0.25
	RollerRadius = 0.1
)

// Collision
const (
	// GroundMask is the default terrain collision layer
	GroundMask uint32 = 1
)

// Presentation
const (
	// VisualSmoothing is the wheel lift approach rate per second
	VisualSmoothing = 12.0
)

// Rigid body defaults for the demo hull
const (
	HullMass   = 8000.0
	HullHalfX  = 1.6 // half width
	HullHalfY  = 0.5 // half height
	HullHalfZ  = 3.2 // half length
	Gravity    = 9.81
	DriveAccel = 6.0 // requested acceleration at full throttle, m/s^2
)
