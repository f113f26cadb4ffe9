package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tracksim/parameter"
	"github.com/lixenwraith/tracksim/suspension"
	"github.com/lixenwraith/tracksim/vmath"
)

// Config is the static structured input of one simulation: vehicle layout,
// tunables, and world settings. Loaded once, read-only afterwards
type Config struct {
	Vehicle Vehicle `yaml:"vehicle"`
	World   World   `yaml:"world"`
}

// Vehicle describes the hull, its suspension points, and tunables
type Vehicle struct {
	Mass        float64  `yaml:"mass"`
	HalfExtents Vec3     `yaml:"half_extents"`
	Suspension  Tuning   `yaml:"suspension"`
	Points      []Point  `yaml:"points"`
	Rollers     []Roller `yaml:"rollers"`
}

// Tuning mirrors suspension.Tunables in file form
type Tuning struct {
	RestLength      float64 `yaml:"rest_length"`
	Spring          float64 `yaml:"spring"`
	Damper          float64 `yaml:"damper"`
	MaxSpringForce  float64 `yaml:"max_spring_force"`
	MaxDamperForce  float64 `yaml:"max_damper_force"`
	ForwardFriction float64 `yaml:"forward_friction"`
	SideFriction    float64 `yaml:"side_friction"`
	TrackWidth      float64 `yaml:"track_width"`
	RollerRadius    float64 `yaml:"roller_radius"`
	GroundMask      uint32  `yaml:"ground_mask"`
	VisualSmoothing float64 `yaml:"visual_smoothing"`
}

// Point is one wheel station
type Point struct {
	Anchor      Vec3    `yaml:"anchor"`
	WheelRadius float64 `yaml:"wheel_radius"`
	Static      bool    `yaml:"static"`
}

// Roller is one passive return roller
type Roller struct {
	Offset Vec3    `yaml:"offset"`
	Radius float64 `yaml:"radius"`
}

// World holds terrain and integration settings
type World struct {
	Gravity           float64 `yaml:"gravity"`
	TerrainAmplitude  float64 `yaml:"terrain_amplitude"`
	TerrainWavelength float64 `yaml:"terrain_wavelength"`
	FixedStep         float64 `yaml:"fixed_step"`
}

// Vec3 is a YAML-friendly vector
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// V returns the vmath form
func (v Vec3) V() vmath.Vec3 {
	return vmath.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Load decodes a YAML config from a reader and validates it
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile loads a YAML config from disk
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate fails fast on configurations the simulation cannot run with
func (c *Config) Validate() error {
	if c.Vehicle.Mass <= 0 {
		return fmt.Errorf("config: vehicle mass must be positive, got %v", c.Vehicle.Mass)
	}
	if len(c.Vehicle.Points) == 0 {
		return fmt.Errorf("config: vehicle needs at least one suspension point")
	}
	if c.World.FixedStep <= 0 {
		return fmt.Errorf("config: fixed step must be positive, got %v", c.World.FixedStep)
	}
	return c.Tunables().Validate()
}

// Tunables converts the file tuning to the runtime form
func (c *Config) Tunables() suspension.Tunables {
	t := c.Vehicle.Suspension
	return suspension.Tunables{
		RestLength:      t.RestLength,
		SpringConstant:  t.Spring,
		DamperConstant:  t.Damper,
		MaxSpringForce:  t.MaxSpringForce,
		MaxDamperForce:  t.MaxDamperForce,
		ForwardFriction: t.ForwardFriction,
		SideFriction:    t.SideFriction,
		TrackWidth:      t.TrackWidth,
		RollerRadius:    t.RollerRadius,
		GroundMask:      t.GroundMask,
		VisualSmoothing: t.VisualSmoothing,
	}
}

// PointConfigs converts the point list to the runtime form
func (c *Config) PointConfigs() []suspension.PointConfig {
	out := make([]suspension.PointConfig, len(c.Vehicle.Points))
	for i, p := range c.Vehicle.Points {
		out[i] = suspension.PointConfig{
			Anchor:      p.Anchor.V(),
			WheelRadius: p.WheelRadius,
			Static:      p.Static,
		}
	}
	return out
}

// RollerConfigs converts the roller list to the runtime form
func (c *Config) RollerConfigs() []suspension.RollerConfig {
	out := make([]suspension.RollerConfig, len(c.Vehicle.Rollers))
	for i, r := range c.Vehicle.Rollers {
		out[i] = suspension.RollerConfig{Offset: r.Offset.V(), Radius: r.Radius}
	}
	return out
}

// Default returns the reference hull: five road wheels per side, a static
// sprocket station per side, and two return rollers per side
func Default() Config {
	c := Config{
		Vehicle: Vehicle{
			Mass:        parameter.HullMass,
			HalfExtents: Vec3{X: parameter.HullHalfX, Y: parameter.HullHalfY, Z: parameter.HullHalfZ},
			Suspension: Tuning{
				RestLength:      parameter.RestLength,
				Spring:          parameter.SpringConstant,
				Damper:          parameter.DamperConstant,
				MaxSpringForce:  parameter.MaxSpringForce,
				MaxDamperForce:  parameter.MaxDamperForce,
				ForwardFriction: parameter.ForwardFriction,
				SideFriction:    parameter.SideFriction,
				TrackWidth:      parameter.TrackWidth,
				RollerRadius:    parameter.RollerRadius,
				GroundMask:      parameter.GroundMask,
				VisualSmoothing: parameter.VisualSmoothing,
			},
		},
		World: World{
			Gravity:           parameter.Gravity,
			TerrainAmplitude:  0.5,
			TerrainWavelength: 12.0,
			FixedStep:         0.02,
		},
	}

	const roadWheels = 5
	for _, side := range []float64{-1, 1} {
		x := side * parameter.HullHalfX
		for i := 0; i < roadWheels; i++ {
			z := -parameter.HullHalfZ + 0.8 + float64(i)*(2*parameter.HullHalfZ-1.6)/(roadWheels-1)
			c.Vehicle.Points = append(c.Vehicle.Points, Point{
				Anchor:      Vec3{X: x, Y: -parameter.HullHalfY, Z: z},
				WheelRadius: parameter.WheelRadius,
			})
		}
		// Drive sprocket and rear idler stations: physics-active,
		// visually fixed
		for _, z := range []float64{parameter.HullHalfZ - 0.3, -(parameter.HullHalfZ - 0.3)} {
			c.Vehicle.Points = append(c.Vehicle.Points, Point{
				Anchor:      Vec3{X: x, Y: -parameter.HullHalfY, Z: z},
				WheelRadius: parameter.WheelRadius,
				Static:      true,
			})
		}
		for _, z := range []float64{-1.0, 1.0} {
			c.Vehicle.Rollers = append(c.Vehicle.Rollers, Roller{
				Offset: Vec3{X: x, Y: parameter.HullHalfY * 0.5, Z: z},
				Radius: parameter.RollerRadius,
			})
		}
	}
	return c
}
