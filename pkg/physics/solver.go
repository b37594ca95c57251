// Package physics settles rigid clusters of circles around an attractor.
//
// A [Solver] receives one [Body] per cluster. Each body is rigid and carries
// one circular fixture per member; a zero-length spring pulls the body
// towards a fixed anchor while fixtures of different bodies collide. The
// solver reports where every fixture centre ended up.
//
// [Box2D] is the default solver. Tests and callers that need a different
// engine can supply their own implementation.
package physics

import (
	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/geom"
)

// Fixture is one collision circle of a body, in world coordinates.
type Fixture struct {
	ID     int       // Caller payload, typically a node ID
	Center geom.Vec2 // Initial world position
	Radius float64   // Collision radius
}

// Body is a rigid group of fixtures. Origin is the point the spring pulls
// on; fixtures keep their offsets relative to it.
type Body struct {
	Origin   geom.Vec2
	Fixtures []Fixture
}

// Settled is the final world position of one fixture.
type Settled struct {
	ID     int
	Center geom.Vec2
}

// Solver settles bodies around an anchor. Results are returned for every
// fixture of every body, bodies and fixtures in input order.
type Solver interface {
	Settle(anchor geom.Vec2, bodies []Body) ([]Settled, error)
}

// Config holds the simulation parameters.
type Config struct {
	TimeStep           float64 `json:"time_step" toml:"time_step"`
	Steps              int     `json:"steps" toml:"steps"`
	VelocityIterations int     `json:"velocity_iterations" toml:"velocity_iterations"`
	PositionIterations int     `json:"position_iterations" toml:"position_iterations"`
	Density            float64 `json:"density" toml:"density"`
	Friction           float64 `json:"friction" toml:"friction"`
	FrequencyHz        float64 `json:"frequency_hz" toml:"frequency_hz"`
	DampingRatio       float64 `json:"damping_ratio" toml:"damping_ratio"`

	// SettleThreshold stops the simulation early once no body moved more
	// than this distance per step for SettleSteps consecutive steps.
	// Zero always runs the full Steps budget.
	SettleThreshold float64 `json:"settle_threshold,omitempty" toml:"settle_threshold"`
	SettleSteps     int     `json:"settle_steps,omitempty" toml:"settle_steps"`
}

// Default simulation parameters.
const (
	DefaultTimeStep           = 1.0 / 60.0
	DefaultSteps              = 1000
	DefaultVelocityIterations = 6
	DefaultPositionIterations = 2
	DefaultDensity            = 1.0
	DefaultFriction           = 0.00001
	DefaultFrequencyHz        = 0.9
	DefaultDampingRatio       = 0.001
	DefaultSettleSteps        = 30
)

// DefaultConfig returns the standard simulation parameters.
func DefaultConfig() Config {
	return Config{
		TimeStep:           DefaultTimeStep,
		Steps:              DefaultSteps,
		VelocityIterations: DefaultVelocityIterations,
		PositionIterations: DefaultPositionIterations,
		Density:            DefaultDensity,
		Friction:           DefaultFriction,
		FrequencyHz:        DefaultFrequencyHz,
		DampingRatio:       DefaultDampingRatio,
	}
}

// SetDefaults fills zero fields with their defaults.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.TimeStep == 0 {
		c.TimeStep = d.TimeStep
	}
	if c.Steps == 0 {
		c.Steps = d.Steps
	}
	if c.VelocityIterations == 0 {
		c.VelocityIterations = d.VelocityIterations
	}
	if c.PositionIterations == 0 {
		c.PositionIterations = d.PositionIterations
	}
	if c.Density == 0 {
		c.Density = d.Density
	}
	if c.Friction == 0 {
		c.Friction = d.Friction
	}
	if c.FrequencyHz == 0 {
		c.FrequencyHz = d.FrequencyHz
	}
	if c.DampingRatio == 0 {
		c.DampingRatio = d.DampingRatio
	}
	if c.SettleThreshold > 0 && c.SettleSteps == 0 {
		c.SettleSteps = DefaultSettleSteps
	}
}

// Validate rejects parameters the simulation cannot run with.
func (c Config) Validate() error {
	if err := errors.ValidatePositive("time_step", c.TimeStep); err != nil {
		return err
	}
	if c.Steps <= 0 || c.VelocityIterations <= 0 || c.PositionIterations <= 0 {
		return errors.New(errors.ErrCodeInvalidOption, "steps and iteration counts must be positive")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"density", c.Density},
		{"friction", c.Friction},
		{"frequency_hz", c.FrequencyHz},
		{"damping_ratio", c.DampingRatio},
		{"settle_threshold", c.SettleThreshold},
	} {
		if err := errors.ValidateNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}
