package config

import (
	"fmt"
	"math"
	"os"

	"github.com/emirelesg/ackersim/internal/vehicle"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWheelbase    = 3.0
	DefaultTrackWidth   = 2.0
	DefaultMaxSteerDeg  = 45.0
	DefaultSteerStepDeg = 5.0
	DefaultSpeed        = 3.0
	DefaultMaxSpeed     = 5.0
	DefaultSpeedStep    = 0.5
	DefaultDt           = 0.1
	DefaultDuration     = 10.0
	DefaultFPS          = 30
)

// Config is the full simulation configuration. Angles are in degrees at
// this surface; the accessors convert to radians for the core.
type Config struct {
	Vehicle   VehicleConfig  `yaml:"vehicle"`
	Steering  SteeringConfig `yaml:"steering"`
	Speed     SpeedConfig    `yaml:"speed"`
	Reference string         `yaml:"reference"`
	Dt        float64        `yaml:"dt"`
	Duration  float64        `yaml:"duration"`
	FPS       int            `yaml:"fps"`
}

type VehicleConfig struct {
	Wheelbase  float64 `yaml:"wheelbase"`
	TrackWidth float64 `yaml:"track_width"`
}

type SteeringConfig struct {
	MaxDeg        float64 `yaml:"max_deg"`
	StepDeg       float64 `yaml:"step_deg"`
	Centering     bool    `yaml:"centering"`
	CenteringRate float64 `yaml:"centering_rate"` // deg/s
}

type SpeedConfig struct {
	Initial float64 `yaml:"initial"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Step    float64 `yaml:"step"`
}

func DefaultConfig() *Config {
	return &Config{
		Vehicle: VehicleConfig{
			Wheelbase:  DefaultWheelbase,
			TrackWidth: DefaultTrackWidth,
		},
		Steering: SteeringConfig{
			MaxDeg:  DefaultMaxSteerDeg,
			StepDeg: DefaultSteerStepDeg,
		},
		Speed: SpeedConfig{
			Initial: DefaultSpeed,
			Min:     0,
			Max:     DefaultMaxSpeed,
			Step:    DefaultSpeedStep,
		},
		Reference: "rear_axle",
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		FPS:       DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Vehicle.Wheelbase <= 0 {
		return fmt.Errorf("vehicle.wheelbase must be positive, got %f", c.Vehicle.Wheelbase)
	}
	if c.Vehicle.TrackWidth <= 0 {
		return fmt.Errorf("vehicle.track_width must be positive, got %f", c.Vehicle.TrackWidth)
	}
	if c.Steering.MaxDeg <= 0 || c.Steering.MaxDeg >= 90 {
		return fmt.Errorf("steering.max_deg must be in (0, 90), got %f", c.Steering.MaxDeg)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Reference != "" && c.Reference != "rear_axle" && c.Reference != "center_mass" {
		return fmt.Errorf("unknown reference: %s", c.Reference)
	}
	return nil
}

// GetGeometry builds the vehicle geometry from the config.
func (c *Config) GetGeometry() (vehicle.Geometry, error) {
	return vehicle.NewGeometry(c.Vehicle.Wheelbase, c.Vehicle.TrackWidth)
}

// GetLimits converts the steering bound to radians and bundles the speed
// range.
func (c *Config) GetLimits() vehicle.Limits {
	return vehicle.Limits{
		MaxSteer: c.Steering.MaxDeg * math.Pi / 180,
		MinSpeed: c.Speed.Min,
		MaxSpeed: c.Speed.Max,
	}
}

// GetReference maps the reference name to the model variant; rear_axle is
// the default.
func (c *Config) GetReference() vehicle.Reference {
	if c.Reference == "center_mass" {
		return vehicle.ReferenceCenterMass
	}
	return vehicle.ReferenceRearAxle
}

// SteerStep returns the per-command steering increment in radians.
func (c *Config) SteerStep() float64 {
	return c.Steering.StepDeg * math.Pi / 180
}

// CenteringRate returns the auto-centering rate in rad/s, or zero when
// centering is disabled.
func (c *Config) CenteringRate() float64 {
	if !c.Steering.Centering {
		return 0
	}
	return c.Steering.CenteringRate * math.Pi / 180
}
