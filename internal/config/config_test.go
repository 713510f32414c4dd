package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/emirelesg/ackersim/internal/vehicle"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Reference != "rear_axle" {
		t.Errorf("expected rear_axle default, got %s", cfg.Reference)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero wheelbase", func(c *Config) { c.Vehicle.Wheelbase = 0 }},
		{"negative track", func(c *Config) { c.Vehicle.TrackWidth = -1 }},
		{"steering at 90", func(c *Config) { c.Steering.MaxDeg = 90 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"bad reference", func(c *Config) { c.Reference = "front_axle" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Vehicle.Wheelbase = 4.2
	cfg.Steering.Centering = true
	cfg.Steering.CenteringRate = 15
	cfg.Reference = "center_mass"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Vehicle.Wheelbase != 4.2 {
		t.Errorf("wheelbase not preserved: %f", loaded.Vehicle.Wheelbase)
	}
	if !loaded.Steering.Centering {
		t.Error("centering flag not preserved")
	}
	if loaded.GetReference() != vehicle.ReferenceCenterMass {
		t.Errorf("reference not preserved: %v", loaded.GetReference())
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte("vehicle:\n  wheelbase: 5.5\n  track_width: 2.2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Vehicle.Wheelbase != 5.5 {
		t.Errorf("wheelbase not loaded: %f", cfg.Vehicle.Wheelbase)
	}
	if cfg.Steering.MaxDeg != DefaultMaxSteerDeg {
		t.Errorf("unset field did not keep default: %f", cfg.Steering.MaxDeg)
	}
}

func TestGetLimits(t *testing.T) {
	cfg := DefaultConfig()
	limits := cfg.GetLimits()

	want := DefaultMaxSteerDeg * math.Pi / 180
	if math.Abs(limits.MaxSteer-want) > 1e-12 {
		t.Errorf("max steer: got %f, want %f", limits.MaxSteer, want)
	}
	if limits.MaxSteer >= math.Pi/2 {
		t.Error("max steer must stay below pi/2")
	}
}

func TestCenteringRate(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.CenteringRate() != 0 {
		t.Error("centering should be off by default")
	}

	cfg.Steering.Centering = true
	cfg.Steering.CenteringRate = 180
	if math.Abs(cfg.CenteringRate()-math.Pi) > 1e-12 {
		t.Errorf("expected pi rad/s, got %f", cfg.CenteringRate())
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Reference != "center_mass" {
		t.Errorf("classic preset should use center_mass, got %s", cfg.Reference)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestAllPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
