package config

// Presets are named vehicle setups. "classic" is the historical default:
// 3 m wheelbase, center-of-mass model, 3 m/s starting speed, 10 Hz loop.
var Presets = map[string]*Config{
	"classic": {
		Vehicle:   VehicleConfig{Wheelbase: 3.0, TrackWidth: 2.0},
		Steering:  SteeringConfig{MaxDeg: 45, StepDeg: 5},
		Speed:     SpeedConfig{Initial: 3.0, Min: 0, Max: 5.0, Step: 0.5},
		Reference: "center_mass",
		Dt:        0.1,
		Duration:  10.0,
		FPS:       10,
	},
	"hatchback": {
		Vehicle:   VehicleConfig{Wheelbase: 2.5, TrackWidth: 1.5},
		Steering:  SteeringConfig{MaxDeg: 35, StepDeg: 2.5},
		Speed:     SpeedConfig{Initial: 2.0, Min: 0, Max: 8.0, Step: 0.5},
		Reference: "rear_axle",
		Dt:        0.05,
		Duration:  20.0,
		FPS:       30,
	},
	"bus": {
		Vehicle:   VehicleConfig{Wheelbase: 6.0, TrackWidth: 2.5},
		Steering:  SteeringConfig{MaxDeg: 40, StepDeg: 2},
		Speed:     SpeedConfig{Initial: 1.5, Min: 0, Max: 4.0, Step: 0.25},
		Reference: "rear_axle",
		Dt:        0.05,
		Duration:  30.0,
		FPS:       30,
	},
	"kart": {
		Vehicle:   VehicleConfig{Wheelbase: 1.0, TrackWidth: 0.9},
		Steering:  SteeringConfig{MaxDeg: 30, StepDeg: 5, Centering: true, CenteringRate: 20},
		Speed:     SpeedConfig{Initial: 3.0, Min: 0, Max: 10.0, Step: 1.0},
		Reference: "rear_axle",
		Dt:        0.02,
		Duration:  15.0,
		FPS:       60,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
