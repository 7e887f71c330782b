package lighting

import (
	"github.com/Faultbox/explode-viewer/internal/viewer"
)

// Environment is a complete lighting setup for one preset.
type Environment struct {
	Name string

	SunLongitude float32 // degrees
	SunLatitude  float32 // degrees
	SunColor     [3]float32
	Ambient      [3]float32
	Sky          [3]float32 // clear color
	Grid         [3]float32

	// Point lights in model-relative units: positions are scaled by the
	// model radius and offset by its center when placed.
	Lamps []PointLight
}

// SunDir returns the direction towards the sun.
func (e Environment) SunDir() [3]float32 {
	return SunDirection(e.SunLongitude, e.SunLatitude)
}

var (
	sunset = Environment{
		Name:         "sunset",
		SunLongitude: 225,
		SunLatitude:  12,
		SunColor:     [3]float32{1.0, 0.72, 0.45},
		Ambient:      [3]float32{0.32, 0.26, 0.28},
		Sky:          [3]float32{0.42, 0.30, 0.32},
		Grid:         [3]float32{0.62, 0.50, 0.48},
		Lamps: []PointLight{
			{Position: [3]float32{-2, 1.5, 2}, Color: [3]float32{0.45, 0.5, 0.7}, Range: 6, Intensity: 0.6},
		},
	}

	night = Environment{
		Name:         "night",
		SunLongitude: 60,
		SunLatitude:  55,
		SunColor:     [3]float32{0.35, 0.42, 0.6},
		Ambient:      [3]float32{0.08, 0.09, 0.14},
		Sky:          [3]float32{0.03, 0.04, 0.08},
		Grid:         [3]float32{0.22, 0.26, 0.36},
		Lamps: []PointLight{
			{Position: [3]float32{1.5, 2, 1.5}, Color: [3]float32{1.0, 0.85, 0.6}, Range: 5, Intensity: 1.2},
			{Position: [3]float32{-2, 0.5, -1.5}, Color: [3]float32{0.4, 0.55, 1.0}, Range: 5, Intensity: 0.7},
		},
	}
)

// ForEnvironment returns the lighting for a viewer preset.
func ForEnvironment(env viewer.Environment) Environment {
	switch env {
	case viewer.EnvNight:
		return night
	default:
		return sunset
	}
}
