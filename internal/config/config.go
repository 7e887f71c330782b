// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Animation AnimationConfig `yaml:"animation"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ViewerConfig holds the initial viewer parameters.
type ViewerConfig struct {
	DefaultModel  string  `yaml:"default_model"` // Bundled asset shown at startup
	ExplodeAmount float32 `yaml:"explode_amount"`
	Wireframe     bool    `yaml:"wireframe"`
	ShowGrid      bool    `yaml:"show_grid"`
	ShowBounds    bool    `yaml:"show_bounds"`
	ShowStats     bool    `yaml:"show_stats"`
	Environment   string  `yaml:"environment"` // sunset or night
}

// AnimationConfig holds explode animation settings.
type AnimationConfig struct {
	Mode    string  `yaml:"mode"`    // time or fixed
	Damping float32 `yaml:"damping"` // Fraction of remaining distance per 60 Hz frame
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Explode Viewer",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Viewer: ViewerConfig{
			DefaultModel:  "assets/model.glb",
			ExplodeAmount: 0,
			Wireframe:     false,
			ShowGrid:      true,
			ShowBounds:    false,
			ShowStats:     false,
			Environment:   "sunset",
		},
		Animation: AnimationConfig{
			Mode:    "time",
			Damping: 0.1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
