// Package viewer holds the user-adjustable viewer parameters.
package viewer

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/explode-viewer/internal/asset"
	"github.com/Faultbox/explode-viewer/internal/config"
)

// Explode amount limits.
const (
	MaxExplode  float32 = 5
	ExplodeStep float32 = 0.1
)

// ErrOutOfRange is returned for an explode amount outside [0, MaxExplode].
var ErrOutOfRange = errors.New("explode amount out of range")

// Environment is a lighting preset.
type Environment int

const (
	EnvSunset Environment = iota
	EnvNight
)

var environmentNames = [...]string{
	EnvSunset: "sunset",
	EnvNight:  "night",
}

// String returns the preset name.
func (e Environment) String() string {
	if e < 0 || int(e) >= len(environmentNames) {
		return fmt.Sprintf("Environment(%d)", int(e))
	}
	return environmentNames[e]
}

// Next returns the preset that follows e, wrapping around.
func (e Environment) Next() Environment {
	return (e + 1) % Environment(len(environmentNames))
}

// ParseEnvironment maps a preset name to its Environment.
func ParseEnvironment(s string) (Environment, error) {
	for i, name := range environmentNames {
		if name == s {
			return Environment(i), nil
		}
	}
	return EnvSunset, fmt.Errorf("unknown environment %q", s)
}

// Params is a snapshot of every viewer parameter.
type Params struct {
	ExplodeAmount float32
	Wireframe     bool
	ShowGrid      bool
	ShowBounds    bool
	ShowStats     bool
	Environment   Environment
	ActiveModel   asset.Handle
}

// Store is the single source of truth for viewer parameters. It is owned
// by the render loop and is not safe for concurrent use.
type Store struct {
	p           Params
	cameraReset bool
}

// NewStore creates a store seeded from configuration.
func NewStore(cfg config.ViewerConfig) (*Store, error) {
	env, err := ParseEnvironment(cfg.Environment)
	if err != nil {
		return nil, err
	}
	s := &Store{p: Params{
		Wireframe:   cfg.Wireframe,
		ShowGrid:    cfg.ShowGrid,
		ShowBounds:  cfg.ShowBounds,
		ShowStats:   cfg.ShowStats,
		Environment: env,
		ActiveModel: asset.Handle(cfg.DefaultModel),
	}}
	if err := s.SetExplodeAmount(cfg.ExplodeAmount); err != nil {
		return nil, err
	}
	return s, nil
}

// Params returns a copy of the current parameters.
func (s *Store) Params() Params {
	return s.p
}

// ExplodeAmount returns the current explode amount.
func (s *Store) ExplodeAmount() float32 {
	return s.p.ExplodeAmount
}

// SetExplodeAmount sets the explode amount, snapped to ExplodeStep.
func (s *Store) SetExplodeAmount(v float32) error {
	if math.IsNaN(float64(v)) || v < 0 || v > MaxExplode {
		return fmt.Errorf("%w: %v", ErrOutOfRange, v)
	}
	s.p.ExplodeAmount = snap(v)
	return nil
}

// StepExplode moves the explode amount by n steps, clamped to the valid range.
func (s *Store) StepExplode(n int) float32 {
	v := s.p.ExplodeAmount + float32(n)*ExplodeStep
	if v < 0 {
		v = 0
	}
	if v > MaxExplode {
		v = MaxExplode
	}
	s.p.ExplodeAmount = snap(v)
	return s.p.ExplodeAmount
}

func snap(v float32) float32 {
	return float32(math.Round(float64(v/ExplodeStep))) * ExplodeStep
}

// Wireframe reports whether meshes draw as lines.
func (s *Store) Wireframe() bool { return s.p.Wireframe }

// SetWireframe toggles line rendering.
func (s *Store) SetWireframe(v bool) { s.p.Wireframe = v }

// ShowGrid reports whether the ground grid is drawn.
func (s *Store) ShowGrid() bool { return s.p.ShowGrid }

// SetShowGrid toggles the ground grid.
func (s *Store) SetShowGrid(v bool) { s.p.ShowGrid = v }

// ShowBounds reports whether per-mesh bounding boxes are drawn.
func (s *Store) ShowBounds() bool { return s.p.ShowBounds }

// SetShowBounds toggles bounding boxes.
func (s *Store) SetShowBounds(v bool) { s.p.ShowBounds = v }

// ShowStats reports whether frame statistics go to the status line.
func (s *Store) ShowStats() bool { return s.p.ShowStats }

// SetShowStats toggles frame statistics.
func (s *Store) SetShowStats(v bool) { s.p.ShowStats = v }

// Environment returns the active lighting preset.
func (s *Store) Environment() Environment { return s.p.Environment }

// SetEnvironment selects a lighting preset.
func (s *Store) SetEnvironment(e Environment) { s.p.Environment = e }

// ActiveModel returns the handle of the model the user asked for.
func (s *Store) ActiveModel() asset.Handle {
	return s.p.ActiveModel
}

// SetActiveModel records a new model request.
func (s *Store) SetActiveModel(h asset.Handle) {
	s.p.ActiveModel = h
}

// RequestCameraReset asks the host to reset the camera on its next frame.
func (s *Store) RequestCameraReset() {
	s.cameraReset = true
}

// TakeCameraReset reports whether a reset was requested since the last call.
func (s *Store) TakeCameraReset() bool {
	r := s.cameraReset
	s.cameraReset = false
	return r
}
