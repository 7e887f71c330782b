package viewer

import (
	"errors"
	"testing"

	"github.com/Faultbox/explode-viewer/internal/asset"
	"github.com/Faultbox/explode-viewer/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(config.Default().Viewer)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func TestNewStore_FromConfig(t *testing.T) {
	cfg := config.Default().Viewer
	cfg.Environment = "night"
	cfg.ExplodeAmount = 1.5
	cfg.Wireframe = true

	s, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	p := s.Params()
	if p.Environment != EnvNight {
		t.Errorf("environment = %v", p.Environment)
	}
	if p.ExplodeAmount != 1.5 {
		t.Errorf("explode = %v", p.ExplodeAmount)
	}
	if !p.Wireframe || !p.ShowGrid {
		t.Errorf("flags = %+v", p)
	}
	if p.ActiveModel != asset.Handle(cfg.DefaultModel) {
		t.Errorf("active model = %q", p.ActiveModel)
	}
}

func TestNewStore_Invalid(t *testing.T) {
	cfg := config.Default().Viewer
	cfg.Environment = "noon"
	if _, err := NewStore(cfg); err == nil {
		t.Error("expected error for unknown environment")
	}

	cfg = config.Default().Viewer
	cfg.ExplodeAmount = 9
	if _, err := NewStore(cfg); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestSetExplodeAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      float32
		want    float32
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"max", 5, 5, false},
		{"snaps down", 1.23, 1.2, false},
		{"snaps up", 2.06, 2.1, false},
		{"negative", -0.1, 0, true},
		{"above max", 5.5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			err := s.SetExplodeAmount(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Errorf("expected ErrOutOfRange, got %v", err)
				}
				if s.ExplodeAmount() != 0 {
					t.Errorf("rejected value should leave amount unchanged, got %v", s.ExplodeAmount())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d := s.ExplodeAmount() - tt.want; d > 1e-5 || d < -1e-5 {
				t.Errorf("amount = %v, want %v", s.ExplodeAmount(), tt.want)
			}
		})
	}
}

func TestStepExplode_Clamps(t *testing.T) {
	s := newTestStore(t)

	if v := s.StepExplode(-1); v != 0 {
		t.Errorf("stepping below zero = %v", v)
	}
	for i := 0; i < 100; i++ {
		s.StepExplode(1)
	}
	if v := s.ExplodeAmount(); v != MaxExplode {
		t.Errorf("stepping past max = %v", v)
	}
	if v := s.StepExplode(-3); v < 4.69 || v > 4.71 {
		t.Errorf("three steps down from max = %v, want 4.7", v)
	}
}

func TestFlags(t *testing.T) {
	s := newTestStore(t)

	s.SetWireframe(true)
	s.SetShowGrid(false)
	s.SetShowBounds(true)
	s.SetShowStats(true)
	s.SetEnvironment(EnvNight)
	s.SetActiveModel("local:1/pump.glb")

	p := s.Params()
	if !p.Wireframe || p.ShowGrid || !p.ShowBounds || !p.ShowStats {
		t.Errorf("flags = %+v", p)
	}
	if p.Environment != EnvNight || p.ActiveModel != "local:1/pump.glb" {
		t.Errorf("params = %+v", p)
	}

	// Params is a snapshot.
	s.SetWireframe(false)
	if !p.Wireframe {
		t.Error("snapshot changed after a setter")
	}
}

func TestCameraReset_EdgeTriggered(t *testing.T) {
	s := newTestStore(t)

	if s.TakeCameraReset() {
		t.Error("no reset requested yet")
	}
	s.RequestCameraReset()
	s.RequestCameraReset()
	if !s.TakeCameraReset() {
		t.Error("expected pending reset")
	}
	if s.TakeCameraReset() {
		t.Error("reset should be consumed")
	}
}

func TestEnvironment(t *testing.T) {
	for _, name := range []string{"sunset", "night"} {
		e, err := ParseEnvironment(name)
		if err != nil {
			t.Fatalf("ParseEnvironment(%q): %v", name, err)
		}
		if e.String() != name {
			t.Errorf("round trip %q -> %q", name, e.String())
		}
	}
	if EnvSunset.Next() != EnvNight || EnvNight.Next() != EnvSunset {
		t.Error("Next should cycle through presets")
	}
}
