// Package explode moves mesh nodes radially away from the model center.
//
// Every frame each mesh follows its exploded target, rest + dir(rest) * amount,
// by a fraction of the remaining distance. The follow never overshoots and
// converges back to the rest pose when the amount returns to zero.
package explode

import (
	gomath "math"
	"time"

	"github.com/Faultbox/explode-viewer/internal/scene"
	"github.com/Faultbox/explode-viewer/pkg/math"
)

// Mode selects how the per-frame follow factor is derived.
type Mode int

const (
	// ModeTime derives the factor from elapsed time so convergence speed is
	// independent of frame rate.
	ModeTime Mode = iota
	// ModeFixed applies the damping factor once per Tick regardless of dt.
	ModeFixed
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	default:
		return "time"
	}
}

// ParseMode converts a config name to a Mode. Unknown names select ModeTime.
func ParseMode(s string) Mode {
	if s == "fixed" {
		return ModeFixed
	}
	return ModeTime
}

const (
	// DefaultDamping is the fraction of the remaining distance covered per frame.
	DefaultDamping = 0.1
	// ReferenceRate is the frame rate at which ModeTime equals ModeFixed.
	ReferenceRate = 60.0
	// MaxAmount is the largest explode amount the controls offer.
	MaxAmount = 5.0
)

// Animator drives mesh positions toward their exploded targets.
type Animator struct {
	mode    Mode
	damping float32
	rate    float64 // decay constant k for ModeTime, per second
}

// NewAnimator creates an animator. damping is the fraction covered per
// 60 Hz frame and must be in (0, 1].
func NewAnimator(mode Mode, damping float32) *Animator {
	if damping <= 0 || damping > 1 {
		damping = DefaultDamping
	}
	a := &Animator{mode: mode, damping: damping}
	if damping < 1 {
		a.rate = -gomath.Log(1-float64(damping)) * ReferenceRate
	} else {
		a.rate = gomath.Inf(1)
	}
	return a
}

// Mode returns the animator's damping mode.
func (a *Animator) Mode() Mode {
	return a.mode
}

// Factor returns the follow fraction for a frame that took dt.
func (a *Animator) Factor(dt time.Duration) float32 {
	if a.mode == ModeFixed {
		return a.damping
	}
	if dt <= 0 {
		return 0
	}
	f := 1 - gomath.Exp(-a.rate*dt.Seconds())
	if f > 1 {
		f = 1
	}
	return float32(f)
}

// Target returns where a mesh resting at rest sits for the given amount.
// A mesh at the origin has no direction and never moves.
func Target(rest math.Vec3, amount float32) math.Vec3 {
	return rest.Add(rest.Normalize().Scale(amount))
}

// Tick advances every mesh of s one frame toward its target and returns how
// many meshes were updated. Only meshes with a rest position in s are
// touched. amount is assumed to be pre-validated by the caller.
func (a *Animator) Tick(s *scene.Scene, amount float32, dt time.Duration) int {
	if s == nil {
		return 0
	}
	pose := s.RestPose()
	if pose.Len() == 0 {
		return 0
	}

	f := a.Factor(dt)
	n := 0
	for _, m := range s.Meshes() {
		rest, ok := pose.Get(m.ID)
		if !ok {
			continue
		}
		m.SetPosition(m.Position().Lerp(Target(rest, amount), f))
		n++
	}
	return n
}
