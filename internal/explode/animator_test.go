package explode

import (
	"testing"
	"time"

	"github.com/Faultbox/explode-viewer/internal/scene"
	"github.com/Faultbox/explode-viewer/pkg/math"
)

const frame = time.Second / 60

// meshScene builds a scene with one mesh per rest position.
func meshScene(name string, rests ...math.Vec3) *scene.Scene {
	s := scene.New(name)
	for i, r := range rests {
		n := s.AddNode(name+string(rune('a'+i)), scene.NoParent, r)
		s.AttachMesh(n, &scene.Primitive{Positions: [][3]float32{{0, 0, 0}}})
	}
	return s
}

func tickN(a *Animator, s *scene.Scene, amount float32, dt time.Duration, n int) {
	for i := 0; i < n; i++ {
		a.Tick(s, amount, dt)
	}
}

func TestTarget(t *testing.T) {
	tests := []struct {
		name   string
		rest   math.Vec3
		amount float32
		want   math.Vec3
	}{
		{"axis", math.Vec3{X: 1}, 2, math.Vec3{X: 3}},
		{"diagonal", math.Vec3{X: 3, Z: 4}, 5, math.Vec3{X: 6, Z: 8}},
		{"zero amount", math.Vec3{Y: -2}, 0, math.Vec3{Y: -2}},
		{"origin", math.Vec3{}, 5, math.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Target(tt.rest, tt.amount)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("Target(%v, %v) = %v, want %v", tt.rest, tt.amount, got, tt.want)
			}
		})
	}
}

func TestTick_TwoMeshScenario(t *testing.T) {
	s := meshScene("pair", math.Vec3{X: 1}, math.Vec3{})
	a := NewAnimator(ModeFixed, DefaultDamping)

	tickN(a, s, 2, frame, 100)

	meshes := s.Meshes()
	if p := meshes[0].Position(); !p.ApproxEqual(math.Vec3{X: 3}, 1e-4) {
		t.Errorf("mesh 1 at %v, want ~(3,0,0)", p)
	}
	if p := meshes[1].Position(); p != (math.Vec3{}) {
		t.Errorf("mesh 2 at %v, want (0,0,0)", p)
	}
}

func TestTick_Convergence(t *testing.T) {
	rests := []math.Vec3{
		{X: 1, Y: 2, Z: -3},
		{X: -0.5},
		{Y: 10, Z: 10},
	}
	for _, amount := range []float32{0.1, 1, 2.5, 5} {
		s := meshScene("conv", rests...)
		a := NewAnimator(ModeFixed, DefaultDamping)
		tickN(a, s, amount, frame, 150)

		for i, m := range s.Meshes() {
			want := Target(rests[i], amount)
			if d := m.Position().Distance(want); d >= 1e-4 {
				t.Errorf("amount %v mesh %d: distance %v to target after 150 ticks", amount, i, d)
			}
		}
	}
}

func TestTick_NeverReachesInOneStep(t *testing.T) {
	s := meshScene("step", math.Vec3{X: 1})
	a := NewAnimator(ModeFixed, DefaultDamping)

	a.Tick(s, 5, frame)

	// 1 + (6 - 1) * 0.1
	if p := s.Meshes()[0].Position(); !p.ApproxEqual(math.Vec3{X: 1.5}, 1e-6) {
		t.Errorf("after one tick at %v, want (1.5,0,0)", p)
	}
}

func TestTick_ZeroAmountReturnsWithoutOvershoot(t *testing.T) {
	rest := math.Vec3{Y: 2}
	s := meshScene("back", rest)
	a := NewAnimator(ModeFixed, DefaultDamping)
	m := s.Meshes()[0]

	tickN(a, s, 3, frame, 200)
	if !m.Position().ApproxEqual(math.Vec3{Y: 5}, 1e-4) {
		t.Fatalf("explode phase ended at %v", m.Position())
	}

	prev := m.Position().Distance(rest)
	for i := 0; i < 200; i++ {
		a.Tick(s, 0, frame)
		p := m.Position()
		if p.Y < rest.Y {
			t.Fatalf("tick %d overshot rest: %v", i, p)
		}
		d := p.Distance(rest)
		if d > prev {
			t.Fatalf("tick %d moved away from rest: %v > %v", i, d, prev)
		}
		prev = d
	}
	if prev >= 1e-4 {
		t.Errorf("did not converge back to rest, distance %v", prev)
	}
}

func TestTick_CenterNeverMoves(t *testing.T) {
	s := meshScene("center", math.Vec3{})
	a := NewAnimator(ModeTime, DefaultDamping)

	for _, amount := range []float32{0, 1, 5, 2.3} {
		tickN(a, s, amount, frame, 30)
		if p := s.Meshes()[0].Position(); p != (math.Vec3{}) {
			t.Fatalf("center mesh moved to %v at amount %v", p, amount)
		}
	}
}

func TestTick_OnlyTouchesOwnScene(t *testing.T) {
	sceneA := meshScene("A", math.Vec3{X: 2})
	sceneB := meshScene("B", math.Vec3{Y: 1})
	a := NewAnimator(ModeFixed, DefaultDamping)

	sceneA.RestPose()
	if n := a.Tick(sceneB, 2, frame); n != 1 {
		t.Fatalf("expected 1 mesh animated, got %d", n)
	}
	tickN(a, sceneB, 2, frame, 150)

	if p := sceneA.Meshes()[0].Position(); p != (math.Vec3{X: 2}) {
		t.Errorf("scene A mesh moved to %v while B was active", p)
	}
	if p := sceneB.Meshes()[0].Position(); !p.ApproxEqual(math.Vec3{Y: 3}, 1e-4) {
		t.Errorf("scene B mesh at %v, want ~(0,3,0)", p)
	}
}

func TestTick_MeshWithoutRestUntouched(t *testing.T) {
	s := meshScene("late", math.Vec3{X: 1})
	a := NewAnimator(ModeFixed, DefaultDamping)
	a.Tick(s, 1, frame)

	n := s.AddNode("late", scene.NoParent, math.Vec3{Z: 4})
	s.AttachMesh(n, &scene.Primitive{})

	if got := a.Tick(s, 1, frame); got != 1 {
		t.Errorf("expected 1 mesh animated, got %d", got)
	}
	if n.Position != (math.Vec3{Z: 4}) {
		t.Errorf("mesh without rest position moved to %v", n.Position)
	}
}

func TestTick_NoScene(t *testing.T) {
	a := NewAnimator(ModeTime, DefaultDamping)
	if n := a.Tick(nil, 1, frame); n != 0 {
		t.Errorf("nil scene animated %d meshes", n)
	}
	if n := a.Tick(scene.New("empty"), 1, frame); n != 0 {
		t.Errorf("empty scene animated %d meshes", n)
	}
}

func TestFactor(t *testing.T) {
	timed := NewAnimator(ModeTime, DefaultDamping)
	if f := timed.Factor(frame); f < 0.0999 || f > 0.1001 {
		t.Errorf("time factor at 60 Hz = %v, want ~0.1", f)
	}
	if f := timed.Factor(0); f != 0 {
		t.Errorf("time factor at dt=0 = %v, want 0", f)
	}
	if f := timed.Factor(-frame); f != 0 {
		t.Errorf("time factor at negative dt = %v, want 0", f)
	}
	if f := timed.Factor(time.Hour); f != 1 {
		t.Errorf("time factor for huge dt = %v, want 1", f)
	}

	fixed := NewAnimator(ModeFixed, DefaultDamping)
	if f := fixed.Factor(time.Second); f != DefaultDamping {
		t.Errorf("fixed factor = %v, want %v", f, DefaultDamping)
	}

	if a := NewAnimator(ModeFixed, 7); a.Factor(frame) != DefaultDamping {
		t.Error("invalid damping should fall back to the default")
	}
}

func TestTick_TimeModeIsFrameRateIndependent(t *testing.T) {
	slow := meshScene("slow", math.Vec3{X: 1})
	fast := meshScene("fast", math.Vec3{X: 1})
	a := NewAnimator(ModeTime, DefaultDamping)

	// Half a second at 30 Hz and at 120 Hz.
	tickN(a, slow, 4, time.Second/30, 15)
	tickN(a, fast, 4, time.Second/120, 60)

	ps, pf := slow.Meshes()[0].Position(), fast.Meshes()[0].Position()
	if d := ps.Distance(pf); d > 1e-3 {
		t.Errorf("30 Hz ended at %v, 120 Hz at %v (distance %v)", ps, pf, d)
	}
	if ps.X <= 1 || ps.X >= 5 {
		t.Errorf("expected a partial approach, got %v", ps)
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("fixed") != ModeFixed {
		t.Error("fixed should parse to ModeFixed")
	}
	if ParseMode("time") != ModeTime || ParseMode("") != ModeTime {
		t.Error("time and empty should parse to ModeTime")
	}
	if ModeFixed.String() != "fixed" || ModeTime.String() != "time" {
		t.Error("unexpected mode names")
	}
}

func TestTarget_TinyRestPosition(t *testing.T) {
	got := Target(math.Vec3{X: 1e-23}, 2)
	if got.X < 1.999 || got.X > 2.001 || got.Y != 0 || got.Z != 0 {
		t.Errorf("Target() = %v, want X near 2", got)
	}
}
