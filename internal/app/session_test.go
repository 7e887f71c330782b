package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Faultbox/explode-viewer/internal/asset"
	"github.com/Faultbox/explode-viewer/internal/config"
	"github.com/Faultbox/explode-viewer/internal/scene"
	"github.com/Faultbox/explode-viewer/pkg/math"
)

// memSource serves scenes by path once released.
type memSource struct {
	mu     sync.Mutex
	scenes map[string]*scene.Scene
	gates  map[string]chan struct{}
}

func newMemSource() *memSource {
	return &memSource{scenes: map[string]*scene.Scene{}, gates: map[string]chan struct{}{}}
}

func (m *memSource) add(path string, s *scene.Scene) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenes[path] = s
	m.gates[path] = make(chan struct{})
}

func (m *memSource) release(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	close(m.gates[path])
}

func (m *memSource) Load(ctx context.Context, path string) (*scene.Scene, error) {
	m.mu.Lock()
	s, gate := m.scenes[path], m.gates[path]
	m.mu.Unlock()
	if gate == nil {
		return nil, errors.New("not found")
	}
	select {
	case <-gate:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func partScene(name string, rest math.Vec3, mat string) *scene.Scene {
	s := scene.New(name)
	n := s.AddNode(name, scene.NoParent, rest)
	s.AttachMesh(n, &scene.Primitive{Material: s.AddMaterial(mat)})
	return s
}

func newTestSession(t *testing.T, src asset.Source, defaultModel string) *session {
	t.Helper()
	cfg := config.Default()
	cfg.Viewer.DefaultModel = defaultModel
	cfg.Animation.Mode = "fixed"
	s, err := newSession(cfg, src)
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}
	t.Cleanup(s.close)
	return s
}

// stepUntil steps s until cond holds or the deadline passes.
func stepUntil(t *testing.T, s *session, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.step(time.Second / 60)
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestSession_LoadsDefaultModel(t *testing.T) {
	src := newMemSource()
	def := partScene("default", math.Vec3{X: 1}, "paint")
	src.add("assets/model.glb", def)
	src.release("assets/model.glb")

	s := newTestSession(t, src, "assets/model.glb")
	stepUntil(t, s, func() bool { return s.active() == def })
}

func TestSession_ExplodeAndWireframe(t *testing.T) {
	src := newMemSource()
	def := partScene("default", math.Vec3{X: 2}, "paint")
	src.add("m.glb", def)
	src.release("m.glb")

	s := newTestSession(t, src, "m.glb")
	stepUntil(t, s, func() bool { return s.active() != nil })

	if err := s.store.SetExplodeAmount(1); err != nil {
		t.Fatal(err)
	}
	s.store.SetWireframe(true)
	for i := 0; i < 200; i++ {
		s.step(time.Second / 60)
	}

	if p := def.Meshes()[0].Position(); !p.ApproxEqual(math.Vec3{X: 3}, 1e-4) {
		t.Errorf("exploded position = %v, want ~(3,0,0)", p)
	}
	if !def.Materials()[0].Wireframe {
		t.Error("wireframe should reach the scene materials")
	}

	_ = s.store.SetExplodeAmount(0)
	s.store.SetWireframe(false)
	for i := 0; i < 200; i++ {
		s.step(time.Second / 60)
	}
	if p := def.Meshes()[0].Position(); !p.ApproxEqual(math.Vec3{X: 2}, 1e-4) {
		t.Errorf("collapsed position = %v, want ~(2,0,0)", p)
	}
	if def.Materials()[0].Wireframe {
		t.Error("wireframe should be cleared")
	}
}

func TestSession_PickSupersedesPendingLoad(t *testing.T) {
	src := newMemSource()
	a := partScene("A", math.Vec3{X: 2}, "a")
	b := partScene("B", math.Vec3{Y: 1}, "b")
	src.add("/models/a.glb", a)
	src.add("/models/b.glb", b)

	s := newTestSession(t, src, "")
	if err := s.pick("/models/a.glb"); err != nil {
		t.Fatal(err)
	}
	s.step(time.Second / 60)
	if err := s.pick("/models/b.glb"); err != nil {
		t.Fatal(err)
	}
	s.store.SetWireframe(true)
	_ = s.store.SetExplodeAmount(2)

	src.release("/models/b.glb")
	stepUntil(t, s, func() bool { return s.active() == b })
	src.release("/models/a.glb")
	for i := 0; i < 100; i++ {
		s.step(time.Second / 60)
	}

	if s.active() != b {
		t.Fatalf("active scene = %s, want B", s.active().Name)
	}
	if p := a.Meshes()[0].Position(); p != (math.Vec3{X: 2}) {
		t.Errorf("superseded scene was animated to %v", p)
	}
	if a.AllMaterials()[0].Wireframe {
		t.Error("superseded scene materials were touched")
	}
	if !b.Materials()[0].Wireframe {
		t.Error("active scene should be wireframe")
	}
	if s.handles.Live() != 1 {
		t.Errorf("expected only B's handle live, got %d", s.handles.Live())
	}
}

func TestSession_PickRejectsUnsupported(t *testing.T) {
	s := newTestSession(t, newMemSource(), "")
	if err := s.pick("/tmp/readme.txt"); !errors.Is(err, asset.ErrUnsupportedFile) {
		t.Errorf("expected ErrUnsupportedFile, got %v", err)
	}
	if s.store.ActiveModel() != "" {
		t.Errorf("active model changed to %q", s.store.ActiveModel())
	}
}
