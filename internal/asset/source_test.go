package asset

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func writeGLB(t *testing.T, dir, name string) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}})
	doc.Meshes = []*gltf.Mesh{{
		Name:       "plate",
		Primitives: []*gltf.Primitive{{Attributes: gltf.Attribute{gltf.POSITION: pos}}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "plate", Mesh: gltf.Index(0), Translation: [3]float64{0, 0, 3}}}
	doc.Scene = gltf.Index(0)
	doc.Scenes = []*gltf.Scene{{Nodes: []uint32{0}}}

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		t.Fatalf("encoding GLB: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestFileSource_Load(t *testing.T) {
	path := writeGLB(t, t.TempDir(), "plate.glb")

	s, err := FileSource{}.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(s.Meshes()) != 1 {
		t.Errorf("expected 1 mesh, got %d", len(s.Meshes()))
	}
}

func TestFileSource_Cancelled(t *testing.T) {
	path := writeGLB(t, t.TempDir(), "plate.glb")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (FileSource{}).Load(ctx, path); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLifecycle_FileSourceEndToEnd(t *testing.T) {
	path := writeGLB(t, t.TempDir(), "plate.glb")

	handles := NewHandles()
	h, err := handles.Mint(path)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	l := NewLifecycle(FileSource{}, handles, "")
	defer l.Close()

	l.Load(h)
	pollUntil(t, l, func() bool { return !l.Loading() })

	if l.Err() != nil {
		t.Fatalf("load failed: %v", l.Err())
	}
	if l.Active() == nil || l.ActiveHandle() != h {
		t.Fatalf("active = %v (%s)", l.Active(), l.ActiveHandle())
	}
	if l.Active().RestPose().Len() != 1 {
		t.Error("rest pose should hold the single mesh")
	}
}
