package asset

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestIsModelFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"engine.glb", true},
		{"engine.gltf", true},
		{"/tmp/ENGINE.GLB", true},
		{"engine.obj", false},
		{"engine", false},
		{"glb", false},
	}
	for _, tt := range tests {
		if got := IsModelFile(tt.path); got != tt.want {
			t.Errorf("IsModelFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestHandles_MintResolveRelease(t *testing.T) {
	r := NewHandles()

	h, err := r.Mint("/home/user/models/pump.glb")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if !h.IsTemporary() {
		t.Errorf("minted handle %q should be temporary", h)
	}
	if !strings.HasSuffix(string(h), "/pump.glb") {
		t.Errorf("minted handle %q should carry the file name", h)
	}

	path, err := r.Resolve(h)
	if err != nil || path != "/home/user/models/pump.glb" {
		t.Errorf("Resolve = %q, %v", path, err)
	}
	if r.Live() != 1 {
		t.Errorf("expected 1 live handle, got %d", r.Live())
	}

	r.Release(h)
	if _, err := r.Resolve(h); !errors.Is(err, ErrHandleReleased) {
		t.Errorf("expected ErrHandleReleased, got %v", err)
	}
	if r.Live() != 0 {
		t.Errorf("expected 0 live handles, got %d", r.Live())
	}

	// Releasing twice is harmless.
	r.Release(h)
}

func TestHandles_UniquePerSelection(t *testing.T) {
	r := NewHandles()
	a, _ := r.Mint("pump.glb")
	b, _ := r.Mint("pump.glb")
	if a == b {
		t.Errorf("selecting the same file twice should mint distinct handles, got %q", a)
	}
}

func TestHandles_RejectsUnsupported(t *testing.T) {
	r := NewHandles()
	if _, err := r.Mint("notes.txt"); !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestHandles_StaticAndUnknown(t *testing.T) {
	r := NewHandles()

	static := Handle("assets/model.glb")
	if static.IsTemporary() {
		t.Error("plain path should not be temporary")
	}
	if path, err := r.Resolve(static); err != nil || path != "assets/model.glb" {
		t.Errorf("Resolve(static) = %q, %v", path, err)
	}
	r.Release(static)
	if _, err := r.Resolve(static); err != nil {
		t.Errorf("releasing a static handle should be a no-op, got %v", err)
	}

	if _, err := r.Resolve(Handle("local:99/ghost.glb")); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("expected ErrUnknownHandle, got %v", err)
	}
}

func TestHandles_Concurrent(t *testing.T) {
	r := NewHandles()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := r.Mint("part.gltf")
			if err != nil {
				t.Errorf("Mint failed: %v", err)
				return
			}
			if _, err := r.Resolve(h); err != nil {
				t.Errorf("Resolve failed: %v", err)
			}
			r.Release(h)
		}()
	}
	wg.Wait()
	if r.Live() != 0 {
		t.Errorf("expected all handles released, got %d live", r.Live())
	}
}
