// Package asset resolves model references and loads them off the render
// loop, keeping only the most recently requested load.
package asset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrHandleReleased is returned when resolving a revoked temporary handle.
	ErrHandleReleased = errors.New("model handle released")
	// ErrUnknownHandle is returned for temporary handles never minted here.
	ErrUnknownHandle = errors.New("unknown model handle")
	// ErrUnsupportedFile is returned for files that are not .gltf or .glb.
	ErrUnsupportedFile = errors.New("unsupported model file")
)

const localScheme = "local:"

// Handle references a model. Static handles are plain resource paths;
// temporary handles are minted for locally selected files.
type Handle string

// IsTemporary reports whether h was minted for a local file selection.
func (h Handle) IsTemporary() bool {
	return strings.HasPrefix(string(h), localScheme)
}

// IsModelFile reports whether path names a .gltf or .glb file.
func IsModelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return true
	}
	return false
}

// Handles mints and revokes temporary handles. It is safe for concurrent
// use; loads resolve handles from worker goroutines.
type Handles struct {
	mu       sync.Mutex
	next     uint64
	live     map[Handle]string
	released map[Handle]struct{}
}

// NewHandles creates an empty registry.
func NewHandles() *Handles {
	return &Handles{
		live:     make(map[Handle]string),
		released: make(map[Handle]struct{}),
	}
}

// Mint creates a temporary handle for a local file.
func (r *Handles) Mint(path string) (Handle, error) {
	if !IsModelFile(path) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := Handle(fmt.Sprintf("%s%d/%s", localScheme, r.next, filepath.Base(path)))
	r.live[h] = path
	return h, nil
}

// Resolve returns the file path behind h. Static handles resolve to
// themselves.
func (r *Handles) Resolve(h Handle) (string, error) {
	if !h.IsTemporary() {
		return string(h), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if path, ok := r.live[h]; ok {
		return path, nil
	}
	if _, ok := r.released[h]; ok {
		return "", fmt.Errorf("%w: %s", ErrHandleReleased, h)
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownHandle, h)
}

// Release revokes a temporary handle. Static and unknown handles are ignored.
func (r *Handles) Release(h Handle) {
	if !h.IsTemporary() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live[h]; ok {
		delete(r.live, h)
		r.released[h] = struct{}{}
	}
}

// Live returns the number of unreleased temporary handles.
func (r *Handles) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}
