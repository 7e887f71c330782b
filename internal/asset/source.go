package asset

import (
	"context"

	"github.com/Faultbox/explode-viewer/internal/scene"
)

// Source produces a scene for a resolved model path. Implementations should
// return early once ctx is cancelled.
type Source interface {
	Load(ctx context.Context, path string) (*scene.Scene, error)
}

// FileSource decodes .gltf and .glb files from disk.
type FileSource struct{}

// Load opens and decodes path.
func (FileSource) Load(ctx context.Context, path string) (*scene.Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := scene.Open(path)
	if err != nil {
		return nil, err
	}
	// Decoding cannot be interrupted; drop the result if we were superseded meanwhile.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}
