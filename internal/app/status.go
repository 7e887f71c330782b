package app

import (
	"fmt"
	"path"
	"strings"

	"github.com/Faultbox/explode-viewer/internal/asset"
	"github.com/Faultbox/explode-viewer/internal/engine/renderer"
	"github.com/Faultbox/explode-viewer/internal/viewer"
)

// status is what the window title reports.
type status struct {
	model    asset.Handle
	loading  bool
	err      error
	params   viewer.Params
	stats    renderer.Stats
	fps      int
	hasScene bool
}

func (s status) String() string {
	var parts []string

	switch {
	case s.loading:
		parts = append(parts, "loading "+displayName(s.model)+"...")
	case s.hasScene:
		parts = append(parts, displayName(s.model))
	}
	if s.err != nil {
		parts = append(parts, "error: "+s.err.Error())
	}

	parts = append(parts, fmt.Sprintf("explode %.1f", s.params.ExplodeAmount))
	if s.params.Wireframe {
		parts = append(parts, "wireframe")
	}
	parts = append(parts, s.params.Environment.String())

	if s.params.ShowStats {
		parts = append(parts, fmt.Sprintf("%d meshes, %d tris, %d draws, %d fps",
			s.stats.Meshes, s.stats.Triangles, s.stats.DrawCalls, s.fps))
	}
	return strings.Join(parts, " | ")
}

// displayName strips directories and the temporary handle prefix.
func displayName(h asset.Handle) string {
	if h == "" {
		return "no model"
	}
	return path.Base(strings.ReplaceAll(string(h), `\`, "/"))
}
