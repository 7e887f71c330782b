// Package material applies viewer-wide material modes to the active scene.
package material

import (
	"go.uber.org/zap"

	"github.com/Faultbox/explode-viewer/internal/logger"
	"github.com/Faultbox/explode-viewer/internal/scene"
)

// Controller keeps the wireframe flag of every drawable material in step
// with the viewer setting. It remembers what it last applied so Sync can be
// called every frame.
type Controller struct {
	scene     *scene.Scene
	wireframe bool
}

// NewController creates a controller that has applied nothing yet.
func NewController() *Controller {
	return &Controller{}
}

// Sync applies wireframe to s when the scene or the flag differs from the
// last application. It reports whether materials were written.
func (c *Controller) Sync(s *scene.Scene, wireframe bool) bool {
	if s == c.scene && wireframe == c.wireframe {
		return false
	}
	c.Apply(s, wireframe)
	return true
}

// Apply sets the wireframe flag on every material used by a drawable of s
// and returns the number of materials written. A nil scene only records the
// flag.
func (c *Controller) Apply(s *scene.Scene, wireframe bool) int {
	c.scene = s
	c.wireframe = wireframe
	if s == nil {
		return 0
	}

	mats := s.Materials()
	for _, m := range mats {
		m.Wireframe = wireframe
	}
	logger.Debug("material mode applied",
		zap.String("scene", s.Name),
		zap.Bool("wireframe", wireframe),
		zap.Int("materials", len(mats)),
	)
	return len(mats)
}

// Wireframe returns the last applied flag.
func (c *Controller) Wireframe() bool {
	return c.wireframe
}
