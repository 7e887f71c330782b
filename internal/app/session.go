package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/explode-viewer/internal/asset"
	"github.com/Faultbox/explode-viewer/internal/config"
	"github.com/Faultbox/explode-viewer/internal/explode"
	"github.com/Faultbox/explode-viewer/internal/logger"
	"github.com/Faultbox/explode-viewer/internal/material"
	"github.com/Faultbox/explode-viewer/internal/scene"
	"github.com/Faultbox/explode-viewer/internal/viewer"
)

// session wires the viewer state to the scene it drives. It holds no GL
// state and runs entirely on the render loop.
type session struct {
	store      *viewer.Store
	handles    *asset.Handles
	lifecycle  *asset.Lifecycle
	animator   *explode.Animator
	controller *material.Controller
}

func newSession(cfg *config.Config, source asset.Source) (*session, error) {
	store, err := viewer.NewStore(cfg.Viewer)
	if err != nil {
		return nil, err
	}
	handles := asset.NewHandles()
	return &session{
		store:      store,
		handles:    handles,
		lifecycle:  asset.NewLifecycle(source, handles, asset.Handle(cfg.Viewer.DefaultModel)),
		animator:   explode.NewAnimator(explode.ParseMode(cfg.Animation.Mode), cfg.Animation.Damping),
		controller: material.NewController(),
	}, nil
}

// pick turns a locally selected file into the active model request.
func (s *session) pick(path string) error {
	h, err := s.handles.Mint(path)
	if err != nil {
		logger.Warn("ignoring selected file", zap.String("path", path), zap.Error(err))
		return err
	}
	s.store.SetActiveModel(h)
	return nil
}

// step advances one frame and reports whether a new scene became active.
func (s *session) step(dt time.Duration) bool {
	if want := s.store.ActiveModel(); want != s.lifecycle.Requested() {
		s.lifecycle.Load(want)
	}
	swapped := s.lifecycle.Poll()

	active := s.lifecycle.Active()
	s.animator.Tick(active, s.store.ExplodeAmount(), dt)
	s.controller.Sync(active, s.store.Wireframe())
	return swapped
}

func (s *session) active() *scene.Scene {
	return s.lifecycle.Active()
}

func (s *session) close() {
	s.lifecycle.Close()
}
