package asset

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/explode-viewer/internal/logger"
	"github.com/Faultbox/explode-viewer/internal/scene"
)

// result is a finished load as seen by the render loop.
type result struct {
	seq    uint64
	handle Handle
	scene  *scene.Scene
	err    error
}

// Lifecycle owns the active scene. Loads run in their own goroutines and
// report back through a channel drained by Poll on the render loop; every
// other method must be called from that loop too.
//
// Each Load is tagged with a sequence number and only the latest one may
// become active: a slow load finishing after a newer request is discarded.
type Lifecycle struct {
	source       Source
	handles      *Handles
	defaultModel Handle

	ctx      context.Context
	stop     context.CancelFunc
	results  chan result
	wg       sync.WaitGroup
	inflight atomic.Int32

	latest    uint64
	requested Handle
	cancel    context.CancelFunc
	pending   bool

	active       *scene.Scene
	activeHandle Handle
	err          error
}

// NewLifecycle creates a lifecycle with no active scene. defaultModel is
// never released when superseded.
func NewLifecycle(source Source, handles *Handles, defaultModel Handle) *Lifecycle {
	ctx, stop := context.WithCancel(context.Background())
	return &Lifecycle{
		source:       source,
		handles:      handles,
		defaultModel: defaultModel,
		ctx:          ctx,
		stop:         stop,
		results:      make(chan result),
	}
}

// Load requests h and returns the request's sequence number. Any pending
// load is cancelled and the previously requested temporary handle released.
func (l *Lifecycle) Load(h Handle) uint64 {
	l.latest++
	seq := l.latest

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if prev := l.requested; prev != h && prev != l.defaultModel {
		l.handles.Release(prev)
	}
	l.requested = h

	path, err := l.handles.Resolve(h)
	if err != nil {
		l.pending = false
		l.err = fmt.Errorf("loading %s: %w", h, err)
		log().Error("model load rejected", logger.Model(string(h)), zap.Error(err))
		return seq
	}

	ctx, cancel := context.WithCancel(l.ctx)
	l.cancel = cancel
	l.pending = true

	log().Info("model load requested", logger.Model(string(h)), logger.Seq(seq))

	l.wg.Add(1)
	l.inflight.Add(1)
	go func() {
		defer l.wg.Done()
		defer l.inflight.Add(-1)

		s, err := l.source.Load(ctx, path)
		select {
		case l.results <- result{seq: seq, handle: h, scene: s, err: err}:
		case <-l.ctx.Done():
		}
	}()
	return seq
}

func log() *zap.Logger { return logger.For("asset") }

// Poll applies finished loads and reports whether the active scene changed.
// Call it once per frame before animating.
func (l *Lifecycle) Poll() bool {
	changed := false
	for {
		select {
		case r := <-l.results:
			if l.apply(r) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (l *Lifecycle) apply(r result) bool {
	if r.seq != l.latest {
		log().Debug("discarding superseded load",
			logger.Model(string(r.handle)),
			logger.Seq(r.seq),
			zap.Uint64("latest", l.latest),
		)
		return false
	}

	l.pending = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	if r.err != nil {
		l.err = fmt.Errorf("loading %s: %w", r.handle, r.err)
		log().Error("model load failed", logger.Model(string(r.handle)), zap.Error(r.err))
		return false
	}

	// The rest pose is taken before the scene is ever animated.
	pose := r.scene.RestPose()

	l.active = r.scene
	l.activeHandle = r.handle
	l.err = nil
	log().Info("model loaded",
		logger.Model(string(r.handle)),
		zap.Int("nodes", r.scene.NodeCount()),
		zap.Int("meshes", pose.Len()),
		zap.Int("materials", len(r.scene.Materials())),
	)
	return true
}

// Active returns the current scene, or nil before the first successful load.
func (l *Lifecycle) Active() *scene.Scene {
	return l.active
}

// ActiveHandle returns the handle the active scene was loaded from.
func (l *Lifecycle) ActiveHandle() Handle {
	return l.activeHandle
}

// Requested returns the handle of the latest request.
func (l *Lifecycle) Requested() Handle {
	return l.requested
}

// Loading reports whether the latest request is still in flight.
func (l *Lifecycle) Loading() bool {
	return l.pending
}

// Err returns the failure of the latest completed request, if any.
func (l *Lifecycle) Err() error {
	return l.err
}

// InFlight returns the number of load goroutines that have not yet handed
// their result to Poll.
func (l *Lifecycle) InFlight() int {
	return int(l.inflight.Load())
}

// Close cancels every load, waits for workers to exit and releases the
// requested temporary handle.
func (l *Lifecycle) Close() {
	l.stop()
	l.wg.Wait()
	if l.requested != l.defaultModel {
		l.handles.Release(l.requested)
	}
	l.active = nil
}
