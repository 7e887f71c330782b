// Package app runs the viewer's render loop.
package app

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/explode-viewer/internal/asset"
	"github.com/Faultbox/explode-viewer/internal/config"
	"github.com/Faultbox/explode-viewer/internal/engine/camera"
	"github.com/Faultbox/explode-viewer/internal/engine/debug"
	"github.com/Faultbox/explode-viewer/internal/engine/input"
	"github.com/Faultbox/explode-viewer/internal/engine/lighting"
	"github.com/Faultbox/explode-viewer/internal/engine/renderer"
	"github.com/Faultbox/explode-viewer/internal/engine/window"
	"github.com/Faultbox/explode-viewer/internal/logger"
	"github.com/Faultbox/explode-viewer/pkg/math"
)

// App is the viewer instance.
type App struct {
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	lights   *lighting.PointLightBuffer
	shots    *debug.Screenshots

	session *session

	// Files chosen in the native dialog, handed over to the render loop.
	picks      chan string
	dialogOpen atomic.Bool

	// Framing of the active scene at rest.
	center math.Vec3
	radius float32
	grid   []float32

	start time.Time
}

// New creates the window, GL renderer and viewer session.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	sess, err := newSession(cfg, asset.FileSource{})
	if err != nil {
		return nil, fmt.Errorf("invalid viewer settings: %w", err)
	}

	a := &App{
		session: sess,
		input:   input.New(),
		camera:  camera.NewOrbitCamera(),
		lights:  lighting.NewPointLightBuffer(),
		shots:   debug.NewScreenshots("screenshots", "explode"),
		picks:   make(chan string, 1),
		radius:  1,
	}

	// Window first: the renderer needs its GL context.
	a.window, err = window.New(cfg.Window)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(w, h)
	if err != nil {
		a.window.Close()
		sess.close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	logger.Info("viewer initialized")
	return a, nil
}

// Run starts the render loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true
	a.start = time.Now()

	lastTime := time.Now()
	lastTitle := time.Now()
	frameCount, fps := 0, 0
	var stats renderer.Stats

	logger.Info("starting render loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if a.input.Update() {
			break
		}
		screenshot := a.handleEvents()

		select {
		case path := <-a.picks:
			_ = a.session.pick(path)
		default:
		}

		if a.session.step(dt) {
			a.frame()
		}
		if a.session.store.TakeCameraReset() {
			a.camera.Reset()
		}

		stats = a.renderer.Draw(a.buildFrame())
		if screenshot {
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(lastTitle) >= time.Second {
			fps, frameCount = frameCount, 0
			lastTitle = time.Now()
			logger.Debug("fps", zap.Int("count", fps), zap.Duration("dt", dt))
		}
		a.window.SetStatus(a.status(stats, fps).String())
	}

	return nil
}

// handleEvents applies this frame's input and reports whether a
// screenshot was requested.
func (a *App) handleEvents() bool {
	screenshot := false
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			a.renderer.Resize(a.window.DrawableSize())
		case input.EventMouseDrag:
			a.camera.HandleDrag(event.DX, event.DY)
		case input.EventMouseWheel:
			a.camera.HandleZoom(event.DY)
		case input.EventFileDrop:
			_ = a.session.pick(event.Path)
		case input.EventKeyDown:
			switch handleKey(a.session.store, event.Key) {
			case cmdQuit:
				a.running = false
			case cmdOpen:
				a.openFileDialog()
			case cmdScreenshot:
				screenshot = true
			}
		}
	}
	return screenshot
}

// frame fits the camera, grid and lights to a newly active scene.
func (a *App) frame() {
	s := a.session.active()
	b := s.Bounds()
	if b.Empty() {
		a.center, a.radius = math.Zero, 1
		a.camera.FitToBounds(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})
		a.grid = debug.GridLines(a.center, 2, 0)
		return
	}

	a.center = b.Center()
	a.radius = b.Max.Distance(b.Min) / 2
	a.camera.FitToBounds(b.Min, b.Max)
	// The grid leaves room for parts flying out at full explode.
	a.grid = debug.GridLines(a.center, a.radius*3, b.Min.Y)
}

func (a *App) buildFrame() renderer.Frame {
	p := a.session.store.Params()
	s := a.session.active()
	env := lighting.ForEnvironment(p.Environment)
	a.lights.Place(env, a.center, a.radius)

	f := renderer.Frame{
		Scene:     s,
		View:      a.camera.ViewMatrix(),
		Proj:      a.camera.ProjectionMatrix(a.renderer.Aspect()),
		Eye:       a.camera.Position(),
		Env:       env,
		Lights:    a.lights,
		Wireframe: p.Wireframe,
		Loading:   a.session.lifecycle.Loading(),
		Time:      float32(time.Since(a.start).Seconds()),
	}
	if p.ShowGrid {
		f.Grid = a.grid
	}
	if p.ShowBounds && s != nil {
		if b := s.Bounds(); !b.Empty() {
			f.Bounds = debug.BBoxLines(b.Min, b.Max, a.radius*0.01)
		}
	}
	return f
}

func (a *App) status(stats renderer.Stats, fps int) status {
	lc := a.session.lifecycle
	model := lc.ActiveHandle()
	if lc.Loading() {
		model = lc.Requested()
	}
	return status{
		model:    model,
		loading:  lc.Loading(),
		err:      lc.Err(),
		params:   a.session.store.Params(),
		stats:    stats,
		fps:      fps,
		hasScene: lc.Active() != nil,
	}
}

// openFileDialog shows a native file dialog without blocking the render
// loop. The chosen path is handed back through picks.
func (a *App) openFileDialog() {
	if !a.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer a.dialogOpen.Store(false)

		filename, err := dialog.File().
			Filter("glTF models", "gltf", "glb").
			Title("Open model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Error("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case a.picks <- filename:
		default:
			logger.Warn("dropping file selection", zap.String("path", filename))
		}
	}()
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.Save(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases the session, renderer and window.
func (a *App) Close() {
	logger.Info("closing viewer")

	a.session.close()
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
