package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/explode-viewer/internal/viewer"
)

// command is a key action the store cannot express on its own.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdOpen
	cmdScreenshot
)

// handleKey applies a key press to the store and returns any follow-up
// command for the host.
func handleKey(store *viewer.Store, key sdl.Keycode) command {
	switch key {
	case sdl.K_PLUS, sdl.K_EQUALS, sdl.K_KP_PLUS:
		store.StepExplode(1)
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		store.StepExplode(-1)
	case sdl.K_0, sdl.K_KP_0:
		_ = store.SetExplodeAmount(0)
	case sdl.K_w:
		store.SetWireframe(!store.Wireframe())
	case sdl.K_g:
		store.SetShowGrid(!store.ShowGrid())
	case sdl.K_b:
		store.SetShowBounds(!store.ShowBounds())
	case sdl.K_s:
		store.SetShowStats(!store.ShowStats())
	case sdl.K_e:
		store.SetEnvironment(store.Environment().Next())
	case sdl.K_r:
		store.RequestCameraReset()
	case sdl.K_o:
		return cmdOpen
	case sdl.K_p:
		return cmdScreenshot
	case sdl.K_ESCAPE:
		return cmdQuit
	}
	return cmdNone
}
