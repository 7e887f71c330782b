package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate_DragOnlyWhileButtonHeld(t *testing.T) {
	in := New()

	in.translate(&sdl.MouseMotionEvent{XRel: 5, YRel: 2})
	if len(in.Events()) != 0 {
		t.Fatalf("motion without a held button should be ignored, got %v", in.Events())
	}

	in.translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT})
	in.translate(&sdl.MouseMotionEvent{XRel: 5, YRel: -2})
	in.translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT})
	in.translate(&sdl.MouseMotionEvent{XRel: 9, YRel: 9})

	events := in.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 drag event, got %d", len(events))
	}
	if events[0].Type != EventMouseDrag || events[0].DX != 5 || events[0].DY != -2 {
		t.Errorf("drag event = %+v", events[0])
	}
}

func TestTranslate_Keys(t *testing.T) {
	in := New()
	in.translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_w}})
	in.translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_g}})
	in.translate(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_b}})

	if !in.Pressed(sdl.K_w) {
		t.Error("W should be pressed")
	}
	if in.Pressed(sdl.K_g) {
		t.Error("key repeats should be ignored")
	}
	if in.Pressed(sdl.K_b) {
		t.Error("key up is not a press")
	}
	if !in.Pressed(sdl.K_PLUS, sdl.K_w) {
		t.Error("Pressed should match any of the given keys")
	}
}

func TestTranslate_WheelAndDrop(t *testing.T) {
	in := New()
	in.translate(&sdl.MouseWheelEvent{Y: 1})
	in.translate(&sdl.MouseWheelEvent{Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED})
	in.translate(&sdl.DropEvent{Type: sdl.DROPFILE, File: "/tmp/pump.glb"})

	events := in.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].DY != 1 || events[1].DY != -2 {
		t.Errorf("wheel deltas = %v, %v", events[0].DY, events[1].DY)
	}
	if events[2].Type != EventFileDrop || events[2].Path != "/tmp/pump.glb" {
		t.Errorf("drop event = %+v", events[2])
	}
}

func TestTranslate_Quit(t *testing.T) {
	in := New()
	if !in.translate(&sdl.QuitEvent{}) {
		t.Error("quit event should request exit")
	}
}
