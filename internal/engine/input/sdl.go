package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

var scancodeKeys = map[sdl.Scancode]Key{
	sdl.SCANCODE_W:      KeyW,
	sdl.SCANCODE_A:      KeyA,
	sdl.SCANCODE_S:      KeyS,
	sdl.SCANCODE_D:      KeyD,
	sdl.SCANCODE_R:      KeyR,
	sdl.SCANCODE_T:      KeyT,
	sdl.SCANCODE_SPACE:  KeySpace,
	sdl.SCANCODE_LSHIFT: KeyLeftShift,
	sdl.SCANCODE_LCTRL:  KeyLeftCtrl,
	sdl.SCANCODE_RCTRL:  KeyRightCtrl,
	sdl.SCANCODE_DELETE: KeyDelete,
	sdl.SCANCODE_ESCAPE: KeyEscape,
	sdl.SCANCODE_TAB:    KeyTab,
	sdl.SCANCODE_F1:     KeyF1,
	sdl.SCANCODE_F12:    KeyF12,
	sdl.SCANCODE_1:      Key1,
	sdl.SCANCODE_2:      Key2,
	sdl.SCANCODE_3:      Key3,
	sdl.SCANCODE_4:      Key4,
}

// KeyFromScancode maps an SDL scancode to a Key.
func KeyFromScancode(sc sdl.Scancode) Key {
	return scancodeKeys[sc]
}

// ModsFromSDL maps an SDL modifier state to Mods.
func ModsFromSDL(mod uint16) Mods {
	var m Mods
	if mod&uint16(sdl.KMOD_CTRL) != 0 {
		m |= ModCtrl
	}
	if mod&uint16(sdl.KMOD_SHIFT) != 0 {
		m |= ModShift
	}
	if mod&uint16(sdl.KMOD_ALT) != 0 {
		m |= ModAlt
	}
	return m
}

func buttonFromSDL(b uint8) Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return ButtonRight
	default:
		return ButtonNone
	}
}

// Translate converts one SDL event. It reports false for events the editor
// does not use.
func Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		ev := Event{
			Key:  KeyFromScancode(e.Keysym.Scancode),
			Mods: ModsFromSDL(e.Keysym.Mod),
		}
		switch {
		case e.Type == sdl.KEYUP:
			ev.Type = EventKeyUp
		case e.Repeat != 0:
			ev.Type = EventKeyRepeat
		default:
			ev.Type = EventKeyDown
		}
		return ev, true

	case *sdl.MouseMotionEvent:
		return Event{
			Type: EventMouseMove,
			X:    float32(e.X),
			Y:    float32(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{
			Type:   EventMouseDown,
			X:      float32(e.X),
			Y:      float32(e.Y),
			Button: buttonFromSDL(e.Button),
		}
		if e.Type == sdl.MOUSEBUTTONUP {
			ev.Type = EventMouseUp
		}
		return ev, true

	case *sdl.MouseWheelEvent:
		return Event{Type: EventMouseWheel, Wheel: float32(e.Y)}, true
	}
	return Event{}, false
}

// Input collects translated SDL events once per frame.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := Translate(event)
		if !ok {
			continue
		}
		if ev.Type == EventQuit {
			quit = true
		}
		i.events = append(i.events, ev)
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(key Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}
