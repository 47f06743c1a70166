package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/lodscene/internal/engine/input"
)

// bridgedKeys are the keys forwarded to the editor, in event order.
var bridgedKeys = []struct {
	key   input.Key
	imgui imgui.Key
}{
	{input.KeyW, imgui.KeyW},
	{input.KeyA, imgui.KeyA},
	{input.KeyS, imgui.KeyS},
	{input.KeyD, imgui.KeyD},
	{input.KeyR, imgui.KeyR},
	{input.KeyT, imgui.KeyT},
	{input.KeySpace, imgui.KeySpace},
	{input.KeyLeftShift, imgui.KeyLeftShift},
	{input.KeyLeftCtrl, imgui.KeyLeftCtrl},
	{input.KeyRightCtrl, imgui.KeyRightCtrl},
	{input.KeyDelete, imgui.KeyDelete},
	{input.KeyEscape, imgui.KeyEscape},
	{input.KeyTab, imgui.KeyTab},
	{input.KeyF1, imgui.KeyF1},
	{input.KeyF12, imgui.KeyF12},
	{input.Key1, imgui.Key1},
	{input.Key2, imgui.Key2},
	{input.Key3, imgui.Key3},
	{input.Key4, imgui.Key4},
}

var bridgedButtons = [...]struct {
	button input.Button
	imgui  imgui.MouseButton
}{
	{input.ButtonLeft, imgui.MouseButtonLeft},
	{input.ButtonMiddle, imgui.MouseButtonMiddle},
	{input.ButtonRight, imgui.MouseButtonRight},
}

// Sample is the ImGui input state for one frame.
type Sample struct {
	Width, Height int
	X, Y          float32
	Buttons       [len(bridgedButtons)]bool
	Wheel         float32
	Keys          map[input.Key]bool
	Mods          input.Mods

	// OverUI is true while ImGui wants the mouse.
	OverUI bool
}

// InputBridge turns per-frame ImGui state into editor input events, so the
// editor sees the same event stream as with SDL.
type InputBridge struct {
	prev   Sample
	events []input.Event
}

// NewInputBridge creates a bridge with nothing held.
func NewInputBridge() *InputBridge {
	return &InputBridge{
		prev:   Sample{Keys: make(map[input.Key]bool)},
		events: make([]input.Event, 0, 16),
	}
}

// Poll samples ImGui and returns the events since the last call. Must be
// called inside an ImGui frame.
func (b *InputBridge) Poll() []input.Event {
	return b.Feed(sampleImGui())
}

// Feed diffs s against the previous sample.
func (b *InputBridge) Feed(s Sample) []input.Event {
	if s.Keys == nil {
		s.Keys = make(map[input.Key]bool)
	}
	b.events = diff(&b.prev, &s, b.events[:0])
	b.prev = s
	return b.events
}

// OverUI reports whether the pointer was over an ImGui window at the last poll.
func (b *InputBridge) OverUI() bool {
	return b.prev.OverUI
}

func diff(prev, cur *Sample, dst []input.Event) []input.Event {
	if cur.Width != prev.Width || cur.Height != prev.Height {
		dst = append(dst, input.Event{Type: input.EventWindowResize, Width: cur.Width, Height: cur.Height})
	}
	if cur.X != prev.X || cur.Y != prev.Y {
		dst = append(dst, input.Event{Type: input.EventMouseMove, X: cur.X, Y: cur.Y, Mods: cur.Mods})
	}

	for _, k := range bridgedKeys {
		was, is := prev.Keys[k.key], cur.Keys[k.key]
		switch {
		case is && !was:
			dst = append(dst, input.Event{Type: input.EventKeyDown, Key: k.key, Mods: cur.Mods})
		case was && !is:
			dst = append(dst, input.Event{Type: input.EventKeyUp, Key: k.key, Mods: cur.Mods})
		}
	}

	for i, b := range bridgedButtons {
		was, is := prev.Buttons[i], cur.Buttons[i]
		ev := input.Event{X: cur.X, Y: cur.Y, Button: b.button, Mods: cur.Mods}
		switch {
		case is && !was:
			ev.Type = input.EventMouseDown
			dst = append(dst, ev)
		case was && !is:
			ev.Type = input.EventMouseUp
			dst = append(dst, ev)
		}
	}

	if cur.Wheel != 0 {
		dst = append(dst, input.Event{Type: input.EventMouseWheel, Wheel: cur.Wheel, X: cur.X, Y: cur.Y})
	}
	return dst
}

func sampleImGui() Sample {
	io := imgui.CurrentIO()
	w, h := DisplaySize()
	pos := imgui.MousePos()

	s := Sample{
		Width:  int(w),
		Height: int(h),
		X:      pos.X,
		Y:      pos.Y,
		Keys:   make(map[input.Key]bool, 4),
		OverUI: io.WantCaptureMouse(),
	}
	if !s.OverUI {
		s.Wheel = io.MouseWheel()
	}
	for i, b := range bridgedButtons {
		s.Buttons[i] = imgui.IsMouseDown(b.imgui)
	}

	// Keys go to the focused text field instead of the editor.
	if io.WantCaptureKeyboard() {
		return s
	}
	if io.KeyCtrl() {
		s.Mods |= input.ModCtrl
	}
	if io.KeyShift() {
		s.Mods |= input.ModShift
	}
	if io.KeyAlt() {
		s.Mods |= input.ModAlt
	}
	for _, k := range bridgedKeys {
		if imgui.IsKeyDown(k.imgui) {
			s.Keys[k.key] = true
		}
	}
	return s
}
