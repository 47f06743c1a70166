// Package input defines backend-neutral input events. SDL events are
// translated here; the ImGui front end produces the same events in package ui.
package input

import "fmt"

// EventType identifies what an Event carries.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyRepeat
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key is a physical key the editor reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyR
	KeyT
	KeySpace
	KeyLeftShift
	KeyLeftCtrl
	KeyRightCtrl
	KeyDelete
	KeyEscape
	KeyTab
	KeyF1
	KeyF12
	Key1
	Key2
	Key3
	Key4
)

var keyNames = map[Key]string{
	KeyW:         "W",
	KeyA:         "A",
	KeyS:         "S",
	KeyD:         "D",
	KeyR:         "R",
	KeyT:         "T",
	KeySpace:     "Space",
	KeyLeftShift: "LeftShift",
	KeyLeftCtrl:  "LeftCtrl",
	KeyRightCtrl: "RightCtrl",
	KeyDelete:    "Delete",
	KeyEscape:    "Escape",
	KeyTab:       "Tab",
	KeyF1:        "F1",
	KeyF12:       "F12",
	Key1:         "1",
	Key2:         "2",
	Key3:         "3",
	Key4:         "4",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Mods is a bitmask of held modifier keys.
type Mods uint8

const (
	ModCtrl Mods = 1 << iota
	ModShift
	ModAlt
)

// Has reports whether all bits of m are set.
func (mods Mods) Has(m Mods) bool {
	return mods&m == m
}

// Button is a mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event represents a processed input event. X and Y are pointer
// coordinates in pixels with a top-left origin.
type Event struct {
	Type   EventType
	Key    Key
	Mods   Mods
	X, Y   float32
	Button Button
	Wheel  float32
	Width  int
	Height int
}
