package editor

import "fmt"

// Mode is the armed manipulation mode.
type Mode int

const (
	ModeNone Mode = iota
	ModeRotate
	ModeScale
	ModeTranslate
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	case ModeTranslate:
		return "translate"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Drag sensitivities, applied to the pointer delta in NDC.
const (
	RotateDegreesPerNDC float32 = 180
	ScalePerNDC         float32 = 2
	TranslatePerNDC     float32 = 1
)

// Cue is a user-facing event the front end may play a sound for.
type Cue int

const (
	CueSelect Cue = iota
	CueAdd
	CueDelete
	CueModeArm
)

func (c Cue) String() string {
	switch c {
	case CueSelect:
		return "select"
	case CueAdd:
		return "add"
	case CueDelete:
		return "delete"
	case CueModeArm:
		return "mode-arm"
	default:
		return fmt.Sprintf("Cue(%d)", int(c))
	}
}
