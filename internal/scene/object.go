// Package scene owns the editable set of scene objects (cubes and lights).
package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ID identifies a scene object. Zero is never assigned.
type ID uint32

// None is the zero ID, used for "no selection".
const None ID = 0

// Kind is the fixed role of an object.
type Kind int

const (
	KindSolid Kind = iota
	KindAmbientLight
	KindPointLight
	KindDirectionalLight
)

// String returns a display name for the kind.
func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "Cube"
	case KindAmbientLight:
		return "Ambient Light"
	case KindPointLight:
		return "Point Light"
	case KindDirectionalLight:
		return "Directional Light"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsLight reports whether the kind is one of the light kinds.
func (k Kind) IsLight() bool {
	return k == KindAmbientLight || k == KindPointLight || k == KindDirectionalLight
}

// LightType is the light subtype. The numeric values are the codes the
// scene shader expects in uLightType.
type LightType int32

const (
	LightPoint       LightType = 0
	LightDirectional LightType = 1
	LightAmbient     LightType = 2
)

// Scale limits for solids.
const (
	MinScale float32 = 0.1
	MaxScale float32 = 2.0
)

// Body is the kind-specific payload of an object: Solid or Light.
type Body interface {
	kind() Kind
}

// Solid is the payload of a cube.
type Solid struct {
	Rotation mgl32.Vec2 // pitch, yaw in degrees
	Scale    float32
}

func (Solid) kind() Kind { return KindSolid }

// Light is the payload of a light source.
type Light struct {
	Type      LightType
	Color     mgl32.Vec3
	Intensity float32
	Direction mgl32.Vec3 // always unit length
}

func (l Light) kind() Kind {
	switch l.Type {
	case LightAmbient:
		return KindAmbientLight
	case LightDirectional:
		return KindDirectionalLight
	default:
		return KindPointLight
	}
}

// Object is a scene entity: a common header plus a Solid or Light body.
type Object struct {
	ID       ID
	Name     string
	Position mgl32.Vec3
	Visible  bool
	Body     Body
}

// Kind returns the object's kind, derived from its body.
func (o Object) Kind() Kind {
	if o.Body == nil {
		return KindSolid
	}
	return o.Body.kind()
}

// Solid returns the solid payload, if the object is a cube.
func (o Object) Solid() (Solid, bool) {
	s, ok := o.Body.(Solid)
	return s, ok
}

// Light returns the light payload, if the object is a light.
func (o Object) Light() (Light, bool) {
	l, ok := o.Body.(Light)
	return l, ok
}

// Attrs are the initial attributes passed to Store.Add.
type Attrs struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec2
	Scale    float32

	// Anchor is the reference point used to find the nearest cube when
	// auto-placing a light. Callers usually pass the camera position.
	Anchor mgl32.Vec3
}

// ClampScale limits s to [MinScale, MaxScale].
func ClampScale(s float32) float32 {
	if math32.IsNaN(s) || s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

func lightTypeFor(k Kind) LightType {
	switch k {
	case KindAmbientLight:
		return LightAmbient
	case KindDirectionalLight:
		return LightDirectional
	default:
		return LightPoint
	}
}
