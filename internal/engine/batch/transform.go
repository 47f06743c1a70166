package batch

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lodscene/internal/scene"
)

// Glyph scales for light sources.
const (
	PointLightScale       float32 = 0.15
	DirectionalLightScale float32 = 0.4
	AmbientLightScale     float32 = 0.2

	// Ambient glyph pulse while selected: base + amp*sin(freq*clock).
	ambientPulseAmplitude float32 = 0.05
	ambientPulseFrequency float32 = 2.0
)

// Basis returns a rotation whose local +Z axis points along dir.
// The up reference is +Y unless dir is nearly vertical, then +X.
func Basis(dir mgl32.Vec3) mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if math32.Abs(dir.Dot(up)) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}
	right := up.Cross(dir).Normalize()
	up = dir.Cross(right)
	return mgl32.Mat4{
		right[0], right[1], right[2], 0,
		up[0], up[1], up[2], 0,
		dir[0], dir[1], dir[2], 0,
		0, 0, 0, 1,
	}
}

// WorldTransform returns the model matrix for an object.
func WorldTransform(o scene.Object, selected bool, clock float32) mgl32.Mat4 {
	m := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())

	if solid, ok := o.Solid(); ok {
		m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(solid.Rotation.X())))
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(solid.Rotation.Y())))
		return m.Mul4(mgl32.Scale3D(solid.Scale, solid.Scale, solid.Scale))
	}

	light, _ := o.Light()
	switch light.Type {
	case scene.LightDirectional:
		s := DirectionalLightScale
		return m.Mul4(Basis(light.Direction)).Mul4(mgl32.Scale3D(s, s, s))
	case scene.LightAmbient:
		s := AmbientLightScale
		if selected {
			s += ambientPulseAmplitude * math32.Sin(ambientPulseFrequency*clock)
		}
		return m.Mul4(mgl32.Scale3D(s, s, s))
	default:
		s := PointLightScale
		return m.Mul4(mgl32.Scale3D(s, s, s))
	}
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
