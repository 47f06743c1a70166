package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DirectionFromAngles converts azimuth (rotation around Y, degrees) and
// elevation (degrees above the horizon) to a unit direction. Azimuth 0
// points down -Z.
func DirectionFromAngles(azimuth, elevation float32) mgl32.Vec3 {
	az := mgl32.DegToRad(azimuth)
	el := mgl32.DegToRad(mgl32.Clamp(elevation, -90, 90))
	return mgl32.Vec3{
		math32.Cos(el) * math32.Sin(az),
		math32.Sin(el),
		-math32.Cos(el) * math32.Cos(az),
	}
}

// AnglesFromDirection is the inverse of DirectionFromAngles. Straight up or
// down yields azimuth 0.
func AnglesFromDirection(dir mgl32.Vec3) (azimuth, elevation float32) {
	l := dir.Len()
	if l == 0 {
		return 0, 0
	}
	dir = dir.Mul(1 / l)
	elevation = mgl32.RadToDeg(math32.Asin(mgl32.Clamp(dir.Y(), -1, 1)))
	if math32.Abs(dir.X()) < 1e-6 && math32.Abs(dir.Z()) < 1e-6 {
		return 0, elevation
	}
	azimuth = mgl32.RadToDeg(math32.Atan2(dir.X(), -dir.Z()))
	return azimuth, elevation
}
