// Package lod maps camera distance to a discrete mesh detail tier.
package lod

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Tier is a level-of-detail index. Lower is more detailed.
type Tier int

const (
	High Tier = iota
	Medium
	Low
)

// Count is the number of tiers.
const Count = 3

// Tier boundaries in world units. Each tier covers a half-open interval:
// High [0, NearDistance), Medium [NearDistance, FarDistance), Low [FarDistance, inf).
const (
	NearDistance float32 = 5.0
	FarDistance  float32 = 15.0
)

// Select returns the tier for an object at the given distance from the camera.
// There is no hysteresis: an object sitting on a boundary may flip tiers from
// frame to frame.
func Select(distance float32) Tier {
	switch {
	case distance < NearDistance:
		return High
	case distance < FarDistance:
		return Medium
	default:
		// Also catches NaN.
		return Low
	}
}

// Distance returns the Euclidean distance between an object and the camera.
func Distance(object, camera mgl32.Vec3) float32 {
	return object.Sub(camera).Len()
}

// String returns a short label for the tier.
func (t Tier) String() string {
	switch t {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}
