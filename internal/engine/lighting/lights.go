// Package lighting packs scene lights into the flat uniform arrays the scene
// shader reads.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lodscene/internal/scene"
)

// MaxLights is the size of the light uniform arrays in the scene shader.
const MaxLights = 8

// Phong terms shared by every light.
const (
	AmbientStrength  float32 = 0.1
	DiffuseStrength  float32 = 0.7
	SpecularStrength float32 = 0.5
	Shininess        float32 = 32
)

// Light is one shader light slot.
type Light struct {
	Position  [3]float32
	Direction [3]float32
	Color     [3]float32
	Intensity float32
	Type      scene.LightType
}

// Headlight is used when the scene has no visible lights: a white point
// light riding on the camera.
func Headlight(camera mgl32.Vec3) Light {
	return Light{
		Position:  camera,
		Direction: [3]float32{0, -1, 0},
		Color:     [3]float32{1, 1, 1},
		Intensity: 1,
		Type:      scene.LightPoint,
	}
}

// Buffer holds lights for GPU upload.
type Buffer struct {
	Lights []Light
	// Dropped counts visible lights that did not fit.
	Dropped int
}

// NewBuffer creates an empty light buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		Lights: make([]Light, 0, MaxLights),
	}
}

// Clear removes all lights from the buffer.
func (b *Buffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Dropped = 0
}

// Add appends a light. Returns false if the buffer is full.
func (b *Buffer) Add(l Light) bool {
	if len(b.Lights) >= MaxLights {
		b.Dropped++
		return false
	}
	b.Lights = append(b.Lights, l)
	return true
}

// Collect refills the buffer from the visible lights in objects, in order.
// With no visible lights a headlight at camera is used instead.
func (b *Buffer) Collect(objects []scene.Object, camera mgl32.Vec3) {
	b.Clear()
	for i := range objects {
		o := &objects[i]
		light, ok := o.Light()
		if !ok || !o.Visible {
			continue
		}
		b.Add(Light{
			Position:  o.Position,
			Direction: light.Direction,
			Color:     light.Color,
			Intensity: light.Intensity,
			Type:      light.Type,
		})
	}
	if len(b.Lights) == 0 && b.Dropped == 0 {
		b.Add(Headlight(camera))
	}
}

// Count returns the number of lights in use.
func (b *Buffer) Count() int {
	return len(b.Lights)
}

// Positions returns positions as a flat slice sized for the uniform array.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *Buffer) Positions() []float32 {
	result := make([]float32, MaxLights*3)
	for i, l := range b.Lights {
		copy(result[i*3:], l.Position[:])
	}
	return result
}

// Directions returns directions as a flat slice sized for the uniform array.
func (b *Buffer) Directions() []float32 {
	result := make([]float32, MaxLights*3)
	for i, l := range b.Lights {
		copy(result[i*3:], l.Direction[:])
	}
	return result
}

// Colors returns colors as a flat slice sized for the uniform array.
func (b *Buffer) Colors() []float32 {
	result := make([]float32, MaxLights*3)
	for i, l := range b.Lights {
		copy(result[i*3:], l.Color[:])
	}
	return result
}

// Intensities returns intensities sized for the uniform array.
func (b *Buffer) Intensities() []float32 {
	result := make([]float32, MaxLights)
	for i, l := range b.Lights {
		result[i] = l.Intensity
	}
	return result
}

// Types returns the light type codes sized for the uniform array.
func (b *Buffer) Types() []int32 {
	result := make([]int32, MaxLights)
	for i, l := range b.Lights {
		result[i] = int32(l.Type)
	}
	return result
}
