package scene

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Light auto-placement parameters.
const (
	spawnMinRadius float32 = 1.0
	spawnMaxRadius float32 = 2.0
	spawnHeight    float32 = 0.5
)

// FallbackLightPosition is where a light spawns when there is no visible cube.
var FallbackLightPosition = mgl32.Vec3{0, 3, 0}

// DefaultLightDirection is the initial direction of new lights.
var DefaultLightDirection = mgl32.Vec3{0, -1, 0}

// Store owns all scene objects. Iteration order is insertion order.
// Store is not safe for concurrent use; it lives on the frame thread.
type Store struct {
	objects []Object
	index   map[ID]int
	nextID  ID
	rng     *rand.Rand
}

// New creates an empty store. rng drives light auto-placement; nil uses a
// randomly seeded source.
func New(rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Store{
		index:  make(map[ID]int),
		nextID: 1,
		rng:    rng,
	}
}

// NewDefault creates a store seeded with one cube at the origin.
func NewDefault(rng *rand.Rand) *Store {
	s := New(rng)
	s.Add(KindSolid, Attrs{Scale: 0.5})
	return s
}

// Add inserts a new object and returns its id. Lights are auto-placed next
// to the visible cube nearest to attrs.Anchor.
func (s *Store) Add(kind Kind, attrs Attrs) ID {
	id := s.nextID
	s.nextID++

	obj := Object{
		ID:       id,
		Name:     attrs.Name,
		Position: attrs.Position,
		Visible:  true,
	}
	if obj.Name == "" {
		obj.Name = fmt.Sprintf("%s %d", kind, id)
	}

	if kind.IsLight() {
		obj.Position = s.spawnLightPosition(attrs.Anchor)
		obj.Body = Light{
			Type:      lightTypeFor(kind),
			Color:     mgl32.Vec3{1, 1, 1},
			Intensity: 1.0,
			Direction: DefaultLightDirection.Normalize(),
		}
	} else {
		scale := attrs.Scale
		if scale == 0 {
			scale = 1.0
		}
		obj.Body = Solid{Rotation: attrs.Rotation, Scale: ClampScale(scale)}
	}

	s.index[id] = len(s.objects)
	s.objects = append(s.objects, obj)
	return id
}

// spawnLightPosition picks a random point on a ring around the nearest cube.
func (s *Store) spawnLightPosition(anchor mgl32.Vec3) mgl32.Vec3 {
	solid, ok := s.NearestSolid(anchor)
	if !ok {
		return FallbackLightPosition
	}
	angle := s.rng.Float32() * 2 * math32.Pi
	radius := spawnMinRadius + s.rng.Float32()*(spawnMaxRadius-spawnMinRadius)
	return solid.Position.Add(mgl32.Vec3{
		radius * math32.Cos(angle),
		spawnHeight,
		radius * math32.Sin(angle),
	})
}

// NearestSolid returns the visible cube closest to p.
// Ties go to the earlier object.
func (s *Store) NearestSolid(p mgl32.Vec3) (Object, bool) {
	best := -1
	var bestDist float32
	for i := range s.objects {
		o := &s.objects[i]
		if !o.Visible || o.Kind() != KindSolid {
			continue
		}
		d := o.Position.Sub(p).Len()
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Object{}, false
	}
	return s.objects[best], true
}

// Get returns a copy of the object with the given id.
func (s *Store) Get(id ID) (Object, bool) {
	i, ok := s.index[id]
	if !ok {
		return Object{}, false
	}
	return s.objects[i], true
}

// Len returns the number of live objects.
func (s *Store) Len() int {
	return len(s.objects)
}

// All returns an ordered snapshot of all objects.
func (s *Store) All() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Remove deletes the object with the given id. It reports false if the id
// is not live.
func (s *Store) Remove(id ID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.objects); j++ {
		s.index[s.objects[j].ID] = j
	}
	return true
}

func (s *Store) lookup(id ID) *Object {
	i, ok := s.index[id]
	if !ok {
		return nil
	}
	return &s.objects[i]
}

// SetPosition moves an object. Non-finite positions are ignored.
func (s *Store) SetPosition(id ID, p mgl32.Vec3) {
	o := s.lookup(id)
	if o == nil || !finite3(p) {
		return
	}
	o.Position = p
}

// SetRotation sets a cube's pitch/yaw in degrees.
func (s *Store) SetRotation(id ID, r mgl32.Vec2) {
	o := s.lookup(id)
	if o == nil {
		return
	}
	if solid, ok := o.Body.(Solid); ok {
		solid.Rotation = r
		o.Body = solid
	}
}

// SetScale sets a cube's uniform scale, clamped to [MinScale, MaxScale].
func (s *Store) SetScale(id ID, scale float32) {
	o := s.lookup(id)
	if o == nil {
		return
	}
	if solid, ok := o.Body.(Solid); ok {
		solid.Scale = ClampScale(scale)
		o.Body = solid
	}
}

// SetLightColor sets a light's RGB color; components are clamped to [0, 1].
func (s *Store) SetLightColor(id ID, c mgl32.Vec3) {
	o := s.lookup(id)
	if o == nil {
		return
	}
	if light, ok := o.Body.(Light); ok {
		for i := range c {
			c[i] = mgl32.Clamp(c[i], 0, 1)
		}
		light.Color = c
		o.Body = light
	}
}

// SetLightIntensity sets a light's intensity; negative values become zero.
func (s *Store) SetLightIntensity(id ID, intensity float32) {
	o := s.lookup(id)
	if o == nil {
		return
	}
	if light, ok := o.Body.(Light); ok {
		if math32.IsNaN(intensity) || intensity < 0 {
			intensity = 0
		}
		light.Intensity = intensity
		o.Body = light
	}
}

// SetLightDirection sets a light's direction, renormalized to unit length.
// Zero-length or non-finite directions are ignored.
func (s *Store) SetLightDirection(id ID, dir mgl32.Vec3) {
	o := s.lookup(id)
	if o == nil || !finite3(dir) {
		return
	}
	l := dir.Len()
	if l < 1e-6 {
		return
	}
	if light, ok := o.Body.(Light); ok {
		light.Direction = dir.Mul(1 / l)
		o.Body = light
	}
}

// SetVisible toggles rendering and picking of an object.
func (s *Store) SetVisible(id ID, visible bool) {
	if o := s.lookup(id); o != nil {
		o.Visible = visible
	}
}

// SetName renames an object. Empty names are ignored.
func (s *Store) SetName(id ID, name string) {
	if o := s.lookup(id); o != nil && name != "" {
		o.Name = name
	}
}

func finite3(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
