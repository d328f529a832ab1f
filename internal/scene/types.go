package scene

import (
	"fmt"

	"tm-spectators/internal/export"
	"tm-spectators/internal/mathutil"
)

// Object types as reported by the authoring tool.
const (
	TypeMesh = "MESH"
	TypeHair = "HAIR"
)

// Scene is a snapshot of the host's selection state and evaluated particles.
type Scene struct {
	Path     string // file the scene was loaded from
	BlendDir string // directory of the source .blend file, may be empty
	Active   string // name of the active object
	Objects  []*Object
}

// Object is one scene object with its particle systems.
type Object struct {
	Name     string
	Type     string
	Location mathutil.Vec3

	Systems      []ParticleSystem
	ActiveSystem int // index into Systems, -1 when none
}

// ParticleSystem holds the evaluated particles of one system.
type ParticleSystem struct {
	Name      string
	Type      string
	Particles []export.Particle
}

var _ export.Source = (*Object)(nil)

// Pivot returns the object origin.
func (o *Object) Pivot() mathutil.Vec3 {
	return o.Location
}

// Particles returns the particles of the active system. Objects that are not
// meshes or have no active system report export.ErrNoParticleSystem.
func (o *Object) Particles() ([]export.Particle, error) {
	if o == nil {
		return nil, &export.Error{Kind: export.KindNoSelection}
	}
	sys := o.ActiveParticleSystem()
	if o.Type != TypeMesh || sys == nil {
		return nil, &export.Error{
			Kind: export.KindNoParticleSystem,
			Err:  fmt.Errorf("object %q (%s) has no active particle system", o.Name, o.Type),
		}
	}
	return sys.Particles, nil
}

// ActiveParticleSystem returns the active system or nil.
func (o *Object) ActiveParticleSystem() *ParticleSystem {
	if o.ActiveSystem < 0 || o.ActiveSystem >= len(o.Systems) {
		return nil
	}
	return &o.Systems[o.ActiveSystem]
}

// Select returns the named object, or the active object when name is empty.
// It returns nil when nothing matches.
func (s *Scene) Select(name string) *Object {
	if name == "" {
		name = s.Active
	}
	if name == "" {
		return nil
	}
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// WithParticles returns every mesh object that has an active particle system,
// in scene order.
func (s *Scene) WithParticles() []*Object {
	var out []*Object
	for _, o := range s.Objects {
		if o.Type == TypeMesh && o.ActiveParticleSystem() != nil {
			out = append(out, o)
		}
	}
	return out
}

// Bounds returns the component-wise minimum and maximum of the particle positions.
func Bounds(particles []export.Particle) (lo, hi mathutil.Vec3) {
	if len(particles) == 0 {
		return lo, hi
	}
	lo, hi = particles[0].Position, particles[0].Position
	for _, p := range particles[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p.Position[k])
			hi[k] = max(hi[k], p.Position[k])
		}
	}
	return lo, hi
}
