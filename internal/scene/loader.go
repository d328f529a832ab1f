package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tm-spectators/internal/export"
	"tm-spectators/internal/mathutil"
)

// jsonScene matches the scene dump written by the host-side script.
type jsonScene struct {
	BlendDir string       `json:"blend_dir"`
	Active   string       `json:"active"`
	Objects  []jsonObject `json:"objects"`
}

type jsonObject struct {
	Name                 string               `json:"name"`
	Type                 string               `json:"type"`
	Location             []float64            `json:"location"`
	ActiveParticleSystem *int                 `json:"active_particle_system"`
	ParticleSystems      []jsonParticleSystem `json:"particle_systems"`
}

type jsonParticleSystem struct {
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Particles []jsonParticle `json:"particles"`
}

type jsonParticle struct {
	Location []float64 `json:"location"`
	Rotation []float64 `json:"rotation"` // w, x, y, z
}

// Load reads a scene dump.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	sc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	sc.Path = path
	if sc.BlendDir == "" {
		sc.BlendDir = filepath.Dir(path)
	}
	return sc, nil
}

// Parse decodes a scene dump from memory.
func Parse(raw []byte) (*Scene, error) {
	var js jsonScene
	if err := json.Unmarshal(raw, &js); err != nil {
		return nil, err
	}

	sc := &Scene{BlendDir: js.BlendDir, Active: js.Active}
	for _, jo := range js.Objects {
		loc, err := vec3(jo.Location)
		if err != nil {
			return nil, fmt.Errorf("object %q location: %w", jo.Name, err)
		}
		obj := &Object{Name: jo.Name, Type: jo.Type, Location: loc, ActiveSystem: -1}

		for si, jsys := range jo.ParticleSystems {
			sys := ParticleSystem{
				Name:      jsys.Name,
				Type:      jsys.Type,
				Particles: make([]export.Particle, 0, len(jsys.Particles)),
			}
			for pi, jp := range jsys.Particles {
				p, err := particle(jp)
				if err != nil {
					return nil, fmt.Errorf("object %q system %d particle %d: %w", jo.Name, si, pi, err)
				}
				sys.Particles = append(sys.Particles, p)
			}
			obj.Systems = append(obj.Systems, sys)
		}

		switch {
		case jo.ActiveParticleSystem != nil:
			obj.ActiveSystem = *jo.ActiveParticleSystem
		case len(obj.Systems) > 0:
			obj.ActiveSystem = 0
		}

		sc.Objects = append(sc.Objects, obj)
	}
	return sc, nil
}

func particle(jp jsonParticle) (export.Particle, error) {
	pos, err := vec3(jp.Location)
	if err != nil {
		return export.Particle{}, fmt.Errorf("location: %w", err)
	}
	rot := mathutil.QuatWXYZ(1, 0, 0, 0)
	switch len(jp.Rotation) {
	case 0:
	case 4:
		rot = mathutil.QuatWXYZ(jp.Rotation[0], jp.Rotation[1], jp.Rotation[2], jp.Rotation[3])
	default:
		return export.Particle{}, fmt.Errorf("rotation: want 4 components (w, x, y, z), got %d", len(jp.Rotation))
	}
	return export.Particle{Position: pos, Rotation: rot}, nil
}

func vec3(v []float64) (mathutil.Vec3, error) {
	switch len(v) {
	case 0:
		return mathutil.Vec3{}, nil
	case 3:
		return mathutil.Vec3{v[0], v[1], v[2]}, nil
	}
	return mathutil.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
}
