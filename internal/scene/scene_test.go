package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tm-spectators/internal/export"
	"tm-spectators/internal/mathutil"
)

const dump = `{
  "active": "Stand",
  "objects": [
    {"name": "Camera", "type": "CAMERA", "location": [0, -10, 5]},
    {"name": "Stand", "type": "MESH", "location": [1, 2, 3],
     "particle_systems": [
       {"name": "Spectators", "type": "HAIR", "particles": [
         {"location": [1, 2, 6], "rotation": [1, 0, 0, 0]},
         {"location": [2, 2, 4]}
       ]}
     ]},
    {"name": "Bare", "type": "MESH", "location": [0, 0, 0]},
    {"name": "Inactive", "type": "MESH", "active_particle_system": 3,
     "particle_systems": [{"name": "P", "particles": []}]}
  ]
}`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(dump))
	require.NoError(t, err)
	require.Len(t, sc.Objects, 4)

	stand := sc.Select("")
	require.NotNil(t, stand)
	require.Equal(t, "Stand", stand.Name)
	require.Equal(t, mathutil.Vec3{1, 2, 3}, stand.Pivot())

	particles, err := stand.Particles()
	require.NoError(t, err)
	require.Len(t, particles, 2)
	require.Equal(t, mathutil.Vec3{2, 2, 4}, particles[1].Position)
	require.Equal(t, mathutil.QuatWXYZ(1, 0, 0, 0), particles[1].Rotation)

	require.Nil(t, sc.Select("Nope"))
}

func TestObject_ParticlesWithoutSystem(t *testing.T) {
	sc, err := Parse([]byte(dump))
	require.NoError(t, err)

	for _, name := range []string{"Camera", "Bare", "Inactive"} {
		_, err := sc.Select(name).Particles()
		require.ErrorIs(t, err, export.ErrNoParticleSystem, name)
	}

	var none *Object
	_, err = none.Particles()
	require.ErrorIs(t, err, export.ErrNoSelection)
}

func TestScene_WithParticles(t *testing.T) {
	sc, err := Parse([]byte(dump))
	require.NoError(t, err)

	objs := sc.WithParticles()
	require.Len(t, objs, 1)
	require.Equal(t, "Stand", objs[0].Name)
}

func TestParse_BadComponents(t *testing.T) {
	_, err := Parse([]byte(`{"objects":[{"name":"A","location":[1,2]}]}`))
	require.ErrorContains(t, err, "location")

	_, err = Parse([]byte(`{"objects":[{"name":"A","particle_systems":[{"particles":[{"location":[0,0,0],"rotation":[1,0,0]}]}]}]}`))
	require.ErrorContains(t, err, "rotation")
}

func TestLoad_DefaultsBlendDirToDumpDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(dump), 0644))

	sc, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, dir, sc.BlendDir)
	require.Equal(t, path, sc.Path)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.ErrorContains(t, err, "scene: read")
}

func TestExportFromScene(t *testing.T) {
	sc, err := Parse([]byte(dump))
	require.NoError(t, err)

	cfg := export.DefaultConfig()
	cfg.Path = t.TempDir()
	sum, err := export.Export(sc.Select("Stand"), cfg)
	require.NoError(t, err)
	require.Equal(t, 2, sum.RowsWritten)
	// Sorted by raw height: z=4 first, then z=6.
	require.Equal(t, [3]float64{1, 0, 0}, sum.Rows[0].Pos)
	require.Equal(t, [3]float64{0, 2, 0}, sum.Rows[1].Pos)
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]export.Particle{
		{Position: mathutil.Vec3{1, -2, 3}},
		{Position: mathutil.Vec3{-1, 5, 0}},
	})
	require.Equal(t, mathutil.Vec3{-1, -2, 0}, lo)
	require.Equal(t, mathutil.Vec3{1, 5, 3}, hi)
}
