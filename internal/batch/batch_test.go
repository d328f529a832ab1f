package batch

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tm-spectators/internal/export"
	"tm-spectators/internal/scene"
)

const dump = `{
  "objects": [
    {"name": "North Stand", "type": "MESH", "location": [0, 0, 0],
     "particle_systems": [{"particles": [{"location": [0, 0, 1]}, {"location": [1, 0, 1]}]}]},
    {"name": "Empty", "type": "MESH", "location": [0, 0, 0],
     "particle_systems": [{"particles": []}]},
    {"name": "Lamp", "type": "LIGHT", "location": [0, 0, 0]},
    {"name": "South/Stand", "type": "MESH", "location": [0, 0, 1],
     "particle_systems": [{"particles": [{"location": [0, 0, 1]}]}]}
  ]
}`

func TestRun(t *testing.T) {
	sc, err := scene.Parse([]byte(dump))
	require.NoError(t, err)

	cfg := export.DefaultConfig()
	cfg.Path = t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	results := Run(sc, cfg, log)
	require.Len(t, results, 3)

	require.True(t, results[0].Success())
	require.Equal(t, filepath.Join(cfg.Path, "North Stand.csv"), results[0].Summary.Path)
	require.Equal(t, 2, results[0].Summary.RowsWritten)

	require.False(t, results[1].Success())
	require.ErrorIs(t, results[1].Err, export.ErrNoParticleSystem)

	require.True(t, results[2].Success())
	require.Equal(t, filepath.Join(cfg.Path, "South_Stand.csv"), results[2].Summary.Path)

	manifest := filepath.Join(cfg.Path, "manifest.json")
	require.NoError(t, WriteManifest(manifest, results))
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)

	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 3)
	require.Equal(t, "North Stand", entries[0].Object)
	require.Equal(t, 2, entries[0].Rows)
	require.NotEmpty(t, entries[1].Error)
}

func TestFileName(t *testing.T) {
	require.Equal(t, "Stand_A", FileName("Stand/A"))
	require.Equal(t, "a_b_c", FileName(`a:b\c`))
	require.Equal(t, export.DefaultName, FileName("  "))
	require.Equal(t, export.DefaultName, FileName(".."))
}
