package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"tm-spectators/internal/export"
)

// EnvPrefix prefixes every environment override, e.g. SPECTATORS_MIRROR_X.
const EnvPrefix = "SPECTATORS_"

// DefaultPreviewSize is the preview edge length in pixels.
const DefaultPreviewSize = 512

// Config holds the exporter panel settings plus the CLI-only inputs.
type Config struct {
	// Inputs
	Scene   string `json:"scene" toml:"scene" env:"SCENE"`
	Object  string `json:"object,omitempty" toml:"object,omitempty" env:"OBJECT"`
	BaseDir string `json:"base_dir,omitempty" toml:"base_dir,omitempty" env:"BASE_DIR"`

	// Output
	ExportPath     string `json:"export_path" toml:"export_path" env:"EXPORT_PATH"`
	ExportName     string `json:"export_name" toml:"export_name" env:"EXPORT_NAME"`
	AddColumnNames bool   `json:"add_column_names" toml:"add_column_names" env:"ADD_COLUMN_NAMES"`
	AppendToFile   bool   `json:"append_to_file" toml:"append_to_file" env:"APPEND_TO_FILE"`
	OpenFolder     bool   `json:"open_folder" toml:"open_folder" env:"OPEN_FOLDER"`
	OpenFile       bool   `json:"open_file" toml:"open_file" env:"OPEN_FILE"`

	// Transform, rotation in degrees
	RotationX      float64  `json:"rotation_x" toml:"rotation_x" env:"ROTATION_X"`
	RotationY      float64  `json:"rotation_y" toml:"rotation_y" env:"ROTATION_Y"`
	RotationZ      float64  `json:"rotation_z" toml:"rotation_z" env:"ROTATION_Z"`
	MirrorX        bool     `json:"mirror_x" toml:"mirror_x" env:"MIRROR_X"`
	MirrorY        bool     `json:"mirror_y" toml:"mirror_y" env:"MIRROR_Y"`
	MirrorZ        bool     `json:"mirror_z" toml:"mirror_z" env:"MIRROR_Z"`
	VerticalOffset *float64 `json:"vertical_offset,omitempty" toml:"vertical_offset,omitempty" env:"VERTICAL_OFFSET"`

	// Preview image (.webp, .tga or .png), empty for none
	Preview     string `json:"preview,omitempty" toml:"preview,omitempty" env:"PREVIEW"`
	PreviewSize int    `json:"preview_size,omitempty" toml:"preview_size,omitempty" env:"PREVIEW_SIZE"`
}

// Load reads a TOML or JSON config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML or JSON, chosen by extension.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.NewEncoder(f).Encode(cfg)
	default:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		err = enc.Encode(cfg)
	}
	if err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return f.Close()
}

// ApplyEnv overrides fields from SPECTATORS_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
// Nil pointers mean the flag was not given.
type Flags struct {
	Scene     string
	Object    string
	OutputDir string
	Name      string
	Here      bool // write next to the scene file

	Append     *bool
	Header     *bool
	OpenFolder *bool
	OpenFile   *bool

	RotationX *float64
	RotationY *float64
	RotationZ *float64
	MirrorX   *bool
	MirrorY   *bool
	MirrorZ   *bool
	Offset    *float64

	Preview     string
	PreviewSize int
}

// Resolve applies flags and fills defaults. Paths are made absolute once
// the base directory is known, see ResolveBaseDir.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Object != "" {
		c.Object = flags.Object
	}
	if flags.OutputDir != "" {
		c.ExportPath = flags.OutputDir
	}
	if flags.Here {
		c.ExportPath = ""
	}
	if flags.Name != "" {
		c.ExportName = flags.Name
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}

	setBool(&c.AppendToFile, flags.Append)
	setBool(&c.AddColumnNames, flags.Header)
	setBool(&c.OpenFolder, flags.OpenFolder)
	setBool(&c.OpenFile, flags.OpenFile)
	setBool(&c.MirrorX, flags.MirrorX)
	setBool(&c.MirrorY, flags.MirrorY)
	setBool(&c.MirrorZ, flags.MirrorZ)
	setFloat(&c.RotationX, flags.RotationX)
	setFloat(&c.RotationY, flags.RotationY)
	setFloat(&c.RotationZ, flags.RotationZ)
	if flags.Offset != nil {
		v := *flags.Offset
		c.VerticalOffset = &v
	}

	// Defaults
	if strings.TrimSpace(c.ExportName) == "" {
		c.ExportName = export.DefaultName
	}
	if c.VerticalOffset == nil {
		v := export.DefaultVerticalOffset
		c.VerticalOffset = &v
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = DefaultPreviewSize
	}
}

// ResolveBaseDir sets the directory relative paths are resolved against,
// normally the directory of the scene file, unless one was configured.
// Relative export and preview paths are then made absolute.
func (c *Config) ResolveBaseDir(sceneDir string) error {
	if c.BaseDir == "" {
		c.BaseDir = sceneDir
	}
	base, err := filepath.Abs(c.BaseDir)
	if err != nil {
		return fmt.Errorf("config: base dir %s: %w", c.BaseDir, err)
	}
	c.BaseDir = base

	if !filepath.IsAbs(c.ExportPath) {
		c.ExportPath = filepath.Join(c.BaseDir, c.ExportPath)
	}
	if c.Preview != "" && !filepath.IsAbs(c.Preview) {
		c.Preview = filepath.Join(c.BaseDir, c.Preview)
	}
	return nil
}

// ExportConfig builds the per-call pipeline settings.
func (c Config) ExportConfig() export.Config {
	offset := export.DefaultVerticalOffset
	if c.VerticalOffset != nil {
		offset = *c.VerticalOffset
	}
	return export.Config{
		Rotation:       [3]float64{c.RotationX, c.RotationY, c.RotationZ},
		MirrorX:        c.MirrorX,
		MirrorY:        c.MirrorY,
		MirrorZ:        c.MirrorZ,
		Path:           c.ExportPath,
		Name:           c.ExportName,
		BaseDir:        c.BaseDir,
		Append:         c.AppendToFile,
		Header:         c.AddColumnNames,
		VerticalOffset: offset,
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
