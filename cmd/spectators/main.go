package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"tm-spectators/internal/batch"
	"tm-spectators/internal/config"
	"tm-spectators/internal/export"
	"tm-spectators/internal/preview"
	"tm-spectators/internal/report"
	"tm-spectators/internal/scene"
	"tm-spectators/internal/watch"
)

// options are the flags that only steer this command.
type options struct {
	all      bool
	manifest string
}

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .toml or .json config file")
	sceneFile := flag.String("scene", "", "Scene dump written by the host (JSON)")
	object := flag.String("object", "", "Object to export (default: active object)")
	all := flag.Bool("all", false, "Export every object with a particle system to <object>.csv")
	manifest := flag.String("manifest", "", "With -all: write a JSON summary to this path")
	outputDir := flag.String("out", "", "Output directory (default: scene directory)")
	name := flag.String("name", "", "File name without .csv (default: PosExport)")
	here := flag.Bool("here", false, "Write next to the scene file")
	appendFile := flag.Bool("append", false, "Append to an existing file")
	header := flag.Bool("header", false, "Add column names to a new file")
	rotX := flag.Float64("rot-x", 0, "Extra rotation about X in degrees")
	rotY := flag.Float64("rot-y", 0, "Extra rotation about Y in degrees")
	rotZ := flag.Float64("rot-z", 0, "Extra rotation about Z in degrees")
	mirrorX := flag.Bool("mirror-x", false, "Mirror X")
	mirrorY := flag.Bool("mirror-y", false, "Mirror Y")
	mirrorZ := flag.Bool("mirror-z", false, "Mirror Z")
	offset := flag.Float64("offset", export.DefaultVerticalOffset, "Height correction added after the axis swap")
	openFolder := flag.Bool("open-folder", false, "Open folder after export")
	openFile := flag.Bool("open-file", false, "Open file after export")
	previewPath := flag.String("preview", "", "Write a top-down preview (.webp, .tga or .png)")
	previewSize := flag.Int("preview-size", 0, "Preview size in pixels (default: 512)")
	saveConfig := flag.String("save-config", "", "Write the resolved settings to this file and exit")
	watchScene := flag.Bool("watch", false, "Export again whenever the scene dump changes")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	// Only flags given on the command line override the config file.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	boolFlag := func(name string, v *bool) *bool {
		if set[name] {
			return v
		}
		return nil
	}
	floatFlag := func(name string, v *float64) *float64 {
		if set[name] {
			return v
		}
		return nil
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	rep := report.New(os.Stdout)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			rep.Error(err)
			os.Exit(1)
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		rep.Error(err)
		os.Exit(1)
	}

	// CLI flags override config file and environment
	cfg.Resolve(config.Flags{
		Scene:       *sceneFile,
		Object:      *object,
		OutputDir:   *outputDir,
		Name:        *name,
		Here:        *here,
		Append:      boolFlag("append", appendFile),
		Header:      boolFlag("header", header),
		OpenFolder:  boolFlag("open-folder", openFolder),
		OpenFile:    boolFlag("open-file", openFile),
		RotationX:   floatFlag("rot-x", rotX),
		RotationY:   floatFlag("rot-y", rotY),
		RotationZ:   floatFlag("rot-z", rotZ),
		MirrorX:     boolFlag("mirror-x", mirrorX),
		MirrorY:     boolFlag("mirror-y", mirrorY),
		MirrorZ:     boolFlag("mirror-z", mirrorZ),
		Offset:      floatFlag("offset", offset),
		Preview:     *previewPath,
		PreviewSize: *previewSize,
	})

	if *saveConfig != "" {
		if err := config.Save(*saveConfig, cfg); err != nil {
			rep.Error(err)
			os.Exit(1)
		}
		rep.Info("Settings saved to %s.", *saveConfig)
		return
	}

	if cfg.Scene == "" {
		rep.Error(errors.New("no scene dump given: use -scene or set scene in the config file"))
		os.Exit(2)
	}

	opts := options{all: *all, manifest: *manifest}

	if !*watchScene {
		if !run(cfg, opts, log, rep) {
			os.Exit(1)
		}
		return
	}

	// Register the watch before the first export so no save is missed.
	w, err := watch.New(cfg.Scene, watch.DefaultDebounce)
	if err != nil {
		rep.Error(err)
		os.Exit(1)
	}
	run(cfg, opts, log, rep)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Info("watching scene dump", "path", cfg.Scene)
	if err := w.Run(ctx, func() { run(cfg, opts, log, rep) }); err != nil {
		rep.Error(err)
		os.Exit(1)
	}
}

// run performs one export pass. cfg is a copy, so resolving paths against
// the scene directory does not leak into the next pass.
func run(cfg config.Config, opts options, log *slog.Logger, rep *report.Reporter) bool {
	sc, err := scene.Load(cfg.Scene)
	if err != nil {
		rep.Error(err)
		return false
	}
	if err := cfg.ResolveBaseDir(sc.BlendDir); err != nil {
		rep.Error(err)
		return false
	}
	ecfg := cfg.ExportConfig()

	if opts.all {
		return runBatch(sc, ecfg, opts, log, rep)
	}

	log.Info("Starting positions export...")

	// A missing object must reach Export as a nil interface.
	var src export.Source
	if obj := sc.Select(cfg.Object); obj != nil {
		src = obj
	}
	if path, err := ecfg.OutputPath(); err == nil {
		log.Info("Writing to file", "path", path)
	}

	sum, err := export.Export(src, ecfg)
	if err != nil {
		rep.Error(err)
		return false
	}
	log.Info(fmt.Sprintf("Removed %d duplicate positions.", sum.DuplicatesRemoved))
	rep.Summary(sum)
	log.Info("Export successful.")

	if cfg.Preview != "" {
		writePreview(cfg, sum, log, rep)
	}

	// Presentation actions, only after a successful export
	if cfg.OpenFolder {
		if err := report.OpenFolder(sum.Path); err != nil {
			log.Warn("open folder failed", "err", err)
		}
	}
	if cfg.OpenFile {
		if err := report.Open(sum.Path); err != nil {
			log.Warn("open file failed", "err", err)
		}
	}
	return true
}

func runBatch(sc *scene.Scene, ecfg export.Config, opts options, log *slog.Logger, rep *report.Reporter) bool {
	results := batch.Run(sc, ecfg, log)
	if len(results) == 0 {
		rep.Error(&export.Error{Kind: export.KindNoParticleSystem})
		return false
	}

	failed := 0
	for _, r := range results {
		if r.Success() {
			rep.Summary(r.Summary)
			continue
		}
		failed++
		rep.Field("Object", r.Object)
		rep.Error(r.Err)
	}
	rep.Info("Exported %d/%d objects.", len(results)-failed, len(results))

	if opts.manifest != "" {
		if err := batch.WriteManifest(opts.manifest, results); err != nil {
			log.Warn("manifest write failed", "err", err)
		} else {
			rep.Field("Manifest", opts.manifest)
		}
	}
	return failed == 0
}

// writePreview renders the whole file, so appended batches show up too.
func writePreview(cfg config.Config, sum export.Summary, log *slog.Logger, rep *report.Reporter) {
	rows := sum.Rows
	if sum.Appended {
		all, err := export.ReadFile(sum.Path)
		if err != nil {
			log.Warn("preview: reading export back failed, showing this batch only", "err", err)
		} else {
			rows = all
		}
	}

	img := preview.Render(rows, preview.Options{
		Size:        cfg.PreviewSize,
		Supersample: preview.DefaultOptions.Supersample,
		Caption:     fmt.Sprintf("%s: %d spectators", filepath.Base(sum.Path), len(rows)),
	})
	if err := preview.Save(cfg.Preview, img); err != nil {
		log.Warn("preview failed", "err", err)
		return
	}
	rep.Field("Preview", cfg.Preview)
}
