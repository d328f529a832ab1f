package batch

import (
	"log/slog"
	"strings"

	"tm-spectators/internal/export"
	"tm-spectators/internal/scene"
)

// Result holds the outcome of exporting one object.
type Result struct {
	Object  string
	Summary export.Summary
	Err     error
}

// Success reports whether the object was exported.
func (r Result) Success() bool { return r.Err == nil }

// Run exports every object with an active particle system, one after the
// other, each to its own file named after the object. cfg.Name is ignored.
func Run(sc *scene.Scene, cfg export.Config, log *slog.Logger) []Result {
	if log == nil {
		log = slog.Default()
	}

	objects := sc.WithParticles()
	results := make([]Result, 0, len(objects))
	for i, obj := range objects {
		oc := cfg
		oc.Name = FileName(obj.Name)

		log.Debug("exporting object", "object", obj.Name, "n", i+1, "of", len(objects))
		sum, err := export.Export(obj, oc)
		if err != nil {
			log.Warn("export failed", "object", obj.Name, "err", err)
		} else {
			log.Info("exported object", "object", obj.Name, "rows", sum.RowsWritten, "duplicates", sum.DuplicatesRemoved)
		}
		results = append(results, Result{Object: obj.Name, Summary: sum, Err: err})
	}
	return results
}

// FileName turns an object name into a file name without extension.
func FileName(object string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, strings.TrimSpace(object))
	if name == "" || name == "." || name == ".." {
		return export.DefaultName
	}
	return name
}
