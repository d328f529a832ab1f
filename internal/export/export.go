// Package export turns particle transforms into the spectator CSV read by
// the game's item editor.
//
// The pipeline sorts particles by raw height, converts them into the game's
// Y-up frame relative to the object origin, applies the extra rotation and
// mirrors, drops rows whose rounded position was already seen, and writes
// the result. Nothing is kept between calls; the file is the only output.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tm-spectators/internal/mathutil"
)

// OutputPath returns the absolute path of the export file: Path/Name.csv,
// resolved against BaseDir (or the working directory) when relative.
func (c Config) OutputPath() (string, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = DefaultName
	}
	p := filepath.Join(c.Path, name+".csv")
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}

	base := c.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		base = wd
	}
	return filepath.Abs(filepath.Join(base, p))
}

// Export runs the whole pipeline for one selection and writes the file.
func Export(src Source, cfg Config) (Summary, error) {
	if src == nil {
		return Summary{}, &Error{Kind: KindNoSelection}
	}

	particles, err := src.Particles()
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return Summary{}, err
		}
		return Summary{}, &Error{Kind: KindNoParticleSystem, Err: err}
	}
	if len(particles) == 0 {
		return Summary{}, &Error{Kind: KindNoParticleSystem}
	}

	pivot := src.Pivot()
	if !mathutil.IsFinite(pivot) {
		return Summary{}, &Error{Kind: KindInvalidParticle, Op: "validate", Err: errors.New("pivot is not finite")}
	}
	for i, p := range particles {
		if !mathutil.IsFinite(p.Position) || !mathutil.QuatIsFinite(p.Rotation) {
			return Summary{}, &Error{Kind: KindInvalidParticle, Op: "validate", Err: fmt.Errorf("particle %d is not finite", i)}
		}
	}

	path, err := cfg.OutputPath()
	if err != nil {
		return Summary{}, &Error{Kind: KindIO, Op: "resolve", Path: cfg.Path, Err: err}
	}

	rows, removed := Dedup(Transform(particles, pivot, cfg))

	appended, err := writeFile(path, rows, cfg)
	if err != nil {
		return Summary{}, err
	}
	if err := StripBlankLines(path); err != nil {
		return Summary{}, err
	}

	return Summary{
		Path:              path,
		RowsWritten:       len(rows),
		DuplicatesRemoved: removed,
		Appended:          appended,
		Rows:              rows,
	}, nil
}

// writeFile creates or appends to path. In append mode a blank separator
// line goes first and no header is written.
func writeFile(path string, rows []Row, cfg Config) (appended bool, err error) {
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	header := cfg.Header
	if cfg.Append {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		header = false
		if info, statErr := os.Stat(path); statErr == nil && info.Size() > 0 {
			appended = true
		}
	}

	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return false, &Error{Kind: KindIO, Op: "open", Path: path, Err: err}
	}

	bw := bufio.NewWriter(f)
	if cfg.Append {
		bw.WriteString("\n")
	}
	if err := WriteRows(bw, rows, header); err != nil {
		f.Close()
		return false, &Error{Kind: KindIO, Op: "write", Path: path, Err: err}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return false, &Error{Kind: KindIO, Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return false, &Error{Kind: KindIO, Op: "write", Path: path, Err: err}
	}
	return appended, nil
}
