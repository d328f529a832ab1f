package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Columns is the header line expected by the game's item editor.
var Columns = []string{"quatW", "quatX", "quatY", "quatZ", "posX", "posZ", "posY"}

// WriteRows writes rows as comma-separated lines, optionally preceded by the header.
func WriteRows(w io.Writer, rows []Row, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(Columns); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if err := cw.Write(r.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRows parses an export file. A header line is skipped wherever it
// appears and blank lines are ignored.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)
	cr.TrimLeadingSpace = true

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		if slices.Equal(rec, Columns) {
			continue
		}
		var row Row
		for i, f := range rec {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				line, _ := cr.FieldPos(i)
				return nil, fmt.Errorf("line %d column %s: %w", line, Columns[i], err)
			}
			if i < 4 {
				row.Quat[i] = v
			} else {
				row.Pos[i-4] = v
			}
		}
		rows = append(rows, row)
	}
}

// ReadFile reads every row of the export file at path.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: read %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("export: parse %s: %w", path, err)
	}
	return rows, nil
}

// StripBlankLines rewrites the file at path without empty or
// whitespace-only lines.
func StripBlankLines(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Kind: KindIO, Op: "read", Path: path, Err: err}
	}

	var b strings.Builder
	b.Grow(len(data))
	for _, line := range strings.SplitAfter(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(line)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return &Error{Kind: KindIO, Op: "rewrite", Path: path, Err: err}
	}
	return nil
}
