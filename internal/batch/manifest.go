package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one object in the batch manifest.
type ManifestEntry struct {
	Object            string `json:"object"`
	File              string `json:"file,omitempty"`
	Rows              int    `json:"rows"`
	DuplicatesRemoved int    `json:"duplicates_removed"`
	Appended          bool   `json:"appended,omitempty"`
	Error             string `json:"error,omitempty"`
}

// WriteManifest writes a JSON summary of a batch run.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Object:            r.Object,
			File:              r.Summary.Path,
			Rows:              r.Summary.RowsWritten,
			DuplicatesRemoved: r.Summary.DuplicatesRemoved,
			Appended:          r.Summary.Appended,
		}
		if r.Err != nil {
			entries[i].Error = r.Err.Error()
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
