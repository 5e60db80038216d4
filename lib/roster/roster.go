// Package roster provides read-only access to the student roster, the
// reference index used to resolve a canonical display name for a student
// id. The roster lives in a CSV file with the header ID_Estudiante,Nombre
// and is never mutated by this service; it is re-read on every lookup so
// that external edits are picked up immediately and enrichment stays
// best-effort.
package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

var csvHeader = []string{"ID_Estudiante", "Nombre"}

// Entry is a single roster row. Identity is the StudentID, assumed unique.
type Entry struct {
	StudentID string `json:"ID_Estudiante"`
	Name      string `json:"Nombre"`
}

// Index reads the roster file. It holds no state besides the path; every
// lookup loads the file anew.
type Index struct {
	path string
}

// NewIndex creates a roster index bound to the given CSV path.
func NewIndex(path string) *Index {
	return &Index{path: path}
}

// Ensure creates the roster file with its header if it does not exist.
func (ix *Index) Ensure() error {
	if _, err := os.Stat(ix.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("roster: %w", err)
	}

	if dir := filepath.Dir(ix.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("roster: %w", err)
		}
	}

	f, err := os.Create(ix.path)
	if err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("roster: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("roster: %w", err)
	}
	return f.Close()
}

// Load returns all roster entries.
func (ix *Index) Load() ([]Entry, error) {
	if err := ix.Ensure(); err != nil {
		return nil, err
	}

	f, err := os.Open(ix.path)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Roster files edited by hand sometimes carry ragged rows; be lenient.
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("roster: parse %s: %w", ix.path, err)
	}

	var entries []Entry
	for i, row := range rows {
		if i == 0 || len(row) < 1 || row[0] == "" {
			continue
		}
		e := Entry{StudentID: row[0]}
		if len(row) > 1 {
			e.Name = row[1]
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// NameMap returns a StudentID -> Name mapping over the whole roster.
func (ix *Index) NameMap() (map[string]string, error) {
	entries, err := ix.Load()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.StudentID] = e.Name
	}
	return out, nil
}

// ResolveName returns the canonical name for a student id. The boolean
// reports whether the id exists in the roster at all; a present id with an
// empty name still resolves.
func (ix *Index) ResolveName(studentID string) (string, bool, error) {
	entries, err := ix.Load()
	if err != nil {
		return "", false, err
	}
	for _, e := range entries {
		if e.StudentID == studentID {
			return e.Name, true, nil
		}
	}
	return "", false, nil
}
