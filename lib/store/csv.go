package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// csvHeader is the fixed column layout of the persisted grade container.
var csvHeader = []string{"ID_Estudiante", "Materia", "Calificacion"}

// csvSource persists records to a single CSV file. Every Replace rewrites
// the file synchronously; there is no incremental append.
type csvSource struct {
	path string
}

// NewCSVSource creates a CSV-backed source for the given path. The file
// and its parent directory are created on first use, with the header row
// written immediately so that an empty container is still a valid file.
func NewCSVSource(path string) Source {
	return &csvSource{path: path}
}

// ensure creates the file with its header if it does not exist yet.
func (c *csvSource) ensure() error {
	if _, err := os.Stat(c.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return c.write(nil)
}

func (c *csvSource) Load() ([]Record, error) {
	if err := c.ensure(); err != nil {
		return nil, fmt.Errorf("csv source: %w", err)
	}

	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("csv source: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv source: parse %s: %w", c.path, err)
	}

	var recs []Record
	for i, row := range rows {
		// Skip the header row.
		if i == 0 {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("csv source: row %d of %s has %d columns, want 3", i+1, c.path, len(row))
		}
		recs = append(recs, Record{StudentID: row[0], Subject: row[1], Grade: row[2]})
	}
	return recs, nil
}

func (c *csvSource) Replace(recs []Record) error {
	if err := c.ensure(); err != nil {
		return fmt.Errorf("csv source: %w", err)
	}
	return c.write(recs)
}

// write truncates the file and writes header plus all records.
func (c *csvSource) write(recs []Record) error {
	f, err := os.Create(c.path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return err
	}
	for _, r := range recs {
		if err := w.Write([]string{r.StudentID, r.Subject, r.Grade}); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
