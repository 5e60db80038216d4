// Package catalog defines the subject catalog consumed during inserts.
// The catalog itself is owned by the external NRC microservice; this
// package holds the shared types, the Client capability that the record
// service depends on, and the CSV-backed Table the microservice serves.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

var csvHeader = []string{"NRC", "Materia"}

// seeds is the initial catalog content, written when the CSV is created.
var seeds = []Entry{
	{NRC: "MAT101", Subject: "Matemáticas I"},
	{NRC: "PRO201", Subject: "Programación II"},
	{NRC: "SOF301", Subject: "Ingeniería de Software I"},
	{NRC: "BD102", Subject: "Bases de Datos"},
}

// Entry is a single catalog row keyed by NRC (the subject code).
type Entry struct {
	NRC     string `json:"NRC"`
	Subject string `json:"Materia"`
}

// Result is the business outcome of a catalog lookup. Transport-level
// failures (timeout, refused connection, malformed payload) are reported
// through the error return of Client.Lookup instead, so that callers can
// always tell a missing subject apart from a failing service.
type Result struct {
	Found bool
	Entry Entry
}

// Client is the injected lookup capability. Every insert performs a live
// lookup through it; results are never cached across requests.
type Client interface {
	Lookup(nrc string) (Result, error)
}

// --------------------------------------------------------------------------
// Static Client (in-memory fake)
// --------------------------------------------------------------------------

// StaticClient is a map-backed Client used in tests and embedded setups.
type StaticClient struct {
	Entries map[string]Entry

	// Err, when set, is returned by every lookup. This simulates an
	// unreachable catalog service.
	Err error
}

func (c *StaticClient) Lookup(nrc string) (Result, error) {
	if c.Err != nil {
		return Result{}, c.Err
	}
	e, ok := c.Entries[nrc]
	if !ok {
		return Result{Found: false}, nil
	}
	return Result{Found: true, Entry: e}, nil
}

// --------------------------------------------------------------------------
// CSV Table (served by the NRC microservice)
// --------------------------------------------------------------------------

// Table is the CSV-backed catalog container. Lookups re-read the file so
// that edits to the CSV are picked up without a restart.
type Table struct {
	path string
}

// NewTable creates a catalog table bound to the given CSV path.
func NewTable(path string) *Table {
	return &Table{path: path}
}

// Ensure creates the catalog file with header and seed rows if missing.
func (tb *Table) Ensure() error {
	if _, err := os.Stat(tb.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("catalog: %w", err)
	}

	if dir := filepath.Dir(tb.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
	}

	f, err := os.Create(tb.path)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("catalog: %w", err)
	}
	for _, e := range seeds {
		if err := w.Write([]string{e.NRC, e.Subject}); err != nil {
			f.Close()
			return fmt.Errorf("catalog: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("catalog: %w", err)
	}
	return f.Close()
}

// Load returns the catalog as an NRC -> Entry map.
func (tb *Table) Load() (map[string]Entry, error) {
	if err := tb.Ensure(); err != nil {
		return nil, err
	}

	f, err := os.Open(tb.path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", tb.path, err)
	}

	out := make(map[string]Entry)
	for i, row := range rows {
		if i == 0 || len(row) < 1 || row[0] == "" {
			continue
		}
		e := Entry{NRC: row[0]}
		if len(row) > 1 {
			e.Subject = row[1]
		}
		out[e.NRC] = e
	}
	return out, nil
}

// Lookup implements Client directly on the table, used by the NRC server
// and by embedded single-process setups.
func (tb *Table) Lookup(nrc string) (Result, error) {
	m, err := tb.Load()
	if err != nil {
		return Result{}, err
	}
	e, ok := m[nrc]
	if !ok {
		return Result{Found: false}, nil
	}
	return Result{Found: true, Entry: e}, nil
}
