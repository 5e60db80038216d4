package roster

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRoster(t *testing.T, content string) *Index {
	t.Helper()
	path := filepath.Join(t.TempDir(), "estudiantes.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write roster fixture: %v", err)
	}
	return NewIndex(path)
}

func TestEnsureCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estudiantes.csv")
	ix := NewIndex(path)

	if err := ix.Ensure(); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	entries, err := ix.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty roster, got %d entries", len(entries))
	}
}

func TestResolveName(t *testing.T) {
	ix := writeRoster(t, "ID_Estudiante,Nombre\nA001,Ana Torres\nB002,Luis Rojas\nC003,\n")

	testCases := []struct {
		name      string
		studentID string
		wantName  string
		wantFound bool
	}{
		{name: "known id", studentID: "A001", wantName: "Ana Torres", wantFound: true},
		{name: "second id", studentID: "B002", wantName: "Luis Rojas", wantFound: true},
		{name: "present but empty name", studentID: "C003", wantName: "", wantFound: true},
		{name: "unknown id", studentID: "Z999", wantName: "", wantFound: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			name, found, err := ix.ResolveName(tc.studentID)
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			if found != tc.wantFound || name != tc.wantName {
				t.Errorf("ResolveName(%q) = (%q, %v), want (%q, %v)",
					tc.studentID, name, found, tc.wantName, tc.wantFound)
			}
		})
	}
}

func TestNameMapRereadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estudiantes.csv")
	if err := os.WriteFile(path, []byte("ID_Estudiante,Nombre\nA001,Ana Torres\n"), 0o644); err != nil {
		t.Fatalf("failed to write roster fixture: %v", err)
	}
	ix := NewIndex(path)

	m, err := ix.NameMap()
	if err != nil {
		t.Fatalf("name map failed: %v", err)
	}
	if len(m) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m))
	}

	// External edit must be visible on the next call (no caching)
	if err := os.WriteFile(path, []byte("ID_Estudiante,Nombre\nB002,Luis Rojas\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite roster fixture: %v", err)
	}
	m, err = ix.NameMap()
	if err != nil {
		t.Fatalf("second name map failed: %v", err)
	}
	if _, ok := m["A001"]; ok {
		t.Error("expected removed id to disappear from map")
	}
	if m["B002"] != "Luis Rojas" {
		t.Errorf("expected new entry, got %v", m)
	}
}
