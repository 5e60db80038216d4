package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notaslab/notas/lib/catalog"
	"github.com/notaslab/notas/lib/roster"
	"github.com/notaslab/notas/lib/store"
	"github.com/notaslab/notas/rpc/common"
	"github.com/notaslab/notas/rpc/server"
)

// startRecordServer runs a record service on an ephemeral port and
// returns a client pointed at it.
func startRecordServer(t *testing.T) *Client {
	t.Helper()

	dir := t.TempDir()
	rosterPath := filepath.Join(dir, "estudiantes.csv")
	if err := os.WriteFile(rosterPath, []byte("ID_Estudiante,Nombre\nA001,Ana Torres\n"), 0o644); err != nil {
		t.Fatalf("failed to write roster fixture: %v", err)
	}

	d := server.NewDispatcher(
		store.New(store.NewCSVSource(filepath.Join(dir, "calificaciones.csv"))),
		roster.NewIndex(rosterPath),
		&catalog.StaticClient{Entries: map[string]catalog.Entry{
			"MAT101": {NRC: "MAT101", Subject: "Matemáticas I"},
		}},
	)
	srv := server.NewServer(common.ServerConfig{
		Endpoint:      "127.0.0.1:0",
		Mode:          common.ModeConcurrent,
		TimeoutSecond: 5,
	}, d)

	ln, err := srv.Listen()
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	go srv.Serve(ln)

	return NewClient(common.ClientConfig{
		Endpoint:      ln.Addr().String(),
		TimeoutSecond: 5,
	})
}

func TestClientLifecycle(t *testing.T) {
	c := startRecordServer(t)

	resp, err := c.Agregar("A001", "MAT101", "8.5")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if resp.Status != common.StatusOk {
		t.Fatalf("insert rejected: %+v", resp)
	}

	resp, err = c.Buscar("A001")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if resp.Status != common.StatusOk {
		t.Fatalf("find rejected: %+v", resp)
	}

	resp, err = c.Actualizar("A001", "", "9.0")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if resp.Status != common.StatusOk {
		t.Fatalf("update rejected: %+v", resp)
	}

	resp, err = c.Listar()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	rows, ok := resp.Data.([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("unexpected list payload: %#v", resp.Data)
	}

	resp, err = c.Eliminar("A001", "MAT101")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if resp.Status != common.StatusOk {
		t.Fatalf("delete rejected: %+v", resp)
	}

	resp, err = c.Buscar("A001")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if resp.Status != common.StatusNotFound {
		t.Errorf("expected not_found after delete, got %+v", resp)
	}
}

func TestClientReportsRejectionsViaStatus(t *testing.T) {
	c := startRecordServer(t)

	// Unknown NRC: transport succeeds, the rejection rides in the status
	resp, err := c.Agregar("A001", "XX999", "8.5")
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Status != common.StatusError {
		t.Errorf("expected error status, got %+v", resp)
	}
}

func TestClientUnreachableServer(t *testing.T) {
	c := NewClient(common.ClientConfig{Endpoint: "127.0.0.1:1", TimeoutSecond: 1})
	if _, err := c.Listar(); err == nil {
		t.Error("expected a transport error against a dead endpoint")
	}
}
