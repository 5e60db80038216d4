package nrc

import (
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/notaslab/notas/rpc/common"
	"github.com/notaslab/notas/rpc/transport"
)

// startServer runs a catalog server on an ephemeral port backed by the
// seeded catalog CSV and returns its endpoint.
func startServer(t *testing.T) string {
	t.Helper()

	srv := NewServer(common.NRCServerConfig{
		Endpoint:      "127.0.0.1:0",
		CatalogPath:   filepath.Join(t.TempDir(), "nrcs.csv"),
		TimeoutSecond: 2,
		LogLevel:      "error",
	})

	ln, err := srv.Listen()
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go srv.Serve(ln)
	return ln.Addr().String()
}

// stubServer answers every connection with the given raw line (or stalls
// when line is empty) to exercise the client's failure paths.
func stubServer(t *testing.T, line string) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				if _, err := transport.ReadLine(conn, time.Second); err != nil {
					return
				}
				if line == "" {
					// Stall until the client gives up
					time.Sleep(5 * time.Second)
					return
				}
				transport.WriteLine(conn, []byte(line), time.Second)
			}(conn)
		}
	}()
	return ln.Addr().String()
}

func newClient(endpoint string) *Client {
	return NewClient(common.ClientConfig{Endpoint: endpoint, TimeoutSecond: 1})
}

func TestLookupAgainstRealServer(t *testing.T) {
	endpoint := startServer(t)
	client := newClient(endpoint)

	t.Run("seeded subject is found", func(t *testing.T) {
		res, err := client.Lookup("MAT101")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if !res.Found || res.Entry.Subject != "Matemáticas I" {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("unknown subject is not found", func(t *testing.T) {
		res, err := client.Lookup("XX999")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if res.Found {
			t.Errorf("expected not found, got %+v", res)
		}
	})
}

func TestLookupFailurePaths(t *testing.T) {
	testCases := []struct {
		name     string
		endpoint func(t *testing.T) string
		wantErr  string
	}{
		{
			name: "unreachable service",
			endpoint: func(t *testing.T) string {
				// Bind and close immediately to get a dead port
				ln, err := net.Listen("tcp", "127.0.0.1:0")
				if err != nil {
					t.Fatalf("listen failed: %v", err)
				}
				addr := ln.Addr().String()
				ln.Close()
				return addr
			},
			wantErr: "unreachable",
		},
		{
			name:     "response timeout",
			endpoint: func(t *testing.T) string { return stubServer(t, "") },
			wantErr:  "read failed",
		},
		{
			name:     "malformed payload",
			endpoint: func(t *testing.T) string { return stubServer(t, "this is not json") },
			wantErr:  "invalid payload",
		},
		{
			name:     "upstream error status",
			endpoint: func(t *testing.T) string { return stubServer(t, `{"status":"error","message":"disk on fire"}`) },
			wantErr:  "disk on fire",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newClient(tc.endpoint(t))
			_, err := client.Lookup("MAT101")
			if err == nil {
				t.Fatal("expected an error result")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestServerRejectsWrongCommand(t *testing.T) {
	endpoint := startServer(t)

	conn, err := net.Dial("tcp", endpoint)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	if err := transport.WriteLine(conn, []byte("LISTAR"), time.Second); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	line, err := transport.ReadLine(conn, time.Second)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	resp, err := common.DecodeResponse(line)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Status != common.StatusError {
		t.Errorf("expected error status, got %+v", resp)
	}
}
