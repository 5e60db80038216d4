package transport

import (
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

func TestReadLine(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantEOF bool
	}{
		{name: "simple line", input: "LISTAR\n", want: "LISTAR"},
		{name: "bytes after newline are ignored", input: "BUSCAR|A001\ngarbage", want: "BUSCAR|A001"},
		{name: "close without terminator", input: "LISTAR", want: "LISTAR"},
		{name: "close without any byte", input: "", wantEOF: true},
		{name: "carriage return is kept for the parser", input: "LISTAR\r\n", want: "LISTAR\r"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, client := net.Pipe()
			defer server.Close()

			go func() {
				if tc.input != "" {
					io.WriteString(client, tc.input)
				}
				client.Close()
			}()

			line, err := ReadLine(server, time.Second)
			if tc.wantEOF {
				if err != io.EOF {
					t.Fatalf("expected io.EOF, got (%q, %v)", line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(line) != tc.want {
				t.Errorf("ReadLine = %q, want %q", line, tc.want)
			}
		})
	}
}

func TestReadLineTimeout(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	// Peer sends nothing and does not close
	_, err := ReadLine(server, 50*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Errorf("expected a timeout net.Error, got %v", err)
	}
}

func TestReadLineTooLong(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()

	go func() {
		io.WriteString(client, strings.Repeat("x", MaxLineSize+2))
		client.Close()
	}()

	_, err := ReadLine(server, time.Second)
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("expected line length error, got %v", err)
	}
}

func TestWriteLine(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()

	done := make(chan error, 1)
	go func() {
		defer client.Close()
		done <- WriteLine(client, []byte(`{"status":"ok"}`), time.Second)
	}()

	got, err := io.ReadAll(server)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if string(got) != "{\"status\":\"ok\"}\n" {
		t.Errorf("unexpected payload: %q", got)
	}
}
