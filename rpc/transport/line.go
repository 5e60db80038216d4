// Package transport implements the newline framing shared by the record
// service, the NRC catalog service and their clients: one request line in,
// one response line out, connection closed.
package transport

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"time"
)

const (
	// MaxLineSize bounds a single request or response line. Anything
	// larger is treated as a malformed request.
	MaxLineSize = 64 * 1024

	readChunkSize = 1024
)

// ReadLine accumulates bytes from the connection until the first newline
// or EOF and returns the line without its terminator. Any bytes after the
// first newline are ignored (single-command-per-connection protocol).
//
// A peer closing before sending any byte yields io.EOF so callers can
// close silently. A non-zero timeout sets the read deadline for the whole
// accumulation.
func ReadLine(conn net.Conn, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}
	}

	var buf []byte
	chunk := make([]byte, readChunkSize)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if i := bytes.IndexByte(buf, '\n'); i >= 0 {
				return buf[:i], nil
			}
			if len(buf) > MaxLineSize {
				return nil, fmt.Errorf("line exceeds %d bytes", MaxLineSize)
			}
		}
		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				// Peer closed without a terminator; treat what we
				// got as the full line.
				return buf, nil
			}
			return nil, err
		}
	}
}

// WriteLine writes the payload followed by a newline under an optional
// write deadline.
func WriteLine(conn net.Conn, payload []byte, timeout time.Duration) error {
	if timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}
	}

	b := net.Buffers{payload, []byte("\n")}
	_, err := b.WriteTo(conn)
	return err
}
