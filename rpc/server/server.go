package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/notaslab/notas/rpc/common"
	"github.com/notaslab/notas/rpc/transport"
)

var Logger = logger.GetLogger("server")

// Server accepts connections on the record service endpoint and runs the
// per-connection state machine: read one line, dispatch, write one line,
// close.
type Server struct {
	config     common.ServerConfig
	dispatcher *Dispatcher
}

// NewServer creates a record server for the given configuration and
// dispatcher.
func NewServer(config common.ServerConfig, dispatcher *Dispatcher) *Server {
	return &Server{config: config, dispatcher: dispatcher}
}

// Listen binds the configured endpoint.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create TCP listener: %w", err)
	}

	Logger.Infof("record server listening on %s (%s mode)", ln.Addr(), s.config.Mode)
	return ln, nil
}

// Serve accepts connections until the listener is closed. In concurrent
// mode every connection gets its own goroutine, fire-and-forget, with no
// pool and no connection limit; in sequential mode the accept loop itself
// handles the connection, so accept blocks for the duration of each
// request.
func (s *Server) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			Logger.Errorf("accept error: %v", err)
			continue
		}

		if s.config.Mode == common.ModeSequential {
			s.handleConn(conn)
		} else {
			go s.handleConn(conn)
		}
	}
}

// handleConn runs one connection through AWAIT_LINE -> DISPATCH -> REPLY.
// The connection is closed no matter how far it gets; a failure here
// never affects other in-flight connections or the store's integrity.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connID := uuid.NewString()[:8]
	timeout := time.Duration(s.config.TimeoutSecond) * time.Second

	line, err := transport.ReadLine(conn, timeout)
	if err != nil {
		// A peer closing before sending anything is not an error.
		if err != io.EOF {
			Logger.Errorf("[%s] read error from %s: %v", connID, conn.RemoteAddr(), err)
		}
		return
	}

	Logger.Debugf("[%s] cmd: %s", connID, line)
	resp := s.dispatcher.Dispatch(string(line))

	payload, err := resp.Encode()
	if err != nil {
		Logger.Errorf("[%s] failed to encode response: %v", connID, err)
		payload = []byte(`{"status":"error","message":"internal error"}`)
	}
	if err := transport.WriteLine(conn, payload, timeout); err != nil {
		Logger.Errorf("[%s] failed to write response: %v", connID, err)
	}
}
