package nrc

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/notaslab/notas/lib/catalog"
	"github.com/notaslab/notas/rpc/common"
	"github.com/notaslab/notas/rpc/transport"
)

// Server is the NRC catalog microservice. It serves BUSCAR_NRC lookups
// from the catalog CSV over the shared line protocol, handling one
// connection at a time: the catalog is read-only, so there is nothing to
// coordinate.
type Server struct {
	config common.NRCServerConfig
	table  *catalog.Table
}

// NewServer creates a catalog server for the given configuration.
func NewServer(config common.NRCServerConfig) *Server {
	return &Server{
		config: config,
		table:  catalog.NewTable(config.CatalogPath),
	}
}

// Listen seeds the catalog file if needed and binds the endpoint.
func (s *Server) Listen() (net.Listener, error) {
	if err := s.table.Ensure(); err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", s.config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create TCP listener: %w", err)
	}

	Logger.Infof("NRC catalog server listening on %s", ln.Addr())
	return ln, nil
}

// Serve accepts connections until the listener is closed.
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
		s.handleConn(conn)
	}
}

// handleConn reads one request line, answers it and closes.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	timeout := time.Duration(s.config.TimeoutSecond) * time.Second

	line, err := transport.ReadLine(conn, timeout)
	if err != nil {
		if err != io.EOF {
			Logger.Errorf("read error from %s: %v", conn.RemoteAddr(), err)
		}
		return
	}

	resp := s.process(string(line))

	payload, err := resp.Encode()
	if err != nil {
		Logger.Errorf("failed to encode response: %v", err)
		return
	}
	if err := transport.WriteLine(conn, payload, timeout); err != nil {
		Logger.Errorf("failed to write response to %s: %v", conn.RemoteAddr(), err)
	}
}

// process executes one request line against the catalog.
func (s *Server) process(line string) *common.Response {
	cmd, err := common.ParseCommand(line)
	if err != nil {
		return common.NewErrorResponse(err.Error())
	}
	if cmd.Type != common.CmdBuscarNRC {
		return common.NewErrorResponsef("unsupported command: %s", cmd.Type)
	}

	res, err := s.table.Lookup(cmd.NRC)
	if err != nil {
		Logger.Errorf("catalog lookup failed: %v", err)
		return common.NewErrorResponse("catalog unavailable")
	}
	if !res.Found {
		return common.NewNotFoundResponse("")
	}
	return common.NewOkResponse(res.Entry)
}
