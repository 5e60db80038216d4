// Package nrc implements both sides of the NRC catalog protocol: the
// microservice that serves subject lookups from the catalog CSV, and the
// client the record service uses to validate subject codes during inserts.
package nrc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/notaslab/notas/lib/catalog"
	"github.com/notaslab/notas/rpc/common"
	"github.com/notaslab/notas/rpc/transport"
)

var Logger = logger.GetLogger("nrc")

// Client performs synchronous lookups against the NRC catalog service.
// Every call opens a fresh connection, sends one request line, reads one
// response line and closes; there is no pooling and no retry. It
// implements catalog.Client.
//
// The network round trip always happens before the store guard is
// acquired, so a slow catalog degrades insert latency but never blocks
// unrelated store operations.
type Client struct {
	config common.ClientConfig
}

// NewClient creates a catalog client for the given endpoint.
func NewClient(config common.ClientConfig) *Client {
	return &Client{config: config}
}

// lookupResponse mirrors the catalog service's JSON line. Data stays raw
// until the status is known.
type lookupResponse struct {
	Status  common.Status   `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Lookup asks the catalog service whether the subject code exists.
//
// The three outcomes map as follows: a found entry returns
// (Result{Found: true}, nil); a not_found status returns
// (Result{Found: false}, nil), a valid business outcome; every
// infrastructural problem (dial failure, timeout, malformed payload,
// error status) returns a non-nil error so callers can report a service
// failure instead of a missing subject.
func (c *Client) Lookup(code string) (catalog.Result, error) {
	timeout := time.Duration(c.config.TimeoutSecond) * time.Second

	conn, err := net.DialTimeout("tcp", c.config.Endpoint, timeout)
	if err != nil {
		return catalog.Result{}, fmt.Errorf("nrc service unreachable: %w", err)
	}
	defer conn.Close()

	req := common.Command{Type: common.CmdBuscarNRC, NRC: code}
	if err := transport.WriteLine(conn, []byte(req.Line()), timeout); err != nil {
		return catalog.Result{}, fmt.Errorf("nrc service write failed: %w", err)
	}

	line, err := transport.ReadLine(conn, timeout)
	if err != nil {
		return catalog.Result{}, fmt.Errorf("nrc service read failed: %w", err)
	}

	var resp lookupResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return catalog.Result{}, fmt.Errorf("nrc service sent invalid payload: %q", line)
	}

	switch resp.Status {
	case common.StatusOk:
		var entry catalog.Entry
		if err := json.Unmarshal(resp.Data, &entry); err != nil {
			return catalog.Result{}, fmt.Errorf("nrc service sent invalid entry: %q", resp.Data)
		}
		return catalog.Result{Found: true, Entry: entry}, nil
	case common.StatusNotFound:
		return catalog.Result{Found: false}, nil
	case common.StatusError:
		return catalog.Result{}, fmt.Errorf("nrc service error: %s", resp.Message)
	default:
		return catalog.Result{}, fmt.Errorf("nrc service sent unknown status %q", resp.Status)
	}
}
