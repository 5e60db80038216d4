package client

import (
	"fmt"
	"net"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/notaslab/notas/rpc/common"
	"github.com/notaslab/notas/rpc/transport"
)

var (
	Logger = logger.GetLogger("client")
)

// Client talks to the record service. Every call follows the protocol's
// one-command-per-connection contract: dial, send one line, read one
// line, close. There is no pooling and no retry.
type Client struct {
	config common.ClientConfig
}

// NewClient creates a record service client for the given configuration.
func NewClient(config common.ClientConfig) *Client {
	return &Client{config: config}
}

// invoke performs one full request round trip for the given command.
func (c *Client) invoke(cmd *common.Command) (*common.Response, error) {
	timeout := time.Duration(c.config.TimeoutSecond) * time.Second

	conn, err := net.DialTimeout("tcp", c.config.Endpoint, timeout)
	if err != nil {
		return nil, fmt.Errorf("record service unreachable: %w", err)
	}
	defer conn.Close()

	Logger.Debugf("-> %s", cmd.Line())
	if err := transport.WriteLine(conn, []byte(cmd.Line()), timeout); err != nil {
		return nil, fmt.Errorf("record service write failed: %w", err)
	}

	payload, err := transport.ReadLine(conn, timeout)
	if err != nil {
		return nil, fmt.Errorf("record service read failed: %w", err)
	}

	resp, err := common.DecodeResponse(payload)
	if err != nil {
		return nil, fmt.Errorf("record service sent invalid payload: %w", err)
	}
	return resp, nil
}

// --------------------------------------------------------------------------
// Command surface (one method per protocol operation)
// --------------------------------------------------------------------------

// Agregar inserts a new grade record.
func (c *Client) Agregar(studentID, subject, grade string) (*common.Response, error) {
	return c.invoke(&common.Command{
		Type:       common.CmdAgregar,
		StudentID:  studentID,
		Subject:    subject,
		Grade:      grade,
		HasSubject: true,
	})
}

// Buscar returns every record for the given student.
func (c *Client) Buscar(studentID string) (*common.Response, error) {
	return c.invoke(&common.Command{
		Type:      common.CmdBuscar,
		StudentID: studentID,
	})
}

// Actualizar changes the grade of one record. An empty subject selects
// the short form, which the server only accepts when the student has
// exactly one record.
func (c *Client) Actualizar(studentID, subject, grade string) (*common.Response, error) {
	return c.invoke(&common.Command{
		Type:       common.CmdActualizar,
		StudentID:  studentID,
		Subject:    subject,
		Grade:      grade,
		HasSubject: subject != "",
	})
}

// Listar returns every stored record.
func (c *Client) Listar() (*common.Response, error) {
	return c.invoke(&common.Command{Type: common.CmdListar})
}

// Eliminar removes one record, with the same short-form rule as
// Actualizar.
func (c *Client) Eliminar(studentID, subject string) (*common.Response, error) {
	return c.invoke(&common.Command{
		Type:       common.CmdEliminar,
		StudentID:  studentID,
		Subject:    subject,
		HasSubject: subject != "",
	})
}
