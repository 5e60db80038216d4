package server

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/notaslab/notas/lib/catalog"
	"github.com/notaslab/notas/lib/roster"
	"github.com/notaslab/notas/lib/store"
	"github.com/notaslab/notas/rpc/common"
)

// handlerFunc processes one already-parsed command.
type handlerFunc func(cmd *common.Command) *common.Response

// Dispatcher routes parsed commands to their handlers. It holds handles
// to the store manager, the roster index and the injected catalog client;
// none of them are package state, so dispatchers are independent and
// testable in isolation.
type Dispatcher struct {
	grades   *store.Store
	roster   *roster.Index
	catalog  catalog.Client
	handlers *xsync.MapOf[common.CommandType, handlerFunc]
}

// NewDispatcher creates a dispatcher over the given collaborators.
func NewDispatcher(grades *store.Store, rosterIx *roster.Index, catalogClient catalog.Client) *Dispatcher {
	d := &Dispatcher{
		grades:   grades,
		roster:   rosterIx,
		catalog:  catalogClient,
		handlers: xsync.NewMapOf[common.CommandType, handlerFunc](),
	}

	d.handlers.Store(common.CmdAgregar, d.handleAgregar)
	d.handlers.Store(common.CmdBuscar, d.handleBuscar)
	d.handlers.Store(common.CmdActualizar, d.handleActualizar)
	d.handlers.Store(common.CmdListar, d.handleListar)
	d.handlers.Store(common.CmdEliminar, d.handleEliminar)

	return d
}

// Dispatch parses one request line, routes it and always produces a
// response. Malformed requests never reach a handler; a panicking handler
// is converted into an error response instead of tearing down the
// connection's worker.
func (d *Dispatcher) Dispatch(line string) (resp *common.Response) {
	defer func() {
		if r := recover(); r != nil {
			Logger.Errorf("handler panic: %v", r)
			resp = common.NewErrorResponsef("internal error: %v", r)
		}
		if resp != nil {
			metrics.GetOrCreateCounter(
				fmt.Sprintf(`notas_responses_total{status=%q}`, resp.Status),
			).Inc()
		}
	}()

	cmd, err := common.ParseCommand(line)
	if err != nil {
		metrics.GetOrCreateCounter(`notas_requests_total{cmd="malformed"}`).Inc()
		return common.NewErrorResponse(err.Error())
	}
	metrics.GetOrCreateCounter(
		fmt.Sprintf(`notas_requests_total{cmd=%q}`, cmd.Type.String()),
	).Inc()

	handler, ok := d.handlers.Load(cmd.Type)
	if !ok {
		return common.NewErrorResponsef("unsupported command: %s", cmd.Type)
	}
	return handler(cmd)
}
