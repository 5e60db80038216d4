// Package client implements the typed client for the record service.
//
// The wire protocol carries exactly one command per TCP connection, so the
// client opens a fresh connection for every call and closes it after the
// response line. The package offers one method per protocol operation
// (Agregar, Buscar, Actualizar, Listar, Eliminar); each returns the
// decoded response and a transport-level error. Protocol-level failures
// (rejections, not_found) are reported through the response status, never
// through the error return.
//
// All methods are safe for concurrent use: the client holds no connection
// state between calls.
package client
