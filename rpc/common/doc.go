// Package common holds the data structures shared across the RPC layer:
// the line protocol's typed commands and JSON responses, the server and
// client configuration structs, and the logging setup.
//
// Wire format (both the record service and the NRC catalog service):
// newline-terminated UTF-8 lines. A request is COMMAND|field1|field2|...
// with '|' as the field delimiter; a response is a single JSON object with
// a "status" field of "ok", "not_found" or "error", a "data" field on ok
// and a "message" field on errors.
package common
