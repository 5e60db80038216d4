// Package server implements the record service: the TCP listener, the
// per-connection protocol state machine and the command dispatcher with
// its handlers.
//
// Every connection carries exactly one command: the handler reads one
// line, dispatches it, writes one JSON response line and closes. The
// listener runs in one of two scheduling modes selected by configuration:
// concurrent (one goroutine per accepted connection, unbounded) or
// sequential (connections handled inline). The command surface is
// identical in both.
//
// All store access goes through the store manager's mutex, which wraps the
// whole load -> validate -> mutate -> persist sequence. The NRC catalog
// round trip on the insert path always happens before that mutex is
// acquired, so a slow catalog never blocks unrelated store operations.
package server
