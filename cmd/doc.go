// Package cmd implements the command-line interface for the notas grade
// record service. It provides a hierarchical command structure with
// operations for running the servers and interacting with them as a
// client.
//
// The package is organized into several subpackages:
//
//   - serve: Command for starting and configuring the record server
//   - nrc: Commands for running and querying the NRC catalog service
//   - grades: Client commands for grade record operations (agregar, buscar, ...)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See notas -help for a list of all commands.
package cmd
