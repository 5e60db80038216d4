// Package store implements the persistent collection of grade records and
// the mutual-exclusion discipline that protects it.
//
// The package focuses on:
//   - The Record data model with its composite (ID_Estudiante, Materia)
//     identity
//   - A pluggable Source abstraction for whole-container load/replace
//     persistence (CSV file, in-memory)
//   - The Store manager, the single object owning the mutex that serializes
//     every load -> validate -> mutate -> persist sequence
//
// Key Components:
//
//   - Source Interface: loads and replaces the full record set in one call.
//     There is no incremental append; every mutation rewrites the container
//     as a whole, which is what makes the mutex the only consistency
//     mechanism the system needs.
//
//   - Store: wraps a Source with one sync.Mutex. All access goes through
//     View (read) or Update (read-modify-write); both hold the mutex for
//     the entire sequence. Exactly one Store instance exists per served
//     container, created at startup and passed by handle to every worker.
//
// Implementations:
//
//	The package includes two implementations of the Source interface:
//
//	- CSV Source: persists records to a CSV file with the header
//	  ID_Estudiante,Materia,Calificacion. The file is created with its
//	  header on first use and rewritten synchronously on every Replace.
//
//	- Memory Source: keeps records in a slice. Used by tests and by
//	  embedders that do not need persistence.
package store
