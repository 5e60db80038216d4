package store

// --------------------------------------------------------------------------
// Data Model
// --------------------------------------------------------------------------

// Record is a single grade entry. Its identity is the
// (StudentID, Subject) pair, which is unique across the store.
// The grade is an opaque string; the service performs no numeric
// validation on it.
type Record struct {
	StudentID string `json:"ID_Estudiante"`
	Subject   string `json:"Materia"`
	Grade     string `json:"Calificacion"`
}

// Same reports whether the record carries the given identity pair.
func (r Record) Same(studentID, subject string) bool {
	return r.StudentID == studentID && r.Subject == subject
}

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Source is the persistence abstraction for the grade container.
// Both operations act on the container as a whole: Load returns every
// record, Replace rewrites the full set synchronously. A Source performs
// no locking of its own; callers serialize access through the Store.
type Source interface {
	// Load returns all records currently persisted.
	Load() ([]Record, error)

	// Replace persists the given records as the new full content,
	// discarding whatever was stored before.
	Replace(recs []Record) error
}

// --------------------------------------------------------------------------
// Query Helpers
// --------------------------------------------------------------------------

// FilterByStudent returns every record belonging to the given student,
// preserving store order.
func FilterByStudent(recs []Record, studentID string) []Record {
	var out []Record
	for _, r := range recs {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out
}

// FindPair returns the index of the record with the given identity pair,
// or -1 if no such record exists.
func FindPair(recs []Record, studentID, subject string) int {
	for i, r := range recs {
		if r.Same(studentID, subject) {
			return i
		}
	}
	return -1
}
