package store

// memSource keeps the record set in memory. It is used by tests and by
// embedders that do not need persistence. Like every Source it relies on
// the Store for serialization and does no locking of its own.
type memSource struct {
	recs []Record
}

// NewMemorySource creates an in-memory source seeded with the given
// records. The seed slice is copied.
func NewMemorySource(seed ...Record) Source {
	m := &memSource{}
	m.recs = append(m.recs, seed...)
	return m
}

func (m *memSource) Load() ([]Record, error) {
	// Return a copy so callers can mutate freely before Replace.
	out := make([]Record, len(m.recs))
	copy(out, m.recs)
	return out, nil
}

func (m *memSource) Replace(recs []Record) error {
	m.recs = make([]Record, len(recs))
	copy(m.recs, recs)
	return nil
}
