package device

import "sort"

// Registry owns the last-known Record per device name.
//
// It is intentionally not thread-safe: the poll loop is the only goroutine
// that touches it. Records are never removed; a disconnected device stays
// listed so its next connection is a detectable transition.
type Registry struct {
	records map[string]Record
}

func NewRegistry() *Registry {
	return &Registry{records: map[string]Record{}}
}

// Lookup returns the remembered record for name. It has no side effects.
func (r *Registry) Lookup(name string) (Record, bool) {
	rec, ok := r.records[name]
	return rec, ok
}

// Upsert replaces or inserts the record for name. Total overwrite, no
// partial merge.
func (r *Registry) Upsert(name string, rec Record) {
	r.records[name] = rec
}

func (r *Registry) Len() int { return len(r.records) }

// Records returns all records sorted by name, for debug dumps.
func (r *Registry) Records() []Record {
	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
