package quest

// Set is an insertion-ordered mapping from identifier to record.
//
// Replacing an existing identifier keeps its original position; new
// identifiers are appended. The zero value is not usable, call NewSet.
type Set struct {
	order []string
	byID  map[string]*Record
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{byID: make(map[string]*Record)}
}

// SetOf builds a Set from records in order. Later duplicates replace
// earlier ones.
func SetOf(records []*Record) *Set {
	s := NewSet()
	for _, r := range records {
		s.Put(r)
	}
	return s
}

// Put inserts or replaces the record under its identifier.
// It reports whether an existing record was replaced.
func (s *Set) Put(r *Record) bool {
	if _, ok := s.byID[r.ID]; ok {
		s.byID[r.ID] = r
		return true
	}
	s.byID[r.ID] = r
	s.order = append(s.order, r.ID)
	return false
}

// Get returns the record stored under id.
func (s *Set) Get(id string) (*Record, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.order)
}

// IDs returns the identifiers in iteration order.
func (s *Set) IDs() []string {
	return append([]string(nil), s.order...)
}

// Records returns the records in iteration order.
func (s *Set) Records() []*Record {
	out := make([]*Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}
