package models

// Snapshot is the complete serializable state at a point in time. Slices
// only, so marshalling is deterministic.
type Snapshot struct {
	Students []Student     `json:"students"`
	Items    []Item        `json:"items"`
	Tx       []Transaction `json:"tx"`
}

// Clone returns an independent copy. Entity structs are plain values, so
// copying the slices is a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Students: make([]Student, len(s.Students)),
		Items:    make([]Item, len(s.Items)),
		Tx:       make([]Transaction, len(s.Tx)),
	}
	copy(out.Students, s.Students)
	copy(out.Items, s.Items)
	copy(out.Tx, s.Tx)
	return out
}
