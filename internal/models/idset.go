package models

// IDSet is an ordered set of entity ids. It serializes as a plain JSON
// array but its mutators keep elements unique, so idempotent insert and
// remove hold structurally rather than by call-site convention.
type IDSet []string

// Has reports whether id is a member of the set.
func (s IDSet) Has(id string) bool {
	for _, existing := range s {
		if existing == id {
			return true
		}
	}
	return false
}

// Add appends id if not already present and returns the resulting set.
func (s IDSet) Add(id string) IDSet {
	if s.Has(id) {
		return s
	}
	return append(s, id)
}

// Remove deletes id if present, preserving the order of the remaining
// elements, and returns the resulting set.
func (s IDSet) Remove(id string) IDSet {
	for i, existing := range s {
		if existing == id {
			out := make(IDSet, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

// Clone returns an independent copy of the set.
func (s IDSet) Clone() IDSet {
	if s == nil {
		return nil
	}
	out := make(IDSet, len(s))
	copy(out, s)
	return out
}
