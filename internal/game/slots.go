package game

// Slots is a fixed-capacity array of optional values. A slot's index is
// its identity: enemies keep their lane, shots keep their slot.
type Slots[T any] struct {
	items []*T
}

// NewSlots returns n empty slots.
func NewSlots[T any](n int) Slots[T] {
	return Slots[T]{items: make([]*T, max(n, 0))}
}

// Len returns the capacity.
func (s *Slots[T]) Len() int {
	return len(s.items)
}

// Get returns the value in slot i, or nil if empty or out of range.
func (s *Slots[T]) Get(i int) *T {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

// Put stores v in slot i, replacing anything there.
func (s *Slots[T]) Put(i int, v *T) {
	if i < 0 || i >= len(s.items) {
		return
	}
	s.items[i] = v
}

// Remove empties slot i. Removing an empty slot is a no-op.
// Returns whether something was removed.
func (s *Slots[T]) Remove(i int) bool {
	if i < 0 || i >= len(s.items) || s.items[i] == nil {
		return false
	}
	s.items[i] = nil
	return true
}

// Count returns the number of occupied slots.
func (s *Slots[T]) Count() int {
	n := 0
	for _, v := range s.items {
		if v != nil {
			n++
		}
	}
	return n
}

// Free appends the indices of empty slots to buf and returns it.
func (s *Slots[T]) Free(buf []int) []int {
	for i, v := range s.items {
		if v == nil {
			buf = append(buf, i)
		}
	}
	return buf
}

// Add stores v in the first empty slot. Returns false if every slot is taken.
func (s *Slots[T]) Add(v *T) bool {
	for i, cur := range s.items {
		if cur == nil {
			s.items[i] = v
			return true
		}
	}
	return false
}

// Each calls fn for every occupied slot in index order.
func (s *Slots[T]) Each(fn func(i int, v *T)) {
	for i, v := range s.items {
		if v != nil {
			fn(i, v)
		}
	}
}
