package litematic

// Discriminator validates a key/value pair before it is allowed into a
// DiscriminatingMap. It returns accept=true to allow the mutation, or
// accept=false with a human-readable reason to reject it.
type Discriminator[K comparable, V any] func(k K, v V) (accept bool, reason string)

// DiscriminatingMap is a keyed container that runs a discriminator over
// every pair before any mutation commits, and fires add/remove callbacks
// synchronously once a mutation is known to be valid. Every exported
// mutator is all-or-nothing: if any pair in the operation is rejected, no
// mutation occurs and a *Error with kind DiscriminationError is returned.
type DiscriminatingMap[K comparable, V any] struct {
	entries      map[K]V
	order        []K
	discriminate Discriminator[K, V]
	onAdd        func(k K, v V)
	onRemove     func(k K, v V)
}

// NewDiscriminatingMap constructs an empty map using the given discriminator
// and optional add/remove hooks (either may be nil).
func NewDiscriminatingMap[K comparable, V any](discriminate Discriminator[K, V], onAdd, onRemove func(k K, v V)) *DiscriminatingMap[K, V] {
	return &DiscriminatingMap[K, V]{
		entries:      make(map[K]V),
		discriminate: discriminate,
		onAdd:        onAdd,
		onRemove:     onRemove,
	}
}

// Len returns the number of entries.
func (m *DiscriminatingMap[K, V]) Len() int {
	return len(m.entries)
}

// Get returns the value for k, if present.
func (m *DiscriminatingMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.entries[k]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *DiscriminatingMap[K, V]) Keys() []K {
	out := make([]K, len(m.order))
	copy(out, m.order)
	return out
}

// Set inserts or replaces the entry for k. Replacing an existing key fires
// on_remove(old) then on_add(new).
func (m *DiscriminatingMap[K, V]) Set(k K, v V) error {
	if m.discriminate != nil {
		if ok, reason := m.discriminate(k, v); !ok {
			return errDiscrimination(reason)
		}
	}
	old, existed := m.entries[k]
	m.entries[k] = v
	if !existed {
		m.order = append(m.order, k)
	}
	if existed && m.onRemove != nil {
		m.onRemove(k, old)
	}
	if m.onAdd != nil {
		m.onAdd(k, v)
	}
	return nil
}

// SetAll applies a bulk update atomically: every pair is discriminated
// first, and if any is rejected the map is left completely unchanged.
func (m *DiscriminatingMap[K, V]) SetAll(pairs map[K]V) error {
	if m.discriminate != nil {
		for k, v := range pairs {
			if ok, reason := m.discriminate(k, v); !ok {
				return errDiscrimination(reason)
			}
		}
	}
	for k, v := range pairs {
		old, existed := m.entries[k]
		m.entries[k] = v
		if !existed {
			m.order = append(m.order, k)
		}
		if existed && m.onRemove != nil {
			m.onRemove(k, old)
		}
		if m.onAdd != nil {
			m.onAdd(k, v)
		}
	}
	return nil
}

// Delete removes the entry for k, if present, firing on_remove. Reports
// whether an entry was removed.
func (m *DiscriminatingMap[K, V]) Delete(k K) bool {
	old, ok := m.entries[k]
	if !ok {
		return false
	}
	delete(m.entries, k)
	for i, key := range m.order {
		if key == k {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.onRemove != nil {
		m.onRemove(k, old)
	}
	return true
}

// Clear removes every entry, firing on_remove for each in insertion order.
func (m *DiscriminatingMap[K, V]) Clear() {
	keys := m.order
	m.order = nil
	for _, k := range keys {
		old := m.entries[k]
		delete(m.entries, k)
		if m.onRemove != nil {
			m.onRemove(k, old)
		}
	}
}
