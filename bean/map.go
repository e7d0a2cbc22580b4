package bean

import (
	"fmt"

	"param-binder/typegraph"
)

// Map is a typed map that remembers insertion order. Keys are always values
// of the basic key type, so a malformed key can never end up stored.
type Map struct {
	typ    *typegraph.Type
	keys   []any
	values map[any]any
}

// NewMap creates an empty map of the map type t.
func NewMap(t *typegraph.Type) (*Map, error) {
	if t == nil || t.Kind != typegraph.KindMap || t.HasVars() || t.Key.Kind != typegraph.KindBasic {
		return nil, fmt.Errorf("%w: %s is not a map with a basic key", ErrNotInstantiable, t)
	}

	return &Map{
		typ:    t,
		values: make(map[any]any),
	}, nil
}

// Type returns the map type.
func (m *Map) Type() *typegraph.Type { return m.typ }

// Key returns the key type.
func (m *Map) Key() *typegraph.Type { return m.typ.Key }

// Elem returns the value type.
func (m *Map) Elem() *typegraph.Type { return m.typ.Elem }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Get returns the value stored under k.
func (m *Map) Get(k any) (any, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Put stores v under k. Both must conform to the map's key and value types;
// otherwise the map is left unchanged.
func (m *Map) Put(k, v any) error {
	if !Conforms(m.typ.Key, k) {
		return fmt.Errorf("%w: key of %s is %s, got %T", ErrTypeMismatch, m.typ, m.typ.Key, k)
	}

	if !Conforms(m.typ.Elem, v) {
		return fmt.Errorf("%w: value of %s is %s, got %T", ErrTypeMismatch, m.typ, m.typ.Elem, v)
	}

	if _, exists := m.values[k]; !exists {
		m.keys = append(m.keys, k)
	}

	m.values[k] = v

	return nil
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any {
	out := make([]any, len(m.keys))
	copy(out, m.keys)

	return out
}
