package bean

import (
	"fmt"

	"param-binder/typegraph"
)

// List is a typed slice or fixed-length array. Unset positions hold nil.
type List struct {
	typ   *typegraph.Type
	items []any
}

// NewList creates an empty list of the slice or array type t. Arrays start
// with all positions unset.
func NewList(t *typegraph.Type) (*List, error) {
	if t == nil || !t.IsList() || t.HasVars() {
		return nil, fmt.Errorf("%w: %s is not a list type", ErrNotInstantiable, t)
	}

	l := &List{typ: t}
	if t.Kind == typegraph.KindArray {
		l.items = make([]any, t.Len)
	}

	return l, nil
}

// Type returns the list type.
func (l *List) Type() *typegraph.Type { return l.typ }

// Elem returns the element type.
func (l *List) Elem() *typegraph.Type { return l.typ.Elem }

// Fixed reports whether the list is an array.
func (l *List) Fixed() bool { return l.typ.Kind == typegraph.KindArray }

// Len returns the number of positions, set or not.
func (l *List) Len() int { return len(l.items) }

// Get returns the value at index i.
func (l *List) Get(i int) (any, bool) {
	if i < 0 || i >= len(l.items) || l.items[i] == nil {
		return nil, false
	}

	return l.items[i], true
}

// Set writes v at index i. Slices grow to fit; arrays reject indices past
// their length.
func (l *List) Set(i int, v any) error {
	if err := l.CheckIndex(i); err != nil {
		return err
	}

	if !Conforms(l.typ.Elem, v) {
		return fmt.Errorf("%w: element of %s is %s, got %T", ErrTypeMismatch, l.typ, l.typ.Elem, v)
	}

	if i >= len(l.items) {
		l.items = append(l.items, make([]any, i+1-len(l.items))...)
	}

	l.items[i] = v

	return nil
}

// CheckIndex reports whether Set would accept index i.
func (l *List) CheckIndex(i int) error {
	if i < 0 || (l.Fixed() && i >= len(l.items)) {
		return fmt.Errorf("%w: index %d for %s", ErrIndexOutOfRange, i, l.typ)
	}

	return nil
}

// Append adds v after the last position of a slice.
func (l *List) Append(v any) error {
	if l.Fixed() {
		return fmt.Errorf("%w: cannot append to %s", ErrIndexOutOfRange, l.typ)
	}

	return l.Set(len(l.items), v)
}

// Items returns a copy of the positions; unset ones are nil.
func (l *List) Items() []any {
	out := make([]any, len(l.items))
	copy(out, l.items)

	return out
}
