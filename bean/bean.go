package bean

import (
	"errors"
	"fmt"

	"param-binder/typegraph"
)

var (
	// ErrUnknownProperty is returned when writing a property the class does not declare.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrTypeMismatch is returned when a value does not conform to the declared type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrIndexOutOfRange is returned for negative indices and indices past a fixed length.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotInstantiable is returned by New for types that have no runtime container.
	ErrNotInstantiable = errors.New("type cannot be instantiated")
)

// Bean is the property access capability used by the binder.
type Bean interface {
	// Type returns the concrete, fully instantiated class type of the bean.
	Type() *typegraph.Type
	// Get returns the current value of a property.
	Get(name string) (any, bool)
	// Set writes a property.
	Set(name string, value any) error
	// DeclaredType returns the type a property is declared with, which may
	// reference type parameters, and the name of the declaring class.
	DeclaredType(name string) (*typegraph.Type, string, bool)
}

// Object is a Bean for a class of a typegraph.Graph.
type Object struct {
	graph  *typegraph.Graph
	typ    *typegraph.Type
	values map[string]any
}

// NewObject creates an empty instance of the class type t.
func NewObject(graph *typegraph.Graph, t *typegraph.Type) (*Object, error) {
	if t == nil || t.Kind != typegraph.KindClass || t.HasVars() {
		return nil, fmt.Errorf("%w: %s", ErrNotInstantiable, t)
	}

	if graph.Class(t.Name) == nil {
		return nil, fmt.Errorf("%w: class %s not found", ErrNotInstantiable, t.Name)
	}

	return &Object{
		graph:  graph,
		typ:    t,
		values: make(map[string]any),
	}, nil
}

// Type implements Bean.
func (o *Object) Type() *typegraph.Type { return o.typ }

// Get implements Bean.
func (o *Object) Get(name string) (any, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Set implements Bean. Values of properties declared with a basic type must
// have the matching Go type; properties declared with a type parameter are
// checked by the caller once the parameter is resolved.
func (o *Object) Set(name string, value any) error {
	declared, _, ok := o.DeclaredType(name)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, o.typ.Name, name)
	}

	if !declared.HasVars() && !Conforms(declared, value) {
		return fmt.Errorf("%w: %s.%s is %s, got %T", ErrTypeMismatch, o.typ.Name, name, declared, value)
	}

	o.values[name] = value

	return nil
}

// DeclaredType implements Bean.
func (o *Object) DeclaredType(name string) (*typegraph.Type, string, bool) {
	p, owner, ok := o.graph.FindProperty(o.typ.Name, name)
	if !ok {
		return nil, "", false
	}

	return p.Type, owner.Name, true
}

// New instantiates a resolved class or container type.
func New(graph *typegraph.Graph, t *typegraph.Type) (any, error) {
	if t == nil || t.HasVars() {
		return nil, fmt.Errorf("%w: %s", ErrNotInstantiable, t)
	}

	switch t.Kind {
	case typegraph.KindClass:
		return NewObject(graph, t)
	case typegraph.KindSlice, typegraph.KindArray:
		return NewList(t)
	case typegraph.KindMap:
		return NewMap(t)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotInstantiable, t)
	}
}
