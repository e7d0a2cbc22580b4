package coerce

import (
	"sync"

	"param-binder/primitive"
	"param-binder/typegraph"
)

// Converter converts one trimmed, non-blank input to a value of target.
// Several problems may be reported at once by combining them with
// multierr.
type Converter interface {
	Convert(input string, target *typegraph.Type) (any, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(input string, target *typegraph.Type) (any, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(input string, target *typegraph.Type) (any, error) {
	return f(input, target)
}

// Registry maps type names to converters. Lookups may run concurrently with
// each other and with Register.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// DefaultRegistry returns a registry with a converter for every primitive
// type name, aliases included.
func DefaultRegistry(opts primitive.Options) *Registry {
	r := NewRegistry()

	for _, name := range primitive.Names() {
		kind := primitive.FromName(name)
		r.Register(name, ConverterFunc(func(input string, _ *typegraph.Type) (any, error) {
			return primitive.Parse(kind, input, opts)
		}))
	}

	return r
}

// Register installs c for typeName, replacing any previous converter.
func (r *Registry) Register(typeName string, c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.converters[typeName] = c
}

// Lookup finds the converter for t by its full type string, then by its raw
// name.
func (r *Registry) Lookup(t *typegraph.Type) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.converters[t.String()]; ok {
		return c, true
	}

	c, ok := r.converters[t.RawName()]

	return c, ok
}
