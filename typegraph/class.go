package typegraph

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateClass is returned by Graph.Add for a name that is already taken.
var ErrDuplicateClass = errors.New("duplicate class")

// Property describes a declared property of a class.
type Property struct {
	Name     string // property name as used in parameter names
	Type     *Type  // declared type, may reference the class type parameters
	Validate string // optional validator tag applied to bound values
}

// Class describes a bean class.
type Class struct {
	Name       string
	Params     []string   // type parameter names, in declaration order
	Extends    *Type      // parent class; its Args are written in terms of Params
	Properties []Property // declared on this class only

	index map[string]int
}

// NewClass creates a class and indexes its properties.
func NewClass(name string, params []string, extends *Type, props ...Property) *Class {
	c := &Class{
		Name:       name,
		Params:     params,
		Extends:    extends,
		Properties: props,
		index:      make(map[string]int, len(props)),
	}

	for i, p := range props {
		if _, dup := c.index[p.Name]; !dup {
			c.index[p.Name] = i
		}
	}

	return c
}

// IsGeneric returns true if the class declares type parameters.
func (c *Class) IsGeneric() bool {
	return len(c.Params) > 0
}

// Property returns the property declared directly on this class.
func (c *Class) Property(name string) (*Property, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}

	return &c.Properties[i], true
}

// Graph holds all classes known to the binder.
type Graph struct {
	classes map[string]*Class
	order   []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		classes: make(map[string]*Class),
	}
}

// Add registers a class. It must not be called once the graph is shared.
func (g *Graph) Add(c *Class) error {
	if _, exists := g.classes[c.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, c.Name)
	}

	g.classes[c.Name] = c
	g.order = append(g.order, c.Name)

	return nil
}

// Class returns the class with the given name, or nil if not found.
func (g *Graph) Class(name string) *Class {
	return g.classes[name]
}

// Classes returns all classes in registration order.
func (g *Graph) Classes() []*Class {
	out := make([]*Class, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.classes[name])
	}

	return out
}

// Parent returns the class named by c.Extends, or nil.
func (g *Graph) Parent(c *Class) *Class {
	if c == nil || c.Extends == nil {
		return nil
	}

	return g.classes[c.Extends.Name]
}

// FindProperty looks a property up on the class and its ancestors and
// returns it together with the class that declares it. The nearest
// declaration wins.
func (g *Graph) FindProperty(className, name string) (*Property, *Class, bool) {
	seen := map[string]bool{}

	for c := g.classes[className]; c != nil && !seen[c.Name]; c = g.Parent(c) {
		seen[c.Name] = true

		if p, ok := c.Property(name); ok {
			return p, c, true
		}
	}

	return nil, nil, false
}

// PropertyNames returns every property visible on the class, nearest
// declarations first, without duplicates.
func (g *Graph) PropertyNames(className string) []string {
	var names []string

	seen := map[string]bool{}

	for c := g.classes[className]; c != nil && !seen[c.Name]; c = g.Parent(c) {
		seen[c.Name] = true

		for _, p := range c.Properties {
			if !slices.Contains(names, p.Name) {
				names = append(names, p.Name)
			}
		}
	}

	return names
}
