package typegraph

import (
	"fmt"

	"param-binder/diagnostic"
)

// Validate checks the graph for references to unknown classes, wrong type
// argument counts, inheritance cycles and unsupported map keys. It is a
// structural check only; whether a converter exists for a type is decided at
// bind time.
func Validate(g *Graph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if g == nil {
		res.AddError("graph_is_nil", "type graph is nil", "", "")
		return res
	}

	for _, c := range g.Classes() {
		seenParams := map[string]struct{}{}

		for _, p := range c.Params {
			if _, ok := seenParams[p]; ok {
				res.AddError("duplicate_param", fmt.Sprintf("duplicate type parameter %q", p), c.Name, "")
			}

			seenParams[p] = struct{}{}
		}

		if c.Extends != nil {
			if c.Extends.Kind != KindClass {
				res.AddError("invalid_extends", fmt.Sprintf("cannot extend %s %s", c.Extends.Kind, c.Extends), c.Name, "")
			} else {
				validateRef(res, g, c.Extends, c.Name, "")
			}

			if hasCycle(g, c) {
				res.AddError("extends_cycle", fmt.Sprintf("class %s extends itself", c.Name), c.Name, "")
			}
		}

		seenProps := map[string]struct{}{}

		for _, p := range c.Properties {
			if _, ok := seenProps[p.Name]; ok {
				res.AddError("duplicate_property", fmt.Sprintf("duplicate property %q", p.Name), c.Name, p.Name)
				continue
			}

			seenProps[p.Name] = struct{}{}

			if p.Name == "" {
				res.AddError("property_without_name", "property has no name", c.Name, "")
				continue
			}

			validateRef(res, g, p.Type, c.Name, p.Name)

			if parent := g.Parent(c); parent != nil && !hasCycle(g, c) {
				if _, owner, ok := g.FindProperty(parent.Name, p.Name); ok {
					res.AddWarning("shadowed_property",
						fmt.Sprintf("property %q shadows the one declared on %s", p.Name, owner.Name), c.Name, p.Name)
				}
			}
		}
	}

	return res
}

// validateRef checks that every class referenced by t exists and receives
// the number of type arguments it declares.
func validateRef(res *diagnostic.Diagnostics, g *Graph, t *Type, className, prop string) {
	if t == nil {
		return
	}

	switch t.Kind {
	case KindClass:
		target := g.Class(t.Name)
		if target == nil {
			res.AddError("class_not_found", fmt.Sprintf("class %q not found", t.Name), className, prop)
			return
		}

		if len(t.Args) != len(target.Params) {
			res.AddError("arity_mismatch",
				fmt.Sprintf("%s takes %d type arguments, got %d", t.Name, len(target.Params), len(t.Args)),
				className, prop)
		}

		for _, a := range t.Args {
			validateRef(res, g, a, className, prop)
		}

	case KindSlice, KindArray:
		validateRef(res, g, t.Elem, className, prop)

	case KindMap:
		if t.Key.Kind != KindBasic && t.Key.Kind != KindVar {
			res.AddError("map_key_not_basic", fmt.Sprintf("map key %s must be a basic type", t.Key), className, prop)
		}

		validateRef(res, g, t.Key, className, prop)
		validateRef(res, g, t.Elem, className, prop)
	}
}

func hasCycle(g *Graph, start *Class) bool {
	seen := map[string]bool{start.Name: true}

	for c := g.Parent(start); c != nil; c = g.Parent(c) {
		if seen[c.Name] {
			return true
		}

		seen[c.Name] = true
	}

	return false
}
