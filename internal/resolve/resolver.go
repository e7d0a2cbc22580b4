package resolve

import (
	"errors"
	"fmt"
	"sync"

	"param-binder/typegraph"
)

// ErrUnresolvableType is matched by every UnresolvableTypeError.
var ErrUnresolvableType = errors.New("unresolvable type")

// UnresolvableTypeError reports a type variable that could not be bound.
type UnresolvableTypeError struct {
	Concrete  string // concrete type the lookup started from
	Declaring string // class declaring the variable
	Variable  string // variable name, empty when the chain itself is broken
	Reason    string
}

func (e *UnresolvableTypeError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("cannot resolve %s against %s: %s", e.Declaring, e.Concrete, e.Reason)
	}

	return fmt.Sprintf("cannot resolve %s.%s against %s: %s", e.Declaring, e.Variable, e.Concrete, e.Reason)
}

func (e *UnresolvableTypeError) Unwrap() error {
	return ErrUnresolvableType
}

// Link is one class of a hierarchy chain together with the concrete types
// bound to its type parameters. Bindings is shared and must not be modified.
type Link struct {
	Class    *typegraph.Class
	Bindings map[string]*typegraph.Type
}

// Resolver resolves type variables against concrete class types. It is safe
// for concurrent use once the graph is no longer modified.
type Resolver struct {
	graph *typegraph.Graph

	// chains caches []Link per concrete type string.
	chains sync.Map
	// vars caches resolved variables per concrete|declaring|variable.
	vars sync.Map
}

// NewResolver creates a Resolver over the given graph.
func NewResolver(graph *typegraph.Graph) *Resolver {
	return &Resolver{graph: graph}
}

// Graph returns the graph the resolver was created with.
func (r *Resolver) Graph() *typegraph.Graph {
	return r.graph
}

// Chain returns the hierarchy of concrete from the class itself up to its
// root ancestor, with the type arguments bound at every level.
func (r *Resolver) Chain(concrete *typegraph.Type) ([]Link, error) {
	if concrete == nil || concrete.Kind != typegraph.KindClass {
		return nil, &UnresolvableTypeError{
			Concrete: concrete.String(),
			Reason:   "not a class type",
		}
	}

	key := concrete.String()
	if cached, ok := r.chains.Load(key); ok {
		return cached.([]Link), nil
	}

	chain, err := r.buildChain(concrete)
	if err != nil {
		return nil, err
	}

	// Racing writers compute identical chains, keep whichever landed first.
	actual, _ := r.chains.LoadOrStore(key, chain)

	return actual.([]Link), nil
}

func (r *Resolver) buildChain(concrete *typegraph.Type) ([]Link, error) {
	var chain []Link

	seen := map[string]bool{}
	current := concrete

	for current != nil {
		class := r.graph.Class(current.Name)
		if class == nil {
			return nil, &UnresolvableTypeError{
				Concrete:  concrete.String(),
				Declaring: current.Name,
				Reason:    "class not found",
			}
		}

		if seen[class.Name] {
			return nil, &UnresolvableTypeError{
				Concrete:  concrete.String(),
				Declaring: class.Name,
				Reason:    "inheritance cycle",
			}
		}

		seen[class.Name] = true

		bindings := make(map[string]*typegraph.Type, len(class.Params))

		for i, param := range class.Params {
			if i < len(current.Args) {
				bindings[param] = current.Args[i]
			}
		}

		chain = append(chain, Link{Class: class, Bindings: bindings})

		if class.Extends == nil {
			break
		}

		current = Substitute(class.Extends, bindings)
	}

	return chain, nil
}

// ResolveVariable returns the concrete type bound to variable, a type
// parameter declared by the class named declaring, when viewed from the
// concrete type.
func (r *Resolver) ResolveVariable(concrete *typegraph.Type, declaring, variable string) (*typegraph.Type, error) {
	key := concrete.String() + "|" + declaring + "|" + variable
	if cached, ok := r.vars.Load(key); ok {
		return cached.(*typegraph.Type), nil
	}

	link, err := r.link(concrete, declaring)
	if err != nil {
		return nil, err
	}

	bound, ok := link.Bindings[variable]
	if !ok || bound.HasVars() {
		return nil, &UnresolvableTypeError{
			Concrete:  concrete.String(),
			Declaring: declaring,
			Variable:  variable,
			Reason:    "type parameter is not bound",
		}
	}

	actual, _ := r.vars.LoadOrStore(key, bound)

	return actual.(*typegraph.Type), nil
}

// Resolve substitutes every type variable inside t, a type written in terms
// of the parameters of the class named declaring. Types without variables
// are returned unchanged.
func (r *Resolver) Resolve(concrete *typegraph.Type, declaring string, t *typegraph.Type) (*typegraph.Type, error) {
	if !t.HasVars() {
		return t, nil
	}

	if t.Kind == typegraph.KindVar {
		return r.ResolveVariable(concrete, declaring, t.Name)
	}

	link, err := r.link(concrete, declaring)
	if err != nil {
		return nil, err
	}

	resolved := Substitute(t, link.Bindings)
	if name := firstVar(resolved); name != "" {
		return nil, &UnresolvableTypeError{
			Concrete:  concrete.String(),
			Declaring: declaring,
			Variable:  name,
			Reason:    "type parameter is not bound",
		}
	}

	return resolved, nil
}

func (r *Resolver) link(concrete *typegraph.Type, declaring string) (*Link, error) {
	chain, err := r.Chain(concrete)
	if err != nil {
		return nil, err
	}

	for i := range chain {
		if chain[i].Class.Name == declaring {
			return &chain[i], nil
		}
	}

	return nil, &UnresolvableTypeError{
		Concrete:  concrete.String(),
		Declaring: declaring,
		Reason:    "not an ancestor",
	}
}

// Substitute replaces type variables in t with their bindings. Unbound
// variables are kept. t itself is never modified.
func Substitute(t *typegraph.Type, bindings map[string]*typegraph.Type) *typegraph.Type {
	if t == nil || !t.HasVars() {
		return t
	}

	switch t.Kind {
	case typegraph.KindVar:
		if bound, ok := bindings[t.Name]; ok {
			return bound
		}

		return t
	case typegraph.KindClass:
		args := make([]*typegraph.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = Substitute(a, bindings)
		}

		return typegraph.Named(t.Name, args...)
	case typegraph.KindSlice:
		return typegraph.SliceOf(Substitute(t.Elem, bindings))
	case typegraph.KindArray:
		return typegraph.ArrayOf(t.Len, Substitute(t.Elem, bindings))
	case typegraph.KindMap:
		return typegraph.MapOf(Substitute(t.Key, bindings), Substitute(t.Elem, bindings))
	default:
		return t
	}
}

func firstVar(t *typegraph.Type) string {
	if t == nil {
		return ""
	}

	if t.Kind == typegraph.KindVar {
		return t.Name
	}

	for _, a := range t.Args {
		if name := firstVar(a); name != "" {
			return name
		}
	}

	if name := firstVar(t.Key); name != "" {
		return name
	}

	return firstVar(t.Elem)
}
