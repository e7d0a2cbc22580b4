package typegraph

import (
	"strconv"
	"strings"

	"param-binder/internal/common"
)

// Kind represents the kind of a type reference.
type Kind int

const (
	KindUnknown Kind = iota
	KindBasic        // string, bool, int64, time.Time, ...
	KindClass        // declared class, possibly instantiated with type arguments
	KindSlice        // growable list of Elem
	KindArray        // fixed length list of Elem
	KindMap          // Key -> Elem
	KindVar          // type parameter of the enclosing class
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindClass:
		return "class"
	case KindSlice:
		return "slice"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindVar:
		return "var"
	default:
		return common.UnknownStr
	}
}

// Type is a reference to a type. Once a type contains no KindVar anywhere it
// is fully resolved; the binder only instantiates and converts resolved types.
type Type struct {
	Kind Kind
	Name string  // basic name, class name or type parameter name
	Args []*Type // class type arguments, in declaration order
	Key  *Type   // map key
	Elem *Type   // slice, array and map element
	Len  int     // array length
}

// Basic returns a reference to a basic type such as "int64".
func Basic(name string) *Type { return &Type{Kind: KindBasic, Name: name} }

// Named returns a reference to a class, instantiated with args.
func Named(name string, args ...*Type) *Type { return &Type{Kind: KindClass, Name: name, Args: args} }

// Var returns a reference to a type parameter.
func Var(name string) *Type { return &Type{Kind: KindVar, Name: name} }

// SliceOf returns []elem.
func SliceOf(elem *Type) *Type { return &Type{Kind: KindSlice, Elem: elem} }

// ArrayOf returns [n]elem.
func ArrayOf(n int, elem *Type) *Type { return &Type{Kind: KindArray, Len: n, Elem: elem} }

// MapOf returns map[key]elem.
func MapOf(key, elem *Type) *Type { return &Type{Kind: KindMap, Key: key, Elem: elem} }

// String renders the type in Go syntax.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	var b strings.Builder

	t.write(&b)

	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	switch t.Kind {
	case KindSlice:
		b.WriteString("[]")
		t.Elem.write(b)
	case KindArray:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.Len))
		b.WriteByte(']')
		t.Elem.write(b)
	case KindMap:
		b.WriteString("map[")
		t.Key.write(b)
		b.WriteByte(']')
		t.Elem.write(b)
	default:
		b.WriteString(t.Name)

		if len(t.Args) > 0 {
			b.WriteByte('[')

			for i, a := range t.Args {
				if i > 0 {
					b.WriteByte(',')
				}

				a.write(b)
			}

			b.WriteByte(']')
		}
	}
}

// RawName returns the un-parameterized name used for converter lookups:
// the class or basic name, or "[]", "[N]" and "map" for containers.
func (t *Type) RawName() string {
	switch t.Kind {
	case KindSlice:
		return "[]"
	case KindArray:
		return "[" + strconv.Itoa(t.Len) + "]"
	case KindMap:
		return "map"
	default:
		return t.Name
	}
}

// IsList reports whether the type is a slice or an array.
func (t *Type) IsList() bool {
	return t.Kind == KindSlice || t.Kind == KindArray
}

// IsContainer reports whether values of the type can be indexed.
func (t *Type) IsContainer() bool {
	return t.IsList() || t.Kind == KindMap
}

// HasVars reports whether any type parameter is still unbound inside t.
func (t *Type) HasVars() bool {
	if t == nil {
		return false
	}

	if t.Kind == KindVar {
		return true
	}

	for _, a := range t.Args {
		if a.HasVars() {
			return true
		}
	}

	return t.Key.HasVars() || t.Elem.HasVars()
}

// Equal reports whether both references denote the same type.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}

	if t.Kind != other.Kind || t.Name != other.Name || t.Len != other.Len || len(t.Args) != len(other.Args) {
		return false
	}

	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}

	return t.Key.Equal(other.Key) && t.Elem.Equal(other.Elem)
}
