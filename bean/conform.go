package bean

import (
	"param-binder/primitive"
	"param-binder/typegraph"
)

// Conforms reports whether v is a runtime value of the resolved type t.
func Conforms(t *typegraph.Type, v any) bool {
	if t == nil || v == nil {
		return false
	}

	switch t.Kind {
	case typegraph.KindBasic:
		return primitive.FromName(t.Name).Accepts(v)
	case typegraph.KindClass:
		b, ok := v.(Bean)
		return ok && b.Type().Equal(t)
	case typegraph.KindSlice, typegraph.KindArray:
		l, ok := v.(*List)
		return ok && l.typ.Equal(t)
	case typegraph.KindMap:
		m, ok := v.(*Map)
		return ok && m.typ.Equal(t)
	default:
		return false
	}
}
