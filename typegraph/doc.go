// Package typegraph holds the static type metadata the binder works from:
// classes with ordered type parameters, an optional parent class supplied
// with type arguments, and declared properties.
//
// Type references use Go syntax:
//
//	string, int64, time.Time, uuid.UUID   basic types
//	[]T, [5]T                             slices and fixed length arrays
//	map[K]V                               maps with basic keys
//	Box[T, int64]                         class instantiations
//	T                                     a type parameter of the class
//
// A graph is built once, usually from a YAML schema, and is read-only
// afterwards, so it can be shared by concurrent bind passes.
package typegraph
