// Package resolve binds the type parameters of generic classes to concrete
// types by walking the explicit extends chain of a typegraph.Graph.
//
// Every class passes its own type parameters to its parent positionally, so
// an intermediate class may rename or reorder them freely:
//
//	Class2[D, E, B, A, C] extends Class1[D, E, B, A, C]
//	Class3[Y, W, Z, V, X] extends Class2[Y, W, Z, V, X]
//
// Resolution substitutes the child's bindings into the arguments it supplies
// to the parent at every link, so a variable declared many levels up is
// bound to whatever the concrete type provides at the bottom.
package resolve
