// Package binding binds request parameters onto a bean graph.
//
// A bind pass parses every parameter name, sorts the names shortest first,
// navigates each one to its target and converts its values. Values written
// into lists and maps are committed only once both the index or key and the
// value converted; a parameter that fails is recorded in the Result and never
// stops the others.
//
//	binder, _ := binding.New(graph, binding.DefaultConfig())
//	res, err := binder.BindNew("GenericsBindingTests2", r.URL.Query())
package binding
