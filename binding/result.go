package binding

import (
	"go.uber.org/multierr"

	"param-binder/bean"
	"param-binder/diagnostic"
)

// Result is the outcome of one bind pass.
type Result struct {
	// Root is the bean the parameters were bound onto.
	Root bean.Bean
	// Bound holds the committed value of every parameter, by raw name.
	Bound map[string]any
	// Skipped lists parameters that were deliberately not bound: ignored
	// names, blank values and unknown terminal properties.
	Skipped []string
	// Diagnostics holds one error per problem found.
	Diagnostics diagnostic.Diagnostics

	errs []error
}

func newResult(root bean.Bean) *Result {
	return &Result{
		Root:  root,
		Bound: make(map[string]any),
	}
}

// Err combines every recorded error, or returns nil. The combined error
// matches the package sentinels of its parts with errors.Is.
func (r *Result) Err() error {
	return multierr.Combine(r.errs...)
}

// Errors returns the recorded errors.
func (r *Result) Errors() []error {
	return r.errs
}

// OK reports whether every parameter was bound without error.
func (r *Result) OK() bool {
	return len(r.errs) == 0
}

func (r *Result) record(d diagnostic.Diagnostic, err error) {
	d.Severity = diagnostic.DiagnosticError
	r.Diagnostics.Add(d)
	r.errs = append(r.errs, err)
}
