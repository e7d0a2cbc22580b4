package coerce

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"param-binder/bean"
	"param-binder/diagnostic"
	"param-binder/internal/common"
	"param-binder/typegraph"
)

var errBlankKey = errors.New("key is blank")

// Dispatcher picks converters from a registry and applies them.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a Dispatcher over r.
func NewDispatcher(r *Registry) *Dispatcher {
	return &Dispatcher{registry: r}
}

// Registry returns the registry the dispatcher reads from.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Coerce converts the values of one parameter to target. Blank values are
// dropped; when nothing is left the result is nil without errors. Scalar
// targets take the first value. List targets without a converter of their
// own get one element per value and fail as a whole if any element fails.
func (d *Dispatcher) Coerce(raw []string, target *typegraph.Type) (any, []error) {
	values := nonBlank(raw)

	first, ok := common.First(values)
	if !ok {
		return nil, nil
	}

	if _, ok := d.registry.Lookup(target); ok || !target.IsList() {
		return d.convert(first, target)
	}

	list, err := bean.NewList(target)
	if err != nil {
		return nil, []error{conversionError(strings.Join(values, ","), target.String(), err)}
	}

	var errs []error

	for i, value := range values {
		v, elemErrs := d.convert(value, target.Elem)
		if len(elemErrs) > 0 {
			errs = append(errs, elemErrs...)
			continue
		}

		if err := list.Set(i, v); err != nil {
			errs = append(errs, &FieldError{
				Code:     diagnostic.CodeIndexOutOfRange,
				Message:  err.Error(),
				Value:    value,
				Type:     target.String(),
				sentinel: err,
			})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return list, nil
}

// Key converts a single map key. Unlike Coerce, a blank key is an error.
// String keys are passed through untrimmed.
func (d *Dispatcher) Key(raw string, keyType *typegraph.Type) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, conversionError(raw, keyType.String(), errBlankKey)
	}

	if keyType.Kind != typegraph.KindBasic || keyType.Name != "string" {
		raw = strings.TrimSpace(raw)
	}

	v, errs := d.convert(raw, keyType)

	return v, multierr.Combine(errs...)
}

func (d *Dispatcher) convert(input string, target *typegraph.Type) (any, []error) {
	c, ok := d.registry.Lookup(target)
	if !ok {
		if target.Kind == typegraph.KindBasic && target.Name == "string" {
			return input, nil
		}

		return nil, []error{noConverterError(input, target.String())}
	}

	v, err := c.Convert(input, target)
	if err != nil {
		errs := multierr.Errors(err)
		out := make([]error, 0, len(errs))

		for _, e := range errs {
			out = append(out, conversionError(input, target.String(), e))
		}

		return nil, out
	}

	if !bean.Conforms(target, v) {
		return nil, []error{&FieldError{
			Code:     diagnostic.CodeTypeMismatch,
			Message:  fmt.Sprintf("converter for %s returned %T", target, v),
			Value:    input,
			Type:     target.String(),
			sentinel: bean.ErrTypeMismatch,
		}}
	}

	return v, nil
}

func nonBlank(raw []string) []string {
	out := make([]string, 0, len(raw))

	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}

	return out
}
