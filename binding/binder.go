package binding

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"param-binder/bean"
	"param-binder/coerce"
	"param-binder/diagnostic"
	"param-binder/internal/navigate"
	"param-binder/internal/resolve"
	"param-binder/paramname"
	"param-binder/typegraph"
)

var (
	// ErrNilGraph is returned by New without a type graph.
	ErrNilGraph = errors.New("type graph is nil")
	// ErrNilRoot is returned by Bind without a root bean.
	ErrNilRoot = errors.New("root bean is nil")
	// ErrValueTooLong is recorded for values longer than Config.MaxValueSize.
	ErrValueTooLong = errors.New("value too long")
	// ErrValidation is recorded for values rejected by a validate tag.
	ErrValidation = errors.New("validation failed")
)

// Binder binds parameters onto beans of one type graph. It is safe for
// concurrent use; each pass owns its root and Result.
type Binder struct {
	graph      *typegraph.Graph
	dispatcher *coerce.Dispatcher
	navigator  *navigate.Navigator
	validate   *validator.Validate
	logger     *zap.Logger

	maxValueSize int
	ignored      map[string]struct{}
}

// New creates a Binder. Zero fields of cfg take their defaults.
func New(graph *typegraph.Graph, cfg Config) (*Binder, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}

	def := DefaultConfig()

	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}

	if cfg.Primitive.Categories == 0 {
		cfg.Primitive = def.Primitive
	}

	if cfg.Registry == nil {
		cfg.Registry = coerce.DefaultRegistry(cfg.Primitive)
	}

	if cfg.Validator == nil {
		cfg.Validator = def.Validator
	}

	if cfg.MaxIndex == 0 {
		cfg.MaxIndex = def.MaxIndex
	}

	if cfg.Ignore == nil {
		cfg.Ignore = def.Ignore
	}

	dispatcher := coerce.NewDispatcher(cfg.Registry)

	b := &Binder{
		graph:        graph,
		dispatcher:   dispatcher,
		navigator:    navigate.New(resolve.NewResolver(graph), dispatcher.Key, cfg.MaxIndex),
		validate:     cfg.Validator,
		logger:       cfg.Logger,
		maxValueSize: cfg.MaxValueSize,
		ignored:      make(map[string]struct{}, len(cfg.Ignore)),
	}

	for _, name := range cfg.Ignore {
		b.ignored[name] = struct{}{}
	}

	return b, nil
}

// Graph returns the type graph the binder binds against.
func (b *Binder) Graph() *typegraph.Graph {
	return b.graph
}

// Registry returns the converter registry, so custom converters can be added.
func (b *Binder) Registry() *coerce.Registry {
	return b.dispatcher.Registry()
}

// BindNew instantiates the class named by rootType, which may carry type
// arguments ("Box[int]"), and binds every entry of values onto it.
func (b *Binder) BindNew(rootType string, values map[string][]string) (*Result, error) {
	t, err := typegraph.ParseType(rootType)
	if err != nil {
		return nil, fmt.Errorf("root type: %w", err)
	}

	root, err := bean.NewObject(b.graph, t)
	if err != nil {
		return nil, fmt.Errorf("root type: %w", err)
	}

	return b.Bind(slices.Collect(maps.Keys(values)), values, root)
}

// Bind binds the named parameters onto root. The returned error is only set
// when nothing could be bound at all; per-parameter problems are in the
// Result.
func (b *Binder) Bind(names []string, values map[string][]string, root bean.Bean) (*Result, error) {
	if root == nil {
		return nil, ErrNilRoot
	}

	res := newResult(root)

	for _, name := range paramname.ParseAll(names) {
		b.bindOne(res, name, values[name.Raw()])
	}

	b.logger.Debug("bind pass finished",
		zap.String("root", root.Type().String()),
		zap.Int("bound", len(res.Bound)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("errors", len(res.errs)),
	)

	return res, nil
}

func (b *Binder) bindOne(res *Result, name paramname.Name, raw []string) {
	log := b.logger.With(zap.String("param", name.Raw()))

	if b.isIgnored(name) {
		log.Debug("parameter ignored")
		res.Skipped = append(res.Skipped, name.Raw())

		return
	}

	if !hasValue(raw) {
		log.Debug("parameter has no value")
		res.Skipped = append(res.Skipped, name.Raw())

		return
	}

	if b.maxValueSize > 0 {
		for _, v := range raw {
			if len(v) > b.maxValueSize {
				b.fail(res, log, diagnostic.Diagnostic{
					Code:    diagnostic.CodeValueTooLong,
					Message: fmt.Sprintf("value is %d bytes, limit is %d", len(v), b.maxValueSize),
					Param:   name.Raw(),
				}, ErrValueTooLong)

				return
			}
		}
	}

	target, err := b.navigator.Navigate(res.Root, name)
	if err != nil {
		var pe *navigate.PathError
		if errors.As(err, &pe) && pe.Terminal && errors.Is(err, navigate.ErrPropertyNotFound) {
			log.Debug("no such property, skipping", zap.String("type", pe.Owner))
			res.Skipped = append(res.Skipped, name.Raw())

			return
		}

		d := diagnostic.Diagnostic{Param: name.Raw(), Message: err.Error(), Code: codeOf(err)}
		if pe != nil {
			d.Target = pe.Owner
			d.Suggestions = pe.Suggestions
		}

		b.fail(res, log, d, err)

		return
	}

	switch target.Kind {
	case navigate.TargetList:
		b.commitList(res, log, name, target, raw)
	case navigate.TargetMap:
		b.commitMap(res, log, name, target, raw)
	default:
		b.commitProperty(res, log, name, target, raw)
	}
}

func (b *Binder) commitProperty(res *Result, log *zap.Logger, name paramname.Name, target *navigate.Target, raw []string) {
	value, ok := b.convert(res, log, name, target, raw)
	if !ok {
		return
	}

	if err := target.Bean.Set(target.Property, value); err != nil {
		b.failErr(res, log, name, target, err)
		return
	}

	b.bound(res, log, name, value)
}

func (b *Binder) commitList(res *Result, log *zap.Logger, name paramname.Name, target *navigate.Target, raw []string) {
	idx, idxErr := b.navigator.Index(target.List, target.Key)
	if idxErr != nil {
		b.failErr(res, log, name, target, idxErr)
	}

	value, ok := b.convert(res, log, name, target, raw)
	if idxErr != nil || !ok {
		return
	}

	if err := target.List.Set(idx, value); err != nil {
		b.failErr(res, log, name, target, err)
		return
	}

	b.bound(res, log, name, value)
}

func (b *Binder) commitMap(res *Result, log *zap.Logger, name paramname.Name, target *navigate.Target, raw []string) {
	key, keyErr := b.navigator.Key(target.Map, target.Key)
	if keyErr != nil {
		b.failErr(res, log, name, target, keyErr)
	}

	value, ok := b.convert(res, log, name, target, raw)
	if keyErr != nil || !ok {
		return
	}

	if err := target.Map.Put(key, value); err != nil {
		b.failErr(res, log, name, target, err)
		return
	}

	b.bound(res, log, name, value)
}

// convert coerces and validates the value of one parameter. It reports false
// when nothing must be written, either because of errors or because every
// value was blank.
func (b *Binder) convert(res *Result, log *zap.Logger, name paramname.Name, target *navigate.Target, raw []string) (any, bool) {
	value, errs := b.dispatcher.Coerce(raw, target.Type)
	for _, err := range errs {
		b.failErr(res, log, name, target, err)
	}

	if len(errs) > 0 || value == nil {
		return nil, false
	}

	if target.Validate == "" {
		return value, true
	}

	valid := true

	for _, v := range scalars(value) {
		if err := b.validate.Var(v, target.Validate); err != nil {
			valid = false

			b.fail(res, log, diagnostic.Diagnostic{
				Code:    diagnostic.CodeValidation,
				Message: validationMessage(err, target.Validate),
				Target:  target.Owner,
				Param:   name.Raw(),
				Value:   fmt.Sprint(v),
			}, fmt.Errorf("%s: %w: %w", name.Raw(), ErrValidation, err))
		}
	}

	return value, valid
}

func (b *Binder) bound(res *Result, log *zap.Logger, name paramname.Name, value any) {
	res.Bound[name.Raw()] = value
	log.Debug("parameter bound")
}

func (b *Binder) failErr(res *Result, log *zap.Logger, name paramname.Name, target *navigate.Target, err error) {
	d := diagnostic.Diagnostic{
		Code:    codeOf(err),
		Message: err.Error(),
		Target:  target.Owner,
		Param:   name.Raw(),
	}

	var fe *coerce.FieldError
	if errors.As(err, &fe) {
		d.Value = fe.Value
	}

	b.fail(res, log, d, fmt.Errorf("%s: %w", name.Raw(), err))
}

func (b *Binder) fail(res *Result, log *zap.Logger, d diagnostic.Diagnostic, err error) {
	log.Debug("parameter rejected", zap.String("code", d.Code), zap.Error(err))
	res.record(d, err)
}

func (b *Binder) isIgnored(name paramname.Name) bool {
	_, ok := b.ignored[name.Raw()]
	if !ok {
		_, ok = b.ignored[name.Stripped()]
	}

	return ok
}

func hasValue(raw []string) bool {
	return slices.ContainsFunc(raw, func(v string) bool {
		return strings.TrimSpace(v) != ""
	})
}

// scalars returns the values a validate tag applies to: the value itself, or
// the set elements of a list.
func scalars(value any) []any {
	l, ok := value.(*bean.List)
	if !ok {
		return []any{value}
	}

	var out []any

	for _, item := range l.Items() {
		if item != nil {
			out = append(out, item)
		}
	}

	return out
}

func validationMessage(err error, tag string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s (rule %q)", fe.Tag(), fe.Param(), tag)
		}

		return fmt.Sprintf("failed %s (rule %q)", fe.Tag(), tag)
	}

	return err.Error()
}

// codeOf maps an error to its diagnostic code. Codes set by the converter
// layer win over the sentinels they wrap.
func codeOf(err error) string {
	var fe *coerce.FieldError
	if errors.As(err, &fe) {
		return fe.Code
	}

	switch {
	case errors.Is(err, resolve.ErrUnresolvableType):
		return diagnostic.CodeUnresolvableType
	case errors.Is(err, navigate.ErrPropertyNotFound):
		return diagnostic.CodePropertyNotFound
	case errors.Is(err, navigate.ErrInvalidIndex):
		return diagnostic.CodeConversion
	case errors.Is(err, navigate.ErrNotIndexable):
		return diagnostic.CodeNotIndexable
	case errors.Is(err, bean.ErrIndexOutOfRange):
		return diagnostic.CodeIndexOutOfRange
	case errors.Is(err, bean.ErrTypeMismatch):
		return diagnostic.CodeTypeMismatch
	case errors.Is(err, coerce.ErrNoConverter):
		return diagnostic.CodeNoConverter
	default:
		return diagnostic.CodeConversion
	}
}
