package navigate

import (
	"fmt"
	"strconv"
	"strings"

	"param-binder/bean"
	"param-binder/internal/match"
	"param-binder/internal/resolve"
	"param-binder/paramname"
	"param-binder/typegraph"
)

// TargetKind tells the binder how to commit a value.
type TargetKind int

const (
	TargetProperty TargetKind = iota // write through Bean.Set
	TargetList                       // write through List.Set at Key
	TargetMap                        // write through Map.Put under Key
)

// Target is where the value of one parameter goes.
type Target struct {
	Kind TargetKind

	Bean     bean.Bean // TargetProperty
	List     *bean.List
	Map      *bean.Map
	Property string // last property segment
	Key      string // key token of list and map targets, as written

	Owner    string          // type declaring Property
	Type     *typegraph.Type // resolved type of the value to write
	Validate string          // validator tag of Property
}

// KeyFunc converts a raw key token to a value of keyType.
type KeyFunc func(raw string, keyType *typegraph.Type) (any, error)

// Navigator walks parameter paths through a bean graph, creating missing
// intermediate beans and containers on the way.
type Navigator struct {
	resolver *resolve.Resolver
	keys     KeyFunc
	maxIndex int
}

// New creates a Navigator. Indices above maxIndex are rejected; zero or less
// leaves them unbounded.
func New(resolver *resolve.Resolver, keys KeyFunc, maxIndex int) *Navigator {
	return &Navigator{
		resolver: resolver,
		keys:     keys,
		maxIndex: maxIndex,
	}
}

// Navigate resolves name against root. Intermediates that already exist are
// reused, so navigating the same path twice yields the same containers.
func (n *Navigator) Navigate(root bean.Bean, name paramname.Name) (*Target, error) {
	segments := name.Segments()
	current := root

	for i, seg := range segments {
		terminal := i == len(segments)-1

		fail := func(err error, owner string) *PathError {
			return &PathError{
				Param:    name.Raw(),
				Segment:  seg.String(),
				Owner:    owner,
				Terminal: terminal,
				Err:      err,
			}
		}

		owner := current.Type()

		declared, declaring, ok := current.DeclaredType(seg.Name)
		if !ok {
			err := fail(ErrPropertyNotFound, owner.String())
			err.Suggestions = match.Suggest(seg.Name, n.resolver.Graph().PropertyNames(owner.Name))

			return nil, err
		}

		typ, err := n.resolver.Resolve(owner, declaring, declared)
		if err != nil {
			return nil, fail(err, owner.String())
		}

		validate := ""
		if p, _, ok := n.resolver.Graph().FindProperty(owner.Name, seg.Name); ok {
			validate = p.Validate
		}

		if len(seg.Keys) == 0 && terminal {
			return &Target{
				Kind:     TargetProperty,
				Bean:     current,
				Property: seg.Name,
				Owner:    owner.String(),
				Type:     typ,
				Validate: validate,
			}, nil
		}

		if len(seg.Keys) > 0 && !typ.IsContainer() {
			return nil, fail(fmt.Errorf("%w: %s is %s", ErrNotIndexable, seg.Name, typ), owner.String())
		}

		if len(seg.Keys) == 0 && typ.Kind != typegraph.KindClass {
			return nil, &PathError{
				Param:    name.Raw(),
				Segment:  segments[i+1].String(),
				Owner:    typ.String(),
				Terminal: i+1 == len(segments)-1,
				Err:      ErrPropertyNotFound,
			}
		}

		value, err := n.ensureProperty(current, seg.Name, typ)
		if err != nil {
			return nil, fail(err, owner.String())
		}

		for j, key := range seg.Keys {
			lastKey := terminal && j == len(seg.Keys)-1

			switch c := value.(type) {
			case *bean.List:
				if lastKey {
					return &Target{
						Kind: TargetList, List: c, Property: seg.Name, Key: key,
						Owner: owner.String(), Type: c.Elem(), Validate: validate,
					}, nil
				}

				idx, err := n.Index(c, key)
				if err != nil {
					return nil, fail(err, c.Type().String())
				}

				value, err = n.ensureItem(c, idx)
				if err != nil {
					return nil, fail(err, c.Type().String())
				}

			case *bean.Map:
				if lastKey {
					return &Target{
						Kind: TargetMap, Map: c, Property: seg.Name, Key: key,
						Owner: owner.String(), Type: c.Elem(), Validate: validate,
					}, nil
				}

				k, err := n.Key(c, key)
				if err != nil {
					return nil, fail(err, c.Type().String())
				}

				value, err = n.ensureEntry(c, k)
				if err != nil {
					return nil, fail(err, c.Type().String())
				}

			default:
				return nil, fail(fmt.Errorf("%w: %s[%s]", ErrNotIndexable, seg.Name, key), typeOf(value))
			}
		}

		next, ok := value.(bean.Bean)
		if !ok {
			return nil, &PathError{
				Param:    name.Raw(),
				Segment:  segments[i+1].String(),
				Owner:    typeOf(value),
				Terminal: i+1 == len(segments)-1,
				Err:      ErrPropertyNotFound,
			}
		}

		current = next
	}

	// Parse never returns an empty path, but the loop needs a fallback.
	return nil, &PathError{Param: name.Raw(), Err: ErrPropertyNotFound}
}

// Index parses a raw list index, checking it against the list bounds and
// the configured maximum. Indices never go through the key converters.
func (n *Navigator) Index(l *bean.List, raw string) (int, error) {
	idx, err := strconv.Atoi(trimKey(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, raw)
	}

	if n.maxIndex > 0 && idx > n.maxIndex {
		return 0, fmt.Errorf("%w: index %d exceeds limit %d", bean.ErrIndexOutOfRange, idx, n.maxIndex)
	}

	if err := l.CheckIndex(idx); err != nil {
		return 0, err
	}

	return idx, nil
}

// Key converts a raw map key to the map's key type. String keys are only
// unquoted; other key types are trimmed around the quotes as well.
func (n *Navigator) Key(m *bean.Map, raw string) (any, error) {
	if isString(m.Key()) {
		return n.keys(Unquote(raw), m.Key())
	}

	return n.keys(trimKey(raw), m.Key())
}

func trimKey(raw string) string {
	return strings.TrimSpace(Unquote(strings.TrimSpace(raw)))
}

func isString(t *typegraph.Type) bool {
	return t.Kind == typegraph.KindBasic && t.Name == "string"
}

func (n *Navigator) ensureProperty(b bean.Bean, name string, typ *typegraph.Type) (any, error) {
	if v, ok := b.Get(name); ok && v != nil {
		return v, nil
	}

	v, err := bean.New(n.resolver.Graph(), typ)
	if err != nil {
		return nil, err
	}

	if err := b.Set(name, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (n *Navigator) ensureItem(l *bean.List, idx int) (any, error) {
	if v, ok := l.Get(idx); ok {
		return v, nil
	}

	v, err := n.newIntermediate(l.Elem())
	if err != nil {
		return nil, err
	}

	if err := l.Set(idx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (n *Navigator) ensureEntry(m *bean.Map, key any) (any, error) {
	if v, ok := m.Get(key); ok {
		return v, nil
	}

	v, err := n.newIntermediate(m.Elem())
	if err != nil {
		return nil, err
	}

	if err := m.Put(key, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (n *Navigator) newIntermediate(t *typegraph.Type) (any, error) {
	if t.Kind == typegraph.KindBasic {
		return nil, fmt.Errorf("%w: %s", ErrNotIndexable, t)
	}

	return bean.New(n.resolver.Graph(), t)
}

// Unquote strips one pair of matching single or double quotes.
func Unquote(key string) string {
	if len(key) >= 2 {
		first, last := key[0], key[len(key)-1]
		if first == last && (first == '\'' || first == '"') {
			return key[1 : len(key)-1]
		}
	}

	return key
}

func typeOf(v any) string {
	type typed interface{ Type() *typegraph.Type }

	if t, ok := v.(typed); ok {
		return t.Type().String()
	}

	return fmt.Sprintf("%T", v)
}
