package navigate

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"param-binder/bean"
	"param-binder/internal/resolve"
	"param-binder/paramname"
	"param-binder/primitive"
	"param-binder/typegraph"
)

var errBlankKey = errors.New("blank key")

func parseKey(raw string, keyType *typegraph.Type) (any, error) {
	if raw == "" {
		return nil, errBlankKey
	}

	return primitive.Parse(primitive.FromName(keyType.Name), raw, primitive.DefaultOptions())
}

func setup(t *testing.T, schema, root string) (*Navigator, *bean.Object) {
	t.Helper()

	graph, err := typegraph.Load(filepath.Join("..", "..", "examples", schema))
	require.NoError(t, err)

	obj, err := bean.NewObject(graph, typegraph.Named(root))
	require.NoError(t, err)

	return New(resolve.NewResolver(graph), parseKey, 100), obj
}

func TestNavigateProperty(t *testing.T) {
	nav, root := setup(t, "generics.yaml", "GenericsBindingTests2")

	target, err := nav.Navigate(root, paramname.Parse("number"))
	require.NoError(t, err)

	assert.Equal(t, TargetProperty, target.Kind)
	assert.Same(t, root, target.Bean)
	assert.Equal(t, "number", target.Property)
	assert.Equal(t, "float64", target.Type.String())
	assert.Equal(t, "GenericsBindingTests2", target.Owner)
}

func TestNavigateNestedBeanIsReused(t *testing.T) {
	nav, root := setup(t, "generics.yaml", "GenericsBindingTests2")

	first, err := nav.Navigate(root, paramname.Parse("bean.longProperty"))
	require.NoError(t, err)

	second, err := nav.Navigate(root, paramname.Parse("bean.stringProperty"))
	require.NoError(t, err)

	assert.Same(t, first.Bean, second.Bean)
	assert.Equal(t, "TestBean", first.Bean.Type().String())
	assert.Equal(t, "int64", first.Type.String())
	assert.Equal(t, "string", second.Type.String())

	stored, ok := root.Get("bean")
	require.True(t, ok)
	assert.Same(t, first.Bean, stored)
}

func TestNavigateGenericNestedBean(t *testing.T) {
	nav, root := setup(t, "generics.yaml", "GenericsBindingTests2")

	target, err := nav.Navigate(root, paramname.Parse("genericBean.genericB"))
	require.NoError(t, err)

	assert.Equal(t, "TestGenericBean[float64,bool]", target.Owner)
	assert.Equal(t, "bool", target.Type.String())
	assert.Equal(t, "TestGenericBean", target.Bean.Type().Name)
}

func TestNavigateContainers(t *testing.T) {
	nav, root := setup(t, "generics.yaml", "GenericsBindingTests2")

	list, err := nav.Navigate(root, paramname.Parse("list[2]"))
	require.NoError(t, err)
	assert.Equal(t, TargetList, list.Kind)
	assert.Equal(t, "2", list.Key)
	assert.Equal(t, "bool", list.Type.String())
	assert.Equal(t, "[]bool", list.List.Type().String())

	m, err := nav.Navigate(root, paramname.Parse("map['10']"))
	require.NoError(t, err)
	assert.Equal(t, TargetMap, m.Kind)
	assert.Equal(t, "'10'", m.Key, "the token is kept as written")
	assert.Equal(t, "int64", m.Map.Key().String())
	assert.Equal(t, "time.Time", m.Type.String())

	again, err := nav.Navigate(root, paramname.Parse("map[11]"))
	require.NoError(t, err)
	assert.Same(t, m.Map, again.Map)
}

func TestNavigateThroughContainers(t *testing.T) {
	nav, root := setup(t, "maps.yaml", "MapBindingTests")

	target, err := nav.Navigate(root, paramname.Parse(`addresses["home"].zip`))
	require.NoError(t, err)
	assert.Equal(t, TargetProperty, target.Kind)
	assert.Equal(t, "Address", target.Owner)
	assert.Equal(t, "len=5,numeric", target.Validate)

	again, err := nav.Navigate(root, paramname.Parse("addresses[home].street"))
	require.NoError(t, err)
	assert.Same(t, target.Bean, again.Bean)

	cell, err := nav.Navigate(root, paramname.Parse("matrix[1][2]"))
	require.NoError(t, err)
	assert.Equal(t, TargetList, cell.Kind)
	assert.Equal(t, "[3]int", cell.List.Type().String())
	assert.Equal(t, "2", cell.Key)

	v, ok := root.Get("matrix")
	require.True(t, ok)
	assert.Equal(t, 2, v.(*bean.List).Len(), "outer list grew to hold index 1")
}

func TestNavigateIntermediateKeyFailureLeavesMapUntouched(t *testing.T) {
	nav, root := setup(t, "generics.yaml", "GenericsBindingTests2")

	// map values are time.Time, so this never gets past the key.
	_, err := nav.Navigate(root, paramname.Parse("map[notanumber][x]"))
	require.Error(t, err)

	v, ok := root.Get("map")
	require.True(t, ok)
	assert.Equal(t, 0, v.(*bean.Map).Len())
}

func TestNavigateErrors(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		root     string
		param    string
		want     error
		terminal bool
	}{
		{"unknown terminal", "generics.yaml", "GenericsBindingTests2", "bean.nope", ErrPropertyNotFound, true},
		{"unknown intermediate", "generics.yaml", "GenericsBindingTests2", "nope.longProperty", ErrPropertyNotFound, false},
		{"basic is not indexable", "generics.yaml", "GenericsBindingTests2", "number[0]", ErrNotIndexable, true},
		{"bean is not indexable", "generics.yaml", "GenericsBindingTests2", "bean[0].longProperty", ErrNotIndexable, false},
		{"descend into basic", "generics.yaml", "GenericsBindingTests2", "number.value", ErrPropertyNotFound, true},
		{"too many keys", "maps.yaml", "MapBindingTests", "slots[0][1]", ErrNotIndexable, true},
		{"array bound", "maps.yaml", "MapBindingTests", "matrix[0][5].x", bean.ErrIndexOutOfRange, false},
		{"index limit", "maps.yaml", "MapBindingTests", "matrix[101][0]", bean.ErrIndexOutOfRange, true},
		{"negative index", "maps.yaml", "MapBindingTests", "matrix[-1][0]", bean.ErrIndexOutOfRange, true},
		{"blank key", "maps.yaml", "MapBindingTests", "addresses[].zip", errBlankKey, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, root := setup(t, tt.schema, tt.root)

			_, err := nav.Navigate(root, paramname.Parse(tt.param))
			require.ErrorIs(t, err, tt.want)

			var pe *PathError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.param, pe.Param)
			assert.Equal(t, tt.terminal, pe.Terminal)
		})
	}
}

func TestNavigateSuggestsProperties(t *testing.T) {
	nav, root := setup(t, "generics.yaml", "TestBean")

	_, err := nav.Navigate(root, paramname.Parse("longPropety"))

	var pe *PathError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "longProperty", pe.Suggestions[0])
	assert.Contains(t, pe.Error(), "longPropety")
}

func TestNavigateUnresolvableType(t *testing.T) {
	nav, _ := setup(t, "generics.yaml", "TestBean")

	raw, err := bean.NewObject(nav.resolver.Graph(), typegraph.Named("Class1"))
	require.NoError(t, err)

	_, err = nav.Navigate(raw, paramname.Parse("number"))
	require.ErrorIs(t, err, resolve.ErrUnresolvableType)
}

func TestIndexAndKey(t *testing.T) {
	nav, _ := setup(t, "maps.yaml", "MapBindingTests")

	l, err := bean.NewList(typegraph.MustParseType("[]string"))
	require.NoError(t, err)

	idx, err := nav.Index(l, "'7'")
	require.NoError(t, err)
	assert.Equal(t, 7, idx)

	idx, err = nav.Index(l, " 8 ")
	require.NoError(t, err)
	assert.Equal(t, 8, idx)

	_, err = nav.Index(l, "seven")
	require.ErrorIs(t, err, ErrInvalidIndex)

	_, err = nav.Index(l, "''")
	require.ErrorIs(t, err, ErrInvalidIndex)

	m, err := bean.NewMap(typegraph.MustParseType("map[time.Time]time.Time"))
	require.NoError(t, err)

	k, err := nav.Key(m, "2000-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), k)

	_, err = nav.Key(m, "notadate")
	require.Error(t, err)

	k, err = nav.Key(m, " '2000-01-01' ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), k)
}

func TestStringKeysAreOpaque(t *testing.T) {
	nav, _ := setup(t, "maps.yaml", "MapBindingTests")

	m, err := bean.NewMap(typegraph.MustParseType("map[string]int64"))
	require.NoError(t, err)

	tests := []struct {
		raw  string
		want string
	}{
		{"a", "a"},
		{"'a'", "a"},
		{`'"a"'`, `"a"`},
		{" a ", " a "},
		{" 'a' ", " 'a' "},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			k, err := nav.Key(m, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
		})
	}
}

func TestIndexIgnoresKeyFunc(t *testing.T) {
	graph, err := typegraph.Load(filepath.Join("..", "..", "examples", "generics.yaml"))
	require.NoError(t, err)

	nav := New(resolve.NewResolver(graph), func(raw string, keyType *typegraph.Type) (any, error) {
		t.Fatalf("key func called for %q as %s", raw, keyType)
		return nil, nil
	}, 0)

	l, err := bean.NewList(typegraph.MustParseType("[]bool"))
	require.NoError(t, err)

	idx, err := nav.Index(l, "2")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "x", Unquote("'x'"))
	assert.Equal(t, "x", Unquote(`"x"`))
	assert.Equal(t, `'x"`, Unquote(`'x"`))
	assert.Equal(t, "'", Unquote("'"))
	assert.Empty(t, Unquote("''"))
	assert.Equal(t, "x", Unquote("x"))
}
