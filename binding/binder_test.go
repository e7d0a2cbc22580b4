package binding

import (
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"param-binder/bean"
	"param-binder/coerce"
	"param-binder/diagnostic"
	"param-binder/internal/navigate"
	"param-binder/typegraph"
)

func newBinder(t *testing.T, schema string, cfg Config) *Binder {
	t.Helper()

	graph, err := typegraph.Load(filepath.Join("..", "examples", schema))
	require.NoError(t, err)

	b, err := New(graph, cfg)
	require.NoError(t, err)

	return b
}

func bind(t *testing.T, b *Binder, root, query string) *Result {
	t.Helper()

	values, err := url.ParseQuery(query)
	require.NoError(t, err)

	res, err := b.BindNew(root, values)
	require.NoError(t, err)

	return res
}

func prop(t *testing.T, b bean.Bean, path ...string) any {
	t.Helper()

	var v any = b

	for _, name := range path {
		current, ok := v.(bean.Bean)
		require.True(t, ok, "%s is not a bean", name)

		v, ok = current.Get(name)
		require.True(t, ok, "%s is not set", name)
	}

	return v
}

func codes(res *Result) []string {
	out := make([]string, 0, len(res.Diagnostics.Errors))
	for _, d := range res.Diagnostics.Errors {
		out = append(out, d.Code)
	}

	return out
}

func TestBindListOfBooleans(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	res := bind(t, b, "GenericsBindingTests2", "list[0]=true&list[1]=false&list[2]=yes")
	require.True(t, res.OK(), res.Diagnostics.Error())

	list := prop(t, res.Root, "list").(*bean.List)
	assert.Equal(t, []any{true, false, true}, list.Items())
}

func TestBindGenericProperties(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	res := bind(t, b, "GenericsBindingTests2",
		"number=1.5&bean.longProperty=7&genericBean.genericA=2.25&genericBean.genericB=false&map[3]=2010-01-01")
	require.True(t, res.OK(), res.Diagnostics.Error())

	assert.Equal(t, 1.5, prop(t, res.Root, "number"))
	assert.Equal(t, int64(7), prop(t, res.Root, "bean", "longProperty"))
	assert.Equal(t, 2.25, prop(t, res.Root, "genericBean", "genericA"))
	assert.Equal(t, false, prop(t, res.Root, "genericBean", "genericB"))

	m := prop(t, res.Root, "map").(*bean.Map)
	assert.Equal(t, []any{int64(3)}, m.Keys())
}

func TestBindMapsKeepOnlyConvertibleEntries(t *testing.T) {
	b := newBinder(t, "maps.yaml", Config{})

	res := bind(t, b, "MapBindingTests", strings.Join([]string{
		"mapLongDate[10]=1/1/2010",
		"mapLongDate[20]=2/2/2010",
		"mapLongDate[notanumber]=3/3/2010",
		"mapLongDate[30]=notadate",
		"mapDateDate['notadate']=01/01/2000",
	}, "&"))

	dump := spew.Sdump(bean.Export(res.Root))

	longDate := prop(t, res.Root, "mapLongDate").(*bean.Map)
	assert.Equal(t, []any{int64(10), int64(20)}, longDate.Keys(), dump)

	v, ok := longDate.Get(int64(10))
	require.True(t, ok)
	assert.Equal(t, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), v)

	for _, k := range longDate.Keys() {
		assert.IsType(t, int64(0), k)
	}

	dateDate := prop(t, res.Root, "mapDateDate").(*bean.Map)
	assert.Equal(t, 0, dateDate.Len(), dump)

	assert.Len(t, res.Errors(), 3)
	assert.Len(t, res.Diagnostics.ByParam("mapDateDate['notadate']"), 1)
	assert.Equal(t, "notadate", res.Diagnostics.ByParam("mapDateDate['notadate']")[0].Value)
	assert.ErrorIs(t, res.Err(), coerce.ErrConversion)
}

func TestBindQuotedMapKeys(t *testing.T) {
	b := newBinder(t, "maps.yaml", Config{})

	res := bind(t, b, "MapBindingTests", `mapStringLong['a']=1&mapStringLong["b"]=2&mapStringLong[c]=3`)
	require.True(t, res.OK(), res.Diagnostics.Error())

	m := prop(t, res.Root, "mapStringLong").(*bean.Map)
	assert.Equal(t, 3, m.Len())

	for _, k := range []string{"a", "b", "c"} {
		_, ok := m.Get(k)
		assert.True(t, ok, k)
	}
}

func TestBindOneBadParameter(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	res := bind(t, b, "GenericsBindingTests2",
		"bean.longProperty=abc&bean.stringProperty=x&number=2&list[0]=true")

	require.Len(t, res.Errors(), 1)
	assert.Equal(t, []string{diagnostic.CodeConversion}, codes(res))

	d := res.Diagnostics.Errors[0]
	assert.Equal(t, "bean.longProperty", d.Param)
	assert.Equal(t, "TestBean", d.Target)
	assert.Equal(t, "abc", d.Value)

	assert.Equal(t, "x", prop(t, res.Root, "bean", "stringProperty"))
	assert.Equal(t, 2.0, prop(t, res.Root, "number"))
	assert.Len(t, res.Bound, 3)

	_, ok := prop(t, res.Root, "bean").(bean.Bean).Get("longProperty")
	assert.False(t, ok)
}

func TestBindReusesIntermediateBean(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	res := bind(t, b, "TestBean", "nested.longProperty=1&nested.stringProperty=two")
	require.True(t, res.OK())

	nested := prop(t, res.Root, "nested").(bean.Bean)
	assert.Equal(t, int64(1), prop(t, nested, "longProperty"))
	assert.Equal(t, "two", prop(t, nested, "stringProperty"))
}

func TestBindValidation(t *testing.T) {
	b := newBinder(t, "maps.yaml", Config{})

	res := bind(t, b, "MapBindingTests",
		"name=abcdefghijklmnopq&addresses[home].zip=1234&addresses[work].zip=12345")

	assert.Equal(t, []string{diagnostic.CodeValidation, diagnostic.CodeValidation}, codes(res))
	assert.ErrorIs(t, res.Err(), ErrValidation)

	_, ok := res.Root.Get("name")
	assert.False(t, ok, "rejected values are not written")

	addresses := prop(t, res.Root, "addresses").(*bean.Map)
	work, _ := addresses.Get("work")
	assert.Equal(t, "12345", prop(t, work.(bean.Bean), "zip"))

	home, _ := addresses.Get("home")
	_, ok = home.(bean.Bean).Get("zip")
	assert.False(t, ok)
}

func TestBindScalarTakesFirstValue(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	res := bind(t, b, "TestBean", "intProperty=50&intProperty=70")
	require.True(t, res.OK())
	assert.Equal(t, 50, prop(t, res.Root, "intProperty"), "scalars take the first value")

	res = bind(t, b, "TestBean", "intProperty=101")
	assert.Equal(t, []string{diagnostic.CodeValidation}, codes(res))
}

func TestBindMultiValuedList(t *testing.T) {
	b := newBinder(t, "maps.yaml", Config{})

	res := bind(t, b, "MapBindingTests",
		"ids=6ba7b810-9dad-11d1-80b4-00c04fd430c8&ids=6ba7b811-9dad-11d1-80b4-00c04fd430c8&slots=a&slots=b")
	require.True(t, res.OK(), res.Diagnostics.Error())

	assert.Equal(t, 2, prop(t, res.Root, "ids").(*bean.List).Len())
	assert.Equal(t, []any{"a", "b", nil}, prop(t, res.Root, "slots").(*bean.List).Items())
}

func TestBindIndexErrors(t *testing.T) {
	b := newBinder(t, "maps.yaml", Config{MaxIndex: 10})

	res := bind(t, b, "MapBindingTests",
		"slots[3]=x&slots[1]=ok&matrix[11][0]=1&matrix[0][x]=1&matrix[0][1]=z")

	assert.ElementsMatch(t, []string{
		diagnostic.CodeIndexOutOfRange,
		diagnostic.CodeIndexOutOfRange,
		diagnostic.CodeConversion,
		diagnostic.CodeConversion,
	}, codes(res))

	assert.Equal(t, []any{nil, "ok", nil}, prop(t, res.Root, "slots").(*bean.List).Items())
}

func TestBindKeyAndValueBothFail(t *testing.T) {
	b := newBinder(t, "maps.yaml", Config{})

	res := bind(t, b, "MapBindingTests", "mapLongDate[x]=y")

	assert.Len(t, res.Diagnostics.ByParam("mapLongDate[x]"), 2)
	assert.Equal(t, 0, prop(t, res.Root, "mapLongDate").(*bean.Map).Len())
}

func TestBindSkips(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b := newBinder(t, "generics.yaml", Config{Logger: zap.New(core)})

	res := bind(t, b, "TestBean", "_sourcePage=/x&unknown=1&stringProperty=&longProperty=5")
	require.True(t, res.OK(), res.Diagnostics.Error())

	assert.ElementsMatch(t, []string{"_sourcePage", "unknown", "stringProperty"}, res.Skipped)
	assert.Equal(t, map[string]any{"longProperty": int64(5)}, res.Bound)

	assert.Equal(t, 1, logs.FilterMessage("parameter ignored").Len())
	assert.Equal(t, 1, logs.FilterMessage("no such property, skipping").Len())
	assert.Equal(t, 1, logs.FilterField(zap.String("param", "longProperty")).FilterMessage("parameter bound").Len())
}

func TestBindUnknownIntermediate(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	res := bind(t, b, "TestBean", "nestd.longProperty=1")

	require.Len(t, res.Diagnostics.Errors, 1)
	d := res.Diagnostics.Errors[0]
	assert.Equal(t, diagnostic.CodePropertyNotFound, d.Code)
	assert.Equal(t, []string{"nested"}, d.Suggestions)
	assert.ErrorIs(t, res.Err(), navigate.ErrPropertyNotFound)
}

func TestBindNotIndexable(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	res := bind(t, b, "TestBean", "longProperty[0]=1&stringProperty=s")

	assert.Equal(t, []string{diagnostic.CodeNotIndexable}, codes(res))
	assert.Equal(t, "s", prop(t, res.Root, "stringProperty"))
}

func TestBindUnresolvableType(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	res := bind(t, b, "Class1", "number=1")

	assert.Equal(t, []string{diagnostic.CodeUnresolvableType}, codes(res))
}

func TestBindNoConverter(t *testing.T) {
	b := newBinder(t, "maps.yaml", Config{})

	res := bind(t, b, "MapBindingTests", "addresses[home]=x")

	assert.Equal(t, []string{diagnostic.CodeNoConverter}, codes(res))
}

func TestBindValueTooLong(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{MaxValueSize: 4})

	res := bind(t, b, "TestBean", "stringProperty=abcde&longProperty=1234")

	assert.Equal(t, []string{diagnostic.CodeValueTooLong}, codes(res))
	assert.ErrorIs(t, res.Err(), ErrValueTooLong)
	assert.Equal(t, int64(1234), prop(t, res.Root, "longProperty"))
}

func TestBindCustomConverter(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})
	b.Registry().Register("int", coerce.ConverterFunc(func(input string, _ *typegraph.Type) (any, error) {
		n, err := strconv.Atoi(input)
		if err != nil {
			return nil, err
		}

		return n * 2, nil
	}))

	res := bind(t, b, "TestBean", "intProperty=21")
	require.True(t, res.OK())
	assert.Equal(t, 42, prop(t, res.Root, "intProperty"))
}

func TestBindCustomIntConverterKeepsListIndices(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})
	b.Registry().Register("int", coerce.ConverterFunc(func(input string, _ *typegraph.Type) (any, error) {
		n, err := strconv.Atoi(input)
		if err != nil {
			return nil, err
		}

		return n * 2, nil
	}))

	res := bind(t, b, "GenericsBindingTests2", "list[0]=true&list[1]=false&list[2]=yes")
	require.True(t, res.OK(), "%v", res.Err())

	assert.Equal(t, []any{true, false, true}, prop(t, res.Root, "list").(*bean.List).Items())
}

func TestBindMapKeysUnquotedOnce(t *testing.T) {
	b := newBinder(t, "maps.yaml", Config{})

	res := bind(t, b, "MapBindingTests",
		"mapStringLong['%22a%22']=1&mapStringLong[%20a%20]=2&mapLongDate[%20'10'%20]=1/1/2010")
	require.True(t, res.OK(), "%v", res.Err())

	m := prop(t, res.Root, "mapStringLong").(*bean.Map)
	assert.ElementsMatch(t, []any{`"a"`, " a "}, m.Keys())

	dates := prop(t, res.Root, "mapLongDate").(*bean.Map)
	assert.Equal(t, []any{int64(10)}, dates.Keys())
}

func TestBindIsDeterministic(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	// Both names write the same list slot; the longer name is bound last.
	res := bind(t, b, "GenericsBindingTests2", "list[0]=true&list['0']=false")
	require.True(t, res.OK())

	assert.Equal(t, []any{false}, prop(t, res.Root, "list").(*bean.List).Items())
}

func TestBindConcurrentPasses(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	var wg sync.WaitGroup

	results := make([]*Result, 24)

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			values := url.Values{
				"bean.longProperty": {strconv.Itoa(i)},
				"list[" + strconv.Itoa(i%4) + "]": {"true"},
				"map[" + strconv.Itoa(i) + "]": {"1/1/2010"},
			}

			res, err := b.BindNew("GenericsBindingTests2", values)
			if err == nil {
				results[i] = res
			}
		}()
	}

	wg.Wait()

	for i, res := range results {
		require.NotNil(t, res)
		require.True(t, res.OK(), res.Diagnostics.Error())

		assert.Equal(t, int64(i), prop(t, res.Root, "bean", "longProperty"))
		assert.Equal(t, i%4+1, prop(t, res.Root, "list").(*bean.List).Len())
		assert.Equal(t, []any{int64(i)}, prop(t, res.Root, "map").(*bean.Map).Keys())
	}
}

func TestBindFatalErrors(t *testing.T) {
	_, err := New(nil, Config{})
	require.ErrorIs(t, err, ErrNilGraph)

	b := newBinder(t, "generics.yaml", Config{})

	_, err = b.Bind(nil, nil, nil)
	require.ErrorIs(t, err, ErrNilRoot)

	_, err = b.BindNew("Missing", nil)
	require.ErrorIs(t, err, bean.ErrNotInstantiable)

	_, err = b.BindNew("[]int", nil)
	require.ErrorIs(t, err, bean.ErrNotInstantiable)

	_, err = b.BindNew("*TestBean", nil)
	require.Error(t, err)
}

func TestBindGenericRoot(t *testing.T) {
	b := newBinder(t, "generics.yaml", Config{})

	res := bind(t, b, "TestGenericBean[uuid.UUID, time.Duration]",
		"genericA=6ba7b810-9dad-11d1-80b4-00c04fd430c8&genericB=1m")
	require.True(t, res.OK(), res.Diagnostics.Error())

	assert.Equal(t, time.Minute, prop(t, res.Root, "genericB"))
}
