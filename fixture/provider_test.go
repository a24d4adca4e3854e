package fixture

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

const testsDoc = `{
  "Common": {
    "password": "qwerty",
    "password2": {"value": {"collection": "DataBlocks", "path": "Common.password"}},
    "nested": {"value": {"collection": "DataBlocks", "path": "Common"}},
    "pinned": {"value": {"collection": "DataBlocks", "path": "Common.login", "docId": "7"}}
  },
  "array": ["a", "b", "c"],
  "users": [{"name": "ann"}, {"name": "bob"}],
  "A": {"B": {"C": "x"}},
  "price": 1.50,
  "plain": {"value": "42"},
  "self": {"value": {"collection": "Tests", "path": "self"}},
  "loop": {"value": {"collection": "Loops", "path": "one"}},
  "entry": {"value": {"collection": "Loops", "path": "spin"}},
  "missing": {"value": {"collection": "Nowhere", "path": "x"}}
}`

const dataBlocksDoc = `{
  "Common": {"password": "123qwe", "login": "admin"},
  "alias": {"value": {"collection": "Tests", "path": "Common.password2"}}
}`

const loopsDoc = `{
  "one": {"value": {"collection": "Loops", "path": "two"}},
  "two": {"value": {"collection": "Tests", "path": "loop"}},
  "spin": {"value": {"collection": "Loops", "path": "spin2"}},
  "spin2": {"value": {"collection": "Loops", "path": "spin"}}
}`

type testLoader struct {
	docs   map[string]string
	pinned map[string]string
	loads  int
}

func newTestLoader() *testLoader {
	return &testLoader{docs: map[string]string{
		"Tests":      testsDoc,
		"DataBlocks": dataBlocksDoc,
		"Loops":      loopsDoc,
	}}
}

func (l *testLoader) Load(collection string) (*node.Node, error) {
	l.loads++
	data, ok := l.docs[collection]
	if !ok {
		return nil, NotFound(collection, nil)
	}
	return node.Decode([]byte(data))
}

type pinnedTestLoader struct {
	*testLoader
}

func (l pinnedTestLoader) LoadPinned(collection, id string) (*node.Node, error) {
	data, ok := l.pinned[collection+"/"+id]
	if !ok {
		return nil, NotFound(collection, fmt.Errorf("no document %q", id))
	}
	return node.Decode([]byte(data))
}

func openTests(t *testing.T, opts ...Option) *Provider {
	t.Helper()
	p, err := Open(newTestLoader(), "Tests", opts...)
	require.NoError(t, err)
	return p
}

func value(t *testing.T, p *Provider, path string) string {
	t.Helper()
	got, err := p.Get(path)
	require.NoError(t, err)
	v, err := got.Value()
	require.NoError(t, err)
	return v
}

func TestOpenMissingCollection(t *testing.T) {
	_, err := Open(newTestLoader(), "Nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestOpenLoaderFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := Open(LoaderFunc(func(string) (*node.Node, error) { return nil, boom }), "Tests")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollectionNotFound)
	assert.ErrorIs(t, err, boom)
}

func TestGetValue(t *testing.T) {
	p := openTests(t)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "simple key in nested scope", path: "A.B.C", expected: "x"},
		{name: "array index", path: "array[0]", expected: "a"},
		{name: "last array item", path: "array[2]", expected: "c"},
		{name: "index then key", path: "users[1].name", expected: "bob"},
		{name: "number keeps source text", path: "price", expected: "1.50"},
		{name: "explicit value key", path: "plain", expected: "42"},
		{name: "reference", path: "Common.password2", expected: "123qwe"},
		{name: "reference crossed mid path", path: "Common.nested.login", expected: "admin"},
		{name: "array renders canonically", path: "array", expected: `["a","b","c"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, value(t, p, tt.path))
		})
	}
}

func TestGetEmptyPathIsIdentity(t *testing.T) {
	p := openTests(t)

	common, err := p.Get("Common")
	require.NoError(t, err)

	same, err := common.Get("")
	require.NoError(t, err)
	assert.Same(t, common, same)
	assert.Equal(t, common.String(), same.String())
}

func TestGetIsIdempotent(t *testing.T) {
	p := openTests(t)

	pairs := [][2]string{
		{"A", "B.C"},
		{"A.B", "C"},
		{"users[0]", "name"},
		{"Common", "password"},
	}

	for _, pair := range pairs {
		t.Run(pair[0]+"+"+pair[1], func(t *testing.T) {
			first, err := p.Get(pair[0])
			require.NoError(t, err)
			stepwise, err := first.Get(pair[1])
			require.NoError(t, err)

			direct, err := p.Get(pair[0] + "." + pair[1])
			require.NoError(t, err)

			assert.Equal(t, direct.String(), stepwise.String())
		})
	}
}

func TestPaths(t *testing.T) {
	p := openTests(t)

	assert.Equal(t, "Tests", p.Path())

	common, err := p.Get("Common")
	require.NoError(t, err)
	assert.Equal(t, "Tests.Common", common.Path())

	pass, err := common.Get("password")
	require.NoError(t, err)
	assert.Equal(t, "Tests.Common.password", pass.Path())

	deep, err := p.Get("A.B.C")
	require.NoError(t, err)
	assert.Equal(t, "Tests.A.B.C", deep.Path())

	// dotted paths are rooted at the collection, not at the scope
	fromScope, err := common.Get("nested.login")
	require.NoError(t, err)
	assert.Equal(t, "Tests.nested.login", fromScope.Path())
	assert.Equal(t, "DataBlocks", fromScope.Collection())

	item, err := p.Get("array[1]")
	require.NoError(t, err)
	assert.Equal(t, "Tests.array[1]", item.Path())
	assert.Equal(t, `{"array[1]":"b"}`, item.String())
}

func TestIsReference(t *testing.T) {
	p := openTests(t)

	ref, err := p.Get("Common.password2")
	require.NoError(t, err)
	assert.True(t, ref.IsReference())

	plain, err := p.Get("plain")
	require.NoError(t, err)
	assert.False(t, plain.IsReference())

	common, err := p.Get("Common")
	require.NoError(t, err)
	assert.False(t, common.IsReference())
}

func TestReferenceTransparency(t *testing.T) {
	loader := newTestLoader()

	tests, err := Open(loader, "Tests")
	require.NoError(t, err)
	viaRef := value(t, tests, "Common.password2")

	blocks, err := Open(loader, "DataBlocks")
	require.NoError(t, err)
	direct := value(t, blocks, "Common.password")

	assert.Equal(t, direct, viaRef)
}

func TestReference(t *testing.T) {
	p := openTests(t)

	ref, err := p.Get("Common.password2")
	require.NoError(t, err)

	target, err := ref.Reference()
	require.NoError(t, err)
	assert.Equal(t, "DataBlocks", target.Collection())
	assert.Equal(t, "DataBlocks.Common.password", target.Path())
	assert.Equal(t, `{"password":"123qwe"}`, target.String())
}

func TestReferenceOnPlainNode(t *testing.T) {
	p := openTests(t)

	plain, err := p.Get("A.B")
	require.NoError(t, err)

	_, err = plain.Reference()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoReference)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Tests", fe.Collection)
	assert.Equal(t, "Tests.A.B", fe.Path)
}

func TestChainedReference(t *testing.T) {
	blocks, err := Open(newTestLoader(), "DataBlocks")
	require.NoError(t, err)

	// DataBlocks.alias -> Tests.Common.password2 -> DataBlocks.Common.password
	assert.Equal(t, "123qwe", value(t, blocks, "alias"))
}

func TestCyclicReference(t *testing.T) {
	p := openTests(t)

	for _, path := range []string{"self", "loop"} {
		t.Run(path, func(t *testing.T) {
			ref, err := p.Get(path)
			require.NoError(t, err)

			_, err = ref.Value()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCyclicReference)
			assert.Contains(t, err.Error(), `"collection":`)
		})
	}
}

func TestCycleAwayFromOriginHitsDepthLimit(t *testing.T) {
	p := openTests(t, WithMaxReferenceDepth(8))

	ref, err := p.Get("entry")
	require.NoError(t, err)

	_, err = ref.Value()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReferenceDepthExceeded)
	assert.NotErrorIs(t, err, ErrCyclicReference)
}

func TestCycleMidPath(t *testing.T) {
	p := openTests(t)

	_, err := p.Get("self.x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicReference)
}

func TestChainEnter(t *testing.T) {
	a := node.MustFromValue(map[string]any{"value": map[string]any{"collection": "X", "path": "a"}})
	b := node.MustFromValue(map[string]any{"value": map[string]any{"collection": "X", "path": "b"}})

	var c chain
	c, err := c.enter(a, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, c.hops)

	c, err = c.enter(b, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, c.hops)
	assert.Same(t, a, c.origin)

	_, err = c.enter(a.Clone(), 3)
	assert.ErrorIs(t, err, ErrCyclicReference)

	c, err = c.enter(b, 3)
	require.NoError(t, err)
	_, err = c.enter(b, 3)
	assert.ErrorIs(t, err, ErrReferenceDepthExceeded)
}

func TestMissingField(t *testing.T) {
	p := openTests(t)

	_, err := p.Get("A.B.Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFieldNotFound)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Z", fe.Key)
	assert.Equal(t, "A.B.Z", fe.Path)
	assert.Equal(t, "Tests", fe.Collection)
}

func TestMissingFieldSimple(t *testing.T) {
	p := openTests(t)

	common, err := p.Get("Common")
	require.NoError(t, err)

	_, err = common.Get("pasword")
	require.Error(t, err)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ErrFieldNotFound, fe.Kind)
	assert.Equal(t, "pasword", fe.Key)
	assert.Equal(t, "Tests.Common.pasword", fe.Path)
	assert.Equal(t, []string{"password", "password2"}, fe.Suggestions)
	assert.Contains(t, err.Error(), `did you mean "password", "password2"?`)
}

func TestNotAnArray(t *testing.T) {
	p := openTests(t)

	_, err := p.Get("A[0]")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAnArray)
}

func TestIndexOutOfRange(t *testing.T) {
	p := openTests(t)

	_, err := p.Get("array[3]")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFieldNotFound)
	assert.Contains(t, err.Error(), "array has 3 items")
}

func TestDescentThroughScalar(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		p := openTests(t)

		_, err := p.Get("A.B.C.D")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFieldNotFound)
		assert.Contains(t, err.Error(), "cannot descend further")
	})

	t.Run("lenient", func(t *testing.T) {
		p := openTests(t, WithDescent(options.DescentLenient))

		got, err := p.Get("A.B.C.D")
		require.NoError(t, err)
		assert.Equal(t, "Tests.A.B.C", got.Path())

		v, err := got.Value()
		require.NoError(t, err)
		assert.Equal(t, "x", v)
	})

	t.Run("loader reports lenient", func(t *testing.T) {
		p, err := Open(lenientLoader{newTestLoader()}, "Tests")
		require.NoError(t, err)

		_, err = p.Get("A.B.C.D")
		require.NoError(t, err)

		// an explicit option wins over the loader
		p, err = Open(lenientLoader{newTestLoader()}, "Tests", WithDescent(options.DescentStrict))
		require.NoError(t, err)
		_, err = p.Get("A.B.C.D")
		assert.ErrorIs(t, err, ErrFieldNotFound)
	})
}

type lenientLoader struct {
	*testLoader
}

func (lenientLoader) Descent(string) options.DescentEnum {
	return options.DescentLenient
}

func TestMissingReferenceTarget(t *testing.T) {
	p := openTests(t)

	ref, err := p.Get("missing")
	require.NoError(t, err)

	_, err = ref.Value()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestPinnedReference(t *testing.T) {
	t.Run("unsupported by loader", func(t *testing.T) {
		p := openTests(t)

		_, err := p.Get("Common.pinned")
		require.NoError(t, err)

		_, err = p.Get("Common.pinned.login")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCollectionNotFound)
	})

	t.Run("pinned document", func(t *testing.T) {
		base := newTestLoader()
		base.pinned = map[string]string{
			"DataBlocks/7": `{"Common": {"login": "root"}}`,
		}

		p, err := Open(pinnedTestLoader{base}, "Tests")
		require.NoError(t, err)

		assert.Equal(t, "root", value(t, p, "Common.pinned"))
		assert.Equal(t, "admin", value(t, p, "Common.nested.login"))
	})
}

func TestKeySet(t *testing.T) {
	p := openTests(t)

	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{name: "object", path: "A.B", expected: []string{"C"}},
		{name: "plain value", path: "plain", expected: []string{}},
		{name: "reference to object", path: "Common.nested", expected: []string{"password", "login"}},
		{name: "reference to scalar", path: "Common.password2", expected: []string{"password"}},
		{name: "array", path: "array", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Get(tt.path)
			require.NoError(t, err)

			keys, err := got.KeySet()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, keys)
		})
	}

	self, err := p.Get("self")
	require.NoError(t, err)
	_, err = self.KeySet()
	assert.ErrorIs(t, err, ErrCyclicReference)
}

func TestValues(t *testing.T) {
	p := openTests(t)

	arr, err := p.Get("array")
	require.NoError(t, err)

	items := arr.Values()
	require.Len(t, items, 3)

	for i, expected := range []string{"a", "b", "c"} {
		v, err := items[i].Value()
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}
	assert.Equal(t, "Tests.array[2]", items[2].Path())

	common, err := p.Get("Common")
	require.NoError(t, err)

	fields := common.Values()
	require.Len(t, fields, 4)
	assert.Equal(t, "Tests.Common.password", fields[0].Path())
	assert.True(t, fields[1].IsReference())

	v, err := fields[1].Value()
	require.NoError(t, err)
	assert.Equal(t, "123qwe", v)

	leaf, err := p.Get("price")
	require.NoError(t, err)
	assert.Len(t, leaf.Values(), 1)
}

func TestStringValues(t *testing.T) {
	p := openTests(t)

	arr, err := p.Get("array")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, arr.StringValues())

	users, err := p.Get("users")
	require.NoError(t, err)
	assert.Equal(t, []string{`{"name":"ann"}`, `{"name":"bob"}`}, users.StringValues())
}

func TestToMap(t *testing.T) {
	p := openTests(t)

	ab, err := p.Get("A.B")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"C": "x"}, ab.ToMap())

	arr, err := p.Get("array")
	require.NoError(t, err)
	assert.Nil(t, arr.ToMap())
}

func TestFromCollection(t *testing.T) {
	gen := GeneratorFunc(func(_, raw string) (string, error) { return "<" + raw + ">", nil })
	p := openTests(t, WithGenerator(gen))

	blocks, err := p.FromCollection("DataBlocks")
	require.NoError(t, err)
	assert.Equal(t, "DataBlocks", blocks.Path())
	assert.Equal(t, "<admin>", value(t, blocks, "Common.login"))

	_, err = p.FromCollection("Nope")
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func countingGenerator(counter *int) Generator {
	cache := map[string]string{}
	return GeneratorFunc(func(path, raw string) (string, error) {
		if v, ok := cache[path]; ok {
			return v, nil
		}
		*counter++
		v := fmt.Sprintf("%s-%d", raw, *counter)
		cache[path] = v
		return v, nil
	})
}

func TestGeneratorDeterminism(t *testing.T) {
	var counter int

	p := openTests(t, WithGenerator(countingGenerator(&counter)))

	first := value(t, p, "Common.password")
	second := value(t, p, "Common.password")
	assert.Equal(t, "qwerty-1", first)
	assert.Equal(t, first, second)

	// same logical path reached stepwise
	common, err := p.Get("Common")
	require.NoError(t, err)
	assert.Equal(t, first, value(t, common, "password"))

	other := openTests(t).ApplyGenerator(countingGenerator(&counter))
	assert.NotEqual(t, first, value(t, other, "Common.password"))
}

func TestGeneratorThroughReference(t *testing.T) {
	var seen []string
	gen := GeneratorFunc(func(path, raw string) (string, error) {
		seen = append(seen, path)
		return raw + "!", nil
	})

	p := openTests(t, WithGenerator(gen))
	assert.Equal(t, "123qwe!", value(t, p, "Common.password2"))
	assert.Equal(t, []string{"DataBlocks.Common.password"}, seen)

	ref, err := p.Get("Common.password2")
	require.NoError(t, err)
	raw, err := ref.RawValue()
	require.NoError(t, err)
	assert.Equal(t, "123qwe", raw)
}

func TestGeneratorFailure(t *testing.T) {
	boom := errors.New("boom")
	p := openTests(t, WithGenerator(GeneratorFunc(func(string, string) (string, error) {
		return "", boom
	})))

	leaf, err := p.Get("A.B.C")
	require.NoError(t, err)

	_, err = leaf.Value()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneratorFailure)
	assert.ErrorIs(t, err, boom)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Tests.A.B.C", fe.Path)
}

func TestApplyGeneratorDoesNotMutate(t *testing.T) {
	p := openTests(t)
	upper := p.ApplyGenerator(GeneratorFunc(func(_, raw string) (string, error) { return "G" + raw, nil }))

	assert.Equal(t, "x", value(t, p, "A.B.C"))
	assert.Equal(t, "Gx", value(t, upper, "A.B.C"))
}

func TestValueWithoutScalar(t *testing.T) {
	p := openTests(t)

	ab, err := p.Get("A.B")
	require.NoError(t, err)

	_, err = ab.Value()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestReferenceShapeOption(t *testing.T) {
	loader := LoaderFunc(func(collection string) (*node.Node, error) {
		switch collection {
		case "Main":
			return node.Decode([]byte(`{"link": {"ref": {"table": "Other", "at": "k"}}}`))
		case "Other":
			return node.Decode([]byte(`{"k": "found"}`))
		}
		return nil, NotFound(collection, nil)
	})

	p, err := Open(loader, "Main", WithReferenceShape(ReferenceShape{
		ValueKey:       "ref",
		CollectionKeys: []string{"table"},
		PathKey:        "at",
	}))
	require.NoError(t, err)

	assert.Equal(t, "found", value(t, p, "link"))
}

func TestErrorMessage(t *testing.T) {
	err := &Error{
		Kind:        ErrFieldNotFound,
		Collection:  "Tests",
		Key:         "Z",
		Path:        "A.B.Z",
		Detail:      "field on path A.B.Z not found",
		Suggestions: []string{"C"},
	}

	assert.Equal(t,
		`datajack: field not found collection="Tests" key="Z" path="A.B.Z": field on path A.B.Z not found (did you mean "C"?)`,
		err.Error())
	assert.Equal(t, ErrFieldNotFound, KindOf(err))
	assert.Nil(t, KindOf(errors.New("other")))
}
