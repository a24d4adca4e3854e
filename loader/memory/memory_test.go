package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

func TestLoader(t *testing.T) {
	l, err := FromJSON(map[string]string{
		"Tests":      `{"Common": {"password2": {"value": {"collection": "DataBlocks", "path": "Common.password"}}}}`,
		"DataBlocks": `{"Common": {"password": "123qwe"}}`,
	})
	require.NoError(t, err)

	names, err := l.Collections()
	require.NoError(t, err)
	assert.Equal(t, []string{"DataBlocks", "Tests"}, names)

	p, err := fixture.Open(l, "Tests")
	require.NoError(t, err)

	ref, err := p.Get("Common.password2")
	require.NoError(t, err)
	assert.True(t, ref.IsReference())

	v, err := ref.Value()
	require.NoError(t, err)
	assert.Equal(t, "123qwe", v)

	_, err = l.Load("Nope")
	assert.ErrorIs(t, err, fixture.ErrCollectionNotFound)
}

func TestPutClones(t *testing.T) {
	l := New(options.DescentStrict)

	doc := node.NewObject().Set("a", node.String("1"))
	l.Put("c", doc)
	doc.Set("a", node.String("2"))

	got, err := l.Load("c")
	require.NoError(t, err)
	assert.Equal(t, `{"a":"1"}`, got.String())
}

func TestPinned(t *testing.T) {
	l := New(options.DescentStrict)
	l.Put("Users", node.NewObject().Set("name", node.String("latest")))
	l.PutPinned("Users", "7", node.NewObject().Set("name", node.String("seven")))
	l.Put("Tests", node.MustFromValue(map[string]any{
		"user": map[string]any{"value": map[string]any{"collection": "Users", "path": "name", "docId": "7"}},
	}))

	p, err := fixture.Open(l, "Tests")
	require.NoError(t, err)

	user, err := p.Get("user")
	require.NoError(t, err)
	v, err := user.Value()
	require.NoError(t, err)
	assert.Equal(t, "seven", v)

	_, err = l.LoadPinned("Users", "8")
	assert.ErrorIs(t, err, fixture.ErrCollectionNotFound)
}

func TestDescent(t *testing.T) {
	l := New(options.DescentLenient)
	l.Put("c", node.MustFromValue(map[string]any{"a": "x"}))

	p, err := fixture.Open(l, "c")
	require.NoError(t, err)

	got, err := p.Get("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x"}`, got.String())
}
