package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/node"
)

func openStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "fixtures.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustDecode(t *testing.T, text string) *node.Node {
	t.Helper()
	doc, err := node.Decode([]byte(text))
	require.NoError(t, err)
	return doc
}

func TestLatestAndPinned(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.PutAt(ctx, "Users", "1", base, mustDecode(t, `{"name": "first"}`)))
	require.NoError(t, s.PutAt(ctx, "Users", "2", base.Add(time.Hour), mustDecode(t, `{"name": "second"}`)))
	require.NoError(t, s.PutAt(ctx, "Tests", "t", base, mustDecode(t, `{
  "latest": {"value": {"collection": "Users", "path": "name"}},
  "pinned": {"value": {"collection": "Users", "path": "name", "docId": "1"}},
  "gone":   {"value": {"collection": "Users", "path": "name", "docId": "9"}}
}`)))

	names, err := s.Collections()
	require.NoError(t, err)
	assert.Equal(t, []string{"Tests", "Users"}, names)

	p, err := fixture.Open(s, "Tests")
	require.NoError(t, err)

	tests := []struct {
		path     string
		expected string
	}{
		{path: "latest", expected: "second"},
		{path: "pinned", expected: "first"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := p.Get(tt.path)
			require.NoError(t, err)
			v, err := got.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}

	gone, err := p.Get("gone")
	require.NoError(t, err)
	_, err = gone.Value()
	assert.ErrorIs(t, err, fixture.ErrCollectionNotFound)
}

func TestReplaceKeepsOneDocumentPerID(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	require.NoError(t, s.Put(ctx, "Users", "1", mustDecode(t, `{"name": "old"}`)))
	require.NoError(t, s.Put(ctx, "Users", "1", mustDecode(t, `{"name": "new"}`)))

	doc, err := s.LoadPinned("Users", "1")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"new"}`, doc.String())
}

func TestKeyOrderSurvivesStorage(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	require.NoError(t, s.Put(ctx, "C", "1", mustDecode(t, `{"z": 1, "a": 2.50, "m": [true, null]}`)))

	doc, err := s.Load("C")
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2.50,"m":[true,null]}`, doc.String())
}

func TestMissing(t *testing.T) {
	s := openStore(t)

	_, err := s.Load("Nope")
	assert.ErrorIs(t, err, fixture.ErrCollectionNotFound)

	_, err = s.LoadPinned("Nope", "1")
	assert.ErrorIs(t, err, fixture.ErrCollectionNotFound)

	assert.Error(t, s.Put(context.Background(), "C", "1", node.Array()))
}
