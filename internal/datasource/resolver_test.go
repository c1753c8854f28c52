package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/errors"
	"github.com/pagesmith/pagesmith/internal/logging"
	"github.com/pagesmith/pagesmith/internal/validation"
)

func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()

	base := t.TempDir()
	dataRoot := filepath.Join(base, "data")
	sb, err := validation.NewSandbox(config.RootsConfig{
		Templates: filepath.Join(base, "templates"),
		Data:      dataRoot,
		Output:    filepath.Join(base, "output"),
	})
	require.NoError(t, err)

	return NewResolver(sb, logging.NewNop()), sb.Root(validation.RootData)
}

func writeData(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveSingleSource(t *testing.T) {
	r, root := newTestResolver(t)
	writeData(t, root, "page.json", `{"title": "Hi", "count": 3}`)

	props, err := r.Resolve(context.Background(), []Spec{{Filename: "page.json"}})
	require.NoError(t, err)

	assert.Equal(t, "Hi", props["title"])
	assert.Equal(t, float64(3), props["count"])
}

func TestResolveMergeOrder(t *testing.T) {
	r, root := newTestResolver(t)
	writeData(t, root, "base.json", `{"title": "Base", "nav": {"home": "/"}}`)
	writeData(t, root, "override.json", `{"title": "Override", "nav": {"about": "/about"}}`)

	props, err := r.Resolve(context.Background(), []Spec{
		{Filename: "base.json"},
		{Filename: "override.json"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Override", props["title"])
	assert.Equal(t, map[string]interface{}{"home": "/", "about": "/about"}, props["nav"])
}

func TestResolveKeyExtraction(t *testing.T) {
	r, root := newTestResolver(t)
	writeData(t, root, "site.json", `{"meta": {"page": {"title": "Nested"}}, "other": 1}`)

	t.Run("plain key", func(t *testing.T) {
		props, err := r.Resolve(context.Background(), []Spec{{Filename: "site.json", Key: "meta"}})
		require.NoError(t, err)
		assert.Contains(t, props, "page")
		assert.NotContains(t, props, "other")
	})

	t.Run("dotted path", func(t *testing.T) {
		props, err := r.Resolve(context.Background(), []Spec{{Filename: "site.json", Key: "meta.page"}})
		require.NoError(t, err)
		assert.Equal(t, "Nested", props["title"])
	})

	t.Run("absent key yields empty mapping", func(t *testing.T) {
		props, err := r.Resolve(context.Background(), []Spec{{Filename: "site.json", Key: "missing"}})
		require.NoError(t, err)
		assert.Empty(t, props)
	})

	t.Run("non-object key value is a shape error", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), []Spec{{Filename: "site.json", Key: "other"}})
		require.Error(t, err)
		assert.Equal(t, errors.TypeParse, errors.TypeOf(err))
	})
}

func TestResolveSkipsEmptyFilenames(t *testing.T) {
	r, root := newTestResolver(t)
	writeData(t, root, "page.json", `{"title": "Hi"}`)

	props, err := r.Resolve(context.Background(), []Spec{
		{Filename: ""},
		{Filename: "page.json"},
		{},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi", props["title"])
}

func TestResolveMissingFile(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Resolve(context.Background(), []Spec{{Filename: "nope.json"}})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestResolveMalformedJSON(t *testing.T) {
	r, root := newTestResolver(t)
	writeData(t, root, "broken.json", `{"title": `)

	_, err := r.Resolve(context.Background(), []Spec{{Filename: "broken.json"}})
	require.Error(t, err)
	assert.Equal(t, errors.TypeParse, errors.TypeOf(err))
}

func TestResolveNonObjectDocument(t *testing.T) {
	r, root := newTestResolver(t)
	writeData(t, root, "list.json", `[1, 2, 3]`)

	_, err := r.Resolve(context.Background(), []Spec{{Filename: "list.json"}})
	require.Error(t, err)
	assert.Equal(t, errors.TypeParse, errors.TypeOf(err))
}

func TestResolveTraversalRejected(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Resolve(context.Background(), []Spec{{Filename: "../secrets.json"}})
	require.Error(t, err)
	assert.True(t, errors.IsSecurity(err))
}

func TestResolveEmptySpecList(t *testing.T) {
	r, _ := newTestResolver(t)

	props, err := r.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, props)
	assert.Empty(t, props)
}
