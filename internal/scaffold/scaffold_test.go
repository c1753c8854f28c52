package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith/internal/logging"
)

func TestGenerateCreatesLayout(t *testing.T) {
	dir := t.TempDir()

	err := New(logging.NewNop()).Generate(context.Background(), Options{
		Dir:        dir,
		Name:       "my-site",
		WithConfig: true,
	})
	require.NoError(t, err)

	for _, path := range []string{
		"templates/pages/hello.html.tmpl",
		"data/pages/hello.json",
		"data/pages/hello.schema.json",
		".pagesmith.yml",
	} {
		_, err := os.Stat(filepath.Join(dir, path))
		assert.NoError(t, err, path)
	}

	_, err = os.Stat(filepath.Join(dir, "output"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "data", "pages", "hello.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "My Site")

	tmpl, err := os.ReadFile(filepath.Join(dir, "templates", "pages", "hello.html.tmpl"))
	require.NoError(t, err)
	assert.Contains(t, string(tmpl), `{{define "default"}}`)
}

func TestGenerateNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data", "pages", "hello.json")

	require.NoError(t, os.MkdirAll(filepath.Dir(dataPath), 0o755))
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"title": "mine"}`), 0o644))

	err := New(logging.NewNop()).Generate(context.Background(), Options{Dir: dir})
	require.NoError(t, err)

	data, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Equal(t, `{"title": "mine"}`, string(data))
}

func TestGenerateSkipsConfigWhenDisabled(t *testing.T) {
	dir := t.TempDir()

	err := New(logging.NewNop()).Generate(context.Background(), Options{Dir: dir})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".pagesmith.yml"))
	assert.True(t, os.IsNotExist(err))
}
