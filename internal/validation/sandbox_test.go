package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/errors"
)

func newTestSandbox(t *testing.T) *Sandbox {
	t.Helper()

	base := t.TempDir()
	sb, err := NewSandbox(config.RootsConfig{
		Templates: filepath.Join(base, "templates"),
		Data:      filepath.Join(base, "data"),
		Output:    filepath.Join(base, "output"),
	})
	require.NoError(t, err)

	return sb
}

func TestResolveInsideRoot(t *testing.T) {
	sb := newTestSandbox(t)

	tests := []string{
		"page.html.tmpl",
		"sub/dir/page.html.tmpl",
		"./page.html.tmpl",
		"sub/../page.html.tmpl",
		"",
		".",
	}

	for _, rel := range tests {
		t.Run(rel, func(t *testing.T) {
			abs, err := sb.Resolve(RootTemplates, rel)
			require.NoError(t, err)
			assert.True(t, Contains(sb.Root(RootTemplates), abs), "resolved path %s not under root", abs)
		})
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	sb := newTestSandbox(t)

	tests := []string{
		"..",
		"../outside.json",
		"../../etc/passwd",
		"sub/../../outside",
		"a/b/../../../escape",
	}

	for _, rel := range tests {
		t.Run(rel, func(t *testing.T) {
			_, err := sb.Resolve(RootData, rel)
			require.Error(t, err)
			assert.True(t, errors.IsSecurity(err), "expected security error, got %v", err)
		})
	}
}

func TestResolveRejectsAbsoluteAndNul(t *testing.T) {
	sb := newTestSandbox(t)

	_, err := sb.Resolve(RootData, "/etc/passwd")
	require.Error(t, err)
	assert.True(t, errors.IsSecurity(err))

	_, err = sb.Resolve(RootData, "file\x00.json")
	require.Error(t, err)
	assert.True(t, errors.IsSecurity(err))
}

func TestResolveUnknownRoot(t *testing.T) {
	sb := newTestSandbox(t)

	_, err := sb.Resolve(RootKind("cache"), "x")
	require.Error(t, err)

	var engineErr *errors.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, errors.TypeInternal, engineErr.Type)
	assert.Equal(t, errors.ErrCodeInternal, engineErr.Code)
	assert.Contains(t, engineErr.Message, `unknown sandbox root "cache"`)
	assert.Nil(t, engineErr.Cause)
}

func TestContainsBoundaryAware(t *testing.T) {
	sep := string(os.PathSeparator)
	root := sep + filepath.Join("srv", "data")

	assert.True(t, Contains(root, root))
	assert.True(t, Contains(root, filepath.Join(root, "a.json")))
	assert.True(t, Contains(root, filepath.Join(root, "a", "b")))

	// The naive prefix check would accept these.
	assert.False(t, Contains(root, root+"-other"))
	assert.False(t, Contains(root, root+"x"+sep+"a.json"))
	assert.False(t, Contains(root, sep+filepath.Join("srv", "database")))
}

func TestNewSandboxCreatesRoots(t *testing.T) {
	base := t.TempDir()
	sb, err := NewSandbox(config.RootsConfig{
		Templates: filepath.Join(base, "t"),
		Data:      filepath.Join(base, "d"),
		Output:    filepath.Join(base, "o"),
	})
	require.NoError(t, err)

	for _, kind := range []RootKind{RootTemplates, RootData, RootOutput} {
		info, err := os.Stat(sb.Root(kind))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
