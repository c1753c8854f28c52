package validation

import (
	"path"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/errors"
)

func TestSandboxProperties(t *testing.T) {
	base := t.TempDir()
	sb, err := NewSandbox(config.RootsConfig{
		Templates: path.Join(base, "templates"),
		Data:      path.Join(base, "data"),
		Output:    path.Join(base, "output"),
	})
	if err != nil {
		t.Fatal(err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1234)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	segment := gen.RegexMatch(`[a-z][a-z0-9_.-]{0,8}`)
	segments := gen.SliceOfN(4, gen.OneGenOf(segment, gen.Const(".."), gen.Const(".")))

	// Resolution never yields a path outside the root: it either fails with
	// a security error or the result is contained.
	properties.Property("resolve is contained or rejected", prop.ForAll(
		func(parts []string) bool {
			rel := strings.Join(parts, "/")

			abs, err := sb.Resolve(RootData, rel)
			if err != nil {
				return errors.IsSecurity(err)
			}

			return Contains(sb.Root(RootData), abs)
		},
		segments,
	))

	// Traversal-free relative paths always resolve.
	properties.Property("clean relative paths resolve", prop.ForAll(
		func(parts []string) bool {
			rel := strings.Join(parts, "/")

			abs, err := sb.Resolve(RootTemplates, rel)

			return err == nil && Contains(sb.Root(RootTemplates), abs)
		},
		gen.SliceOfN(3, segment),
	))

	properties.TestingRun(t)
}
