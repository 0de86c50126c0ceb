package lnk

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Shell links are decoded on every platform, so no source file may carry an
// implicit GOOS or GOARCH constraint in its name.
func TestSourcesBuildOnEveryPlatform(t *testing.T) {
	names, err := filepath.Glob("*.go")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, target := range []struct{ goos, goarch string }{
		{"linux", "amd64"},
		{"windows", "amd64"},
		{"darwin", "arm64"},
	} {
		ctx := build.Default
		ctx.GOOS, ctx.GOARCH = target.goos, target.goarch
		for _, name := range names {
			if strings.HasSuffix(name, "_test.go") {
				continue
			}
			match, err := ctx.MatchFile(".", name)
			require.NoError(t, err)
			require.True(t, match, "%s excluded on %s/%s", name, target.goos, target.goarch)
		}
	}

	_, err = os.Stat("extra_darwin_block.go")
	require.NoError(t, err)
}
