package cmd //nolint:testpackage // tests unexported functions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoot(t *testing.T) {
	t.Parallel()

	t.Run("should resolve an explicit directory to its absolute path", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()

		// when
		root, err := resolveRoot([]string{dir})

		// then
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(root))
		assert.Equal(t, dir, root)
	})

	t.Run("should default to the current directory without arguments", func(t *testing.T) {
		t.Parallel()

		// given
		cwd, err := os.Getwd()
		require.NoError(t, err)

		// when
		root, resolveErr := resolveRoot(nil)

		// then
		require.NoError(t, resolveErr)
		assert.Equal(t, cwd, root)
	})

	t.Run("should fail for a path that does not exist", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := resolveRoot([]string{filepath.Join(t.TempDir(), "missing")})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not accessible")
	})

	t.Run("should fail for a path that is a file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

		// when
		_, err := resolveRoot([]string{path})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a directory")
	})
}

func TestInjectEngineFactory(t *testing.T) {
	t.Parallel()

	t.Run("should build a factory with the default ecosystems", func(t *testing.T) {
		t.Parallel()

		// when
		factory := injectEngineFactory()

		// then
		assert.NotEmpty(t, factory.Registry().Names())
	})
}
