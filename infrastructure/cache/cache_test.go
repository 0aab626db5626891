package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depdoctor/domain"
	"github.com/rios0rios0/depdoctor/infrastructure/cache"
)

var watched = []string{"package.json", "requirements.txt"}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

func TestCache_Get(t *testing.T) {
	t.Parallel()

	t.Run("should be stale before the first store", func(t *testing.T) {
		t.Parallel()

		// given
		c := cache.New(t.TempDir(), time.Minute, watched)

		// when
		report, ok := c.Get()

		// then
		assert.False(t, ok)
		assert.Nil(t, report)
	})

	t.Run("should return the stored report while fresh", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "package.json", "{}")
		c := cache.New(root, time.Minute, watched)
		stored := &domain.DependencyReport{HealthScore: 95}
		c.Store(stored)

		// when
		report, ok := c.Get()

		// then
		assert.True(t, ok)
		assert.Same(t, stored, report)
	})

	t.Run("should go stale after the TTL", func(t *testing.T) {
		t.Parallel()

		// given
		c := cache.New(t.TempDir(), 10*time.Millisecond, watched)
		c.Store(&domain.DependencyReport{HealthScore: 100})

		// when
		time.Sleep(20 * time.Millisecond)
		_, ok := c.Get()

		// then
		assert.False(t, ok)
	})

	t.Run("should go stale when a watched manifest is modified", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "package.json", "{}")
		c := cache.New(root, time.Minute, watched)
		c.Store(&domain.DependencyReport{HealthScore: 100})

		// when the manifest mtime moves forward
		future := time.Now().Add(2 * time.Second)
		require.NoError(t, os.Chtimes(filepath.Join(root, "package.json"), future, future))
		_, ok := c.Get()

		// then
		assert.False(t, ok)
	})

	t.Run("should go stale when a watched manifest appears", func(t *testing.T) {
		t.Parallel()

		// given a scan recorded with no manifests present
		root := t.TempDir()
		c := cache.New(root, time.Minute, watched)
		c.Store(&domain.DependencyReport{HealthScore: 100})

		// when
		writeFile(t, root, "requirements.txt", "flask\n")
		_, ok := c.Get()

		// then
		assert.False(t, ok)
	})

	t.Run("should go stale when a watched manifest disappears", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "package.json", "{}")
		c := cache.New(root, time.Minute, watched)
		c.Store(&domain.DependencyReport{HealthScore: 100})

		// when
		require.NoError(t, os.Remove(filepath.Join(root, "package.json")))
		_, ok := c.Get()

		// then
		assert.False(t, ok)
	})

	t.Run("should go stale when any tf file is modified", func(t *testing.T) {
		t.Parallel()

		// given a tf file whose name is not in the watched manifest list
		root := t.TempDir()
		writeFile(t, root, "infra.tf", `module "vpc" {}`)
		c := cache.New(root, time.Minute, watched)
		c.Store(&domain.DependencyReport{HealthScore: 100})

		// when
		future := time.Now().Add(2 * time.Second)
		require.NoError(t, os.Chtimes(filepath.Join(root, "infra.tf"), future, future))
		_, ok := c.Get()

		// then
		assert.False(t, ok)
	})

	t.Run("should go stale when a tf file appears", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		c := cache.New(root, time.Minute, watched)
		c.Store(&domain.DependencyReport{HealthScore: 100})

		// when
		writeFile(t, root, "infra.tf", `module "vpc" {}`)
		_, ok := c.Get()

		// then
		assert.False(t, ok)
	})

	t.Run("should ignore changes to unwatched files", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		c := cache.New(root, time.Minute, watched)
		c.Store(&domain.DependencyReport{HealthScore: 100})

		// when an unrelated file appears
		writeFile(t, root, "README.md", "# demo\n")
		_, ok := c.Get()

		// then
		assert.True(t, ok)
	})
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	t.Run("should force the next get to miss", func(t *testing.T) {
		t.Parallel()

		// given a fresh cache
		c := cache.New(t.TempDir(), time.Minute, watched)
		c.Store(&domain.DependencyReport{HealthScore: 100})

		// when
		c.Invalidate()
		_, ok := c.Get()

		// then
		assert.False(t, ok)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("should fall back to the default TTL for non-positive values", func(t *testing.T) {
		t.Parallel()

		// given
		c := cache.New(t.TempDir(), 0, watched)
		c.Store(&domain.DependencyReport{HealthScore: 100})

		// then the report is still fresh well past a zero TTL
		_, ok := c.Get()
		assert.True(t, ok)
	})
}
