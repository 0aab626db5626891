// Package cache holds the last computed dependency report together with the
// manifest modification timestamps observed when it was built, and decides
// whether a new scan is required.
package cache

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rios0rios0/depdoctor/domain"
)

// DefaultTTL is the ceiling on how long a report stays fresh with unchanged
// manifests.
const DefaultTTL = 60 * time.Second

// entry pairs a report with the manifest state observed at scan time. It is
// swapped as one unit so readers never see a half-updated report.
type entry struct {
	report    *domain.DependencyReport
	mtimes    map[string]time.Time
	scannedAt time.Time
}

// Cache is the scan cache for one repository root. The zero value is not
// usable; construct with New.
type Cache struct {
	root      string
	ttl       time.Duration
	manifests []string

	mu      sync.Mutex
	current *entry // nil means stale
}

// New creates a stale cache watching the given manifest file names under
// root. A non-positive ttl falls back to DefaultTTL.
func New(root string, ttl time.Duration, manifests []string) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		root:      root,
		ttl:       ttl,
		manifests: manifests,
	}
}

// Get returns the cached report if it is still fresh: scanned within the
// TTL and with no watched manifest modified, added, or removed since.
func (c *Cache) Get() (*domain.DependencyReport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil, false
	}
	if time.Since(c.current.scannedAt) >= c.ttl {
		c.current = nil
		return nil, false
	}
	if c.manifestsChanged() {
		c.current = nil
		return nil, false
	}
	return c.current.report, true
}

// Store records a completed scan: the report and the current modification
// timestamps of every watched manifest, atomically.
func (c *Cache) Store(report *domain.DependencyReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = &entry{
		report:    report,
		mtimes:    c.snapshotMtimes(),
		scannedAt: time.Now(),
	}
}

// Invalidate forces the cache to stale regardless of TTL or timestamps.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// manifestsChanged compares the current manifest timestamps against the
// values recorded at scan time. A manifest that appeared, disappeared, or
// changed mtime makes the cache stale. Callers must hold c.mu.
func (c *Cache) manifestsChanged() bool {
	now := c.snapshotMtimes()
	if len(now) != len(c.current.mtimes) {
		return true
	}
	for name, mtime := range now {
		recorded, ok := c.current.mtimes[name]
		if !ok || !recorded.Equal(mtime) {
			return true
		}
	}
	return false
}

// snapshotMtimes records the modification time of every watched manifest
// that currently exists. Stat errors are treated as absence. Any root-level
// *.tf file can declare modules, so all of them are snapshotted alongside
// the named manifests.
func (c *Cache) snapshotMtimes() map[string]time.Time {
	mtimes := make(map[string]time.Time, len(c.manifests))
	for _, name := range c.manifests {
		info, err := os.Stat(filepath.Join(c.root, name))
		if err != nil {
			continue
		}
		mtimes[name] = info.ModTime()
	}

	matches, err := filepath.Glob(filepath.Join(c.root, "*.tf"))
	if err != nil {
		return mtimes
	}
	for _, path := range matches {
		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}
		mtimes[filepath.Base(path)] = info.ModTime()
	}
	return mtimes
}
