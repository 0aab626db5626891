// Package watch invalidates the engine's scan cache when a recognized
// manifest file changes on disk. It is an optional collaborator around the
// synchronous engine, not part of the scan itself.
package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	logger "github.com/sirupsen/logrus"
)

// Invalidator is the engine surface the watcher needs.
type Invalidator interface {
	Invalidate()
}

// Watcher watches a repository root and forces the engine stale whenever a
// manifest file is written, created, removed, or renamed.
type Watcher struct {
	watcher   *fsnotify.Watcher
	engine    Invalidator
	manifests map[string]bool
}

// New creates a watcher over root for the given manifest file names.
func New(engine Invalidator, root string, manifestNames []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	if addErr := fsWatcher.Add(root); addErr != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", root, addErr)
	}

	manifests := make(map[string]bool, len(manifestNames))
	for _, name := range manifestNames {
		manifests[name] = true
	}

	return &Watcher{
		watcher:   fsWatcher,
		engine:    engine,
		manifests: manifests,
	}, nil
}

// Run processes filesystem events until the context is canceled or the
// underlying watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isManifest(event.Name) {
				logger.Infof("Manifest %q changed (%s), invalidating cache", filepath.Base(event.Name), event.Op)
				w.engine.Invalidate()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("Watcher error: %v", err)
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// isManifest reports whether an event path refers to a watched manifest.
// Terraform configurations are matched by extension since any *.tf file can
// declare modules.
func (w *Watcher) isManifest(path string) bool {
	return w.manifests[filepath.Base(path)] || filepath.Ext(path) == ".tf"
}
