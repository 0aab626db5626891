// Package internal wires the engine's collaborators through the DIG
// container.
package internal

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/depdoctor/application"
	"github.com/rios0rios0/depdoctor/config"
	"github.com/rios0rios0/depdoctor/infrastructure/ecosystem"
)

// EngineFactory builds one engine per repository root from the shared
// ecosystem registry.
type EngineFactory struct {
	registry *ecosystem.Registry
}

// NewEngineFactory creates the factory.
func NewEngineFactory(registry *ecosystem.Registry) *EngineFactory {
	return &EngineFactory{registry: registry}
}

// Registry returns the shared ecosystem registry.
func (f *EngineFactory) Registry() *ecosystem.Registry {
	return f.registry
}

// Build creates an engine for the repository at root with the given
// configuration applied.
func (f *EngineFactory) Build(root string, cfg *config.Config) *application.Engine {
	return application.NewEngine(root, f.registry,
		application.WithTTL(cfg.TTL()),
		application.WithSkippedEcosystems(cfg.SkipEcosystems...),
		application.WithExcludedDirs(cfg.ExcludeDirs...),
	)
}

// RegisterProviders registers all constructors with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(ecosystem.NewDefaultRegistry); err != nil {
		return err
	}
	if err := container.Provide(NewEngineFactory); err != nil {
		return err
	}
	return nil
}
