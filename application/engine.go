// Package application orchestrates the full dependency health scan:
// cache freshness -> manifest parsing -> installation detection ->
// import cross-referencing -> health scoring.
package application

import (
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdoctor/domain"
	"github.com/rios0rios0/depdoctor/infrastructure/cache"
	"github.com/rios0rios0/depdoctor/infrastructure/crossref"
	"github.com/rios0rios0/depdoctor/infrastructure/ecosystem"
)

// Engine is the dependency health engine for one repository root. Create
// one engine per root; instances are independent, so multiple roots can be
// scanned concurrently.
type Engine struct {
	root     string
	registry *ecosystem.Registry
	scanner  *crossref.Scanner
	cache    *cache.Cache
	skip     map[string]bool

	// mu serializes scan-and-swap. Concurrent report requests coalesce:
	// the second caller re-checks freshness under the lock and reuses the
	// first caller's report.
	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	ttl         time.Duration
	skip        []string
	excludeDirs []string
}

// WithTTL overrides the cache time-to-live (default 60s).
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) { s.ttl = ttl }
}

// WithSkippedEcosystems excludes ecosystems from scanning by name.
func WithSkippedEcosystems(names ...string) Option {
	return func(s *settings) { s.skip = append(s.skip, names...) }
}

// WithExcludedDirs adds directories the cross-referencer must not scan.
func WithExcludedDirs(dirs ...string) Option {
	return func(s *settings) { s.excludeDirs = append(s.excludeDirs, dirs...) }
}

// NewEngine creates an engine for the repository at root.
func NewEngine(root string, registry *ecosystem.Registry, opts ...Option) *Engine {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	skip := make(map[string]bool, len(cfg.skip))
	for _, name := range cfg.skip {
		skip[name] = true
	}

	return &Engine{
		root:     root,
		registry: registry,
		scanner:  crossref.NewScanner(cfg.excludeDirs...),
		cache:    cache.New(root, cfg.ttl, registry.ManifestNames()),
		skip:     skip,
	}
}

// Root returns the repository root this engine scans.
func (e *Engine) Root() string { return e.root }

// Report returns the dependency report for the repository, reusing the
// cached report while it is fresh and performing a full scan inline when it
// is not.
func (e *Engine) Report() *domain.DependencyReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	if report, ok := e.cache.Get(); ok {
		return report
	}
	return e.scan()
}

// Invalidate forces the next report request to rescan, regardless of TTL
// or manifest timestamps.
func (e *Engine) Invalidate() {
	e.cache.Invalidate()
}

// scan runs one full pass over every detected ecosystem and caches the
// resulting report. Callers must hold e.mu.
func (e *Engine) scan() *domain.DependencyReport {
	started := time.Now()

	missing := make([]domain.MissingPackage, 0)

	for _, eco := range e.registry.All() {
		if e.skip[eco.Name()] {
			logger.Debugf("Skipping ecosystem %q (configured)", eco.Name())
			continue
		}
		if !eco.Detect(e.root) {
			continue
		}

		declared := eco.ParseManifests(e.root)
		logger.Debugf("Ecosystem %q declares %d packages", eco.Name(), len(declared))

		for _, pkg := range declared {
			if eco.IsInstalled(e.root, pkg) {
				continue
			}

			entry, err := domain.NewMissingPackage(
				pkg.Name,
				eco.Name(),
				e.installCommand(eco, pkg.Name),
				pkg.Manifest,
				domain.SeverityWarning,
			)
			if err != nil {
				// Unreachable with a literal severity; fail loudly if the
				// derivation ever regresses.
				panic(err)
			}
			missing = append(missing, entry)
		}
	}

	e.escalateReferenced(missing)

	report := &domain.DependencyReport{
		Missing:   missing,
		Outdated:  make([]domain.OutdatedPackage, 0),
		Unused:    make([]string, 0),
		Conflicts: make([]domain.Conflict, 0),
	}
	report.HealthScore = CalculateHealthScore(report)

	e.cache.Store(report)

	logger.Debugf(
		"Scan of %q finished in %s: %d missing, score %d",
		e.root, time.Since(started).Round(time.Millisecond), len(missing), report.HealthScore,
	)
	return report
}

// escalateReferenced raises missing packages that are actually referenced
// from source code to critical. The escalation is one-directional.
func (e *Engine) escalateReferenced(missing []domain.MissingPackage) {
	if len(missing) == 0 {
		return
	}

	referenced := e.scanner.ReferencedNames(e.root)
	for i := range missing {
		if referenced[domain.NormalizeName(missing[i].Name)] {
			missing[i].Escalate()
		}
	}
}

// installCommand renders the ready-to-execute install command for one
// package, preferring repository-aware rendering when the ecosystem
// provides it.
func (e *Engine) installCommand(eco domain.Ecosystem, name string) string {
	if commander, ok := eco.(domain.InstallCommander); ok {
		return commander.InstallCommandFor(e.root, name)
	}
	return eco.Profile().RenderInstall(name)
}
