package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/depdoctor/domain"
)

// ReportBuilder helps create test dependency reports with a fluent
// interface.
type ReportBuilder struct {
	*testkit.BaseBuilder
	missing   []domain.MissingPackage
	outdated  []domain.OutdatedPackage
	unused    []string
	conflicts []domain.Conflict
	score     int
}

// NewReportBuilder creates a new report builder with an empty, healthy
// report as the default.
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		score:       100,
	}
}

// WithMissing appends missing packages.
func (b *ReportBuilder) WithMissing(packages ...domain.MissingPackage) *ReportBuilder {
	b.missing = append(b.missing, packages...)
	return b
}

// WithOutdated appends outdated packages.
func (b *ReportBuilder) WithOutdated(packages ...domain.OutdatedPackage) *ReportBuilder {
	b.outdated = append(b.outdated, packages...)
	return b
}

// WithUnused appends unused package names.
func (b *ReportBuilder) WithUnused(names ...string) *ReportBuilder {
	b.unused = append(b.unused, names...)
	return b
}

// WithConflicts appends conflicts.
func (b *ReportBuilder) WithConflicts(conflicts ...domain.Conflict) *ReportBuilder {
	b.conflicts = append(b.conflicts, conflicts...)
	return b
}

// WithScore sets the health score.
func (b *ReportBuilder) WithScore(score int) *ReportBuilder {
	b.score = score
	return b
}

// Build creates the report (satisfies testkit.Builder interface).
func (b *ReportBuilder) Build() interface{} {
	return b.BuildReport()
}

// BuildReport creates the report with a concrete return type.
func (b *ReportBuilder) BuildReport() *domain.DependencyReport {
	return &domain.DependencyReport{
		Missing:     b.missing,
		Outdated:    b.outdated,
		Unused:      b.unused,
		Conflicts:   b.conflicts,
		HealthScore: b.score,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ReportBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.missing = nil
	b.outdated = nil
	b.unused = nil
	b.conflicts = nil
	b.score = 100
	return b
}

// Clone creates a deep copy of the ReportBuilder.
func (b *ReportBuilder) Clone() testkit.Builder {
	clone := &ReportBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		score:       b.score,
	}
	clone.missing = append(clone.missing, b.missing...)
	clone.outdated = append(clone.outdated, b.outdated...)
	clone.unused = append(clone.unused, b.unused...)
	clone.conflicts = append(clone.conflicts, b.conflicts...)
	return clone
}
