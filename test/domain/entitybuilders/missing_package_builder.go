package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/depdoctor/domain"
)

// MissingPackageBuilder helps create test missing packages with a fluent
// interface.
type MissingPackageBuilder struct {
	*testkit.BaseBuilder
	name           string
	ecosystem      string
	installCommand string
	detectedFrom   string
	severity       string
}

// NewMissingPackageBuilder creates a new builder with sensible defaults.
func NewMissingPackageBuilder() *MissingPackageBuilder {
	return &MissingPackageBuilder{
		BaseBuilder:    testkit.NewBaseBuilder(),
		name:           "express",
		ecosystem:      "npm",
		installCommand: "npm install express",
		detectedFrom:   "package.json",
		severity:       domain.SeverityWarning,
	}
}

// WithName sets the package name.
func (b *MissingPackageBuilder) WithName(name string) *MissingPackageBuilder {
	b.name = name
	return b
}

// WithEcosystem sets the ecosystem identifier.
func (b *MissingPackageBuilder) WithEcosystem(ecosystem string) *MissingPackageBuilder {
	b.ecosystem = ecosystem
	return b
}

// WithInstallCommand sets the rendered install command.
func (b *MissingPackageBuilder) WithInstallCommand(command string) *MissingPackageBuilder {
	b.installCommand = command
	return b
}

// WithDetectedFrom sets the manifest file path.
func (b *MissingPackageBuilder) WithDetectedFrom(manifest string) *MissingPackageBuilder {
	b.detectedFrom = manifest
	return b
}

// WithSeverity sets the severity.
func (b *MissingPackageBuilder) WithSeverity(severity string) *MissingPackageBuilder {
	b.severity = severity
	return b
}

// Build creates the missing package (satisfies testkit.Builder interface).
func (b *MissingPackageBuilder) Build() interface{} {
	return b.BuildMissingPackage()
}

// BuildMissingPackage creates the missing package with a concrete return
// type. Builders only produce valid severities, so the constructor error is
// impossible here.
func (b *MissingPackageBuilder) BuildMissingPackage() domain.MissingPackage {
	pkg, err := domain.NewMissingPackage(
		b.name, b.ecosystem, b.installCommand, b.detectedFrom, b.severity,
	)
	if err != nil {
		panic(err)
	}
	return pkg
}

// Reset clears the builder state, allowing it to be reused.
func (b *MissingPackageBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "express"
	b.ecosystem = "npm"
	b.installCommand = "npm install express"
	b.detectedFrom = "package.json"
	b.severity = domain.SeverityWarning
	return b
}

// Clone creates a deep copy of the MissingPackageBuilder.
func (b *MissingPackageBuilder) Clone() testkit.Builder {
	return &MissingPackageBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:           b.name,
		ecosystem:      b.ecosystem,
		installCommand: b.installCommand,
		detectedFrom:   b.detectedFrom,
		severity:       b.severity,
	}
}
