package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Severity levels for missing packages.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// ErrInvalidSeverity is returned when a MissingPackage is constructed with a
// severity outside the enumerated set. Only the engine constructs these
// values, so hitting it means a bug in the severity derivation.
var ErrInvalidSeverity = errors.New("invalid severity")

// DeclaredPackage is a dependency as read from a manifest file, before any
// installation check. Produced transiently by manifest parsers.
type DeclaredPackage struct {
	Name       string // Package name as declared
	Constraint string // Version constraint, empty if unconstrained
	Ecosystem  string // Ecosystem identifier ("npm", "pip", ...)
	Manifest   string // Manifest file the declaration was read from
}

// MissingPackage is a declared dependency with no installation evidence.
type MissingPackage struct {
	Name           string `json:"name"`
	Ecosystem      string `json:"ecosystem"`
	InstallCommand string `json:"install_command"` // Fully rendered, ready to execute
	DetectedFrom   string `json:"detected_from"`   // Manifest file path
	Severity       string `json:"severity"`
}

// NewMissingPackage builds a MissingPackage, validating the severity against
// the enumerated set.
func NewMissingPackage(name, ecosystem, installCommand, detectedFrom, severity string) (MissingPackage, error) {
	switch severity {
	case SeverityCritical, SeverityWarning, SeverityInfo:
	default:
		return MissingPackage{}, fmt.Errorf("%w: %q", ErrInvalidSeverity, severity)
	}

	return MissingPackage{
		Name:           name,
		Ecosystem:      ecosystem,
		InstallCommand: installCommand,
		DetectedFrom:   detectedFrom,
		Severity:       severity,
	}, nil
}

// Escalate raises the severity to critical. The escalation is one-directional
// and idempotent: a package already critical stays critical.
func (p *MissingPackage) Escalate() {
	p.Severity = SeverityCritical
}

// OutdatedPackage is a dependency whose installed version lags behind the
// latest known version.
type OutdatedPackage struct {
	Name           string `json:"name"`
	Ecosystem      string `json:"ecosystem"`
	CurrentVersion string `json:"current_version"`
	LatestVersion  string `json:"latest_version"`
	UpdateCommand  string `json:"update_command"`
}

// MajorUpdate reports whether the latest version is a major step over the
// current one, comparing the leading numeric component of each version.
// If either side fails to parse, the answer is false.
func (p *OutdatedPackage) MajorUpdate() bool {
	current, ok := leadingMajor(p.CurrentVersion)
	if !ok {
		return false
	}
	latest, ok := leadingMajor(p.LatestVersion)
	if !ok {
		return false
	}
	return latest > current
}

// leadingMajor extracts the leading integer of a version string after
// stripping range/prefix characters (v, ^, ~).
func leadingMajor(version string) (int, bool) {
	version = strings.TrimLeft(version, "v^~")
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return major, true
}

// Conflict records a package requested at incompatible versions by multiple
// requesters. RequiredBy and ConflictingVersions have the same cardinality.
type Conflict struct {
	Package             string   `json:"package"`
	RequiredBy          []string `json:"required_by"`
	ConflictingVersions []string `json:"conflicting_versions"`
	ResolutionHint      string   `json:"resolution_hint"`
}

// DependencyReport is the aggregate result of one full scan. It is immutable
// once constructed and superseded wholesale by the next scan.
type DependencyReport struct {
	Missing     []MissingPackage  `json:"missing"`
	Outdated    []OutdatedPackage `json:"outdated"`
	Unused      []string          `json:"unused"`
	Conflicts   []Conflict        `json:"conflicts"`
	HealthScore int               `json:"health_score"`
}

// CriticalCount returns the number of critical missing packages.
func (r *DependencyReport) CriticalCount() int {
	count := 0
	for _, p := range r.Missing {
		if p.Severity == SeverityCritical {
			count++
		}
	}
	return count
}

// WarningCount returns the number of non-critical missing packages.
func (r *DependencyReport) WarningCount() int {
	return len(r.Missing) - r.CriticalCount()
}

// HasCritical reports whether any missing package is critical.
func (r *DependencyReport) HasCritical() bool {
	return r.CriticalCount() > 0
}
