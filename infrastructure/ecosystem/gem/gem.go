// Package gem implements the Ruby ecosystem: Gemfile manifests with
// Gemfile.lock resolution as installation evidence. A Gemfile is Ruby
// source, so declarations are extracted with a line-anchored pattern
// rather than a full parser.
package gem

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/rios0rios0/depdoctor/domain"
)

const ecosystemName = "gem"

var (
	// gemPattern matches `gem "name"` and `gem 'name', '~> 1.0'` lines.
	gemPattern = regexp.MustCompile(`(?m)^\s*gem\s+['"]([\w.-]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)

	// specPattern matches resolved entries in Gemfile.lock's specs section,
	// e.g. `    rails (7.1.0)`.
	specPattern = regexp.MustCompile(`(?m)^ {4}([\w.-]+) \(`)
)

// Ecosystem implements domain.Ecosystem for Ruby gems.
type Ecosystem struct{}

// New creates the Ruby ecosystem.
func New() domain.Ecosystem {
	return &Ecosystem{}
}

func (e *Ecosystem) Name() string { return ecosystemName }

func (e *Ecosystem) Profile() domain.EcosystemProfile {
	return domain.EcosystemProfile{
		Name:           ecosystemName,
		ManifestFiles:  []string{"Gemfile"},
		LockFiles:      []string{"Gemfile.lock"},
		InstallDir:     "vendor/bundle",
		InstallCommand: "gem install %s",
		CheckCommand:   "gem list -i %s",
	}
}

// Detect returns true if the repository has a Gemfile.
func (e *Ecosystem) Detect(root string) bool {
	_, err := os.Stat(filepath.Join(root, "Gemfile"))
	return err == nil
}

// ParseManifests extracts gem declarations from the Gemfile.
func (e *Ecosystem) ParseManifests(root string) []domain.DeclaredPackage {
	data, err := os.ReadFile(filepath.Join(root, "Gemfile"))
	if err != nil {
		return nil
	}

	var packages []domain.DeclaredPackage
	seen := make(map[string]bool)
	for _, match := range gemPattern.FindAllStringSubmatch(string(data), -1) {
		name := match[1]
		normalized := domain.NormalizeName(name)
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		packages = append(packages, domain.DeclaredPackage{
			Name:       name,
			Constraint: match[2],
			Ecosystem:  ecosystemName,
			Manifest:   "Gemfile",
		})
	}
	return packages
}

// IsInstalled reports whether the gem has a resolved entry in the
// Gemfile.lock specs section.
func (e *Ecosystem) IsInstalled(root string, pkg domain.DeclaredPackage) bool {
	data, err := os.ReadFile(filepath.Join(root, "Gemfile.lock"))
	if err != nil {
		return false
	}

	normalized := domain.NormalizeName(pkg.Name)
	for _, match := range specPattern.FindAllStringSubmatch(string(data), -1) {
		if domain.NormalizeName(match[1]) == normalized {
			return true
		}
	}
	return false
}
