// Package cargo implements the Rust ecosystem: Cargo.toml manifests with
// Cargo.lock resolution as installation evidence.
package cargo

import (
	"os"
	"path/filepath"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdoctor/domain"
)

const ecosystemName = "cargo"

// Ecosystem implements domain.Ecosystem for Rust crates.
type Ecosystem struct{}

// New creates the Rust ecosystem.
func New() domain.Ecosystem {
	return &Ecosystem{}
}

func (e *Ecosystem) Name() string { return ecosystemName }

func (e *Ecosystem) Profile() domain.EcosystemProfile {
	return domain.EcosystemProfile{
		Name:           ecosystemName,
		ManifestFiles:  []string{"Cargo.toml"},
		LockFiles:      []string{"Cargo.lock"},
		InstallDir:     "target",
		InstallCommand: "cargo add %s",
		CheckCommand:   "cargo tree -p %s",
	}
}

// Detect returns true if the repository has a Cargo.toml file.
func (e *Ecosystem) Detect(root string) bool {
	_, err := os.Stat(filepath.Join(root, "Cargo.toml"))
	return err == nil
}

// cargoManifest models the dependency tables of Cargo.toml. Values are
// either plain version strings or detailed tables.
type cargoManifest struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// cargoLock models the resolved [[package]] entries of Cargo.lock.
type cargoLock struct {
	Package []struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

// ParseManifests reads Cargo.toml's dependency, dev-dependency, and
// build-dependency tables.
func (e *Ecosystem) ParseManifests(root string) []domain.DeclaredPackage {
	data, err := os.ReadFile(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		return nil
	}

	var manifest cargoManifest
	if unmarshalErr := toml.Unmarshal(data, &manifest); unmarshalErr != nil {
		logger.Debugf("[cargo] Skipping malformed Cargo.toml: %v", unmarshalErr)
		return nil
	}

	deps := make(map[string]string)
	for _, table := range []map[string]any{
		manifest.Dependencies,
		manifest.DevDependencies,
		manifest.BuildDependencies,
	} {
		for name, value := range table {
			deps[name] = constraintOf(value)
		}
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	packages := make([]domain.DeclaredPackage, 0, len(names))
	for _, name := range names {
		packages = append(packages, domain.DeclaredPackage{
			Name:       name,
			Constraint: deps[name],
			Ecosystem:  ecosystemName,
			Manifest:   "Cargo.toml",
		})
	}
	return packages
}

// IsInstalled reports whether the crate has a resolved [[package]] entry in
// Cargo.lock.
func (e *Ecosystem) IsInstalled(root string, pkg domain.DeclaredPackage) bool {
	data, err := os.ReadFile(filepath.Join(root, "Cargo.lock"))
	if err != nil {
		return false
	}

	var lock cargoLock
	if unmarshalErr := toml.Unmarshal(data, &lock); unmarshalErr != nil {
		logger.Debugf("[cargo] Skipping malformed Cargo.lock: %v", unmarshalErr)
		return false
	}

	normalized := domain.NormalizeName(pkg.Name)
	for _, entry := range lock.Package {
		if domain.NormalizeName(entry.Name) == normalized {
			return true
		}
	}
	return false
}

// constraintOf extracts the version constraint from a dependency value:
// either a plain string ("1.0") or a table with a version key
// ({ version = "1.0", features = [...] }).
func constraintOf(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		if version, ok := v["version"].(string); ok {
			return version
		}
	}
	return ""
}
