// Package golang implements the Go ecosystem: go.mod manifests with go.sum
// lock-file resolution as installation evidence.
package golang

import (
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"

	"github.com/rios0rios0/depdoctor/domain"
)

const ecosystemName = "go"

// Ecosystem implements domain.Ecosystem for Go modules.
type Ecosystem struct{}

// New creates the Go ecosystem.
func New() domain.Ecosystem {
	return &Ecosystem{}
}

func (e *Ecosystem) Name() string { return ecosystemName }

func (e *Ecosystem) Profile() domain.EcosystemProfile {
	return domain.EcosystemProfile{
		Name:           ecosystemName,
		ManifestFiles:  []string{"go.mod"},
		LockFiles:      []string{"go.sum"},
		InstallDir:     "",
		InstallCommand: "go get %s",
		CheckCommand:   "go list -m %s",
	}
}

// Detect returns true if the repository has a go.mod file.
func (e *Ecosystem) Detect(root string) bool {
	_, err := os.Stat(filepath.Join(root, "go.mod"))
	return err == nil
}

// ParseManifests reads the go.mod require block, skipping indirect requires.
func (e *Ecosystem) ParseManifests(root string) []domain.DeclaredPackage {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return nil
	}

	file, parseErr := modfile.Parse("go.mod", data, nil)
	if parseErr != nil {
		logger.Debugf("[go] Skipping malformed go.mod: %v", parseErr)
		return nil
	}

	packages := make([]domain.DeclaredPackage, 0, len(file.Require))
	for _, req := range file.Require {
		if req.Indirect {
			continue
		}
		packages = append(packages, domain.DeclaredPackage{
			Name:       req.Mod.Path,
			Constraint: req.Mod.Version,
			Ecosystem:  ecosystemName,
			Manifest:   "go.mod",
		})
	}
	return packages
}

// IsInstalled reports whether the module has a resolved entry in go.sum.
// Go has no per-project install directory; the sum file is the closest
// local evidence that a module has been fetched and verified.
func (e *Ecosystem) IsInstalled(root string, pkg domain.DeclaredPackage) bool {
	data, err := os.ReadFile(filepath.Join(root, "go.sum"))
	if err != nil {
		return false
	}

	prefix := pkg.Name + " "
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
