// Package npm implements the JavaScript/TypeScript ecosystem: package.json
// manifests and node_modules installation evidence.
package npm

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdoctor/domain"
)

const ecosystemName = "npm"

// Package manager identifiers, detected from lockfiles.
const (
	pkgMgrPnpm = "pnpm"
	pkgMgrYarn = "yarn"
	pkgMgrNpm  = "npm"
)

// Ecosystem implements domain.Ecosystem for JavaScript/Node.js projects.
type Ecosystem struct{}

// New creates the npm ecosystem.
func New() domain.Ecosystem {
	return &Ecosystem{}
}

func (e *Ecosystem) Name() string { return ecosystemName }

func (e *Ecosystem) Profile() domain.EcosystemProfile {
	return domain.EcosystemProfile{
		Name:           ecosystemName,
		ManifestFiles:  []string{"package.json"},
		LockFiles:      []string{"package-lock.json", "pnpm-lock.yaml", "yarn.lock"},
		InstallDir:     "node_modules",
		InstallCommand: "npm install %s",
		CheckCommand:   "npm ls %s",
	}
}

// Detect returns true if the repository has a package.json file.
func (e *Ecosystem) Detect(root string) bool {
	_, err := os.Stat(filepath.Join(root, "package.json"))
	return err == nil
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// ParseManifests reads package.json and returns runtime and dev dependencies.
// A malformed manifest contributes zero packages.
func (e *Ecosystem) ParseManifests(root string) []domain.DeclaredPackage {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil
	}

	var manifest packageJSON
	if unmarshalErr := json.Unmarshal(data, &manifest); unmarshalErr != nil {
		logger.Debugf("[npm] Skipping malformed package.json: %v", unmarshalErr)
		return nil
	}

	deps := make(map[string]string, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name, constraint := range manifest.Dependencies {
		deps[name] = constraint
	}
	for name, constraint := range manifest.DevDependencies {
		deps[name] = constraint
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
			Manifest:   "package.json",
		})
	}
	return packages
}

// IsInstalled checks for a package directory under node_modules. Scoped
// packages like @types/node resolve to node_modules/@types/node.
func (e *Ecosystem) IsInstalled(root string, pkg domain.DeclaredPackage) bool {
	info, err := os.Stat(filepath.Join(root, "node_modules", filepath.FromSlash(pkg.Name)))
	return err == nil && info.IsDir()
}

// InstallCommandFor renders the install command for one package, using the
// package manager the repository actually uses (detected from lockfiles,
// defaulting to npm).
func (e *Ecosystem) InstallCommandFor(root, name string) string {
	profile := e.Profile()
	profile.InstallCommand = installCommandTemplate(root)
	return profile.RenderInstall(name)
}

// installCommandTemplate picks the install command for the package manager
// the repository uses, determined by which lockfile is present.
func installCommandTemplate(root string) string {
	switch detectPackageManager(root) {
	case pkgMgrPnpm:
		return "pnpm add %s"
	case pkgMgrYarn:
		return "yarn add %s"
	default:
		return "npm install %s"
	}
}

// detectPackageManager determines which package manager the repository uses
// by checking for lockfiles.
func detectPackageManager(root string) string {
	if _, err := os.Stat(filepath.Join(root, "pnpm-lock.yaml")); err == nil {
		return pkgMgrPnpm
	}
	if _, err := os.Stat(filepath.Join(root, "yarn.lock")); err == nil {
		return pkgMgrYarn
	}
	return pkgMgrNpm
}
