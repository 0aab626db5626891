// Package python implements the Python ecosystem: pyproject.toml and
// requirements.txt manifests, with virtualenv site-packages evidence.
package python

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdoctor/domain"
)

const ecosystemName = "pip"

// Virtualenv directories probed for site-packages evidence, in order.
var venvDirs = []string{".venv", "venv"}

// Ecosystem implements domain.Ecosystem for Python projects.
type Ecosystem struct{}

// New creates the Python ecosystem.
func New() domain.Ecosystem {
	return &Ecosystem{}
}

func (e *Ecosystem) Name() string { return ecosystemName }

func (e *Ecosystem) Profile() domain.EcosystemProfile {
	return domain.EcosystemProfile{
		Name:           ecosystemName,
		ManifestFiles:  []string{"pyproject.toml", "requirements.txt"},
		LockFiles:      []string{"uv.lock", "poetry.lock"},
		InstallDir:     ".venv",
		InstallCommand: "pip install %s",
		CheckCommand:   "pip show %s",
	}
}

// Detect returns true if either Python manifest exists.
func (e *Ecosystem) Detect(root string) bool {
	for _, name := range e.Profile().ManifestFiles {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	return false
}

// pyProject models the subset of pyproject.toml the scan needs: PEP 621
// project dependencies and Poetry's tool table.
type pyProject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ParseManifests reads pyproject.toml and requirements.txt, deduplicating
// declarations across the two by normalized name.
func (e *Ecosystem) ParseManifests(root string) []domain.DeclaredPackage {
	var packages []domain.DeclaredPackage
	seen := make(map[string]bool)

	add := func(name, constraint, manifest string) {
		normalized := domain.NormalizeName(name)
		if name == "" || seen[normalized] || strings.EqualFold(name, "python") {
			return
		}
		seen[normalized] = true
		packages = append(packages, domain.DeclaredPackage{
			Name:       name,
			Constraint: constraint,
			Ecosystem:  ecosystemName,
			Manifest:   manifest,
		})
	}

	if data, err := os.ReadFile(filepath.Join(root, "pyproject.toml")); err == nil {
		var manifest pyProject
		if unmarshalErr := toml.Unmarshal(data, &manifest); unmarshalErr != nil {
			logger.Debugf("[pip] Skipping malformed pyproject.toml: %v", unmarshalErr)
		} else {
			for _, spec := range manifest.Project.Dependencies {
				name, constraint := parseSpecifier(spec)
				add(name, constraint, "pyproject.toml")
			}
			poetryNames := make([]string, 0, len(manifest.Tool.Poetry.Dependencies))
			for name := range manifest.Tool.Poetry.Dependencies {
				poetryNames = append(poetryNames, name)
			}
			sort.Strings(poetryNames)
			for _, name := range poetryNames {
				constraint, _ := manifest.Tool.Poetry.Dependencies[name].(string)
				add(name, constraint, "pyproject.toml")
			}
		}
	}

	if file, err := os.Open(filepath.Join(root, "requirements.txt")); err == nil {
		defer file.Close()
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			// Skip blanks, comments, and -r/-e style directives.
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
				continue
			}
			name, constraint := parseSpecifier(line)
			add(name, constraint, "requirements.txt")
		}
	}

	return packages
}

// IsInstalled looks for site-packages evidence under the project's
// virtualenv: an importable package directory or a dist-info entry. The
// lookup uses the wheel-normalized name (dashes become underscores).
func (e *Ecosystem) IsInstalled(root string, pkg domain.DeclaredPackage) bool {
	importName := strings.ToLower(strings.ReplaceAll(pkg.Name, "-", "_"))

	for _, venv := range venvDirs {
		siteDirs, err := filepath.Glob(filepath.Join(root, venv, "lib", "python*", "site-packages"))
		if err != nil {
			continue
		}
		// Windows virtualenv layout.
		siteDirs = append(siteDirs, filepath.Join(root, venv, "Lib", "site-packages"))

		for _, site := range siteDirs {
			if info, statErr := os.Stat(filepath.Join(site, importName)); statErr == nil && info.IsDir() {
				return true
			}
			if matches, _ := filepath.Glob(filepath.Join(site, importName+"-*.dist-info")); len(matches) > 0 {
				return true
			}
			if matches, _ := filepath.Glob(filepath.Join(site, importName+"-*.egg-info")); len(matches) > 0 {
				return true
			}
			// Single-module distributions install a bare <name>.py file.
			if _, statErr := os.Stat(filepath.Join(site, importName+".py")); statErr == nil {
				return true
			}
		}
	}
	return false
}

// parseSpecifier splits a PEP 508 style specifier into name and constraint,
// trimming extras ("pkg[extra]") and environment markers ("; python<3.12").
func parseSpecifier(spec string) (string, string) {
	spec, _, _ = strings.Cut(spec, ";")
	spec = strings.TrimSpace(spec)

	name, constraint := domain.SplitConstraint(spec)
	if idx := strings.Index(name, "["); idx >= 0 {
		name = name[:idx]
	}
	if idx := strings.IndexAny(name, " \t"); idx >= 0 {
		name = name[:idx]
	}
	return name, constraint
}
