// Package crossref scans source files for inbound package references
// (import/require statements). The engine uses the resulting set to
// escalate the severity of missing packages that the code actually uses.
package crossref

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depdoctor/domain"
)

// Files larger than this are skipped; import statements live near the top
// of human-written sources and oversized files are usually generated.
const maxFileSize = 1 << 20

// defaultExcludedDirs are vendor/generated directories never scanned for
// references.
var defaultExcludedDirs = []string{
	"node_modules", ".venv", "venv", "__pycache__",
	".git", "dist", "build", "target", "vendor",
	".terraform", ".tox", ".eggs",
}

// Per-language reference patterns, keyed by file extension.
var (
	pythonImport = regexp.MustCompile(`(?m)^\s*(?:import|from)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	jsImport     = regexp.MustCompile(`(?:from|import\(|require\()\s*['"]((?:@[\w.-]+/)?[A-Za-z][\w.-]*(?:/[\w.-]+)*)['"]`)
	goImport     = regexp.MustCompile(`(?m)^\s*(?:import\s+)?(?:[\w.]+\s+)?"([\w.-]+(?:/[\w.-]+)+)"`)
	rustUse      = regexp.MustCompile(`(?m)^\s*(?:pub\s+)?(?:use|extern\s+crate)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	rubyRequire  = regexp.MustCompile(`(?m)^\s*require\s+['"]([\w/.-]+)['"]`)
)

// Scanner walks a repository and collects the normalized names of packages
// referenced from source code.
type Scanner struct {
	excluded map[string]bool
}

// NewScanner creates a cross-reference scanner. Extra directory names can
// be excluded on top of the built-in vendor/generated set.
func NewScanner(extraExcluded ...string) *Scanner {
	excluded := make(map[string]bool, len(defaultExcludedDirs)+len(extraExcluded))
	for _, dir := range defaultExcludedDirs {
		excluded[dir] = true
	}
	for _, dir := range extraExcluded {
		excluded[dir] = true
	}
	return &Scanner{excluded: excluded}
}

// ReferencedNames scans source files under root and returns the set of
// normalized package names referenced from imports. The scan is
// best-effort: unreadable files are skipped silently.
func (s *Scanner) ReferencedNames(root string) map[string]bool {
	referenced := make(map[string]bool)

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if s.excluded[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		collect := collectorFor(filepath.Ext(path))
		if collect == nil {
			return nil
		}

		if info, infoErr := entry.Info(); infoErr != nil || info.Size() > maxFileSize {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			logger.Debugf("Skipping unreadable source file %q: %v", path, readErr)
			return nil
		}

		collect(string(data), referenced)
		return nil
	})
	if walkErr != nil {
		logger.Debugf("Cross-reference walk ended early: %v", walkErr)
	}

	return referenced
}

// collectorFor maps a file extension to its reference collector, or nil for
// extensions the scanner does not understand.
func collectorFor(ext string) func(string, map[string]bool) {
	switch ext {
	case ".py":
		return collectPython
	case ".js", ".ts", ".jsx", ".tsx", ".mjs", ".cjs":
		return collectJavaScript
	case ".go":
		return collectGo
	case ".rs":
		return collectRust
	case ".rb":
		return collectRuby
	default:
		return nil
	}
}

func collectPython(content string, into map[string]bool) {
	for _, match := range pythonImport.FindAllStringSubmatch(content, -1) {
		into[domain.NormalizeName(match[1])] = true
	}
}

func collectJavaScript(content string, into map[string]bool) {
	for _, match := range jsImport.FindAllStringSubmatch(content, -1) {
		into[domain.NormalizeName(packageOfSpecifier(match[1]))] = true
	}
}

func collectGo(content string, into map[string]bool) {
	for _, match := range goImport.FindAllStringSubmatch(content, -1) {
		path := match[1]
		into[domain.NormalizeName(path)] = true
		// Imports of subpackages should still match the declared module, so
		// record the host/org/repo prefix as well.
		if parts := strings.Split(path, "/"); len(parts) > 3 {
			into[domain.NormalizeName(strings.Join(parts[:3], "/"))] = true
		}
	}
}

func collectRust(content string, into map[string]bool) {
	for _, match := range rustUse.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if name == "crate" || name == "self" || name == "super" || name == "std" {
			continue
		}
		into[domain.NormalizeName(name)] = true
	}
}

func collectRuby(content string, into map[string]bool) {
	for _, match := range rubyRequire.FindAllStringSubmatch(content, -1) {
		name, _, _ := strings.Cut(match[1], "/")
		into[domain.NormalizeName(name)] = true
	}
}

// packageOfSpecifier reduces a JavaScript import specifier to its package
// name: "@scope/pkg/sub" -> "@scope/pkg", "lodash/fp" -> "lodash".
func packageOfSpecifier(specifier string) string {
	parts := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
