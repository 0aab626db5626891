// Package terraform implements the Terraform ecosystem: module blocks in
// *.tf files, with .terraform/modules as the install-artifact root.
package terraform

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/rios0rios0/depdoctor/domain"
)

const ecosystemName = "terraform"

// modulePattern is the fallback matcher for module blocks when HCL parsing
// fails on a file.
var modulePattern = regexp.MustCompile(`(?s)module\s+"([^"]+)"\s*\{[^}]*source\s*=\s*"([^"]+)"`)

// Ecosystem implements domain.Ecosystem for Terraform module dependencies.
type Ecosystem struct{}

// New creates the Terraform ecosystem.
func New() domain.Ecosystem {
	return &Ecosystem{}
}

func (e *Ecosystem) Name() string { return ecosystemName }

func (e *Ecosystem) Profile() domain.EcosystemProfile {
	return domain.EcosystemProfile{
		Name:           ecosystemName,
		ManifestFiles:  []string{"main.tf", "modules.tf"},
		LockFiles:      []string{".terraform.lock.hcl"},
		InstallDir:     ".terraform/modules",
		InstallCommand: "terraform get -update",
		CheckCommand:   "terraform providers",
	}
}

// Detect returns true if any *.tf file exists at the repository root.
func (e *Ecosystem) Detect(root string) bool {
	matches, err := filepath.Glob(filepath.Join(root, "*.tf"))
	return err == nil && len(matches) > 0
}

// ParseManifests scans the root-level *.tf files for module blocks with a
// remote source. Local-path modules (./ or ../) need no installation and
// are not declared.
func (e *Ecosystem) ParseManifests(root string) []domain.DeclaredPackage {
	matches, err := filepath.Glob(filepath.Join(root, "*.tf"))
	if err != nil {
		return nil
	}

	var packages []domain.DeclaredPackage
	seen := make(map[string]bool)
	for _, path := range matches {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		for _, mod := range parseModules(string(data), filepath.Base(path)) {
			normalized := domain.NormalizeName(mod.Name)
			if seen[normalized] {
				continue
			}
			seen[normalized] = true
			packages = append(packages, mod)
		}
	}
	return packages
}

// IsInstalled reports whether the module has an entry in the Terraform
// module manifest (.terraform/modules/modules.json), written by
// `terraform init` / `terraform get`.
func (e *Ecosystem) IsInstalled(root string, pkg domain.DeclaredPackage) bool {
	data, err := os.ReadFile(filepath.Join(root, ".terraform", "modules", "modules.json"))
	if err != nil {
		return false
	}

	var manifest struct {
		Modules []struct {
			Key string `json:"Key"`
		} `json:"Modules"`
	}
	if unmarshalErr := json.Unmarshal(data, &manifest); unmarshalErr != nil {
		logger.Debugf("[terraform] Skipping malformed modules.json: %v", unmarshalErr)
		return false
	}

	normalized := domain.NormalizeName(pkg.Name)
	for _, entry := range manifest.Modules {
		if domain.NormalizeName(entry.Key) == normalized {
			return true
		}
	}
	return false
}

// parseModules extracts remote module declarations from one Terraform file.
// HCL parsing is attempted first; on failure the regex fallback runs so a
// single malformed file never hides its neighbors' declarations.
func parseModules(content, fileName string) []domain.DeclaredPackage {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL([]byte(content), fileName)
	if diags.HasErrors() {
		return parseModulesWithRegex(content, fileName)
	}

	bodyContent, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "module", LabelNames: []string{"name"}},
		},
	})
	if diags.HasErrors() {
		return parseModulesWithRegex(content, fileName)
	}

	var packages []domain.DeclaredPackage
	for _, block := range bodyContent.Blocks {
		if block.Type != "module" || len(block.Labels) == 0 {
			continue
		}

		attrs, _ := block.Body.JustAttributes()
		sourceAttr, hasSource := attrs["source"]
		if !hasSource {
			continue
		}

		sourceVal, valDiags := sourceAttr.Expr.Value(&hcl.EvalContext{})
		if valDiags.HasErrors() || sourceVal.Type() != cty.String {
			continue
		}

		source := sourceVal.AsString()
		if isLocalModule(source) {
			continue
		}

		packages = append(packages, declaredModule(block.Labels[0], source, fileName))
	}
	return packages
}

// parseModulesWithRegex is the fallback extractor for files HCL rejects.
func parseModulesWithRegex(content, fileName string) []domain.DeclaredPackage {
	var packages []domain.DeclaredPackage
	for _, match := range modulePattern.FindAllStringSubmatch(content, -1) {
		name, source := match[1], match[2]
		if isLocalModule(source) {
			continue
		}
		packages = append(packages, declaredModule(name, source, fileName))
	}
	return packages
}

func declaredModule(name, source, fileName string) domain.DeclaredPackage {
	return domain.DeclaredPackage{
		Name:       name,
		Constraint: extractRef(source),
		Ecosystem:  ecosystemName,
		Manifest:   fileName,
	}
}

// isLocalModule returns true for path-based sources that Terraform resolves
// without installation.
func isLocalModule(source string) bool {
	return strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../")
}

// refPattern extracts the pinned ref from Git-based module sources.
var refPattern = regexp.MustCompile(`[?&]ref=([^&\s"]+)`)

func extractRef(source string) string {
	if matches := refPattern.FindStringSubmatch(source); len(matches) > 1 {
		return matches[1]
	}
	return ""
}
