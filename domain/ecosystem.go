package domain

import (
	"fmt"
	"strings"
)

// EcosystemProfile is the immutable configuration for one package ecosystem.
// Profiles are constructed once at process start and never mutated.
type EcosystemProfile struct {
	Name           string   // Ecosystem identifier (e.g. "npm", "pip")
	ManifestFiles  []string // Manifest file names to probe, in order
	LockFiles      []string // Lock file names, in order
	InstallDir     string   // Install-artifact root, relative to the repo root
	InstallCommand string   // Template for installing one package (%s = name)
	CheckCommand   string   // Template for checking one package (%s = name)
}

// RenderInstall fills the install command template with a package name.
// Templates without a %s placeholder are returned as-is (some ecosystems
// install all packages with a single command).
func (p EcosystemProfile) RenderInstall(name string) string {
	return renderCommand(p.InstallCommand, name)
}

// RenderCheck fills the check command template with a package name.
func (p EcosystemProfile) RenderCheck(name string) string {
	return renderCommand(p.CheckCommand, name)
}

func renderCommand(template, name string) string {
	if strings.Contains(template, "%s") {
		return fmt.Sprintf(template, name)
	}
	return template
}

// Ecosystem abstracts a package-management convention. Each implementation
// owns manifest parsing and installation detection for its convention; new
// ecosystems are added by registering a new implementation, not by branching.
type Ecosystem interface {
	// Name returns the ecosystem identifier.
	Name() string

	// Profile returns the static configuration for this ecosystem.
	Profile() EcosystemProfile

	// Detect returns true if the repository at root uses this ecosystem.
	Detect(root string) bool

	// ParseManifests reads the ecosystem's manifest files under root and
	// returns the declared packages in manifest order. Malformed manifests
	// contribute zero packages; they never fail the scan.
	ParseManifests(root string) []DeclaredPackage

	// IsInstalled reports whether a declared package has installation
	// evidence under root (install directory, lock-file resolution, ...).
	IsInstalled(root string, pkg DeclaredPackage) bool
}

// InstallCommander is an optional interface for ecosystems whose install
// command depends on repository state (e.g. which lockfile is present).
// The engine prefers it over the profile template when implemented.
type InstallCommander interface {
	InstallCommandFor(root, name string) string
}
