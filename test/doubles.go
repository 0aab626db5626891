// Package testdoubles provides test doubles (spies, stubs, dummies) for
// domain interfaces. No mock frameworks are used.
package testdoubles

import (
	"github.com/rios0rios0/depdoctor/domain"
)

// ---------------------------------------------------------------------------
// SpyEcosystem
// ---------------------------------------------------------------------------

// SpyEcosystem implements domain.Ecosystem as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyEcosystem struct {
	// --- identity ---
	EcosystemName string
	StubProfile   domain.EcosystemProfile

	// --- Detect ---
	Detected bool

	// --- ParseManifests ---
	Declared []domain.DeclaredPackage

	// --- IsInstalled: names reported as installed ---
	Installed map[string]bool

	// spy: call tracking
	DetectCalls     int
	ParseCalls      int
	CheckedPackages []string
}

func (s *SpyEcosystem) Name() string { return s.EcosystemName }

func (s *SpyEcosystem) Profile() domain.EcosystemProfile {
	if s.StubProfile.Name == "" {
		return domain.EcosystemProfile{
			Name:           s.EcosystemName,
			ManifestFiles:  []string{s.EcosystemName + ".manifest"},
			InstallCommand: s.EcosystemName + " install %s",
		}
	}
	return s.StubProfile
}

func (s *SpyEcosystem) Detect(_ string) bool {
	s.DetectCalls++
	return s.Detected
}

func (s *SpyEcosystem) ParseManifests(_ string) []domain.DeclaredPackage {
	s.ParseCalls++
	return s.Declared
}

func (s *SpyEcosystem) IsInstalled(_ string, pkg domain.DeclaredPackage) bool {
	s.CheckedPackages = append(s.CheckedPackages, pkg.Name)
	return s.Installed[pkg.Name]
}

// ---------------------------------------------------------------------------
// DummyEcosystem
// ---------------------------------------------------------------------------

// DummyEcosystem implements domain.Ecosystem with inert behavior, for tests
// that only need interface compliance.
type DummyEcosystem struct{}

func (d *DummyEcosystem) Name() string { return "dummy" }

func (d *DummyEcosystem) Profile() domain.EcosystemProfile {
	return domain.EcosystemProfile{Name: "dummy"}
}

func (d *DummyEcosystem) Detect(_ string) bool { return false }

func (d *DummyEcosystem) ParseManifests(_ string) []domain.DeclaredPackage { return nil }

func (d *DummyEcosystem) IsInstalled(_ string, _ domain.DeclaredPackage) bool { return false }
