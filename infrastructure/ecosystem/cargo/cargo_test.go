package cargo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depdoctor/domain"
	"github.com/rios0rios0/depdoctor/infrastructure/ecosystem/cargo"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

func TestEcosystem_Name(t *testing.T) {
	t.Parallel()

	t.Run("should return cargo", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "cargo", cargo.New().Name())
	})
}

func TestEcosystem_Detect(t *testing.T) {
	t.Parallel()

	t.Run("should detect a repository with Cargo.toml", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "Cargo.toml", "[package]\nname = \"demo\"\n")

		// then
		assert.True(t, cargo.New().Detect(root))
	})

	t.Run("should not detect a repository without Cargo.toml", func(t *testing.T) {
		t.Parallel()

		assert.False(t, cargo.New().Detect(t.TempDir()))
	})
}

func TestEcosystem_ParseManifests(t *testing.T) {
	t.Parallel()

	t.Run("should merge dependency tables sorted by name", func(t *testing.T) {
		t.Parallel()

		// given plain versions and a detailed table entry
		root := t.TempDir()
		writeFile(t, root, "Cargo.toml", `[package]
name = "demo"

[dependencies]
serde = { version = "1.0", features = ["derive"] }
tokio = "1.35"

[dev-dependencies]
criterion = "0.5"

[build-dependencies]
cc = "1.0"
`)

		// when
		packages := cargo.New().ParseManifests(root)

		// then
		require.Len(t, packages, 4)
		assert.Equal(t, "cc", packages[0].Name)
		assert.Equal(t, "criterion", packages[1].Name)
		assert.Equal(t, "serde", packages[2].Name)
		assert.Equal(t, "1.0", packages[2].Constraint)
		assert.Equal(t, "tokio", packages[3].Name)
		assert.Equal(t, "1.35", packages[3].Constraint)
		assert.Equal(t, "Cargo.toml", packages[0].Manifest)
	})

	t.Run("should return nothing for a malformed manifest", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "Cargo.toml", "[dependencies\nserde =")

		// when
		packages := cargo.New().ParseManifests(root)

		// then
		assert.Empty(t, packages)
	})

	t.Run("should return nothing when no dependencies are declared", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "Cargo.toml", "[package]\nname = \"demo\"\n")

		// when
		packages := cargo.New().ParseManifests(root)

		// then
		assert.Empty(t, packages)
	})
}

func TestEcosystem_IsInstalled(t *testing.T) {
	t.Parallel()

	t.Run("should find a crate resolved in Cargo.lock", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "Cargo.lock", `version = 3

[[package]]
name = "serde"
version = "1.0.195"

[[package]]
name = "tokio"
version = "1.35.1"
`)
		pkg := domain.DeclaredPackage{Name: "serde"}

		// then
		assert.True(t, cargo.New().IsInstalled(root, pkg))
	})

	t.Run("should match crate names across separator conventions", func(t *testing.T) {
		t.Parallel()

		// given the lock file uses an underscore where the manifest uses a dash
		root := t.TempDir()
		writeFile(t, root, "Cargo.lock", `[[package]]
name = "serde_json"
version = "1.0.111"
`)
		pkg := domain.DeclaredPackage{Name: "serde-json"}

		// then
		assert.True(t, cargo.New().IsInstalled(root, pkg))
	})

	t.Run("should report missing without a Cargo.lock", func(t *testing.T) {
		t.Parallel()

		pkg := domain.DeclaredPackage{Name: "serde"}
		assert.False(t, cargo.New().IsInstalled(t.TempDir(), pkg))
	})

	t.Run("should report missing for a malformed Cargo.lock", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "Cargo.lock", "[[package\nname =")
		pkg := domain.DeclaredPackage{Name: "serde"}

		// then
		assert.False(t, cargo.New().IsInstalled(root, pkg))
	})
}
