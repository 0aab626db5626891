package crossref_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depdoctor/infrastructure/crossref"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanner_ReferencedNames(t *testing.T) {
	t.Parallel()

	t.Run("should collect python imports", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "app.py", "import flask\nfrom requests import get\n")

		// when
		referenced := crossref.NewScanner().ReferencedNames(root)

		// then
		assert.True(t, referenced["flask"])
		assert.True(t, referenced["requests"])
	})

	t.Run("should collect javascript requires and imports", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "index.js", "const express = require('express');\n")
		writeFile(t, root, "app.ts", "import { z } from \"zod\";\nimport ts from '@typescript-eslint/parser/lib';\n")

		// when
		referenced := crossref.NewScanner().ReferencedNames(root)

		// then
		assert.True(t, referenced["express"])
		assert.True(t, referenced["zod"])
		assert.True(t, referenced["@typescript-eslint/parser"])
	})

	t.Run("should reduce deep javascript specifiers to the package name", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "util.js", "const fp = require('lodash/fp');\n")

		// when
		referenced := crossref.NewScanner().ReferencedNames(root)

		// then
		assert.True(t, referenced["lodash"])
	})

	t.Run("should collect go imports including module prefixes", func(t *testing.T) {
		t.Parallel()

		// given an import of a subpackage of a declared module
		root := t.TempDir()
		writeFile(t, root, "main.go", `package main

import (
	"fmt"
	"github.com/sirupsen/logrus"
	l "github.com/hashicorp/hcl/v2/hclparse"
)
`)

		// when
		referenced := crossref.NewScanner().ReferencedNames(root)

		// then
		assert.True(t, referenced["github-com/sirupsen/logrus"])
		assert.True(t, referenced["github-com/hashicorp/hcl"])
	})

	t.Run("should collect rust use statements and skip keywords", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "main.rs", `use serde::Serialize;
use std::collections::HashMap;
use crate::config;
pub use tokio::runtime;
extern crate rand;
`)

		// when
		referenced := crossref.NewScanner().ReferencedNames(root)

		// then
		assert.True(t, referenced["serde"])
		assert.True(t, referenced["tokio"])
		assert.True(t, referenced["rand"])
		assert.False(t, referenced["std"])
		assert.False(t, referenced["crate"])
	})

	t.Run("should collect ruby requires by first path segment", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "app.rb", "require 'rails/all'\nrequire \"puma\"\n")

		// when
		referenced := crossref.NewScanner().ReferencedNames(root)

		// then
		assert.True(t, referenced["rails"])
		assert.True(t, referenced["puma"])
	})

	t.Run("should not scan vendor directories", func(t *testing.T) {
		t.Parallel()

		// given references that only exist under node_modules and .venv
		root := t.TempDir()
		writeFile(t, root, filepath.Join("node_modules", "dep", "index.js"), "require('hidden-js');\n")
		writeFile(t, root, filepath.Join(".venv", "lib", "mod.py"), "import hidden_py\n")

		// when
		referenced := crossref.NewScanner().ReferencedNames(root)

		// then
		assert.Empty(t, referenced)
	})

	t.Run("should honor extra excluded directories", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, filepath.Join("generated", "gen.py"), "import hidden\n")

		// when
		referenced := crossref.NewScanner("generated").ReferencedNames(root)

		// then
		assert.Empty(t, referenced)
	})

	t.Run("should ignore files with unknown extensions", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "notes.txt", "import flask\n")

		// when
		referenced := crossref.NewScanner().ReferencedNames(root)

		// then
		assert.Empty(t, referenced)
	})

	t.Run("should fold separator variants into the normalized name", func(t *testing.T) {
		t.Parallel()

		// given python's import-name convention for a dashed package
		root := t.TempDir()
		writeFile(t, root, "app.py", "import python_dateutil\n")

		// when
		referenced := crossref.NewScanner().ReferencedNames(root)

		// then
		assert.True(t, referenced["python-dateutil"])
	})
}
