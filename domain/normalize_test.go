package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/depdoctor/domain"
)

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	t.Run("should lower-case names", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "flask", domain.NormalizeName("Flask"))
	})

	t.Run("should treat separator characters as equivalent", func(t *testing.T) {
		t.Parallel()

		// given
		variants := []string{"python-dateutil", "python_dateutil", "python.dateutil", "Python_Dateutil"}

		// then
		for _, variant := range variants {
			assert.Equal(t, "python-dateutil", domain.NormalizeName(variant), variant)
		}
	})

	t.Run("should leave already canonical names untouched", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "express", domain.NormalizeName("express"))
	})
}

func TestSplitConstraint(t *testing.T) {
	t.Parallel()

	t.Run("should split name from a range constraint", func(t *testing.T) {
		t.Parallel()

		// when
		name, constraint := domain.SplitConstraint("flask>=2.0,<3.0")

		// then
		assert.Equal(t, "flask", name)
		assert.Equal(t, ">=2.0,<3.0", constraint)
	})

	t.Run("should split name from a caret constraint", func(t *testing.T) {
		t.Parallel()

		// when
		name, constraint := domain.SplitConstraint("serde^1.0")

		// then
		assert.Equal(t, "serde", name)
		assert.Equal(t, "^1.0", constraint)
	})

	t.Run("should return the whole specifier when unconstrained", func(t *testing.T) {
		t.Parallel()

		// when
		name, constraint := domain.SplitConstraint("requests")

		// then
		assert.Equal(t, "requests", name)
		assert.Empty(t, constraint)
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		// when
		name, constraint := domain.SplitConstraint("  flask >= 2.0 ")

		// then
		assert.Equal(t, "flask", name)
		assert.Equal(t, ">= 2.0", constraint)
	})
}
