package domain

import "strings"

// separatorNormalizer folds the separator characters that ecosystems use
// interchangeably for the same logical package name.
var separatorNormalizer = strings.NewReplacer("_", "-", ".", "-")

// NormalizeName returns the canonical comparison form of a package name:
// lower-cased, with "-", "_" and "." treated as equivalent separators.
// Declared, installed, and imported names are always compared in this form
// so that naming-convention mismatches do not produce false "missing"
// results.
func NormalizeName(name string) string {
	return separatorNormalizer.Replace(strings.ToLower(name))
}

// constraintOperators are the characters that begin a version constraint in
// a dependency specifier.
const constraintOperators = "<>=!~^"

// SplitConstraint splits a dependency specifier like "flask>=2.0" into its
// name and constraint parts. If no constraint operator is present, the whole
// specifier is the name and the constraint is empty.
func SplitConstraint(spec string) (name, constraint string) {
	idx := strings.IndexAny(spec, constraintOperators)
	if idx < 0 {
		return strings.TrimSpace(spec), ""
	}
	return strings.TrimSpace(spec[:idx]), strings.TrimSpace(spec[idx:])
}
