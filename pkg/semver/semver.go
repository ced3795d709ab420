package semver

import (
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
)

const (
	// Wildcard is the specifier that accepts any version. Local
	// declarations must use it literally.
	Wildcard = "*"

	// FilePrefix marks a specifier that embeds a package by path.
	FilePrefix = "file:"

	caret = "^"
)

// MergeFunc merges two specifiers for the same package. It reports false
// when the specifiers cannot be reconciled.
type MergeFunc func(a, b string) (string, bool)

// Merge returns a single specifier satisfied by both a and b, or false when
// the two cannot be merged. See the package documentation for the rules.
func Merge(a, b string) (string, bool) {
	if a == b {
		return a, true
	}

	switch {
	case a == Wildcard:
		return b, true
	case b == Wildcard:
		return a, true
	case isCaret(a) && isCaret(b):
		if Satisfies(a[1:], b) {
			return a, true
		}
		if Satisfies(b[1:], a) {
			return b, true
		}
	case isCaret(a):
		if Satisfies(b, a) {
			return b, true
		}
	case isCaret(b):
		if Satisfies(a, b) {
			return a, true
		}
	}
	return "", false
}

// Satisfies reports whether version satisfies the range rng. A version or
// range that fails to parse is treated as not satisfied.
func Satisfies(version, rng string) bool {
	v, err := mmsemver.StrictNewVersion(version)
	if err != nil {
		return false
	}
	c, err := mmsemver.NewConstraint(rng)
	if err != nil {
		return false
	}
	return c.Check(v)
}

// Caret returns the caret range "^version" for a bare version.
func Caret(version string) string {
	return caret + version
}

// IsFile reports whether spec embeds a package by path.
func IsFile(spec string) bool {
	return strings.HasPrefix(spec, FilePrefix)
}

func isCaret(spec string) bool {
	return strings.HasPrefix(spec, caret)
}
