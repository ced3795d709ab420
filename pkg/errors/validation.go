package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName rejects names that would escape node_modules when
// joined onto it: empty or overlong names, control characters, "..", "//",
// NUL and backslashes.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	for _, pattern := range unsafeNameParts {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

var unsafeNameParts = []string{"..", "//", "\x00", "\\"}

// npmPackageNameRegex matches scoped and unscoped npm names.
var npmPackageNameRegex = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

// ValidateNpmPackageName applies ValidatePackageName plus the npm naming
// rules. The linker only logs its failures.
func ValidateNpmPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	if strings.ToLower(name) != name {
		return New(ErrCodeInvalidPackage, "npm package names must be lowercase: %q", name)
	}

	if !npmPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid npm package name: %q", name)
	}

	return nil
}

// ValidateBinName validates the name of an executable declared in a
// manifest's "bin" field. Bin names become file names inside
// node_modules/.bin, so they must not contain separators.
func ValidateBinName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}
	if strings.ContainsAny(name, "/") {
		return New(ErrCodeInvalidPackage, "bin name cannot contain path separators: %q", name)
	}
	return nil
}
