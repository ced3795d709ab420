package linkdeps

import (
	"github.com/matzehuels/linkdeps/pkg/semver"
	"github.com/matzehuels/linkdeps/pkg/tree"
)

// Strategy overrides parts of the resolution behavior. Nil fields use the
// defaults.
type Strategy struct {
	// MergeRange merges two specifiers of the same package.
	// Default: semver.Merge.
	MergeRange semver.MergeFunc

	// ResolvePath maps a local declaration to a package directory.
	// Default: tree.ResolveRelative.
	ResolvePath tree.ResolveFunc

	// PublicSpecifier derives the registry specifier of a public local
	// package. Default: "^" + version.
	PublicSpecifier func(local *tree.Node) string

	// PrivateSpecifier derives the path specifier of a bundled local
	// package. outDir is the absolute output directory.
	// Default: "file:" + path of local relative to outDir.
	PrivateSpecifier func(local *tree.Node, outDir string) string
}

// WithDefaults returns a copy of Strategy with nil fields replaced by the
// defaults.
func (s Strategy) WithDefaults() Strategy {
	out := s
	if out.MergeRange == nil {
		out.MergeRange = semver.Merge
	}
	if out.ResolvePath == nil {
		out.ResolvePath = tree.ResolveRelative
	}
	if out.PublicSpecifier == nil {
		out.PublicSpecifier = PublicSpecifier
	}
	if out.PrivateSpecifier == nil {
		out.PrivateSpecifier = PrivateSpecifier
	}
	return out
}

// PublicSpecifier returns "^version" for local.
func PublicSpecifier(local *tree.Node) string {
	return semver.Caret(local.Descriptor.Version)
}

// PrivateSpecifier returns "file:" followed by the slash-separated path of
// local relative to outDir.
func PrivateSpecifier(local *tree.Node, outDir string) string {
	return semver.FilePrefix + relPath(outDir, local.Path)
}
