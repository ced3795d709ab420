package tree

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/linkdeps/pkg/errors"
	"github.com/matzehuels/linkdeps/pkg/manifest"
	"github.com/matzehuels/linkdeps/pkg/semver"
)

// Kind classifies how a node was reached.
type Kind int

const (
	// KindRoot is the package resolution starts from.
	KindRoot Kind = iota
	// KindRegular is a local package reached through regular edges only.
	KindRegular
	// KindDev is a local package reached through a devDependencies edge,
	// directly or through a dev ancestor.
	KindDev
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindRegular:
		return "regular"
	case KindDev:
		return "dev"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Section is the manifest section a declaration contributes to.
type Section int

const (
	SectionRegular Section = iota // "dependencies"
	SectionDev                    // "devDependencies"
)

// Key returns the manifest key for the section.
func (s Section) Key() string {
	if s == SectionDev {
		return manifest.KeyDevDependencies
	}
	return manifest.KeyDependencies
}

// String returns the manifest key for the section.
func (s Section) String() string { return s.Key() }

// Dep is one own declaration of a node.
type Dep struct {
	Name    string
	Spec    string
	Section Section
}

// Node is one package in the resolved tree. Nodes are never modified after
// Build returns.
type Node struct {
	Path       string                     // Absolute package directory
	Descriptor *manifest.PackageDescriptor // Parsed manifest
	Kind       Kind
	Deps       []Dep
	Children   []*Node
}

// Name returns the package name from the manifest.
func (n *Node) Name() string { return n.Descriptor.Name }

// Private reports whether the package is marked private.
func (n *Node) Private() bool { return n.Descriptor.Private }

// IsRoot reports whether n is the root of its tree.
func (n *Node) IsRoot() bool { return n.Kind == KindRoot }

// Section returns the section n contributes to when it is itself added as
// a dependency of its parent.
func (n *Node) Section() Section {
	if n.Kind == KindDev {
		return SectionDev
	}
	return SectionRegular
}

// ManifestPath returns the path of the node's package.json.
func (n *Node) ManifestPath() string { return manifest.Path(n.Path) }

// Spec returns the specifier n declares for the named package, if any.
func (n *Node) Spec(name string) (string, bool) {
	for _, d := range n.Deps {
		if d.Name == name {
			return d.Spec, true
		}
	}
	return "", false
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	count := 1
	for _, c := range n.Children {
		count += c.Count()
	}
	return count
}

// ResolveFunc maps a local declaration name to a package directory. base is
// the absolute directory of the declaring package.
type ResolveFunc func(base, name string) string

// ReadFunc loads the manifest of a package directory.
type ReadFunc func(dir string) (*manifest.PackageDescriptor, error)

// Options configures tree building.
type Options struct {
	ResolvePath ResolveFunc // Local path strategy (default: relative to base)
	Read        ReadFunc    // Manifest loader (default: manifest.Read)
}

// WithDefaults returns a copy of Options with nil strategies replaced by
// the defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.ResolvePath == nil {
		opts.ResolvePath = ResolveRelative
	}
	if opts.Read == nil {
		opts.Read = manifest.Read
	}
	return opts
}

// ResolveRelative resolves name relative to base.
func ResolveRelative(base, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(base, filepath.FromSlash(name))
}

// Build constructs the tree rooted at the package described by root, which
// lives in rootPath.
func Build(root *manifest.PackageDescriptor, rootPath string, opts Options) (*Node, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot resolve %s", rootPath)
	}
	b := &builder{
		opts:  opts.WithDefaults(),
		cache: map[string]*manifest.PackageDescriptor{abs: root},
	}
	return b.node(root, abs, KindRoot, nil)
}

type builder struct {
	opts  Options
	cache map[string]*manifest.PackageDescriptor
}

func (b *builder) node(desc *manifest.PackageDescriptor, path string, kind Kind, chain []string) (*Node, error) {
	chain = append(slices.Clip(chain), path)

	// Declarations of the root and of regular locals are regular unless
	// declared under devDependencies; a dev node's declarations are all dev.
	section := SectionRegular
	if kind == KindDev {
		section = SectionDev
	}

	n := &Node{Path: path, Descriptor: desc, Kind: kind}

	local := desc.LocalDeclarations()
	if err := b.addLocals(n, local.Dependencies, kindFor(section), chain); err != nil {
		return nil, err
	}
	if err := b.addLocals(n, local.DevDependencies, KindDev, chain); err != nil {
		return nil, err
	}

	own := desc.OwnDeclarations()
	n.Deps = appendDeps(n.Deps, own.Dependencies, section)
	n.Deps = appendDeps(n.Deps, own.DevDependencies, SectionDev)

	return n, nil
}

func (b *builder) addLocals(n *Node, decls []manifest.Declaration, kind Kind, chain []string) error {
	for _, d := range decls {
		if d.Spec != semver.Wildcard {
			return errors.New(errors.ErrCodeConfiguration,
				"You cannot specify a version other than \"*\" in local dependencies:\n  %q: %q\n  at %s",
				d.Name, d.Spec, n.ManifestPath())
		}

		sub := filepath.Clean(b.opts.ResolvePath(n.Path, d.Name))
		if i := slices.Index(chain, sub); i >= 0 {
			return errors.New(errors.ErrCodeConfiguration,
				"Circular local dependency: %s\n  at %s",
				formatCycle(append(slices.Clone(chain[i:]), sub)), n.ManifestPath())
		}

		desc, err := b.read(sub, n)
		if err != nil {
			return err
		}

		child, err := b.node(desc, sub, kind, chain)
		if err != nil {
			return err
		}
		n.Children = append(n.Children, child)
	}
	return nil
}

func (b *builder) read(dir string, ref *Node) (*manifest.PackageDescriptor, error) {
	if desc, ok := b.cache[dir]; ok {
		return desc, nil
	}
	desc, err := b.opts.Read(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnresolvedReference, err,
			"Error in processing %s", ref.ManifestPath())
	}
	if desc.Name == "" || desc.Version == "" {
		field := "name"
		if desc.Name != "" {
			field = "version"
		}
		return nil, errors.New(errors.ErrCodeConfiguration,
			"Local package is missing the %q field\n  at %s\n  referenced from %s",
			field, manifest.Path(dir), ref.ManifestPath())
	}
	b.cache[dir] = desc
	return desc, nil
}

func kindFor(s Section) Kind {
	if s == SectionDev {
		return KindDev
	}
	return KindRegular
}

func appendDeps(deps []Dep, decls []manifest.Declaration, section Section) []Dep {
	for _, d := range decls {
		deps = append(deps, Dep{Name: d.Name, Spec: d.Spec, Section: section})
	}
	return deps
}

func formatCycle(paths []string) string {
	return strings.Join(paths, " -> ")
}
