package linkdeps

import (
	"slices"
	"sort"

	"github.com/matzehuels/linkdeps/pkg/errors"
	"github.com/matzehuels/linkdeps/pkg/manifest"
	"github.com/matzehuels/linkdeps/pkg/semver"
	"github.com/matzehuels/linkdeps/pkg/tree"
)

// Entry is one accumulated dependency.
type Entry struct {
	Name    string
	Spec    string       // Merged specifier
	Section tree.Section // Regular once any contributor is regular
	Refs    []*tree.Node // Contributing packages, first-seen order
}

// Deps maps package names to accumulated entries.
type Deps map[string]*Entry

// Names returns the entry names sorted lexicographically.
func (d Deps) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render splits the entries into manifest sections.
func (d Deps) Render() manifest.Sections {
	s := manifest.Sections{
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}
	for name, e := range d {
		if e.Section == tree.SectionDev {
			s.DevDependencies[name] = e.Spec
		} else {
			s.Dependencies[name] = e.Spec
		}
	}
	return s
}

// accumulator folds declarations into Deps. It is used for a single pass.
type accumulator struct {
	merge semver.MergeFunc
	refs  func(name string, refs []*tree.Node) string
	deps  Deps
}

func newAccumulator(merge semver.MergeFunc, refs func(string, []*tree.Node) string) *accumulator {
	return &accumulator{merge: merge, refs: refs, deps: Deps{}}
}

// add records that ref requires name at spec in section.
func (a *accumulator) add(name, spec string, section tree.Section, ref *tree.Node) error {
	e, ok := a.deps[name]
	if !ok {
		a.deps[name] = &Entry{Name: name, Spec: spec, Section: section, Refs: []*tree.Node{ref}}
		return nil
	}

	merged, ok := a.merge(e.Spec, spec)
	if !ok {
		return errors.New(errors.ErrCodeVersionConflict,
			"Dependency '%s' version conflict:\n  1: %q: (%s)\n  2: %q: (%s)",
			name, e.Spec, a.refs(name, e.Refs), spec, a.refs(name, []*tree.Node{ref}))
	}

	e.Spec = merged
	if section == tree.SectionRegular {
		e.Section = tree.SectionRegular
	}
	if !slices.Contains(e.Refs, ref) {
		e.Refs = append(e.Refs, ref)
	}
	return nil
}

// addOwn records every own declaration of n.
func (a *accumulator) addOwn(n *tree.Node) error {
	for _, d := range n.Deps {
		if err := a.add(d.Name, d.Spec, d.Section, n); err != nil {
			return err
		}
	}
	return nil
}

// walk visits the local packages below n in post-order: a package's own
// locals are visited before the package itself. fn receives each package
// and the package that declared it. With privateOnly, public packages
// directly below n are skipped along with their subtrees.
func walk(n *tree.Node, privateOnly bool, fn func(local, parent *tree.Node) error) error {
	for _, local := range n.Children {
		if privateOnly && !local.Private() {
			continue
		}
		if err := walk(local, false, fn); err != nil {
			return err
		}
		if err := fn(local, n); err != nil {
			return err
		}
	}
	return nil
}

func privateRejected(local, root *tree.Node) error {
	return errors.New(errors.ErrCodePrivatePackage,
		"You cannot use private package: '%s'\n  at %s", local.Name(), root.ManifestPath())
}

func unknownMode(m Mode) error {
	return errors.New(errors.ErrCodeInvalidMode, "Unknown mode: %s", string(m))
}
