package linkdeps

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/linkdeps/pkg/errors"
	"github.com/matzehuels/linkdeps/pkg/manifest"
	"github.com/matzehuels/linkdeps/pkg/tree"
)

// Options configures a Context.
type Options struct {
	SrcPath  string                      // Source package directory (default ".")
	OutPath  string                      // Output directory (default SrcPath)
	Package  *manifest.PackageDescriptor // Root manifest; read from SrcPath when nil
	Strategy Strategy
}

// Context resolves the dependencies of one source package. The package
// tree is built on first use and reused by every later call; a Context is
// not safe for concurrent use.
type Context struct {
	srcPath  string
	outPath  string
	pkg      *manifest.PackageDescriptor
	strategy Strategy

	tree *tree.Node
	deps Deps
}

// New creates a Context for the package in opts.SrcPath.
func New(opts Options) (*Context, error) {
	src := opts.SrcPath
	if src == "" {
		src = "."
	}
	srcPath, err := filepath.Abs(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot resolve %s", src)
	}

	outPath := srcPath
	if opts.OutPath != "" {
		if outPath, err = filepath.Abs(opts.OutPath); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot resolve %s", opts.OutPath)
		}
	}

	pkg := opts.Package
	if pkg == nil {
		if pkg, err = manifest.Read(srcPath); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err,
				"cannot read root manifest %s", manifest.Path(srcPath))
		}
	}

	return &Context{
		srcPath:  srcPath,
		outPath:  outPath,
		pkg:      pkg,
		strategy: opts.Strategy.WithDefaults(),
		deps:     Deps{},
	}, nil
}

// SrcPath returns the absolute source directory.
func (c *Context) SrcPath() string { return c.srcPath }

// OutPath returns the absolute output directory.
func (c *Context) OutPath() string { return c.outPath }

// Package returns the root manifest.
func (c *Context) Package() *manifest.PackageDescriptor { return c.pkg }

// Tree returns the package tree, building it on first call.
func (c *Context) Tree() (*tree.Node, error) {
	if c.tree == nil {
		t, err := tree.Build(c.pkg, c.srcPath, tree.Options{ResolvePath: c.strategy.ResolvePath})
		if err != nil {
			return nil, err
		}
		c.tree = t
	}
	return c.tree, nil
}

// Update accumulates the dependencies selected by mode and returns them as
// manifest sections. Each call starts from an empty set, so repeated calls
// on the same Context give the same result.
func (c *Context) Update(mode Mode) (manifest.Sections, error) {
	root, err := c.Tree()
	if err != nil {
		return manifest.Sections{}, err
	}

	acc := newAccumulator(c.strategy.MergeRange, c.FormatRefs)

	switch mode {
	case ModeLink:
	case ModeDevel:
		err = c.addDevel(acc, root)
	case ModePublish:
		err = c.addPublish(acc, root)
	case ModeDeploy:
		err = c.addDeploy(acc, root)
	case ModeDeployMix:
		err = c.addDeployMix(acc, root)
	default:
		err = unknownMode(mode)
	}
	if err != nil {
		return manifest.Sections{}, err
	}

	c.deps = acc.deps
	return c.deps.Render(), nil
}

// Deps returns the entries accumulated by the last Update.
func (c *Context) Deps() Deps { return c.deps }

// Result returns the sections rendered from the last Update.
func (c *Context) Result() manifest.Sections { return c.deps.Render() }

// Locals returns every local package in the tree, in post-order, keeping
// the first package seen for each name.
func (c *Context) Locals() ([]*tree.Node, error) {
	root, err := c.Tree()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var locals []*tree.Node
	_ = walk(root, false, func(local, _ *tree.Node) error {
		if !seen[local.Name()] {
			seen[local.Name()] = true
			locals = append(locals, local)
		}
		return nil
	})
	return locals, nil
}

// addDevel folds the root's own declarations and those of every local
// package below it.
func (c *Context) addDevel(acc *accumulator, root *tree.Node) error {
	if err := acc.addOwn(root); err != nil {
		return err
	}
	return walk(root, false, func(local, _ *tree.Node) error {
		return acc.addOwn(local)
	})
}

// addPublish folds the root's own declarations and a registry specifier
// for each direct local package, rejecting private ones.
func (c *Context) addPublish(acc *accumulator, root *tree.Node) error {
	if err := acc.addOwn(root); err != nil {
		return err
	}
	return c.addPublicLocals(acc, root, true)
}

// addDeploy folds the root's own declarations and a path specifier for
// every local package.
func (c *Context) addDeploy(acc *accumulator, root *tree.Node) error {
	if err := acc.addOwn(root); err != nil {
		return err
	}
	return c.addLocalsAsPath(acc, root, false)
}

// addDeployMix folds the root's own declarations, registry specifiers for
// public direct locals and path specifiers for private ones (recursively).
func (c *Context) addDeployMix(acc *accumulator, root *tree.Node) error {
	if err := acc.addOwn(root); err != nil {
		return err
	}
	if err := c.addPublicLocals(acc, root, false); err != nil {
		return err
	}
	return c.addLocalsAsPath(acc, root, true)
}

func (c *Context) addPublicLocals(acc *accumulator, root *tree.Node, rejectPrivate bool) error {
	for _, local := range root.Children {
		if local.Private() {
			if rejectPrivate {
				return privateRejected(local, root)
			}
			continue
		}
		spec := c.strategy.PublicSpecifier(local)
		if err := acc.add(local.Name(), spec, local.Section(), root); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) addLocalsAsPath(acc *accumulator, root *tree.Node, privateOnly bool) error {
	return walk(root, privateOnly, func(local, parent *tree.Node) error {
		spec := c.strategy.PrivateSpecifier(local, c.outPath)
		return acc.add(local.Name(), spec, local.Section(), parent)
	})
}

// SrcRelPath returns path relative to the source directory, with forward
// slashes.
func (c *Context) SrcRelPath(path string) string {
	return relPath(c.srcPath, path)
}

// RefPath returns the provenance label of a package directory: its path
// relative to the source directory, or "~" for the source itself.
func (c *Context) RefPath(path string) string {
	if p := c.SrcRelPath(path); p != "" && p != "." {
		return p
	}
	return "~"
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		rel = path
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "\\", "/")
}
