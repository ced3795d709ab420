package link

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/linkdeps/pkg/errors"
	"github.com/matzehuels/linkdeps/pkg/manifest"
	"github.com/matzehuels/linkdeps/pkg/observability"
	"github.com/matzehuels/linkdeps/pkg/tree"
)

const (
	// ModulesDir is the directory links are created in, below the output
	// directory.
	ModulesDir = "node_modules"

	// BinDir holds executable links, below ModulesDir.
	BinDir = ".bin"

	// DefaultConcurrency bounds how many packages are linked at once.
	DefaultConcurrency = 10
)

// JunctionFunc creates a directory junction at link pointing to the
// absolute directory target.
type JunctionFunc func(ctx context.Context, link, target string) error

// Linker creates package links and bin entries.
type Linker struct {
	Logger      *log.Logger
	GOOS        string       // Target platform (default runtime.GOOS)
	Concurrency int          // Packages linked in parallel (default DefaultConcurrency)
	Junction    JunctionFunc // Windows junction creator (default: mklink /j)
}

// NewLinker creates a linker for the current platform.
func NewLinker(logger *log.Logger) *Linker {
	if logger == nil {
		logger = log.Default()
	}
	return &Linker{Logger: logger}
}

// Result reports what a Link call did. Paths are absolute.
type Result struct {
	Created  []string
	Skipped  []string
	Warnings []error
}

type recorder struct {
	mu  sync.Mutex
	res Result
}

func (r *recorder) created(path string) {
	r.mu.Lock()
	r.res.Created = append(r.res.Created, path)
	r.mu.Unlock()
}

func (r *recorder) skipped(path string) {
	r.mu.Lock()
	r.res.Skipped = append(r.res.Skipped, path)
	r.mu.Unlock()
}

func (r *recorder) warn(err error) {
	r.mu.Lock()
	r.res.Warnings = append(r.res.Warnings, err)
	r.mu.Unlock()
}

// Link materializes locals into outDir/node_modules. It returns once every
// package has been processed. The only error returned is the context's;
// per-entry failures are reported in Result.Warnings.
func (l *Linker) Link(ctx context.Context, outDir string, locals []*tree.Node) (*Result, error) {
	moduleDir := filepath.Join(outDir, ModulesDir)
	rec := &recorder{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency())
	for _, local := range locals {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			l.linkPackage(gctx, moduleDir, local, rec)
			return nil
		})
	}
	err := g.Wait()

	l.logger().Debug("linked locals",
		"created", len(rec.res.Created),
		"skipped", len(rec.res.Skipped),
		"warnings", len(rec.res.Warnings))
	return &rec.res, err
}

func (l *Linker) linkPackage(ctx context.Context, moduleDir string, local *tree.Node, rec *recorder) {
	name := local.Name()
	if err := errors.ValidatePackageName(name); err != nil {
		l.fail(ctx, rec, name, moduleDir, err)
		return
	}
	if err := errors.ValidateNpmPackageName(name); err != nil {
		l.logger().Warn("unusual package name", "name", name, "err", errors.UserMessage(err))
	}

	link := filepath.Join(moduleDir, filepath.FromSlash(name))
	if created, err := l.linkDir(ctx, link, local.Path); err != nil {
		l.fail(ctx, rec, name, link, err)
	} else {
		l.done(ctx, rec, name, link, created)
	}

	binDir := filepath.Join(moduleDir, BinDir)
	for _, bin := range local.Descriptor.Bin {
		l.linkBin(ctx, binDir, local, bin, rec)
	}
}

func (l *Linker) linkBin(ctx context.Context, binDir string, local *tree.Node, bin manifest.BinEntry, rec *recorder) {
	path := filepath.Join(binDir, bin.Name)
	if err := errors.ValidateBinName(bin.Name); err != nil {
		l.fail(ctx, rec, bin.Name, path, err)
		return
	}
	target := filepath.Join(local.Path, filepath.FromSlash(bin.Path))

	var (
		created bool
		err     error
	)
	if l.windows() {
		created, err = writeShims(path, target)
	} else {
		created, err = symlink(path, target)
		if created && err == nil {
			err = os.Chmod(target, 0755)
		}
	}
	if err != nil {
		l.fail(ctx, rec, bin.Name, path, err)
		return
	}
	l.done(ctx, rec, bin.Name, path, created)
}

// linkDir links link to the package directory target.
func (l *Linker) linkDir(ctx context.Context, link, target string) (bool, error) {
	if !l.windows() {
		return symlink(link, target)
	}
	if exists(link) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		return false, err
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return false, err
	}
	if err := l.junction()(ctx, link, abs); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Linker) done(ctx context.Context, rec *recorder, name, path string, created bool) {
	if created {
		rec.created(path)
		observability.Link().OnLinkCreated(ctx, name, path)
		l.logger().Debug("created link", "name", name, "path", path)
		return
	}
	rec.skipped(path)
	observability.Link().OnLinkSkipped(ctx, name, path)
}

func (l *Linker) fail(ctx context.Context, rec *recorder, name, path string, err error) {
	werr := errors.Wrap(errors.ErrCodeMaterialization, err, "cannot link %s at %s", name, path)
	rec.warn(werr)
	observability.Link().OnLinkFailed(ctx, name, path, err)
}

func (l *Linker) windows() bool {
	goos := l.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	return goos == "windows"
}

func (l *Linker) concurrency() int {
	if l.Concurrency > 0 {
		return l.Concurrency
	}
	return DefaultConcurrency
}

func (l *Linker) junction() JunctionFunc {
	if l.Junction != nil {
		return l.Junction
	}
	return mklinkJunction
}

func (l *Linker) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

// symlink creates link as a symlink to target, relative to link's
// directory. It reports false when link already exists.
func symlink(link, target string) (bool, error) {
	if exists(link) {
		return false, nil
	}
	dir := filepath.Dir(link)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, err
	}
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		rel = target
	}
	if err := os.Symlink(rel, link); err != nil {
		return false, err
	}
	return true, nil
}

func mklinkJunction(ctx context.Context, link, target string) error {
	out, err := exec.CommandContext(ctx, "cmd", "/c", "mklink", "/j", link, target).CombinedOutput()
	if err != nil {
		return fmt.Errorf("mklink /j: %w: %s", err, out)
	}
	return nil
}

// exists reports whether path exists, without following a final symlink.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
