package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkdeps/pkg/errors"
	"github.com/matzehuels/linkdeps/pkg/link"
	"github.com/matzehuels/linkdeps/pkg/linkdeps"
	"github.com/matzehuels/linkdeps/pkg/manifest"
	"github.com/matzehuels/linkdeps/pkg/observability"
)

// Runner executes resolution runs.
//
// The Runner holds no per-run state; one Runner may serve several runs
// with different options.
type Runner struct {
	Linker *link.Linker
	Logger *log.Logger
}

// NewRunner creates a runner with a platform-default linker.
// If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Linker: link.NewLinker(logger),
		Logger: logger,
	}
}

// Run executes load → update → save → report → link for opts.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	hooks := observability.Pipeline()

	lc, err := linkdeps.New(linkdeps.Options{
		SrcPath:  opts.SrcPath,
		OutPath:  opts.OutPath,
		Strategy: opts.Strategy,
	})
	if err != nil {
		return nil, err
	}
	result := &Result{
		Context:      lc,
		ManifestPath: manifest.Path(lc.OutPath()),
	}

	// Stage 1: Load
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, lc.SrcPath())
	root, err := lc.Tree()
	result.Stats.BuildTime = time.Since(buildStart)
	if err != nil {
		hooks.OnBuildComplete(ctx, lc.SrcPath(), 0, result.Stats.BuildTime, err)
		return nil, err
	}
	result.Tree = root
	result.Stats.NodeCount = root.Count()
	hooks.OnBuildComplete(ctx, lc.SrcPath(), result.Stats.NodeCount, result.Stats.BuildTime, nil)

	logger.Debug("built package tree",
		"src", lc.SrcPath(),
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.BuildTime)

	// Stage 2: Update
	if opts.Mode.Writes() {
		if err := r.update(ctx, lc, opts.Mode, result); err != nil {
			return nil, err
		}
		logger.Info("resolved dependencies",
			"mode", opts.Mode,
			"deps", result.Stats.DepCount,
			"duration", result.Stats.UpdateTime)

		// Stage 3: Save
		if !opts.Check {
			err := manifest.Save(lc.OutPath(), lc.Package().Raw, result.Sections)
			hooks.OnSave(ctx, result.ManifestPath, err)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeWrite, err, "cannot write %s", result.ManifestPath)
			}
			result.Saved = true
			logger.Info("wrote manifest", "path", result.ManifestPath)
		}

		// Stage 4: Report
		result.Diff = lc.Diff()
	}

	if result.Locals, err = lc.Locals(); err != nil {
		return nil, err
	}

	// Stage 5: Link
	if opts.Mode.Links() && !opts.Check {
		linkStart := time.Now()
		res, err := r.linker(logger).Link(ctx, lc.OutPath(), result.Locals)
		result.Stats.LinkTime = time.Since(linkStart)
		if err != nil {
			return nil, err
		}
		result.Link = res
		for _, w := range res.Warnings {
			logger.Warn(errors.UserMessage(w))
		}
		logger.Info("linked local packages",
			"created", len(res.Created),
			"skipped", len(res.Skipped),
			"duration", result.Stats.LinkTime)
	}

	return result, nil
}

func (r *Runner) update(ctx context.Context, lc *linkdeps.Context, mode linkdeps.Mode, result *Result) error {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnUpdateStart(ctx, string(mode))

	sections, err := lc.Update(mode)
	result.Stats.UpdateTime = time.Since(start)
	if err != nil {
		hooks.OnUpdateComplete(ctx, string(mode), 0, result.Stats.UpdateTime, err)
		return err
	}
	result.Sections = sections
	result.Stats.DepCount = len(lc.Deps())
	hooks.OnUpdateComplete(ctx, string(mode), result.Stats.DepCount, result.Stats.UpdateTime, nil)
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

func (r *Runner) linker(logger *log.Logger) *link.Linker {
	if r.Linker != nil {
		return r.Linker
	}
	return link.NewLinker(logger)
}
