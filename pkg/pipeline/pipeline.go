// Package pipeline runs a complete linkdeps resolution.
//
// The pipeline glues the engine to the filesystem so the CLI (and any other
// entry point) behaves the same way:
//
//  1. Load: read the root manifest and build the local-package tree
//  2. Update: accumulate dependencies for the selected mode
//  3. Save: write the merged manifest to the output directory
//  4. Report: diff the result against the previous manifest sections
//  5. Link: materialize local packages into node_modules
//
// Update and Save are skipped in link mode; Save and Link are skipped in
// check mode; Link only runs in devel and link modes.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Run(ctx, pipeline.Options{
//	    SrcPath: ".",
//	    Mode:    linkdeps.ModeDevel,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Context.FormatDiff(false))
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkdeps/pkg/link"
	"github.com/matzehuels/linkdeps/pkg/linkdeps"
	"github.com/matzehuels/linkdeps/pkg/manifest"
	"github.com/matzehuels/linkdeps/pkg/tree"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultMode is the mode used when none is given.
	DefaultMode = linkdeps.ModeDevel

	// DefaultSrcPath is the source package directory used when none is given.
	DefaultSrcPath = "."
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one run.
type Options struct {
	SrcPath string        // Source package directory
	OutPath string        // Output directory (default: SrcPath)
	Mode    linkdeps.Mode // Accumulation mode (default: devel)
	Check   bool          // Compute and report only; write and link nothing
	Refs    bool          // Include provenance in the formatted diff

	// Strategy overrides parts of the resolution behavior.
	Strategy linkdeps.Strategy

	// Runtime options
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults fills empty fields with defaults and checks the
// mode. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.SrcPath == "" {
		o.SrcPath = DefaultSrcPath
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if _, err := linkdeps.ParseMode(string(o.Mode)); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Context is the resolution context, kept for formatting.
	Context *linkdeps.Context

	// Tree is the local-package tree.
	Tree *tree.Node

	// Sections is the accumulated result. Empty in link mode.
	Sections manifest.Sections

	// Diff compares Sections with the source manifest.
	Diff []linkdeps.SectionDiff

	// Locals lists the local packages in post-order.
	Locals []*tree.Node

	// ManifestPath is where the result was (or would be) written.
	ManifestPath string

	// Saved reports whether the manifest was written.
	Saved bool

	// Link is the materializer report; nil when nothing was linked.
	Link *link.Result

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	DepCount   int
	BuildTime  time.Duration
	UpdateTime time.Duration
	LinkTime   time.Duration
}

// Warnings returns the materializer warnings of the run.
func (r *Result) Warnings() []error {
	if r.Link == nil {
		return nil
	}
	return r.Link.Warnings
}
