// Package linkdeps reduces a monorepo's local-package tree to a single,
// conflict-free set of dependency requirements.
//
// # Overview
//
// A [Context] is bound to one source package. [Context.Update] builds the
// package tree once (see [tree.Build]), folds the declarations selected by
// a [Mode] into an accumulated set of [Entry] values, and renders the
// result as dependencies/devDependencies sections:
//
//	ctx, _ := linkdeps.New(linkdeps.Options{SrcPath: "."})
//	sections, err := ctx.Update(linkdeps.ModeDevel)
//
// # Modes
//
//   - devel: the root's own declarations plus every local package's own
//     declarations, recursively. Local packages are expected to be linked
//     into node_modules by the materializer ([Context.Locals]).
//   - publish: the root's own declarations plus "^version" for each direct
//     local package. A private local package is rejected.
//   - deploy: the root's own declarations plus a "file:" path for every
//     local package, relative to the output directory.
//   - deploy-mix: public direct locals as in publish (private ones are
//     skipped there), then private direct locals and everything beneath
//     them as in deploy.
//   - link: nothing is accumulated; only the local package list is used.
//
// # Merging
//
// A name declared more than once is merged with [semver.Merge] (or
// [Strategy.MergeRange]). A failed merge aborts the run with a
// VERSION_CONFLICT error that lists both specifiers and every contributing
// manifest. A name recorded as a regular dependency stays regular; a
// regular declaration promotes a development entry.
//
// # Reporting
//
// [Diff] compares a rendered section with the previous one, and
// [Context.FormatDiff] prints the comparison in the form
//
//	<dependencies>
//	+ deep-equal: ^1.0.1
//	C mkdirp: ^0.5.0 => ^0.5.1 (~:^0.5.0, a:^0.5.1)
//	- will_be_deleted: *
//
// where the parenthesized provenance lists each contributing package by
// its path relative to the source directory ("~" for the root).
package linkdeps
