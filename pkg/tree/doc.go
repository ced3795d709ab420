// Package tree builds the local-package graph of a monorepo root.
//
// # Overview
//
// [Build] starts at a root [manifest.PackageDescriptor] and follows every
// entry of its "linkdeps.local" declarations to the package directory it
// names, reading that package's manifest and recursing. The result is a
// tree of immutable [Node] values:
//
//   - Deps holds the node's own declarations, already tagged with the
//     section they contribute to.
//   - Children holds one node per local declaration, in authored order.
//
// # Dev Classification
//
// A node reached through a devDependencies edge is [KindDev], and so is
// everything below it: the classification is passed down the recursion as
// a parameter and never mutated afterwards. All of a dev node's own
// declarations contribute to the development section. The same package
// directory reached through a regular edge elsewhere gets its own
// [KindRegular] node.
//
// # Path Resolution
//
// Local names are paths. By default they resolve relative to the declaring
// package's directory; [Options.ResolvePath] replaces that strategy.
// Manifests are read once per directory within a single build.
//
// # Errors
//
// Every failure aborts the build:
//
//   - a local specifier other than "*" is INVALID_CONFIGURATION
//   - a local package without name or version is INVALID_CONFIGURATION
//   - a cycle of local declarations is INVALID_CONFIGURATION
//   - an unreadable or unparsable local manifest is UNRESOLVED_REFERENCE,
//     reported against the manifest that declared it
package tree
