// Package pkg provides the libraries behind linkdeps.
//
// # Overview
//
// linkdeps resolves the dependencies of a package that declares other
// packages in the same repository as "local" dependencies. The pkg
// directory is organized as follows:
//
//  1. Engine: [semver] (range merging), [manifest] (package.json model),
//     [tree] (local-package graph) and [linkdeps] (accumulation and diff)
//  2. Side effects: [link] (node_modules links and bin shims) and the
//     manifest writer in [manifest]
//  3. Orchestration: [pipeline] (load → update → save → report → link)
//  4. Output: [render/nodelink] (Graphviz) and [io] (JSON export)
//  5. Support: [errors], [observability], [buildinfo]
//
// # Architecture
//
//	package.json (root)
//	         ↓
//	    [tree] builds the local-package graph once
//	         ↓
//	    [linkdeps] folds declarations for a mode, merging with [semver]
//	         ↓
//	    [manifest] writes dependencies/devDependencies
//	         ↓
//	    [link] materializes locals (devel and link modes)
//
// # Quick Start
//
//	ctx, err := linkdeps.New(linkdeps.Options{SrcPath: "."})
//	if err != nil {
//	    return err
//	}
//	sections, err := ctx.Update(linkdeps.ModeDeploy)
//	if err != nil {
//	    return err
//	}
//	err = manifest.Save(ctx.OutPath(), ctx.Package().Raw, sections)
//
// [semver]: github.com/matzehuels/linkdeps/pkg/semver
// [manifest]: github.com/matzehuels/linkdeps/pkg/manifest
// [tree]: github.com/matzehuels/linkdeps/pkg/tree
// [linkdeps]: github.com/matzehuels/linkdeps/pkg/linkdeps
// [link]: github.com/matzehuels/linkdeps/pkg/link
// [pipeline]: github.com/matzehuels/linkdeps/pkg/pipeline
// [render/nodelink]: github.com/matzehuels/linkdeps/pkg/render/nodelink
// [io]: github.com/matzehuels/linkdeps/pkg/io
// [errors]: github.com/matzehuels/linkdeps/pkg/errors
// [observability]: github.com/matzehuels/linkdeps/pkg/observability
// [buildinfo]: github.com/matzehuels/linkdeps/pkg/buildinfo
package pkg
