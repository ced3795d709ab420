// Package nodelink renders local-package trees as node-link diagrams.
//
// # Overview
//
// Each package in the tree becomes a box; each local declaration becomes
// an arrow from the declaring package to the declared one. A package
// reached from several parents appears once.
//
//   - Development edges (and everything below them) are dashed.
//   - Private packages are filled grey.
//   - The root is drawn with a bold outline.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: true, Base: srcPath})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: node labels include version, kind and path
//   - Base: directory detailed labels are relative to
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. The DOT source from [ToDOT] can also be fed to external
// Graphviz tools.
package nodelink
