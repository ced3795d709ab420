// Package render holds output renderers for package trees.
//
// The [nodelink] subpackage renders the local-package tree as a Graphviz
// node-link diagram:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/linkdeps/pkg/render/nodelink
package render
