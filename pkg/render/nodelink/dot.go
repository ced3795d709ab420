package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/linkdeps/pkg/tree"
)

// RootLabel names a root package whose manifest has no name.
const RootLabel = "~"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes version, kind and path in node labels.
	// When false, only the package name is shown.
	Detailed bool

	// Base is the directory paths in detailed labels are relative to.
	// Defaults to the root package directory.
	Base string
}

// ToDOT converts a package tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(root *tree.Node, opts Options) string {
	if opts.Base == "" {
		opts.Base = root.Path
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	seen := map[string]bool{}
	var visit func(n *tree.Node)
	visit = func(n *tree.Node) {
		if seen[n.Path] {
			return
		}
		seen[n.Path] = true

		id := nodeID(n)
		attrs := fmtAttrs(n, fmtLabel(n, opts))
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))

		for _, c := range n.Children {
			edge := fmt.Sprintf("  %q -> %q", id, nodeID(c))
			if c.Kind == tree.KindDev {
				edge += " [style=dashed]"
			}
			edges = append(edges, edge+";\n")
			visit(c)
		}
	}
	visit(root)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(n *tree.Node) string {
	if n.Name() == "" {
		return RootLabel
	}
	return n.Name()
}

func fmtLabel(n *tree.Node, opts Options) string {
	id := nodeID(n)
	if !opts.Detailed {
		return id
	}

	rel, err := filepath.Rel(opts.Base, n.Path)
	if err != nil || rel == "." {
		rel = RootLabel
	}
	parts := []string{fmt.Sprintf("kind: %s", n.Kind), fmt.Sprintf("path: %s", filepath.ToSlash(rel))}
	if v := n.Descriptor.Version; v != "" {
		parts = append([]string{fmt.Sprintf("version: %s", v)}, parts...)
	}
	return id + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *tree.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.IsRoot():
		attrs = append(attrs, "penwidth=3")
	case n.Private():
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	if n.Kind == tree.KindDev {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag with one that scales
// from a zero-origin viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
