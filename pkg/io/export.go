package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/linkdeps/pkg/tree"
)

const rootLabel = "~"

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
	Kind    string `json:"kind"`
	Private bool   `json:"private,omitempty"`
	Path    string `json:"path"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Dev  bool   `json:"dev,omitempty"`
}

// WriteJSON encodes the tree rooted at root as JSON and writes it to w.
func WriteJSON(root *tree.Node, w io.Writer) error {
	out := graph{Nodes: []node{}, Edges: []edge{}}
	seen := map[string]bool{}

	var visit func(n *tree.Node)
	visit = func(n *tree.Node) {
		if seen[n.Path] {
			return
		}
		seen[n.Path] = true
		out.Nodes = append(out.Nodes, node{
			ID:      nodeID(n),
			Version: n.Descriptor.Version,
			Kind:    n.Kind.String(),
			Private: n.Private(),
			Path:    relPath(root.Path, n.Path),
		})
		for _, c := range n.Children {
			out.Edges = append(out.Edges, edge{From: nodeID(n), To: nodeID(c), Dev: c.Kind == tree.KindDev})
			visit(c)
		}
	}
	visit(root)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(root *tree.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(root, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func nodeID(n *tree.Node) string {
	if n.Name() == "" {
		return rootLabel
	}
	return n.Name()
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	if rel == "." {
		return rootLabel
	}
	return filepath.ToSlash(rel)
}
