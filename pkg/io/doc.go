// Package io provides JSON export for local-package trees.
//
// # Overview
//
// The export is meant for external tools (dashboards, other graph
// renderers) that want the local-package structure without parsing every
// manifest themselves.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "app", "kind": "root", "path": "~"},
//	    {"id": "lib-a", "version": "1.0.0", "kind": "regular", "path": "libs/a"},
//	    {"id": "tools", "version": "0.1.0", "kind": "dev", "private": true, "path": "tools"}
//	  ],
//	  "edges": [
//	    {"from": "app", "to": "lib-a"},
//	    {"from": "app", "to": "tools", "dev": true}
//	  ]
//	}
//
// A package reached through several declarations is listed once, with the
// kind of the first declaration seen; every declaration is an edge. Paths
// are relative to the root package, with forward slashes.
//
// # Export
//
// Use [ExportJSON] to write a tree to a file, or [WriteJSON] to write to any
// io.Writer:
//
//	err := io.ExportJSON(root, "tree.json")
package io
