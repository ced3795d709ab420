package linkdeps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/linkdeps/pkg/manifest"
	"github.com/matzehuels/linkdeps/pkg/tree"
)

// Action classifies one diff entry.
type Action string

const (
	ActionAdded     Action = "+"
	ActionRemoved   Action = "-"
	ActionChanged   Action = "C"
	ActionUnchanged Action = " "
)

// DiffEntry describes how one dependency differs between two states.
type DiffEntry struct {
	Name     string
	Spec     string       // New specifier, or the removed one for ActionRemoved
	Previous string       // Old specifier, set for ActionChanged only
	Action   Action
	Refs     []*tree.Node // Contributors of the new specifier
}

// SectionDiff is the diff of one manifest section.
type SectionDiff struct {
	Section tree.Section
	Entries []DiffEntry
}

// Diff compares two name→specifier maps. Entries for names in next come
// first in sorted order, followed by names only in prev, also sorted.
func Diff(prev, next map[string]string) []DiffEntry {
	var entries []DiffEntry
	for _, name := range sortedKeys(next) {
		spec := next[name]
		old, ok := prev[name]
		e := DiffEntry{Name: name, Spec: spec}
		switch {
		case !ok:
			e.Action = ActionAdded
		case old == spec:
			e.Action = ActionUnchanged
		default:
			e.Action = ActionChanged
			e.Previous = old
		}
		entries = append(entries, e)
	}
	for _, name := range sortedKeys(prev) {
		if _, ok := next[name]; !ok {
			entries = append(entries, DiffEntry{Name: name, Spec: prev[name], Action: ActionRemoved})
		}
	}
	return entries
}

// Diff compares the sections of the root manifest with the result of the
// last Update. Sections without entries are omitted.
func (c *Context) Diff() []SectionDiff {
	prev := c.pkg.Sections()
	next := c.Result()

	var out []SectionDiff
	for _, s := range []tree.Section{tree.SectionRegular, tree.SectionDev} {
		entries := Diff(pick(prev, s), pick(next, s))
		if len(entries) == 0 {
			continue
		}
		for i := range entries {
			if e, ok := c.deps[entries[i].Name]; ok && entries[i].Action != ActionRemoved {
				entries[i].Refs = e.Refs
			}
		}
		out = append(out, SectionDiff{Section: s, Entries: entries})
	}
	return out
}

// FormatDiff renders the diff of the last Update, one section heading per
// non-empty section. With refs, each line ends with its contributors.
func (c *Context) FormatDiff(refs bool) string {
	var lines []string
	for _, sd := range c.Diff() {
		lines = append(lines, fmt.Sprintf("<%s>", sd.Section.Key()))
		for _, e := range sd.Entries {
			lines = append(lines, c.FormatDiffEntry(e, refs))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatDiffEntry renders one diff line.
func (c *Context) FormatDiffEntry(e DiffEntry, refs bool) string {
	ver := e.Spec
	if e.Action == ActionChanged {
		ver = fmt.Sprintf("%s => %s", e.Previous, e.Spec)
	}
	suffix := ""
	if refs {
		if r := c.FormatRefs(e.Name, e.Refs); r != "" {
			suffix = " (" + r + ")"
		}
	}
	return fmt.Sprintf("%s %s: %s%s", e.Action, e.Name, ver, suffix)
}

// FormatRefs renders the contributors of name, each as its source-relative
// path followed by ":spec" when the package declares name itself.
func (c *Context) FormatRefs(name string, refs []*tree.Node) string {
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		s := c.RefPath(r.Path)
		if spec, ok := r.Spec(name); ok {
			s += ":" + spec
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// FormatLocals lists every local package with its source-relative path.
func (c *Context) FormatLocals() (string, error) {
	locals, err := c.Locals()
	if err != nil {
		return "", err
	}
	lines := []string{"<locals>"}
	for _, l := range locals {
		lines = append(lines, fmt.Sprintf("  %s: %s", l.Name(), c.SrcRelPath(l.Path)))
	}
	return strings.Join(lines, "\n"), nil
}

func pick(s manifest.Sections, section tree.Section) map[string]string {
	if section == tree.SectionDev {
		return s.DevDependencies
	}
	return s.Dependencies
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
