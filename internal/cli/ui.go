package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/linkdeps/pkg/errors"
	"github.com/matzehuels/linkdeps/pkg/linkdeps"
	"github.com/matzehuels/linkdeps/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - additions, success
	colorYellow = lipgloss.Color("220") // Amber - changes, warnings
	colorRed    = lipgloss.Color("167") // Soft red - removals, errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for section headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleAdded   = lipgloss.NewStyle().Foreground(colorGreen)
	styleRemoved = lipgloss.NewStyle().Foreground(colorRed)
	styleChanged = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printWarning prints a warning message. Multi-line messages are indented
// under the icon.
func printWarning(w io.Writer, msg string) {
	msg = strings.ReplaceAll(msg, "\n", "\n  ")
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Report Output
// =============================================================================

// printDiff prints the dependency diff of a run in the
// "<section>" / "+ name: spec (refs)" format.
func printDiff(w io.Writer, res *pipeline.Result, refs bool) {
	for _, sd := range res.Diff {
		fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("<%s>", sd.Section.Key())))
		for _, e := range sd.Entries {
			fmt.Fprintln(w, formatDiffLine(res.Context, e, refs))
		}
	}
}

func formatDiffLine(lc *linkdeps.Context, e linkdeps.DiffEntry, refs bool) string {
	line := lc.FormatDiffEntry(e, false)
	switch e.Action {
	case linkdeps.ActionAdded:
		line = styleAdded.Render(line)
	case linkdeps.ActionRemoved:
		line = styleRemoved.Render(line)
	case linkdeps.ActionChanged:
		line = styleChanged.Render(line)
	}
	if refs {
		if r := lc.FormatRefs(e.Name, e.Refs); r != "" {
			line += " " + StyleDim.Render("("+r+")")
		}
	}
	return line
}

// printLocals prints the local package list.
func printLocals(w io.Writer, res *pipeline.Result) {
	fmt.Fprintln(w, StyleTitle.Render("<locals>"))
	for _, l := range res.Locals {
		fmt.Fprintf(w, "  %s: %s\n", l.Name(), StyleDim.Render(res.Context.SrcRelPath(l.Path)))
	}
}

// printWarnings prints materializer warnings.
func printWarnings(w io.Writer, res *pipeline.Result) {
	for _, err := range res.Warnings() {
		printWarning(w, errors.UserMessage(err))
	}
}
