package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdeps/pkg/errors"
	pkgio "github.com/matzehuels/linkdeps/pkg/io"
	"github.com/matzehuels/linkdeps/pkg/linkdeps"
	"github.com/matzehuels/linkdeps/pkg/render/nodelink"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph [src-dir]",
		Short: "Draw the local-package tree",
		Long: `Draw the tree of local packages as a node-link diagram.

Without --output the DOT source is printed. An output path ending in .svg is
rendered with Graphviz, one ending in .json receives the tree as JSON, and any
other extension receives the DOT source.`,
		Example: `  linkdeps graph > tree.dot
  linkdeps graph -o tree.svg --detailed
  linkdeps graph -o tree.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := linkdeps.New(linkdeps.Options{SrcPath: srcArg(args)})
			if err != nil {
				return err
			}
			root, err := lc.Tree()
			if err != nil {
				return err
			}
			c.Logger.Debug("built package tree", "nodes", root.Count())

			if strings.EqualFold(filepath.Ext(output), ".json") {
				if err := pkgio.ExportJSON(root, output); err != nil {
					return errors.Wrap(errors.ErrCodeWrite, err, "cannot write %s", output)
				}
				printFile(cmd.OutOrStdout(), output)
				return nil
			}

			dot := nodelink.ToDOT(root, nodelink.Options{Detailed: detailed, Base: lc.SrcPath()})
			if output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), dot)
				return err
			}

			data := []byte(dot)
			if strings.EqualFold(filepath.Ext(output), ".svg") {
				prog := newProgress(c.Logger)
				if data, err = nodelink.RenderSVG(cmd.Context(), dot); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "cannot render %s", output)
				}
				prog.done("Rendered " + filepath.Base(output))
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return errors.Wrap(errors.ErrCodeWrite, err, "cannot write %s", output)
			}
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg, .json or .dot)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include version, kind and path in labels")
	return cmd
}
