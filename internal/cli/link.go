package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdeps/pkg/linkdeps"
	"github.com/matzehuels/linkdeps/pkg/pipeline"
)

// linkCommand creates the link command.
func (c *CLI) linkCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "link [src-dir]",
		Short: "Link local packages into node_modules",
		Long: `Create node_modules/<name> links for every local package, plus
node_modules/.bin entries for their executables. package.json is not changed.
Existing links are left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := srcArg(args)
			cfg, err := loadConfig(src, cmd.Flags(), flags)
			if err != nil {
				return err
			}
			return c.runLink(cmd, src, cfg)
		},
	}

	flags.register(cmd.Flags(), false)
	return cmd
}

func (c *CLI) runLink(cmd *cobra.Command, src string, cfg config) error {
	res, err := c.newRunner().Run(cmd.Context(), pipeline.Options{
		SrcPath: src,
		OutPath: cfg.Out,
		Mode:    linkdeps.ModeLink,
		Check:   cfg.Check,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printLocals(w, res)
	printWarnings(cmd.ErrOrStderr(), res)
	if res.Link != nil {
		printSuccess(w, "Linked %d local packages (%d new)", len(res.Locals), len(res.Link.Created))
	}
	return nil
}
