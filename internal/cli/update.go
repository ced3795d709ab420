package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdeps/pkg/linkdeps"
	"github.com/matzehuels/linkdeps/pkg/pipeline"
)

// updateCommand creates the update command.
func (c *CLI) updateCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "update [src-dir]",
		Short: "Resolve dependencies and update package.json",
		Long: `Resolve the dependencies of a package and its local packages.

Modes:
  devel       own deps plus the deps of every local package; links locals
              into node_modules
  publish     own deps plus "^version" for each direct local package;
              private local packages are an error
  deploy      own deps plus a "file:" path for every local package
  deploy-mix  "^version" for public direct locals, "file:" paths for
              private locals and everything below them`,
		Example: `  # Development install of the current package
  linkdeps update

  # Prepare a deployable copy in dist/
  linkdeps update --mode deploy --out dist

  # Show what would change, with provenance
  linkdeps update --check --refs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := srcArg(args)
			cfg, err := loadConfig(src, cmd.Flags(), flags)
			if err != nil {
				return err
			}
			if cfg.Mode == linkdeps.ModeLink {
				return c.runLink(cmd, src, cfg)
			}
			return c.runUpdate(cmd, src, cfg)
		},
	}

	flags.register(cmd.Flags(), true)
	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var modes []string
		for _, m := range linkdeps.Modes {
			if m != linkdeps.ModeLink {
				modes = append(modes, string(m))
			}
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (c *CLI) runUpdate(cmd *cobra.Command, src string, cfg config) error {
	res, err := c.newRunner().Run(cmd.Context(), pipeline.Options{
		SrcPath: src,
		OutPath: cfg.Out,
		Mode:    cfg.Mode,
		Check:   cfg.Check,
		Refs:    cfg.Refs,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printDiff(w, res, cfg.Refs)
	if cfg.Mode == linkdeps.ModeDevel {
		printLocals(w, res)
	}
	printWarnings(cmd.ErrOrStderr(), res)
	if res.Saved {
		printSuccess(w, "Updated %s", cfg.Mode)
		printFile(w, res.ManifestPath)
	}
	return nil
}
