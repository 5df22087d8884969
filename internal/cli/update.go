package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depdoc/pkg/errors"
	"github.com/matzehuels/depdoc/pkg/manifest"
	"github.com/matzehuels/depdoc/pkg/validate"
)

type updateOpts struct {
	project projectFlags
	locked  bool
	dryRun  bool
}

func (c *CLI) updateCommand() *cobra.Command {
	var opts updateOpts

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update or create a DEPENDENCIES.md",
		Long: `Update writes the manifest from the packages installed in the project
directory. Prose, notes indented below a package, and sections that name no
supported package manager are kept from the previous manifest.

With --locked, the documented versions are checked first and nothing is
written if any installed version differs from the documented one.`,
		Example: `  depdoc update
  depdoc update -d ./app --locked
  depdoc update --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUpdate(cmd, opts)
		},
	}

	opts.project.register(cmd)
	cmd.Flags().BoolVar(&opts.locked, "locked", false, "fail instead of writing when documented versions drifted")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the manifest instead of writing it")

	return cmd
}

func (c *CLI) runUpdate(cmd *cobra.Command, opts updateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	cfg, err := opts.project.load(cmd)
	if err != nil {
		return err
	}
	newline, err := cfg.NewlineSequence()
	if err != nil {
		return err
	}

	installed, err := c.installed(ctx, cfg, opts.project.dir)
	if err != nil {
		return err
	}

	path := cfg.ManifestPath(opts.project.dir)
	previous, err := manifest.ParseDocumentFile(path)
	switch {
	case errors.Is(err, errors.ErrCodeFileNotFound):
		logger.Debug("No previous manifest", "path", path)
		previous = nil
	case err != nil:
		return err
	}

	if opts.locked && previous != nil {
		results := validate.Compare(validate.NewStrictMode(true, false, false), installed, previous.Inventory)
		// Unsupported sections are copied as written and cannot drift.
		results = validate.OfKind(results, validate.KindVersionMismatch)
		if len(results) > 0 {
			printError(out, "Locked versions drifted: found %d error(s)", len(results))
			for _, r := range results {
				printResult(out, r)
			}
			return errors.New(errors.ErrCodeDrift, "documented versions in %s do not match installed versions", path)
		}
	}

	wopts := manifest.WriterOptions{Title: manifest.DefaultTitle, Newline: newline}
	if opts.dryRun {
		return manifest.Write(out, installed, previous, wopts)
	}

	prog := newProgress(logger)
	if err := manifest.WriteFile(path, installed, previous, wopts); err != nil {
		return err
	}
	prog.done("Wrote manifest")

	if installed.Len() == 0 {
		printWarning(out, "No installed packages found")
	}
	printSuccess(out, "Documented %d packages", installed.Len())
	printFile(out, path)
	return nil
}
