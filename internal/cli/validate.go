package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depdoc/pkg/config"
	"github.com/matzehuels/depdoc/pkg/deps"
	"github.com/matzehuels/depdoc/pkg/errors"
	"github.com/matzehuels/depdoc/pkg/manifest"
	"github.com/matzehuels/depdoc/pkg/validate"
)

type validateOpts struct {
	project       projectFlags
	format        string
	strictVersion bool
	strictMissing bool
	strictExtra   bool
}

func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an already generated DEPENDENCIES.md",
		Long: `Validate compares the manifest against the packages installed in the
project directory and reports every version mismatch, documented package
that is not installed, and installed package that is not documented.

The command exits with status 1 when any discrepancy is found.`,
		Example: `  depdoc validate
  depdoc validate -d ./app --strict-extra=false
  depdoc validate --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd, opts)
		},
	}

	opts.project.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", validate.FormatText, "output format: "+strings.Join(validate.Formats, ", "))
	cmd.Flags().BoolVar(&opts.strictVersion, "strict-version", true, "report version mismatches")
	cmd.Flags().BoolVar(&opts.strictMissing, "strict-missing", true, "report documented packages that are not installed")
	cmd.Flags().BoolVar(&opts.strictExtra, "strict-extra", true, "report installed packages that are not documented")

	return cmd
}

func (c *CLI) runValidate(cmd *cobra.Command, opts validateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	if !slices.Contains(validate.Formats, opts.format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (available: %s)", opts.format, strings.Join(validate.Formats, ", "))
	}

	cfg, err := opts.project.load(cmd)
	if err != nil {
		return err
	}
	policy := strictMode(cmd, cfg, opts)
	logger.Debug("Loaded configuration", "source", cfg.Source, "policy", policy)

	path := cfg.ManifestPath(opts.project.dir)
	documented, err := manifest.ParseFile(path)
	if err != nil {
		return err
	}
	logger.Debug("Parsed manifest", "path", path, "packages", documented.Len(), "managers", documented.Managers())

	installed, err := c.installed(ctx, cfg, opts.project.dir)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	results := validate.Compare(policy, installed, documented)
	prog.done("Compared inventories")

	report := validate.NewReport(path, policy, results)
	if opts.format != validate.FormatText {
		if err := report.Write(out, opts.format); err != nil {
			return err
		}
	} else {
		writeTextReport(out, report, c.verbose)
	}

	if !report.OK() {
		return errors.New(errors.ErrCodeDrift, "found %d discrepancies in %s", report.Count, path)
	}
	return nil
}

// strictMode builds the policy from config, letting explicitly set flags win.
func strictMode(cmd *cobra.Command, cfg *config.Config, opts validateOpts) validate.StrictMode {
	s := cfg.Strict
	flags := cmd.Flags()
	if flags.Changed("strict-version") {
		s.Version = opts.strictVersion
	}
	if flags.Changed("strict-missing") {
		s.Missing = opts.strictMissing
	}
	if flags.Changed("strict-extra") {
		s.Extra = opts.strictExtra
	}
	return validate.NewStrictMode(s.Version, s.Missing, s.Extra)
}

func writeTextReport(w io.Writer, report *validate.Report, verbose bool) {
	if report.OK() {
		if verbose {
			printSuccess(w, "Validation result: empty, all fine.")
		}
		return
	}

	printError(w, "Validation result: found %d error(s)", report.Count)
	for _, r := range report.Discrepancies {
		printResult(w, r)
	}
}

// printResult prints one discrepancy, colored by kind.
func printResult(w io.Writer, r validate.Result) {
	style := StyleDim
	switch r.Kind {
	case validate.KindMissing:
		style = styleMissing
	case validate.KindExtra:
		style = styleExtra
	case validate.KindVersionMismatch:
		style = styleMismatch
	case validate.KindUnsupportedManager:
		style = StyleWarning
	}
	io.WriteString(w, "  "+style.Render(r.String())+"\n")
}

// installed reads the installed packages of every enabled adapter.
func (c *CLI) installed(ctx context.Context, cfg *config.Config, dir string) (*deps.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := loggerFromContext(ctx)

	adapters, err := c.adapters(cfg)
	if err != nil {
		return nil, err
	}
	var detected []deps.Manager
	for _, a := range adapters {
		if a.Detect(dir) {
			detected = append(detected, a.Manager())
		}
	}
	if len(detected) == 0 {
		logger.Warn("No supported package manager detected", "dir", dir)
	}

	prog := newProgress(logger)
	inv, err := deps.Installed(dir, adapters...)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Read %d installed packages from %v", inv.Len(), detected))
	return inv, nil
}
