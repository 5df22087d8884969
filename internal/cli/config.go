package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depdoc/pkg/config"
	"github.com/matzehuels/depdoc/pkg/errors"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage project configuration",
		Long: `Manage the .depdoc.toml project configuration.

Settings can also be given in .depdoc.yaml or .depdoc.json, and overridden
with DEPDOC_* environment variables (e.g. DEPDOC_STRICT_EXTRA=false).`,
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var dir string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .depdoc.toml with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(dir, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := config.Default().Save(dir); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Created configuration")
			printFile(out, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", ".", "project directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			source := cfg.Source
			if source == "" {
				source = "defaults"
			}
			loggerFromContext(cmd.Context()).Debug("Resolved configuration", "source", source)

			out := cmd.OutOrStdout()
			printInfo(out, "Source: %s", source)
			return cfg.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", ".", "project directory")

	return cmd
}
