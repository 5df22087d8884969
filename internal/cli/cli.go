// Package cli implements the depdoc command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depdoc/pkg/buildinfo"
	"github.com/matzehuels/depdoc/pkg/config"
	"github.com/matzehuels/depdoc/pkg/deps"
	"github.com/matzehuels/depdoc/pkg/deps/composer"
	"github.com/matzehuels/depdoc/pkg/deps/node"
	"github.com/matzehuels/depdoc/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "depdoc"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger   *log.Logger
	Adapters []deps.Adapter

	verbose bool
}

// New creates a new CLI instance with a default logger and the built-in adapters.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Adapters: []deps.Adapter{composer.Adapter{}, node.Adapter{}},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "depdoc documents and validates third-party dependencies",
		Long:          `depdoc writes a DEPENDENCIES.md listing the packages installed by composer and npm, and checks that an existing DEPENDENCIES.md still matches what is installed.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Flags
// =============================================================================

// projectFlags are the flags every manifest command accepts.
type projectFlags struct {
	dir  string
	file string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dir, "directory", "d", ".", "project directory")
	cmd.Flags().StringVar(&f.file, "file", "", "manifest filename inside the project directory (default from config)")
}

// load resolves the project configuration with flag overrides applied.
func (f *projectFlags) load(cmd *cobra.Command) (*config.Config, error) {
	if f.dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "project directory cannot be empty")
	}
	info, err := os.Stat(f.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "project directory %s", f.dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "not a directory: %s", f.dir)
	}

	cfg, err := config.Load(f.dir)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("file") {
		if err := errors.ValidateManifestFilename(f.file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "--file")
		}
		cfg.Manifest = f.file
	}
	return cfg, nil
}

// adapters returns the adapters enabled by cfg.
func (c *CLI) adapters(cfg *config.Config) ([]deps.Adapter, error) {
	return deps.Filter(c.Adapters, cfg.Managers)
}
