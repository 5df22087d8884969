package cli

import (
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depdoc/pkg/errors"
	"github.com/matzehuels/depdoc/pkg/manifest"
)

type showOpts struct {
	project projectFlags
	raw     bool
	width   int
}

func (c *CLI) showCommand() *cobra.Command {
	var opts showOpts

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render DEPENDENCIES.md in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd, opts)
		},
	}

	opts.project.register(cmd)
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print the manifest without rendering")
	cmd.Flags().IntVar(&opts.width, "width", 80, "word wrap width (0 disables wrapping)")

	return cmd
}

func (c *CLI) runShow(cmd *cobra.Command, opts showOpts) error {
	cfg, err := opts.project.load(cmd)
	if err != nil {
		return err
	}
	path := cfg.ManifestPath(opts.project.dir)

	data, err := manifest.ReadFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.raw {
		_, err := out.Write(data)
		return err
	}
	return renderMarkdown(out, string(data), opts.width)
}

// renderMarkdown writes text styled for the terminal.
func renderMarkdown(w io.Writer, text string, width int) error {
	rendererOpts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create markdown renderer")
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render markdown")
	}
	_, err = io.WriteString(w, rendered)
	return err
}
