package cli

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jimtonn/foldout/pkg/errors"
	foldio "github.com/jimtonn/foldout/pkg/io"
	"github.com/jimtonn/foldout/pkg/outline"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		markdown bool
		style    string
		width    int
		stats    bool
	)

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print an outline",
		Long: `Print an outline as an indented tree. With --markdown the outline is exported
as a markdown task list and rendered for the terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := foldio.Import(args[0])
			if err != nil {
				return err
			}

			if markdown {
				out, err := renderMarkdown(o, style, width)
				if err != nil {
					return err
				}
				fmt.Fprint(c.Out, out)
			} else {
				printOutline(c.Out, o, c.Config.Indent)
			}

			if stats {
				printStats(c.Out, o.Len(), len(o.Columns()), false)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&markdown, "markdown", "m", false, "render as markdown")
	cmd.Flags().StringVar(&style, "style", "auto", "markdown style: auto, dark, light, notty")
	cmd.Flags().IntVar(&width, "width", 80, "markdown word wrap width")
	cmd.Flags().BoolVar(&stats, "stats", false, "print row and column counts")

	return cmd
}

// renderMarkdown exports o as markdown and renders it with glamour.
func renderMarkdown(o *outline.Outline, style string, width int) (string, error) {
	var md bytes.Buffer
	if err := foldio.WriteMarkdown(o, &md); err != nil {
		return "", err
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "markdown style %q", style)
	}
	out, err := r.Render(md.String())
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render markdown")
	}
	return out, nil
}
