package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	foldio "github.com/jimtonn/foldout/pkg/io"
	"github.com/jimtonn/foldout/pkg/outline"
	"github.com/jimtonn/foldout/pkg/outline/command"
)

// demoCommand creates the demo command, which builds a small fixed outline
// through the undo history and prints it.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		output string
		styled bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build the sample outline and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := buildDemo()
			if err != nil {
				return err
			}

			if styled {
				printOutline(c.Out, o, c.Config.Indent)
			} else {
				writeTabbed(c.Out, o)
			}

			if output != "" {
				if err := foldio.Export(o, output); err != nil {
					return err
				}
				printFile(c.Out, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "also save the demo outline to this file")
	cmd.Flags().BoolVar(&styled, "styled", false, "print with task boxes and colors")

	return cmd
}

// buildDemo creates the sample outline:
//
//	this is a row
//		this is a row too
//		something
//			this is a cool row
//	this is the bottom row
func buildDemo() (*outline.Outline, error) {
	h := command.NewHistory(outline.New())
	o := h.Outline()

	content := outline.NewTextColumn("Content")
	complete := outline.NewCheckColumn("Complete")
	for _, col := range []*outline.Column{content, complete} {
		if err := h.Run(command.NewAddColumn(col)); err != nil {
			return nil, err
		}
	}

	insert := func(parent *outline.Row, pos int, text string) (*outline.Row, error) {
		cmd := command.NewInsertRow(parent, pos, map[*outline.Column]any{content: text})
		if err := h.Run(cmd); err != nil {
			return nil, err
		}
		return cmd.Row(), nil
	}

	n1, err := insert(o.Root(), 0, "this is a row")
	if err != nil {
		return nil, err
	}
	if _, err := insert(n1, 0, "this is a row too"); err != nil {
		return nil, err
	}
	n12, err := insert(n1, 1, "something")
	if err != nil {
		return nil, err
	}
	if _, err := insert(n12, 0, "this is a cool row"); err != nil {
		return nil, err
	}
	if _, err := insert(o.Root(), 1, "this is the bottom row"); err != nil {
		return nil, err
	}
	return o, nil
}

// writeTabbed prints the first text column of every row, one tab per
// level of depth.
func writeTabbed(w io.Writer, o *outline.Outline) {
	text := firstOfKind(o.Columns(), outline.KindText)
	for r, depth := range o.Rows() {
		var s string
		if text != nil {
			s, _ = outline.ValueOf[string](r, text)
		}
		fmt.Fprintln(w, strings.Repeat("\t", depth)+s)
	}
}
