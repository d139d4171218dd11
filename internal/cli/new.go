package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimtonn/foldout/pkg/errors"
	foldio "github.com/jimtonn/foldout/pkg/io"
	"github.com/jimtonn/foldout/pkg/outline"
	"github.com/jimtonn/foldout/pkg/outline/command"
)

// newCommand creates the new command, which writes an outline with the
// configured column schema and optional top-level rows.
func (c *CLI) newCommand() *cobra.Command {
	var (
		columns []string
		rows    []string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create an outline document",
		Long: `Create an outline document. The columns come from the config file unless
--column is given, e.g. --column text:Content --column check:Done.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := errors.ValidatePath(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}

			specs := c.Config.Columns
			if len(columns) > 0 {
				var err error
				if specs, err = parseColumnFlags(columns); err != nil {
					return err
				}
			}

			o, err := newOutline(specs, rows)
			if err != nil {
				return err
			}
			if err := foldio.Export(o, path); err != nil {
				return err
			}

			printSuccess(c.Out, "Created %s", path)
			printStats(c.Out, o.Len(), len(o.Columns()), false)
			printNextStep(c.Out, "Edit it", appName+" edit "+path)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&columns, "column", "c", nil, "column as kind:title (repeatable)")
	cmd.Flags().StringArrayVarP(&rows, "row", "r", nil, "top-level row text (repeatable)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

// parseColumnFlags turns "kind:title" pairs into column specs.
func parseColumnFlags(flags []string) ([]foldio.ColumnSpec, error) {
	specs := make([]foldio.ColumnSpec, 0, len(flags))
	for _, f := range flags {
		kind, title, ok := strings.Cut(f, ":")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidColumn, "column %q: want kind:title", f)
		}
		spec := foldio.ColumnSpec{Kind: outline.Kind(strings.TrimSpace(kind)), Title: strings.TrimSpace(title)}
		if err := errors.ValidateColumnTitle(spec.Title); err != nil {
			return nil, err
		}
		if _, err := spec.NewColumn(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColumn, err, "column %q", f)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// newOutline builds an outline with the given schema. Each entry of rows
// becomes a top-level row whose first text column holds the entry.
func newOutline(specs []foldio.ColumnSpec, rows []string) (*outline.Outline, error) {
	h := command.NewHistory(outline.New())
	var text *outline.Column
	for _, spec := range specs {
		col, err := spec.NewColumn()
		if err != nil {
			return nil, err
		}
		if err := h.Run(command.NewAddColumn(col)); err != nil {
			return nil, err
		}
		if text == nil && col.Kind() == outline.KindText {
			text = col
		}
	}
	if len(rows) > 0 && text == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--row needs a text column")
	}

	root := h.Outline().Root()
	for i, r := range rows {
		if err := h.Run(command.NewInsertRow(root, i, map[*outline.Column]any{text: r})); err != nil {
			return nil, err
		}
	}
	return h.Outline(), nil
}
