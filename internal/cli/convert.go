package cli

import (
	"github.com/spf13/cobra"

	foldio "github.com/jimtonn/foldout/pkg/io"
)

// convertCommand creates the convert command. Formats are inferred from
// the file extensions; markdown is accepted as an output only.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert an outline between JSON, TOML, YAML and markdown",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			o, err := foldio.Import(args[0])
			if err != nil {
				return err
			}
			logger.Debug("imported outline", "path", args[0], "rows", o.Len(), "columns", len(o.Columns()))

			if err := foldio.Export(o, args[1]); err != nil {
				return err
			}
			prog.done("Converted " + args[0])
			printFile(c.Out, args[1])
			return nil
		},
	}
}
