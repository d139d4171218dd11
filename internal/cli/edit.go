package cli

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	foldio "github.com/jimtonn/foldout/pkg/io"
	"github.com/jimtonn/foldout/pkg/observability"
	"github.com/jimtonn/foldout/pkg/outline"
	"github.com/jimtonn/foldout/pkg/outline/command"
)

// editCommand creates the interactive edit command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		metricsFile string
		create      bool
	)

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit an outline interactively",
		Long: `Edit an outline in the terminal. Every change can be undone (u) and redone (U);
press s to save and q to quit.

With --metrics-file, command counts are written in the Prometheus text
format when the editor exits, ready for a node_exporter textfile collector.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], create, metricsFile)
		},
	}

	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write command metrics to this file on exit")
	cmd.Flags().BoolVar(&create, "create", false, "start a new outline with the configured columns if the file does not exist")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, path string, create bool, metricsFile string) error {
	o, err := c.openForEdit(path, create)
	if err != nil {
		return err
	}

	metrics := newMetricsRecorder(metricsFile)
	observability.SetHistoryHooks(metrics.historyHooks(newHistoryLogger(c.Logger)))

	m := newEditorModel(command.NewHistory(o), path, func(o *outline.Outline) error {
		return foldio.Export(o, path)
	})
	m.indent = c.Config.Indent
	defer m.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
	}

	metrics.write(c)

	if m.dirty {
		printInfo(c.Out, "Quit without saving %d edits", m.edits)
	} else {
		printSuccess(c.Out, "%d edits", m.edits)
	}
	return nil
}

// openForEdit imports path, or builds an empty outline from the configured
// schema when create is set and the file does not exist yet.
func (c *CLI) openForEdit(path string, create bool) (*outline.Outline, error) {
	if create {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return newOutline(c.Config.Columns, nil)
		}
	}
	return foldio.Import(path)
}
