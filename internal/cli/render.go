package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimtonn/foldout/pkg/errors"
	foldio "github.com/jimtonn/foldout/pkg/io"
	"github.com/jimtonn/foldout/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path; derived from the input when empty
	format   string // dot, svg or png; inferred from output when empty
	detailed bool   // list every non-empty cell in node labels
	noCache  bool   // skip the render cache
	metrics  string // Prometheus textfile to write after rendering
}

// renderCommand creates the render command for drawing outlines as diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw an outline as a diagram",
		Long: `Draw an outline as a node-link diagram with Graphviz. Rendered SVG and PNG
files are cached; an unchanged outline is served from the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show every column in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&opts.metrics, "metrics-file", "", "write render and cache metrics to this file")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	format, output, err := resolveRenderTarget(input, opts.output, opts.format)
	if err != nil {
		return err
	}

	o, err := foldio.Import(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	metrics := newMetricsRecorder(opts.metrics)
	metrics.watchRenders()
	defer metrics.write(c)

	spin := newSpinner(ctx, "Rendering "+filepath.Base(input))
	spin.Start()
	res, err := runner.Render(ctx, o, render.Options{Format: format, Detailed: opts.detailed})
	spin.Stop()
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, res.Data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
	}

	printSuccess(c.Out, "Rendered %s", filepath.Base(input))
	printStats(c.Out, o.Len(), len(o.Columns()), res.CacheHit)
	printFile(c.Out, output)
	return nil
}

// resolveRenderTarget works out the format and output path. An explicit
// format wins; otherwise it comes from the output extension, and svg is
// used when neither is given.
func resolveRenderTarget(input, output, format string) (render.Format, string, error) {
	var f render.Format
	switch {
	case format != "":
		var err error
		if f, err = render.ParseFormat(format); err != nil {
			return "", "", err
		}
	case output != "":
		var err error
		if f, err = render.FormatFromPath(output); err != nil {
			return "", "", err
		}
	default:
		f = render.FormatSVG
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + string(f)
	}
	if err := errors.ValidatePath(output); err != nil {
		return "", "", err
	}
	if _, err := foldio.FormatFromPath(output); err == nil {
		return "", "", errors.New(errors.ErrCodeInvalidPath, "refusing to overwrite outline document %s with a diagram", output)
	}
	return f, output, nil
}
