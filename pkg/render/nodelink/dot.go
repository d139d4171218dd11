package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jimtonn/foldout/pkg/outline"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed lists every non-empty cell in the node label as
	// "Title: value". When false, only the first text column is shown.
	Detailed bool
}

// doneFill is the fill colour of rows whose first check column is set.
const doneFill = "#d9f2d9"

// ToDOT converts an outline to Graphviz DOT source.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// The root is drawn as a point named "root" so that top-level rows share a
// parent. Rows are named n0, n1, ... in pre-order, so equal outlines give
// equal DOT, and ordering=out keeps siblings in outline order.
func ToDOT(o *outline.Outline, opts Options) string {
	cols := o.Columns()
	text := firstOfKind(cols, outline.KindText)
	check := firstOfKind(cols, outline.KindCheck)

	names := map[*outline.Row]string{o.Root(): "root"}
	var order []*outline.Row
	for r := range o.Rows() {
		names[r] = "n" + strconv.Itoa(len(order))
		order = append(order, r)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph outline {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	buf.WriteString("  root [shape=point, width=0.1];\n")
	for _, r := range order {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(r, cols, text, opts.Detailed))}
		if check != nil {
			if done, _ := outline.ValueOf[bool](r, check); done {
				attrs = append(attrs, fmt.Sprintf("fillcolor=%q", doneFill))
			}
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", names[r], strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range order {
		fmt.Fprintf(&buf, "  %s -> %s;\n", names[r.Parent()], names[r])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(r *outline.Row, cols []*outline.Column, text *outline.Column, detailed bool) string {
	var title string
	if text != nil {
		title, _ = outline.ValueOf[string](r, text)
	}
	if !detailed {
		return title
	}

	parts := []string{title}
	for _, c := range cols {
		if c == text {
			continue
		}
		v, _ := r.Value(c)
		if s := outline.FormatValue(v); s != "" {
			parts = append(parts, c.Title()+": "+s)
		}
	}
	return strings.Join(parts, "\n")
}

func firstOfKind(cols []*outline.Column, k outline.Kind) *outline.Column {
	for _, c := range cols {
		if c.Kind() == k {
			return c
		}
	}
	return nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag so the drawing scales from a
// zero origin. Graphviz emits points and a translated viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
