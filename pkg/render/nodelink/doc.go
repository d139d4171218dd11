// Package nodelink renders outlines as node-link diagrams.
//
// Every row becomes a rounded box with an arrow from its parent. The root
// is drawn as a small point so the top-level rows hang from a common node.
//
//	dot := nodelink.ToDOT(o, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// With [Options.Detailed] set, each label lists the row's other non-empty
// cells below the text. Rows whose first check column is set are filled
// green.
//
// Rendering runs Graphviz in-process through [github.com/goccy/go-graphviz],
// so no external binary is required.
package nodelink
