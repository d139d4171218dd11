// Package render turns outlines into diagrams.
//
// The drawing itself lives in the [nodelink] subpackage, which converts an
// outline to Graphviz DOT and renders it to SVG or PNG. This package adds a
// [Runner] that caches rendered artifacts so that redrawing an unchanged
// outline skips Graphviz entirely:
//
//	runner := render.NewRunner(fileCache, nil, logger)
//	res, err := runner.Render(ctx, o, render.Options{Format: render.FormatSVG})
//
// Cache keys are derived from the DOT source, so any edit that changes the
// drawing (a title, a checked box, a moved row) produces a new key. Cache
// backends that fail are logged and bypassed.
//
// [nodelink]: github.com/jimtonn/foldout/pkg/render/nodelink
package render
