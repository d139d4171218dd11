// Package pkg provides the core libraries for Foldout, a hierarchical
// outliner with typed columns and unlimited undo.
//
// # Overview
//
// An outline is a tree of rows under a hidden root. Every row carries one
// value per active column, and every edit is a command that can be undone
// and redone. The pkg directory is organized into these areas:
//
//  1. [outline] - The data model: rows, columns and change notifications
//  2. [outline/command] - Invertible edits and the undo/redo history
//  3. [io] - Documents in JSON, TOML and YAML, plus markdown export
//  4. [render] - Node-link diagrams through Graphviz, with caching
//  5. [cache] - File, Redis and null cache backends
//
// # Architecture
//
// The typical data flow through Foldout:
//
//	Outline document (JSON/TOML/YAML)
//	         ↓
//	    [io] package (decode into an outline)
//	         ↓
//	    [outline/command] package (edit through the history)
//	         ↓
//	    [io] or [render] package (save, export or draw)
//	         ↓
//	    Document / markdown / SVG / PNG / DOT
//
// # Quick Start
//
// Build an outline through the history, undo an edit and save it:
//
//	import (
//	    "github.com/jimtonn/foldout/pkg/io"
//	    "github.com/jimtonn/foldout/pkg/outline"
//	    "github.com/jimtonn/foldout/pkg/outline/command"
//	)
//
//	h := command.NewHistory(outline.New())
//	text := outline.NewTextColumn("Content")
//	_ = h.Run(command.NewAddColumn(text))
//
//	insert := command.NewInsertRow(h.Outline().Root(), 0,
//	    map[*outline.Column]any{text: "Buy milk"})
//	_ = h.Run(insert)
//	_ = h.Undo() // the row is gone
//	_ = h.Redo() // and back, with the same identity
//
//	_ = io.Export(h.Outline(), "todo.yaml")
//
// # Main Packages
//
// [outline] - Rows form a tree; columns define the schema. Structural
// changes and value changes fire typed notifications to subscribers.
//
// [outline/command] - A closed set of commands, each with a reverse, and
// a linear History with undo and redo stacks.
//
// [io] - Codecs for outline documents and markdown task-list export.
//
// [render] - Diagram rendering with a cache-backed Runner. The
// [render/nodelink] subpackage converts outlines to DOT.
//
// [cache] - Byte caches keyed by content hash, with retry for transient
// backend failures.
//
// [observability] - Hooks for history and render events, with a
// Prometheus implementation.
//
// [errors] - Structured error codes and input validation.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...               # All tests
//	go test ./pkg/outline/...       # Specific package
//	go test -run Example ./pkg/...  # Examples only
//
// [outline]: https://pkg.go.dev/github.com/jimtonn/foldout/pkg/outline
// [outline/command]: https://pkg.go.dev/github.com/jimtonn/foldout/pkg/outline/command
// [io]: https://pkg.go.dev/github.com/jimtonn/foldout/pkg/io
// [render]: https://pkg.go.dev/github.com/jimtonn/foldout/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/jimtonn/foldout/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/jimtonn/foldout/pkg/cache
// [observability]: https://pkg.go.dev/github.com/jimtonn/foldout/pkg/observability
// [errors]: https://pkg.go.dev/github.com/jimtonn/foldout/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/jimtonn/foldout/pkg/buildinfo
package pkg
