// Package outline provides an in-memory hierarchical document model: a tree
// of rows where every row carries one value per user-defined, typed column.
//
// # Overview
//
// An [Outline] owns a root [Row] and an ordered set of active [Column]s. The
// root row is invisible: it is never returned by traversal and can never be
// removed or moved. Every other row is created by [Outline.InsertRow] with an
// explicit parent and position, and is destroyed only by [Outline.RemoveRow],
// which refuses rows that still have children.
//
//	o := outline.New()
//	content := outline.NewTextColumn("Content")
//	_ = o.AddColumn(content, nil)
//
//	chapter, _ := o.InsertRow(o.Root(), 0, map[*outline.Column]any{content: "Chapter 1"})
//	_, _ = o.InsertRow(chapter, 0, map[*outline.Column]any{content: "Section 1.1"})
//
// # Schema
//
// The active column set is stored as the root row's value keys, and every
// row in the tree has exactly the same keys. [Outline.AddColumn] backfills a
// value into every row and [Outline.RemoveColumn] strips it from every row
// after taking a snapshot of the old values. Columns and rows are compared by
// identity: two columns with the same title are different columns.
//
// Default cell values come from a factory stored on the column rather than
// from the value type, see [NewColumn].
//
// # Notifications
//
// Each successful edit fires exactly one event, synchronously, after the
// state has changed:
//
//   - [ColumnAdded], [ColumnRemoved], [ColumnTitleChanged]
//   - [RowAdded], [RowRemoved], [RowReparented]
//   - [RowDataChanged]
//
// Register callbacks per event kind with the On* methods, or implement
// [Listener] and call [Outline.Subscribe]. Callbacks for one kind run in
// subscription order.
//
// # Errors
//
// Operations check every precondition before mutating. On failure they
// return one of the sentinel errors (wrapped with context, use errors.Is)
// and leave the outline untouched.
//
// # Traversal
//
// [Outline.Rows] is the single traversal primitive: a lazy pre-order walk
// yielding (row, depth) pairs. [Row.Descendants] runs the same walk below
// any row.
//
// # Concurrency
//
// Outline is not safe for concurrent use. There is no internal locking;
// serialize all calls through one writer.
//
// # Related Packages
//
// The [command] subpackage wraps outline edits as invertible commands and
// keeps undo/redo history.
//
// [command]: github.com/jimtonn/foldout/pkg/outline/command
package outline
