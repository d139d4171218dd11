package outline

import (
	"fmt"
	"iter"
	"slices"
)

// Outline is the aggregate root of the model: it owns the root row and the
// active column set, performs every structural, schema and data edit, and
// fires one notification per successful edit.
//
// Every operation validates its arguments before touching any state. A
// failed operation leaves the outline unchanged and fires nothing.
//
// The zero value is not usable - use [New]. Outline is not safe for
// concurrent use; callers must route all edits through a single writer.
type Outline struct {
	root *Row

	// columns keeps add order. Its members are exactly the keys of
	// root.values, and every attached row's value keys match it.
	columns []*Column

	events eventHub
}

// New creates an empty outline with a root row and no columns.
func New() *Outline {
	return &Outline{root: newRow(nil)}
}

// Root returns the root row. It is never removed or reparented and never
// appears in [Outline.Rows].
func (o *Outline) Root() *Row { return o.root }

// Columns returns the active columns in the order they were added.
func (o *Outline) Columns() []*Column { return slices.Clone(o.columns) }

// HasColumn reports whether c is active. Membership is by identity.
func (o *Outline) HasColumn(c *Column) bool {
	_, ok := o.root.values[c]
	return ok
}

// Len returns the number of rows, not counting the root row.
func (o *Outline) Len() int {
	n := 0
	for range o.Rows() {
		n++
	}
	return n
}

// Rows returns the pre-order traversal of every non-root row paired with
// its depth; the root's direct children have depth 0. See [Row.Descendants].
func (o *Outline) Rows() iter.Seq2[*Row, int] {
	return o.root.Descendants()
}

// allRows yields the root row followed by every row beneath it.
func (o *Outline) allRows() iter.Seq[*Row] {
	return func(yield func(*Row) bool) {
		if !yield(o.root) {
			return
		}
		for r := range o.Rows() {
			if !yield(r) {
				return
			}
		}
	}
}

// Contains reports whether r is currently attached to this outline's tree.
// The root row is always contained.
func (o *Outline) Contains(r *Row) bool {
	for r != nil && r.parent != nil {
		if !slices.Contains(r.parent.children, r) {
			return false
		}
		r = r.parent
	}
	return r == o.root
}

// AddColumn activates c and gives every row, including the root, a value
// for it: restore[row] when present, otherwise a fresh default. Restoring
// values fires no row-level events; listeners receive a single
// [ColumnAdded] and should redraw the whole column.
//
// Returns ErrNullArgument for a nil column and ErrDuplicateColumn if c is
// already active.
func (o *Outline) AddColumn(c *Column, restore map[*Row]any) error {
	if c == nil {
		return fmt.Errorf("add column: %w", ErrNullArgument)
	}
	if o.HasColumn(c) {
		return fmt.Errorf("add column %q: %w", c.title, ErrDuplicateColumn)
	}

	for r := range o.allRows() {
		if v, ok := restore[r]; ok {
			r.values[c] = c.CloneValue(v)
		} else {
			r.values[c] = c.NewValue()
		}
	}
	o.columns = append(o.columns, c)

	o.events.columnAdded.emit(ColumnAdded{Column: c})
	return nil
}

// RemoveColumn deactivates c. Before removing it from each row, including
// the root, the row's value is cloned into the returned snapshot, which is
// also carried by the [ColumnRemoved] event. Passing the snapshot back to
// AddColumn restores the column exactly.
//
// Returns ErrNullArgument for a nil column and ErrUnknownColumn if c is not
// active.
func (o *Outline) RemoveColumn(c *Column) (map[*Row]any, error) {
	if c == nil {
		return nil, fmt.Errorf("remove column: %w", ErrNullArgument)
	}
	if !o.HasColumn(c) {
		return nil, fmt.Errorf("remove column %q: %w", c.title, ErrUnknownColumn)
	}

	removed := make(map[*Row]any)
	for r := range o.allRows() {
		removed[r] = c.CloneValue(r.values[c])
		delete(r.values, c)
	}
	o.columns = slices.DeleteFunc(o.columns, func(x *Column) bool { return x == c })

	o.events.columnRemoved.emit(ColumnRemoved{Column: c, Values: removed})
	return removed, nil
}

// ChangeColumnTitle renames c and fires [ColumnTitleChanged]. The column
// does not need to be active. Returns ErrNullArgument for a nil column.
func (o *Outline) ChangeColumnTitle(c *Column, title string) error {
	if c == nil {
		return fmt.Errorf("change column title: %w", ErrNullArgument)
	}
	previous := c.title
	c.title = title
	o.events.columnTitleChanged.emit(ColumnTitleChanged{Column: c, Previous: previous, New: title})
	return nil
}

// InsertRow creates a row as a child of parent at position and returns it.
// For every active column the row takes initial[column] when present,
// otherwise the column's default; entries for inactive columns are ignored.
//
// Returns ErrNullArgument for a nil parent, ErrNotFound if parent is not
// attached to this outline, and ErrOutOfRange unless
// 0 <= position <= parent.ChildCount().
func (o *Outline) InsertRow(parent *Row, position int, initial map[*Column]any) (*Row, error) {
	if parent == nil {
		return nil, fmt.Errorf("insert row: parent: %w", ErrNullArgument)
	}
	if !o.Contains(parent) {
		return nil, fmt.Errorf("insert row: parent: %w", ErrNotFound)
	}
	if err := checkPosition(position, len(parent.children)); err != nil {
		return nil, fmt.Errorf("insert row: %w", err)
	}

	r := newRow(parent)
	for _, c := range o.columns {
		if v, ok := initial[c]; ok {
			r.values[c] = v
		} else {
			r.values[c] = c.NewValue()
		}
	}
	parent.children = slices.Insert(parent.children, position, r)

	o.events.rowAdded.emit(RowAdded{Row: r, Parent: parent, Position: position})
	return r, nil
}

// RemoveRow detaches a childless row from its parent. The row keeps a
// record of its parent, so a second removal is detected.
//
// Returns ErrNullArgument for a nil row, ErrRootRow for the root row,
// ErrHasChildren if the row has children, and ErrNotFound if the row is no
// longer attached.
func (o *Outline) RemoveRow(r *Row) error {
	if r == nil {
		return fmt.Errorf("remove row: %w", ErrNullArgument)
	}
	if r.parent == nil {
		return fmt.Errorf("remove row: %w", ErrRootRow)
	}
	if len(r.children) > 0 {
		return fmt.Errorf("remove row: %w", ErrHasChildren)
	}
	if !o.Contains(r) {
		return fmt.Errorf("remove row: %w", ErrNotFound)
	}

	parent := r.parent
	position := slices.Index(parent.children, r)
	parent.children = slices.Delete(parent.children, position, position+1)

	o.events.rowRemoved.emit(RowRemoved{Row: r, Parent: parent, Position: position})
	return nil
}

// RestoreRow reattaches a row previously detached by [Outline.RemoveRow] as
// a child of parent at position. The row keeps its identity, so anything
// holding a reference to it (such as undo history) stays valid. Before the
// row becomes visible its values are brought in line with the active
// columns: stale columns are dropped and missing ones get defaults.
// Fires [RowAdded].
//
// Returns ErrNullArgument for a nil row or parent, ErrRootRow for a root
// row, ErrRowAttached if the row is still in the tree, ErrNotFound if
// parent is not attached to this outline, and ErrOutOfRange for a bad
// position.
func (o *Outline) RestoreRow(r, parent *Row, position int) error {
	if r == nil || parent == nil {
		return fmt.Errorf("restore row: %w", ErrNullArgument)
	}
	if r.parent == nil {
		return fmt.Errorf("restore row: %w", ErrRootRow)
	}
	if o.Contains(r) {
		return fmt.Errorf("restore row: %w", ErrRowAttached)
	}
	if !o.Contains(parent) {
		return fmt.Errorf("restore row: parent: %w", ErrNotFound)
	}
	if err := checkPosition(position, len(parent.children)); err != nil {
		return fmt.Errorf("restore row: %w", err)
	}

	for c := range r.values {
		if !o.HasColumn(c) {
			delete(r.values, c)
		}
	}
	for _, c := range o.columns {
		if _, ok := r.values[c]; !ok {
			r.values[c] = c.NewValue()
		}
	}
	r.parent = parent
	parent.children = slices.Insert(parent.children, position, r)

	o.events.rowAdded.emit(RowAdded{Row: r, Parent: parent, Position: position})
	return nil
}

// ReparentRow moves r under newParent at position. When newParent is the
// current parent, position is interpreted after r has been taken out of the
// child list, so valid positions are [0, ChildCount()-1].
//
// Returns ErrNullArgument for a nil row or parent, ErrRootRow for the root
// row, ErrNotFound if either row is detached, ErrCycle if newParent is r or
// lies beneath it, and ErrOutOfRange for a bad position.
func (o *Outline) ReparentRow(r, newParent *Row, position int) error {
	if r == nil || newParent == nil {
		return fmt.Errorf("reparent row: %w", ErrNullArgument)
	}
	if r.parent == nil {
		return fmt.Errorf("reparent row: %w", ErrRootRow)
	}
	if !o.Contains(r) || !o.Contains(newParent) {
		return fmt.Errorf("reparent row: %w", ErrNotFound)
	}
	for p := newParent; p != nil; p = p.parent {
		if p == r {
			return fmt.Errorf("reparent row: %w", ErrCycle)
		}
	}

	previous := r.parent
	limit := len(newParent.children)
	if newParent == previous {
		limit--
	}
	if err := checkPosition(position, limit); err != nil {
		return fmt.Errorf("reparent row: %w", err)
	}

	previousPosition := slices.Index(previous.children, r)
	previous.children = slices.Delete(previous.children, previousPosition, previousPosition+1)
	newParent.children = slices.Insert(newParent.children, position, r)
	r.parent = newParent

	o.events.rowReparented.emit(RowReparented{
		Row:              r,
		PreviousParent:   previous,
		NewParent:        newParent,
		PreviousPosition: previousPosition,
		Position:         position,
	})
	return nil
}

// ChangeRowValue sets r's value for column c and fires [RowDataChanged]
// with the previous and new values.
//
// Returns ErrNullArgument for a nil row or column, ErrUnknownColumn if c is
// not active, and ErrNotFound if r is not attached.
func (o *Outline) ChangeRowValue(r *Row, c *Column, value any) error {
	if r == nil || c == nil {
		return fmt.Errorf("change row value: %w", ErrNullArgument)
	}
	if !o.HasColumn(c) {
		return fmt.Errorf("change row value %q: %w", c.title, ErrUnknownColumn)
	}
	if !o.Contains(r) {
		return fmt.Errorf("change row value: %w", ErrNotFound)
	}

	previous := r.setValue(c, value)
	o.events.rowDataChanged.emit(RowDataChanged{Row: r, Column: c, Previous: previous, New: value})
	return nil
}

// ChangeValue is the typed form of [Outline.ChangeRowValue].
func ChangeValue[T any](o *Outline, r *Row, c *Column, value T) error {
	return o.ChangeRowValue(r, c, value)
}

func checkPosition(position, count int) error {
	if position < 0 || position > count {
		return fmt.Errorf("position %d not in [0, %d]: %w", position, count, ErrOutOfRange)
	}
	return nil
}
