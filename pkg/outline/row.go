package outline

import (
	"iter"
	"slices"

	"github.com/google/uuid"
)

// Row is one node of the outline tree. It holds a value for every active
// column of its outline.
//
// Rows are created only by [Outline.InsertRow]. Topology and values are
// written only by the outline; the accessors here are read-only views.
type Row struct {
	id       string
	parent   *Row
	children []*Row
	values   map[*Column]any
}

func newRow(parent *Row) *Row {
	return &Row{
		id:     uuid.NewString(),
		parent: parent,
		values: make(map[*Column]any),
	}
}

// ID returns a unique identifier generated when the row was created.
func (r *Row) ID() string { return r.id }

// Parent returns the row's parent, or nil for the root row. A removed row
// still reports the parent it was removed from.
func (r *Row) Parent() *Row { return r.parent }

// IsRoot reports whether r is an outline's root row.
func (r *Row) IsRoot() bool { return r.parent == nil }

// Children returns a copy of the row's children in display order.
func (r *Row) Children() []*Row { return slices.Clone(r.children) }

// Child returns the child at position i, or nil if i is out of range.
func (r *Row) Child(i int) *Row {
	if i < 0 || i >= len(r.children) {
		return nil
	}
	return r.children[i]
}

// ChildCount returns the number of direct children.
func (r *Row) ChildCount() int { return len(r.children) }

// Index returns the row's position among its parent's children, or -1 for
// the root row and for rows that have been removed.
func (r *Row) Index() int {
	if r.parent == nil {
		return -1
	}
	return slices.Index(r.parent.children, r)
}

// Value returns the row's value for column c and whether the column is set.
func (r *Row) Value(c *Column) (any, bool) {
	v, ok := r.values[c]
	return v, ok
}

// ValueOf returns the row's value for column c as a T. ok is false when the
// column is not set or holds a value of a different type.
func ValueOf[T any](r *Row, c *Column) (v T, ok bool) {
	raw, found := r.values[c]
	if !found {
		return v, false
	}
	v, ok = raw.(T)
	return v, ok
}

// setValue assigns v and returns the previous value.
func (r *Row) setValue(c *Column, v any) any {
	prev := r.values[c]
	r.values[c] = v
	return prev
}

// Descendants returns a pre-order sequence of every row beneath r paired
// with its depth, where r's direct children have depth 0. Children are
// visited in stored order before the next sibling. The sequence is lazy and
// can be ranged over any number of times; mutating the tree while ranging
// gives unspecified results.
func (r *Row) Descendants() iter.Seq2[*Row, int] {
	return func(yield func(*Row, int) bool) {
		type frame struct {
			row   *Row
			depth int
		}
		stack := make([]frame, 0, len(r.children))
		push := func(rows []*Row, depth int) {
			for i := len(rows) - 1; i >= 0; i-- {
				stack = append(stack, frame{row: rows[i], depth: depth})
			}
		}

		push(r.children, 0)
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(f.row, f.depth) {
				return
			}
			push(f.row.children, f.depth+1)
		}
	}
}
