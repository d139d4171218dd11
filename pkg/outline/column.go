package outline

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Kind tags the type of value stored in a column's cells. It is informational
// for the model itself; persistence uses it to rebuild columns on import.
type Kind string

// Built-in column kinds.
const (
	KindText   Kind = "text"   // string
	KindCheck  Kind = "check"  // bool
	KindNumber Kind = "number" // float64
	KindTags   Kind = "tags"   // []string
)

// Column is a typed, titled schema slot. Columns are compared by identity:
// two columns with the same title and kind are different columns, and maps
// keyed by *Column never look at the title.
//
// The title can only be changed through [Outline.ChangeColumnTitle] so that
// listeners are always notified.
type Column struct {
	id       string
	kind     Kind
	title    string
	newValue func() any
	clone    func(any) any
}

// ColumnOption configures optional behaviour of a column.
type ColumnOption func(*Column)

// WithCloner sets the function used to copy cell values when the outline
// snapshots a column (see [Outline.RemoveColumn]). Columns holding mutable
// values such as slices or maps need one; without it values are copied by
// assignment.
func WithCloner(fn func(any) any) ColumnOption {
	return func(c *Column) { c.clone = fn }
}

// NewColumn creates a column of the given kind. newValue produces a fresh
// default value whenever a row gains this column without an explicit value.
// A nil newValue yields nil defaults.
func NewColumn(kind Kind, title string, newValue func() any, opts ...ColumnOption) *Column {
	if newValue == nil {
		newValue = func() any { return nil }
	}
	c := &Column{
		id:       uuid.NewString(),
		kind:     kind,
		title:    title,
		newValue: newValue,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTextColumn creates a column of strings with an empty default.
func NewTextColumn(title string) *Column {
	return NewColumn(KindText, title, func() any { return "" })
}

// NewCheckColumn creates a column of booleans defaulting to false.
func NewCheckColumn(title string) *Column {
	return NewColumn(KindCheck, title, func() any { return false })
}

// NewNumberColumn creates a column of float64 values defaulting to zero.
func NewNumberColumn(title string) *Column {
	return NewColumn(KindNumber, title, func() any { return float64(0) })
}

// NewTagsColumn creates a column of string lists. Values are cloned when
// snapshotted, so later edits to a restored slice never leak into history.
func NewTagsColumn(title string) *Column {
	return NewColumn(KindTags, title, func() any { return []string{} }, WithCloner(func(v any) any {
		if tags, ok := v.([]string); ok {
			return slices.Clone(tags)
		}
		return v
	}))
}

// ID returns a unique identifier generated when the column was created.
// It is meant for diagnostics and rendering; identity is the pointer itself.
func (c *Column) ID() string { return c.id }

// Kind returns the column's value type tag.
func (c *Column) Kind() Kind { return c.kind }

// Title returns the column's current title.
func (c *Column) Title() string { return c.title }

// NewValue returns a fresh default value for a cell of this column.
func (c *Column) NewValue() any { return c.newValue() }

// CloneValue copies v using the column's cloner, if any.
func (c *Column) CloneValue(v any) any {
	if c.clone == nil {
		return v
	}
	return c.clone(v)
}

// String returns the title, or the kind when the column is untitled.
func (c *Column) String() string {
	if c.title == "" {
		return string(c.kind)
	}
	return c.title
}

// FormatValue renders a cell value for display. Empty strings and empty
// tag lists render as "".
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}
