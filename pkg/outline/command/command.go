package command

import (
	"fmt"

	"github.com/jimtonn/foldout/pkg/outline"
)

// Command is an invertible outline edit.
//
// Do applies the edit and records whatever its reverse needs. Reverse
// returns a new command whose Do undoes this one; reversing that command
// again yields the original forward effect. Reverse is only meaningful after
// a successful Do.
//
// The set of commands is closed: only the types in this package implement
// Command.
type Command interface {
	Do(o *outline.Outline) error
	Reverse() Command
	sealed()
}

// AddColumn activates a column with default values.
type AddColumn struct {
	Column *outline.Column
}

// NewAddColumn returns a command adding c with default values.
func NewAddColumn(c *outline.Column) *AddColumn { return &AddColumn{Column: c} }

func (cmd *AddColumn) Do(o *outline.Outline) error { return o.AddColumn(cmd.Column, nil) }
func (cmd *AddColumn) Reverse() Command            { return &RemoveColumn{Column: cmd.Column} }
func (*AddColumn) sealed()                         {}

// RemoveColumn deactivates a column, keeping a snapshot of every row's value
// so that the reverse restores the data.
type RemoveColumn struct {
	Column *outline.Column

	values map[*outline.Row]any
}

// NewRemoveColumn returns a command removing c.
func NewRemoveColumn(c *outline.Column) *RemoveColumn { return &RemoveColumn{Column: c} }

func (cmd *RemoveColumn) Do(o *outline.Outline) error {
	values, err := o.RemoveColumn(cmd.Column)
	if err != nil {
		return err
	}
	cmd.values = values
	return nil
}

func (cmd *RemoveColumn) Reverse() Command {
	return &AddColumnAndRestoreData{Column: cmd.Column, Values: cmd.values}
}

func (*RemoveColumn) sealed() {}

// AddColumnAndRestoreData activates a column, taking each row's value from
// Values where present.
type AddColumnAndRestoreData struct {
	Column *outline.Column
	Values map[*outline.Row]any
}

func (cmd *AddColumnAndRestoreData) Do(o *outline.Outline) error {
	return o.AddColumn(cmd.Column, cmd.Values)
}

func (cmd *AddColumnAndRestoreData) Reverse() Command { return &RemoveColumn{Column: cmd.Column} }
func (*AddColumnAndRestoreData) sealed()               {}

// ChangeColumnTitle renames a column.
type ChangeColumnTitle struct {
	Column *outline.Column
	Title  string

	previous string
}

// NewChangeColumnTitle returns a command renaming c to title.
func NewChangeColumnTitle(c *outline.Column, title string) *ChangeColumnTitle {
	cmd := &ChangeColumnTitle{Column: c, Title: title}
	if c != nil {
		cmd.previous = c.Title()
	}
	return cmd
}

func (cmd *ChangeColumnTitle) Do(o *outline.Outline) error {
	if cmd.Column == nil {
		return fmt.Errorf("change column title: %w", outline.ErrNullArgument)
	}
	previous := cmd.Column.Title()
	if err := o.ChangeColumnTitle(cmd.Column, cmd.Title); err != nil {
		return err
	}
	cmd.previous = previous
	return nil
}

func (cmd *ChangeColumnTitle) Reverse() Command {
	return &ChangeColumnTitle{Column: cmd.Column, Title: cmd.previous, previous: cmd.Title}
}

func (*ChangeColumnTitle) sealed() {}

// InsertRow creates a row under Parent at Position with optional initial
// values. After Do, [InsertRow.Row] returns the created row.
type InsertRow struct {
	Parent   *outline.Row
	Position int
	Values   map[*outline.Column]any

	row *outline.Row
}

// NewInsertRow returns a command inserting a row under parent at position.
func NewInsertRow(parent *outline.Row, position int, values map[*outline.Column]any) *InsertRow {
	return &InsertRow{Parent: parent, Position: position, Values: values}
}

func (cmd *InsertRow) Do(o *outline.Outline) error {
	r, err := o.InsertRow(cmd.Parent, cmd.Position, cmd.Values)
	if err != nil {
		return err
	}
	cmd.row = r
	return nil
}

// Row returns the row created by Do, or nil before Do has succeeded.
func (cmd *InsertRow) Row() *outline.Row { return cmd.row }

func (cmd *InsertRow) Reverse() Command {
	return &RemoveRow{Row: cmd.row, parent: cmd.Parent, position: cmd.Position}
}

func (*InsertRow) sealed() {}

// RemoveRow detaches a childless row, remembering where it was so the
// reverse can put the same row back.
type RemoveRow struct {
	Row *outline.Row

	parent   *outline.Row
	position int
}

// NewRemoveRow returns a command removing r.
func NewRemoveRow(r *outline.Row) *RemoveRow {
	cmd := &RemoveRow{Row: r}
	if r != nil {
		cmd.parent, cmd.position = r.Parent(), r.Index()
	}
	return cmd
}

func (cmd *RemoveRow) Do(o *outline.Outline) error {
	if cmd.Row == nil {
		return fmt.Errorf("remove row: %w", outline.ErrNullArgument)
	}
	parent, position := cmd.Row.Parent(), cmd.Row.Index()
	if err := o.RemoveRow(cmd.Row); err != nil {
		return err
	}
	cmd.parent, cmd.position = parent, position
	return nil
}

func (cmd *RemoveRow) Reverse() Command {
	return &RestoreRow{Row: cmd.Row, Parent: cmd.parent, Position: cmd.position}
}

func (*RemoveRow) sealed() {}

// RestoreRow reattaches a removed row under Parent at Position.
type RestoreRow struct {
	Row      *outline.Row
	Parent   *outline.Row
	Position int
}

func (cmd *RestoreRow) Do(o *outline.Outline) error {
	return o.RestoreRow(cmd.Row, cmd.Parent, cmd.Position)
}

func (cmd *RestoreRow) Reverse() Command {
	return &RemoveRow{Row: cmd.Row, parent: cmd.Parent, position: cmd.Position}
}

func (*RestoreRow) sealed() {}

// ReparentRow moves a row under NewParent at Position.
type ReparentRow struct {
	Row       *outline.Row
	NewParent *outline.Row
	Position  int

	previousParent   *outline.Row
	previousPosition int
}

// NewReparentRow returns a command moving r under newParent at position.
func NewReparentRow(r, newParent *outline.Row, position int) *ReparentRow {
	cmd := &ReparentRow{Row: r, NewParent: newParent, Position: position}
	if r != nil {
		cmd.previousParent, cmd.previousPosition = r.Parent(), r.Index()
	}
	return cmd
}

func (cmd *ReparentRow) Do(o *outline.Outline) error {
	if cmd.Row == nil {
		return fmt.Errorf("reparent row: %w", outline.ErrNullArgument)
	}
	parent, position := cmd.Row.Parent(), cmd.Row.Index()
	if err := o.ReparentRow(cmd.Row, cmd.NewParent, cmd.Position); err != nil {
		return err
	}
	cmd.previousParent, cmd.previousPosition = parent, position
	return nil
}

func (cmd *ReparentRow) Reverse() Command {
	return &ReparentRow{
		Row:              cmd.Row,
		NewParent:        cmd.previousParent,
		Position:         cmd.previousPosition,
		previousParent:   cmd.NewParent,
		previousPosition: cmd.Position,
	}
}

func (*ReparentRow) sealed() {}

// ChangeRowValue sets one cell.
type ChangeRowValue struct {
	Row    *outline.Row
	Column *outline.Column
	Value  any

	previous any
}

// NewChangeRowValue returns a command setting r's value for c.
func NewChangeRowValue(r *outline.Row, c *outline.Column, value any) *ChangeRowValue {
	cmd := &ChangeRowValue{Row: r, Column: c, Value: value}
	if r != nil && c != nil {
		if v, ok := r.Value(c); ok {
			cmd.previous = c.CloneValue(v)
		}
	}
	return cmd
}

func (cmd *ChangeRowValue) Do(o *outline.Outline) error {
	if cmd.Row == nil || cmd.Column == nil {
		return fmt.Errorf("change row value: %w", outline.ErrNullArgument)
	}
	previous, _ := cmd.Row.Value(cmd.Column)
	previous = cmd.Column.CloneValue(previous)
	if err := o.ChangeRowValue(cmd.Row, cmd.Column, cmd.Value); err != nil {
		return err
	}
	cmd.previous = previous
	return nil
}

func (cmd *ChangeRowValue) Reverse() Command {
	return &ChangeRowValue{Row: cmd.Row, Column: cmd.Column, Value: cmd.previous, previous: cmd.Value}
}

func (*ChangeRowValue) sealed() {}

// Describe returns a short, stable name for the kind of cmd, suitable for
// logs and metric labels.
func Describe(cmd Command) string {
	switch cmd.(type) {
	case *AddColumn:
		return "add-column"
	case *RemoveColumn:
		return "remove-column"
	case *AddColumnAndRestoreData:
		return "restore-column"
	case *ChangeColumnTitle:
		return "change-column-title"
	case *InsertRow:
		return "insert-row"
	case *RemoveRow:
		return "remove-row"
	case *RestoreRow:
		return "restore-row"
	case *ReparentRow:
		return "reparent-row"
	case *ChangeRowValue:
		return "change-row-value"
	case nil:
		return "none"
	default:
		return fmt.Sprintf("%T", cmd)
	}
}
