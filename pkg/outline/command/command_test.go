package command

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimtonn/foldout/pkg/outline"
)

// fixture is a small outline:
//
//	A      (content "a", done false)
//	  A1
//	  A2
//	B
type fixture struct {
	o             *outline.Outline
	content, done *outline.Column
	a, a1, a2, b  *outline.Row
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		o:       outline.New(),
		content: outline.NewTextColumn("Content"),
		done:    outline.NewCheckColumn("Done"),
	}
	require.NoError(t, f.o.AddColumn(f.content, nil))
	require.NoError(t, f.o.AddColumn(f.done, nil))

	insert := func(parent *outline.Row, pos int, text string) *outline.Row {
		r, err := f.o.InsertRow(parent, pos, map[*outline.Column]any{f.content: text})
		require.NoError(t, err)
		return r
	}
	f.a = insert(f.o.Root(), 0, "a")
	f.b = insert(f.o.Root(), 1, "b")
	f.a1 = insert(f.a, 0, "a1")
	f.a2 = insert(f.a, 1, "a2")
	return f
}

// state renders everything observable about an outline: the column set
// (ordered by ID, so it compares as a set), the tree shape and every value
// including the root's.
func state(o *outline.Outline) []string {
	cols := o.Columns()
	slices.SortFunc(cols, func(x, y *outline.Column) int { return strings.Compare(x.ID(), y.ID()) })

	var out []string
	for _, c := range cols {
		out = append(out, fmt.Sprintf("column %s %s %s", c.ID(), c.Kind(), c.Title()))
	}
	line := func(r *outline.Row, depth int) string {
		var b strings.Builder
		fmt.Fprintf(&b, "%d %s", depth, r.ID())
		for _, c := range cols {
			v, _ := r.Value(c)
			fmt.Fprintf(&b, " %v", v)
		}
		return b.String()
	}
	out = append(out, line(o.Root(), -1))
	for r, depth := range o.Rows() {
		out = append(out, line(r, depth))
	}
	return out
}

type commandCase struct {
	name  string
	setup func(t *testing.T, f *fixture) Command
}

func commandCases() []commandCase {
	return []commandCase{
		{"add column", func(t *testing.T, f *fixture) Command {
			return NewAddColumn(outline.NewTextColumn("Notes"))
		}},
		{"add tags column", func(t *testing.T, f *fixture) Command {
			return NewAddColumn(outline.NewTagsColumn("Tags"))
		}},
		{"remove column", func(t *testing.T, f *fixture) Command {
			return NewRemoveColumn(f.content)
		}},
		{"add column and restore data", func(t *testing.T, f *fixture) Command {
			return &AddColumnAndRestoreData{
				Column: outline.NewTagsColumn("Tags"),
				Values: map[*outline.Row]any{f.a1: []string{"x", "y"}},
			}
		}},
		{"change column title", func(t *testing.T, f *fixture) Command {
			return NewChangeColumnTitle(f.content, "Renamed")
		}},
		{"insert row", func(t *testing.T, f *fixture) Command {
			return NewInsertRow(f.a, 1, map[*outline.Column]any{f.content: "new"})
		}},
		{"insert row at end of root", func(t *testing.T, f *fixture) Command {
			return NewInsertRow(f.o.Root(), 2, nil)
		}},
		{"remove row", func(t *testing.T, f *fixture) Command {
			return NewRemoveRow(f.a1)
		}},
		{"remove last row", func(t *testing.T, f *fixture) Command {
			return NewRemoveRow(f.b)
		}},
		{"restore row", func(t *testing.T, f *fixture) Command {
			require.NoError(t, f.o.RemoveRow(f.b))
			return &RestoreRow{Row: f.b, Parent: f.a, Position: 2}
		}},
		{"reparent row", func(t *testing.T, f *fixture) Command {
			return NewReparentRow(f.b, f.a, 1)
		}},
		{"reparent row out of parent", func(t *testing.T, f *fixture) Command {
			return NewReparentRow(f.a2, f.o.Root(), 0)
		}},
		{"reorder within parent", func(t *testing.T, f *fixture) Command {
			return NewReparentRow(f.a1, f.a, 1)
		}},
		{"change row value", func(t *testing.T, f *fixture) Command {
			return NewChangeRowValue(f.a, f.content, "changed")
		}},
		{"toggle check", func(t *testing.T, f *fixture) Command {
			return NewChangeRowValue(f.a2, f.done, true)
		}},
	}
}

func TestCommandInvertibility(t *testing.T) {
	for _, tc := range commandCases() {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			cmd := tc.setup(t, f)
			before := state(f.o)

			require.NoError(t, cmd.Do(f.o))
			after := state(f.o)
			assert.NotEqual(t, before, after, "command should change the outline")

			rev := cmd.Reverse()
			require.NoError(t, rev.Do(f.o))
			assert.Equal(t, before, state(f.o))

			require.NoError(t, rev.Reverse().Do(f.o))
			assert.Equal(t, after, state(f.o))
		})
	}
}

func TestUndoRedoSymmetry(t *testing.T) {
	for _, tc := range commandCases() {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			h := NewHistory(f.o)
			cmd := tc.setup(t, f)
			before := state(f.o)

			require.NoError(t, h.Run(cmd))
			after := state(f.o)

			require.NoError(t, h.Undo())
			assert.Equal(t, before, state(f.o))
			require.NoError(t, h.Redo())
			assert.Equal(t, after, state(f.o))

			// A second round trip goes through the reversed entries.
			require.NoError(t, h.Undo())
			assert.Equal(t, before, state(f.o))
			require.NoError(t, h.Redo())
			assert.Equal(t, after, state(f.o))
		})
	}
}

func TestNewEditDiscardsRedo(t *testing.T) {
	f := newFixture(t)
	h := NewHistory(f.o)

	require.NoError(t, h.Run(NewInsertRow(f.o.Root(), 0, nil)))
	require.NoError(t, h.Undo())
	require.NoError(t, h.Run(NewChangeRowValue(f.b, f.content, "edited")))
	expected := state(f.o)

	require.NoError(t, h.Redo())
	assert.Equal(t, expected, state(f.o))
	assert.Equal(t, 4, f.o.Len())
}

func TestUndoAllRedoAll(t *testing.T) {
	f := newFixture(t)
	h := NewHistory(f.o)
	initial := state(f.o)

	ins := NewInsertRow(f.b, 0, map[*outline.Column]any{f.content: "b1"})
	tags := outline.NewTagsColumn("Tags")
	steps := []Command{
		ins,
		NewAddColumn(tags),
		NewReparentRow(f.a2, f.o.Root(), 2),
		NewRemoveColumn(f.done),
		NewChangeColumnTitle(f.content, "Text"),
	}
	for _, cmd := range steps {
		require.NoError(t, h.Run(cmd), Describe(cmd))
	}
	require.NoError(t, h.Run(NewChangeRowValue(ins.Row(), tags, []string{"t"})))
	require.NoError(t, h.Run(NewRemoveRow(ins.Row())))
	final := state(f.o)

	for h.CanUndo() {
		require.NoError(t, h.Undo())
	}
	assert.Equal(t, initial, state(f.o))

	for h.CanRedo() {
		require.NoError(t, h.Redo())
	}
	assert.Equal(t, final, state(f.o))
}

func TestRedoInsertRestoresSameRow(t *testing.T) {
	f := newFixture(t)
	h := NewHistory(f.o)
	ins := NewInsertRow(f.a, 0, nil)
	require.NoError(t, h.Run(ins))
	row := ins.Row()
	require.NotNil(t, row)

	// A later entry refers to the inserted row.
	require.NoError(t, h.Run(NewChangeRowValue(row, f.content, "x")))
	require.NoError(t, h.Undo())
	require.NoError(t, h.Undo())
	assert.False(t, f.o.Contains(row))

	require.NoError(t, h.Redo())
	require.NoError(t, h.Redo())
	assert.Same(t, row, f.a.Child(0))
	v, _ := outline.ValueOf[string](row, f.content)
	assert.Equal(t, "x", v)
}

func TestChangeRowValueClonesPrevious(t *testing.T) {
	o := outline.New()
	tags := outline.NewTagsColumn("Tags")
	require.NoError(t, o.AddColumn(tags, nil))
	original := []string{"a"}
	r, err := o.InsertRow(o.Root(), 0, map[*outline.Column]any{tags: original})
	require.NoError(t, err)

	h := NewHistory(o)
	require.NoError(t, h.Run(NewChangeRowValue(r, tags, []string{"b"})))
	original[0] = "mutated"

	require.NoError(t, h.Undo())
	v, _ := outline.ValueOf[[]string](r, tags)
	assert.Equal(t, []string{"a"}, v)
}

func TestFailedCommandLeavesOutline(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture) Command
		err   error
	}{
		{"duplicate column", func(f *fixture) Command { return NewAddColumn(f.content) }, outline.ErrDuplicateColumn},
		{"unknown column", func(f *fixture) Command { return NewRemoveColumn(outline.NewTextColumn("x")) }, outline.ErrUnknownColumn},
		{"remove parent", func(f *fixture) Command { return NewRemoveRow(f.a) }, outline.ErrHasChildren},
		{"remove root", func(f *fixture) Command { return NewRemoveRow(f.o.Root()) }, outline.ErrRootRow},
		{"remove nil", func(f *fixture) Command { return NewRemoveRow(nil) }, outline.ErrNullArgument},
		{"reparent root", func(f *fixture) Command { return NewReparentRow(f.o.Root(), f.a, 0) }, outline.ErrRootRow},
		{"reparent cycle", func(f *fixture) Command { return NewReparentRow(f.a, f.a1, 0) }, outline.ErrCycle},
		{"insert out of range", func(f *fixture) Command { return NewInsertRow(f.a, 3, nil) }, outline.ErrOutOfRange},
		{"change nil column title", func(f *fixture) Command { return NewChangeColumnTitle(nil, "x") }, outline.ErrNullArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			h := NewHistory(f.o)
			before := state(f.o)

			assert.ErrorIs(t, h.Run(tt.setup(f)), tt.err)
			assert.Equal(t, before, state(f.o))
			assert.False(t, h.CanUndo())
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{&AddColumn{}, "add-column"},
		{&RemoveColumn{}, "remove-column"},
		{&AddColumnAndRestoreData{}, "restore-column"},
		{&ChangeColumnTitle{}, "change-column-title"},
		{&InsertRow{}, "insert-row"},
		{&RemoveRow{}, "remove-row"},
		{&RestoreRow{}, "restore-row"},
		{&ReparentRow{}, "reparent-row"},
		{&ChangeRowValue{}, "change-row-value"},
		{nil, "none"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(tt.cmd))
	}
}
