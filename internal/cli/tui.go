package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jimtonn/foldout/pkg/outline"
	"github.com/jimtonn/foldout/pkg/outline/command"
)

// Editor styles
var (
	editorCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	editorDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	editorMaxEvents = 4
	editorHelp      = "↑/↓ move  ⏎ edit  o/O insert  a child  x toggle  d delete  tab/⇧tab indent  K/J reorder  u undo  U redo  s save  q quit"
)

type editMode int

const (
	modeBrowse editMode = iota
	modeEdit
	modeInsert
)

// visibleRow is one line of the editor: a row and its depth.
type visibleRow struct {
	row   *outline.Row
	depth int
}

// =============================================================================
// editorModel - Interactive outline editor
// =============================================================================

// editorModel is the bubbletea model behind "foldout edit". Every change
// goes through the command history, so it can be undone; the model
// learns about changes only from outline notifications.
type editorModel struct {
	history *command.History
	path    string
	save    func(*outline.Outline) error
	indent  string

	text  *outline.Column
	check *outline.Column

	rows   []visibleRow
	cursor int
	height int

	input     textinput.Model
	mode      editMode
	insertAt  *outline.Row
	insertPos int

	status      string
	statusErr   bool
	events      []string
	dirty       bool
	edits       int
	confirmQuit bool

	unsubscribe func()
}

// newEditorModel creates an editor over h's outline. save is called by
// the "s" key.
func newEditorModel(h *command.History, path string, save func(*outline.Outline) error) *editorModel {
	m := &editorModel{
		history: h,
		path:    path,
		save:    save,
		indent:  "  ",
		height:  20,
	}

	m.input = textinput.New()
	m.input.Prompt = "› "
	m.input.CharLimit = 500
	m.input.Width = 60

	m.unsubscribe = h.Outline().Subscribe(outlineWatcher{m})
	m.syncColumns()
	m.refresh()
	return m
}

// Close detaches the editor from the outline.
func (m *editorModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *editorModel) Init() tea.Cmd {
	return nil
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
		m.input.Width = max(msg.Width-4, 20)
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *editorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" && key != "esc" {
		m.confirmQuit = false
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		if m.dirty && !m.confirmQuit {
			m.confirmQuit = true
			m.setStatus("unsaved changes: press q again to quit, s to save")
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.rows)-1, 0)
	case "enter", "e":
		return m, m.startEdit()
	case "o":
		return m, m.startInsertSibling(1)
	case "O":
		return m, m.startInsertSibling(0)
	case "a":
		return m, m.startInsertChild()
	case "x", " ", "space":
		m.toggle()
	case "d":
		if r := m.current(); r != nil {
			m.run(command.NewRemoveRow(r))
		}
	case "tab":
		m.indentRow()
	case "shift+tab":
		m.outdentRow()
	case "K", "shift+up":
		m.moveRow(-1)
	case "J", "shift+down":
		m.moveRow(1)
	case "u":
		if !m.history.CanUndo() {
			m.setStatus("nothing to undo")
		} else if err := m.history.Undo(); err != nil {
			m.setError(err)
		}
	case "U", "ctrl+r":
		if !m.history.CanRedo() {
			m.setStatus("nothing to redo")
		} else if err := m.history.Redo(); err != nil {
			m.setError(err)
		}
	case "s":
		m.saveOutline()
	}
	return m, nil
}

func (m *editorModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.endInput()
		return m, nil
	case "enter":
		value, mode := m.input.Value(), m.mode
		parent, pos := m.insertAt, m.insertPos
		m.endInput()
		switch mode {
		case modeEdit:
			if r := m.current(); r != nil && m.text != nil {
				m.run(command.NewChangeRowValue(r, m.text, value))
			}
		case modeInsert:
			var values map[*outline.Column]any
			if m.text != nil {
				values = map[*outline.Column]any{m.text: value}
			}
			m.run(command.NewInsertRow(parent, pos, values))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// Actions
// =============================================================================

// run executes cmd through the history and reports failures in the status line.
func (m *editorModel) run(cmd command.Command) {
	if err := m.history.Run(cmd); err != nil {
		m.setError(err)
		return
	}
	m.edits++
}

func (m *editorModel) startEdit() tea.Cmd {
	r := m.current()
	if r == nil {
		return nil
	}
	if m.text == nil {
		m.setStatus("outline has no text column")
		return nil
	}
	s, _ := outline.ValueOf[string](r, m.text)
	m.mode = modeEdit
	m.input.Placeholder = ""
	m.input.SetValue(s)
	m.input.CursorEnd()
	return m.input.Focus()
}

// startInsertSibling prompts for a new row next to the current one;
// offset 1 inserts below, 0 above. An empty outline gets its first row.
func (m *editorModel) startInsertSibling(offset int) tea.Cmd {
	if r := m.current(); r != nil {
		return m.startInsert(r.Parent(), r.Index()+offset)
	}
	return m.startInsert(m.history.Outline().Root(), 0)
}

func (m *editorModel) startInsertChild() tea.Cmd {
	r := m.current()
	if r == nil {
		r = m.history.Outline().Root()
	}
	return m.startInsert(r, r.ChildCount())
}

func (m *editorModel) startInsert(parent *outline.Row, pos int) tea.Cmd {
	m.mode = modeInsert
	m.insertAt, m.insertPos = parent, pos
	m.input.Placeholder = "new row"
	m.input.SetValue("")
	return m.input.Focus()
}

func (m *editorModel) endInput() {
	m.mode = modeBrowse
	m.insertAt = nil
	m.input.Blur()
	m.input.SetValue("")
}

func (m *editorModel) toggle() {
	r := m.current()
	if r == nil {
		return
	}
	if m.check == nil {
		m.setStatus("outline has no check column")
		return
	}
	done, _ := outline.ValueOf[bool](r, m.check)
	m.run(command.NewChangeRowValue(r, m.check, !done))
}

// indentRow makes the current row the last child of its previous sibling.
func (m *editorModel) indentRow() {
	r := m.current()
	if r == nil || r.Index() == 0 {
		return
	}
	prev := r.Parent().Child(r.Index() - 1)
	m.run(command.NewReparentRow(r, prev, prev.ChildCount()))
}

// outdentRow moves the current row right after its parent.
func (m *editorModel) outdentRow() {
	r := m.current()
	if r == nil || r.Parent().IsRoot() {
		return
	}
	parent := r.Parent()
	m.run(command.NewReparentRow(r, parent.Parent(), parent.Index()+1))
}

// moveRow shifts the current row among its siblings.
func (m *editorModel) moveRow(delta int) {
	r := m.current()
	if r == nil {
		return
	}
	pos := r.Index() + delta
	if pos < 0 || pos >= r.Parent().ChildCount() {
		return
	}
	m.run(command.NewReparentRow(r, r.Parent(), pos))
}

func (m *editorModel) saveOutline() {
	if m.save == nil {
		return
	}
	if err := m.save(m.history.Outline()); err != nil {
		m.setError(err)
		return
	}
	m.dirty = false
	m.setStatus("saved " + m.path)
}

// =============================================================================
// State
// =============================================================================

func (m *editorModel) current() *outline.Row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].row
}

// refresh rebuilds the visible rows after a structural change.
func (m *editorModel) refresh() {
	m.rows = m.rows[:0]
	for r, depth := range m.history.Outline().Rows() {
		m.rows = append(m.rows, visibleRow{row: r, depth: depth})
	}
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
}

// focus moves the cursor to r if it is visible.
func (m *editorModel) focus(r *outline.Row) {
	for i, v := range m.rows {
		if v.row == r {
			m.cursor = i
			return
		}
	}
}

func (m *editorModel) syncColumns() {
	cols := m.history.Outline().Columns()
	m.text = firstOfKind(cols, outline.KindText)
	m.check = firstOfKind(cols, outline.KindCheck)
}

func (m *editorModel) changed(event string) {
	m.dirty = true
	m.events = append(m.events, event)
	if len(m.events) > editorMaxEvents {
		m.events = m.events[len(m.events)-editorMaxEvents:]
	}
}

func (m *editorModel) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *editorModel) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

// =============================================================================
// View
// =============================================================================

func (m *editorModel) View() string {
	var b strings.Builder

	title := m.path
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(editorDimStyle.Render("  (empty outline: press o to add a row)"))
		b.WriteString("\n")
	}

	offset := max(m.cursor-m.height+1, 0)
	end := min(offset+m.height, len(m.rows))
	cols := m.history.Outline().Columns()
	for i := offset; i < end; i++ {
		v := m.rows[i]
		line := strings.Repeat(m.indent, v.depth) + formatRow(v.row, cols)
		if i == m.cursor {
			b.WriteString(editorCursorStyle.Render("▸ ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode != modeBrowse {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		if m.statusErr {
			b.WriteString(editorErrorStyle.Render(m.status))
		} else {
			b.WriteString(StyleHighlight.Render(m.status))
		}
		b.WriteString("\n")
	}
	for _, e := range m.events {
		b.WriteString(editorDimStyle.Render("  " + e))
		b.WriteString("\n")
	}
	b.WriteString(editorDimStyle.Render(fmt.Sprintf("[%d/%d] ", min(m.cursor+1, len(m.rows)), len(m.rows)) + editorHelp))
	return b.String()
}

// =============================================================================
// outlineWatcher - Notification subscriber
// =============================================================================

// outlineWatcher keeps the editor in step with the outline.
type outlineWatcher struct {
	m *editorModel
}

func (w outlineWatcher) ColumnAdded(e outline.ColumnAdded) {
	w.m.syncColumns()
	w.m.changed("added column " + e.Column.String())
}

func (w outlineWatcher) ColumnRemoved(e outline.ColumnRemoved) {
	w.m.syncColumns()
	w.m.changed("removed column " + e.Column.String())
}

func (w outlineWatcher) ColumnTitleChanged(e outline.ColumnTitleChanged) {
	w.m.changed(fmt.Sprintf("renamed column %q to %q", e.Previous, e.New))
}

func (w outlineWatcher) RowAdded(e outline.RowAdded) {
	w.m.refresh()
	w.m.focus(e.Row)
	w.m.changed("added row")
}

func (w outlineWatcher) RowRemoved(e outline.RowRemoved) {
	w.m.refresh()
	w.m.changed("removed row")
}

func (w outlineWatcher) RowReparented(e outline.RowReparented) {
	w.m.refresh()
	w.m.focus(e.Row)
	w.m.changed("moved row")
}

func (w outlineWatcher) RowDataChanged(e outline.RowDataChanged) {
	w.m.focus(e.Row)
	w.m.changed("changed " + e.Column.String())
}
