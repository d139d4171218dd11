package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jimtonn/foldout/pkg/outline"
	"github.com/jimtonn/foldout/pkg/outline/command"
)

// keyMsg builds the key message bubbletea would send for name.
func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}

// press sends each key to m in order and returns the last command.
func press(m *editorModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

// tree renders the outline's text column with one dot per level.
func tree(m *editorModel) string {
	var lines []string
	for r, depth := range m.history.Outline().Rows() {
		s, _ := outline.ValueOf[string](r, m.text)
		if done, _ := outline.ValueOf[bool](r, m.check); done {
			s += "*"
		}
		lines = append(lines, strings.Repeat(".", depth)+s)
	}
	return strings.Join(lines, " ")
}

func newTestEditor(t *testing.T, save func(*outline.Outline) error) *editorModel {
	t.Helper()
	o, err := newOutline(DefaultConfig().Columns, []string{"one", "two", "three"})
	if err != nil {
		t.Fatal(err)
	}
	m := newEditorModel(command.NewHistory(o), "todo.json", save)
	t.Cleanup(m.Close)
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestEditorNavigation(t *testing.T) {
	m := newTestEditor(t, nil)
	if m.cursor != 0 || len(m.rows) != 3 {
		t.Fatalf("cursor = %d, rows = %d", m.cursor, len(m.rows))
	}
	press(m, "j", "j", "j")
	if m.cursor != 2 {
		t.Errorf("cursor after j j j = %d, want 2", m.cursor)
	}
	press(m, "k")
	if m.cursor != 1 {
		t.Errorf("cursor after k = %d, want 1", m.cursor)
	}
	press(m, "g")
	if m.cursor != 0 {
		t.Errorf("cursor after g = %d, want 0", m.cursor)
	}
	press(m, "G")
	if m.cursor != 2 {
		t.Errorf("cursor after G = %d, want 2", m.cursor)
	}
	if m.dirty {
		t.Error("moving the cursor should not mark the outline dirty")
	}
}

func TestEditorEditText(t *testing.T) {
	m := newTestEditor(t, nil)
	press(m, "j", "e")
	if m.mode != modeEdit || m.input.Value() != "two" {
		t.Fatalf("mode = %v, input = %q", m.mode, m.input.Value())
	}
	press(m, "!", "enter")
	if got := tree(m); got != "one two! three" {
		t.Errorf("tree = %q", got)
	}
	if m.mode != modeBrowse || !m.dirty || m.edits != 1 {
		t.Errorf("mode = %v, dirty = %v, edits = %d", m.mode, m.dirty, m.edits)
	}

	press(m, "e", "X", "esc")
	if got := tree(m); got != "one two! three" {
		t.Errorf("esc should cancel the edit, tree = %q", got)
	}
}

func TestEditorInsert(t *testing.T) {
	m := newTestEditor(t, nil)
	press(m, "o", "new")
	if m.mode != modeInsert || m.insertAt == nil || m.insertPos != 1 {
		t.Fatalf("mode = %v, insertAt = %v, pos = %d", m.mode, m.insertAt, m.insertPos)
	}
	press(m, "enter")
	if m.statusErr {
		t.Fatalf("insert failed: %s", m.status)
	}
	if got := tree(m); got != "one new two three" {
		t.Errorf("after o: %q", got)
	}
	if m.mode != modeBrowse || m.insertAt != nil {
		t.Errorf("insert prompt should close, mode = %v", m.mode)
	}
	if m.cursor != 1 {
		t.Errorf("cursor should follow the inserted row, got %d", m.cursor)
	}

	press(m, "O", "top", "enter")
	if got := tree(m); got != "one top new two three" {
		t.Errorf("after O: %q", got)
	}

	press(m, "a", "child", "enter")
	if got := tree(m); got != "one top .child new two three" {
		t.Errorf("after a: %q", got)
	}
	if m.edits != 3 {
		t.Errorf("edits = %d, want 3", m.edits)
	}
}

func TestEditorInsertIntoEmpty(t *testing.T) {
	o, err := newOutline(DefaultConfig().Columns, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := newEditorModel(command.NewHistory(o), "empty.json", nil)
	defer m.Close()

	if !strings.Contains(m.View(), "empty outline") {
		t.Error("empty outline should show a hint")
	}
	press(m, "o", "first", "enter")
	if got := tree(m); got != "first" {
		t.Errorf("tree = %q", got)
	}
}

func TestEditorToggleAndUndo(t *testing.T) {
	m := newTestEditor(t, nil)
	press(m, "x")
	if got := tree(m); got != "one* two three" {
		t.Errorf("after x: %q", got)
	}
	press(m, " ")
	if got := tree(m); got != "one two three" {
		t.Errorf("after space: %q", got)
	}

	press(m, "u")
	if got := tree(m); got != "one* two three" {
		t.Errorf("after undo: %q", got)
	}
	press(m, "ctrl+r")
	if got := tree(m); got != "one two three" {
		t.Errorf("after redo: %q", got)
	}
	press(m, "U")
	if m.status != "nothing to redo" {
		t.Errorf("status = %q", m.status)
	}
	press(m, "u", "u", "u")
	if m.status != "nothing to undo" {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorIndentOutdent(t *testing.T) {
	m := newTestEditor(t, nil)
	press(m, "tab")
	if got := tree(m); got != "one two three" {
		t.Errorf("first row cannot be indented: %q", got)
	}

	press(m, "j", "tab")
	if got := tree(m); got != "one .two three" {
		t.Errorf("after indent: %q", got)
	}
	if r := m.current(); r == nil || r.Parent().IsRoot() {
		t.Error("cursor should stay on the moved row")
	}

	press(m, "shift+tab")
	if got := tree(m); got != "one two three" {
		t.Errorf("after outdent: %q", got)
	}
	press(m, "shift+tab")
	if got := tree(m); got != "one two three" {
		t.Errorf("top-level row cannot be outdented: %q", got)
	}
}

func TestEditorReorder(t *testing.T) {
	m := newTestEditor(t, nil)
	press(m, "J")
	if got := tree(m); got != "two one three" {
		t.Errorf("after J: %q", got)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	press(m, "J", "J")
	if got := tree(m); got != "two three one" {
		t.Errorf("last row cannot move down: %q", got)
	}
	press(m, "K")
	if got := tree(m); got != "two one three" {
		t.Errorf("after K: %q", got)
	}
}

func TestEditorDelete(t *testing.T) {
	m := newTestEditor(t, nil)
	press(m, "j", "tab", "k")
	press(m, "d")
	if !m.statusErr || !strings.Contains(m.status, "children") {
		t.Errorf("deleting a parent should fail, status = %q", m.status)
	}
	if got := tree(m); got != "one .two three" {
		t.Errorf("tree = %q", got)
	}

	press(m, "j", "d")
	if got := tree(m); got != "one three" {
		t.Errorf("after delete: %q", got)
	}
	press(m, "u")
	if got := tree(m); got != "one .two three" {
		t.Errorf("undo should restore the row in place: %q", got)
	}
}

func TestEditorSaveAndQuit(t *testing.T) {
	var saved int
	m := newTestEditor(t, func(o *outline.Outline) error {
		saved = o.Len()
		return nil
	})

	if !isQuit(press(m, "q")) {
		t.Fatal("q on a clean outline should quit")
	}

	press(m, "x")
	if isQuit(press(m, "q")) {
		t.Fatal("q with unsaved changes should ask first")
	}
	if !m.confirmQuit || !strings.Contains(m.status, "unsaved") {
		t.Errorf("confirmQuit = %v, status = %q", m.confirmQuit, m.status)
	}
	press(m, "j")
	if m.confirmQuit {
		t.Error("any other key should reset the quit confirmation")
	}
	if isQuit(press(m, "q")) {
		t.Fatal("confirmation should be asked again")
	}
	if !isQuit(press(m, "q")) {
		t.Fatal("second q should quit")
	}

	press(m, "s")
	if saved != 3 || m.dirty {
		t.Errorf("saved = %d, dirty = %v", saved, m.dirty)
	}
	if !strings.Contains(m.status, "saved todo.json") {
		t.Errorf("status = %q", m.status)
	}
	if !isQuit(press(m, "ctrl+c")) {
		t.Error("ctrl+c should always quit")
	}
}

func TestEditorSaveError(t *testing.T) {
	m := newTestEditor(t, func(*outline.Outline) error { return errors.New("disk full") })
	press(m, "x", "s")
	if !m.statusErr || m.status != "disk full" || !m.dirty {
		t.Errorf("status = %q, err = %v, dirty = %v", m.status, m.statusErr, m.dirty)
	}
}

func TestEditorView(t *testing.T) {
	m := newTestEditor(t, nil)
	press(m, "x")
	view := m.View()
	for _, want := range []string{"todo.json *", "▸ ", "[x]", "one", "three", "[1/3]", "changed Done"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	press(m, "e")
	if !strings.Contains(m.View(), "one") || m.mode != modeEdit {
		t.Error("edit mode should show the input")
	}
}

func TestEditorWindowSize(t *testing.T) {
	m := newTestEditor(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 10})
	if m.height != 5 {
		t.Errorf("height = %d, want 5", m.height)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.height != 32 || m.input.Width != 96 {
		t.Errorf("height = %d, width = %d", m.height, m.input.Width)
	}
}

func TestEditorFollowsExternalChanges(t *testing.T) {
	m := newTestEditor(t, nil)
	o := m.history.Outline()
	if _, err := o.InsertRow(o.Root(), 3, map[*outline.Column]any{m.text: "four"}); err != nil {
		t.Fatal(err)
	}
	if len(m.rows) != 4 || m.cursor != 3 {
		t.Errorf("rows = %d, cursor = %d", len(m.rows), m.cursor)
	}

	col := outline.NewNumberColumn("Hours")
	if err := o.AddColumn(col, nil); err != nil {
		t.Fatal(err)
	}
	if len(m.events) != 2 {
		t.Errorf("events = %v", m.events)
	}
	if !strings.Contains(m.events[len(m.events)-1], "added column") {
		t.Errorf("last event = %q", m.events[len(m.events)-1])
	}
}
