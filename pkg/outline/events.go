package outline

import "slices"

// ColumnAdded is fired after [Outline.AddColumn] succeeds. Listeners should
// redraw the whole column; no per-cell events accompany it.
type ColumnAdded struct {
	Column *Column
}

// ColumnRemoved is fired after [Outline.RemoveColumn] succeeds. Values holds a
// clone of every row's value for the column, including the root row's.
type ColumnRemoved struct {
	Column *Column
	Values map[*Row]any
}

// ColumnTitleChanged is fired after [Outline.ChangeColumnTitle].
type ColumnTitleChanged struct {
	Column   *Column
	Previous string
	New      string
}

// RowAdded is fired after [Outline.InsertRow] or [Outline.RestoreRow].
type RowAdded struct {
	Row      *Row
	Parent   *Row
	Position int
}

// RowRemoved is fired after [Outline.RemoveRow]. Parent and Position describe
// where the row was before removal.
type RowRemoved struct {
	Row      *Row
	Parent   *Row
	Position int
}

// RowReparented is fired after [Outline.ReparentRow].
type RowReparented struct {
	Row              *Row
	PreviousParent   *Row
	NewParent        *Row
	PreviousPosition int
	Position         int
}

// RowDataChanged is fired after [Outline.ChangeRowValue].
type RowDataChanged struct {
	Row      *Row
	Column   *Column
	Previous any
	New      any
}

// DataChangeOf returns the previous and new values of e as T. ok is false if
// either value is not a T.
func DataChangeOf[T any](e RowDataChanged) (previous, next T, ok bool) {
	previous, okPrev := e.Previous.(T)
	next, okNext := e.New.(T)
	return previous, next, okPrev && okNext
}

// Listener receives every outline notification. Embed [NoopListener] to
// implement only the events of interest.
type Listener interface {
	ColumnAdded(ColumnAdded)
	ColumnRemoved(ColumnRemoved)
	ColumnTitleChanged(ColumnTitleChanged)
	RowAdded(RowAdded)
	RowRemoved(RowRemoved)
	RowReparented(RowReparented)
	RowDataChanged(RowDataChanged)
}

// NoopListener is a Listener that ignores every event.
type NoopListener struct{}

func (NoopListener) ColumnAdded(ColumnAdded)               {}
func (NoopListener) ColumnRemoved(ColumnRemoved)           {}
func (NoopListener) ColumnTitleChanged(ColumnTitleChanged) {}
func (NoopListener) RowAdded(RowAdded)                     {}
func (NoopListener) RowRemoved(RowRemoved)                 {}
func (NoopListener) RowReparented(RowReparented)           {}
func (NoopListener) RowDataChanged(RowDataChanged)         {}

// handlers is an ordered list of callbacks for one event kind.
type handlers[E any] struct {
	next    int
	entries []handler[E]
}

type handler[E any] struct {
	id int
	fn func(E)
}

func (h *handlers[E]) add(fn func(E)) (remove func()) {
	id := h.next
	h.next++
	h.entries = append(h.entries, handler[E]{id: id, fn: fn})
	return func() {
		h.entries = slices.DeleteFunc(h.entries, func(e handler[E]) bool { return e.id == id })
	}
}

// emit calls every handler in subscription order. Handlers added or removed
// during emit take effect from the next event.
func (h *handlers[E]) emit(e E) {
	for _, entry := range slices.Clone(h.entries) {
		entry.fn(e)
	}
}

type eventHub struct {
	columnAdded        handlers[ColumnAdded]
	columnRemoved      handlers[ColumnRemoved]
	columnTitleChanged handlers[ColumnTitleChanged]
	rowAdded           handlers[RowAdded]
	rowRemoved         handlers[RowRemoved]
	rowReparented      handlers[RowReparented]
	rowDataChanged     handlers[RowDataChanged]
}

// OnColumnAdded registers fn for [ColumnAdded] events and returns a function
// that unregisters it.
func (o *Outline) OnColumnAdded(fn func(ColumnAdded)) func() {
	return o.events.columnAdded.add(fn)
}

// OnColumnRemoved registers fn for [ColumnRemoved] events.
func (o *Outline) OnColumnRemoved(fn func(ColumnRemoved)) func() {
	return o.events.columnRemoved.add(fn)
}

// OnColumnTitleChanged registers fn for [ColumnTitleChanged] events.
func (o *Outline) OnColumnTitleChanged(fn func(ColumnTitleChanged)) func() {
	return o.events.columnTitleChanged.add(fn)
}

// OnRowAdded registers fn for [RowAdded] events.
func (o *Outline) OnRowAdded(fn func(RowAdded)) func() {
	return o.events.rowAdded.add(fn)
}

// OnRowRemoved registers fn for [RowRemoved] events.
func (o *Outline) OnRowRemoved(fn func(RowRemoved)) func() {
	return o.events.rowRemoved.add(fn)
}

// OnRowReparented registers fn for [RowReparented] events.
func (o *Outline) OnRowReparented(fn func(RowReparented)) func() {
	return o.events.rowReparented.add(fn)
}

// OnRowDataChanged registers fn for [RowDataChanged] events.
func (o *Outline) OnRowDataChanged(fn func(RowDataChanged)) func() {
	return o.events.rowDataChanged.add(fn)
}

// Subscribe registers l for all seven event kinds and returns a function
// that unregisters it from each of them.
func (o *Outline) Subscribe(l Listener) func() {
	removers := []func(){
		o.OnColumnAdded(l.ColumnAdded),
		o.OnColumnRemoved(l.ColumnRemoved),
		o.OnColumnTitleChanged(l.ColumnTitleChanged),
		o.OnRowAdded(l.RowAdded),
		o.OnRowRemoved(l.RowRemoved),
		o.OnRowReparented(l.RowReparented),
		o.OnRowDataChanged(l.RowDataChanged),
	}
	return func() {
		for _, remove := range removers {
			remove()
		}
	}
}
