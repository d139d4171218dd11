// Package command wraps outline edits as invertible commands and keeps an
// undo/redo history.
//
// # Commands
//
// Each [Command] applies one outline operation and captures, while doing
// so, the state its reverse needs: the removed column's values, the removed
// row's former parent and position, a cell's previous value. That state
// cannot be recovered once the edit has happened.
//
//	AddColumn               <-> RemoveColumn
//	RemoveColumn            <-> AddColumnAndRestoreData
//	InsertRow / RestoreRow  <-> RemoveRow
//	ReparentRow             <-> ReparentRow
//	ChangeColumnTitle       <-> ChangeColumnTitle
//	ChangeRowValue          <-> ChangeRowValue
//
// Removing a row and undoing the removal puts back the same *Row value, so
// older history entries that refer to it stay valid.
//
// # History
//
// [History] runs commands and stores the command to reverse next on each
// stack:
//
//	h := command.NewHistory(o)
//	ins := command.NewInsertRow(o.Root(), 0, nil)
//	_ = h.Run(ins)
//	_ = h.Undo() // row removed
//	_ = h.Redo() // same row restored
//
// Running a new command after an undo discards everything that could have
// been redone. There is no history limit, transaction or coalescing.
package command
