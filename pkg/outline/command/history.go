package command

import (
	"fmt"

	"github.com/jimtonn/foldout/pkg/observability"
	"github.com/jimtonn/foldout/pkg/outline"
)

// History runs commands against one outline and keeps undo/redo stacks.
//
// Both stacks hold commands ready to be reversed: Undo pops from executed,
// runs the reverse and pushes that reverse onto undone; Redo does the
// mirror image. No forward/backward pairs are stored.
//
// Every Run, Undo and Redo is reported to [observability.History]. History
// is not safe for concurrent use.
type History struct {
	outline  *outline.Outline
	executed []Command
	undone   []Command
}

// NewHistory returns an empty history editing o.
func NewHistory(o *outline.Outline) *History {
	return &History{outline: o}
}

// Outline returns the outline the history edits.
func (h *History) Outline() *outline.Outline { return h.outline }

// CanUndo reports whether Undo has anything to do.
func (h *History) CanUndo() bool { return len(h.executed) > 0 }

// CanRedo reports whether Redo has anything to do.
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

// Run applies cmd, records it for undo and discards the redo stack. A
// command that fails is not recorded and the redo stack is kept.
func (h *History) Run(cmd Command) error {
	if cmd == nil {
		err := fmt.Errorf("run: %w", outline.ErrNullArgument)
		observability.History().OnRun(Describe(cmd), err)
		return err
	}
	err := cmd.Do(h.outline)
	observability.History().OnRun(Describe(cmd), err)
	if err != nil {
		return err
	}
	h.executed = append(h.executed, cmd)
	h.undone = nil
	return nil
}

// Undo reverses the most recent command. It is a no-op when there is
// nothing to undo. If the reverse fails the entry stays on the undo stack.
func (h *History) Undo() error {
	last, _, err := step(h.outline, &h.executed, &h.undone)
	if last != nil {
		observability.History().OnUndo(Describe(last), err)
	}
	if err != nil {
		return fmt.Errorf("undo %s: %w", Describe(last), err)
	}
	return nil
}

// Redo reapplies the most recently undone command. It is a no-op when
// there is nothing to redo. If the reapplication fails the entry stays on
// the redo stack.
func (h *History) Redo() error {
	last, rev, err := step(h.outline, &h.undone, &h.executed)
	if last != nil {
		observability.History().OnRedo(Describe(rev), err)
	}
	if err != nil {
		return fmt.Errorf("redo %s: %w", Describe(rev), err)
	}
	return nil
}

// step pops the top of from, runs its reverse and pushes the reverse onto
// to. It returns the popped entry and its reverse. from is left untouched
// when the reverse fails.
func step(o *outline.Outline, from, to *[]Command) (last, rev Command, err error) {
	if len(*from) == 0 {
		return nil, nil, nil
	}
	last = (*from)[len(*from)-1]
	rev = last.Reverse()
	if err := rev.Do(o); err != nil {
		return last, rev, err
	}
	*from = (*from)[:len(*from)-1]
	*to = append(*to, rev)
	return last, rev, nil
}
