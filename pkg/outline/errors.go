package outline

import "errors"

var (
	// ErrDuplicateColumn is returned by [Outline.AddColumn] when the column is
	// already part of the outline's active column set.
	ErrDuplicateColumn = errors.New("column already added to outline")

	// ErrUnknownColumn is returned by [Outline.RemoveColumn] and
	// [Outline.ChangeRowValue] when the column is not active in the outline.
	ErrUnknownColumn = errors.New("column not added to outline")

	// ErrNullArgument is returned when a nil row, parent, or column is passed
	// to a structural or schema operation.
	ErrNullArgument = errors.New("argument must not be nil")

	// ErrOutOfRange is returned by [Outline.InsertRow], [Outline.ReparentRow]
	// and [Outline.RestoreRow] when the position is outside [0, childCount].
	ErrOutOfRange = errors.New("position out of range")

	// ErrRootRow is returned when the root row is passed to an operation that
	// would remove or move it. The root row is fixed for the outline's lifetime.
	ErrRootRow = errors.New("root row cannot be removed or reparented")

	// ErrHasChildren is returned by [Outline.RemoveRow] when the row still has
	// children. Rows are never removed together with their subtree.
	ErrHasChildren = errors.New("row cannot be removed because it has children")

	// ErrNotFound is returned when a row is not attached to the outline's tree,
	// for example when the same row is removed twice or a removed row is used
	// as a parent.
	ErrNotFound = errors.New("row not found, it may have already been removed")

	// ErrRowAttached is returned by [Outline.RestoreRow] when the row is still
	// part of the tree.
	ErrRowAttached = errors.New("row is already attached")

	// ErrCycle is returned by [Outline.ReparentRow] when the new parent is the
	// row itself or one of its descendants.
	ErrCycle = errors.New("row cannot be moved beneath itself")
)
