package engine

import "errors"

var (
	// ErrInvalidSample rejects NaN or infinite pointer angles; state is left untouched
	ErrInvalidSample = errors.New("engine: invalid pointer sample")

	// ErrReentrant is returned when a sink calls back into the engine during dispatch
	ErrReentrant = errors.New("engine: reentrant call during event dispatch")

	// ErrNotDragging is returned by UpdateDrag/EndDrag outside a gesture
	ErrNotDragging = errors.New("engine: no drag in progress")
)
