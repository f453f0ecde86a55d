package paste

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Scheduler and Job operations. They signal
// user-level misuse (starting twice, stopping an idle paste, commanding
// a target with no paste) and are rendered as one-line diagnostics at
// the command layer, never crashing the process.
var (
	// ErrAlreadyActive is returned by a start on a job that is already
	// delivering lines.
	ErrAlreadyActive = errors.New("already pasting")

	// ErrNotActive is returned by a stop on a job that is idle.
	ErrNotActive = errors.New("not pasting")

	// ErrNotPasting is returned when a stop/resume targets a destination
	// with no registered job at all.
	ErrNotPasting = errors.New("no paste for target")
)

// InternalError marks a registry invariant violation: a state reachable
// only through a logic bug, never through user action. It is logged with
// a full stack trace instead of being surfaced as a normal diagnostic.
type InternalError struct {
	Op   string
	Dest Destination
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s: unknown target %s", e.Op, e.Dest)
}
