// internal/ledger/errors.go
package ledger

// ValidationError rejects malformed or missing input before any state is read.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError reports a violated per-day invariant. The message names the
// invariant so clients can render it directly.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// NotFoundError reports a missing record, e.g. clock-out without an open
// session.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

var (
	ErrLeaveFiled       = &ConflictError{Msg: "leave already filed today"}
	ErrAlreadyClockedIn = &ConflictError{Msg: "already clocked in today"}
	ErrNoOpenSession    = &NotFoundError{Msg: "no active clock-in found"}
)
