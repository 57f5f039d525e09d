// Package process implements the process table for the simulated kernel.
//
// A Process is a bookkeeping record, not an OS thread: it carries the
// scheduling attributes (priority, remaining burst, state) that the
// scheduler mutates cycle by cycle. Records are never removed from the
// table; terminated processes are retained for listing and audit.
//
// All table operations are safe for concurrent use. State transitions are
// validated against the process state machine and are all-or-nothing: an
// illegal transition returns ErrInvalidTransition and leaves the record
// untouched.
package process
