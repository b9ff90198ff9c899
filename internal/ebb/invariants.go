package ebb

import ebberrors "github.com/ebbvc/ebb/internal/errors"

// invariant panics with an *ebberrors.InvariantViolation if cond is false.
// It exists so every file in this package can write a one-line assertion
// without fully qualifying the errors package each time.
func invariant(cond bool, format string, args ...any) {
	ebberrors.Invariant(cond, format, args...)
}
