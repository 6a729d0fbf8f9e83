// Package harnesserr collects the sentinel error values the harness tests
// against with errors.Is, one per error kind in the design's error table.
package harnesserr

import "errors"

var (
	// ErrConfigLoadFailure means the initial .config could not be read; fatal.
	ErrConfigLoadFailure = errors.New("harness: initial configuration load failed")

	// ErrEmptyMenuIterator means the model yielded no prompt-bearing menus.
	ErrEmptyMenuIterator = errors.New("harness: model produced no prompt-bearing menus")

	// ErrNoCandidates means the candidate count was zero at conflict construction.
	ErrNoCandidates = errors.New("harness: no conflict candidates available")

	// ErrApplyFailure means apply(diagnosis) returned false; non-fatal.
	ErrApplyFailure = errors.New("harness: diagnosis apply failed")

	// ErrResetFailure means a configuration reset could not reload its file;
	// non-fatal. A non-zero post-reset compare is flagged separately by the
	// Diagnosis Verifier, not through this error.
	ErrResetFailure = errors.New("harness: configuration reset left a mismatch")

	// ErrIOError wraps a CSV or diagnosis-file I/O failure; logged, non-aborting.
	ErrIOError = errors.New("harness: I/O failure")

	// ErrInvariantViolation means an invariant the generator depends on did
	// not hold (e.g. zero blocked values on a claimed candidate); fatal.
	ErrInvariantViolation = errors.New("harness: invariant violation")
)
