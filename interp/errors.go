package interp

import "errors"

// ErrMaxIterations is returned when a loop exceeds the configured
// iteration cap (spec.md §4.3 safety caps).
var ErrMaxIterations = errors.New("interp: maximum loop iterations exceeded")

// ErrMaxCallDepth is returned when a call chain exceeds the
// configured call-stack depth cap.
var ErrMaxCallDepth = errors.New("interp: maximum call depth exceeded")

// ErrCancelled is returned when the evaluation's context is done.
var ErrCancelled = errors.New("interp: evaluation cancelled")
