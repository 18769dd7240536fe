package patch

import "errors"

// ErrNilSequence is returned when a nil sequence is passed to an operation
// that requires both sides of a comparison to be present.
var ErrNilSequence = errors.New("patch: sequence must not be nil")
