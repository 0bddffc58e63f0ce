package usecase

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable is terminal for the current invocation: the raw fetch
// came back empty or a required column could not be resolved after fallback.
// No downstream stage runs and no stale data is shown.
var ErrDataUnavailable = errors.New("market data unavailable")

// TransformError is a structural failure during column derivation, such as a
// missing expected column after rename. Non-finite values produced by
// arithmetic are not errors; they propagate to presentation.
type TransformError struct {
	Stage string
	Err   error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s: %v", e.Stage, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

func transformErrorf(stage, format string, a ...interface{}) *TransformError {
	return &TransformError{Stage: stage, Err: fmt.Errorf(format, a...)}
}
