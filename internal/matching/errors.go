package matching

import "fmt"

// MatchError wraps a failure inside the matching pipeline with the stage
// that produced it. The orchestrator returns it instead of a partial result.
type MatchError struct {
	Stage string
	Cause error
}

func (e *MatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("match failed during %s: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("match failed during %s", e.Stage)
}

func (e *MatchError) Unwrap() error {
	return e.Cause
}
