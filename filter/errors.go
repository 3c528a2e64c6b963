package filter

import (
	"fmt"
)

type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates a compiled filter failed on a specific movie
	EvaluationError struct {
		Expression string
		MovieID    int64
		MovieTitle string
		Err        error
	}

	// UnknownPresetError is returned when a named preset does not exist
	UnknownPresetError struct {
		Name      string
		Available []string
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for '%s' on movie %d (%s): %v", e.Expression, e.MovieID, e.MovieTitle, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func (e *UnknownPresetError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown filter preset '%s' (no presets configured)", e.Name)
	}
	return fmt.Sprintf("unknown filter preset '%s' (available: %v)", e.Name, e.Available)
}
