package model

import (
	"fmt"

	"github.com/schedcu/scheduler/internal/validation"
)

// BuildError is the sum-type result of a failed Build call (spec Design
// Notes §9: "replace exceptions with a single result type Ok(Model) |
// Err(BuildError)"). Kind mirrors the fatal §7 error kinds; Go expresses
// the sum type as a single struct rather than tagged variants, since every
// build-time fatal error carries the same (kind, message) shape.
type BuildError struct {
	Kind    validation.MessageCode
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newBuildError(kind validation.MessageCode, format string, args ...interface{}) *BuildError {
	return &BuildError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
