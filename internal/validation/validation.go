// Package validation provides validation result types and error reporting
// shared by the CSV loader, eligibility builder and model builder. It is
// adapted from the teacher's validation package: the same three-level
// message model (errors/warnings/infos) plus a context bag, extended with
// the message codes this scheduling engine's error kinds need (see spec
// §7: schema errors, semantic inconsistency, time-off overlap, segment
// alignment/threshold failures).
package validation

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a validation message.
type Severity string

const (
	ERROR   Severity = "error"
	WARNING Severity = "warning"
	INFO    Severity = "info"
)

func (s Severity) String() string { return string(s) }

// MessageCode represents a known validation or build error kind.
type MessageCode string

const (
	MissingColumn            MessageCode = "MISSING_COLUMN"
	DuplicateID               MessageCode = "DUPLICATE_ID"
	IllegalValue               MessageCode = "ILLEGAL_VALUE"
	LegacyFieldRejected       MessageCode = "LEGACY_FIELD_REJECTED"
	SemanticInconsistency     MessageCode = "SEMANTIC_INCONSISTENCY"
	TimeOffOverlap            MessageCode = "TIME_OFF_OVERLAP"
	SegmentAlignmentFailure  MessageCode = "SEGMENT_ALIGNMENT_FAILURE"
	SegmentThresholdExceeded MessageCode = "SEGMENT_THRESHOLD_EXCEEDED"
	SkillModeConflict         MessageCode = "SKILL_MODE_CONFLICT"
)

func (mc MessageCode) String() string { return string(mc) }

// Message is a single validation or diagnostic entry.
type Message struct {
	Code    MessageCode
	Field   string
	Message string
}

// Result aggregates validation messages and contextual debug information
// accumulated while loading inputs or building the model.
type Result struct {
	Errors   []Message
	Warnings []Message
	Infos    []Message
	Context  map[string]interface{}
}

// NewResult creates an empty Result with initialized slices/map.
func NewResult() *Result {
	return &Result{
		Errors:   []Message{},
		Warnings: []Message{},
		Infos:    []Message{},
		Context:  map[string]interface{}{},
	}
}

func (r *Result) AddError(code MessageCode, field, format string, args ...interface{}) {
	r.Errors = append(r.Errors, Message{Code: code, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) AddWarning(code MessageCode, field, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Message{Code: code, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) AddInfo(code MessageCode, field, format string, args ...interface{}) {
	r.Infos = append(r.Infos, Message{Code: code, Field: field, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether the result contains any error messages.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// IsValid reports whether the result contains no error messages. Warnings
// and infos do not affect validity.
func (r *Result) IsValid() bool { return len(r.Errors) == 0 }

func (r *Result) SetContext(key string, value interface{}) {
	if r.Context == nil {
		r.Context = map[string]interface{}{}
	}
	r.Context[key] = value
}

// Merge folds other's messages and context into r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Infos = append(r.Infos, other.Infos...)
	for k, v := range other.Context {
		r.SetContext(k, v)
	}
}

// Summary renders a one-line human summary, used for stderr reporting.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s), %d info(s)", len(r.Errors), len(r.Warnings), len(r.Infos))
}

// FieldList renders the Field of every message matching code, joined with
// commas; used to build aggregate stderr reports (e.g. for TimeOffOverlap).
func (r *Result) FieldList(code MessageCode) string {
	var fields []string
	all := append(append(append([]Message{}, r.Errors...), r.Warnings...), r.Infos...)
	for _, m := range all {
		if m.Code == code {
			fields = append(fields, m.Field)
		}
	}
	return strings.Join(fields, ", ")
}
