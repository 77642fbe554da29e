// File: result.go
// Title: Validation Result Types
// Description: Defines the Result returned by every validator together with
//              the standard validation codes. Argument rules report their
//              verdicts through these types.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Reduced to the codes used by argument rules

package validation

import (
	"fmt"
	"strings"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
)

// Standard validation codes
const (
	CodeRequired = "VALIDATION_REQUIRED"
	CodeFormat   = "VALIDATION_FORMAT"
	CodeLength   = "VALIDATION_LENGTH"
	CodeRange    = "VALIDATION_RANGE"
	CodeType     = "VALIDATION_TYPE"
	CodePattern  = "VALIDATION_PATTERN"
	CodeChoice   = "VALIDATION_CHOICE"
	CodeCustom   = "VALIDATION_CUSTOM"
	CodeMismatch = "VALIDATION_MISMATCH"
)

// Result is the outcome of a validation
type Result struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
}

// Violation describes a single failed check
type Violation struct {
	Code     string      `json:"code"`
	Field    string      `json:"field,omitempty"`
	Message  string      `json:"message"`
	Value    interface{} `json:"value,omitempty"`
	Expected interface{} `json:"expected,omitempty"`
}

// Valid returns a passing result
func Valid() Result {
	return Result{Valid: true}
}

// Invalid returns a failing result with a single violation
func Invalid(code, message string) Result {
	return Result{
		Valid:      false,
		Violations: []Violation{{Code: code, Message: message}},
	}
}

// Invalidf is Invalid with a formatted message
func Invalidf(code, format string, args ...interface{}) Result {
	return Invalid(code, fmt.Sprintf(format, args...))
}

// AddViolation records another violation and marks the result invalid
func (r *Result) AddViolation(v Violation) *Result {
	r.Valid = false
	r.Violations = append(r.Violations, v)
	return r
}

// First returns the first violation, or nil for a valid result
func (r Result) First() *Violation {
	if len(r.Violations) == 0 {
		return nil
	}
	return &r.Violations[0]
}

// Messages returns all violation messages in order
func (r Result) Messages() []string {
	messages := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		messages[i] = v.Message
	}
	return messages
}

// HasCode reports whether any violation carries code
func (r Result) HasCode(code string) bool {
	for _, v := range r.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// ToError converts an invalid result into an error carrying code. All
// messages are joined so a collected result reports every violation.
func (r Result) ToError(code dlgerror.Code) error {
	if r.Valid {
		return nil
	}
	if len(r.Violations) == 0 {
		return dlgerror.New("validation failed").WithCode(code)
	}

	first := r.First()
	err := dlgerror.New(strings.Join(r.Messages(), "; ")).
		WithCode(code).
		WithDetail("validation_code", first.Code)
	if first.Field != "" {
		err = err.WithDetail("field", first.Field)
	}
	if first.Value != nil {
		err = err.WithDetail("value", first.Value)
	}
	if first.Expected != nil {
		err = err.WithDetail("expected", first.Expected)
	}
	if len(r.Violations) > 1 {
		err = err.WithDetail("total_violations", len(r.Violations))
	}
	return err
}

// String returns a compact description of the result
func (r Result) String() string {
	if r.Valid {
		return "Result{valid: true}"
	}
	return fmt.Sprintf("Result{valid: false, violations: %d, first: %s}", len(r.Violations), r.Violations[0].Message)
}

// Combine merges results, the combined result is valid only if all are
func Combine(results ...Result) Result {
	combined := Valid()
	for _, result := range results {
		if !result.Valid {
			combined.Valid = false
			combined.Violations = append(combined.Violations, result.Violations...)
		}
	}
	return combined
}
