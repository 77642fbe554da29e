// Package rule implements argument rules. A rule converts the raw argument
// text into an intermediate value and interprets that value as a verdict.
package rule

import (
	"github.com/PolyRocketMatt/Delegate-sub000/foundation/core/validation"
)

// MismatchMessage is reported when the intermediate value of a rule does
// not have the type its interpreter expects.
const MismatchMessage = "expected result of rule did not match"

// Rule validates raw argument input
type Rule interface {
	Name() string
	Apply(input string) validation.Result
}

// Func is a rule built from an apply step and a typed interpreter
type Func[T any] struct {
	name      string
	apply     func(input string) any
	interpret func(input string, value T) validation.Result
}

// New creates a rule. apply may return any value; if it is not a T the rule
// fails with MismatchMessage instead of panicking.
func New[T any](name string, apply func(input string) any, interpret func(input string, value T) validation.Result) *Func[T] {
	return &Func[T]{name: name, apply: apply, interpret: interpret}
}

// Name returns the rule name
func (f *Func[T]) Name() string {
	return f.name
}

// Apply runs the rule against input
func (f *Func[T]) Apply(input string) validation.Result {
	value, ok := f.apply(input).(T)
	if !ok {
		return validation.Result{
			Valid: false,
			Violations: []validation.Violation{{
				Code:    validation.CodeMismatch,
				Message: MismatchMessage,
				Value:   input,
			}},
		}
	}
	return f.interpret(input, value)
}

// Pass is the passing verdict
func Pass() validation.Result {
	return validation.Valid()
}

// Fail is a failing verdict with a formatted message
func Fail(code, format string, args ...any) validation.Result {
	return validation.Invalidf(code, format, args...)
}
