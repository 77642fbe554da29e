package engine

import (
	"strings"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
)

// ExecutionError is returned by Handle when a dispatch is rejected in strict
// mode or an action failure propagates
type ExecutionError struct {
	Feedback  command.FeedbackType
	Command   string
	Arguments []string
	RequestID string
	cause     error
}

// Sentinels for errors.Is, matched by feedback type
var (
	ErrNonExistent       = &ExecutionError{Feedback: command.FeedbackNonExistent}
	ErrUnverified        = &ExecutionError{Feedback: command.FeedbackUnverified}
	ErrFormat            = &ExecutionError{Feedback: command.FeedbackFormat}
	ErrInvalidIdentifier = &ExecutionError{Feedback: command.FeedbackInvalidIdentifier}
	ErrMissingArgument   = &ExecutionError{Feedback: command.FeedbackMissingArgument}
	ErrRuleViolation     = &ExecutionError{Feedback: command.FeedbackRuleViolation}
	ErrParse             = &ExecutionError{Feedback: command.FeedbackParseFailure}
	ErrUnauthorized      = &ExecutionError{Feedback: command.FeedbackUnauthorized}
	ErrActionFailed      = &ExecutionError{Feedback: command.FeedbackActionFailure}
)

func newExecutionError(fb command.FeedbackType, cmd string, args []string, requestID string, cause error) *ExecutionError {
	return &ExecutionError{
		Feedback:  fb,
		Command:   cmd,
		Arguments: append([]string(nil), args...),
		RequestID: requestID,
		cause:     cause,
	}
}

func (e *ExecutionError) Error() string {
	msg := e.Feedback.Message(e.Command)
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}
	if len(e.Arguments) > 0 {
		return msg + " (" + strings.Join(e.Arguments, " ") + ")"
	}
	return msg
}

// Unwrap returns the underlying failure
func (e *ExecutionError) Unwrap() error {
	return e.cause
}

// Is matches sentinels of the same feedback type
func (e *ExecutionError) Is(target error) bool {
	t, ok := target.(*ExecutionError)
	if !ok {
		return false
	}
	return t.Command == "" && t.cause == nil && t.Feedback == e.Feedback
}
