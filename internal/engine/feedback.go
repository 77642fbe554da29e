package engine

import (
	"context"
	"errors"
	"time"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
)

// Report describes one finished or rejected dispatch
type Report struct {
	RequestID string
	Timestamp time.Time
	Duration  time.Duration
	Commander string
	// Command is the matched command path, or the raw name if nothing matched
	Command   string
	Arguments []string
	Handled   bool
	Feedback  command.FeedbackType
	Message   string
	// Capture is nil for dispatches rejected before execution
	Capture *command.Capture
	Err     error
}

// Feedback receives a Report after every dispatch
type Feedback interface {
	Deliver(ctx context.Context, report Report) error
}

// FeedbackFunc adapts a function to Feedback
type FeedbackFunc func(ctx context.Context, report Report) error

// Deliver calls f
func (f FeedbackFunc) Deliver(ctx context.Context, report Report) error {
	return f(ctx, report)
}

// MultiFeedback delivers to every sink and joins their errors
func MultiFeedback(sinks ...Feedback) Feedback {
	return FeedbackFunc(func(ctx context.Context, report Report) error {
		var errs []error
		for _, s := range sinks {
			if s == nil {
				continue
			}
			if err := s.Deliver(ctx, report); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
