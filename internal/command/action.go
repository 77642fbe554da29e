package command

import "context"

// ActionFunc is the work performed by an action. A non-nil error marks the
// result as failed.
type ActionFunc func(ctx context.Context, commander Commander, args Arguments) (any, error)

// Action is a unit of work with an execution precedence. Lower precedence
// runs first; actions with equal precedence form a group.
type Action struct {
	ID         string
	Precedence int
	Run        ActionFunc
}

// Trigger observes a finished dispatch
type Trigger struct {
	ID        string
	OnSuccess func(ctx context.Context, commander Commander, capture *Capture)
	OnFailure func(ctx context.Context, commander Commander, capture *Capture)
}

// ExceptFunc is invoked when a dispatch aborts before its actions run
type ExceptFunc func(commander Commander, feedback FeedbackType, args []string) error

// ExceptHandler is a named ExceptFunc
type ExceptHandler struct {
	ID     string
	Handle ExceptFunc
}
