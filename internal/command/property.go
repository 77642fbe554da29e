package command

// Property is a behavioural flag of a command
type Property string

const (
	// Async runs each precedence group on the worker pool
	Async Property = "async"
	// IgnoreNonPresent lets required arguments be omitted
	IgnoreNonPresent Property = "ignore-non-present"
	// CatchErrors keeps action failures as captured results instead of
	// raising them after the dispatch
	CatchErrors Property = "catch-errors"
)

// Known reports whether p is one of the defined properties
func (p Property) Known() bool {
	switch p {
	case Async, IgnoreNonPresent, CatchErrors:
		return true
	}
	return false
}
