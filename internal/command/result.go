package command

import (
	"sync"
	"time"
)

// Result is the outcome of one action
type Result struct {
	Action   string
	Value    any
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the action completed without error
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Capture collects the results of one dispatch. It is safe for concurrent
// use by actions running in the same group.
type Capture struct {
	mu      sync.Mutex
	results []Result
}

// NewCapture creates an empty capture
func NewCapture() *Capture {
	return &Capture{}
}

// Add appends a result
func (c *Capture) Add(r Result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
}

// Get returns the result recorded for an action
func (c *Capture) Get(actionID string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.results {
		if r.Action == actionID {
			return r, true
		}
	}
	return Result{}, false
}

// Results returns all results in completion order
func (c *Capture) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result, len(c.results))
	copy(out, c.results)
	return out
}

// Len returns the number of results
func (c *Capture) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

// Failures returns the failed results
func (c *Capture) Failures() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Result
	for _, r := range c.results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Succeeded reports whether no action failed
func (c *Capture) Succeeded() bool {
	return len(c.Failures()) == 0
}
