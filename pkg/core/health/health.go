// Package health runs diagnostic checks against the components a Delegate
// host wires together (command tree, audit store, permission file).
package health

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Status is the outcome of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// rank orders statuses from best to worst
func (s Status) rank() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// Result is the outcome of a single check
type Result struct {
	Name     string
	Status   Status
	Message  string
	Duration time.Duration
	Details  map[string]interface{}
}

// CheckFunc inspects one component
type CheckFunc func(ctx context.Context) Result

// Registry holds named checks and runs them together
type Registry struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	service string
	version string
}

// NewRegistry creates an empty registry for a service
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checks:  make(map[string]CheckFunc),
		service: service,
		version: version,
	}
}

// Register adds or replaces a check
func (r *Registry) Register(name string, fn CheckFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = fn
}

// Len returns the number of registered checks
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.checks)
}

// Check runs all checks concurrently. Results are sorted by name and the
// report status is the worst individual status.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checks := make(map[string]CheckFunc, len(r.checks))
	for name, fn := range r.checks {
		checks[name] = fn
	}
	r.mu.RUnlock()

	report := &Report{
		Service:   r.service,
		Version:   r.version,
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Results:   make([]Result, 0, len(checks)),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for name, fn := range checks {
		wg.Add(1)
		go func(name string, fn CheckFunc) {
			defer wg.Done()
			result := run(ctx, name, fn)
			mu.Lock()
			report.Results = append(report.Results, result)
			mu.Unlock()
		}(name, fn)
	}
	wg.Wait()

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Name < report.Results[j].Name
	})
	for _, result := range report.Results {
		if result.Status.rank() > report.Status.rank() {
			report.Status = result.Status
		}
	}
	return report
}

// run executes one check, turning a panic into an unhealthy result
func run(ctx context.Context, name string, fn CheckFunc) (result Result) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			result = Result{Status: StatusUnhealthy, Message: fmt.Sprintf("check panicked: %v", rec)}
		}
		result.Name = name
		result.Duration = time.Since(start)
		if result.Status == "" {
			result.Status = StatusHealthy
		}
	}()
	return fn(ctx)
}

// Report is the combined outcome of all checks
type Report struct {
	Service   string
	Version   string
	Status    Status
	Timestamp time.Time
	Results   []Result
}

// Healthy reports whether no check failed outright
func (r *Report) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// String renders one line per check
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s\n", r.Service, r.Version, r.Status)
	for _, result := range r.Results {
		fmt.Fprintf(&b, "  %-12s %-9s %s\n", result.Name, result.Status, result.Message)
	}
	return b.String()
}

// ErrorCheck wraps a function returning an error. A nil error is healthy.
func ErrorCheck(fn func(ctx context.Context) error, okMessage string) CheckFunc {
	return func(ctx context.Context) Result {
		if err := fn(ctx); err != nil {
			return Result{Status: StatusUnhealthy, Message: err.Error()}
		}
		return Result{Status: StatusHealthy, Message: okMessage}
	}
}

// FileCheck verifies that path exists and is a regular file. An empty path
// is reported as degraded when optional is set.
func FileCheck(path string, optional bool) CheckFunc {
	return func(ctx context.Context) Result {
		if path == "" {
			if optional {
				return Result{Status: StatusDegraded, Message: "not configured"}
			}
			return Result{Status: StatusUnhealthy, Message: "no path configured"}
		}
		info, err := os.Stat(path)
		if err != nil {
			return Result{Status: StatusUnhealthy, Message: err.Error(), Details: map[string]interface{}{"path": path}}
		}
		if info.IsDir() {
			return Result{Status: StatusUnhealthy, Message: path + " is a directory"}
		}
		return Result{
			Status:  StatusHealthy,
			Message: path,
			Details: map[string]interface{}{"path": path, "size": info.Size()},
		}
	}
}

// Disabled returns a check that reports a component switched off in config
func Disabled() CheckFunc {
	return func(ctx context.Context) Result {
		return Result{Status: StatusDegraded, Message: "disabled"}
	}
}
