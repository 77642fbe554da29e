// Package engine resolves text invocations against the command tree and
// executes the matched command.
package engine

import (
	"runtime"
	"time"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/attribute"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/compiler"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/tree"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/cache"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/logging"
)

// Options configures an Engine
type Options struct {
	Logger *logging.Logger

	// Verbose logs swallowed except-handler failures
	Verbose bool
	// Strict makes Handle return an ExecutionError for rejected dispatches
	// instead of reporting them as not handled
	Strict bool
	// MaxStealCount caps the worker pool of async commands
	MaxStealCount int
	// CollectRuleViolations reports every failing rule of an argument
	// instead of stopping at the first
	CollectRuleViolations bool
	// EnableAudit writes an audit log entry per dispatch
	EnableAudit bool

	Feedback Feedback
	Notifier tree.Notifier

	CompletionTTL     time.Duration
	CompletionEntries int
}

// DefaultOptions returns the engine defaults
func DefaultOptions() Options {
	return Options{
		MaxStealCount:     8,
		CompletionTTL:     30 * time.Second,
		CompletionEntries: 1024,
	}
}

// Engine owns the command tree and dispatches invocations against it
type Engine struct {
	tree        *tree.Tree
	compiler    *compiler.Compiler
	completions *cache.CompletionCache
	logger      *logging.Logger
	options     Options
	workers     int
}

// New creates an engine with an empty command tree
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.CompletionTTL <= 0 {
		opts.CompletionTTL = DefaultOptions().CompletionTTL
	}

	workers := runtime.NumCPU()
	if opts.MaxStealCount > 0 && opts.MaxStealCount < workers {
		workers = opts.MaxStealCount
	}

	return &Engine{
		tree:        tree.New(tree.Options{Logger: opts.Logger, Notifier: opts.Notifier}),
		compiler:    compiler.New(opts.Logger),
		completions: cache.NewCompletionCache(cache.CompletionConfig{TTL: opts.CompletionTTL, MaxEntries: opts.CompletionEntries}),
		logger:      opts.Logger.With("component", "engine"),
		options:     opts,
		workers:     workers,
	}
}

// Tree returns the command tree
func (e *Engine) Tree() *tree.Tree {
	return e.tree
}

// Workers returns the size of the worker pool used by async commands
func (e *Engine) Workers() int {
	return e.workers
}

// CompletionStats returns the completion cache hit and miss counters
func (e *Engine) CompletionStats() (hits, misses int64) {
	return e.completions.Stats()
}

// Compile verifies a chain as a root command
func (e *Engine) Compile(chain *attribute.Chain) (*tree.Node, error) {
	return e.compiler.Compile(nil, chain)
}

// CompileUnder verifies a chain as a child of parent
func (e *Engine) CompileUnder(parent *tree.Node, chain *attribute.Chain) (*tree.Node, error) {
	return e.compiler.Compile(parent, chain)
}

// Register adds a compiled node to the tree, merging with an existing
// command of the same name
func (e *Engine) Register(node *tree.Node) (bool, error) {
	if err := e.tree.Register(node); err != nil {
		e.logger.LogError(err)
		return false, err
	}
	e.completions.Invalidate()
	return true, nil
}

// Clear removes every registered command and drops cached completions
func (e *Engine) Clear() {
	e.tree.Clear()
	e.completions.Invalidate()
}

// Declare compiles and registers root commands. It stops at the first
// failure; commands registered before it stay registered.
func (e *Engine) Declare(chains ...*attribute.Chain) error {
	for _, chain := range chains {
		node, err := e.Compile(chain)
		if err != nil {
			return err
		}
		if _, err := e.Register(node); err != nil {
			return err
		}
	}
	return nil
}
