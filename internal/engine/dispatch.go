package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/rule"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/logging"
)

// DispatchInfo is one invocation supplied by the host
type DispatchInfo struct {
	Commander command.Commander
	Command   string
	Arguments []string
}

// dispatch carries the state of one Handle call
type dispatch struct {
	info       DispatchInfo
	requestID  string
	started    time.Time
	logger     *logging.Logger
	descriptor *command.Descriptor
	path       string
	tokens     []string
	report     Report
}

// rejection is a dispatch aborted before execution
type rejection struct {
	feedback command.FeedbackType
	cause    error
}

// Handle resolves info against the tree and executes the matched command.
// It reports false when the invocation was not handled. In strict mode a
// rejected dispatch returns an *ExecutionError instead. Action failures of
// commands without the catch-errors property always return an error.
func (e *Engine) Handle(ctx context.Context, info DispatchInfo) (bool, error) {
	report, err := e.Dispatch(ctx, info)
	return report.Handled, err
}

// Dispatch is Handle returning the full report, including the capture of
// executed commands
func (e *Engine) Dispatch(ctx context.Context, info DispatchInfo) (Report, error) {
	d := &dispatch{
		info:      info,
		requestID: uuid.NewString(),
		started:   time.Now(),
		path:      info.Command,
	}
	_, err := e.run(ctx, d)
	return d.report, err
}

func (e *Engine) run(ctx context.Context, d *dispatch) (bool, error) {
	info := d.info
	d.logger = e.logger.WithRequestID(d.requestID)
	d.logger.Debug("Dispatch received", "command", info.Command, "arguments", len(info.Arguments))

	node, pattern, remaining := e.tree.FindDeepest(info.Command, info.Arguments)
	if node == nil {
		return e.unmatched(ctx, d, command.FeedbackNonExistent)
	}
	d.path = pattern
	d.tokens = remaining

	descriptor, ok := node.Descriptor()
	if !ok {
		return e.unmatched(ctx, d, command.FeedbackUnverified)
	}
	d.descriptor = descriptor
	d.logger.Debug("Command matched", "path", pattern, "remaining", len(remaining))

	if len(remaining) > len(descriptor.Arguments()) {
		return e.reject(ctx, d, rejection{feedback: command.FeedbackNonExistent})
	}

	slots, rej := e.verify(d)
	if rej != nil {
		return e.reject(ctx, d, *rej)
	}

	args, rej := e.parse(d, slots)
	if rej != nil {
		return e.reject(ctx, d, *rej)
	}

	if !authorized(descriptor, info.Commander) {
		return e.reject(ctx, d, rejection{feedback: command.FeedbackUnauthorized})
	}

	return e.execute(ctx, d, args)
}

// unmatched handles a dispatch without a verified command to run
func (e *Engine) unmatched(ctx context.Context, d *dispatch, fb command.FeedbackType) (bool, error) {
	d.logger.Debug("Dispatch not matched", "command", d.info.Command, "feedback", fb.String())

	var err error
	if e.options.Strict {
		err = newExecutionError(fb, d.path, d.info.Arguments, d.requestID, nil)
	}
	e.deliver(ctx, d, Report{Feedback: fb, Err: err})
	return false, err
}

// verify places tokens into the declared argument slots and runs their
// rule chains
func (e *Engine) verify(d *dispatch) ([]*string, *rejection) {
	declared := d.descriptor.Arguments()
	slots := make([]*string, len(declared))

	named := false
	for i, token := range d.tokens {
		eq := strings.IndexByte(token, '=')
		if eq <= 0 {
			if named {
				return nil, &rejection{feedback: command.FeedbackFormat, cause: formatError(token, "positional argument after named argument")}
			}
			value := token
			slots[i] = &value
			continue
		}

		named = true
		id, value := token[:eq], token[eq+1:]
		_, idx, ok := d.descriptor.Argument(id)
		if !ok {
			return nil, &rejection{
				feedback: command.FeedbackInvalidIdentifier,
				cause: dlgerror.Newf("unknown argument identifier %q", id).
					WithCode(dlgerror.CodeInvalidIdentifier).
					WithDetail("identifier", id),
			}
		}
		if slots[idx] != nil {
			return nil, &rejection{feedback: command.FeedbackFormat, cause: formatError(token, "argument "+id+" given twice")}
		}
		slots[idx] = &value
	}

	ignoreMissing := d.descriptor.HasProperty(command.IgnoreNonPresent)
	for i, arg := range declared {
		raw := slots[i]
		if raw == nil {
			if !arg.IsOptional() && !ignoreMissing {
				return nil, &rejection{
					feedback: command.FeedbackMissingArgument,
					cause: dlgerror.Newf("missing argument %s of type %s", arg.Identifier(), arg.Type()).
						WithCode(dlgerror.CodeMissingArgument).
						WithDetail("argument", arg.Identifier()),
				}
			}
			continue
		}
		if err := rule.Evaluate(arg.Identifier(), arg.Rules(), *raw, e.options.CollectRuleViolations); err != nil {
			return nil, &rejection{feedback: command.FeedbackRuleViolation, cause: err}
		}
	}
	return slots, nil
}

// parse converts verified slots into typed arguments. Absent arguments
// with a default are bound to it; others are left out.
func (e *Engine) parse(d *dispatch, slots []*string) (command.Arguments, *rejection) {
	declared := d.descriptor.Arguments()
	args := make(command.Arguments, 0, len(declared))

	for i, arg := range declared {
		raw := slots[i]
		if raw == nil && !arg.HasDefault() {
			continue
		}
		value, usedDefault, err := arg.Parse(raw)
		if err != nil {
			return nil, &rejection{feedback: command.FeedbackParseFailure, cause: err}
		}
		args = append(args, command.ParsedArgument{ID: arg.Identifier(), Value: value, UsedDefault: usedDefault})
	}
	return args, nil
}

// authorized reports whether commander holds any declared tier
func authorized(descriptor *command.Descriptor, commander command.Commander) bool {
	tiers := descriptor.Permissions()
	if len(tiers) == 0 {
		return true
	}
	if commander == nil {
		return false
	}
	for _, tier := range tiers {
		if commander.HasPermission(tier) {
			return true
		}
	}
	return false
}

// reject runs the except-handlers of the matched command and reports the
// abort
func (e *Engine) reject(ctx context.Context, d *dispatch, r rejection) (bool, error) {
	d.logger.Debug("Dispatch rejected", "path", d.path, "feedback", r.feedback.String(), "error", r.cause)
	e.runExcepts(d, r.feedback)

	execErr := newExecutionError(r.feedback, d.path, d.tokens, d.requestID, r.cause)
	var err error
	if e.options.Strict {
		err = execErr
	}
	e.deliver(ctx, d, Report{Feedback: r.feedback, Err: execErr})
	return false, err
}

// runExcepts invokes every except-handler. Their failures never replace
// the abort reason.
func (e *Engine) runExcepts(d *dispatch, fb command.FeedbackType) {
	for _, handler := range d.descriptor.Excepts() {
		if handler.Handle == nil {
			continue
		}
		if err := e.callExcept(handler, d.info.Commander, fb, d.tokens); err != nil && e.options.Verbose {
			d.logger.Warn("Except handler failed", "handler", handler.ID, "path", d.path, "error", err)
		}
	}
}

func (e *Engine) callExcept(handler command.ExceptHandler, commander command.Commander, fb command.FeedbackType, tokens []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = dlgerror.Newf("except handler %s panicked: %v", handler.ID, r).WithCode(dlgerror.CodeInternal)
		}
	}()
	return handler.Handle(commander, fb, append([]string(nil), tokens...))
}

func formatError(token, reason string) error {
	return dlgerror.Newf("invalid token %q: %s", token, reason).
		WithCode(dlgerror.CodeDispatchFormat).
		WithDetail("token", token)
}
