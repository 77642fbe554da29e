package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
)

// execute runs the precedence groups of the matched command, then its
// triggers, then delivers the report
func (e *Engine) execute(ctx context.Context, d *dispatch, args command.Arguments) (bool, error) {
	capture := command.NewCapture()
	async := d.descriptor.HasProperty(command.Async)
	catch := d.descriptor.HasProperty(command.CatchErrors)

	var failure error
	for _, group := range d.descriptor.ActionGroups() {
		if err := ctx.Err(); err != nil {
			failure = dlgerror.Wrap(err, "dispatch canceled").WithCode(dlgerror.CodeCanceled)
			break
		}

		d.logger.Debug("Running action group", "path", d.path, "precedence", group[0].Precedence, "size", len(group), "async", async)
		if async {
			failure = e.runGroupAsync(ctx, d, group, args, capture)
		} else {
			failure = e.runGroup(ctx, d, group, args, capture, !catch)
		}
		if failure != nil && !catch {
			break
		}
		failure = nil
	}

	var execErr error
	if failure != nil {
		if dlgerror.HasCode(failure, dlgerror.CodeCanceled) {
			execErr = failure
		} else {
			execErr = newExecutionError(command.FeedbackActionFailure, d.path, d.tokens, d.requestID, failure)
		}
	}

	e.runTriggers(ctx, d, capture, execErr == nil && capture.Succeeded())

	fb := command.FeedbackSuccess
	if !capture.Succeeded() || execErr != nil {
		fb = command.FeedbackActionFailure
	}
	e.deliver(ctx, d, Report{Handled: true, Feedback: fb, Capture: capture, Err: execErr})
	return true, execErr
}

// runGroup runs a group on the calling goroutine in declaration order. With
// stopOnFailure it returns at the first failed action.
func (e *Engine) runGroup(ctx context.Context, d *dispatch, group []command.Action, args command.Arguments, capture *command.Capture, stopOnFailure bool) error {
	var first error
	for _, action := range group {
		result := e.runAction(ctx, d, action, args)
		capture.Add(result)
		if result.Err != nil && first == nil {
			first = result.Err
			if stopOnFailure {
				return first
			}
		}
	}
	return first
}

// runGroupAsync submits every action of a group to the worker pool and
// waits for all of them
func (e *Engine) runGroupAsync(ctx context.Context, d *dispatch, group []command.Action, args command.Arguments, capture *command.Capture) error {
	var g errgroup.Group
	g.SetLimit(e.workers)

	for _, action := range group {
		g.Go(func() error {
			result := e.runAction(ctx, d, action, args)
			capture.Add(result)
			return result.Err
		})
	}
	return g.Wait()
}

// runAction executes one action and turns a panic into a failed result
func (e *Engine) runAction(ctx context.Context, d *dispatch, action command.Action, args command.Arguments) (result command.Result) {
	start := time.Now()
	result.Action = action.ID

	defer func() {
		if r := recover(); r != nil {
			result.Value = nil
			result.Err = dlgerror.Newf("action %s panicked: %v", action.ID, r).
				WithCode(dlgerror.CodeActionFailed).
				WithDetail("action", action.ID)
		}
		result.Duration = time.Since(start)
		if result.Err != nil {
			d.logger.Debug("Action failed", "action", action.ID, "error", result.Err)
		}
	}()

	if action.Run == nil {
		return result
	}
	value, err := action.Run(ctx, d.info.Commander, args)
	result.Value = value
	if err != nil {
		result.Err = dlgerror.Wrap(err, "action "+action.ID+" failed").
			WithCode(dlgerror.CodeActionFailed).
			WithDetail("action", action.ID)
	}
	return result
}

// runTriggers notifies every trigger. A panicking trigger is logged and
// skipped.
func (e *Engine) runTriggers(ctx context.Context, d *dispatch, capture *command.Capture, succeeded bool) {
	for _, trigger := range d.descriptor.Triggers() {
		fn := trigger.OnFailure
		if succeeded {
			fn = trigger.OnSuccess
		}
		if fn == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					d.logger.Warn("Trigger panicked", "trigger", trigger.ID, "path", d.path, "panic", fmt.Sprint(r))
				}
			}()
			fn(ctx, d.info.Commander, capture)
		}()
	}
}

// deliver completes a report and hands it to the feedback sink and the
// audit log
func (e *Engine) deliver(ctx context.Context, d *dispatch, report Report) {
	report.RequestID = d.requestID
	report.Timestamp = d.started
	report.Duration = time.Since(d.started)
	report.Command = d.path
	report.Arguments = append([]string(nil), d.info.Arguments...)
	if d.info.Commander != nil {
		report.Commander = d.info.Commander.Identifier()
	}
	if report.Message == "" {
		report.Message = report.Feedback.Message(report.Command)
	}

	if e.options.EnableAudit {
		d.logger.Audit("Dispatch",
			"commander", report.Commander,
			"command", report.Command,
			"handled", report.Handled,
			"feedback", report.Feedback.String(),
			"duration_ms", report.Duration.Milliseconds(),
		)
	}

	d.report = report
	if e.options.Feedback == nil {
		return
	}
	if err := e.options.Feedback.Deliver(ctx, report); err != nil {
		d.logger.Warn("Feedback delivery failed", "command", report.Command, "error", err)
	}
}
