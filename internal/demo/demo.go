// Package demo declares the sample command set shipped with the CLI.
package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/argument"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/attribute"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/engine"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/rule"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/logging"
)

// Permission tiers used by the demo commands
const (
	PermissionCalc  command.Permission = "calc.run"
	PermissionBatch command.Permission = "batch.run"
)

// Commands returns the demo chains
func Commands(logger *logging.Logger) []*attribute.Chain {
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.With("component", "demo")

	return []*attribute.Chain{
		testCommand(),
		calcCommand(logger),
		batchCommand(logger),
	}
}

// Register declares the demo commands on e
func Register(e *engine.Engine, logger *logging.Logger) error {
	return e.Declare(Commands(logger)...)
}

func reply(text string) command.ActionFunc {
	return func(context.Context, command.Commander, command.Arguments) (any, error) {
		return text, nil
	}
}

func testCommand() *attribute.Chain {
	return attribute.New("test", "exercises nested sub-commands").
		Alias("t").
		SubCommand(
			attribute.New("add", "adds an entry").
				Argument(argument.String("entry", "entry to add").WithRules(rule.NonNull(), rule.MaxLength(32))).
				Action("add", func(_ context.Context, _ command.Commander, args command.Arguments) (any, error) {
					return "added " + command.ValueOr(args, "entry", ""), nil
				}),
			attribute.New("remove", "removes an entry").
				Argument(argument.String("entry", "entry to remove")).
				Action("remove", func(_ context.Context, _ command.Commander, args command.Arguments) (any, error) {
					return "removed " + command.ValueOr(args, "entry", ""), nil
				}),
			attribute.New("run", "runs nested commands").SubCommand(
				attribute.New("add", "nested add").SubCommand(
					attribute.New("a", "leaf a").Action("a", reply("ran a")),
					attribute.New("b", "leaf b").Action("b", reply("ran b")),
				),
			),
		)
}

func calcCommand(logger *logging.Logger) *attribute.Chain {
	return attribute.New("calc", "applies an operator to two numbers").
		Alias("c").
		Argument(
			argument.Int("a", "left operand").WithRules(rule.Range(-1_000_000, 1_000_000)),
			argument.Double("b", "right operand"),
			argument.Enum("op", "operator", "add", "sub", "mul", "div").WithDefault("add").Optional(),
		).
		Permission(PermissionCalc).
		ActionAt("check", 0, func(_ context.Context, _ command.Commander, args command.Arguments) (any, error) {
			if command.ValueOr(args, "op", "") == "div" && command.ValueOr(args, "b", 0.0) == 0 {
				return nil, dlgerror.New("division by zero").WithCode(dlgerror.CodeInvalidInput)
			}
			return "ok", nil
		}).
		ActionAt("result", 1, func(_ context.Context, _ command.Commander, args command.Arguments) (any, error) {
			value, err := Calculate(
				command.ValueOr(args, "a", 0),
				command.ValueOr(args, "b", 0.0),
				command.ValueOr(args, "op", "add"))
			if err != nil {
				return nil, err
			}
			return value, nil
		}).
		ActionAt("expression", 1, func(_ context.Context, _ command.Commander, args command.Arguments) (any, error) {
			return fmt.Sprintf("%d %s %g",
				command.ValueOr(args, "a", 0),
				symbol(command.ValueOr(args, "op", "add")),
				command.ValueOr(args, "b", 0.0)), nil
		}).
		Except("log", func(commander command.Commander, fb command.FeedbackType, args []string) error {
			logger.Info("calc rejected", "commander", identify(commander), "feedback", fb.String(), "arguments", strings.Join(args, " "))
			return nil
		})
}

// Calculate applies op to a and b
func Calculate(a int, b float64, op string) (float64, error) {
	x := float64(a)
	switch strings.ToLower(op) {
	case "add":
		return x + b, nil
	case "sub":
		return x - b, nil
	case "mul":
		return x * b, nil
	case "div":
		if b == 0 {
			return 0, dlgerror.New("division by zero").WithCode(dlgerror.CodeInvalidInput)
		}
		return x / b, nil
	}
	return 0, dlgerror.Newf("unknown operator %q", op).WithCode(dlgerror.CodeInvalidInput)
}

func symbol(op string) string {
	switch op {
	case "sub":
		return "-"
	case "mul":
		return "*"
	case "div":
		return "/"
	}
	return "+"
}

func batchCommand(logger *logging.Logger) *attribute.Chain {
	work := func(name string) command.ActionFunc {
		return func(ctx context.Context, _ command.Commander, args command.Arguments) (any, error) {
			delay := command.ValueOr(args, "delay", 10*time.Millisecond)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return name + " done", nil
		}
	}

	return attribute.New("batch", "runs independent jobs on the worker pool").
		Argument(argument.Duration("delay", "time each job takes").
			WithDefault(10*time.Millisecond).
			Optional().
			WithRules(rule.Condition("positive", func(s string) bool { return !strings.HasPrefix(strings.TrimSpace(s), "-") }, "delay %s must not be negative"))).
		Property(command.Async, command.CatchErrors).
		Permission(PermissionBatch).
		ActionAt("prepare", 0, reply("prepared")).
		ActionAt("job-1", 1, work("job-1")).
		ActionAt("job-2", 1, work("job-2")).
		ActionAt("job-3", 1, work("job-3")).
		ActionAt("job-4", 1, work("job-4")).
		ActionAt("collect", 2, reply("collected")).
		Trigger("report",
			func(_ context.Context, commander command.Commander, capture *command.Capture) {
				logger.Info("batch finished", "commander", identify(commander), "results", capture.Len())
			},
			func(_ context.Context, commander command.Commander, capture *command.Capture) {
				logger.Warn("batch failed", "commander", identify(commander), "failures", len(capture.Failures()))
			})
}

func identify(commander command.Commander) string {
	if commander == nil {
		return "anonymous"
	}
	return commander.Identifier()
}
