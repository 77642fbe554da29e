package engine_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/argument"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/attribute"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/engine"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/rule"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/tree"
)

func noop(context.Context, command.Commander, command.Arguments) (any, error) { return nil, nil }

// recorder collects delivered reports
type recorder struct {
	mu      sync.Mutex
	reports []engine.Report
}

func (r *recorder) Deliver(_ context.Context, report engine.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

func (r *recorder) last(t *testing.T) engine.Report {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.reports)
	return r.reports[len(r.reports)-1]
}

func newEngine(t *testing.T, strict bool, chains ...*attribute.Chain) (*engine.Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts := engine.DefaultOptions()
	opts.Strict = strict
	opts.Feedback = rec
	e := engine.New(opts)
	require.NoError(t, e.Declare(chains...))
	return e, rec
}

func dispatch(e *engine.Engine, name string, args ...string) (bool, error) {
	return e.Handle(context.Background(), engine.DispatchInfo{
		Commander: command.NewStatic("tester"),
		Command:   name,
		Arguments: args,
	})
}

func TestPrecedenceGroupsRunInOrder(t *testing.T) {
	for _, async := range []bool{false, true} {
		name := "sync"
		if async {
			name = "async"
		}
		t.Run(name, func(t *testing.T) {
			var first atomic.Bool
			var violations atomic.Int32

			later := func(context.Context, command.Commander, command.Arguments) (any, error) {
				if !first.Load() {
					violations.Add(1)
				}
				return nil, nil
			}

			chain := attribute.New("ordered", "precedence ordering").
				ActionAt("late-1", 1, later).
				ActionAt("late-2", 1, later).
				ActionAt("early", 0, func(context.Context, command.Commander, command.Arguments) (any, error) {
					time.Sleep(20 * time.Millisecond)
					first.Store(true)
					return "done", nil
				})
			if async {
				chain.Property(command.Async)
			}

			e, rec := newEngine(t, false, chain)
			for i := 0; i < 5; i++ {
				first.Store(false)
				handled, err := dispatch(e, "ordered")
				require.NoError(t, err)
				assert.True(t, handled)
			}
			assert.Zero(t, violations.Load())

			capture := rec.last(t).Capture
			require.NotNil(t, capture)
			assert.Equal(t, 3, capture.Len())
			early, ok := capture.Get("early")
			require.True(t, ok)
			assert.Equal(t, "done", early.Value)
		})
	}
}

func TestTooManyTokens(t *testing.T) {
	var invoked atomic.Int32
	chain := func() *attribute.Chain {
		return attribute.New("calc", "calculator").
			Argument(argument.Int("x", "operand")).
			Action("run", func(context.Context, command.Commander, command.Arguments) (any, error) {
				invoked.Add(1)
				return nil, nil
			})
	}

	e, rec := newEngine(t, false, chain())
	handled, err := dispatch(e, "calc", "1", "2")
	assert.False(t, handled)
	assert.NoError(t, err)
	assert.Equal(t, command.FeedbackNonExistent, rec.last(t).Feedback)

	strict, _ := newEngine(t, true, chain())
	handled, err = dispatch(strict, "calc", "1", "2")
	assert.False(t, handled)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrNonExistent))

	var execErr *engine.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "calc", execErr.Command)
	assert.Equal(t, []string{"1", "2"}, execErr.Arguments)

	assert.Zero(t, invoked.Load())
}

func TestUnknownCommand(t *testing.T) {
	e, _ := newEngine(t, false, attribute.New("known", "known").Action("a", noop))
	handled, err := dispatch(e, "unknown")
	assert.False(t, handled)
	assert.NoError(t, err)

	strict, _ := newEngine(t, true, attribute.New("known", "known").Action("a", noop))
	_, err = dispatch(strict, "unknown")
	assert.True(t, errors.Is(err, engine.ErrNonExistent))
}

func TestUnverifiedNode(t *testing.T) {
	e := engine.New(engine.Options{Strict: true})
	root, err := e.Compile(attribute.New("root", "root").Action("a", noop))
	require.NoError(t, err)
	_, err = e.Register(root)
	require.NoError(t, err)

	root.AddChild(tree.NewDraftNode("draft", "not compiled", root))
	_, err = dispatch(e, "root", "draft")
	assert.True(t, errors.Is(err, engine.ErrUnverified))
}

func TestTokenVerification(t *testing.T) {
	var got command.Arguments
	chain := func(props ...command.Property) *attribute.Chain {
		return attribute.New("pair", "two arguments").
			Argument(
				argument.Int("a", "number"),
				argument.String("b", "text"),
			).
			Property(props...).
			Action("capture", func(_ context.Context, _ command.Commander, args command.Arguments) (any, error) {
				got = args
				return nil, nil
			})
	}

	e, _ := newEngine(t, true, chain())

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantA   int
		wantB   string
	}{
		{"positional", []string{"1", "x"}, nil, 1, "x"},
		{"named", []string{"b=y", "a=2"}, nil, 2, "y"},
		{"mixed in order", []string{"3", "b=z"}, nil, 3, "z"},
		{"value with equals", []string{"4", "b=k=v"}, nil, 4, "k=v"},
		{"positional after named", []string{"a=1", "x"}, engine.ErrFormat, 0, ""},
		{"duplicate", []string{"1", "a=2"}, engine.ErrFormat, 0, ""},
		{"unknown identifier", []string{"c=1"}, engine.ErrInvalidIdentifier, 0, ""},
		{"missing", []string{"1"}, engine.ErrMissingArgument, 0, ""},
		{"unparsable", []string{"abc", "x"}, engine.ErrParse, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			handled, err := dispatch(e, "pair", tt.args...)
			if tt.wantErr != nil {
				assert.False(t, handled)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.True(t, handled)
			assert.Equal(t, tt.wantA, command.ValueOr(got, "a", -1))
			assert.Equal(t, tt.wantB, command.ValueOr(got, "b", ""))
		})
	}

	lenient, _ := newEngine(t, true, chain(command.IgnoreNonPresent))
	handled, err := dispatch(lenient, "pair", "7")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, 7, command.ValueOr(got, "a", -1))
	assert.False(t, got.Has("b"))
}

func TestArgumentRulesAndParsing(t *testing.T) {
	e, _ := newEngine(t, true,
		attribute.New("bounded", "bounded value").
			Argument(argument.Int("n", "value").WithDefault(0).Optional().WithRules(rule.Min(0), rule.Max(10))).
			Action("a", noop),
		attribute.New("strict-int", "integer without default").
			Argument(argument.Int("n", "value")).
			Action("a", noop),
	)

	_, err := dispatch(e, "bounded", "15")
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrRuleViolation))
	assert.Contains(t, err.Error(), "15")
	assert.Contains(t, err.Error(), "10")

	_, err = dispatch(e, "strict-int", "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrParse))
	assert.Contains(t, err.Error(), "int")

	handled, err := dispatch(e, "bounded")
	require.NoError(t, err)
	assert.True(t, handled)
}

func TestDefaultsAreBound(t *testing.T) {
	var got command.Arguments
	e, _ := newEngine(t, true, attribute.New("defaults", "defaults").
		Argument(
			argument.Int("count", "count").WithDefault(3).Optional(),
			argument.String("label", "label").Optional(),
		).
		Action("a", func(_ context.Context, _ command.Commander, args command.Arguments) (any, error) {
			got = args
			return nil, nil
		}))

	handled, err := dispatch(e, "defaults")
	require.NoError(t, err)
	assert.True(t, handled)
	require.Len(t, got, 1)
	assert.Equal(t, "count", got[0].ID)
	assert.Equal(t, 3, got[0].Value)
	assert.True(t, got[0].UsedDefault)
}

func TestExceptHandlers(t *testing.T) {
	var (
		mu       sync.Mutex
		feedback []command.FeedbackType
		tokens   [][]string
	)
	record := func(_ command.Commander, fb command.FeedbackType, args []string) error {
		mu.Lock()
		defer mu.Unlock()
		feedback = append(feedback, fb)
		tokens = append(tokens, args)
		return nil
	}

	opts := engine.DefaultOptions()
	opts.Strict = true
	opts.Verbose = true
	e := engine.New(opts)
	require.NoError(t, e.Declare(attribute.New("guarded", "guarded").
		Argument(argument.Int("n", "n"), argument.Int("m", "m")).
		Except("panics", func(command.Commander, command.FeedbackType, []string) error { panic("broken handler") }).
		Except("fails", func(command.Commander, command.FeedbackType, []string) error { return errors.New("broken") }).
		Except("record", record).
		Action("a", noop)))

	_, err := dispatch(e, "guarded", "n=1", "2")
	assert.True(t, errors.Is(err, engine.ErrFormat))

	_, err = dispatch(e, "guarded", "x", "2")
	assert.True(t, errors.Is(err, engine.ErrParse))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []command.FeedbackType{command.FeedbackFormat, command.FeedbackParseFailure}, feedback)
	assert.Equal(t, [][]string{{"n=1", "2"}, {"x", "2"}}, tokens)
}

func TestPermissions(t *testing.T) {
	e, rec := newEngine(t, true,
		attribute.New("admin", "restricted").
			Permission("delegate.admin", "delegate.root").
			Action("a", noop),
		attribute.New("open", "unrestricted").Action("a", noop),
	)
	ctx := context.Background()

	tests := []struct {
		name      string
		commander command.Commander
		command   string
		want      bool
	}{
		{"no tiers", command.NewStatic("anyone"), "open", true},
		{"missing tier", command.NewStatic("user", "delegate.user"), "admin", false},
		{"one of the tiers", command.NewStatic("root", "delegate.root"), "admin", true},
		{"prefix wildcard", command.NewStatic("ops", "delegate.*"), "admin", true},
		{"wildcard", command.NewStatic("god", command.Wildcard), "admin", true},
		{"nil commander", nil, "admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handled, err := e.Handle(ctx, engine.DispatchInfo{Commander: tt.commander, Command: tt.command})
			assert.Equal(t, tt.want, handled)
			if tt.want {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, engine.ErrUnauthorized))
			assert.Equal(t, command.FeedbackUnauthorized, rec.last(t).Feedback)
		})
	}
}

func TestActionFailures(t *testing.T) {
	failing := func(context.Context, command.Commander, command.Arguments) (any, error) {
		return nil, errors.New("boom")
	}
	panicking := func(context.Context, command.Commander, command.Arguments) (any, error) {
		panic("kaboom")
	}

	t.Run("propagates without catch-errors", func(t *testing.T) {
		var laterRan atomic.Bool
		e, rec := newEngine(t, false, attribute.New("fragile", "fragile").
			ActionAt("fail", 0, failing).
			ActionAt("later", 1, func(context.Context, command.Commander, command.Arguments) (any, error) {
				laterRan.Store(true)
				return nil, nil
			}))

		handled, err := dispatch(e, "fragile")
		assert.True(t, handled)
		require.Error(t, err)
		assert.True(t, errors.Is(err, engine.ErrActionFailed))
		assert.Contains(t, err.Error(), "boom")
		assert.False(t, laterRan.Load())

		report := rec.last(t)
		assert.Equal(t, command.FeedbackActionFailure, report.Feedback)
		result, ok := report.Capture.Get("fail")
		require.True(t, ok)
		assert.False(t, result.Succeeded())
	})

	t.Run("captured with catch-errors", func(t *testing.T) {
		e, rec := newEngine(t, true, attribute.New("sturdy", "sturdy").
			Property(command.CatchErrors).
			ActionAt("fail", 0, failing).
			ActionAt("panic", 0, panicking).
			ActionAt("later", 1, func(context.Context, command.Commander, command.Arguments) (any, error) {
				return 42, nil
			}))

		handled, err := dispatch(e, "sturdy")
		assert.True(t, handled)
		require.NoError(t, err)

		capture := rec.last(t).Capture
		assert.Len(t, capture.Failures(), 2)
		panicked, ok := capture.Get("panic")
		require.True(t, ok)
		assert.Contains(t, panicked.Err.Error(), "kaboom")
		later, ok := capture.Get("later")
		require.True(t, ok)
		assert.Equal(t, 42, later.Value)
	})

	t.Run("async panic is recovered", func(t *testing.T) {
		e, _ := newEngine(t, false, attribute.New("parallel", "parallel").
			Property(command.Async).
			ActionAt("ok", 0, noop).
			ActionAt("panic", 0, panicking))

		handled, err := dispatch(e, "parallel")
		assert.True(t, handled)
		assert.True(t, errors.Is(err, engine.ErrActionFailed))
	})
}

func TestTriggers(t *testing.T) {
	var successes, failures atomic.Int32
	onSuccess := func(_ context.Context, _ command.Commander, capture *command.Capture) {
		if capture.Succeeded() {
			successes.Add(1)
		}
	}
	onFailure := func(context.Context, command.Commander, *command.Capture) { failures.Add(1) }

	var fail atomic.Bool
	e, _ := newEngine(t, false, attribute.New("watched", "watched").
		Property(command.CatchErrors).
		Action("maybe", func(context.Context, command.Commander, command.Arguments) (any, error) {
			if fail.Load() {
				return nil, errors.New("requested failure")
			}
			return nil, nil
		}).
		Trigger("count", onSuccess, onFailure).
		Trigger("broken", func(context.Context, command.Commander, *command.Capture) { panic("trigger") }, nil))

	_, err := dispatch(e, "watched")
	require.NoError(t, err)
	fail.Store(true)
	_, err = dispatch(e, "watched")
	require.NoError(t, err)

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(1), failures.Load())
}

func TestCanceledContext(t *testing.T) {
	var invoked atomic.Bool
	e, _ := newEngine(t, false, attribute.New("slow", "slow").
		Action("a", func(context.Context, command.Commander, command.Arguments) (any, error) {
			invoked.Store(true)
			return nil, nil
		}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	handled, err := e.Handle(ctx, engine.DispatchInfo{Command: "slow"})
	assert.True(t, handled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, invoked.Load())
}

func TestRegisterNotifiesAndMerges(t *testing.T) {
	names := make(chan string, 4)
	opts := engine.DefaultOptions()
	opts.Notifier = func(name string) { names <- name }
	e := engine.New(opts)

	placeholder, err := e.Compile(attribute.New("tool", "placeholder"))
	require.NoError(t, err)
	ok, err := e.Register(placeholder)
	require.NoError(t, err)
	assert.True(t, ok)

	select {
	case name := <-names:
		assert.Equal(t, "tool", name)
	case <-time.After(time.Second):
		t.Fatal("notifier not called")
	}

	full, err := e.Compile(attribute.New("tool", "real").Action("run", noop))
	require.NoError(t, err)
	ok, err = e.Register(full)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, e.Tree().Len())

	again, err := e.Compile(attribute.New("tool", "again").Action("run", noop))
	require.NoError(t, err)
	ok, err = e.Register(again)
	assert.False(t, ok)
	assert.Error(t, err)

	descriptor, verified := e.Tree().Find("tool").Descriptor()
	require.True(t, verified)
	assert.Equal(t, "real", descriptor.Description())
}

func completionEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, _ := newEngine(t, false, attribute.New("test", "root").
		Alias("t").
		SubCommand(
			attribute.New("add", "add").Argument(argument.Int("amount", "amount")).Action("a", noop),
			attribute.New("remove", "remove"),
			attribute.New("run", "run").SubCommand(
				attribute.New("add", "run add").SubCommand(
					attribute.New("a", "a").Action("a", noop),
					attribute.New("b", "b").Action("b", noop),
				),
			),
		))
	return e
}

func TestComplete(t *testing.T) {
	e := completionEngine(t)

	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{"all roots", nil, []string{"t", "test"}},
		{"root prefix", []string{"te"}, []string{"test"}},
		{"all children", []string{"test", ""}, []string{"add", "remove", "run"}},
		{"child prefix", []string{"test", "r"}, []string{"remove", "run"}},
		{"nested", []string{"test", "run", "add", ""}, []string{"a", "b"}},
		{"via alias", []string{"t", "run", "a"}, []string{"add"}},
		{"argument identifiers", []string{"test", "add", ""}, []string{"amount="}},
		{"unknown path", []string{"test", "nope", ""}, nil},
		{"unknown root", []string{"nope", ""}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Complete(tt.tokens)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompleteInvalidatedOnRegister(t *testing.T) {
	e := completionEngine(t)
	assert.Equal(t, []string{"t", "test"}, e.Complete(nil))

	require.NoError(t, e.Declare(attribute.New("tool", "tool").Action("a", noop)))
	assert.Equal(t, []string{"t", "test", "tool"}, e.Complete(nil))
}

func TestClearDropsCompletions(t *testing.T) {
	e := completionEngine(t)
	assert.Equal(t, []string{"t", "test"}, e.Complete(nil))

	hits, misses := e.CompletionStats()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(1), misses)

	e.Clear()
	assert.Empty(t, e.Complete(nil))
	assert.Equal(t, 0, e.Tree().Len())
}

func TestDeclareRejectsNegativePrecedence(t *testing.T) {
	e, _ := newEngine(t, false)

	err := e.Declare(attribute.New("early", "early").
		ActionAt("zero", 0, noop).
		ActionAt("minus", -5, noop))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative precedence")
	assert.Nil(t, e.Tree().Find("early"))
}

func TestUsage(t *testing.T) {
	e := completionEngine(t)

	usage, ok := e.Usage("test", "add")
	require.True(t, ok)
	assert.Contains(t, usage, "test add <amount>")
	assert.Contains(t, usage, "amount (int)")

	usage, ok = e.Usage("t")
	require.True(t, ok)
	assert.Contains(t, usage, "aliases: t")
	assert.Contains(t, usage, "Sub-commands:")

	_, ok = e.Usage("missing")
	assert.False(t, ok)
}

func TestDispatchReturnsReport(t *testing.T) {
	e, rec := newEngine(t, false, attribute.New("echo", "echo").
		Argument(argument.String("text", "text")).
		Action("echo", func(_ context.Context, _ command.Commander, args command.Arguments) (any, error) {
			return command.ValueOr(args, "text", ""), nil
		}))

	report, err := e.Dispatch(context.Background(), engine.DispatchInfo{
		Commander: command.NewStatic("tester"),
		Command:   "echo",
		Arguments: []string{"hello"},
	})
	require.NoError(t, err)
	assert.True(t, report.Handled)
	assert.Equal(t, "tester", report.Commander)
	assert.Equal(t, "echo", report.Command)
	assert.Equal(t, command.FeedbackSuccess, report.Feedback)
	assert.Equal(t, "command echo completed", report.Message)
	assert.NotEmpty(t, report.RequestID)

	result, ok := report.Capture.Get("echo")
	require.True(t, ok)
	assert.Equal(t, "hello", result.Value)
	assert.Equal(t, report.RequestID, rec.last(t).RequestID)
}
