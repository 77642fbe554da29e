package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/argument"
)

func noop(context.Context, Commander, Arguments) (any, error) { return nil, nil }

func TestStaticCommander(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []Permission
		request Permission
		want    bool
	}{
		{"exact", []Permission{"admin"}, "admin", true},
		{"other", []Permission{"user"}, "admin", false},
		{"wildcard", []Permission{Wildcard}, "anything", true},
		{"prefix wildcard", []Permission{"test.*"}, "test.run", true},
		{"prefix wildcard miss", []Permission{"test.*"}, "calc.run", false},
		{"no tiers", nil, "admin", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewStatic("alice", tt.tiers...)
			assert.Equal(t, "alice", c.Identifier())
			assert.Equal(t, tt.want, c.HasPermission(tt.request))
		})
	}
}

func TestDescriptorOrdersActions(t *testing.T) {
	d := NewDescriptor(Definition{
		Name:        "calc",
		Description: "calculator",
		Actions: []Action{
			{ID: "late", Precedence: 2, Run: noop},
			{ID: "first", Precedence: 0, Run: noop},
			{ID: "mid-a", Precedence: 1, Run: noop},
			{ID: "mid-b", Precedence: 1, Run: noop},
		},
	})

	groups := d.ActionGroups()
	require.Len(t, groups, 3)
	assert.Equal(t, "first", groups[0][0].ID)
	require.Len(t, groups[1], 2)
	assert.Equal(t, "mid-a", groups[1][0].ID)
	assert.Equal(t, "mid-b", groups[1][1].ID)
	assert.Equal(t, "late", groups[2][0].ID)
	assert.True(t, d.HasBehavior())
}

func TestDescriptorAccessors(t *testing.T) {
	root := NewDescriptor(Definition{Name: "test", Description: "root"})
	child := NewDescriptor(Definition{
		Name:        "run",
		Description: "child",
		Aliases:     []string{"r"},
		Arguments:   []argument.Argument{argument.Int("n", "count"), argument.String("s", "text")},
		Properties:  []Property{CatchErrors, Async},
		Permissions: []Permission{"test.run"},
		Parent:      root,
	})

	assert.False(t, root.HasBehavior())
	assert.Nil(t, root.Parent())
	assert.Equal(t, []string{"test", "run"}, child.Path())
	assert.Equal(t, "test run", child.FullName())
	assert.Equal(t, []Property{Async, CatchErrors}, child.Properties())
	assert.True(t, child.HasProperty(Async))
	assert.False(t, child.HasProperty(IgnoreNonPresent))

	arg, idx, ok := child.Argument("s")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "string", arg.Type())
	_, _, ok = child.Argument("missing")
	assert.False(t, ok)

	aliases := child.Aliases()
	aliases[0] = "changed"
	assert.Equal(t, []string{"r"}, child.Aliases())
}

func TestCaptureConcurrentAdds(t *testing.T) {
	capture := NewCapture()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%10 == 0 {
				err = errors.New("fail")
			}
			capture.Add(Result{Action: string(rune('a' + i%26)), Value: i, Err: err})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, capture.Len())
	assert.Len(t, capture.Failures(), 5)
	assert.False(t, capture.Succeeded())

	_, ok := capture.Get("a")
	assert.True(t, ok)
	_, ok = capture.Get("missing")
	assert.False(t, ok)
}

func TestArgumentsLookup(t *testing.T) {
	args := Arguments{{ID: "n", Value: 3}, {ID: "s", Value: "x"}}

	n, ok := Value[int](args, "n")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = Value[string](args, "n")
	assert.False(t, ok, "type mismatch must not succeed")

	assert.Equal(t, "fallback", ValueOr(args, "missing", "fallback"))
	assert.True(t, args.Has("s"))
}

func TestFeedbackType(t *testing.T) {
	assert.Equal(t, "command test run does not exist", FeedbackNonExistent.Message("test run"))
	assert.Equal(t, dlgerror.CodeUnauthorized, FeedbackUnauthorized.Code())
	assert.Equal(t, dlgerror.CodeUnknown, FeedbackSuccess.Code())

	for f := FeedbackSuccess; f <= FeedbackActionFailure; f++ {
		parsed, ok := ParseFeedbackType(f.String())
		require.True(t, ok, f.String())
		assert.Equal(t, f, parsed)
	}
	_, ok := ParseFeedbackType("nope")
	assert.False(t, ok)
	assert.Equal(t, "feedback(99)", FeedbackType(99).String())
}

func TestPropertyKnown(t *testing.T) {
	assert.True(t, Async.Known())
	assert.False(t, Property("turbo").Known())
}
