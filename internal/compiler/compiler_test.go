package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/argument"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/attribute"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/tree"
)

func noop(context.Context, command.Commander, command.Arguments) (any, error) { return nil, nil }

func TestCompileStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		chain    *attribute.Chain
		wantCode dlgerror.Code
		wantText string
	}{
		{
			name:     "missing name",
			chain:    attribute.NewChain().Description("no name"),
			wantCode: dlgerror.CodeStructureMissingName,
		},
		{
			name:     "two names",
			chain:    attribute.NewChain().Name("a").Name("b").Description("d"),
			wantCode: dlgerror.CodeStructureMissingName,
		},
		{
			name:     "name with whitespace",
			chain:    attribute.New("two words", "d"),
			wantCode: dlgerror.CodeStructureMissingName,
		},
		{
			name:     "missing description",
			chain:    attribute.NewChain().Name("test"),
			wantCode: dlgerror.CodeStructureMissingDescription,
		},
		{
			name: "duplicate argument identifier",
			chain: attribute.New("test", "d").
				Argument(argument.Int("amount", ""), argument.String("amount", "")),
			wantCode: dlgerror.CodeStructureDuplicateID,
			wantText: "amount",
		},
		{
			name: "argument and action share identifier",
			chain: attribute.New("test", "d").
				Argument(argument.Int("go", "")).
				Action("go", noop),
			wantCode: dlgerror.CodeStructureDuplicateID,
			wantText: "go",
		},
		{
			name: "negative action precedence",
			chain: attribute.New("test", "d").
				ActionAt("zero", 0, noop).
				ActionAt("minus", -5, noop),
			wantCode: dlgerror.CodeStructureInvalidPrecedence,
			wantText: "minus",
		},
		{
			name: "negative precedence in nested chain",
			chain: attribute.New("test", "d").
				SubCommand(attribute.New("run", "r").ActionAt("early", -1, noop)),
			wantCode: dlgerror.CodeStructureInvalidPrecedence,
			wantText: "test run",
		},
		{
			name: "duplicate sub-command names",
			chain: attribute.New("test", "d").
				SubCommand(attribute.New("add", "one"), attribute.New("ADD", "two")),
			wantCode: dlgerror.CodeStructureDuplicateName,
			wantText: "ADD",
		},
		{
			name: "error in nested chain",
			chain: attribute.New("test", "d").
				SubCommand(attribute.New("run", "r").SubCommand(attribute.NewChain().Name("x"))),
			wantCode: dlgerror.CodeStructureMissingDescription,
		},
	}

	c := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := c.Compile(nil, tt.chain)
			require.Error(t, err)
			assert.Nil(t, node)
			assert.True(t, dlgerror.HasCode(err, tt.wantCode), "got %v", dlgerror.GetCode(err))
			if tt.wantText != "" {
				assert.Contains(t, err.Error(), tt.wantText)
			}
		})
	}
}

func TestCompileDuplicateIdentifierDetail(t *testing.T) {
	chain := attribute.New("test", "d").
		Argument(argument.Int("first", ""), argument.Int("dup", ""), argument.Int("dup", ""))

	_, err := New(nil).Compile(nil, chain)
	require.Error(t, err)

	var dErr *dlgerror.Error
	require.ErrorAs(t, err, &dErr)
	id, ok := dErr.Detail("identifier")
	require.True(t, ok)
	assert.Equal(t, "dup", id)
}

func TestCompileSiblingClash(t *testing.T) {
	c := New(nil)
	parent, err := c.Compile(nil, attribute.New("test", "d").SubCommand(attribute.New("add", "a")))
	require.NoError(t, err)

	_, err = c.Compile(parent, attribute.New("add", "again"))
	require.Error(t, err)
	assert.True(t, dlgerror.HasCode(err, dlgerror.CodeStructureDuplicateName))

	child, err := c.Compile(parent, attribute.New("remove", "r"))
	require.NoError(t, err)
	assert.Same(t, parent, child.Parent())
	assert.Nil(t, parent.Child("remove"), "Compile must not attach the node")
}

func TestCompileBuildsTree(t *testing.T) {
	chain := attribute.New("test", "root").
		Alias("t").
		Permission("test.use").
		SubCommand(
			attribute.New("add", "adds").Argument(argument.Int("n", "")).Action("add", noop),
			attribute.New("run", "runs").SubCommand(
				attribute.New("add", "nested").SubCommand(attribute.New("a", "A"), attribute.New("b", "B")),
			),
		)

	node, err := New(nil).Compile(nil, chain)
	require.NoError(t, err)
	require.True(t, node.IsVerified())
	assert.Nil(t, node.Parent())

	desc, _ := node.Descriptor()
	assert.Equal(t, []string{"t"}, desc.Aliases())
	assert.Equal(t, []command.Permission{"test.use"}, desc.Permissions())
	assert.False(t, desc.HasBehavior())

	children := node.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "add", children[0].Name())
	assert.Equal(t, "run", children[1].Name())

	deep := children[1].Child("add").Child("b")
	require.NotNil(t, deep)
	assert.Equal(t, "test run add b", deep.FullName())

	deepDesc, ok := deep.Descriptor()
	require.True(t, ok)
	assert.Equal(t, []string{"test", "run", "add", "b"}, deepDesc.Path())
}

func TestCompileUnverifiedParent(t *testing.T) {
	draft := tree.NewDraftNode("draft", "in progress", nil)
	node, err := New(nil).Compile(draft, attribute.New("child", "c"))
	require.NoError(t, err)

	desc, ok := node.Descriptor()
	require.True(t, ok)
	assert.Nil(t, desc.Parent())
	assert.Equal(t, "draft child", node.FullName())
}

func TestCompileArgumentsNamedLikeBuiltins(t *testing.T) {
	chain := attribute.New("greet", "greets").
		Argument(argument.String("name", "who"), argument.String("description", "how")).
		Action("name-check", noop)

	node, err := New(nil).Compile(nil, chain)
	require.NoError(t, err)

	desc, ok := node.Descriptor()
	require.True(t, ok)
	assert.Equal(t, "greet", desc.Name())
	assert.Equal(t, "greets", desc.Description())
	require.Len(t, desc.Arguments(), 2)
	assert.Equal(t, "name", desc.Arguments()[0].Identifier())
	assert.Equal(t, "description", desc.Arguments()[1].Identifier())
}
