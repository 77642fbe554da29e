package attribute

import (
	"context"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/argument"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
)

// Chain is an ordered attribute list with one bucket per kind
type Chain struct {
	order []Attribute

	names        []string
	descriptions []string
	aliases      []string
	arguments    []argument.Argument
	properties   []command.Property
	permissions  []command.Permission
	actions      []command.Action
	excepts      []command.ExceptHandler
	triggers     []command.Trigger
	subCommands  []*Chain
}

// NewChain creates an empty chain
func NewChain() *Chain {
	return &Chain{}
}

// New creates a chain starting with a name and a description
func New(name, description string) *Chain {
	return NewChain().Name(name).Description(description)
}

// Append adds attributes in order
func (c *Chain) Append(attrs ...Attribute) *Chain {
	for _, attr := range attrs {
		c.order = append(c.order, attr)
		switch a := attr.(type) {
		case Name:
			c.names = append(c.names, string(a))
		case Description:
			c.descriptions = append(c.descriptions, string(a))
		case Alias:
			c.aliases = append(c.aliases, string(a))
		case Argument:
			c.arguments = append(c.arguments, a.Argument)
		case Property:
			c.properties = append(c.properties, command.Property(a))
		case Permission:
			c.permissions = append(c.permissions, command.Permission(a))
		case Action:
			c.actions = append(c.actions, command.Action(a))
		case Except:
			c.excepts = append(c.excepts, command.ExceptHandler(a))
		case Trigger:
			c.triggers = append(c.triggers, command.Trigger(a))
		case SubCommand:
			c.subCommands = append(c.subCommands, a.Chain)
		}
	}
	return c
}

// Name appends a name attribute
func (c *Chain) Name(name string) *Chain {
	return c.Append(Name(name))
}

// Description appends a description attribute
func (c *Chain) Description(description string) *Chain {
	return c.Append(Description(description))
}

// Alias appends alias attributes
func (c *Chain) Alias(aliases ...string) *Chain {
	for _, a := range aliases {
		c.Append(Alias(a))
	}
	return c
}

// Argument appends argument attributes
func (c *Chain) Argument(args ...argument.Argument) *Chain {
	for _, a := range args {
		c.Append(Argument{a})
	}
	return c
}

// Property appends property attributes
func (c *Chain) Property(props ...command.Property) *Chain {
	for _, p := range props {
		c.Append(Property(p))
	}
	return c
}

// Permission appends permission attributes
func (c *Chain) Permission(tiers ...command.Permission) *Chain {
	for _, t := range tiers {
		c.Append(Permission(t))
	}
	return c
}

// Action appends an action with precedence 0
func (c *Chain) Action(id string, fn command.ActionFunc) *Chain {
	return c.ActionAt(id, 0, fn)
}

// ActionAt appends an action with the given precedence
func (c *Chain) ActionAt(id string, precedence int, fn command.ActionFunc) *Chain {
	return c.Append(Action{ID: id, Precedence: precedence, Run: fn})
}

// Except appends an except-handler
func (c *Chain) Except(id string, fn command.ExceptFunc) *Chain {
	return c.Append(Except{ID: id, Handle: fn})
}

// Trigger appends a trigger, either callback may be nil
func (c *Chain) Trigger(id string, onSuccess, onFailure func(ctx context.Context, commander command.Commander, capture *command.Capture)) *Chain {
	return c.Append(Trigger{ID: id, OnSuccess: onSuccess, OnFailure: onFailure})
}

// SubCommand nests chains
func (c *Chain) SubCommand(chains ...*Chain) *Chain {
	for _, sub := range chains {
		c.Append(SubCommand{Chain: sub})
	}
	return c
}

// Attributes returns the attributes in declaration order
func (c *Chain) Attributes() []Attribute { return append([]Attribute(nil), c.order...) }

// Names returns every declared name
func (c *Chain) Names() []string { return append([]string(nil), c.names...) }

// Descriptions returns every declared description
func (c *Chain) Descriptions() []string { return append([]string(nil), c.descriptions...) }

// Aliases returns the declared aliases
func (c *Chain) Aliases() []string { return append([]string(nil), c.aliases...) }

// Arguments returns the declared arguments
func (c *Chain) Arguments() []argument.Argument {
	return append([]argument.Argument(nil), c.arguments...)
}

// Properties returns the declared properties
func (c *Chain) Properties() []command.Property {
	return append([]command.Property(nil), c.properties...)
}

// Permissions returns the declared permission tiers
func (c *Chain) Permissions() []command.Permission {
	return append([]command.Permission(nil), c.permissions...)
}

// Actions returns the declared actions
func (c *Chain) Actions() []command.Action { return append([]command.Action(nil), c.actions...) }

// Excepts returns the declared except-handlers
func (c *Chain) Excepts() []command.ExceptHandler {
	return append([]command.ExceptHandler(nil), c.excepts...)
}

// Triggers returns the declared triggers
func (c *Chain) Triggers() []command.Trigger { return append([]command.Trigger(nil), c.triggers...) }

// SubCommands returns the nested chains
func (c *Chain) SubCommands() []*Chain { return append([]*Chain(nil), c.subCommands...) }
