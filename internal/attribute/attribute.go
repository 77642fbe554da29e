// Package attribute defines the declarative building blocks of a command.
// A Chain collects attributes in declaration order and sorts them into typed
// buckets as they are appended.
package attribute

import (
	"github.com/PolyRocketMatt/Delegate-sub000/internal/argument"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
)

// Kind tags an attribute variant
type Kind int

const (
	KindName Kind = iota
	KindDescription
	KindAlias
	KindArgument
	KindProperty
	KindPermission
	KindAction
	KindExcept
	KindTrigger
	KindSubCommand
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindDescription:
		return "description"
	case KindAlias:
		return "alias"
	case KindArgument:
		return "argument"
	case KindProperty:
		return "property"
	case KindPermission:
		return "permission"
	case KindAction:
		return "action"
	case KindExcept:
		return "except"
	case KindTrigger:
		return "trigger"
	case KindSubCommand:
		return "subcommand"
	default:
		return "unknown"
	}
}

// Attribute is one declaration in a chain. Identifier is unique within a
// chain for every kind except KindSubCommand.
type Attribute interface {
	Kind() Kind
	Identifier() string
}

// Name declares the command name
type Name string

func (Name) Kind() Kind { return KindName }
func (n Name) Identifier() string { return "name:" + string(n) }

// Description declares the command description
type Description string

func (Description) Kind() Kind { return KindDescription }
func (d Description) Identifier() string { return "description:" + string(d) }

// Alias declares an alternative root name
type Alias string

func (Alias) Kind() Kind { return KindAlias }
func (a Alias) Identifier() string { return "alias:" + string(a) }

// Argument declares a typed argument
type Argument struct {
	argument.Argument
}

func (Argument) Kind() Kind { return KindArgument }

// Property declares a behavioural flag
type Property command.Property

func (Property) Kind() Kind { return KindProperty }
func (p Property) Identifier() string { return "property:" + string(p) }

// Permission declares a permission tier
type Permission command.Permission

func (Permission) Kind() Kind { return KindPermission }
func (p Permission) Identifier() string { return "permission:" + string(p) }

// Action declares a unit of work
type Action command.Action

func (Action) Kind() Kind { return KindAction }
func (a Action) Identifier() string { return a.ID }

// Except declares an except-handler
type Except command.ExceptHandler

func (Except) Kind() Kind { return KindExcept }
func (e Except) Identifier() string { return e.ID }

// Trigger declares a post-dispatch trigger
type Trigger command.Trigger

func (Trigger) Kind() Kind { return KindTrigger }
func (t Trigger) Identifier() string { return t.ID }

// SubCommand nests another chain
type SubCommand struct {
	Chain *Chain
}

func (SubCommand) Kind() Kind { return KindSubCommand }
func (SubCommand) Identifier() string { return "" }
