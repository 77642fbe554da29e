package command

import (
	"sort"
	"strings"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/argument"
)

// Command is what a tree node wraps: either a Draft or a verified Descriptor
type Command interface {
	Name() string
	Description() string
	Aliases() []string
}

// Draft is a command that has not been through the compiler
type Draft struct {
	name        string
	description string
	aliases     []string
}

// NewDraft creates an unverified command
func NewDraft(name, description string, aliases ...string) *Draft {
	return &Draft{name: name, description: description, aliases: append([]string(nil), aliases...)}
}

// Name returns the command name
func (d *Draft) Name() string { return d.name }

// Description returns the command description
func (d *Draft) Description() string { return d.description }

// Aliases returns a copy of the aliases
func (d *Draft) Aliases() []string { return append([]string(nil), d.aliases...) }

// Definition carries the buckets a Descriptor is built from
type Definition struct {
	Name        string
	Description string
	Aliases     []string
	Arguments   []argument.Argument
	Properties  []Property
	Permissions []Permission
	Actions     []Action
	Excepts     []ExceptHandler
	Triggers    []Trigger
	Parent      *Descriptor
}

// Descriptor is a verified, immutable command definition
type Descriptor struct {
	name        string
	description string
	aliases     []string
	arguments   []argument.Argument
	properties  map[Property]struct{}
	permissions []Permission
	actions     []Action
	excepts     []ExceptHandler
	triggers    []Trigger
	parent      *Descriptor
}

// NewDescriptor copies def into a Descriptor. Actions are ordered by
// precedence, keeping declaration order within equal precedence.
func NewDescriptor(def Definition) *Descriptor {
	d := &Descriptor{
		name:        def.Name,
		description: def.Description,
		aliases:     append([]string(nil), def.Aliases...),
		arguments:   append([]argument.Argument(nil), def.Arguments...),
		properties:  make(map[Property]struct{}, len(def.Properties)),
		permissions: append([]Permission(nil), def.Permissions...),
		actions:     append([]Action(nil), def.Actions...),
		excepts:     append([]ExceptHandler(nil), def.Excepts...),
		triggers:    append([]Trigger(nil), def.Triggers...),
		parent:      def.Parent,
	}
	for _, p := range def.Properties {
		d.properties[p] = struct{}{}
	}
	sort.SliceStable(d.actions, func(i, j int) bool {
		return d.actions[i].Precedence < d.actions[j].Precedence
	})
	return d
}

// Name returns the command name
func (d *Descriptor) Name() string { return d.name }

// Description returns the command description
func (d *Descriptor) Description() string { return d.description }

// Aliases returns a copy of the aliases
func (d *Descriptor) Aliases() []string { return append([]string(nil), d.aliases...) }

// Arguments returns the declared arguments in order
func (d *Descriptor) Arguments() []argument.Argument {
	return append([]argument.Argument(nil), d.arguments...)
}

// Argument returns the argument with the given identifier and its position
func (d *Descriptor) Argument(id string) (argument.Argument, int, bool) {
	for i, a := range d.arguments {
		if a.Identifier() == id {
			return a, i, true
		}
	}
	return nil, -1, false
}

// HasProperty reports whether p is set
func (d *Descriptor) HasProperty(p Property) bool {
	_, ok := d.properties[p]
	return ok
}

// Properties returns the set properties in sorted order
func (d *Descriptor) Properties() []Property {
	out := make([]Property, 0, len(d.properties))
	for p := range d.properties {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Permissions returns the permission tiers, any one of which authorizes
func (d *Descriptor) Permissions() []Permission {
	return append([]Permission(nil), d.permissions...)
}

// Actions returns the actions ordered by precedence
func (d *Descriptor) Actions() []Action {
	return append([]Action(nil), d.actions...)
}

// ActionGroups returns the actions partitioned by precedence, ascending
func (d *Descriptor) ActionGroups() [][]Action {
	var groups [][]Action
	for i, a := range d.actions {
		if i == 0 || a.Precedence != d.actions[i-1].Precedence {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], a)
	}
	return groups
}

// Excepts returns the except-handlers
func (d *Descriptor) Excepts() []ExceptHandler {
	return append([]ExceptHandler(nil), d.excepts...)
}

// Triggers returns the triggers
func (d *Descriptor) Triggers() []Trigger {
	return append([]Trigger(nil), d.triggers...)
}

// Parent returns the parent descriptor, nil for roots
func (d *Descriptor) Parent() *Descriptor { return d.parent }

// WithParent returns a copy of d linked below parent
func (d *Descriptor) WithParent(parent *Descriptor) *Descriptor {
	c := *d
	c.parent = parent
	return &c
}

// HasBehavior reports whether the command declares actions, except-handlers
// or triggers. Commands without behavior may be replaced on registration.
func (d *Descriptor) HasBehavior() bool {
	return len(d.actions) > 0 || len(d.excepts) > 0 || len(d.triggers) > 0
}

// Path returns the names from the root down to this command
func (d *Descriptor) Path() []string {
	var path []string
	for cur := d; cur != nil; cur = cur.parent {
		path = append([]string{cur.name}, path...)
	}
	return path
}

// FullName returns Path joined by spaces
func (d *Descriptor) FullName() string {
	return strings.Join(d.Path(), " ")
}
