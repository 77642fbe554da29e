// Package compiler turns attribute chains into verified command nodes.
package compiler

import (
	"strings"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/attribute"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/tree"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/logging"
)

// Compiler verifies attribute chains
type Compiler struct {
	logger *logging.Logger
}

// New creates a compiler. A nil logger discards output.
func New(logger *logging.Logger) *Compiler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Compiler{logger: logger.With("component", "compiler")}
}

// Compile verifies chain and builds a node below parent, which may be nil.
// Sub-command chains are compiled recursively and attached as children. The
// returned node itself is not attached to parent.
func (c *Compiler) Compile(parent *tree.Node, chain *attribute.Chain) (*tree.Node, error) {
	name, description, err := identity(chain)
	if err != nil {
		return nil, err
	}
	path := name
	if parent != nil {
		path = parent.FullName() + " " + name
	}

	if err := uniqueIdentifiers(path, chain); err != nil {
		return nil, err
	}
	if parent != nil && parent.Child(name) != nil {
		return nil, duplicateName(path, name)
	}
	for _, a := range chain.Actions() {
		if a.Precedence < 0 {
			return nil, dlgerror.Newf("action %s in command %s has negative precedence %d", a.ID, path, a.Precedence).
				WithCode(dlgerror.CodeStructureInvalidPrecedence).
				WithDetail("action", a.ID).
				WithDetail("command", path).
				WithOperation("compile")
		}
	}

	var parentDesc *command.Descriptor
	if parent != nil {
		parentDesc, _ = parent.Descriptor()
	}
	for _, p := range chain.Properties() {
		if !p.Known() {
			c.logger.Warn("Unknown command property ignored", "command", path, "property", string(p))
		}
	}

	desc := command.NewDescriptor(command.Definition{
		Name:        name,
		Description: description,
		Aliases:     chain.Aliases(),
		Arguments:   chain.Arguments(),
		Properties:  chain.Properties(),
		Permissions: chain.Permissions(),
		Actions:     chain.Actions(),
		Excepts:     chain.Excepts(),
		Triggers:    chain.Triggers(),
		Parent:      parentDesc,
	})
	node := tree.NewNode(desc, parent)

	children := make([]*tree.Node, 0, len(chain.SubCommands()))
	seen := make(map[string]struct{})
	for _, sub := range chain.SubCommands() {
		child, err := c.Compile(node, sub)
		if err != nil {
			return nil, err
		}
		k := strings.ToLower(child.Name())
		if _, dup := seen[k]; dup {
			return nil, duplicateName(path+" "+child.Name(), child.Name())
		}
		seen[k] = struct{}{}
		children = append(children, child)
	}
	for _, child := range children {
		node.AddChild(child)
	}

	c.logger.Debug("Command compiled", "command", path, "arguments", len(chain.Arguments()),
		"actions", len(chain.Actions()), "children", len(children))
	return node, nil
}

func identity(chain *attribute.Chain) (string, string, error) {
	names := chain.Names()
	if len(names) != 1 || strings.TrimSpace(names[0]) == "" {
		return "", "", dlgerror.Newf("command must declare exactly one name, found %d", len(names)).
			WithCode(dlgerror.CodeStructureMissingName).
			WithOperation("compile")
	}
	name := names[0]
	if strings.ContainsAny(name, " \t\n") {
		return "", "", dlgerror.Newf("command name %q must not contain whitespace", name).
			WithCode(dlgerror.CodeStructureMissingName).
			WithOperation("compile")
	}

	descriptions := chain.Descriptions()
	if len(descriptions) != 1 {
		return "", "", dlgerror.Newf("command %s must declare exactly one description, found %d", name, len(descriptions)).
			WithCode(dlgerror.CodeStructureMissingDescription).
			WithDetail("command", name).
			WithOperation("compile")
	}
	return name, descriptions[0], nil
}

// uniqueIdentifiers checks every attribute except sub-commands and the
// name/description pair, which identity already limits to one each.
func uniqueIdentifiers(path string, chain *attribute.Chain) error {
	seen := make(map[string]struct{})
	for _, attr := range chain.Attributes() {
		switch attr.Kind() {
		case attribute.KindSubCommand, attribute.KindName, attribute.KindDescription:
			continue
		}
		id := attr.Identifier()
		if _, dup := seen[id]; dup {
			return dlgerror.Newf("duplicate identifier %s in command %s", id, path).
				WithCode(dlgerror.CodeStructureDuplicateID).
				WithDetail("identifier", id).
				WithDetail("command", path).
				WithOperation("compile")
		}
		seen[id] = struct{}{}
	}
	return nil
}

func duplicateName(path, name string) error {
	return dlgerror.Newf("duplicate command name %s at %s", name, path).
		WithCode(dlgerror.CodeStructureDuplicateName).
		WithDetail("command", path).
		WithOperation("compile")
}
