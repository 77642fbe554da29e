// Package tree stores registered commands as a forest of nodes and resolves
// token sequences against it.
package tree

import (
	"sort"
	"strings"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
)

// Node wraps a command and links it to its parent and children
type Node struct {
	command  command.Command
	parent   *Node
	children []*Node
}

// NewNode creates a node for cmd below parent, which may be nil. The node
// is not attached to parent; registration does that.
func NewNode(cmd command.Command, parent *Node) *Node {
	return &Node{command: cmd, parent: parent}
}

// NewDraftNode creates an unverified node
func NewDraftNode(name, description string, parent *Node) *Node {
	return NewNode(command.NewDraft(name, description), parent)
}

// Name returns the command name
func (n *Node) Name() string { return n.command.Name() }

// Command returns the wrapped command
func (n *Node) Command() command.Command { return n.command }

// Descriptor returns the wrapped descriptor if the node is verified
func (n *Node) Descriptor() (*command.Descriptor, bool) {
	d, ok := n.command.(*command.Descriptor)
	return d, ok
}

// IsVerified reports whether the node wraps a compiled descriptor
func (n *Node) IsVerified() bool {
	_, ok := n.Descriptor()
	return ok
}

// Parent returns the parent node, nil for roots
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes in insertion order
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Child returns the child whose name matches name
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.SameIdentity(name) {
			return c
		}
	}
	return nil
}

// AddChild attaches child below n
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// SameIdentity reports whether this node is addressed by name. Names are
// matched case-insensitively.
func (n *Node) SameIdentity(name string) bool {
	return strings.EqualFold(n.Name(), name)
}

// Equal reports whether both nodes wrap commands with the same name,
// description and alias set
func (n *Node) Equal(other *Node) bool {
	if other == nil {
		return false
	}
	if !n.SameIdentity(other.Name()) || n.command.Description() != other.command.Description() {
		return false
	}
	a, b := n.command.Aliases(), other.command.Aliases()
	if len(a) != len(b) {
		return false
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Path returns the command names from the root down to n
func (n *Node) Path() []string {
	var path []string
	for cur := n; cur != nil; cur = cur.parent {
		path = append([]string{cur.Name()}, path...)
	}
	return path
}

// FullName returns Path joined by spaces
func (n *Node) FullName() string {
	return strings.Join(n.Path(), " ")
}
