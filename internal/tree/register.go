package tree

import (
	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
)

// Register inserts a compiled node. A root is matched against existing roots
// by name, a node with a parent against that parent's children.
//
// An unmatched node is added. A matched node is merged: the existing command
// must be verified and must not declare actions, except-handlers or
// triggers, in which case it is replaced by the incoming command and the
// children are merged pairwise. If any level of the merge is refused the
// tree is left unchanged.
func (t *Tree) Register(node *Node) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	parent := node.parent
	var existing *Node
	if parent == nil {
		existing = t.roots[key(node.Name())]
	} else {
		existing = parent.Child(node.Name())
	}

	if existing == nil {
		if parent == nil {
			t.addRoot(node)
		} else {
			parent.AddChild(node)
		}
		t.logger.Info("Command registered", "command", node.FullName(), "children", len(node.children))
		return nil
	}

	if err := checkMerge(existing, node); err != nil {
		t.logger.Warn("Command merge refused", "command", node.FullName(), "error", err)
		return err
	}
	if existing.parent == nil {
		t.dropAliases(existing)
	}
	t.merge(existing, node)
	relink(existing)
	if existing.parent == nil {
		t.indexAliases(existing)
	}
	t.logger.Info("Command merged", "command", existing.FullName(), "children", len(existing.children))
	return nil
}

func checkMerge(existing, incoming *Node) error {
	desc, ok := existing.Descriptor()
	if !ok {
		return dlgerror.Newf("cannot merge into unverified command %s", existing.FullName()).
			WithCode(dlgerror.CodeRegistrationMerge).
			WithDetail("command", existing.FullName())
	}
	if desc.HasBehavior() {
		return dlgerror.Newf("command %s already declares actions, except-handlers or triggers", existing.FullName()).
			WithCode(dlgerror.CodeRegistrationMerge).
			WithDetail("command", existing.FullName())
	}
	for _, child := range incoming.children {
		if match := existing.Child(child.Name()); match != nil {
			if err := checkMerge(match, child); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Tree) merge(existing, incoming *Node) {
	existing.command = incoming.command
	for _, child := range incoming.children {
		if match := existing.Child(child.Name()); match != nil {
			t.merge(match, child)
			continue
		}
		existing.AddChild(child)
	}
	t.logger.Debug("Command replaced", "command", existing.FullName())
}

// relink points the descriptors below n at their node's current parent
// descriptor. Merging replaces descriptors, so children compiled against the
// old one would otherwise keep a stale parent.
func relink(n *Node) {
	parent, _ := n.Descriptor()
	for _, child := range n.children {
		if desc, ok := child.Descriptor(); ok && desc.Parent() != parent {
			child.command = desc.WithParent(parent)
		}
		relink(child)
	}
}
