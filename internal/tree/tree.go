package tree

import (
	"sort"
	"strings"
	"sync"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/logging"
)

// Notifier is told about every new root so the host can expose its name.
// It runs on its own goroutine.
type Notifier func(name string)

// Options configures a Tree
type Options struct {
	Logger   *logging.Logger
	Notifier Notifier
}

// Tree is the forest of registered commands
type Tree struct {
	mu       sync.RWMutex
	roots    map[string]*Node
	aliases  map[string]string
	notifier Notifier
	logger   *logging.Logger
}

// New creates an empty tree
func New(opts Options) *Tree {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Tree{
		roots:    make(map[string]*Node),
		aliases:  make(map[string]string),
		notifier: opts.Notifier,
		logger:   logger.With("component", "command-tree"),
	}
}

func key(name string) string {
	return strings.ToLower(name)
}

// Add inserts node as a new root. It fails if a root with the same name
// exists.
func (t *Tree) Add(node *Node) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.roots[key(node.Name())]; exists {
		return dlgerror.Newf("command %s already exists", node.Name()).
			WithCode(dlgerror.CodeStructureDuplicateName).
			WithDetail("command", node.Name())
	}
	t.addRoot(node)
	return nil
}

// Clear removes every command
func (t *Tree) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.roots = make(map[string]*Node)
	t.aliases = make(map[string]string)
}

// Find returns the root addressed by name or one of its aliases
func (t *Tree) Find(name string) *Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.find(name)
}

func (t *Tree) find(name string) *Node {
	if n, ok := t.roots[key(name)]; ok {
		return n
	}
	if target, ok := t.aliases[key(name)]; ok {
		return t.roots[target]
	}
	return nil
}

// FindDeepest resolves tokens below the root name. It descends greedily,
// one token per level, and stops at the first token that names no child.
// It returns the deepest node, the matched path joined by spaces and the
// tokens that were not consumed. The node is nil if name is unknown.
func (t *Tree) FindDeepest(name string, tokens []string) (*Node, string, []string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	current := t.find(name)
	if current == nil {
		return nil, "", append([]string(nil), tokens...)
	}

	pattern := []string{current.Name()}
	i := 0
	for ; i < len(tokens); i++ {
		next := current.Child(tokens[i])
		if next == nil {
			break
		}
		current = next
		pattern = append(pattern, next.Name())
	}
	return current, strings.Join(pattern, " "), append([]string(nil), tokens[i:]...)
}

// Roots returns the root nodes sorted by name
func (t *Tree) Roots() []*Node {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*Node, 0, len(t.roots))
	for _, n := range t.roots {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i].Name()) < key(out[j].Name()) })
	return out
}

// RootNames returns the root names, and their aliases if requested, sorted
func (t *Tree) RootNames(withAliases bool) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.roots)+len(t.aliases))
	for _, n := range t.roots {
		out = append(out, n.Name())
	}
	if withAliases {
		for alias := range t.aliases {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// Walk visits every node depth first, roots in name order
func (t *Tree) Walk(fn func(node *Node, depth int)) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	for _, root := range t.Roots() {
		t.mu.RLock()
		visit(root, 0)
		t.mu.RUnlock()
	}
}

// Len returns the number of roots
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.roots)
}

// addRoot stores node and its aliases (lock held)
func (t *Tree) addRoot(node *Node) {
	node.parent = nil
	t.roots[key(node.Name())] = node
	t.indexAliases(node)

	if t.notifier != nil {
		go t.notifier(node.Name())
	}
}

// dropAliases removes the aliases owned by node (lock held)
func (t *Tree) dropAliases(node *Node) {
	owner := key(node.Name())
	for alias, o := range t.aliases {
		if o == owner {
			delete(t.aliases, alias)
		}
	}
}

func (t *Tree) indexAliases(node *Node) {
	for _, alias := range node.command.Aliases() {
		k := key(alias)
		if _, clash := t.roots[k]; clash {
			t.logger.Warn("Alias shadows a command name, ignored", "alias", alias, "command", node.Name())
			continue
		}
		if owner, taken := t.aliases[k]; taken && owner != key(node.Name()) {
			t.logger.Warn("Alias already taken, ignored", "alias", alias, "command", node.Name(), "owner", owner)
			continue
		}
		t.aliases[k] = key(node.Name())
	}
}
