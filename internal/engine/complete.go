package engine

import (
	"sort"
	"strings"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/tree"
)

// Complete returns candidates for the last of tokens. The first token is the
// root command; an empty last token lists every candidate at that level.
// Below a leaf the declared argument identifiers are offered as "id=".
func (e *Engine) Complete(tokens []string) []string {
	return e.completions.Lookup(tokens, func() []string {
		return e.complete(tokens)
	})
}

func (e *Engine) complete(tokens []string) []string {
	if len(tokens) <= 1 {
		prefix := ""
		if len(tokens) == 1 {
			prefix = tokens[0]
		}
		return filterPrefix(e.tree.RootNames(true), prefix)
	}

	prefix := tokens[len(tokens)-1]
	node, _, remaining := e.tree.FindDeepest(tokens[0], tokens[1:len(tokens)-1])
	if node == nil || len(remaining) > 0 {
		return nil
	}

	candidates := make([]string, 0, len(node.Children()))
	for _, child := range node.Children() {
		candidates = append(candidates, child.Name())
	}
	if descriptor, ok := node.Descriptor(); ok {
		for _, arg := range descriptor.Arguments() {
			candidates = append(candidates, arg.Identifier()+"=")
		}
	}
	sort.Strings(candidates)
	return filterPrefix(candidates, prefix)
}

func filterPrefix(candidates []string, prefix string) []string {
	if prefix == "" {
		return candidates
	}
	lower := strings.ToLower(prefix)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			out = append(out, c)
		}
	}
	return out
}

// Usage renders the synopsis of the command addressed by name and tokens,
// followed by its arguments and sub-commands. It reports false when name
// is unknown.
func (e *Engine) Usage(name string, tokens ...string) (string, bool) {
	node, _, _ := e.tree.FindDeepest(name, tokens)
	if node == nil {
		return "", false
	}
	return FormatUsage(node), true
}

// FormatUsage renders the usage text of node
func FormatUsage(node *tree.Node) string {
	var b strings.Builder

	b.WriteString(node.FullName())
	descriptor, verified := node.Descriptor()
	if verified {
		for _, arg := range descriptor.Arguments() {
			if arg.IsOptional() {
				b.WriteString(" [" + arg.Identifier() + "]")
			} else {
				b.WriteString(" <" + arg.Identifier() + ">")
			}
		}
	}
	if desc := node.Command().Description(); desc != "" {
		b.WriteString("\n  " + desc)
	}
	if aliases := node.Command().Aliases(); len(aliases) > 0 {
		b.WriteString("\n  aliases: " + strings.Join(aliases, ", "))
	}

	if verified && len(descriptor.Arguments()) > 0 {
		b.WriteString("\n\nArguments:")
		for _, arg := range descriptor.Arguments() {
			b.WriteString("\n  " + arg.Identifier() + " (" + arg.Type() + ")")
			if arg.Description() != "" {
				b.WriteString("  " + arg.Description())
			}
		}
	}

	if children := node.Children(); len(children) > 0 {
		b.WriteString("\n\nSub-commands:")
		for _, child := range children {
			b.WriteString("\n  " + child.Name())
			if desc := child.Command().Description(); desc != "" {
				b.WriteString("  " + desc)
			}
		}
	}
	return b.String()
}
