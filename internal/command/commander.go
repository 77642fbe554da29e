// Package command holds the data model shared by the compiler, the command
// tree and the execution engine.
package command

import "strings"

// Commander is the entity issuing a command
type Commander interface {
	Identifier() string
	HasPermission(tier Permission) bool
}

// Permission is a named authorization tier
type Permission string

// Wildcard grants every tier
const Wildcard Permission = "*"

// Static is a Commander with a fixed set of tiers. A tier ending in ".*"
// grants every tier below that prefix.
type Static struct {
	ID    string
	Tiers []Permission
}

// NewStatic creates a Static commander
func NewStatic(id string, tiers ...Permission) *Static {
	return &Static{ID: id, Tiers: tiers}
}

// Identifier returns the commander ID
func (s *Static) Identifier() string {
	return s.ID
}

// HasPermission reports whether tier is granted
func (s *Static) HasPermission(tier Permission) bool {
	for _, t := range s.Tiers {
		if Grants(t, tier) {
			return true
		}
	}
	return false
}

// Grants reports whether granted covers requested
func Grants(granted, requested Permission) bool {
	if granted == Wildcard || granted == requested {
		return true
	}
	g := string(granted)
	if strings.HasSuffix(g, ".*") {
		return strings.HasPrefix(string(requested), strings.TrimSuffix(g, "*"))
	}
	return false
}
