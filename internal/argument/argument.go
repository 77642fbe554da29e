// Package argument provides typed command arguments. An argument parses raw
// token text into a typed value, falling back to its default when the text
// is absent or malformed.
package argument

import (
	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/rule"
)

// Argument is the type-erased view the engine works with
type Argument interface {
	Identifier() string
	Description() string
	// Type is the human readable type tag used in errors and usage output
	Type() string
	IsOptional() bool
	HasDefault() bool
	Rules() []rule.Rule
	// Parse converts raw, nil meaning the token was not supplied. usedDefault
	// reports whether the value is the declared default.
	Parse(raw *string) (value any, usedDefault bool, err error)
	// ParseRules evaluates the rule chain against raw, stopping at the
	// first failure.
	ParseRules(raw string) error
}

// Typed is an argument producing values of type T
type Typed[T any] struct {
	identifier  string
	description string
	typeName    string
	optional    bool
	def         T
	hasDefault  bool
	rules       []rule.Rule
	convert     func(string) (T, error)
	format      func(T) string
}

// New creates a typed argument. convert parses raw text, format renders a
// value back into text that convert accepts.
func New[T any](identifier, description, typeName string, convert func(string) (T, error), format func(T) string) *Typed[T] {
	return &Typed[T]{
		identifier:  identifier,
		description: description,
		typeName:    typeName,
		convert:     convert,
		format:      format,
	}
}

// WithDefault sets the value used when input is absent or unparsable
func (a *Typed[T]) WithDefault(value T) *Typed[T] {
	a.def = value
	a.hasDefault = true
	return a
}

// Optional marks the argument as not required
func (a *Typed[T]) Optional() *Typed[T] {
	a.optional = true
	return a
}

// WithRules appends rules evaluated against the raw input
func (a *Typed[T]) WithRules(rules ...rule.Rule) *Typed[T] {
	a.rules = append(a.rules, rules...)
	return a
}

// Identifier returns the argument identifier
func (a *Typed[T]) Identifier() string { return a.identifier }

// Description returns the argument description
func (a *Typed[T]) Description() string { return a.description }

// Type returns the type tag
func (a *Typed[T]) Type() string { return a.typeName }

// IsOptional reports whether the argument may be omitted
func (a *Typed[T]) IsOptional() bool { return a.optional }

// HasDefault reports whether a default value is declared
func (a *Typed[T]) HasDefault() bool { return a.hasDefault }

// Default returns the declared default
func (a *Typed[T]) Default() (T, bool) { return a.def, a.hasDefault }

// Rules returns a copy of the rule chain
func (a *Typed[T]) Rules() []rule.Rule {
	out := make([]rule.Rule, len(a.rules))
	copy(out, a.rules)
	return out
}

// ParseValue is the typed form of Parse
func (a *Typed[T]) ParseValue(raw *string) (T, bool, error) {
	if raw == nil {
		if a.hasDefault {
			return a.def, true, nil
		}
		var zero T
		return zero, false, a.missing()
	}

	value, err := a.convert(*raw)
	if err != nil {
		if a.hasDefault {
			return a.def, true, nil
		}
		var zero T
		return zero, false, a.unparsable(*raw, err)
	}
	return value, false, nil
}

// Parse implements Argument
func (a *Typed[T]) Parse(raw *string) (any, bool, error) {
	return a.ParseValue(raw)
}

// ParseRules implements Argument
func (a *Typed[T]) ParseRules(raw string) error {
	return rule.Evaluate(a.identifier, a.rules, raw, false)
}

// Format renders value in the form accepted by Parse
func (a *Typed[T]) Format(value T) string {
	return a.format(value)
}

func (a *Typed[T]) missing() error {
	return dlgerror.Newf("missing value for argument %s of type %s", a.identifier, a.typeName).
		WithCode(dlgerror.CodeArgumentParse).
		WithDetail("argument", a.identifier).
		WithDetail("type", a.typeName)
}

func (a *Typed[T]) unparsable(raw string, cause error) error {
	return dlgerror.Wrap(cause, "could not parse \""+raw+"\" as "+a.typeName).
		WithCode(dlgerror.CodeArgumentParse).
		WithDetail("argument", a.identifier).
		WithDetail("type", a.typeName).
		WithDetail("input", raw)
}
