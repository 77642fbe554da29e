package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/foundation/core/validation"
)

func TestNumericBounds(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		input string
		valid bool
	}{
		{"min inclusive at bound", Min(0), "0", true},
		{"min below", Min(0), "-1", false},
		{"min exclusive at bound", Min(0).Exclusive(), "0", false},
		{"max inclusive at bound", Max(10), "10", true},
		{"max above", Max(10), "15", false},
		{"max exclusive at bound", Max(10).Exclusive(), "10", false},
		{"range inside", Range(1, 5), "3", true},
		{"range lower exclusive", Range(1, 5).Inclusive(false, true), "1", false},
		{"range upper inclusive", Range(1, 5).Inclusive(false, true), "5", true},
		{"float range", Range(0.5, 1.5), "1.25", true},
		{"float above", Max(1.5), "1.75", false},
		{"int64 bound", Min[int64](1 << 40), "1099511627776", true},
		{"not a number", Max(10), "abc", false},
		{"float for int rule", Max(10), "1.5", false},
		{"surrounding space", Max(10), " 7 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.rule.Apply(tt.input)
			assert.Equal(t, tt.valid, result.Valid, "result: %s", result)
		})
	}
}

func TestNumericNeverPanics(t *testing.T) {
	for _, input := range []string{"", "  ", "1e999", "--1", "0x10", "NaN-ish"} {
		assert.NotPanics(t, func() { Range(0, 10).Apply(input) })
	}
}

func TestMaxMessageNamesInputAndBound(t *testing.T) {
	result := Max(10).Apply("15")
	require.False(t, result.Valid)

	msg := result.First().Message
	assert.Contains(t, msg, "15")
	assert.Contains(t, msg, "10")
	assert.Equal(t, validation.CodeRange, result.First().Code)
}

func TestNewMismatch(t *testing.T) {
	r := New("broken", func(input string) any { return len(input) }, func(input string, value string) validation.Result {
		return Pass()
	})

	result := r.Apply("hello")
	require.False(t, result.Valid)
	assert.Equal(t, MismatchMessage, result.First().Message)
	assert.Equal(t, validation.CodeMismatch, result.First().Code)
}

func TestNewCustomRule(t *testing.T) {
	even := New("even", func(input string) any { return len(input) % 2 }, func(input string, rem int) validation.Result {
		if rem != 0 {
			return Fail(validation.CodeCustom, "input %q has odd length", input)
		}
		return Pass()
	})

	assert.Equal(t, "even", even.Name())
	assert.True(t, even.Apply("ab").Valid)
	assert.False(t, even.Apply("abc").Valid)
}

func TestTextRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		input string
		valid bool
	}{
		{"min length ok", MinLength(3), "abc", true},
		{"min length short", MinLength(3), "ab", false},
		{"min length counts runes", MinLength(3), "äöü", true},
		{"max length ok", MaxLength(3), "abc", true},
		{"max length long", MaxLength(3), "abcd", false},
		{"non-null", NonNull(), "x", true},
		{"non-null blank", NonNull(), "   ", false},
		{"pattern match", Pattern(`^[a-z]+$`), "abc", true},
		{"pattern miss", Pattern(`^[a-z]+$`), "ab1", false},
		{"one of", OneOf("red", "green"), "GREEN", true},
		{"one of miss", OneOf("red", "green"), "blue", false},
		{"condition", Condition("even", func(s string) bool { return len(s)%2 == 0 }, "%s must have even length"), "ab", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.rule.Apply(tt.input).Valid)
		})
	}
}

func TestConditionMessage(t *testing.T) {
	withInput := Condition("c", func(string) bool { return false }, "%s is not allowed").Apply("root")
	assert.Equal(t, "root is not allowed", withInput.First().Message)

	plain := Condition("c", func(string) bool { return false }, "100% wrong").Apply("x")
	assert.Equal(t, "100% wrong", plain.First().Message)

	otherVerbs := Condition("c", func(string) bool { return false }, "%s exceeds %d items").Apply("list")
	assert.Equal(t, "list exceeds %d items", otherVerbs.First().Message)

	twice := Condition("c", func(string) bool { return false }, "%s or %s").Apply("a")
	assert.Equal(t, "a or a", twice.First().Message)
}

func TestEvaluate(t *testing.T) {
	rules := []Rule{Min(0), Max(10), Pattern(`^\d$`)}

	require.NoError(t, Evaluate("amount", rules, "5", false))
	require.NoError(t, Evaluate("amount", nil, "anything", false))

	err := Evaluate("amount", rules, "15", false)
	require.Error(t, err)
	assert.True(t, dlgerror.HasCode(err, dlgerror.CodeRuleViolation))
	assert.Contains(t, err.Error(), "maximum")
	assert.NotContains(t, err.Error(), "format", "evaluation must stop at the first failure")

	err = Evaluate("amount", rules, "15", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum")
	assert.Contains(t, err.Error(), "format")
}
