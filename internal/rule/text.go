package rule

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PolyRocketMatt/Delegate-sub000/foundation/core/validation"
)

func runeCount(input string) any {
	return utf8.RuneCountInString(input)
}

func identity(input string) any {
	return input
}

// MinLength requires at least n characters
func MinLength(n int) Rule {
	return New(fmt.Sprintf("min-length(%d)", n), runeCount, func(input string, length int) validation.Result {
		if length < n {
			return Fail(validation.CodeLength, "input %q is shorter than %d characters", input, n)
		}
		return Pass()
	})
}

// MaxLength allows at most n characters
func MaxLength(n int) Rule {
	return New(fmt.Sprintf("max-length(%d)", n), runeCount, func(input string, length int) validation.Result {
		if length > n {
			return Fail(validation.CodeLength, "input %q is longer than %d characters", input, n)
		}
		return Pass()
	})
}

// NonNull rejects empty or blank input
func NonNull() Rule {
	return New("non-null", identity, func(input string, value string) validation.Result {
		if strings.TrimSpace(value) == "" {
			return Fail(validation.CodeRequired, "input must not be empty")
		}
		return Pass()
	})
}

// Condition fails with message when predicate returns false. Every %s in
// the message is replaced by the input; other verbs are kept literally.
func Condition(name string, predicate func(input string) bool, message string) Rule {
	return New(name, func(input string) any { return predicate(input) }, func(input string, ok bool) validation.Result {
		if ok {
			return Pass()
		}
		return Fail(validation.CodeCustom, "%s", strings.ReplaceAll(message, "%s", input))
	})
}

// Pattern requires the input to match expr. It panics if expr does not compile.
func Pattern(expr string) Rule {
	re := regexp.MustCompile(expr)
	return New("pattern("+expr+")", func(input string) any { return re.MatchString(input) }, func(input string, matched bool) validation.Result {
		if !matched {
			return Fail(validation.CodePattern, "input %q does not match format %s", input, expr)
		}
		return Pass()
	})
}

// OneOf requires the input to equal one of values, ignoring case
func OneOf(values ...string) Rule {
	return New("one-of", identity, func(input string, value string) validation.Result {
		for _, v := range values {
			if strings.EqualFold(v, value) {
				return Pass()
			}
		}
		return Fail(validation.CodeChoice, "input %q is not one of [%s]", input, strings.Join(values, ", "))
	})
}
