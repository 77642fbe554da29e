package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PolyRocketMatt/Delegate-sub000/foundation/core/validation"
)

// Number is the set of types numeric rules can bound
type Number interface {
	int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

type boundKind int

const (
	boundMin boundKind = iota
	boundMax
	boundRange
)

// parsed is the intermediate value of a numeric rule
type parsed[N Number] struct {
	value N
	err   error
}

// Numeric bounds a number from below, above or both. Bounds are inclusive
// unless changed with Inclusive or Exclusive.
type Numeric[N Number] struct {
	kind           boundKind
	lower, upper   N
	lowerInclusive bool
	upperInclusive bool
}

// Min requires input >= bound
func Min[N Number](bound N) *Numeric[N] {
	return &Numeric[N]{kind: boundMin, lower: bound, lowerInclusive: true, upperInclusive: true}
}

// Max requires input <= bound
func Max[N Number](bound N) *Numeric[N] {
	return &Numeric[N]{kind: boundMax, upper: bound, lowerInclusive: true, upperInclusive: true}
}

// Range requires lower <= input <= upper
func Range[N Number](lower, upper N) *Numeric[N] {
	return &Numeric[N]{kind: boundRange, lower: lower, upper: upper, lowerInclusive: true, upperInclusive: true}
}

// Inclusive sets the inclusiveness of each bound
func (r *Numeric[N]) Inclusive(lower, upper bool) *Numeric[N] {
	r.lowerInclusive = lower
	r.upperInclusive = upper
	return r
}

// Exclusive makes both bounds exclusive
func (r *Numeric[N]) Exclusive() *Numeric[N] {
	return r.Inclusive(false, false)
}

// Name returns the rule name
func (r *Numeric[N]) Name() string {
	switch r.kind {
	case boundMin:
		return fmt.Sprintf("min(%v)", r.lower)
	case boundMax:
		return fmt.Sprintf("max(%v)", r.upper)
	default:
		return fmt.Sprintf("range(%v, %v)", r.lower, r.upper)
	}
}

// Apply runs the rule against input. Input that is not a number fails.
func (r *Numeric[N]) Apply(input string) validation.Result {
	return New(r.Name(), r.parse, r.interpret).Apply(input)
}

func (r *Numeric[N]) parse(input string) any {
	value, err := parseNumber[N](strings.TrimSpace(input))
	return parsed[N]{value: value, err: err}
}

func (r *Numeric[N]) interpret(input string, p parsed[N]) validation.Result {
	if p.err != nil {
		return Fail(validation.CodeType, "input %s is not a valid number", input)
	}
	v := p.value

	if r.kind != boundMax {
		if v < r.lower || (!r.lowerInclusive && v == r.lower) {
			return r.violation(input, "smaller than the minimum", r.lower, r.lowerInclusive)
		}
	}
	if r.kind != boundMin {
		if v > r.upper || (!r.upperInclusive && v == r.upper) {
			return r.violation(input, "larger than the maximum", r.upper, r.upperInclusive)
		}
	}
	return Pass()
}

func (r *Numeric[N]) violation(input, relation string, bound N, inclusive bool) validation.Result {
	qualifier := "inclusive"
	if !inclusive {
		qualifier = "exclusive"
	}
	result := Fail(validation.CodeRange, "input %s is %s of %v (%s)", input, relation, bound, qualifier)
	result.Violations[0].Value = input
	result.Violations[0].Expected = bound
	return result
}

func parseNumber[N Number](s string) (N, error) {
	var zero N
	var out any

	switch any(zero).(type) {
	case int:
		v, err := strconv.ParseInt(s, 10, strconv.IntSize)
		if err != nil {
			return zero, err
		}
		out = int(v)
	case int8:
		v, err := strconv.ParseInt(s, 10, 8)
		if err != nil {
			return zero, err
		}
		out = int8(v)
	case int16:
		v, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return zero, err
		}
		out = int16(v)
	case int32:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return zero, err
		}
		out = int32(v)
	case int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return zero, err
		}
		out = v
	case uint:
		v, err := strconv.ParseUint(s, 10, strconv.IntSize)
		if err != nil {
			return zero, err
		}
		out = uint(v)
	case uint8:
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return zero, err
		}
		out = uint8(v)
	case uint16:
		v, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return zero, err
		}
		out = uint16(v)
	case uint32:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return zero, err
		}
		out = uint32(v)
	case uint64:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return zero, err
		}
		out = v
	case float32:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return zero, err
		}
		out = float32(v)
	case float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return zero, err
		}
		out = v
	}
	return out.(N), nil
}
