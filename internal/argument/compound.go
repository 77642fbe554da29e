package argument

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval is an inclusive pair of bounds
type Interval[N int | float64] struct {
	Min N
	Max N
}

// Contains reports whether v lies within the interval
func (r Interval[N]) Contains(v N) bool {
	return v >= r.Min && v <= r.Max
}

// IntRange parses "a..b" or "a-b" into an integer interval
func IntRange(identifier, description string) *Typed[Interval[int]] {
	return New(identifier, description, "int range",
		func(s string) (Interval[int], error) { return parseInterval(s, strconv.Atoi) },
		func(v Interval[int]) string { return fmt.Sprintf("%d..%d", v.Min, v.Max) })
}

// DoubleRange parses "a..b" or "a-b" into a floating point interval
func DoubleRange(identifier, description string) *Typed[Interval[float64]] {
	return New(identifier, description, "double range",
		func(s string) (Interval[float64], error) {
			return parseInterval(s, func(p string) (float64, error) { return strconv.ParseFloat(p, 64) })
		},
		func(v Interval[float64]) string {
			return strconv.FormatFloat(v.Min, 'g', -1, 64) + ".." + strconv.FormatFloat(v.Max, 'g', -1, 64)
		})
}

// parseInterval splits on ".." first. The "-" form splits on the first dash
// after the leading sign so negative lower bounds still work.
func parseInterval[N int | float64](s string, conv func(string) (N, error)) (Interval[N], error) {
	s = strings.TrimSpace(s)

	var lo, hi string
	if i := strings.Index(s, ".."); i >= 0 {
		lo, hi = s[:i], s[i+2:]
	} else if i := strings.Index(s[min(1, len(s)):], "-"); i >= 0 {
		i += min(1, len(s))
		lo, hi = s[:i], s[i+1:]
	} else {
		return Interval[N]{}, fmt.Errorf("expected <min>..<max>, got %q", s)
	}

	a, err := conv(strings.TrimSpace(lo))
	if err != nil {
		return Interval[N]{}, err
	}
	b, err := conv(strings.TrimSpace(hi))
	if err != nil {
		return Interval[N]{}, err
	}
	if a > b {
		return Interval[N]{}, fmt.Errorf("lower bound %v exceeds upper bound %v", a, b)
	}
	return Interval[N]{Min: a, Max: b}, nil
}

// Enum accepts one of values, matched case-insensitively. The parsed value
// is the declared spelling.
func Enum(identifier, description string, values ...string) *Typed[string] {
	declared := append([]string(nil), values...)
	return New(identifier, description, "one of ["+strings.Join(declared, "|")+"]",
		func(s string) (string, error) {
			for _, v := range declared {
				if strings.EqualFold(v, strings.TrimSpace(s)) {
					return v, nil
				}
			}
			return "", fmt.Errorf("%q is not a known value", s)
		},
		func(v string) string { return v })
}
