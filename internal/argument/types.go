package argument

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// String accepts any text
func String(identifier, description string) *Typed[string] {
	return New(identifier, description, "string",
		func(s string) (string, error) { return s, nil },
		func(v string) string { return v })
}

// Int parses a platform sized integer
func Int(identifier, description string) *Typed[int] {
	return New(identifier, description, "int",
		func(s string) (int, error) { return strconv.Atoi(strings.TrimSpace(s)) },
		strconv.Itoa)
}

// Long parses a 64 bit integer
func Long(identifier, description string) *Typed[int64] {
	return New(identifier, description, "long",
		func(s string) (int64, error) { return strconv.ParseInt(strings.TrimSpace(s), 10, 64) },
		func(v int64) string { return strconv.FormatInt(v, 10) })
}

// Float parses a 32 bit float
func Float(identifier, description string) *Typed[float32] {
	return New(identifier, description, "float",
		func(s string) (float32, error) {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
			return float32(v), err
		},
		func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) })
}

// Double parses a 64 bit float
func Double(identifier, description string) *Typed[float64] {
	return New(identifier, description, "double",
		func(s string) (float64, error) { return strconv.ParseFloat(strings.TrimSpace(s), 64) },
		func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) })
}

// Bool parses true/false, yes/no, on/off and 1/0
func Bool(identifier, description string) *Typed[bool] {
	return New(identifier, description, "bool", parseBool, strconv.FormatBool)
}

// Char parses exactly one character
func Char(identifier, description string) *Typed[rune] {
	return New(identifier, description, "char",
		func(s string) (rune, error) {
			if utf8.RuneCountInString(s) != 1 {
				return 0, fmt.Errorf("expected a single character, got %d", utf8.RuneCountInString(s))
			}
			r, _ := utf8.DecodeRuneInString(s)
			return r, nil
		},
		func(v rune) string { return string(v) })
}

// Duration parses Go duration syntax such as 1m30s
func Duration(identifier, description string) *Typed[time.Duration] {
	return New(identifier, description, "duration",
		func(s string) (time.Duration, error) { return time.ParseDuration(strings.TrimSpace(s)) },
		func(v time.Duration) string { return v.String() })
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1", "t", "y":
		return true, nil
	case "false", "no", "off", "0", "f", "n":
		return false, nil
	}
	return false, errors.New("not a boolean")
}
