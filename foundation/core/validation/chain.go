// File: chain.go
// Title: Validator Chain
// Description: Runs an ordered list of validators against one value, either
//              stopping at the first failure or collecting every violation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Context-free validators, field tagging

package validation

import "fmt"

// Validator validates a single value
type Validator interface {
	Validate(value interface{}) Result
}

// ValidatorFunc adapts a function to Validator
type ValidatorFunc func(value interface{}) Result

// Validate calls f(value)
func (f ValidatorFunc) Validate(value interface{}) Result {
	return f(value)
}

// Chain runs validators in insertion order
type Chain struct {
	name             string
	validators       []Validator
	stopOnFirstError bool
}

// NewChain creates an empty chain. The name is copied into the Field of
// every violation that does not already carry one.
func NewChain(name string) *Chain {
	return &Chain{name: name}
}

// Add appends a validator
func (c *Chain) Add(v Validator) *Chain {
	c.validators = append(c.validators, v)
	return c
}

// AddFunc appends a validator function
func (c *Chain) AddFunc(fn ValidatorFunc) *Chain {
	c.validators = append(c.validators, fn)
	return c
}

// StopOnFirstError controls whether validation halts at the first failure
func (c *Chain) StopOnFirstError(stop bool) *Chain {
	c.stopOnFirstError = stop
	return c
}

// Validate runs the chain against value
func (c *Chain) Validate(value interface{}) Result {
	results := make([]Result, 0, len(c.validators))
	for _, v := range c.validators {
		result := v.Validate(value)
		for i := range result.Violations {
			if result.Violations[i].Field == "" {
				result.Violations[i].Field = c.name
			}
		}
		results = append(results, result)
		if c.stopOnFirstError && !result.Valid {
			break
		}
	}
	return Combine(results...)
}

// Len returns the number of validators
func (c *Chain) Len() int {
	return len(c.validators)
}

// Name returns the chain name
func (c *Chain) Name() string {
	return c.name
}

// String describes the chain
func (c *Chain) String() string {
	name := c.name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("Chain{name: %s, validators: %d, stopOnFirstError: %v}", name, len(c.validators), c.stopOnFirstError)
}
