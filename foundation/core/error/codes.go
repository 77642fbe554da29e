// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across Delegate. Codes classify
//              failures of command structure, registration and dispatch so
//              callers and the audit store can react to them uniformly.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-18 v0.2.0: Command structure, registration and dispatch codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeCanceled     Code = "CANCELED"

	// Command structure (compile time)
	CodeStructureMissingName        Code = "STRUCTURE_MISSING_NAME"
	CodeStructureMissingDescription Code = "STRUCTURE_MISSING_DESCRIPTION"
	CodeStructureDuplicateID        Code = "STRUCTURE_DUPLICATE_IDENTIFIER"
	CodeStructureDuplicateName      Code = "STRUCTURE_DUPLICATE_NAME"
	CodeStructureInvalidPrecedence  Code = "STRUCTURE_INVALID_PRECEDENCE"

	// Registration
	CodeRegistrationMerge Code = "REGISTRATION_MERGE"

	// Dispatch
	CodeCommandNonExistent Code = "COMMAND_NON_EXISTENT"
	CodeCommandUnverified  Code = "COMMAND_UNVERIFIED"
	CodeDispatchFormat     Code = "DISPATCH_FORMAT"
	CodeInvalidIdentifier  Code = "DISPATCH_INVALID_IDENTIFIER"
	CodeMissingArgument    Code = "DISPATCH_MISSING_ARGUMENT"
	CodeRuleViolation      Code = "RULE_VIOLATION"
	CodeArgumentParse      Code = "ARGUMENT_PARSE"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeActionFailed       Code = "ACTION_FAILED"

	// Configuration and storage
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeDatabaseError Code = "DATABASE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeCanceled,
		CodeStructureMissingName, CodeStructureMissingDescription, CodeStructureDuplicateID, CodeStructureDuplicateName,
		CodeStructureInvalidPrecedence, CodeRegistrationMerge,
		CodeCommandNonExistent, CodeCommandUnverified, CodeDispatchFormat, CodeInvalidIdentifier,
		CodeMissingArgument, CodeRuleViolation, CodeArgumentParse, CodeUnauthorized, CodeActionFailed,
		CodeConfigError, CodeInvalidConfig, CodeDatabaseError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeStructureMissingName, CodeStructureMissingDescription, CodeStructureDuplicateID, CodeStructureDuplicateName,
		CodeStructureInvalidPrecedence:
		return "structure"
	case CodeRegistrationMerge:
		return "registration"
	case CodeCommandNonExistent, CodeCommandUnverified, CodeDispatchFormat, CodeInvalidIdentifier, CodeMissingArgument:
		return "dispatch"
	case CodeRuleViolation, CodeArgumentParse:
		return "validation"
	case CodeUnauthorized:
		return "authorization"
	case CodeActionFailed:
		return "execution"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeDatabaseError:
		return "database"
	default:
		return "generic"
	}
}
