// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so log output and the audit
//              trail can separate user mistakes from broken command sets.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-18 v0.2.0: Severity mapping for dispatch codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates bad user input, e.g. an unparsable argument
	SeverityLow Severity = iota

	// SeverityMedium indicates a failure with a workaround
	SeverityMedium

	// SeverityHigh indicates a broken command declaration or denied access
	SeverityHigh

	// SeverityCritical indicates the engine cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal, CodeDatabaseError:
		return SeverityCritical

	case CodeStructureMissingName, CodeStructureMissingDescription, CodeStructureDuplicateID,
		CodeStructureDuplicateName, CodeStructureInvalidPrecedence, CodeRegistrationMerge, CodeUnauthorized, CodeInvalidConfig:
		return SeverityHigh

	case CodeActionFailed, CodeCommandUnverified, CodeConfigError, CodeCanceled:
		return SeverityMedium

	case CodeInvalidInput, CodeNotFound, CodeCommandNonExistent, CodeDispatchFormat,
		CodeInvalidIdentifier, CodeMissingArgument, CodeRuleViolation, CodeArgumentParse:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
