package command

import (
	"fmt"
	"strings"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
)

// FeedbackType classifies the outcome of a dispatch
type FeedbackType int

const (
	FeedbackSuccess FeedbackType = iota
	FeedbackNonExistent
	FeedbackUnverified
	FeedbackFormat
	FeedbackInvalidIdentifier
	FeedbackMissingArgument
	FeedbackRuleViolation
	FeedbackParseFailure
	FeedbackUnauthorized
	FeedbackActionFailure
)

var feedbackNames = map[FeedbackType]string{
	FeedbackSuccess:           "success",
	FeedbackNonExistent:       "non-existent",
	FeedbackUnverified:        "unverified",
	FeedbackFormat:            "format",
	FeedbackInvalidIdentifier: "invalid-identifier",
	FeedbackMissingArgument:   "missing-argument",
	FeedbackRuleViolation:     "rule-violation",
	FeedbackParseFailure:      "parse-failure",
	FeedbackUnauthorized:      "unauthorized",
	FeedbackActionFailure:     "action-failure",
}

var feedbackTemplates = map[FeedbackType]string{
	FeedbackSuccess:           "command %s completed",
	FeedbackNonExistent:       "command %s does not exist",
	FeedbackUnverified:        "command %s has not been verified",
	FeedbackFormat:            "invalid argument format for command %s",
	FeedbackInvalidIdentifier: "unknown argument identifier for command %s",
	FeedbackMissingArgument:   "missing required argument for command %s",
	FeedbackRuleViolation:     "argument rule violated for command %s",
	FeedbackParseFailure:      "could not parse arguments of command %s",
	FeedbackUnauthorized:      "not permitted to execute command %s",
	FeedbackActionFailure:     "execution of command %s failed",
}

var feedbackCodes = map[FeedbackType]dlgerror.Code{
	FeedbackNonExistent:       dlgerror.CodeCommandNonExistent,
	FeedbackUnverified:        dlgerror.CodeCommandUnverified,
	FeedbackFormat:            dlgerror.CodeDispatchFormat,
	FeedbackInvalidIdentifier: dlgerror.CodeInvalidIdentifier,
	FeedbackMissingArgument:   dlgerror.CodeMissingArgument,
	FeedbackRuleViolation:     dlgerror.CodeRuleViolation,
	FeedbackParseFailure:      dlgerror.CodeArgumentParse,
	FeedbackUnauthorized:      dlgerror.CodeUnauthorized,
	FeedbackActionFailure:     dlgerror.CodeActionFailed,
}

// String returns the feedback name
func (f FeedbackType) String() string {
	if name, ok := feedbackNames[f]; ok {
		return name
	}
	return fmt.Sprintf("feedback(%d)", int(f))
}

// Message renders the feedback template for a command path
func (f FeedbackType) Message(command string) string {
	tmpl, ok := feedbackTemplates[f]
	if !ok {
		tmpl = "command %s: " + f.String()
	}
	return fmt.Sprintf(tmpl, command)
}

// Code returns the error code of the feedback, CodeUnknown for success
func (f FeedbackType) Code() dlgerror.Code {
	if code, ok := feedbackCodes[f]; ok {
		return code
	}
	return dlgerror.CodeUnknown
}

// ParseFeedbackType is the inverse of String
func ParseFeedbackType(s string) (FeedbackType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range feedbackNames {
		if name == s {
			return f, true
		}
	}
	return 0, false
}
