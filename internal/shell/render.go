package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/engine"
)

// RenderReport formats the outcome of a dispatch: the feedback line
// followed by one line per action result
func RenderReport(report engine.Report, err error) string {
	var b strings.Builder

	switch {
	case err != nil:
		b.WriteString(ErrorStyle.Render("✗ " + err.Error()))
	case !report.Handled:
		b.WriteString(WarningStyle.Render("? " + report.Message))
	case report.Feedback == command.FeedbackSuccess:
		b.WriteString(SuccessStyle.Render("✓ " + report.Message))
	default:
		b.WriteString(WarningStyle.Render("! " + report.Message))
	}

	if report.Capture == nil {
		return b.String()
	}
	for _, r := range report.Capture.Results() {
		b.WriteString("\n  ")
		if r.Succeeded() {
			line := r.Action
			if r.Value != nil {
				line += " = " + fmt.Sprint(r.Value)
			}
			b.WriteString(ValueStyle.Render(line))
		} else {
			b.WriteString(ErrorStyle.Render(r.Action + ": " + r.Err.Error()))
		}
		b.WriteString(HelpDescStyle.Render(fmt.Sprintf(" (%s)", r.Duration.Round(time.Microsecond))))
	}
	return b.String()
}
