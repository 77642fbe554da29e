package shell

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary  = lipgloss.Color("#8B5CF6")
	ColorAccent   = lipgloss.Color("#06B6D4")
	ColorSuccess  = lipgloss.Color("#10B981")
	ColorWarning  = lipgloss.Color("#F59E0B")
	ColorError    = lipgloss.Color("#EF4444")
	ColorText     = lipgloss.Color("#F8FAFC")
	ColorMuted    = lipgloss.Color("#94A3B8")
	ColorDimmed   = lipgloss.Color("#64748B")
	ColorBorder   = lipgloss.Color("#374151")
	ColorBgStatus = lipgloss.Color("#1E293B")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	EchoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(ColorDimmed).
			Italic(true)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorBgStatus).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorDimmed)
)
