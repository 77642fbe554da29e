// Package shell is an interactive prompt that dispatches commands against
// an engine, with tab completion and input history.
package shell

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/engine"
)

// Config configures the shell
type Config struct {
	Engine    *engine.Engine
	Commander command.Commander
	Title     string
}

// dispatchMsg carries the outcome of one dispatched line
type dispatchMsg struct {
	line   string
	report engine.Report
	err    error
}

// Model is the bubbletea model of the shell
type Model struct {
	input    textinput.Model
	viewport viewport.Model

	engine    *engine.Engine
	commander command.Commander
	title     string

	output      []string
	suggestions []string
	busy        bool

	inputHistory []string
	historyIndex int
	currentInput string

	width  int
	height int
	ready  bool
}

// New creates a shell model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "command [arguments...]  (tab completes, help lists commands)"
	ti.Prompt = PromptStyle.Render("delegate> ")
	ti.CharLimit = 1024
	ti.Focus()

	title := cfg.Title
	if title == "" {
		title = "Delegate"
	}

	return Model{
		input:        ti,
		viewport:     viewport.New(80, 20),
		engine:       cfg.Engine,
		commander:    cfg.Commander,
		title:        title,
		historyIndex: -1,
		width:        80,
		height:       24,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		m.input.Width = max(msg.Width-16, 10)
		m.ready = true
		m.refresh()
		return m, nil

	case dispatchMsg:
		m.busy = false
		m.appendOutput(EchoStyle.Render("> "+msg.line), RenderReport(msg.report, msg.err))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		return m, tea.Quit

	case tea.KeyCtrlL:
		m.output = nil
		m.refresh()
		return m, nil

	case tea.KeyTab:
		m.complete()
		return m, nil

	case tea.KeyUp:
		m.historyBack()
		return m, nil

	case tea.KeyDown:
		m.historyForward()
		return m, nil

	case tea.KeyEnter:
		return m.submit()
	}

	m.suggestions = nil
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles the built-in words and dispatches everything else
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.suggestions = nil
	if line == "" {
		return m, nil
	}

	m.inputHistory = append(m.inputHistory, line)
	m.historyIndex = -1
	m.currentInput = ""

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return m, tea.Quit
	case "clear":
		m.output = nil
		m.refresh()
		return m, nil
	case "help":
		m.appendOutput(EchoStyle.Render("> "+line), m.help(fields[1:]))
		return m, nil
	}

	if m.busy {
		m.appendOutput(WarningStyle.Render("a command is still running"))
		return m, nil
	}
	m.busy = true
	return m, m.dispatch(line, fields)
}

func (m Model) dispatch(line string, fields []string) tea.Cmd {
	e := m.engine
	info := engine.DispatchInfo{
		Commander: m.commander,
		Command:   fields[0],
		Arguments: fields[1:],
	}
	return func() tea.Msg {
		report, err := e.Dispatch(context.Background(), info)
		return dispatchMsg{line: line, report: report, err: err}
	}
}

func (m Model) help(path []string) string {
	if len(path) == 0 {
		names := m.engine.Tree().RootNames(false)
		if len(names) == 0 {
			return WarningStyle.Render("no commands registered")
		}
		return ValueStyle.Render("commands: " + strings.Join(names, ", "))
	}
	usage, ok := m.engine.Usage(path[0], path[1:]...)
	if !ok {
		return ErrorStyle.Render("unknown command " + path[0])
	}
	return ValueStyle.Render(usage)
}

// complete replaces the last token when there is exactly one candidate,
// extends it to the longest common prefix otherwise, and lists the
// candidates
func (m *Model) complete() {
	value := m.input.Value()
	tokens := strings.Fields(value)
	if value == "" || strings.HasSuffix(value, " ") {
		tokens = append(tokens, "")
	}

	candidates := m.engine.Complete(tokens)
	m.suggestions = candidates
	if len(candidates) == 0 {
		return
	}

	last := tokens[len(tokens)-1]
	replacement := commonPrefix(candidates)
	if len(candidates) == 1 && !strings.HasSuffix(replacement, "=") {
		replacement += " "
		m.suggestions = nil
	}
	if len(replacement) < len(last) {
		return
	}

	prefix := strings.Join(tokens[:len(tokens)-1], " ")
	if prefix != "" {
		prefix += " "
	}
	m.input.SetValue(prefix + replacement)
	m.input.CursorEnd()
}

func commonPrefix(values []string) string {
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(strings.ToLower(v), strings.ToLower(prefix)) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func (m *Model) historyBack() {
	if len(m.inputHistory) == 0 {
		return
	}
	if m.historyIndex == -1 {
		m.currentInput = m.input.Value()
		m.historyIndex = len(m.inputHistory) - 1
	} else if m.historyIndex > 0 {
		m.historyIndex--
	}
	m.input.SetValue(m.inputHistory[m.historyIndex])
	m.input.CursorEnd()
}

func (m *Model) historyForward() {
	if m.historyIndex == -1 {
		return
	}
	if m.historyIndex < len(m.inputHistory)-1 {
		m.historyIndex++
		m.input.SetValue(m.inputHistory[m.historyIndex])
	} else {
		m.historyIndex = -1
		m.input.SetValue(m.currentInput)
	}
	m.input.CursorEnd()
}

func (m *Model) appendOutput(lines ...string) {
	m.output = append(m.output, lines...)
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.output, "\n"))
	m.viewport.GotoBottom()
}

// Output returns the rendered scrollback
func (m Model) Output() []string {
	return append([]string(nil), m.output...)
}

// Suggestions returns the candidates of the last completion
func (m Model) Suggestions() []string {
	return append([]string(nil), m.suggestions...)
}

// Value returns the current input line
func (m Model) Value() string {
	return m.input.Value()
}

// View renders the shell
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(InputBoxStyle.Width(max(m.width-2, 10)).Render(m.input.View()))
	b.WriteString("\n")

	if len(m.suggestions) > 0 {
		b.WriteString(SuggestionStyle.Render(strings.Join(m.suggestions, "  ")))
	} else {
		b.WriteString(m.renderHelpBar())
	}
	return b.String()
}

func (m Model) renderHelpBar() string {
	keys := []struct{ key, desc string }{
		{"tab", "complete"},
		{"↑/↓", "history"},
		{"ctrl+l", "clear"},
		{"ctrl+c", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, HelpKeyStyle.Render(k.key)+" "+HelpDescStyle.Render(k.desc))
	}
	bar := strings.Join(parts, "  ")
	if m.commander != nil {
		bar += HelpDescStyle.Render("  as " + m.commander.Identifier())
	}
	return lipgloss.NewStyle().MaxWidth(max(m.width, 10)).Render(bar)
}

// Run starts the shell on the terminal
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
