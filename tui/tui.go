package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/turncore/cli"
	"github.com/nathoo/turncore/engine"
	"github.com/nathoo/turncore/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text string
	kind lineKind
	tone types.Tone
}

// Model is the Bubble Tea model for the turncore TUI.
type Model struct {
	ctx    context.Context
	engine *engine.Engine
	intro  string

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)
	status   status

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	busy     bool           // a step is running in the background
	pending  *promptRequest // question waiting for an answer
}

// stepDoneMsg carries a finished step back into the Update loop.
type stepDoneMsg struct {
	res    types.Result
	status status
}

// New creates a TUI model wired to the given engine. Prompts sent through
// a Bridge are answered from the input line.
func New(ctx context.Context, eng *engine.Engine, intro string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		ctx:     ctx,
		engine:  eng,
		intro:   intro,
		input:   ti,
		history: NewHistory(100),
		status:  captureStatus(eng.World),
	}
}

// Run starts the Bubble Tea program. b must be the Prompter the engine
// was built with.
func Run(ctx context.Context, eng *engine.Engine, b *Bridge, intro string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, eng, intro), tea.WithAltScreen(), tea.WithContext(ctx))
	b.Attach(p.Send)
	_, err := p.Run()
	return err
}

// Init starts the cursor blink. The intro is shown once the terminal size
// is known.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages (key presses, window resize, engine output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := max(m.height-2, 1) // 1 status bar + 1 input line

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
			if m.intro != "" {
				m.rawLines = append(m.rawLines, rawLine{text: m.intro}, rawLine{})
			}
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.answer("q")
			m.quitting = true
			return m, tea.Quit

		case "esc":
			if m.pending != nil {
				m.input.SetValue("")
				m = m.echo("q", kindInput)
				m.answer("q")
			}
			return m, nil

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			next, _ := m.history.Next()
			m.input.SetValue(next)
			m.input.CursorEnd()
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case promptMsg:
		m.pending = msg.req
		for _, line := range msg.req.lines {
			m.rawLines = append(m.rawLines, rawLine{text: line, kind: kindQuestion})
		}
		if msg.req.hint != "" {
			m.rawLines = append(m.rawLines, rawLine{text: msg.req.hint, kind: kindSystem})
		}
		m.input.Prompt = "? "
		m.refreshViewport()
		return m, nil

	case stepDoneMsg:
		m = m.finishStep(msg)
		if msg.res.Outcome == types.OutcomeTerminateSession {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// answer hands line to the waiting prompt, if any.
func (m *Model) answer(line string) {
	if m.pending == nil {
		return
	}
	m.pending.reply <- line
	m.pending = nil
	m.input.Prompt = "> "
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if m.pending != nil {
		m = m.echo(input, kindInput)
		m.answer(input)
		return m, nil
	}
	if input == "" {
		return m, nil
	}
	if m.busy {
		return m.echo("Please wait.", kindSystem), nil
	}

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		last, ok := m.history.Last()
		if !ok {
			return m.echo("Nothing to repeat.", kindSystem), nil
		}
		input = last
	}
	m.history.Push(input)
	m = m.echo("> "+input, kindInput)

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		for _, line := range output {
			m.rawLines = append(m.rawLines, rawLine{text: line, kind: kindSystem})
		}
		m.rawLines = append(m.rawLines, rawLine{})
		m.refreshViewport()
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	cmd, err := m.engine.Command(input)
	if err != nil {
		return m.echo(err.Error(), kindSystem), nil
	}
	m.busy = true
	return m, m.step(cmd)
}

// step runs cmd off the Update loop so that the engine can block on
// prompts.
func (m Model) step(cmd types.Command) tea.Cmd {
	eng, ctx := m.engine, m.ctx
	return func() tea.Msg {
		res := eng.Step(ctx, cmd)
		return stepDoneMsg{res: res, status: captureStatus(eng.World)}
	}
}

func (m Model) finishStep(msg stepDoneMsg) Model {
	m.busy = false
	m.pending = nil
	m.input.Prompt = "> "
	m.status = msg.status

	m.rawLines = append(m.rawLines, messageLines(msg.res)...)
	if m.trace {
		for _, line := range cli.TraceLines(msg.res) {
			m.rawLines = append(m.rawLines, rawLine{text: line, kind: kindTrace})
		}
	}
	m.rawLines = append(m.rawLines, rawLine{})
	m.refreshViewport()
	return m
}

// messageLines turns a result into display lines.
func messageLines(res types.Result) []rawLine {
	lines := make([]rawLine, 0, len(res.Messages)+1)
	for _, msg := range res.Messages {
		lines = append(lines, rawLine{text: msg.Text, tone: msg.Tone})
	}
	switch res.Outcome {
	case types.OutcomeExitCurrentMap:
		lines = append(lines, rawLine{text: fmt.Sprintf("You leave the map (%s).", res.Exit), kind: kindSystem})
	case types.OutcomeOpenSubmenu:
		name := strings.ReplaceAll(string(res.Submenu.Kind), "_", " ")
		lines = append(lines, rawLine{text: fmt.Sprintf("The %s menu is not available here.", name), kind: kindSystem})
	}
	return lines
}

func (m Model) echo(text string, kind lineKind) Model {
	m.rawLines = append(m.rawLines, rawLine{text: text, kind: kind})
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		styled = append(styled, renderLine(wordWrap(rl.text, width), rl.kind, rl.tone))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Existing newlines are kept.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}
	if strings.Contains(text, "\n") {
		parts := strings.Split(text, "\n")
		for i, p := range parts {
			parts[i] = wordWrap(p, width)
		}
		return strings.Join(parts, "\n")
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		wLen := len(word)
		switch {
		case i == 0:
			lineLen = wLen
		case lineLen+1+wLen > width:
			result.WriteString("\n")
			lineLen = wLen
		default:
			result.WriteString(" ")
			lineLen += 1 + wLen
		}
		result.WriteString(word)
	}
	return result.String()
}

// View renders the full TUI layout: viewport, status bar, input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.status.render(m.width) + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	switch strings.Fields(input)[0] {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		if err := m.engine.Save(m.ctx, m.engine.World); err != nil {
			return []string{fmt.Sprintf("Save failed: %v", err)}, false
		}
		return []string{fmt.Sprintf("Game saved (turn %d).", m.engine.Turn())}, false

	case "/help":
		help := append([]string{}, cli.HelpLines()...)
		return append(help, "", "Navigation: PgUp/PgDn to scroll, Up/Down for command history, Esc cancels a question"), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", input)}, false
	}
}

func (m *Model) cmdState() []string {
	w := m.engine.World
	p := w.Actors[0]
	output := []string{
		fmt.Sprintf("Turn: %d", w.TurnCount),
		fmt.Sprintf("Map: %s %s", w.Map.Name, pointString(p.Position)),
		fmt.Sprintf("HP: %d/%d  SP: %d  Gold: %d", p.HP, p.MaxHP, p.SP, p.Gold),
	}
	if p.Activity.Kind != types.ActivityNone {
		output = append(output, fmt.Sprintf("Activity: %s (%d turns)", p.Activity.Kind, p.Activity.Turns))
	}
	return output
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
