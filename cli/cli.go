// Package cli provides the line-based front end: terminal I/O, tone
// styling, meta-commands and a Prompter that reads answers from the same
// input stream as commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/turncore/engine"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Out       io.Writer
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)

	scanner *bufio.Scanner
	styles  map[types.Tone]lipgloss.Style
	system  lipgloss.Style
	lastCmd string // for "again"/"g" repeat
}

// New creates a CLI reading from in and writing to out. A nil in or out
// means stdin or stdout.
func New(in io.Reader, out io.Writer) *CLI {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	r := lipgloss.NewRenderer(out)
	return &CLI{
		Out:     out,
		scanner: bufio.NewScanner(in),
		styles:  toneStyles(r),
		system:  r.NewStyle().Foreground(lipgloss.Color("243")),
	}
}

func toneStyles(r *lipgloss.Renderer) map[types.Tone]lipgloss.Style {
	return map[types.Tone]lipgloss.Style{
		types.ToneNormal: r.NewStyle(),
		types.ToneGood:   r.NewStyle().Foreground(lipgloss.Color("34")),
		types.ToneBad:    r.NewStyle().Foreground(lipgloss.Color("196")),
		types.ToneAlert:  r.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		types.ToneDivine: r.NewStyle().Foreground(lipgloss.Color("220")),
		types.ToneDialog: r.NewStyle().Foreground(lipgloss.Color("228")),
	}
}

// Run shows the intro, then loops: prompt → input → step → output. It
// returns when input ends, the player quits, or the session terminates.
func (c *CLI) Run(ctx context.Context, intro string) error {
	if c.Engine == nil {
		return fmt.Errorf("cli has no engine attached")
	}
	if intro != "" {
		c.printLine(intro)
		c.printLine("")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.print("> ")
		input, ok := c.readLine()
		if !ok {
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(ctx, input) {
				return nil
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printSystem("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		cmd, err := c.Engine.Command(input)
		if err != nil {
			c.printSystem(err.Error())
			continue
		}
		res := c.Engine.Step(ctx, cmd)
		c.printResult(res)
		if c.Trace {
			c.printTrace(res)
		}
		if res.Outcome == types.OutcomeTerminateSession {
			return nil
		}
	}
}

func (c *CLI) readLine() (string, bool) {
	if !c.scanner.Scan() {
		return "", false
	}
	line := c.scanner.Text()
	if c.EchoInput {
		c.printLine(line)
	}
	return line, true
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(ctx context.Context, input string) bool {
	switch strings.Fields(input)[0] {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		if err := c.Engine.Save(ctx, c.Engine.World); err != nil {
			c.printSystem(fmt.Sprintf("Save failed: %v", err))
			break
		}
		c.printSystem(fmt.Sprintf("Game saved (turn %d).", c.Engine.Turn()))

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", input))
	}
	return false
}

func (c *CLI) cmdHelp() {
	for _, line := range helpLines {
		c.printLine(line)
	}
}

// helpLines is shared with the terminal UI.
var helpLines = []string{
	"System:",
	"  /save    Save game",
	"  /quit    Exit without saving",
	"  /help    Show this help",
	"  /state   Debug: dump the player's state",
	"  /trace   Toggle event trace output",
	"",
	"Game commands:",
	"  n/s/e/w/ne/nw/se/sw   Move (go, walk, run <dir>)",
	"  use/open/eat <item>   Use an item",
	"  drink/read/zap <item> Drink, read or zap an item",
	"  throw <item> at <who> Throw an item",
	"  dip <item> into <liq> Dip an item into a liquid",
	"  fire [at <who>]       Shoot the equipped ranged weapon",
	"  look (l)              Browse visible targets",
	"  talk <dir>            Talk to someone",
	"  give <dir>            Give something to someone",
	"  search, rest (z), get, close <dir>",
	"  bash/dig <dir>        Bash something or dig",
	"  pray, offer <item>    Pray, or offer an item on an altar",
	"  change ammo           Cycle the equipped ammo's special modes",
	"  cast <spell> [on <who>] Cast a learnt spell",
	"  shortcut <n>          Run the command bound to a slot",
	"  > / <                 Go down / up stairs",
	"  exit                  Save and quit",
	"  again                 Repeat your last command",
}

// HelpLines returns the in-game help text.
func HelpLines() []string { return helpLines }

func (c *CLI) cmdState() {
	w := c.Engine.World
	p := w.Actors[0]
	c.printSystem(fmt.Sprintf("Turn: %d", w.TurnCount))
	c.printSystem(fmt.Sprintf("Map: %s (%d,%d)", w.Map.Name, p.Position.X, p.Position.Y))
	c.printSystem(fmt.Sprintf("HP: %d/%d  SP: %d  Gold: %d", p.HP, p.MaxHP, p.SP, p.Gold))
	if p.Activity.Kind != types.ActivityNone {
		c.printSystem(fmt.Sprintf("Activity: %s (%d turns)", p.Activity.Kind, p.Activity.Turns))
	}
}

func (c *CLI) printTrace(res types.Result) {
	for _, line := range TraceLines(res) {
		c.printLine(c.system.Render(line))
	}
}

// TraceLines describes a result's outcome and events for /trace.
func TraceLines(res types.Result) []string {
	lines := []string{fmt.Sprintf("[trace] Outcome: %s", res.Outcome)}
	if res.Exit != types.ExitNone {
		lines = append(lines, fmt.Sprintf("[trace] Exit: %s", res.Exit))
	}
	if res.Submenu.Kind != types.SubmenuNone {
		lines = append(lines, fmt.Sprintf("[trace] Submenu: %s", res.Submenu.Kind))
	}
	for _, e := range res.Events {
		lines = append(lines, fmt.Sprintf("[trace] Event: %s %v", e.Type, e.Data))
	}
	return lines
}

func (c *CLI) printResult(res types.Result) {
	for _, m := range res.Messages {
		c.printLine(c.styles[m.Tone].Render(m.Text))
	}
	switch res.Outcome {
	case types.OutcomeExitCurrentMap:
		c.printSystem(fmt.Sprintf("You leave the map (%s).", res.Exit))
	case types.OutcomeOpenSubmenu:
		c.printSystem(fmt.Sprintf("The %s menu is not available here.", strings.ReplaceAll(string(res.Submenu.Kind), "_", " ")))
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintln(c.Out, c.system.Render("["+text+"]"))
}

// ask prints msg and reads answers until parse accepts one. End of input
// cancels.
func ask[T any](ctx context.Context, c *CLI, msg string, parse func(string) (T, error)) (T, error) {
	var zero T
	c.printLine(msg)
	for {
		if err := ctx.Err(); err != nil {
			return zero, errs.Wrap(err, "prompt interrupted")
		}
		c.print("? ")
		line, ok := c.readLine()
		if !ok {
			return zero, errs.Cancelled()
		}
		v, err := parse(line)
		if err == nil || errs.IsCancelled(err) {
			return v, err
		}
		c.printSystem(err.Error())
	}
}

// Direction implements prompt.Prompter.
func (c *CLI) Direction(ctx context.Context, msg string) (types.Point, error) {
	return ask(ctx, c, msg+" "+prompt.DirectionHint, prompt.ParseDirection)
}

// YesNo implements prompt.Prompter.
func (c *CLI) YesNo(ctx context.Context, msg string) (bool, error) {
	return ask(ctx, c, msg+" (y/n)", prompt.ParseYesNo)
}

// Choose implements prompt.Prompter.
func (c *CLI) Choose(ctx context.Context, msg string, options []prompt.Option) (int, error) {
	text := strings.Join(append([]string{msg}, prompt.FormatOptions(options)...), "\n")
	return ask(ctx, c, text, func(line string) (int, error) {
		return prompt.ParseChoice(line, options)
	})
}

// Text implements prompt.Prompter.
func (c *CLI) Text(ctx context.Context, msg string, max int) (string, error) {
	return ask(ctx, c, msg, func(line string) (string, error) {
		return prompt.TrimText(line, max), nil
	})
}

// Browse implements prompt.Prompter.
func (c *CLI) Browse(ctx context.Context, page prompt.Page) (prompt.Input, error) {
	return ask(ctx, c, strings.Join(prompt.FormatPage(page), "\n"), func(line string) (prompt.Input, error) {
		return prompt.ParseBrowse(line, page)
	})
}
