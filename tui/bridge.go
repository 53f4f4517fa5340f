package tui

import (
	"context"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/types"
)

// promptRequest is one question from the engine goroutine. The model shows
// lines and sends the typed answer on reply.
type promptRequest struct {
	lines []string
	hint  string
	reply chan string
}

// promptMsg hands a request to the Update loop.
type promptMsg struct {
	req *promptRequest
}

// Bridge is the Prompter the engine calls while a step runs in the
// background. Each question blocks until the player answers in the UI.
type Bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewBridge creates a Bridge. It must be attached to a program before the
// engine prompts.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach routes questions to send, normally (*tea.Program).Send.
func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

func (b *Bridge) sender() func(tea.Msg) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.send
}

// ask shows lines and waits for answers until parse accepts one.
func ask[T any](ctx context.Context, b *Bridge, lines []string, parse func(string) (T, error)) (T, error) {
	var zero T
	send := b.sender()
	if send == nil {
		return zero, errs.Internal("prompt bridge is not attached")
	}
	hint := ""
	for {
		req := &promptRequest{lines: lines, hint: hint, reply: make(chan string, 1)}
		send(promptMsg{req: req})
		select {
		case line := <-req.reply:
			v, err := parse(line)
			if err == nil || errs.IsCancelled(err) {
				return v, err
			}
			hint = err.Error()
		case <-ctx.Done():
			return zero, errs.Wrap(ctx.Err(), "prompt interrupted")
		}
	}
}

// Direction implements prompt.Prompter.
func (b *Bridge) Direction(ctx context.Context, msg string) (types.Point, error) {
	return ask(ctx, b, []string{msg + " " + prompt.DirectionHint}, prompt.ParseDirection)
}

// YesNo implements prompt.Prompter.
func (b *Bridge) YesNo(ctx context.Context, msg string) (bool, error) {
	return ask(ctx, b, []string{msg + " (y/n)"}, prompt.ParseYesNo)
}

// Choose implements prompt.Prompter.
func (b *Bridge) Choose(ctx context.Context, msg string, options []prompt.Option) (int, error) {
	lines := append([]string{msg}, prompt.FormatOptions(options)...)
	return ask(ctx, b, lines, func(line string) (int, error) {
		return prompt.ParseChoice(line, options)
	})
}

// Text implements prompt.Prompter.
func (b *Bridge) Text(ctx context.Context, msg string, max int) (string, error) {
	return ask(ctx, b, []string{msg}, func(line string) (string, error) {
		return prompt.TrimText(line, max), nil
	})
}

// Browse implements prompt.Prompter.
func (b *Bridge) Browse(ctx context.Context, page prompt.Page) (prompt.Input, error) {
	lines := prompt.FormatPage(page)
	if len(page.Route) > 0 {
		lines = append(lines, routeLine(page.Route))
	}
	return ask(ctx, b, lines, func(line string) (prompt.Input, error) {
		return prompt.ParseBrowse(line, page)
	})
}

// routeLine summarizes the path to the highlighted target.
func routeLine(route []types.Point) string {
	var sb strings.Builder
	sb.WriteString("Path:")
	for _, p := range route {
		sb.WriteString(" ")
		sb.WriteString(pointString(p))
	}
	return sb.String()
}
