package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/turncore/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusAlert = lipgloss.NewStyle().
				Background(lipgloss.Color("52")).
				Foreground(lipgloss.Color("252")).
				Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleQuestion = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// toneStyles maps message tones to colors.
var toneStyles = map[types.Tone]lipgloss.Style{
	types.ToneNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	types.ToneGood:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	types.ToneBad:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	types.ToneAlert:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	types.ToneDivine: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	types.ToneDialog: lipgloss.NewStyle().Foreground(lipgloss.Color("228")),
}

// lineKind identifies where an output line came from.
type lineKind int

const (
	kindMessage lineKind = iota
	kindInput
	kindSystem
	kindQuestion
	kindTrace
)

func renderLine(line string, kind lineKind, tone types.Tone) string {
	switch kind {
	case kindInput:
		return stylePlayerInput.Render(line)
	case kindSystem:
		return styleSystem.Render("[" + line + "]")
	case kindQuestion:
		return styleQuestion.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	}
	s, ok := toneStyles[tone]
	if !ok {
		s = toneStyles[types.ToneNormal]
	}
	return s.Render(line)
}
