package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/turncore/types"
)

// status is a copy of what the status bar shows. It is captured on the
// goroutine that ran the step so View never reads the live world.
type status struct {
	mapName  string
	pos      types.Point
	hp       int
	maxHP    int
	gold     int
	turn     int
	activity types.ActivityKind
	dead     bool
}

func captureStatus(w *types.World) status {
	p := w.Actors[0]
	return status{
		mapName:  w.Map.Name,
		pos:      p.Position,
		hp:       p.HP,
		maxHP:    p.MaxHP,
		gold:     p.Gold,
		turn:     w.TurnCount,
		activity: p.Activity.Kind,
		dead:     !p.Alive,
	}
}

func pointString(p types.Point) string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// render produces a full-width inverted status line showing the
// map, hit points, gold and turn count.
func (s status) render(width int) string {
	name := s.mapName
	if name == "" {
		name = "?"
	}
	left := fmt.Sprintf(" %s %s", name, pointString(s.pos))
	if s.activity != types.ActivityNone {
		left += fmt.Sprintf(" | %s", s.activity)
	}
	right := fmt.Sprintf("HP:%d/%d | Gold:%d | T:%d ", s.hp, s.maxHP, s.gold, s.turn)
	if s.dead {
		right = fmt.Sprintf("DEAD | T:%d ", s.turn)
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	bar := left + strings.Repeat(" ", gap) + right

	style := styleStatusBar
	if s.dead || (s.maxHP > 0 && s.hp*4 <= s.maxHP) {
		style = styleStatusAlert
	}
	return style.Width(width).Render(bar)
}
