package prompt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/types"
)

// Line-based front ends read every answer as one typed line. The helpers
// below turn such a line into a Prompter answer.

var directionWords = map[string]types.Point{
	"n": {X: 0, Y: -1}, "north": {X: 0, Y: -1}, "8": {X: 0, Y: -1},
	"s": {X: 0, Y: 1}, "south": {X: 0, Y: 1}, "2": {X: 0, Y: 1},
	"e": {X: 1, Y: 0}, "east": {X: 1, Y: 0}, "6": {X: 1, Y: 0},
	"w": {X: -1, Y: 0}, "west": {X: -1, Y: 0}, "4": {X: -1, Y: 0},
	"ne": {X: 1, Y: -1}, "northeast": {X: 1, Y: -1}, "9": {X: 1, Y: -1},
	"nw": {X: -1, Y: -1}, "northwest": {X: -1, Y: -1}, "7": {X: -1, Y: -1},
	"se": {X: 1, Y: 1}, "southeast": {X: 1, Y: 1}, "3": {X: 1, Y: 1},
	"sw": {X: -1, Y: 1}, "southwest": {X: -1, Y: 1}, "1": {X: -1, Y: 1},
	".": {}, "here": {}, "5": {},
}

// IsCancel reports whether a typed line cancels the prompt.
func IsCancel(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "cancel", "esc":
		return true
	}
	return false
}

// DirectionHint is appended to direction prompts.
const DirectionHint = "(n/s/e/w/ne/nw/se/sw, . for here, q to cancel)"

// ParseDirection reads a direction answer.
func ParseDirection(line string) (types.Point, error) {
	if IsCancel(line) {
		return types.Point{}, errs.Cancelled()
	}
	d, ok := directionWords[strings.ToLower(strings.TrimSpace(line))]
	if !ok {
		return types.Point{}, fmt.Errorf("%q is not a direction", strings.TrimSpace(line))
	}
	return d, nil
}

// ParseYesNo reads a confirmation answer.
func ParseYesNo(line string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	if IsCancel(line) {
		return false, errs.Cancelled()
	}
	return false, fmt.Errorf("answer y or n")
}

// FormatOptions numbers options from 1 for display.
func FormatOptions(options []Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = fmt.Sprintf("%d) %s", i+1, o.Label)
	}
	return out
}

// ParseChoice reads the 1-based number of an option, or its label, and
// returns the option's ID.
func ParseChoice(line string, options []Option) (int, error) {
	if IsCancel(line) {
		return 0, errs.Cancelled()
	}
	s := strings.TrimSpace(line)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(options) {
			return 0, fmt.Errorf("pick 1-%d", len(options))
		}
		return options[n-1].ID, nil
	}
	for _, o := range options {
		if strings.EqualFold(o.Label, s) {
			return o.ID, nil
		}
	}
	return 0, fmt.Errorf("pick 1-%d", len(options))
}

// TrimText cuts a text answer to max runes. max <= 0 means no limit.
func TrimText(line string, max int) string {
	s := strings.TrimSpace(line)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// FormatPage renders a browser page: one lettered line per entry with the
// cursor marked.
func FormatPage(p Page) []string {
	out := []string{fmt.Sprintf("%s (page %d/%d)", p.Title, p.Page+1, max(p.Pages, 1))}
	for i, e := range p.Entries {
		mark := " "
		if i == p.Cursor {
			mark = "*"
		}
		out = append(out, fmt.Sprintf("%s%c) %s [%d]", mark, 'a'+i, e.Label, e.Distance))
	}
	out = append(out, "letter to pick, enter for *, + / - to move, > / < to turn the page, q to cancel")
	return out
}

// ParseBrowse reads a browser input.
func ParseBrowse(line string, p Page) (Input, error) {
	s := strings.ToLower(strings.TrimSpace(line))
	switch s {
	case "":
		return Input{Key: KeyConfirm}, nil
	case "+":
		return Input{Key: KeyDown}, nil
	case "-":
		return Input{Key: KeyUp}, nil
	case ">":
		return Input{Key: KeyNextPage}, nil
	case "<":
		return Input{Key: KeyPrevPage}, nil
	}
	if len(s) == 1 && s[0] >= 'a' && int(s[0]-'a') < len(p.Entries) {
		return Input{Key: KeySelect, Slot: int(s[0] - 'a')}, nil
	}
	if IsCancel(s) {
		return Input{Key: KeyCancel}, nil
	}
	return Input{}, fmt.Errorf("%q is not on this page", s)
}
