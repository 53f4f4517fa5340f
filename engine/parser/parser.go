// Package parser converts typed command lines into engine commands.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/turncore/engine/action"
	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Directions as cell offsets.
var directions = map[string]types.Point{
	"n": {X: 0, Y: -1}, "north": {X: 0, Y: -1},
	"s": {X: 0, Y: 1}, "south": {X: 0, Y: 1},
	"e": {X: 1, Y: 0}, "east": {X: 1, Y: 0},
	"w": {X: -1, Y: 0}, "west": {X: -1, Y: 0},
	"ne": {X: 1, Y: -1}, "northeast": {X: 1, Y: -1},
	"nw": {X: -1, Y: -1}, "northwest": {X: -1, Y: -1},
	"se": {X: 1, Y: 1}, "southeast": {X: 1, Y: 1},
	"sw": {X: -1, Y: 1}, "southwest": {X: -1, Y: 1},
}

var verbs = map[string]types.CommandKind{
	"go":   types.CmdMove,
	"walk": types.CmdMove,
	"move": types.CmdMove,
	"run":  types.CmdMove,

	"use":      types.CmdUse,
	"apply":    types.CmdUse,
	"activate": types.CmdUse,

	"throw": types.CmdThrow,
	"toss":  types.CmdThrow,
	"hurl":  types.CmdThrow,
	"lob":   types.CmdThrow,

	"open":   types.CmdOpen,
	"dip":    types.CmdDip,
	"mix":    types.CmdDip,
	"search": types.CmdSearch,

	"interact": types.CmdInteract,
	"talk":     types.CmdInteract,
	"chat":     types.CmdInteract,
	"speak":    types.CmdInteract,

	"give": types.CmdGive,
	"hand": types.CmdGive,

	"look":   types.CmdLook,
	"l":      types.CmdLook,
	"target": types.CmdLook,

	"fire":  types.CmdFire,
	"f":     types.CmdFire,
	"shoot": types.CmdFire,

	"close": types.CmdClose,
	"shut":  types.CmdClose,

	"drink":   types.CmdDrink,
	"quaff":   types.CmdDrink,
	"sip":     types.CmdDrink,
	"swallow": types.CmdDrink,

	"read": types.CmdRead,
	"zap":  types.CmdZap,

	"eat":     types.CmdEat,
	"consume": types.CmdEat,
	"devour":  types.CmdEat,

	"rest": types.CmdRest,
	"z":    types.CmdRest,

	"get":  types.CmdGet,
	"g":    types.CmdGet,
	"take": types.CmdGet,
	"grab": types.CmdGet,

	">":       types.CmdGoDown,
	"descend": types.CmdGoDown,
	"<":       types.CmdGoUp,
	"ascend":  types.CmdGoUp,

	"bash": types.CmdBash,
	"dig":  types.CmdDig,
	"pray": types.CmdPray,

	"offer":     types.CmdOffer,
	"sacrifice": types.CmdOffer,

	"ammo":     types.CmdAmmo,
	"cast":     types.CmdCast,
	"shortcut": types.CmdShortcut,

	"quit": types.CmdExit,
	"exit": types.CmdExit,
	"q":    types.CmdExit,
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true,
	"with": true, "in": true, "into": true,
	"from": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Intent is a parsed command line before names are bound to the world.
type Intent struct {
	Kind    types.CommandKind
	Object  string // item name
	Target  string // second item (dip) or actor name
	Dir     types.Point
	HasDir  bool
	Running bool
	Skip    bool
}

// Parse converts a raw command line into an Intent.
func Parse(input string) (Intent, error) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return Intent{}, fmt.Errorf("empty command")
	}

	// Bare direction: "n", "south" → move.
	if d, ok := directions[words[0]]; ok && len(words) == 1 {
		return Intent{Kind: types.CmdMove, Dir: d, HasDir: true}, nil
	}

	words = expandMultiWordVerbs(words)
	kind, ok := verbs[words[0]]
	if !ok {
		return Intent{}, fmt.Errorf("I don't know how to %q", words[0])
	}
	in := Intent{Kind: kind, Running: words[0] == "run"}
	rest := stripArticles(words[1:])

	if len(rest) > 0 && rest[0] == "skip" && kind == types.CmdMove {
		in.Skip = true
		rest = rest[1:]
	}
	if n := len(rest); n > 0 {
		if d, ok := directions[rest[n-1]]; ok {
			in.Dir, in.HasDir = d, true
			rest = rest[:n-1]
		}
	}
	in.Object, in.Target = splitOnPreposition(rest)

	if kind == types.CmdMove && !in.HasDir {
		return Intent{}, fmt.Errorf("go where?")
	}
	return in, nil
}

// expandMultiWordVerbs handles "pick up", "talk to", "go down" and friends.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}
	switch words[0] {
	case "pick":
		if words[1] == "up" {
			return append([]string{"get"}, words[2:]...)
		}
	case "talk", "speak", "chat":
		if words[1] == "to" || words[1] == "with" {
			return append([]string{"talk"}, words[2:]...)
		}
	case "go":
		if words[1] == "down" && len(words) == 2 {
			return []string{"descend"}
		}
		if words[1] == "up" && len(words) == 2 {
			return []string{"ascend"}
		}
	case "change":
		if words[1] == "ammo" {
			return append([]string{"ammo"}, words[2:]...)
		}
	case "look":
		if words[1] == "at" {
			return append([]string{"look"}, words[2:]...)
		}
	}
	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition. Words before
// it become the object, words after it the target.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " ")
		}
	}
	return strings.Join(words, " "), ""
}

// Bind resolves the names in an Intent against actor's surroundings and
// returns the command to dispatch.
func Bind(w *types.World, cat *catalog.Catalog, actor int, in Intent) (types.Command, error) {
	cmd := types.Command{
		Kind:    in.Kind,
		Actor:   actor,
		Item:    types.NoIndex,
		Tool:    types.NoIndex,
		Target:  types.NoIndex,
		Running: in.Running,
		Skip:    in.Skip,
	}
	self := w.Actors[actor].Position
	if in.HasDir {
		cmd.Dest = self.Add(in.Dir)
		cmd.HasDest = true
	}

	switch in.Kind {
	case types.CmdUse, types.CmdThrow, types.CmdOpen, types.CmdDrink,
		types.CmdRead, types.CmdZap, types.CmdEat, types.CmdDip, types.CmdOffer:
		if in.Object == "" {
			return cmd, fmt.Errorf("%s what?", in.Kind)
		}
		idx, err := findItem(w, cat, actor, in.Object)
		if err != nil {
			return cmd, err
		}
		cmd.Item = idx
	}

	switch in.Kind {
	case types.CmdCast:
		id, ok := action.SpellByName(in.Object)
		if !ok {
			return cmd, fmt.Errorf("you know no spell called %q", in.Object)
		}
		cmd.Spell = id
		if in.Target != "" {
			t := findActor(w, actor, in.Target)
			if t == types.NoIndex {
				return cmd, fmt.Errorf("you see no %s here", in.Target)
			}
			cmd.Target = t
		}
	case types.CmdShortcut:
		n, err := strconv.Atoi(in.Object)
		if err != nil {
			return cmd, fmt.Errorf("shortcut takes a slot number")
		}
		cmd.Slot = n
	case types.CmdDip:
		if in.Target == "" {
			return cmd, fmt.Errorf("dip it into what?")
		}
		idx, err := findItem(w, cat, actor, in.Target)
		if err != nil {
			return cmd, err
		}
		cmd.Tool = idx
	case types.CmdThrow, types.CmdLook, types.CmdFire:
		name := in.Target
		if in.Kind != types.CmdThrow && name == "" {
			name = in.Object
		}
		if name == "" {
			break
		}
		t := findActor(w, actor, name)
		if t == types.NoIndex {
			return cmd, fmt.Errorf("you see no %s here", name)
		}
		cmd.Target = t
		if in.Kind == types.CmdThrow && !cmd.HasDest {
			cmd.Dest = w.Actors[t].Position
			cmd.HasDest = true
		}
	}
	return cmd, nil
}

// findItem matches name against the actor's inventory first, then the
// ground under them. Prefix matches are accepted.
func findItem(w *types.World, cat *catalog.Catalog, actor int, name string) (int, error) {
	pos := w.Actors[actor].Position
	for _, pool := range [][]int{state.Inventory(w, actor), state.ItemsAt(w, pos)} {
		for _, i := range pool {
			if strings.HasPrefix(strings.ToLower(cat.Name(w.Items[i].ID)), name) {
				return i, nil
			}
		}
	}
	return types.NoIndex, fmt.Errorf("you have no %s", name)
}

func findActor(w *types.World, self int, name string) int {
	for i := range w.Actors {
		a := &w.Actors[i]
		if i != self && a.Alive && strings.HasPrefix(strings.ToLower(a.Name), name) {
			return i
		}
	}
	return types.NoIndex
}
