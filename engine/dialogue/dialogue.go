// Package dialogue implements the default NPC conversation: a line in the
// listener's voice and, for travel agents, an offer to be teleported.
package dialogue

import (
	"context"
	"fmt"

	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/rng"
	"github.com/nathoo/turncore/types"
)

// toneLines are the fallback lines for each talk tone.
var toneLines = map[string][]string{
	"default":  {"Hello.", "Nice weather today.", "Be careful out there."},
	"polite":   {"Good day to you.", "How may I help you?", "It is an honour to meet you."},
	"rough":    {"What do you want?", "Get lost.", "Don't waste my time."},
	"childish": {"Hi hi!", "Wanna play?", "Mommy says I shouldn't talk to strangers."},
	"cheerful": {"What a lovely day!", "Hey, great to see you!", "Let's have fun!"},
}

// Talker is the default conversation collaborator.
type Talker struct {
	Dice     rng.Source
	Prompter prompt.Prompter
}

// New creates a Talker.
func New(dice rng.Source, p prompt.Prompter) *Talker {
	return &Talker{Dice: dice, Prompter: p}
}

// Talk makes listener answer speaker. It reports whether the listener is
// a travel agent and the speaker agreed to be sent away.
func (t *Talker) Talk(ctx context.Context, w *types.World, speaker, listener int, r *types.Result) (bool, error) {
	l := &w.Actors[listener]
	if l.Sleep > 0 {
		r.Say("talk.sleeping", fmt.Sprintf("%s is sleeping.", l.Name), types.ToneNormal)
		return false, nil
	}

	r.Say("talk.line", fmt.Sprintf("%s: \"%s\"", l.Name, t.line(l)), types.ToneDialog)
	r.Emit("talked", map[string]any{"speaker": speaker, "listener": listener})

	if !l.Teleporter || speaker != 0 {
		return false, nil
	}
	ok, err := t.Prompter.YesNo(ctx, fmt.Sprintf("%s offers to take you away. Go?", l.Name))
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (t *Talker) line(l *types.Actor) string {
	if l.CustomTalk != "" {
		return l.CustomTalk
	}
	lines := l.Lines
	if len(lines) == 0 {
		lines = toneLines[l.TalkTone]
	}
	if len(lines) == 0 {
		lines = toneLines["default"]
	}
	return lines[t.Dice.Rnd(len(lines))]
}
