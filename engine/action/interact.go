package action

import (
	"context"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Interaction menu entries.
const (
	interactTalk = iota
	interactAttack
	interactGive
	interactName
	interactInventory
	interactBringOut
	interactInfo
	interactTeachWords
	interactAppearance
	interactRelease
	interactTone
)

// Talk tones an actor can be given.
var talkTones = []string{"default", "polite", "rough", "childish", "cheerful"}

const (
	maxNameLen  = 12
	maxWordsLen = 20
)

// interact offers everything the player can do with an adjacent actor.
func (d *Dispatcher) interact(ctx context.Context, at *attempt) (types.Outcome, error) {
	_, tc, err := at.direction(ctx, "Choose the direction of the target.")
	if err != nil {
		return 0, err
	}
	if tc == types.NoIndex {
		return 0, errs.InvalidTarget("Invalid target.").WithKey("ui.invalid_target")
	}
	t := &at.w.Actors[tc]

	choice, err := at.choose(ctx, "What do you want to do with "+t.Name+"?", at.interactOptions(tc))
	if err != nil {
		return 0, err
	}

	switch choice {
	case interactTalk:
		teleport, err := d.deps.Talker.Talk(ctx, at.w, at.cmd.Actor, tc, at.res)
		if err != nil {
			return 0, err
		}
		if teleport {
			return at.exitMap(types.ExitTeleport)
		}
		return turnEnds()
	case interactAttack:
		at.actor().EnemyID = tc
		if err := d.deps.Combat.Melee(ctx, at.w, at.cmd.Actor, tc, at.res); err != nil {
			return 0, err
		}
		return turnEnds()
	case interactGive:
		return at.submenuFor(types.SubmenuGive, tc)
	case interactInventory:
		return at.submenuFor(types.SubmenuAllyInventory, tc)
	case interactName:
		return at.nameActor(ctx, tc)
	case interactBringOut:
		if _, err := at.recruit(ctx, tc); err != nil {
			return 0, err
		}
		return turnEnds()
	case interactInfo:
		at.emit("actor_investigated", map[string]any{"actor": tc})
		return keep()
	case interactTeachWords:
		words, err := d.deps.Prompter.Text(ctx, "What sentence do you want "+t.Name+" to say?", maxWordsLen)
		if err != nil {
			return 0, err
		}
		t.CustomTalk = words
		if words != "" {
			at.say("action.interact.change_tone.words", words, types.ToneDialog)
		}
		return keep()
	case interactAppearance:
		at.sayf("use.dresser.change", types.ToneNormal, "You change the appearance of %s.", t.Name)
		at.emit("appearance_changed", map[string]any{"actor": tc})
		return keep()
	case interactRelease:
		t.HungOnSandBag = false
		at.sayf("action.interact.release", types.ToneNormal, "You release %s.", t.Name)
		if _, err := at.create(catalog.ItemSandBag, types.OwnerGround, t.Position, 1); err != nil {
			return 0, err
		}
		return keep()
	case interactTone:
		options := make([]prompt.Option, len(talkTones))
		for i, tone := range talkTones {
			options[i] = prompt.Option{ID: i, Label: tone}
		}
		pick, err := at.choose(ctx, "Which tone?", options)
		if err != nil {
			return 0, err
		}
		t.TalkTone = talkTones[pick]
		at.sayf("action.interact.change_tone.result", types.ToneNormal, "%s now talks in a %s tone.", t.Name, t.TalkTone)
		return keep()
	}
	return 0, errs.Internalf("unhandled interaction %d", choice)
}

func (at *attempt) interactOptions(tc int) []prompt.Option {
	t := &at.w.Actors[tc]
	var out []prompt.Option
	add := func(id int, label string) {
		out = append(out, prompt.Option{ID: id, Label: label})
	}
	if tc != 0 {
		if at.player().Confused == 0 {
			add(interactTalk, "Talk")
			add(interactAttack, "Attack")
		}
		if !t.Escorted {
			if state.IsParty(tc) {
				add(interactInventory, "Inventory")
			} else {
				add(interactGive, "Give")
			}
			if t.Livestock {
				add(interactBringOut, "Bring Out")
			}
			if state.IsParty(tc) {
				add(interactAppearance, "Appearance")
			}
		}
		add(interactTeachWords, "Teach Words")
		add(interactTone, "Change Tone")
		if at.w.Map.ID != types.MapIDShowHouse && t.HungOnSandBag {
			add(interactRelease, "Release")
		}
	}
	add(interactName, "Name")
	if at.w.Game.Wizard {
		add(interactInfo, "Info")
	}
	return out
}

// nameActor renames tc. An empty answer keeps the old name.
func (at *attempt) nameActor(ctx context.Context, tc int) (types.Outcome, error) {
	t := &at.w.Actors[tc]
	name, err := at.d.deps.Prompter.Text(ctx, "What do you want to call "+t.Name+"?", maxNameLen)
	if err != nil {
		return 0, err
	}
	if name == "" {
		at.say("action.interact.name.cancel", "You changed your mind.", types.ToneNormal)
		return keep()
	}
	t.Name = name
	t.OwnName = true
	at.sayf("action.interact.name.you_named", types.ToneNormal, "%s has been named.", name)
	return keep()
}

// give hands an item to the adjacent actor, or opens an ally's inventory.
func (d *Dispatcher) give(ctx context.Context, at *attempt) (types.Outcome, error) {
	_, tc, err := at.direction(ctx, "Which direction?")
	if err != nil {
		return 0, err
	}
	if tc == 0 && at.w.Game.Mount != 0 {
		tc = at.w.Game.Mount
	}
	if tc == types.NoIndex || tc == 0 {
		return 0, errs.InvalidTarget("Invalid target.").WithKey("ui.invalid_target")
	}
	if state.IsParty(tc) && !at.w.Actors[tc].Escorted {
		return at.submenuFor(types.SubmenuAllyInventory, tc)
	}
	return at.submenuFor(types.SubmenuGive, tc)
}
