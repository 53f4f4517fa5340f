package action

import (
	"context"
	"fmt"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// attempt is the context of one action attempt. It lives only for the
// duration of a single Dispatch call.
type attempt struct {
	d   *Dispatcher
	w   *types.World
	cmd types.Command
	res *types.Result
}

func (at *attempt) actor() *types.Actor {
	return &at.w.Actors[at.cmd.Actor]
}

func (at *attempt) player() *types.Actor {
	return &at.w.Actors[0]
}

func (at *attempt) say(key, text string, tone types.Tone) {
	at.res.Say(key, text, tone)
}

func (at *attempt) sayf(key string, tone types.Tone, format string, args ...any) {
	at.res.Say(key, fmt.Sprintf(format, args...), tone)
}

func (at *attempt) emit(typ string, data map[string]any) {
	at.res.Emit(typ, data)
}

func (at *attempt) rnd(n int) int {
	return at.d.deps.Dice.Rnd(n)
}

func (at *attempt) catalog() *catalog.Catalog {
	return at.d.deps.Catalog
}

// item returns the active item, which must be a non-empty slot.
func (at *attempt) item() (int, *types.Item, error) {
	return at.itemAt(at.cmd.Item)
}

func (at *attempt) itemAt(idx int) (int, *types.Item, error) {
	if !state.ValidItem(at.w, idx) {
		return types.NoIndex, nil, errs.InvalidTarget("You don't have that.").WithKey("item.missing")
	}
	return idx, &at.w.Items[idx], nil
}

func (at *attempt) template(id int) catalog.Template {
	t, _ := at.catalog().Lookup(id)
	return t
}

func (at *attempt) itemName(it *types.Item) string {
	return at.catalog().Name(it.ID)
}

// create instantiates a catalog item. Unknown ids are an internal defect.
func (at *attempt) create(id, owner int, p types.Point, number int) (int, error) {
	t, ok := at.catalog().Lookup(id)
	if !ok {
		return types.NoIndex, errs.Internalf("item %d is not in the catalog", id)
	}
	return state.CreateItem(at.w, t, owner, p, number), nil
}

// direction asks for a neighbouring cell and returns it with the living
// actor standing there, if any.
func (at *attempt) direction(ctx context.Context, msg string) (types.Point, int, error) {
	off, err := at.d.deps.Prompter.Direction(ctx, msg)
	if err != nil {
		return types.Point{}, types.NoIndex, err
	}
	p := at.actor().Position.Add(off)
	return p, state.ActorAt(at.w, p), nil
}

func (at *attempt) confirm(ctx context.Context, msg string) error {
	ok, err := at.d.deps.Prompter.YesNo(ctx, msg)
	if err != nil {
		return err
	}
	if !ok {
		return errs.Cancelled()
	}
	return nil
}

func (at *attempt) cast(ctx context.Context, s Spell) (bool, error) {
	return at.d.deps.Magic.Cast(ctx, at.w, s, at.res)
}

// castFrom casts effect id with the item's curse state on the actor.
func (at *attempt) castFrom(ctx context.Context, idx, id, power int) (bool, error) {
	return at.cast(ctx, Spell{
		ID:     id,
		Power:  power,
		Caster: at.cmd.Actor,
		Target: at.cmd.Actor,
		Curse:  at.w.Items[idx].Curse,
		Item:   idx,
		Source: SourceUse,
	})
}

func (at *attempt) damage(ctx context.Context, victim, amount int, cause string) error {
	return at.d.deps.Combat.Damage(ctx, at.w, victim, amount, cause, at.res)
}

func (at *attempt) consume(idx, n int) {
	state.ModifyNumber(at.w, idx, -n)
}

func (at *attempt) submenu(kind types.SubmenuKind, mode, file, item int) (types.Outcome, error) {
	at.res.Submenu = types.Submenu{Kind: kind, Mode: mode, File: file, Item: item, Target: types.NoIndex}
	return types.OutcomeOpenSubmenu, nil
}

// submenuFor opens a menu acting on another actor.
func (at *attempt) submenuFor(kind types.SubmenuKind, target int) (types.Outcome, error) {
	at.res.Submenu = types.Submenu{Kind: kind, Item: at.cmd.Item, Target: target}
	return types.OutcomeOpenSubmenu, nil
}

func (at *attempt) exitMap(reason types.ExitReason) (types.Outcome, error) {
	at.res.Exit = reason
	return types.OutcomeExitCurrentMap, nil
}

// nothing is the silent fallthrough of item effects.
func (at *attempt) nothing() (types.Outcome, error) {
	at.say("common.nothing_happens", "Nothing happens...", types.ToneNormal)
	return types.OutcomeTurnEnds, nil
}

func turnEnds() (types.Outcome, error) {
	return types.OutcomeTurnEnds, nil
}

// keep ends the attempt without spending time but keeps its changes.
func keep() (types.Outcome, error) {
	return types.OutcomeTurnContinuesWithError, nil
}

func (at *attempt) choose(ctx context.Context, msg string, options []prompt.Option) (int, error) {
	return at.d.deps.Prompter.Choose(ctx, msg, options)
}
