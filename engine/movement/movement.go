// Package movement resolves a single attempted step: impairment
// deviation, bumping into another actor, terrain events, leaving a
// self-contained map, and ambient cell features.
package movement

import (
	"context"
	"fmt"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/rng"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// ThiefTemplate is the actor kind that may pick the mover's pocket when
// displaced.
const ThiefTemplate = 271

// World-map chips in [SpecialChipMin, SpecialChipMax) cannot be entered.
const (
	SpecialChipMin = 264
	SpecialChipMax = 363
)

// Combat starts a melee exchange.
type Combat interface {
	Melee(ctx context.Context, w *types.World, attacker, defender int, r *types.Result) error
}

// Talker runs a conversation and reports whether the listener asked to be
// teleported away.
type Talker interface {
	Talk(ctx context.Context, w *types.World, speaker, listener int, r *types.Result) (teleport bool, err error)
}

// Terrain handles entering a cell and the effects of ambient features.
type Terrain interface {
	// Enter moves the actor onto p and fires whatever the cell triggers.
	Enter(ctx context.Context, w *types.World, actor int, p types.Point, r *types.Result) (types.Outcome, error)
	// Feature runs the effect of a non-walkable feature at p.
	Feature(ctx context.Context, w *types.World, actor int, p types.Point, r *types.Result) error
}

// Deps are the collaborators a Resolver calls.
type Deps struct {
	Combat   Combat
	Talker   Talker
	Terrain  Terrain
	Prompter prompt.Prompter
	Dice     rng.Source
}

// Options are player preferences that change bump resolution.
type Options struct {
	AttackNeutralNPCs bool // bumping a neutral NPC attacks instead of talking
}

// Step is one attempted move.
type Step struct {
	Actor   int
	Dest    types.Point
	Running bool
	Skip    bool // swap with a neutral actor instead of talking
}

// Resolver decides what an attempted step does.
type Resolver struct {
	deps Deps
	opts Options
}

// New creates a Resolver.
func New(deps Deps, opts Options) *Resolver {
	return &Resolver{deps: deps, opts: opts}
}

// Resolve runs one step. Failures come back as errors; the caller maps them
// to turn_continues_with_error and discards mutations.
func (m *Resolver) Resolve(ctx context.Context, w *types.World, s Step) (types.Result, error) {
	var res types.Result
	if !state.Alive(w, s.Actor) {
		return res, errs.InvalidTarget("Nobody is there to move.")
	}
	a := &w.Actors[s.Actor]
	dest := m.deviate(a, s.Dest, &res)
	a.NextPosition = dest

	if mount := w.Game.Mount; mount != 0 && state.Alive(w, mount) {
		if ma := &w.Actors[mount]; state.InterruptActivity(ma) {
			res.Say("move.interrupt", fmt.Sprintf("%s stops.", ma.Name), types.ToneNormal)
		}
	}

	if a.Burden >= 4 {
		return res, errs.Blocked("You carry too much to move!").WithKey("move.carry_too_much")
	}

	if other := state.ActorAt(w, dest); other != types.NoIndex && other != 0 && other != s.Actor {
		return m.bump(ctx, w, s, other, res)
	}

	if dest != a.Position && state.Passable(w, dest) {
		return m.enter(ctx, w, s.Actor, dest, res)
	}

	if !state.InBounds(&w.Map, dest) && leavable(&w.Map) {
		return m.leave(ctx, w, s.Actor, res)
	}

	if c := state.CellAt(&w.Map, dest); c != nil && c.Feature.Kind != types.FeatNone {
		switch c.Feature.Kind {
		case types.FeatClosedDoor:
			return m.enter(ctx, w, s.Actor, dest, res)
		case types.FeatQuestBoard:
			res.Outcome = types.OutcomeOpenSubmenu
			res.Submenu = types.Submenu{Kind: types.SubmenuQuestBoard, Item: types.NoIndex}
			return res, nil
		case types.FeatVotingBox:
			if err := m.deps.Terrain.Feature(ctx, w, s.Actor, dest, &res); err != nil {
				return res, err
			}
			res.Outcome = types.OutcomeTurnEnds
			return res, nil
		case types.FeatCityChart:
			if err := m.deps.Terrain.Feature(ctx, w, s.Actor, dest, &res); err != nil {
				return res, err
			}
			res.Outcome = types.OutcomeTurnContinuesWithError
			return res, nil
		}
	}

	if a.Confused > 0 {
		return res, errs.Blocked("You are confused.").WithKey("move.confused")
	}
	return res, errs.Blocked("")
}

// deviate perturbs the destination of an impaired mover.
func (m *Resolver) deviate(a *types.Actor, dest types.Point, res *types.Result) types.Point {
	off := false
	if a.Dimmed > 0 && a.Dimmed+10 > m.deps.Dice.Rnd(60) {
		off = true
	}
	if a.Drunk > 0 && m.deps.Dice.Rnd(5) == 0 {
		res.Say("move.drunk", "*stagger*", types.ToneAlert)
		off = true
	}
	if a.Confused > 0 || off {
		dx := m.deps.Dice.Rnd(3) - 1
		dy := m.deps.Dice.Rnd(3) - 1
		return types.Point{X: a.Position.X + dx, Y: a.Position.Y + dy}
	}
	return dest
}

// displaceable reports whether bumping into t swaps places instead of
// fighting or talking.
func (m *Resolver) displaceable(w *types.World, t *types.Actor, skip bool) bool {
	if t.HungOnSandBag {
		return false
	}
	switch {
	case t.Relationship >= types.RelationAlly:
		return true
	case t.Relationship == types.RelationNeutral:
		return w.Map.ID == types.MapIDMuseum || w.Map.ID == types.MapIDShop || skip
	}
	return false
}

func (m *Resolver) bump(ctx context.Context, w *types.World, s Step, other int, res types.Result) (types.Result, error) {
	a := &w.Actors[s.Actor]
	t := &w.Actors[other]

	if m.displaceable(w, t, s.Skip) {
		if w.Map.Type == types.MapWorld {
			return m.enter(ctx, w, s.Actor, t.Position, res)
		}
		state.Swap(w, s.Actor, other)
		res.Say("move.displace", fmt.Sprintf("You switch places with %s.", t.Name), types.ToneNormal)
		if t.TemplateID == ThiefTemplate && m.deps.Dice.Rnd(5) == 0 && t.Sleep == 0 {
			p := m.deps.Dice.Rnd(min(max(a.Gold, 0), 20) + 1)
			if a.ProtectedFromThieves {
				p = 0
			}
			if p != 0 {
				a.Gold -= p
				t.Gold += p
				res.Say("move.displace.dialog", fmt.Sprintf("%s: \"Sorry, I couldn't resist.\"", t.Name), types.ToneDialog)
				res.Emit("gold_stolen", map[string]any{"thief": other, "amount": p})
			}
		}
		if t.Activity.Kind == types.ActivityEat && state.InterruptActivity(t) {
			res.Say("move.interrupt", fmt.Sprintf("%s stops eating.", t.Name), types.ToneNormal)
		}
		res.Outcome = types.OutcomeTurnEnds
		return res, nil
	}

	hostile := t.Relationship <= types.RelationEnemy ||
		(m.opts.AttackNeutralNPCs && t.Relationship == types.RelationNeutral)
	if s.Running && !hostile {
		return res, errs.Blocked("")
	}

	if hostile {
		a.EnemyID = other
		if t.Invisible && !a.SeeInvisible && t.Wet == 0 {
			a.EnemyID = types.NoIndex
		}
		if err := m.deps.Combat.Melee(ctx, w, s.Actor, other, &res); err != nil {
			return res, err
		}
		res.Outcome = types.OutcomeTurnEnds
		return res, nil
	}

	teleport, err := m.deps.Talker.Talk(ctx, w, s.Actor, other, &res)
	if err != nil {
		return res, err
	}
	if teleport {
		res.Outcome = types.OutcomeExitCurrentMap
		res.Exit = types.ExitTeleport
		return res, nil
	}
	res.Outcome = types.OutcomeTurnEnds
	return res, nil
}

// enter is the movement event, gated by the world map's special chips.
func (m *Resolver) enter(ctx context.Context, w *types.World, actor int, p types.Point, res types.Result) (types.Result, error) {
	if w.Map.Type == types.MapWorld {
		if c := state.CellAt(&w.Map, p); c != nil && c.Chip >= SpecialChipMin && c.Chip < SpecialChipMax {
			return res, errs.Blocked("")
		}
	}
	out, err := m.deps.Terrain.Enter(ctx, w, actor, p, &res)
	if err != nil {
		return res, err
	}
	res.Outcome = out
	return res, nil
}

// leavable reports whether walking off the edge of m leaves it.
func leavable(m *types.Map) bool {
	if m.Type == types.MapShelter {
		return true
	}
	return m.DungeonLevel == 1 && m.Type != types.MapWorld && m.Type != types.MapDungeon
}

func (m *Resolver) leave(ctx context.Context, w *types.World, actor int, res types.Result) (types.Result, error) {
	if w.Map.Type == types.MapTemporary && w.Game.ImmediateQuestState != 3 {
		res.Say("move.leave.abandoning_quest", "Warning! You are going to abandon your current quest.", types.ToneAlert)
	}
	ok, err := m.deps.Prompter.YesNo(ctx, fmt.Sprintf("Do you want to leave %s?", w.Map.Name))
	if err != nil {
		return res, err
	}
	if !ok {
		return res, errs.Cancelled()
	}
	w.Game.LeftFrom = w.Actors[actor].Position
	w.Map.DungeonLevel--
	res.Outcome = types.OutcomeExitCurrentMap
	res.Exit = types.ExitLeaveMap
	return res, nil
}
