package action

import (
	"context"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Activity lengths for digging.
const (
	spotDigTurns = 20
	mineTurns    = 40
)

// aim uses the destination given with the command, or asks for a
// direction.
func (at *attempt) aim(ctx context.Context, msg string) (types.Point, int, error) {
	if at.cmd.HasDest {
		return at.cmd.Dest, state.ActorAt(at.w, at.cmd.Dest), nil
	}
	return at.direction(ctx, msg)
}

// bash strikes whatever is in a chosen direction: an actor, a closed
// door, or the air.
func (d *Dispatcher) bash(ctx context.Context, at *attempt) (types.Outcome, error) {
	p, tc, err := at.aim(ctx, "Which direction do you want to bash?")
	if err != nil {
		return 0, err
	}
	a := at.actor()

	if tc != types.NoIndex && tc != at.cmd.Actor {
		t := &at.w.Actors[tc]
		at.sayf("action.bash.execute", types.ToneNormal, "%s bash %s.", a.Name, t.Name)
		if t.Relationship == types.RelationNeutral && at.cmd.Actor == 0 {
			t.Relationship = types.RelationHostile
		}
		t.EnemyID = at.cmd.Actor
		if t.Sleep > 0 {
			t.Sleep = 0
			at.sayf("action.bash.disturb", types.ToneNormal, "%s wakes up.", t.Name)
			return turnEnds()
		}
		if err := at.damage(ctx, tc, at.rnd(state.Skill(a, types.SkillStrength)/5+2)+1, "bash"); err != nil {
			return 0, err
		}
		return turnEnds()
	}

	c := state.CellAt(&at.w.Map, p)
	if c != nil && c.Feature.Kind == types.FeatClosedDoor {
		at.say("action.bash.door.execute", "You bash the door.", types.ToneNormal)
		if at.rnd(c.Feature.Param1*20+30) < state.Skill(a, types.SkillStrength)+a.Level {
			state.ClearFeature(&at.w.Map, p)
			at.say("action.bash.door.destroyed", "The door is crushed.", types.ToneNormal)
			at.emit("door_destroyed", map[string]any{"x": p.X, "y": p.Y})
			return turnEnds()
		}
		at.say("action.bash.door.hurt", "Ouch! That hurts.", types.ToneBad)
		return turnEnds()
	}

	at.say("action.bash.air", "You bash the air.", types.ToneNormal)
	return turnEnds()
}

// dig starts digging: for buried things under the actor, or through an
// adjacent wall.
func (d *Dispatcher) dig(ctx context.Context, at *attempt) (types.Outcome, error) {
	p, _, err := at.aim(ctx, "Which direction do you want to dig?")
	if err != nil {
		return 0, err
	}
	a := at.actor()
	if p == a.Position {
		a.Activity = types.Activity{Kind: types.ActivityDig, Turns: spotDigTurns, Item: types.NoIndex, At: p}
		at.sayf("action.dig.spot", types.ToneNormal, "%s start to dig the ground.", a.Name)
		return turnEnds()
	}

	m := &at.w.Map
	c := state.CellAt(m, p)
	if c == nil || c.Kind != types.TileWall || m.Type == types.MapWorld ||
		p.X == 0 || p.Y == 0 || p.X == m.Width-1 || p.Y == m.Height-1 {
		return 0, errs.Blocked("It's impossible.").WithKey("common.it_is_impossible")
	}
	if a.SP < 0 {
		return 0, errs.Insufficient("You are too exhausted!").WithKey("magic.common.too_exhausted")
	}
	a.Activity = types.Activity{Kind: types.ActivityMine, Turns: mineTurns, Item: types.NoIndex, At: p}
	at.sayf("action.dig.wall", types.ToneNormal, "%s start to dig the wall.", a.Name)
	return turnEnds()
}
