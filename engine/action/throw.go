package action

import (
	"context"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// LittleSisterTemplate is the only actor kind a little ball can recruit.
const LittleSisterTemplate = 319

// throw sends the active item at the destination cell. Throwing always
// costs the turn once the item leaves the hand.
func (d *Dispatcher) throw(ctx context.Context, at *attempt) (types.Outcome, error) {
	idx, it, err := at.item()
	if err != nil {
		return 0, err
	}
	if !at.cmd.HasDest {
		return 0, errs.InvalidTarget("Throw where?").WithKey("throw.no_target")
	}
	a := at.actor()
	at.sayf("action.throw.execute", types.ToneNormal, "%s throw %s.", a.Name, at.itemName(it))

	dest := at.landing(at.cmd.Dest)
	thrown := *it
	at.consume(idx, 1)

	switch thrown.ID {
	case catalog.ItemMonsterBall:
		ball := thrown
		ball.Number = 1
		ball.Owner = types.OwnerGround
		ball.Position = dest
		ball.Equipped = false
		return at.throwBall(ctx, dest, state.AddItem(at.w, ball))
	case catalog.ItemLittleBall:
		return at.throwBall(ctx, dest, types.NoIndex)
	}
	if thrown.ID != catalog.ItemEmptyBottle &&
		(at.catalog().Category(thrown.ID) == catalog.CategoryPotion || thrown.ID == catalog.ItemTomato) {
		return at.throwLiquid(ctx, thrown, dest)
	}

	at.say("action.throw.shatters", "It falls and shatters.", types.ToneNormal)
	if thrown.ID == catalog.ItemCoinPurse {
		if _, err := at.create(catalog.ItemGoldPiece, types.OwnerGround, dest, thrown.Param1); err != nil {
			return 0, err
		}
	}
	return turnEnds()
}

// landing deviates a throw that the thrower's skill cannot place exactly.
func (at *attempt) landing(dest types.Point) types.Point {
	a := at.actor()
	skill := state.Skill(a, types.SkillThrowing)
	if state.Dist(a.Position, dest)*4 > at.rnd(skill+10)+skill/4 || at.rnd(10) == 0 {
		p := types.Point{X: dest.X + at.rnd(2) - at.rnd(2), Y: dest.Y + at.rnd(2) - at.rnd(2)}
		if c := state.CellAt(&at.w.Map, p); c != nil && c.Kind != types.TileWall {
			return p
		}
	}
	return dest
}

// throwBall resolves a capture device. ball is the monster ball lying at
// dest, or NoIndex for a little ball.
func (at *attempt) throwBall(ctx context.Context, dest types.Point, ball int) (types.Outcome, error) {
	tc := state.ActorAt(at.w, dest)
	if tc == types.NoIndex {
		return turnEnds()
	}
	t := &at.w.Actors[tc]
	at.sayf("action.throw.hits", types.ToneNormal, "It hits %s!", t.Name)

	if ball == types.NoIndex {
		if t.TemplateID != LittleSisterTemplate || state.IsParty(tc) {
			return at.nothing()
		}
		switch at.w.Map.ID {
		case types.MapIDArena, types.MapIDPetArena, types.MapIDShowHouse:
			at.say("action.throw.monster_ball.does_not_work", "This doesn't work in this area.", types.ToneNormal)
			return turnEnds()
		}
		if _, err := at.recruit(ctx, tc); err != nil {
			return 0, err
		}
		return turnEnds()
	}

	switch {
	case state.IsParty(tc) || t.Role != 0 || t.Special || t.Lord:
		at.say("action.throw.monster_ball.cannot_be_captured", "This creature can't be captured.", types.ToneNormal)
		return turnEnds()
	case t.Level > at.w.Items[ball].Param2:
		at.say("action.throw.monster_ball.not_enough_power", "Power level of the ball is not enough to capture the creature.", types.ToneNormal)
		return turnEnds()
	case t.HP > t.MaxHP/10:
		at.say("action.throw.monster_ball.not_weak_enough", "You need to weaken the creature to capture it.", types.ToneNormal)
		return turnEnds()
	}
	at.sayf("action.throw.monster_ball.capture", types.ToneGood, "You capture %s.", t.Name)
	b := &at.w.Items[ball]
	b.Subname = t.TemplateID
	b.Param3 = t.Level
	b.Weight = min(max(t.Weight, 10000), 100000)
	b.Value = 1000
	at.emit("actor_captured", map[string]any{"actor": tc, "template": t.TemplateID, "item": ball})
	state.Vanquish(at.w, tc)
	return turnEnds()
}

// recruit turns tc into a new ally and removes the original.
func (at *attempt) recruit(ctx context.Context, tc int) (int, error) {
	t := at.w.Actors[tc]
	ally, err := at.d.deps.Spawner.Spawn(ctx, at.w, t.TemplateID, t.Level, true, t.Position)
	if err != nil {
		return types.NoIndex, err
	}
	state.Vanquish(at.w, tc)
	at.sayf("action.ally_joins", types.ToneGood, "%s joins your party!", t.Name)
	at.emit("ally_joined", map[string]any{"actor": ally})
	return ally, nil
}

// throwLiquid splashes a potion, snow or tomato on an actor or the ground.
func (at *attempt) throwLiquid(ctx context.Context, thrown types.Item, dest types.Point) (types.Outcome, error) {
	if tc := state.ActorAt(at.w, dest); tc != types.NoIndex {
		t := &at.w.Actors[tc]
		at.sayf("action.throw.hits", types.ToneNormal, "It hits %s!", t.Name)
		t.Wet += 25
		state.InterruptActivity(t)
		switch thrown.ID {
		case catalog.ItemSnow:
			if tc != 0 {
				at.say("action.throw.snow.dialog", "\"Hey!\"", types.ToneDialog)
			}
			return turnEnds()
		case catalog.ItemTomato:
			at.say("action.throw.tomato", "*crumble*", types.ToneBad)
			if thrown.Param3 == -1 {
				at.sayf("damage.is_engulfed_in_fury", types.ToneBad, "%s is engulfed in fury!", t.Name)
				t.Furious += at.rnd(10) + 5
			}
			return turnEnds()
		}
		if !state.IsParty(tc) {
			t.Relationship = types.RelationHostile
			t.EnemyID = at.cmd.Actor
		}
		_, err := at.cast(ctx, Spell{
			ID:     thrown.ID,
			Power:  100,
			Caster: at.cmd.Actor,
			Target: tc,
			Curse:  thrown.Curse,
			Item:   types.NoIndex,
			Source: SourceThrown,
			Origin: dest,
		})
		if err != nil {
			return 0, err
		}
		return turnEnds()
	}

	if thrown.ID == catalog.ItemSnow {
		if man := state.FindItemAt(at.w, dest, catalog.ItemSnowman); man != types.NoIndex {
			at.sayf("action.throw.snow.hits_snowman", types.ToneNormal, "It hits %s and breaks it.", at.itemName(&at.w.Items[man]))
			at.consume(man, 1)
			return turnEnds()
		}
		if c := state.CellAt(&at.w.Map, dest); c != nil && c.Kind == types.TileSnow {
			return turnEnds()
		}
		at.say("action.throw.snow.melts", "It falls on the ground and melts.", types.ToneNormal)
	} else {
		at.say("action.throw.shatters", "It falls and shatters.", types.ToneNormal)
	}
	if thrown.ID == catalog.ItemTomato {
		at.say("action.throw.tomato", "*crumble*", types.ToneBad)
		return turnEnds()
	}

	power := 50 + state.Skill(at.actor(), types.SkillThrowing)*10
	switch thrown.ID {
	case catalog.ItemAcidBottle:
		state.AddMef(at.w, types.Mef{Position: dest, Kind: types.MefAcid, Image: 19, Turns: at.rnd(15) + 5, Power: power, Owner: at.cmd.Actor})
	case catalog.ItemMolotov:
		state.AddMef(at.w, types.Mef{Position: dest, Kind: types.MefFire, Image: 24, Turns: at.rnd(15) + 25, Power: power, Owner: at.cmd.Actor})
		at.burnItemsAt(dest)
	default:
		state.AddMef(at.w, types.Mef{
			Position: dest,
			Kind:     types.MefPotion,
			Image:    27,
			Turns:    -1,
			Power:    power,
			Owner:    at.cmd.Actor,
			ItemID:   thrown.ID,
			Curse:    thrown.Curse,
			Color:    thrown.Color,
		})
	}
	return turnEnds()
}

// burnItemsAt destroys the ground items at p that are not fireproof.
func (at *attempt) burnItemsAt(p types.Point) {
	for _, i := range state.ItemsAt(at.w, p) {
		it := &at.w.Items[i]
		if it.Flags.Fireproof() {
			continue
		}
		at.sayf("item.burnt", types.ToneBad, "%s catches fire and burns up.", at.itemName(it))
		it.Number = 0
	}
}
