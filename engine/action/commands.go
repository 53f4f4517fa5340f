package action

import (
	"context"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Activity lengths in turns.
const (
	eatTurns  = 8
	restTurns = 50
	readTurns = 40
)

// Stamina costs.
const snowGatherSP = 10

// World-map building entrances in [buildingAreaMin, buildingAreaMax) can be
// taken down.
const (
	buildingAreaMin = 300
	buildingAreaMax = 450
)

// Exit menu entries.
const (
	exitQuit = iota
	exitCancel
	exitSettings
)

// look browses visible actors and makes the pick the player's target.
func (d *Dispatcher) look(ctx context.Context, at *attempt) (types.Outcome, error) {
	tc, err := d.deps.Selector.Select(ctx, at.w, d.deps.Prompter, at.cmd.Actor, "Look")
	if err != nil {
		return 0, err
	}
	at.actor().EnemyID = tc
	at.sayf("action.look.target", types.ToneNormal, "You target %s.", at.w.Actors[tc].Name)
	return keep()
}

// enemyTarget returns the actor a ranged attack should go to: the command
// target, then the current enemy, then the nearest visible hostile.
func (at *attempt) enemyTarget() (int, error) {
	sel := at.d.deps.Selector
	candidates := sel.Candidates(at.w, at.cmd.Actor)
	a := at.actor()
	for _, want := range []int{at.cmd.Target, a.EnemyID} {
		for _, c := range candidates {
			if c.Actor == want {
				return want, nil
			}
		}
	}
	for _, c := range candidates {
		if at.w.Actors[c.Actor].Relationship <= types.RelationEnemy {
			a.EnemyID = c.Actor
			return c.Actor, nil
		}
	}
	return types.NoIndex, errs.InvalidTarget("You find no target.").WithKey("action.ranged.no_target")
}

func (d *Dispatcher) fire(ctx context.Context, at *attempt) (types.Outcome, error) {
	tc, err := at.enemyTarget()
	if err != nil {
		return 0, err
	}
	t := &at.w.Actors[tc]
	if t.Relationship >= types.RelationNeutral {
		if err := at.confirm(ctx, "Really attack "+t.Name+"?"); err != nil {
			return 0, err
		}
	}
	switch d.deps.Combat.CanFire(at.w, at.cmd.Actor) {
	case FireNoWeapon:
		return 0, errs.Insufficient("You need to equip a firing weapon.").WithKey("action.ranged.equip.need_weapon")
	case FireNoAmmo:
		return 0, errs.Insufficient("You need to equip ammos or arrows.").WithKey("action.ranged.equip.need_ammo")
	case FireWrongAmmo:
		return 0, errs.Insufficient("You're equipped with wrong type of ammos.").WithKey("action.ranged.equip.wrong_ammo")
	}
	at.actor().EnemyID = tc
	if err := d.deps.Combat.Ranged(ctx, at.w, at.cmd.Actor, tc, at.res); err != nil {
		return 0, err
	}
	return turnEnds()
}

// close shuts an adjacent open door. With exactly one candidate door no
// direction is asked.
func (d *Dispatcher) close(ctx context.Context, at *attempt) (types.Outcome, error) {
	pos := at.actor().Position
	var doors []types.Point
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			p := pos.Add(types.Point{X: dx, Y: dy})
			if p == pos {
				continue
			}
			if c := state.CellAt(&at.w.Map, p); c != nil && c.Feature.Kind == types.FeatOpenDoor && state.ActorAt(at.w, p) == types.NoIndex {
				doors = append(doors, p)
			}
		}
	}
	var p types.Point
	if len(doors) == 1 {
		p = doors[0]
	} else {
		dp, _, err := at.direction(ctx, "Which door do you want to close?")
		if err != nil {
			return 0, err
		}
		p = dp
	}

	c := state.CellAt(&at.w.Map, p)
	if c == nil || c.Feature.Kind != types.FeatOpenDoor {
		return 0, errs.InvalidTarget("There's nothing to close.").WithKey("action.close.nothing_to_close")
	}
	if state.ActorAt(at.w, p) != types.NoIndex {
		return 0, errs.Blocked("Someone is in the way.").WithKey("action.close.blocked")
	}
	state.SetFeature(&at.w.Map, p, types.Feature{Tile: types.TileDoorClosed, Kind: types.FeatClosedDoor})
	at.sayf("action.close.execute", types.ToneNormal, "%s close the door.", at.actor().Name)
	return turnEnds()
}

func (d *Dispatcher) drink(ctx context.Context, at *attempt) (types.Outcome, error) {
	idx, it, err := at.item()
	if err != nil {
		return 0, err
	}
	if at.catalog().Category(it.ID) != catalog.CategoryPotion {
		return 0, errs.InvalidItemState("You can't drink that.").WithKey("action.drink.cannot")
	}
	potion := *it
	at.sayf("action.drink.execute", types.ToneNormal, "%s drink %s.", at.actor().Name, at.itemName(it))
	at.consume(idx, 1)
	_, err = at.cast(ctx, Spell{
		ID:     potion.ID,
		Power:  100,
		Caster: at.cmd.Actor,
		Target: at.cmd.Actor,
		Curse:  potion.Curse,
		Item:   idx,
		Source: SourceDrink,
	})
	if err != nil {
		return 0, err
	}
	return turnEnds()
}

func (d *Dispatcher) read(ctx context.Context, at *attempt) (types.Outcome, error) {
	idx, it, err := at.item()
	if err != nil {
		return 0, err
	}
	if it.ID == catalog.ItemRecipe && it.Subname == 0 {
		at.say("action.read.recipe.info", "It's a blank recipe. Use the recipe holder to write one.", types.ToneNormal)
		return turnEnds()
	}
	switch at.catalog().Category(it.ID) {
	case catalog.CategorySpellbook:
		at.actor().Activity = types.Activity{Kind: types.ActivityRead, Turns: readTurns, Item: idx}
		at.sayf("action.read.book.start", types.ToneNormal, "%s start to read %s.", at.actor().Name, at.itemName(it))
		return turnEnds()
	case catalog.CategoryScroll:
		scroll := *it
		at.sayf("action.read.scroll.execute", types.ToneNormal, "%s read %s.", at.actor().Name, at.itemName(it))
		at.consume(idx, 1)
		_, err := at.cast(ctx, Spell{
			ID:     scroll.ID,
			Power:  100,
			Caster: at.cmd.Actor,
			Target: at.cmd.Actor,
			Curse:  scroll.Curse,
			Item:   idx,
			Source: SourceRead,
		})
		if err != nil {
			return 0, err
		}
		return turnEnds()
	}
	return 0, errs.InvalidItemState("You can't read that.").WithKey("action.read.cannot")
}

func (d *Dispatcher) zap(ctx context.Context, at *attempt) (types.Outcome, error) {
	idx, it, err := at.item()
	if err != nil {
		return 0, err
	}
	if at.catalog().Category(it.ID) != catalog.CategoryRod {
		return 0, errs.InvalidItemState("You can't zap that.").WithKey("action.zap.cannot")
	}
	if it.Count <= 0 {
		return 0, errs.Insufficient("You zap it, but nothing happens.").WithKey("action.zap.out_of_charge")
	}
	idx = state.Separate(at.w, idx)
	rod := &at.w.Items[idx]
	rod.Count--
	at.sayf("action.zap.execute", types.ToneNormal, "You zap %s.", at.itemName(rod))
	ok, err := at.cast(ctx, Spell{
		ID:     rod.ID,
		Power:  100,
		Caster: at.cmd.Actor,
		Target: at.cmd.Target,
		Curse:  rod.Curse,
		Item:   idx,
		Source: SourceZap,
	})
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errs.InvalidTarget("Nothing happens.").WithKey("common.nothing_happens")
	}
	return turnEnds()
}

// eaterOf returns the actor currently eating item idx, or NoIndex.
func eaterOf(w *types.World, idx int) int {
	for i := range w.Actors {
		a := &w.Actors[i]
		if a.Alive && a.Activity.Kind == types.ActivityEat && a.Activity.Turns > 0 && a.Activity.Item == idx {
			return i
		}
	}
	return types.NoIndex
}

func (d *Dispatcher) eat(_ context.Context, at *attempt) (types.Outcome, error) {
	idx, it, err := at.item()
	if err != nil {
		return 0, err
	}
	if at.catalog().Category(it.ID) != catalog.CategoryFood {
		return 0, errs.InvalidItemState("You can't eat that.").WithKey("action.eat.cannot")
	}
	a := at.actor()
	user := eaterOf(at.w, idx)
	switch {
	case user == types.NoIndex || user == at.cmd.Actor:
	case at.cmd.Actor == 0:
		return 0, errs.Blocked("Someone else is using it.").WithKey("action.someone_else_is_using")
	default:
		other := &at.w.Actors[user]
		state.InterruptActivity(other)
		at.sayf("action.eat.snatches", types.ToneNormal, "%s snatches %s's food.", a.Name, other.Name)
	}
	a.Activity = types.Activity{Kind: types.ActivityEat, Turns: eatTurns, Item: idx}
	at.sayf("action.eat.start", types.ToneNormal, "%s start to eat %s.", a.Name, at.itemName(it))
	return turnEnds()
}

func (d *Dispatcher) rest(_ context.Context, at *attempt) (types.Outcome, error) {
	a := at.actor()
	a.Activity = types.Activity{Kind: types.ActivityRest, Turns: restTurns, Item: types.NoIndex}
	at.sayf("activity.rest.start", types.ToneNormal, "%s lie down to rest.", a.Name)
	return turnEnds()
}

// get picks up what lies under the player, harvests a grown plant or
// gathers snow.
func (d *Dispatcher) get(ctx context.Context, at *attempt) (types.Outcome, error) {
	a := at.actor()
	pos := a.Position
	m := &at.w.Map
	here := state.ItemsAt(at.w, pos)
	f := state.CellAt(m, pos).Feature

	if len(here) == 0 && f.Kind != types.FeatNone && m.ID != types.MapIDShowHouse {
		if f.Kind == types.FeatPlant {
			return at.harvest(pos, f)
		}
		if area := f.Param1 + f.Param2*100; m.Type == types.MapWorld && f.Kind == types.FeatMapEntrance &&
			area >= buildingAreaMin && area < buildingAreaMax {
			if err := at.confirm(ctx, "Really remove this building?"); err != nil {
				return 0, err
			}
			state.ClearFeature(m, pos)
			at.say("action.get.building.remove", "You remove the building.", types.ToneNormal)
			at.emit("building_removed", map[string]any{"area": area})
			return turnEnds()
		}
	}

	if len(here) == 0 {
		c := state.CellAt(m, pos)
		if (m.Type == types.MapTown || m.Type == types.MapGuild) && c.Kind == types.TileSnow {
			at.say("action.get.snow", "You rake up a handful of snow.", types.ToneNormal)
			if a.SP < snowGatherSP {
				at.say("magic.common.too_exhausted", "You are too exhausted!", types.ToneBad)
				return turnEnds()
			}
			a.SP -= snowGatherSP
			snow, err := at.create(catalog.ItemSnow, at.cmd.Actor, types.Point{}, 1)
			if err != nil {
				return 0, err
			}
			at.w.Items[snow].Curse = types.CurseNone
			state.StackItem(at.w, snow)
			return turnEnds()
		}
		return 0, errs.InvalidTarget("You grasp at the air.").WithKey("action.get.air")
	}

	if len(here) > 1 {
		return at.submenu(types.SubmenuPickUp, 0, 0, types.NoIndex)
	}
	idx := here[0]
	it := &at.w.Items[idx]
	switch it.OwnState {
	case 2:
		return 0, errs.Blocked("You can't carry it.").WithKey("action.get.cannot_carry")
	case 1, hiddenCrystalState:
		return 0, errs.Blocked("It's not your property.").WithKey("action.get.not_owned")
	}
	name := at.itemName(it)
	if it.ID == catalog.ItemGoldPiece {
		a.Gold += it.Number
		at.sayf("action.pick_up.gold", types.ToneNormal, "You pick up %d gold pieces.", it.Number)
		it.Number = 0
		return turnEnds()
	}
	it.Owner = at.cmd.Actor
	it.Position = types.Point{}
	state.StackItem(at.w, idx)
	at.sayf("action.pick_up.execute", types.ToneNormal, "%s pick up %s.", a.Name, name)
	return turnEnds()
}

// harvest takes a grown plant. Young and withered plants are removed.
func (at *attempt) harvest(pos types.Point, f types.Feature) (types.Outcome, error) {
	m := &at.w.Map
	switch {
	case f.Tile < types.TilePlant+2:
		at.say("action.get.plant.young", "You pull out the young plant.", types.ToneNormal)
		state.ClearFeature(m, pos)
		return turnEnds()
	case f.Tile == types.TilePlant+3:
		at.say("action.get.plant.dead", "You pull out the dead plant.", types.ToneNormal)
		state.ClearFeature(m, pos)
		return turnEnds()
	}
	crop, ok := at.randomTemplate(catalog.CategoryFood, at.player().Level)
	if !ok {
		return at.nothing()
	}
	got, err := at.create(crop.ID, at.cmd.Actor, types.Point{}, 1)
	if err != nil {
		return 0, err
	}
	at.sayf("action.plant.harvest", types.ToneGood, "You harvest %s.", at.itemName(&at.w.Items[got]))
	state.StackItem(at.w, got)
	state.ClearFeature(m, pos)
	return turnEnds()
}

// exit saves and ends the session.
func (d *Dispatcher) exit(ctx context.Context, at *attempt) (types.Outcome, error) {
	msg := "Do you want to save the game and exit?"
	if at.w.Map.ID == types.MapIDShowHouse {
		msg = "This map can't be saved. Exit anyway?"
	}
	choice, err := at.choose(ctx, msg, []prompt.Option{
		{ID: exitQuit, Label: "Exit"},
		{ID: exitCancel, Label: "Cancel"},
		{ID: exitSettings, Label: "Game Setting"},
	})
	if err != nil {
		return 0, err
	}
	switch choice {
	case exitCancel:
		return 0, errs.Cancelled()
	case exitSettings:
		at.emit("settings_requested", nil)
		return keep()
	}
	if at.w.Map.ID != types.MapIDShowHouse && d.deps.Saver != nil {
		if err := d.deps.Saver.Save(ctx, at.w); err != nil {
			return 0, errs.Wrap(err, "The game could not be saved.")
		}
		at.say("action.exit.saved", "Your game has been saved successfully.", types.ToneNormal)
		at.say("action.exit.you_close_your_eyes", "You close your eyes and peacefully fade away.", types.ToneNormal)
	}
	return types.OutcomeTerminateSession, nil
}
