package action

import (
	"context"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// searchRadius is how far from the actor search looks for hidden things.
const searchRadius = 5

// TrapGod is the god whose followers disarm traps they stand on.
const TrapGod = "mani"

// Crystal own state marking a hidden summoning crystal in a user map.
const hiddenCrystalState = 5

// search looks for traps, hidden paths and small coins around the actor,
// then works any gathering spot it stands on.
func (d *Dispatcher) search(_ context.Context, at *attempt) (types.Outcome, error) {
	a := at.actor()
	pos := a.Position
	m := &at.w.Map
	at.say("action.search.execute", "You search the surroundings carefully.", types.ToneNormal)

	if m.ID == types.MapIDShowHouse {
		at.crystalHint(pos)
	}

	for y := pos.Y - searchRadius; y <= pos.Y+searchRadius; y++ {
		for x := pos.X - searchRadius; x <= pos.X+searchRadius; x++ {
			p := types.Point{X: x, Y: y}
			c := state.CellAt(m, p)
			if c == nil || c.Feature.Kind == types.FeatNone {
				continue
			}
			f := c.Feature
			if p == pos || state.Adjacent(p, pos) {
				switch {
				case f.Kind == types.FeatTrap && f.Tile == types.TileHiddenFloor && at.reveal():
					f.Tile = types.TileTrap
					state.SetFeature(m, p, f)
					at.say("action.search.discover.trap", "You discover a trap.", types.ToneNormal)
				case f.Kind == types.FeatHiddenPath && at.reveal():
					state.ClearFeature(m, p)
					at.say("action.search.discover.hidden_path", "You discover a hidden path.", types.ToneNormal)
				}
			}
			if f.Kind == types.FeatSmallCoin && m.ID != types.MapIDShowHouse {
				switch {
				case p == pos:
					at.say("action.search.small_coin.find", "You find a small coin!", types.ToneGood)
					state.ClearFeature(m, p)
					if _, err := at.create(catalog.ItemSmallMedal, types.OwnerGround, p, 1); err != nil {
						return 0, err
					}
				case state.Dist(pos, p) > 2:
					at.say("action.search.small_coin.far", "You sense something.", types.ToneNormal)
				default:
					at.say("action.search.small_coin.close", "You see something shine.", types.ToneNormal)
				}
			}
		}
	}

	here := state.CellAt(m, pos).Feature
	if here.Kind == types.FeatTrap && here.Tile == types.TileTrap && at.cmd.Actor == 0 && at.player().God == TrapGod {
		state.ClearFeature(m, pos)
		at.say("action.search.disarm", "You disarm the trap.", types.ToneGood)
	}
	if activity, ok := gatheringSpots[here.Kind]; ok {
		a.Activity = types.Activity{Kind: activity, Turns: 20, Item: types.NoIndex}
	}
	return turnEnds()
}

var gatheringSpots = map[int]types.ActivityKind{
	types.FeatSpotDig:    types.ActivityDig,
	types.FeatSpotDig2:   types.ActivityDig,
	types.FeatSpotFish:   types.ActivityFish,
	types.FeatSpotMine:   types.ActivityMine,
	types.FeatSpotGather: types.ActivityMaterial,
}

// reveal rolls perception against the map's danger level.
func (at *attempt) reveal() bool {
	skill := state.Skill(at.actor(), types.SkillPerception)
	return at.rnd(skill*5+20) >= at.w.Map.DangerLevel*2+10
}

// crystalHint tells how far the nearest hidden crystal is.
func (at *attempt) crystalHint(pos types.Point) {
	best := -1
	for i := range at.w.Items {
		it := &at.w.Items[i]
		if it.Number == 0 || it.OwnState != hiddenCrystalState || it.ID != catalog.ItemSummonCrystal {
			continue
		}
		if d := state.Dist(it.Position, pos); best < 0 || d < best {
			best = d
		}
	}
	switch {
	case best < 0:
	case best <= 3:
		at.say("action.search.crystal.close", "You sense something very close.", types.ToneNormal)
		at.say("action.search.crystal.normal", "You sense something close.", types.ToneNormal)
	case best <= 9:
		at.say("action.search.crystal.normal", "You sense something close.", types.ToneNormal)
	case best <= 16:
		at.say("action.search.crystal.far", "You sense something far away.", types.ToneNormal)
	default:
		at.say("action.search.crystal.sense", "You sense a crystal somewhere.", types.ToneNormal)
	}
}
