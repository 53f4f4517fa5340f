package action

import (
	"context"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Stamina spent on a flight of stairs.
const stairsSP = 15

// Area code of the show house entrance on the world map.
const showroomArea = 35

// unlockProgress maps locked floors to the main quest progress that opens
// them.
var unlockProgress = map[int]int{3: 65, 17: 115, 25: 125, 44: 125}

// Floor sealed by the three stones.
const stonesFloor = 44

func (d *Dispatcher) goDown(ctx context.Context, at *attempt) (types.Outcome, error) {
	return d.stairs(ctx, at, true)
}

func (d *Dispatcher) goUp(ctx context.Context, at *attempt) (types.Outcome, error) {
	return d.stairs(ctx, at, false)
}

// stairs moves the actor one level down or up.
func (d *Dispatcher) stairs(ctx context.Context, at *attempt, down bool) (types.Outcome, error) {
	a := at.actor()
	m := &at.w.Map
	pos := a.Position

	if state.FindItem(at.w, at.cmd.Actor, catalog.ItemMoonGate) != types.NoIndex &&
		(m.Type == types.MapTown || m.Type == types.MapGuild) {
		at.say("action.use_stairs.gate", "You step into the moon gate.", types.ToneNormal)
		return at.exitMap(types.ExitGate)
	}

	if down && state.FindItemAt(at.w, pos, catalog.ItemKotatsu) != types.NoIndex {
		if err := at.confirm(ctx, "Really get into the kotatsu?"); err != nil {
			return 0, err
		}
		at.say("action.use_stairs.kotatsu.use", "It's dark here!", types.ToneNormal)
		a.Blind += 2
		return turnEnds()
	}

	f := state.CellAt(m, pos).Feature
	byStairs := false
	if m.ID == types.MapIDYourHome {
		switch {
		case down && state.FindItemAt(at.w, pos, catalog.ItemStairsDown) != types.NoIndex:
			if m.DungeonLevel >= m.DeepestLevel {
				return 0, errs.Blocked("You can't go down any further.").WithKey("action.use_stairs.cannot_go.down")
			}
			byStairs = true
		case !down && state.FindItemAt(at.w, pos, catalog.ItemStairsUp) != types.NoIndex:
			if m.DungeonLevel <= m.DangerLevel {
				return 0, errs.Blocked("You can't go up any further.").WithKey("action.use_stairs.cannot_go.up")
			}
			byStairs = true
		}
	}

	if !byStairs && m.Type != types.MapWorld {
		if down {
			if f.Kind != types.FeatDownstairs {
				return 0, errs.InvalidTarget("There're no downstairs here.").WithKey("action.use_stairs.no.downstairs")
			}
			if m.ID == types.MapIDVoid && m.DungeonLevel >= at.w.Game.VoidNextLordFloor {
				return 0, errs.Blocked("The path is blocked by a strange barrier.").WithKey("action.use_stairs.blocked_by_barrier")
			}
		} else if f.Kind != types.FeatUpstairs {
			return 0, errs.InvalidTarget("There're no upstairs here.").WithKey("action.use_stairs.no.upstairs")
		}
		byStairs = true
	}

	if f.Tile == types.TileDownLocked {
		return at.lockedStairs(pos)
	}

	if m.ID == types.MapIDRandomDungeon && m.DungeonLevel == m.DeepestLevel && m.Conquered != -1 {
		if err := at.confirm(ctx, "Really give up the quest and move over?"); err != nil {
			return 0, err
		}
	}

	if byStairs {
		a.SP -= stairsSP
		if a.SP < 0 || a.Burden >= 3 {
			if a.SP < 0 || at.rnd(5-a.Burden) == 0 {
				at.say("action.use_stairs.lost_balance", "Noooo! You lost your step and roll down!", types.ToneBad)
				if err := at.damage(ctx, at.cmd.Actor, a.MaxHP*(a.Burden*10+10)/100+1, "fall"); err != nil {
					return 0, err
				}
			}
			if !at.actor().Alive {
				return types.OutcomeTurnBeginsAgain, nil
			}
		}
	}

	if f.Kind == types.FeatMapEntrance && f.Param1+f.Param2*100 == showroomArea {
		if err := at.confirm(ctx, "Which showroom do you want to visit? Enter the gate?"); err != nil {
			return 0, err
		}
		return at.exitMap(types.ExitGate)
	}
	return at.exitMap(types.ExitStairs)
}

// lockedStairs opens a sealed floor once the main quest has progressed far
// enough. Either way the turn is spent.
func (at *attempt) lockedStairs(pos types.Point) (types.Outcome, error) {
	lv := at.w.Map.DungeonLevel
	need, ok := unlockProgress[lv]
	if !ok || at.w.Game.MainQuest < need {
		at.say("action.use_stairs.locked", "The stairs are locked.", types.ToneNormal)
		return turnEnds()
	}
	if lv == stonesFloor {
		at.say("action.use_stairs.unlock.stones", "The three magic stones shine. The seal is broken.", types.ToneGood)
	} else {
		at.say("action.use_stairs.unlock.normal", "You unlock the stairs.", types.ToneGood)
	}
	state.SetFeature(&at.w.Map, pos, types.Feature{Tile: types.TileDownstairs, Kind: types.FeatDownstairs})
	at.emit("stairs_unlocked", map[string]any{"level": lv})
	return turnEnds()
}
