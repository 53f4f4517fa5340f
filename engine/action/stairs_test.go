package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

func newDungeonFixture(t *testing.T, draws ...int) *fixture {
	f := newFixture(t, draws...)
	f.w.Map.Type = types.MapDungeon
	f.w.Map.DungeonLevel = 3
	f.w.Map.DeepestLevel = 10
	return f
}

func TestStairs_NoStairs(t *testing.T) {
	f := newDungeonFixture(t)

	res := f.run(cmd(types.CmdGoDown))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
	assert.Equal(t, "There're no downstairs here.", lastText(res))

	res = f.run(cmd(types.CmdGoUp))
	assert.Equal(t, "There're no upstairs here.", lastText(res))
	assert.Equal(t, 100, f.w.Actors[0].SP)
}

func TestStairs_Descend(t *testing.T) {
	f := newDungeonFixture(t)
	state.SetFeature(&f.w.Map, here, types.Feature{Tile: types.TileDownstairs, Kind: types.FeatDownstairs})

	res := f.run(cmd(types.CmdGoDown))
	assert.Equal(t, types.OutcomeExitCurrentMap, res.Outcome)
	assert.Equal(t, types.ExitStairs, res.Exit)
	assert.Equal(t, 100-stairsSP, f.w.Actors[0].SP)
}

func TestStairs_Locked(t *testing.T) {
	t.Run("quest not advanced", func(t *testing.T) {
		f := newDungeonFixture(t)
		state.SetFeature(&f.w.Map, here, types.Feature{Tile: types.TileDownLocked, Kind: types.FeatDownstairs})

		res := f.run(cmd(types.CmdGoDown))
		assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
		assert.Equal(t, "The stairs are locked.", lastText(res))
		assert.Equal(t, types.TileDownLocked, state.CellAt(&f.w.Map, here).Feature.Tile)
	})

	t.Run("quest opens the seal", func(t *testing.T) {
		f := newDungeonFixture(t)
		f.w.Game.MainQuest = 65
		state.SetFeature(&f.w.Map, here, types.Feature{Tile: types.TileDownLocked, Kind: types.FeatDownstairs})

		res := f.run(cmd(types.CmdGoDown))
		assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
		assert.Equal(t, types.TileDownstairs, state.CellAt(&f.w.Map, here).Feature.Tile)
	})
}

func TestStairs_LostBalance(t *testing.T) {
	f := newDungeonFixture(t)
	f.w.Actors[0].SP = 10
	state.SetFeature(&f.w.Map, here, types.Feature{Tile: types.TileDownstairs, Kind: types.FeatDownstairs})
	f.combat.On("Damage", mock.Anything, mock.Anything, 0, 6, "fall", mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*types.World).Actors[0].Alive = false
		}).Return(nil)

	res := f.run(cmd(types.CmdGoDown))
	assert.Equal(t, types.OutcomeTurnBeginsAgain, res.Outcome)
	f.combat.AssertExpectations(t)
}

func TestStairs_Overweight(t *testing.T) {
	f := newDungeonFixture(t, 1)
	f.w.Actors[0].Burden = 3
	state.SetFeature(&f.w.Map, here, types.Feature{Tile: types.TileDownstairs, Kind: types.FeatDownstairs})

	res := f.run(cmd(types.CmdGoDown))
	assert.Equal(t, types.OutcomeExitCurrentMap, res.Outcome, "the balance roll was kept")
	f.combat.AssertNotCalled(t, "Damage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStairs_VoidBarrier(t *testing.T) {
	f := newDungeonFixture(t)
	f.w.Map.ID = types.MapIDVoid
	f.w.Game.VoidNextLordFloor = 3
	state.SetFeature(&f.w.Map, here, types.Feature{Tile: types.TileDownstairs, Kind: types.FeatDownstairs})

	res := f.run(cmd(types.CmdGoDown))
	assert.Equal(t, "The path is blocked by a strange barrier.", lastText(res))
}

func TestStairs_Kotatsu(t *testing.T) {
	f := newDungeonFixture(t)
	f.place(catalog.ItemKotatsu, here)

	f.reply(prompt.No())
	res := f.run(cmd(types.CmdGoDown))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
	assert.Zero(t, f.w.Actors[0].Blind)

	f.reply(prompt.Yes())
	res = f.run(cmd(types.CmdGoDown))
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, 2, f.w.Actors[0].Blind)
}

func TestStairs_GiveUpQuest(t *testing.T) {
	f := newDungeonFixture(t)
	f.w.Map.ID = types.MapIDRandomDungeon
	f.w.Map.DeepestLevel = 3
	state.SetFeature(&f.w.Map, here, types.Feature{Tile: types.TileDownstairs, Kind: types.FeatUpstairs})

	f.reply(prompt.No())
	res := f.run(cmd(types.CmdGoUp))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)

	f.reply(prompt.Yes())
	res = f.run(cmd(types.CmdGoUp))
	assert.Equal(t, types.OutcomeExitCurrentMap, res.Outcome)
}

func TestStairs_HomeStairs(t *testing.T) {
	f := newFixture(t)
	f.w.Map.ID = types.MapIDYourHome
	f.w.Map.Type = types.MapPlayerOwned
	f.w.Map.DungeonLevel = 1
	f.w.Map.DeepestLevel = 1
	f.place(catalog.ItemStairsDown, here)

	res := f.run(cmd(types.CmdGoDown))
	assert.Equal(t, "You can't go down any further.", lastText(res))

	f.w.Map.DeepestLevel = 2
	res = f.run(cmd(types.CmdGoDown))
	assert.Equal(t, types.OutcomeExitCurrentMap, res.Outcome)
}
