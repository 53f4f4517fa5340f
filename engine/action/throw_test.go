package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

func throwCmd(item int, dest types.Point) types.Command {
	c := itemCmd(types.CmdThrow, item)
	c.Dest, c.HasDest = dest, true
	return c
}

func TestThrow_NeedsDestination(t *testing.T) {
	f := newFixture(t)
	ball := f.give(0, catalog.ItemMonsterBall, 1)

	res := f.run(itemCmd(types.CmdThrow, ball))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
	assert.Equal(t, "Throw where?", lastText(res))
	assert.Equal(t, 1, f.w.Items[ball].Number)
}

func TestThrow_MonsterBall(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(w *types.World)
		captured bool
		want     string
	}{
		{
			name:  "level above ball power",
			setup: func(w *types.World) { w.Actors[npc].Level = 10; w.Actors[npc].HP = 1 },
			want:  "Power level of the ball is not enough to capture the creature.",
		},
		{
			name:  "not weak enough",
			setup: func(w *types.World) { w.Actors[npc].HP = 5 },
			want:  "You need to weaken the creature to capture it.",
		},
		{
			name:  "lords resist",
			setup: func(w *types.World) { w.Actors[npc].Lord = true; w.Actors[npc].HP = 1 },
			want:  "This creature can't be captured.",
		},
		{
			name:     "weak creature is captured",
			setup:    func(w *types.World) { w.Actors[npc].HP = 1 },
			captured: true,
			want:     "You capture putit.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ball := f.give(0, catalog.ItemMonsterBall, 1)
			tt.setup(f.w)

			res := f.run(throwCmd(ball, east))
			assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
			assert.Equal(t, tt.want, lastText(res))
			assert.Equal(t, types.NoIndex, state.FindItem(f.w, 0, catalog.ItemMonsterBall))
			assert.Equal(t, !tt.captured, f.w.Actors[npc].Alive)

			landed := state.FindItemAt(f.w, east, catalog.ItemMonsterBall)
			require.NotEqual(t, types.NoIndex, landed)
			if tt.captured {
				assert.Equal(t, 3, f.w.Items[landed].Subname)
				assert.Equal(t, 10000, f.w.Items[landed].Weight)
				require.Len(t, res.Events, 1)
				assert.Equal(t, "actor_captured", res.Events[0].Type)
			} else {
				assert.Zero(t, f.w.Items[landed].Subname)
			}
		})
	}
}

func TestThrow_CoinPurseDropsGold(t *testing.T) {
	f := newFixture(t)
	purse := f.give(0, catalog.ItemCoinPurse, 1)
	dest := types.Point{X: 7, Y: 7}

	res := f.run(throwCmd(purse, dest))
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	gold := state.FindItemAt(f.w, dest, catalog.ItemGoldPiece)
	require.NotEqual(t, types.NoIndex, gold)
	assert.Equal(t, 30, f.w.Items[gold].Number)
}

func TestThrow_PotionProvokes(t *testing.T) {
	f := newFixture(t)
	f.w.Actors[npc].Relationship = types.RelationNeutral
	potion := f.give(0, itemHealPotion, 1)
	f.magic.On("Cast", mock.Anything, mock.Anything, mock.MatchedBy(func(s Spell) bool {
		return s.Source == SourceThrown && s.Target == npc && s.ID == itemHealPotion
	}), mock.Anything).Return(true, nil)

	res := f.run(throwCmd(potion, east))
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, types.RelationHostile, f.w.Actors[npc].Relationship)
	assert.Equal(t, 0, f.w.Actors[npc].EnemyID)
	assert.Equal(t, 25, f.w.Actors[npc].Wet)
	f.magic.AssertExpectations(t)
}

func TestThrow_AcidLeavesMef(t *testing.T) {
	f := newFixture(t)
	acid := f.give(0, catalog.ItemAcidBottle, 1)
	dest := types.Point{X: 5, Y: 8}

	res := f.run(throwCmd(acid, dest))
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	require.Len(t, f.w.Mefs, 1)
	assert.Equal(t, types.MefAcid, f.w.Mefs[0].Kind)
	assert.Equal(t, dest, f.w.Mefs[0].Position)
	assert.Equal(t, 5, f.w.Mefs[0].Turns)
}

func TestThrow_SnowBreaksSnowman(t *testing.T) {
	f := newFixture(t)
	snow := f.give(0, catalog.ItemSnow, 3)
	dest := types.Point{X: 5, Y: 7}
	man := f.place(catalog.ItemSnowman, dest)

	res := f.run(throwCmd(snow, dest))
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, 0, f.w.Items[man].Number)
	assert.Equal(t, 2, f.w.Items[snow].Number)
	assert.Empty(t, f.w.Mefs)
}
