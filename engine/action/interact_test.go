package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

func TestInteract_NoOneThere(t *testing.T) {
	f := newFixture(t)
	f.reply(prompt.Dir(0, 1))

	res := f.run(cmd(types.CmdInteract))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
	assert.Equal(t, "Invalid target.", lastText(res))
}

func TestInteract_TalkTeleports(t *testing.T) {
	f := newFixture(t)
	f.talker.On("Talk", mock.Anything, mock.Anything, 0, npc, mock.Anything).Return(true, nil)
	f.reply(prompt.Dir(1, 0), prompt.Pick(interactTalk))

	res := f.run(cmd(types.CmdInteract))
	assert.Equal(t, types.OutcomeExitCurrentMap, res.Outcome)
	assert.Equal(t, types.ExitTeleport, res.Exit)
	f.talker.AssertExpectations(t)
}

func TestInteract_AttackTargetsTheActor(t *testing.T) {
	f := newFixture(t)
	f.w.Actors[npc].Relationship = types.RelationNeutral
	f.combat.On("Melee", mock.Anything, f.w, 0, npc, mock.Anything).Return(nil)
	f.reply(prompt.Dir(1, 0), prompt.Pick(interactAttack))

	res := f.run(cmd(types.CmdInteract))
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, npc, f.w.Actors[0].EnemyID)
	f.combat.AssertExpectations(t)
}

func TestInteract_NameKeepsTurn(t *testing.T) {
	f := newFixture(t)
	f.reply(prompt.Dir(1, 0), prompt.Pick(interactName), prompt.Say("Blob"))

	res := f.run(cmd(types.CmdInteract))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
	assert.Equal(t, "Blob", f.w.Actors[npc].Name)
	assert.True(t, f.w.Actors[npc].OwnName)
}

func TestInteract_ChangeTone(t *testing.T) {
	f := newFixture(t)
	f.reply(prompt.Dir(1, 0), prompt.Pick(interactTone), prompt.Pick(2))

	res := f.run(cmd(types.CmdInteract))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
	assert.Equal(t, "rough", f.w.Actors[npc].TalkTone)
}

func TestInteract_OptionsFollowTarget(t *testing.T) {
	f := newFixture(t)
	f.w.Actors[npc].Livestock = true
	f.w.Actors[npc].HungOnSandBag = true
	f.w.Game.Wizard = true
	at := &attempt{d: f.d, w: f.w, cmd: cmd(types.CmdInteract), res: &types.Result{}}

	var ids []int
	for _, o := range at.interactOptions(npc) {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int{interactTalk, interactAttack, interactGive, interactBringOut, interactTeachWords,
		interactTone, interactRelease, interactName, interactInfo}, ids)

	ids = ids[:0]
	for _, o := range at.interactOptions(0) {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int{interactName, interactInfo}, ids)
}

func TestInteract_BringOutLivestock(t *testing.T) {
	f := newFixture(t)
	f.w.Actors[npc].Livestock = true
	f.spawner.On("Spawn", mock.Anything, mock.Anything, 3, 2, true, east).
		Run(func(args mock.Arguments) {
			w := args.Get(1).(*types.World)
			state.PutActor(w, 1, types.Actor{Name: "putit", Alive: true, Position: types.Point{X: 6, Y: 6}, EnemyID: types.NoIndex})
		}).Return(1, nil)
	f.reply(prompt.Dir(1, 0), prompt.Pick(interactBringOut))

	res := f.run(cmd(types.CmdInteract))
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.False(t, f.w.Actors[npc].Alive)
	assert.True(t, f.w.Actors[1].Alive)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "ally_joined", res.Events[0].Type)
}

func TestInteract_ReleaseFromSandBag(t *testing.T) {
	f := newFixture(t)
	f.w.Actors[npc].HungOnSandBag = true
	f.reply(prompt.Dir(1, 0), prompt.Pick(interactRelease))

	f.run(cmd(types.CmdInteract))
	assert.False(t, f.w.Actors[npc].HungOnSandBag)
	assert.NotEqual(t, types.NoIndex, state.FindItemAt(f.w, east, catalog.ItemSandBag))
}

func TestGive(t *testing.T) {
	f := newFixture(t)
	state.PutActor(f.w, 1, types.Actor{Name: "dog", Alive: true, Position: types.Point{X: 4, Y: 5}, EnemyID: types.NoIndex})

	f.reply(prompt.Dir(1, 0))
	res := f.run(cmd(types.CmdGive))
	assert.Equal(t, types.OutcomeOpenSubmenu, res.Outcome)
	assert.Equal(t, types.Submenu{Kind: types.SubmenuGive, Item: types.NoIndex, Target: npc}, res.Submenu)

	f.reply(prompt.Dir(-1, 0))
	res = f.run(cmd(types.CmdGive))
	assert.Equal(t, types.SubmenuAllyInventory, res.Submenu.Kind)
	assert.Equal(t, 1, res.Submenu.Target)

	f.reply(prompt.Dir(0, 0))
	res = f.run(cmd(types.CmdGive))
	assert.Equal(t, "Invalid target.", lastText(res))
}
