package movement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/rng"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

type MockCombat struct {
	mock.Mock
}

func (m *MockCombat) Melee(ctx context.Context, w *types.World, attacker, defender int, r *types.Result) error {
	args := m.Called(ctx, w, attacker, defender, r)
	return args.Error(0)
}

type MockTalker struct {
	mock.Mock
}

func (m *MockTalker) Talk(ctx context.Context, w *types.World, speaker, listener int, r *types.Result) (bool, error) {
	args := m.Called(ctx, w, speaker, listener, r)
	return args.Bool(0), args.Error(1)
}

type MockTerrain struct {
	mock.Mock
}

func (m *MockTerrain) Enter(ctx context.Context, w *types.World, actor int, p types.Point, r *types.Result) (types.Outcome, error) {
	args := m.Called(ctx, w, actor, p, r)
	return args.Get(0).(types.Outcome), args.Error(1)
}

func (m *MockTerrain) Feature(ctx context.Context, w *types.World, actor int, p types.Point, r *types.Result) error {
	args := m.Called(ctx, w, actor, p, r)
	return args.Error(0)
}

type fixture struct {
	w        *types.World
	combat   *MockCombat
	talker   *MockTalker
	terrain  *MockTerrain
	prompter *prompt.Scripted
	dice     *rng.Fixed
	resolver *Resolver
}

const npc = types.MaxParty

func newFixture(opts Options, draws ...int) *fixture {
	w := &types.World{Map: state.NewMap(10, 10)}
	w.Map.Type = types.MapTown
	w.Map.Name = "Vernis"
	state.PutActor(w, 0, types.Actor{Name: "you", Alive: true, Position: types.Point{X: 5, Y: 5}, EnemyID: types.NoIndex, Gold: 100})
	state.PutActor(w, npc, types.Actor{Name: "citizen", Alive: true, Position: types.Point{X: 6, Y: 5}, EnemyID: types.NoIndex, Relationship: types.RelationHostile})

	f := &fixture{
		w:        w,
		combat:   &MockCombat{},
		talker:   &MockTalker{},
		terrain:  &MockTerrain{},
		prompter: prompt.NewScripted(),
		dice:     rng.NewFixed(draws...),
	}
	f.resolver = New(Deps{
		Combat:   f.combat,
		Talker:   f.talker,
		Terrain:  f.terrain,
		Prompter: f.prompter,
		Dice:     f.dice,
	}, opts)
	return f
}

func (f *fixture) step(dest types.Point) (types.Result, error) {
	return f.resolver.Resolve(context.Background(), f.w, Step{Actor: 0, Dest: dest})
}

var east = types.Point{X: 6, Y: 5}

func TestResolve_HostileBumpAttacks(t *testing.T) {
	f := newFixture(Options{})
	f.combat.On("Melee", mock.Anything, f.w, 0, npc, mock.Anything).Return(nil)

	res, err := f.step(east)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, npc, f.w.Actors[0].EnemyID)
	f.combat.AssertExpectations(t)
}

func TestResolve_InvisibleTargetNotKeptAsEnemy(t *testing.T) {
	f := newFixture(Options{})
	f.w.Actors[npc].Invisible = true
	f.combat.On("Melee", mock.Anything, f.w, 0, npc, mock.Anything).Return(nil)

	res, err := f.step(east)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, types.NoIndex, f.w.Actors[0].EnemyID)

	f.w.Actors[npc].Wet = 5
	_, err = f.step(east)
	require.NoError(t, err)
	assert.Equal(t, npc, f.w.Actors[0].EnemyID, "wet invisible actors stay targeted")
}

func TestResolve_NegativeRelationshipAttacks(t *testing.T) {
	tests := []struct {
		name   string
		rel    int
		attack bool
	}{
		{name: "enemy, default options", rel: types.RelationEnemy},
		{name: "enemy, attack neutral set", rel: types.RelationEnemy, attack: true},
		{name: "minus two", rel: -2},
		{name: "hostile", rel: types.RelationHostile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{AttackNeutralNPCs: tt.attack})
			f.w.Actors[npc].Relationship = tt.rel
			f.combat.On("Melee", mock.Anything, f.w, 0, npc, mock.Anything).Return(nil)

			res, err := f.step(east)
			require.NoError(t, err)
			assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
			assert.Equal(t, npc, f.w.Actors[0].EnemyID)
			assert.Equal(t, types.Point{X: 5, Y: 5}, f.w.Actors[0].Position, "attacking does not move")
			f.combat.AssertNumberOfCalls(t, "Melee", 1)
		})
	}
}

func TestResolve_AttackNeutralNPCs(t *testing.T) {
	f := newFixture(Options{AttackNeutralNPCs: true})
	f.w.Actors[npc].Relationship = types.RelationNeutral
	f.combat.On("Melee", mock.Anything, f.w, 0, npc, mock.Anything).Return(nil)

	res, err := f.step(east)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, npc, f.w.Actors[0].EnemyID)
	f.talker.AssertNotCalled(t, "Talk", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_DisplaceAlly(t *testing.T) {
	f := newFixture(Options{})
	a := &f.w.Actors[npc]
	a.Relationship = types.RelationAlly
	a.Activity = types.Activity{Kind: types.ActivityEat, Turns: 4}

	res, err := f.step(east)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, east, f.w.Actors[0].Position)
	assert.Equal(t, types.Point{X: 5, Y: 5}, f.w.Actors[npc].Position)
	assert.Equal(t, types.ActivityNone, f.w.Actors[npc].Activity.Kind)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "move.interrupt", res.Messages[1].Key)
}

func TestResolve_DisplaceThief(t *testing.T) {
	f := newFixture(Options{}, 0, 7)
	f.w.Actors[npc].Relationship = types.RelationAlly
	f.w.Actors[npc].TemplateID = ThiefTemplate

	res, err := f.step(east)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, 93, f.w.Actors[0].Gold)
	assert.Equal(t, 7, f.w.Actors[npc].Gold)
	assert.Equal(t, []int{5, 21}, f.dice.Calls)
}

func TestResolve_DisplaceThiefProtected(t *testing.T) {
	f := newFixture(Options{}, 0, 7)
	f.w.Actors[npc].Relationship = types.RelationAlly
	f.w.Actors[npc].TemplateID = ThiefTemplate
	f.w.Actors[0].ProtectedFromThieves = true

	_, err := f.step(east)
	require.NoError(t, err)
	assert.Equal(t, 100, f.w.Actors[0].Gold)
}

func TestResolve_SandBagPreventsDisplacement(t *testing.T) {
	f := newFixture(Options{})
	f.w.Actors[npc].Relationship = types.RelationAlly
	f.w.Actors[npc].HungOnSandBag = true
	f.talker.On("Talk", mock.Anything, f.w, 0, npc, mock.Anything).Return(false, nil)

	res, err := f.step(east)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, types.Point{X: 5, Y: 5}, f.w.Actors[0].Position)
	f.talker.AssertExpectations(t)
}

func TestResolve_NeutralTalks(t *testing.T) {
	tests := []struct {
		name     string
		teleport bool
		want     types.Outcome
	}{
		{name: "plain talk", teleport: false, want: types.OutcomeTurnEnds},
		{name: "teleport request", teleport: true, want: types.OutcomeExitCurrentMap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})
			f.w.Actors[npc].Relationship = types.RelationNeutral
			f.talker.On("Talk", mock.Anything, f.w, 0, npc, mock.Anything).Return(tt.teleport, nil)

			res, err := f.step(east)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outcome)
			if tt.teleport {
				assert.Equal(t, types.ExitTeleport, res.Exit)
			}
		})
	}
}

func TestResolve_NeutralInShopDisplaces(t *testing.T) {
	f := newFixture(Options{})
	f.w.Map.ID = types.MapIDShop
	f.w.Actors[npc].Relationship = types.RelationNeutral

	res, err := f.step(east)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, east, f.w.Actors[0].Position)
	f.talker.AssertNotCalled(t, "Talk", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_RunningStopsAtNonHostile(t *testing.T) {
	f := newFixture(Options{})
	f.w.Actors[npc].Relationship = types.RelationNeutral

	_, err := f.resolver.Resolve(context.Background(), f.w, Step{Actor: 0, Dest: east, Running: true})
	assert.Equal(t, errs.CodeBlocked, errs.CodeOf(err))
	f.talker.AssertNotCalled(t, "Talk", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_RunningIntoEnemyAttacks(t *testing.T) {
	f := newFixture(Options{})
	f.w.Actors[npc].Relationship = -2
	f.combat.On("Melee", mock.Anything, f.w, 0, npc, mock.Anything).Return(nil)

	res, err := f.resolver.Resolve(context.Background(), f.w, Step{Actor: 0, Dest: east, Running: true})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
}

func TestResolve_Overweight(t *testing.T) {
	f := newFixture(Options{})
	f.w.Actors[0].Burden = 4

	_, err := f.step(east)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carry too much")
	f.combat.AssertNotCalled(t, "Melee", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_EmptyCellEntersTerrain(t *testing.T) {
	f := newFixture(Options{})
	north := types.Point{X: 5, Y: 4}
	f.terrain.On("Enter", mock.Anything, f.w, 0, north, mock.Anything).Return(types.OutcomeTurnEnds, nil)

	res, err := f.step(north)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	f.terrain.AssertExpectations(t)
}

func TestResolve_WorldMapSpecialChip(t *testing.T) {
	f := newFixture(Options{})
	f.w.Map.Type = types.MapWorld
	north := types.Point{X: 5, Y: 4}
	state.CellAt(&f.w.Map, north).Chip = 300

	_, err := f.step(north)
	assert.Equal(t, errs.CodeBlocked, errs.CodeOf(err))
	f.terrain.AssertNotCalled(t, "Enter", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_LeaveMap(t *testing.T) {
	f := newFixture(Options{})
	f.w.Map.DungeonLevel = 1
	f.w.Actors[0].Position = types.Point{X: 0, Y: 3}
	f.prompter.Replies = []prompt.Reply{prompt.Yes()}

	res, err := f.step(types.Point{X: -1, Y: 3})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeExitCurrentMap, res.Outcome)
	assert.Equal(t, types.ExitLeaveMap, res.Exit)
	assert.Equal(t, 0, f.w.Map.DungeonLevel)
	assert.Equal(t, types.Point{X: 0, Y: 3}, f.w.Game.LeftFrom)
	assert.Equal(t, []string{"Do you want to leave Vernis?"}, f.prompter.Asked)
}

func TestResolve_LeaveMapDeclined(t *testing.T) {
	f := newFixture(Options{})
	f.w.Map.Type = types.MapTemporary
	f.w.Map.DungeonLevel = 1
	f.w.Actors[0].Position = types.Point{X: 0, Y: 3}
	f.prompter.Replies = []prompt.Reply{prompt.No()}

	res, err := f.step(types.Point{X: -1, Y: 3})
	assert.True(t, errs.IsCancelled(err))
	assert.Equal(t, 1, f.w.Map.DungeonLevel)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "move.leave.abandoning_quest", res.Messages[0].Key)
}

func TestResolve_DungeonEdgeIsWall(t *testing.T) {
	f := newFixture(Options{})
	f.w.Map.Type = types.MapDungeon
	f.w.Map.DungeonLevel = 1
	f.w.Actors[0].Position = types.Point{X: 0, Y: 3}

	_, err := f.step(types.Point{X: -1, Y: 3})
	assert.Equal(t, errs.CodeBlocked, errs.CodeOf(err))
	assert.Empty(t, f.prompter.Asked)
}

func TestResolve_Features(t *testing.T) {
	north := types.Point{X: 5, Y: 4}
	tests := []struct {
		name    string
		kind    int
		want    types.Outcome
		submenu types.SubmenuKind
	}{
		{name: "quest board", kind: types.FeatQuestBoard, want: types.OutcomeOpenSubmenu, submenu: types.SubmenuQuestBoard},
		{name: "voting box", kind: types.FeatVotingBox, want: types.OutcomeTurnEnds},
		{name: "city chart", kind: types.FeatCityChart, want: types.OutcomeTurnContinuesWithError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})
			state.SetFeature(&f.w.Map, north, types.Feature{Kind: tt.kind})
			f.terrain.On("Feature", mock.Anything, f.w, 0, north, mock.Anything).Return(nil)

			res, err := f.step(north)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outcome)
			assert.Equal(t, tt.submenu, res.Submenu.Kind)
		})
	}
}

func TestResolve_ClosedDoorIsMovementEvent(t *testing.T) {
	f := newFixture(Options{})
	north := types.Point{X: 5, Y: 4}
	state.SetFeature(&f.w.Map, north, types.Feature{Kind: types.FeatClosedDoor, Tile: types.TileDoorClosed})
	f.terrain.On("Enter", mock.Anything, f.w, 0, north, mock.Anything).Return(types.OutcomeTurnEnds, nil)

	res, err := f.step(north)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
}

func TestResolve_ConfusedDeviates(t *testing.T) {
	f := newFixture(Options{}, 2, 0)
	f.w.Actors[0].Confused = 3
	ne := types.Point{X: 6, Y: 4}
	f.terrain.On("Enter", mock.Anything, f.w, 0, ne, mock.Anything).Return(types.OutcomeTurnEnds, nil)

	res, err := f.step(types.Point{X: 4, Y: 5})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, ne, f.w.Actors[0].NextPosition)
}

func TestResolve_ConfusedStandsStill(t *testing.T) {
	f := newFixture(Options{}, 1, 1)
	f.w.Actors[0].Confused = 3

	_, err := f.step(types.Point{X: 4, Y: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confused")
}

func TestResolve_DrunkStagger(t *testing.T) {
	f := newFixture(Options{}, 0, 1, 0)
	f.w.Actors[0].Drunk = 10
	north := types.Point{X: 5, Y: 4}
	f.terrain.On("Enter", mock.Anything, f.w, 0, north, mock.Anything).Return(types.OutcomeTurnEnds, nil)

	res, err := f.step(types.Point{X: 4, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, "move.drunk", res.Messages[0].Key)
	assert.Equal(t, north, f.w.Actors[0].NextPosition)
}
