package action

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/rng"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

type MockMagic struct {
	mock.Mock
}

func (m *MockMagic) Cast(ctx context.Context, w *types.World, s Spell, r *types.Result) (bool, error) {
	args := m.Called(ctx, w, s, r)
	return args.Bool(0), args.Error(1)
}

type MockCombat struct {
	mock.Mock
}

func (m *MockCombat) Melee(ctx context.Context, w *types.World, attacker, defender int, r *types.Result) error {
	args := m.Called(ctx, w, attacker, defender, r)
	return args.Error(0)
}

func (m *MockCombat) CanFire(w *types.World, attacker int) int {
	args := m.Called(w, attacker)
	return args.Int(0)
}

func (m *MockCombat) Ranged(ctx context.Context, w *types.World, attacker, defender int, r *types.Result) error {
	args := m.Called(ctx, w, attacker, defender, r)
	return args.Error(0)
}

func (m *MockCombat) Damage(ctx context.Context, w *types.World, victim, amount int, cause string, r *types.Result) error {
	args := m.Called(ctx, w, victim, amount, cause, r)
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

type MockSpawner struct {
	mock.Mock
}

func (m *MockSpawner) Spawn(ctx context.Context, w *types.World, templateID, level int, ally bool, p types.Point) (int, error) {
	args := m.Called(ctx, w, templateID, level, ally, p)
	return args.Int(0), args.Error(1)
}

type MockLooter struct {
	mock.Mock
}

func (m *MockLooter) OpenBox(ctx context.Context, w *types.World, opener, box int, r *types.Result) error {
	args := m.Called(ctx, w, opener, box, r)
	return args.Error(0)
}

func (m *MockLooter) OpenGift(ctx context.Context, w *types.World, opener, box int, r *types.Result) error {
	args := m.Called(ctx, w, opener, box, r)
	return args.Error(0)
}

type MockSaver struct {
	mock.Mock
}

func (m *MockSaver) Save(ctx context.Context, w *types.World) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

// memContainers keeps storage files in memory and counts saves.
type memContainers struct {
	files map[int][]types.Item
	saves int
}

func newMemContainers() *memContainers {
	return &memContainers{files: map[int][]types.Item{}}
}

func (m *memContainers) Load(_ context.Context, file int) ([]types.Item, bool, error) {
	items, ok := m.files[file]
	return append([]types.Item(nil), items...), ok, nil
}

func (m *memContainers) Save(_ context.Context, file int, items []types.Item) error {
	m.saves++
	m.files[file] = append([]types.Item(nil), items...)
	return nil
}

type fixture struct {
	w          *types.World
	cat        *catalog.Catalog
	magic      *MockMagic
	combat     *MockCombat
	talker     *MockTalker
	terrain    *MockTerrain
	spawner    *MockSpawner
	looter     *MockLooter
	saver      *MockSaver
	containers *memContainers
	prompter   *prompt.Scripted
	dice       *rng.Fixed
	d          *Dispatcher
}

const npc = types.MaxParty

var (
	here = types.Point{X: 5, Y: 5}
	east = types.Point{X: 6, Y: 5}
)

func newFixture(t *testing.T, draws ...int) *fixture {
	return newFixtureWith(t, catalog.Default(), Options{}, draws...)
}

func newFixtureWith(t *testing.T, cat *catalog.Catalog, opts Options, draws ...int) *fixture {
	t.Helper()
	w := &types.World{Map: state.NewMap(10, 10)}
	w.Map.Type = types.MapTown
	w.Map.Name = "Vernis"
	state.PutActor(w, 0, types.Actor{Name: "you", Alive: true, Position: here, EnemyID: types.NoIndex,
		Level: 5, HP: 50, MaxHP: 50, SP: 100, Gold: 100})
	state.PutActor(w, npc, types.Actor{Name: "putit", TemplateID: 3, Alive: true, Position: east, EnemyID: types.NoIndex,
		Relationship: types.RelationHostile, Level: 2, HP: 10, MaxHP: 10})

	f := &fixture{
		w:          w,
		cat:        cat,
		magic:      &MockMagic{},
		combat:     &MockCombat{},
		talker:     &MockTalker{},
		terrain:    &MockTerrain{},
		spawner:    &MockSpawner{},
		looter:     &MockLooter{},
		saver:      &MockSaver{},
		containers: newMemContainers(),
		prompter:   prompt.NewScripted(),
		dice:       rng.NewFixed(draws...),
	}
	d, err := New(Deps{
		Catalog:    cat,
		Prompter:   f.prompter,
		Dice:       f.dice,
		Magic:      f.magic,
		Combat:     f.combat,
		Talker:     f.talker,
		Terrain:    f.terrain,
		Spawner:    f.spawner,
		Looter:     f.looter,
		Containers: f.containers,
		Saver:      f.saver,
	}, opts)
	require.NoError(t, err)
	f.d = d
	return f
}

// reply queues prompt answers.
func (f *fixture) reply(replies ...prompt.Reply) {
	f.prompter.Replies = append(f.prompter.Replies, replies...)
}

// give puts number items of template id into owner's inventory.
func (f *fixture) give(owner, id, number int) int {
	t, ok := f.cat.Lookup(id)
	if !ok {
		panic("unknown template")
	}
	return state.CreateItem(f.w, t, owner, types.Point{}, number)
}

// place puts an item of template id on the ground at p.
func (f *fixture) place(id int, p types.Point) int {
	t, ok := f.cat.Lookup(id)
	if !ok {
		panic("unknown template")
	}
	return state.CreateItem(f.w, t, types.OwnerGround, p, 1)
}

func cmd(kind types.CommandKind) types.Command {
	return types.Command{Kind: kind, Item: types.NoIndex, Tool: types.NoIndex, Target: types.NoIndex}
}

func itemCmd(kind types.CommandKind, item int) types.Command {
	c := cmd(kind)
	c.Item = item
	return c
}

func (f *fixture) run(c types.Command) types.Result {
	return f.d.Dispatch(context.Background(), f.w, c)
}

func lastText(res types.Result) string {
	if len(res.Messages) == 0 {
		return ""
	}
	return res.Messages[len(res.Messages)-1].Text
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Deps{}, Options{})
	require.Error(t, err)
	assert.Equal(t, errs.CodeInternal, errs.CodeOf(err))
}

func TestDispatch_HandlesEveryCommand(t *testing.T) {
	f := newFixture(t)
	assert.ElementsMatch(t, []types.CommandKind{
		types.CmdMove, types.CmdUse, types.CmdThrow, types.CmdOpen, types.CmdDip,
		types.CmdSearch, types.CmdInteract, types.CmdGive, types.CmdLook, types.CmdFire,
		types.CmdClose, types.CmdDrink, types.CmdRead, types.CmdZap, types.CmdEat,
		types.CmdRest, types.CmdGet, types.CmdGoDown, types.CmdGoUp, types.CmdExit,
		types.CmdBash, types.CmdDig, types.CmdPray, types.CmdOffer, types.CmdAmmo,
		types.CmdCast, types.CmdShortcut,
	}, f.d.Commands())
}

func TestDispatch_UnknownCommand(t *testing.T) {
	f := newFixture(t)

	res := f.run(cmd("dance"))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
	assert.Equal(t, "Unknown command.", lastText(res))
}

func TestDispatch_DeadActorCannotAct(t *testing.T) {
	f := newFixture(t)
	c := cmd(types.CmdRest)
	c.Actor = npc
	f.w.Actors[npc].Alive = false

	res := f.run(c)
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
	assert.Equal(t, types.ActivityNone, f.w.Actors[npc].Activity.Kind)
}

func TestDispatch_HostileBumpAttacks(t *testing.T) {
	f := newFixture(t)
	f.combat.On("Melee", mock.Anything, mock.Anything, 0, npc, mock.Anything).Return(nil)
	c := cmd(types.CmdMove)
	c.Dest, c.HasDest = east, true

	res := f.run(c)
	assert.Equal(t, types.OutcomeTurnEnds, res.Outcome)
	assert.Equal(t, npc, f.w.Actors[0].EnemyID)
	assert.Equal(t, here, f.w.Actors[0].Position)
	f.combat.AssertExpectations(t)
}

func TestDispatch_MoveNeedsDestination(t *testing.T) {
	f := newFixture(t)

	res := f.run(cmd(types.CmdMove))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
}

func TestDispatch_FailureRestoresWorldAndKeepsMessages(t *testing.T) {
	f := newFixture(t)
	before := state.Clone(f.w)
	f.d.handlers[types.CmdRest] = func(_ context.Context, at *attempt) (types.Outcome, error) {
		at.actor().Gold = 0
		at.w.Items = append(at.w.Items, types.Item{ID: 183, Number: 1})
		at.say("test.before", "You reach for your purse.", types.ToneNormal)
		at.emit("gold_lost", nil)
		return 0, errs.Blocked("It's stuck.")
	}

	res := f.run(cmd(types.CmdRest))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "You reach for your purse.", res.Messages[0].Text)
	assert.Equal(t, types.Message{Key: "error.BLOCKED", Text: "It's stuck.", Tone: types.ToneBad}, res.Messages[1])
	assert.Empty(t, res.Events)
	assert.Equal(t, before, f.w)
}

func TestDispatch_ZeroOutcomeIsInternal(t *testing.T) {
	f := newFixture(t)
	f.d.handlers[types.CmdRest] = func(context.Context, *attempt) (types.Outcome, error) {
		return 0, nil
	}

	res := f.run(cmd(types.CmdRest))
	assert.Equal(t, types.OutcomeTurnContinuesWithError, res.Outcome)
	assert.Contains(t, lastText(res), "returned no outcome")
}

type recorder struct {
	actions  []string
	failures []string
}

func (r *recorder) RecordAction(command, outcome string) {
	r.actions = append(r.actions, command+":"+outcome)
}

func (r *recorder) RecordFailure(code string) {
	r.failures = append(r.failures, code)
}

func TestDispatch_RecordsOutcomes(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	f.d.deps.Recorder = rec

	f.run(cmd(types.CmdRest))
	f.run(cmd(types.CmdGet))

	assert.Equal(t, []string{"rest:turn_ends", "get:turn_continues_with_error"}, rec.actions)
	assert.Equal(t, []string{"INVALID_TARGET"}, rec.failures)
}
