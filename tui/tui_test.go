package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/turncore/engine"
	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/save"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short", "hello world", 80, "hello world"},
		{"exact", "hello", 5, "hello"},
		{"wraps", "the quick brown fox", 10, "the quick\nbrown fox"},
		{"long word", "abcdefghijkl xy", 5, "abcdefghijkl\nxy"},
		{"zero width", "hello world", 0, "hello world"},
		{"keeps newlines", "aaa bbb\nccc ddd", 4, "aaa\nbbb\nccc\nddd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordWrap(tt.text, tt.width))
		})
	}
}

// --- History ---

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(10)
	h.Push("look")
	h.Push("go north")
	h.Push("rest")

	for _, want := range []string{"rest", "go north", "look", "look"} {
		got, ok := h.Prev()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(10)
	h.Push("a")
	h.Push("b")

	h.Prev()
	h.Prev()
	got, ok := h.Next()
	require.True(t, ok)
	assert.Equal(t, "b", got)

	_, ok = h.Next()
	assert.False(t, ok, "past newest ends navigation")
	_, ok = h.Next()
	assert.False(t, ok)
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(10)
	_, ok := h.Prev()
	assert.False(t, ok)
	_, ok = h.Next()
	assert.False(t, ok)
	_, ok = h.Last()
	assert.False(t, ok)
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(3)
	for _, c := range []string{"a", "b", "c", "d"} {
		h.Push(c)
	}
	var got []string
	for range 3 {
		v, _ := h.Prev()
		got = append(got, v)
	}
	assert.Equal(t, []string{"d", "c", "b"}, got)
}

func TestHistory_NoDuplicates(t *testing.T) {
	h := NewHistory(10)
	h.Push("look")
	h.Push("look")
	h.Prev()
	_, ok := h.Prev()
	require.True(t, ok)
	assert.Len(t, h.entries, 1)
}

func TestHistory_Last(t *testing.T) {
	h := NewHistory(10)
	h.Push("rest")
	h.Push("search")
	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, "search", last)
}

// --- Status bar ---

func TestStatus_Render(t *testing.T) {
	w := testWorld()
	w.Actors[0].Gold = 12
	w.TurnCount = 7
	s := captureStatus(w)

	bar := s.render(60)
	assert.Contains(t, bar, "North Tyris (3,3)")
	assert.Contains(t, bar, "HP:20/20")
	assert.Contains(t, bar, "Gold:12")
	assert.Contains(t, bar, "T:7")
}

func TestStatus_Dead(t *testing.T) {
	w := testWorld()
	w.Actors[0].Alive = false
	assert.Contains(t, captureStatus(w).render(40), "DEAD")
}

// --- Model ---

func testWorld() *types.World {
	w := &types.World{Map: state.NewMap(8, 8)}
	w.Map.Type = types.MapField
	w.Map.Name = "North Tyris"
	state.PutActor(w, 0, types.Actor{
		Name: "you", Alive: true, Position: types.Point{X: 3, Y: 3},
		Level: 1, HP: 20, MaxHP: 20, SP: 100,
		EnemyID: types.NoIndex, Ranged: types.NoIndex, Ammo: types.NoIndex,
	})
	return w
}

func testModel(t *testing.T) Model {
	t.Helper()
	store, err := save.NewFileStore(t.TempDir())
	require.NoError(t, err)
	eng, err := engine.New(testWorld(), catalog.MustNew(catalog.Builtin()...), engine.Options{
		Prompter:   prompt.NewScripted(),
		Containers: store,
		Seed:       1,
	})
	require.NoError(t, err)

	m := New(context.Background(), eng, "Welcome.")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func submit(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func texts(m Model) string {
	var sb strings.Builder
	for _, rl := range m.rawLines {
		sb.WriteString(rl.text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestModel_IntroOnResize(t *testing.T) {
	m := testModel(t)
	assert.True(t, m.ready)
	assert.Contains(t, texts(m), "Welcome.")
	assert.Contains(t, m.View(), "North Tyris")
}

func TestModel_StepRunsInBackground(t *testing.T) {
	m := testModel(t)

	m, cmd := submit(t, m, "rest")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	m2, _ := submit(t, m, "search")
	assert.Contains(t, texts(m2), "Please wait.")

	msg := cmd()
	done, ok := msg.(stepDoneMsg)
	require.True(t, ok)
	assert.Equal(t, types.OutcomeTurnEnds, done.res.Outcome)

	next, _ := m.Update(done)
	m = next.(Model)
	assert.False(t, m.busy)
	assert.Equal(t, 1, m.status.turn)
}

func TestModel_AgainRepeatsLast(t *testing.T) {
	m := testModel(t)

	m, _ = submit(t, m, "g")
	assert.Contains(t, texts(m), "Nothing to repeat.")

	m.history.Push("rest")
	m, cmd := submit(t, m, "again")
	require.NotNil(t, cmd)
	assert.Contains(t, texts(m), "> rest")
}

func TestModel_ParseError(t *testing.T) {
	m := testModel(t)
	m, cmd := submit(t, m, "drink unicorn")
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
}

func TestModel_PromptAnswer(t *testing.T) {
	m := testModel(t)
	req := &promptRequest{lines: []string{"Really? (y/n)"}, hint: "answer y or n", reply: make(chan string, 1)}

	next, _ := m.Update(promptMsg{req: req})
	m = next.(Model)
	assert.Equal(t, "? ", m.input.Prompt)
	assert.Contains(t, texts(m), "Really? (y/n)")
	assert.Contains(t, texts(m), "answer y or n")

	m, cmd := submit(t, m, "y")
	assert.Nil(t, cmd)
	assert.Equal(t, "y", <-req.reply)
	assert.Nil(t, m.pending)
	assert.Equal(t, "> ", m.input.Prompt)
}

func TestModel_EscCancelsPrompt(t *testing.T) {
	m := testModel(t)
	req := &promptRequest{lines: []string{"Which way?"}, reply: make(chan string, 1)}
	next, _ := m.Update(promptMsg{req: req})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Equal(t, "q", <-req.reply)
	assert.Nil(t, m.pending)
}

func TestModel_TerminateQuits(t *testing.T) {
	m := testModel(t)
	var res types.Result
	res.Outcome = types.OutcomeTerminateSession
	res.Say("exit.saved", "Your game has been saved successfully.", types.ToneGood)

	next, cmd := m.Update(stepDoneMsg{res: res, status: m.status})
	m = next.(Model)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestMessageLines(t *testing.T) {
	var res types.Result
	res.Outcome = types.OutcomeExitCurrentMap
	res.Exit = types.ExitStairs
	res.Say("stairs.down", "You walk down the stairs.", types.ToneNormal)

	lines := messageLines(res)
	require.Len(t, lines, 2)
	assert.Equal(t, kindMessage, lines[0].kind)
	assert.Equal(t, kindSystem, lines[1].kind)
	assert.Contains(t, lines[1].text, "You leave the map")
}

// --- Meta commands ---

func TestHandleMeta(t *testing.T) {
	m := testModel(t)

	out, quit := m.handleMeta("/quit")
	assert.True(t, quit)
	assert.Equal(t, []string{"Goodbye."}, out)

	out, quit = m.handleMeta("/save")
	assert.False(t, quit)
	assert.Equal(t, []string{"Game saved (turn 0)."}, out)

	out, _ = m.handleMeta("/help")
	assert.Contains(t, strings.Join(out, "\n"), "/trace")
	assert.Contains(t, strings.Join(out, "\n"), "PgUp/PgDn")

	out, _ = m.handleMeta("/trace")
	assert.Equal(t, []string{"Trace output enabled."}, out)
	assert.True(t, m.trace)
	out, _ = m.handleMeta("/trace")
	assert.Equal(t, []string{"Trace output disabled."}, out)

	out, _ = m.handleMeta("/state")
	assert.Contains(t, out, "HP: 20/20  SP: 100  Gold: 0")

	out, _ = m.handleMeta("/bogus")
	assert.Contains(t, out[0], "Unknown command: /bogus")
}

func TestModel_MetaViaEnter(t *testing.T) {
	m := testModel(t)
	m, cmd := submit(t, m, "/quit")
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

// --- Bridge ---

func TestBridge_RetriesUntilParsed(t *testing.T) {
	b := NewBridge()
	msgs := make(chan tea.Msg, 4)
	b.Attach(func(msg tea.Msg) { msgs <- msg })

	type answer struct {
		yes bool
		err error
	}
	done := make(chan answer, 1)
	go func() {
		yes, err := b.YesNo(context.Background(), "Do you want to quit?")
		done <- answer{yes, err}
	}()

	first := (<-msgs).(promptMsg)
	assert.Equal(t, []string{"Do you want to quit? (y/n)"}, first.req.lines)
	assert.Empty(t, first.req.hint)
	first.req.reply <- "maybe"

	second := (<-msgs).(promptMsg)
	assert.NotEmpty(t, second.req.hint)
	second.req.reply <- "y"

	select {
	case a := <-done:
		require.NoError(t, a.err)
		assert.True(t, a.yes)
	case <-time.After(time.Second):
		t.Fatal("YesNo did not return")
	}
}

func TestBridge_Cancel(t *testing.T) {
	b := NewBridge()
	msgs := make(chan tea.Msg, 1)
	b.Attach(func(msg tea.Msg) { msgs <- msg })

	done := make(chan error, 1)
	go func() {
		_, err := b.Direction(context.Background(), "Which direction?")
		done <- err
	}()
	(<-msgs).(promptMsg).req.reply <- "q"
	assert.True(t, errs.IsCancelled(<-done))
}

func TestBridge_ContextDone(t *testing.T) {
	b := NewBridge()
	b.Attach(func(tea.Msg) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Text(ctx, "Name?", 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBridge_NotAttached(t *testing.T) {
	_, err := NewBridge().Choose(context.Background(), "Pick", []prompt.Option{{Label: "a"}})
	assert.Error(t, err)
}

func TestBridge_BrowseShowsRoute(t *testing.T) {
	b := NewBridge()
	msgs := make(chan tea.Msg, 1)
	b.Attach(func(msg tea.Msg) { msgs <- msg })

	page := prompt.Page{Title: "Look", Route: []types.Point{{X: 1, Y: 2}}}
	done := make(chan prompt.Input, 1)
	go func() {
		in, _ := b.Browse(context.Background(), page)
		done <- in
	}()
	req := (<-msgs).(promptMsg).req
	assert.Equal(t, "Path: (1,2)", req.lines[len(req.lines)-1])
	req.reply <- ""
	assert.Equal(t, prompt.KeyConfirm, (<-done).Key)
}
