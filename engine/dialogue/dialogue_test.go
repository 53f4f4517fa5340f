package dialogue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/rng"
	"github.com/nathoo/turncore/types"
)

func talkWorld(listener types.Actor) *types.World {
	listener.Alive = true
	return &types.World{Actors: []types.Actor{{Name: "you", Alive: true}, listener}}
}

func TestTalk_Lines(t *testing.T) {
	tests := []struct {
		name     string
		listener types.Actor
		draws    []int
		want     string
	}{
		{"custom talk wins", types.Actor{Name: "guard", CustomTalk: "Halt!", Lines: []string{"x"}}, nil, `guard: "Halt!"`},
		{"own lines", types.Actor{Name: "girl", Lines: []string{"Hi!", "Bye!"}}, []int{1}, `girl: "Bye!"`},
		{"tone lines", types.Actor{Name: "thug", TalkTone: "rough"}, []int{0}, `thug: "What do you want?"`},
		{"unknown tone", types.Actor{Name: "bob", TalkTone: "odd"}, []int{2}, `bob: "Be careful out there."`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			talker := New(rng.NewFixed(tt.draws...), prompt.NewScripted())
			var res types.Result

			teleport, err := talker.Talk(context.Background(), talkWorld(tt.listener), 0, 1, &res)
			require.NoError(t, err)
			assert.False(t, teleport)
			require.Len(t, res.Messages, 1)
			assert.Equal(t, tt.want, res.Messages[0].Text)
			assert.Equal(t, types.ToneDialog, res.Messages[0].Tone)
			require.Len(t, res.Events, 1)
			assert.Equal(t, "talked", res.Events[0].Type)
		})
	}
}

func TestTalk_Sleeping(t *testing.T) {
	talker := New(rng.NewFixed(), prompt.NewScripted())
	var res types.Result

	_, err := talker.Talk(context.Background(), talkWorld(types.Actor{Name: "cat", Sleep: 5}), 0, 1, &res)
	require.NoError(t, err)
	assert.Equal(t, "cat is sleeping.", res.Messages[0].Text)
	assert.Empty(t, res.Events)
}

func TestTalk_Teleporter(t *testing.T) {
	agent := types.Actor{Name: "agent", Teleporter: true}

	var res types.Result
	teleport, err := New(rng.NewFixed(), prompt.NewScripted(prompt.Yes())).Talk(context.Background(), talkWorld(agent), 0, 1, &res)
	require.NoError(t, err)
	assert.True(t, teleport)

	teleport, err = New(rng.NewFixed(), prompt.NewScripted(prompt.No())).Talk(context.Background(), talkWorld(agent), 0, 1, &res)
	require.NoError(t, err)
	assert.False(t, teleport)

	_, err = New(rng.NewFixed(), prompt.NewScripted(prompt.Cancel)).Talk(context.Background(), talkWorld(agent), 0, 1, &res)
	assert.True(t, errs.IsCancelled(err))
}
