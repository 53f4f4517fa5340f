package save

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

func testWorld() *types.World {
	w := &types.World{Map: state.NewMap(4, 3), TurnCount: 12}
	w.Map.Name = "Vernis"
	w.Map.Type = types.MapTown
	state.SetFeature(&w.Map, types.Point{X: 1, Y: 1}, types.Feature{Tile: types.TileDownstairs, Kind: types.FeatDownstairs})
	state.PutActor(w, 0, types.Actor{
		Name: "you", Alive: true, Level: 5, HP: 40, MaxHP: 50, EnemyID: types.NoIndex,
		Skills: map[int]int{types.SkillPerception: 7},
	})
	w.Items = []types.Item{
		{ID: 183, Number: 3, Owner: 0, Curse: types.CurseBlessed},
		{ID: 1, Number: 1, Owner: types.OwnerGround, Position: types.Point{X: 2, Y: 2}, Enchantments: []types.Enchantment{{ID: 30, Power: 100}}},
	}
	w.Game.Hours = 77
	return w
}

func TestSession_RoundTrip(t *testing.T) {
	w := testWorld()
	data, err := Marshal(Session{Game: "Test", Turn: 12, RNGSeed: 42, RNGPosition: 9, World: w})
	require.NoError(t, err)

	s, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, Version, s.Version)
	assert.Equal(t, "Test", s.Game)
	assert.Equal(t, int64(42), s.RNGSeed)
	assert.Equal(t, int64(9), s.RNGPosition)
	assert.Equal(t, w, s.World)
}

func TestUnmarshal_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"bad json", `{`, "unexpected end"},
		{"wrong version", `{"version": 99, "world": {}}`, "unsupported save version 99"},
		{"no world", `{"version": 1}`, "no world"},
		{"short map", `{"version": 1, "world": {"Map": {"Width": 2, "Height": 2}}}`, "has 0 cells, want 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot", "session.json")
	w := testWorld()

	require.NoError(t, WriteFile(path, Session{Game: "Test", World: w}))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")

	s, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, w, s.World)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "containers"))
	require.NoError(t, err)

	_, ok, err := store.Load(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok, "never-saved container")

	items := []types.Item{
		{ID: 183, Number: 2, Owner: types.OwnerContainer},
		{ID: 1, Number: 0, Owner: types.OwnerContainer},
	}
	require.NoError(t, store.Save(ctx, 3, items))

	got, ok, err := store.Load(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, items[:1], got, "empty slots are not stored")

	require.NoError(t, store.Save(ctx, 3, nil))
	got, ok, err = store.Load(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok, "an emptied container still exists")
	assert.Empty(t, got)
}

func TestFileStore_CancelledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, 1, nil), context.Canceled)
	_, _, err = store.Load(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFileStore_RequiresDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}
