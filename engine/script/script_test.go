package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/turncore/types"
)

type countRecorder map[string]int

func (c countRecorder) RecordCallback(result string) { c[result]++ }

func compileFn(t *testing.T, rt *Runtime, src string) *Callback {
	t.Helper()
	require.NoError(t, rt.DoString("fn = "+src))
	fn, ok := rt.L.GetGlobal("fn").(*lua.LFunction)
	require.True(t, ok)
	return rt.Callback("test", fn)
}

func TestInvoke_ReadsAndWritesHandles(t *testing.T) {
	rec := countRecorder{}
	rt := New(Options{Recorder: rec})
	defer rt.Close()

	cb := compileFn(t, rt, `function(item, user)
		item:set_number(item:number() - 1)
		item:set_param(2, item:param(1) + user:level())
		user:set_gold(user:gold() + 100)
		user:set_hp(user:hp() + 500)
		return item:id() == 900 and user:name() == "you" and item:curse() == 1
	end`)

	item := &types.Item{ID: 900, Number: 3, Param1: 4, Curse: types.CurseBlessed}
	user := &types.Actor{Name: "you", Level: 6, Gold: 10, HP: 5, MaxHP: 40}

	assert.True(t, cb.Invoke(item, user))
	assert.Equal(t, 2, item.Number)
	assert.Equal(t, 10, item.Param2)
	assert.Equal(t, 110, user.Gold)
	assert.Equal(t, 40, user.HP, "hp is capped at max")
	assert.Equal(t, 1, rec[ResultSuccess])
}

func TestInvoke_FalseResult(t *testing.T) {
	rec := countRecorder{}
	rt := New(Options{Recorder: rec})
	defer rt.Close()

	cb := compileFn(t, rt, `function(item, user) return false end`)
	assert.False(t, cb.Invoke(&types.Item{}, &types.Actor{}))

	cb = compileFn(t, rt, `function(item, user) end`)
	assert.False(t, cb.Invoke(&types.Item{}, &types.Actor{}), "nil is failure")
	assert.Equal(t, 2, rec[ResultFailure])
}

func TestInvoke_LuaErrorIsFailure(t *testing.T) {
	rec := countRecorder{}
	rt := New(Options{Recorder: rec})
	defer rt.Close()

	tests := []struct {
		name string
		src  string
	}{
		{"raised error", `function(item, user) error("boom") end`},
		{"bad param index", `function(item, user) return item:param(9) end`},
		{"negative gold", `function(item, user) user:set_gold(-1) return true end`},
		{"wrong receiver", `function(item, user) return item.name(item) end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := compileFn(t, rt, tt.src)
			assert.False(t, cb.Invoke(&types.Item{}, &types.Actor{}))
		})
	}
	assert.Equal(t, len(tests), rec[ResultError])
}

func TestInvoke_HandlesGoStale(t *testing.T) {
	rt := New(Options{})
	defer rt.Close()

	keep := compileFn(t, rt, `function(item, user) kept = item return true end`)
	use := compileFn(t, rt, `function(item, user) return kept:id() == 1 end`)

	first := &types.Item{ID: 1, Number: 1}
	require.True(t, keep.Invoke(first, &types.Actor{}))
	assert.False(t, use.Invoke(&types.Item{ID: 1}, &types.Actor{}), "a kept handle must not reach the old item")
}

func TestSandbox_RemovesUnsafeGlobals(t *testing.T) {
	rt := New(Options{})
	defer rt.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "rawset", "os", "io", "require"} {
		assert.Equal(t, lua.LNil, rt.L.GetGlobal(name), name)
	}
	assert.Error(t, rt.DoString(`math.randomseed(1)`))
	assert.NoError(t, rt.DoString(`x = string.upper("ok") .. table.concat({1, 2}) .. math.floor(1.5)`))
}
