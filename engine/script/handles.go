package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/turncore/types"
)

const (
	itemTypeName = "turncore.item"
	userTypeName = "turncore.user"
)

type itemHandle struct {
	item *types.Item
}

type userHandle struct {
	actor *types.Actor
}

func registerItemType(L *lua.LState) {
	mt := L.NewTypeMetatable(itemTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"id": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkItem(L).ID))
			return 1
		},
		"number": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkItem(L).Number))
			return 1
		},
		"set_number": func(L *lua.LState) int {
			it := checkItem(L)
			n := L.CheckInt(2)
			if n < 0 {
				L.ArgError(2, "number must not be negative")
			}
			it.Number = n
			return 0
		},
		"curse": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkItem(L).Curse))
			return 1
		},
		"param": func(L *lua.LState) int {
			it := checkItem(L)
			p := param(L, it, L.CheckInt(2))
			L.Push(lua.LNumber(*p))
			return 1
		},
		"set_param": func(L *lua.LState) int {
			it := checkItem(L)
			p := param(L, it, L.CheckInt(2))
			*p = L.CheckInt(3)
			return 0
		},
	}))
}

func registerUserType(L *lua.LState) {
	mt := L.NewTypeMetatable(userTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"name": func(L *lua.LState) int {
			L.Push(lua.LString(checkUser(L).Name))
			return 1
		},
		"hp": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkUser(L).HP))
			return 1
		},
		"set_hp": func(L *lua.LState) int {
			a := checkUser(L)
			n := L.CheckInt(2)
			a.HP = min(max(n, 0), a.MaxHP)
			return 0
		},
		"gold": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkUser(L).Gold))
			return 1
		},
		"set_gold": func(L *lua.LState) int {
			a := checkUser(L)
			n := L.CheckInt(2)
			if n < 0 {
				L.ArgError(2, "gold must not be negative")
			}
			a.Gold = n
			return 0
		},
		"level": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkUser(L).Level))
			return 1
		},
	}))
}

func newItemUserData(L *lua.LState, h *itemHandle) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = h
	L.SetMetatable(ud, L.GetTypeMetatable(itemTypeName))
	return ud
}

func newUserUserData(L *lua.LState, h *userHandle) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = h
	L.SetMetatable(ud, L.GetTypeMetatable(userTypeName))
	return ud
}

func checkItem(L *lua.LState) *types.Item {
	ud := L.CheckUserData(1)
	h, ok := ud.Value.(*itemHandle)
	if !ok {
		L.ArgError(1, "item expected")
		return nil
	}
	if h.item == nil {
		L.RaiseError("item handle used after its callback returned")
	}
	return h.item
}

func checkUser(L *lua.LState) *types.Actor {
	ud := L.CheckUserData(1)
	h, ok := ud.Value.(*userHandle)
	if !ok {
		L.ArgError(1, "user expected")
		return nil
	}
	if h.actor == nil {
		L.RaiseError("user handle used after its callback returned")
	}
	return h.actor
}

// param maps the 1-based Lua parameter index to the item field.
func param(L *lua.LState, it *types.Item, i int) *int {
	switch i {
	case 1:
		return &it.Param1
	case 2:
		return &it.Param2
	case 3:
		return &it.Param3
	case 4:
		return &it.Param4
	}
	L.ArgError(2, "param index must be 1-4")
	return nil
}
