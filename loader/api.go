package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the content constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", seed = 42 }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Map { name = "...", type = "town", rows = { ... } }
	L.SetGlobal("Map", L.NewFunction(func(L *lua.LState) int {
		coll.world = L.CheckTable(1)
		return 0
	}))

	// Player { x = 1, y = 1, ... }
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		coll.player = L.CheckTable(1)
		return 0
	}))

	// Item "name" { id = 900, ... } is curried: Item("name") returns a
	// function that takes the definition table.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.items = append(coll.items, rawItem{name: name, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Actor "name" { template = 3, x = 6, y = 5, ... }
	L.SetGlobal("Actor", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.actors = append(coll.actors, rawActor{name: name, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Place { item = 183, x = 3, y = 3, number = 2 }
	L.SetGlobal("Place", L.NewFunction(func(L *lua.LState) int {
		coll.places = append(coll.places, L.CheckTable(1))
		return 0
	}))
}
