// Package loader loads Lua game content: item definitions with their
// on_use callbacks, the starting map, the player and other actors. The
// Lua state stays alive after loading because item callbacks run in it.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/script"
	"github.com/nathoo/turncore/types"
)

// Content is a loaded game.
type Content struct {
	Title   string
	Intro   string
	Seed    int64
	Catalog *catalog.Catalog
	World   *types.World
	Runtime *script.Runtime
}

// Close releases the Lua runtime backing the item callbacks.
func (c *Content) Close() {
	if c.Runtime != nil {
		c.Runtime.Close()
	}
}

// collector accumulates Lua definitions during file execution.
type collector struct {
	game   *lua.LTable
	world  *lua.LTable
	player *lua.LTable
	items  []rawItem
	actors []rawActor
	places []*lua.LTable
}

type rawItem struct {
	name  string
	table *lua.LTable
}

type rawActor struct {
	name  string
	table *lua.LTable
}

// Load reads all .lua files from dir, compiles them into a catalog and a
// starting world, and validates references between them.
func Load(dir string, opts script.Options) (*Content, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	luaFiles = sortedLuaFiles(luaFiles)

	rt := script.New(opts)
	coll := &collector{}
	registerAPI(rt.L, coll)

	for _, f := range luaFiles {
		if err := rt.DoFile(filepath.Join(dir, f)); err != nil {
			rt.Close()
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	content, err := compile(coll, rt)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("compiling game data: %w", err)
	}
	if err := validate(content); err != nil {
		rt.Close()
		return nil, err
	}
	return content, nil
}
