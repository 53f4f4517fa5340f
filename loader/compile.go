package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/script"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

var categoryNames = map[string]int{
	"melee":     catalog.CategoryMeleeWeapon,
	"armor":     catalog.CategoryArmor,
	"ranged":    catalog.CategoryRangedWeapon,
	"ammo":      catalog.CategoryAmmo,
	"potion":    catalog.CategoryPotion,
	"scroll":    catalog.CategoryScroll,
	"spellbook": catalog.CategorySpellbook,
	"rod":       catalog.CategoryRod,
	"food":      catalog.CategoryFood,
	"tool":      catalog.CategoryTool,
	"furniture": catalog.CategoryFurniture,
	"container": catalog.CategoryContainer,
	"gold":      catalog.CategoryGold,
	"ore":       catalog.CategoryOre,
}

var mapTypeNames = map[string]types.MapType{
	"world":        types.MapWorld,
	"town":         types.MapTown,
	"guild":        types.MapGuild,
	"player_owned": types.MapPlayerOwned,
	"shelter":      types.MapShelter,
	"temporary":    types.MapTemporary,
	"dungeon":      types.MapDungeon,
	"field":        types.MapField,
}

var mapIDNames = map[string]types.MapID{
	"":               types.MapIDNone,
	"show_house":     types.MapIDShowHouse,
	"museum":         types.MapIDMuseum,
	"shop":           types.MapIDShop,
	"your_home":      types.MapIDYourHome,
	"arena":          types.MapIDArena,
	"pet_arena":      types.MapIDPetArena,
	"quest":          types.MapIDQuest,
	"fields":         types.MapIDFields,
	"noyel":          types.MapIDNoyel,
	"random_dungeon": types.MapIDRandomDungeon,
	"void":           types.MapIDVoid,
}

var relationNames = map[string]int{
	"ally":    types.RelationAlly,
	"neutral": types.RelationNeutral,
	"enemy":   types.RelationEnemy,
	"hostile": types.RelationHostile,
}

var curseNames = map[string]types.CurseState{
	"":        types.CurseNone,
	"none":    types.CurseNone,
	"blessed": types.CurseBlessed,
	"cursed":  types.CurseCursed,
	"doomed":  types.CurseDoomed,
}

var flagNames = map[string]types.ItemFlags{
	"acidproof": types.FlagAcidproof,
	"fireproof": types.FlagFireproof,
	"charged":   types.FlagCharged,
	"cooldown":  types.FlagCooldown,
	"living":    types.FlagLiving,
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or def if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// getCode reads a field that may be written either as a number or as one
// of the names in table.
func getCode[T ~int](tbl *lua.LTable, key string, names map[string]T, def T) (T, error) {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LNumber:
		return T(v), nil
	case lua.LString:
		code, ok := names[string(v)]
		if !ok {
			return def, fmt.Errorf("unknown %s %q", key, string(v))
		}
		return code, nil
	case *lua.LNilType:
		return def, nil
	default:
		return def, fmt.Errorf("%s must be a number or a name", key)
	}
}

func stringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	tbl.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}

func intMap(tbl *lua.LTable) map[int]int {
	if tbl == nil {
		return nil
	}
	out := map[int]int{}
	tbl.ForEach(func(k, v lua.LValue) {
		kn, kok := k.(lua.LNumber)
		vn, vok := v.(lua.LNumber)
		if kok && vok {
			out[int(kn)] = int(vn)
		}
	})
	return out
}

// compile converts the collected Lua data into a catalog and a world.
func compile(coll *collector, rt *script.Runtime) (*Content, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	content := &Content{
		Title:   getString(coll.game, "title"),
		Intro:   getString(coll.game, "intro"),
		Seed:    int64(getInt(coll.game, "seed", 0)),
		Runtime: rt,
	}

	templates := catalog.Builtin()
	for _, raw := range coll.items {
		t, err := compileItem(raw, rt)
		if err != nil {
			return nil, fmt.Errorf("compiling item %q: %w", raw.name, err)
		}
		templates = append(templates, t)
	}
	cat, err := catalog.New(templates...)
	if err != nil {
		return nil, err
	}
	content.Catalog = cat

	if coll.world == nil {
		return nil, fmt.Errorf("no Map{} definition found")
	}
	m, err := compileMap(coll.world)
	if err != nil {
		return nil, fmt.Errorf("compiling map: %w", err)
	}
	w := &types.World{Map: m}
	w.Game.Hours = getInt(coll.game, "hours", 0)

	if coll.player == nil {
		return nil, fmt.Errorf("no Player{} definition found")
	}
	player, err := compileActor(rawActor{name: "you", table: coll.player})
	if err != nil {
		return nil, fmt.Errorf("compiling player: %w", err)
	}
	player.Relationship = types.RelationAlly
	state.PutActor(w, 0, player)

	next := types.MaxParty
	for _, raw := range coll.actors {
		a, err := compileActor(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling actor %q: %w", raw.name, err)
		}
		slot := next
		if a.Relationship >= types.RelationAlly {
			slot = state.FreeAllySlot(w)
			if slot == types.NoIndex {
				return nil, fmt.Errorf("actor %q: party is full", raw.name)
			}
		} else {
			next++
		}
		state.PutActor(w, slot, a)
	}

	if err := placeItems(w, cat, 0, getTable(coll.player, "inventory")); err != nil {
		return nil, fmt.Errorf("player inventory: %w", err)
	}
	for _, tbl := range coll.places {
		if err := placeItem(w, cat, types.OwnerGround, tbl); err != nil {
			return nil, err
		}
	}
	content.World = w
	return content, nil
}

func compileItem(raw rawItem, rt *script.Runtime) (catalog.Template, error) {
	tbl := raw.table
	category, err := getCode(tbl, "category", categoryNames, 0)
	if err != nil {
		return catalog.Template{}, err
	}
	t := catalog.Template{
		ID:          getInt(tbl, "id", 0),
		Name:        raw.name,
		Image:       getInt(tbl, "image", 0),
		Value:       getInt(tbl, "value", 0),
		Weight:      getInt(tbl, "weight", 0),
		DiceX:       getInt(tbl, "dice_x", 0),
		DiceY:       getInt(tbl, "dice_y", 0),
		HitBonus:    getInt(tbl, "hit", 0),
		DamageBonus: getInt(tbl, "damage", 0),
		PV:          getInt(tbl, "pv", 0),
		DV:          getInt(tbl, "dv", 0),
		Material:    getInt(tbl, "material", 0),
		ChargeLevel: getInt(tbl, "charges", 0),
		Category:    category,
		Subcategory: getInt(tbl, "subcategory", 0),
		Rarity:      getInt(tbl, "rarity", 0),
		Level:       getInt(tbl, "level", 0),
		Function:    getInt(tbl, "func", 0),
		Param1:      getInt(tbl, "param1", 0),
		Param2:      getInt(tbl, "param2", 0),
		Param3:      getInt(tbl, "param3", 0),
	}
	for _, name := range stringList(getTable(tbl, "flags")) {
		f, ok := flagNames[name]
		if !ok {
			return t, fmt.Errorf("unknown flag %q", name)
		}
		t.Flags |= f
	}

	switch fn := tbl.RawGetString("on_use").(type) {
	case *lua.LFunction:
		t.OnUse = rt.Callback(raw.name, fn)
	case *lua.LNilType:
	default:
		return t, fmt.Errorf("on_use must be a function")
	}
	return t, nil
}

// Map legend.
var cellLegend = map[rune]types.Cell{
	'.':  {Kind: types.TileFloor},
	'#':  {Kind: types.TileWall},
	'~':  {Kind: types.TileWater},
	'*':  {Kind: types.TileSnow},
	'>':  {Feature: types.Feature{Tile: types.TileDownstairs, Kind: types.FeatDownstairs}},
	'L':  {Feature: types.Feature{Tile: types.TileDownLocked, Kind: types.FeatDownstairs}},
	'<':  {Feature: types.Feature{Kind: types.FeatUpstairs}},
	'+':  {Feature: types.Feature{Tile: types.TileDoorClosed, Kind: types.FeatClosedDoor}},
	'\'': {Feature: types.Feature{Kind: types.FeatOpenDoor}},
	'^':  {Feature: types.Feature{Tile: types.TileHiddenFloor, Kind: types.FeatTrap}},
	'T':  {Feature: types.Feature{Tile: types.TileTrap, Kind: types.FeatTrap}},
	'$':  {Feature: types.Feature{Kind: types.FeatSmallCoin}},
	'"':  {Feature: types.Feature{Tile: types.TilePlant + 3, Kind: types.FeatPlant}},
	'?':  {Feature: types.Feature{Kind: types.FeatQuestBoard}},
}

func compileMap(tbl *lua.LTable) (types.Map, error) {
	rows := stringList(getTable(tbl, "rows"))
	if len(rows) == 0 {
		return types.Map{}, fmt.Errorf("map has no rows")
	}
	width := len([]rune(rows[0]))
	m := state.NewMap(width, len(rows))

	mt, err := getCode(tbl, "type", mapTypeNames, types.MapTown)
	if err != nil {
		return m, err
	}
	id, ok := mapIDNames[getString(tbl, "id")]
	if !ok {
		return m, fmt.Errorf("unknown map id %q", getString(tbl, "id"))
	}
	m.Type = mt
	m.ID = id
	m.Name = getString(tbl, "name")
	m.DungeonLevel = getInt(tbl, "level", 1)
	m.DeepestLevel = getInt(tbl, "deepest", m.DungeonLevel)
	m.DangerLevel = getInt(tbl, "danger", m.DungeonLevel)

	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return m, fmt.Errorf("row %d is %d cells wide, want %d", y+1, len(runes), width)
		}
		for x, r := range runes {
			c, ok := cellLegend[r]
			if !ok {
				return m, fmt.Errorf("row %d: unknown map symbol %q", y+1, r)
			}
			m.Cells[y*width+x] = c
		}
	}
	return m, nil
}

func compileActor(raw rawActor) (types.Actor, error) {
	tbl := raw.table
	rel, err := getCode(tbl, "relationship", relationNames, types.RelationNeutral)
	if err != nil {
		return types.Actor{}, err
	}
	level := getInt(tbl, "level", 1)
	hp := getInt(tbl, "hp", level*10)
	name := getString(tbl, "name")
	if name == "" {
		name = raw.name
	}
	a := types.Actor{
		TemplateID:   getInt(tbl, "template", 0),
		Name:         name,
		Alive:        true,
		Position:     types.Point{X: getInt(tbl, "x", 0), Y: getInt(tbl, "y", 0)},
		Relationship: rel,
		Role:         getInt(tbl, "role", 0),
		Level:        level,
		HP:           hp,
		MaxHP:        getInt(tbl, "max_hp", hp),
		SP:           getInt(tbl, "sp", 100),
		Gold:         getInt(tbl, "gold", 0),
		Sex:          getInt(tbl, "sex", 0),
		God:          getString(tbl, "god"),
		TalkTone:     getString(tbl, "tone"),
		CustomTalk:   getString(tbl, "talk"),
		Lines:        stringList(getTable(tbl, "lines")),
		Teleporter:   getBool(tbl, "teleporter", false),
		Livestock:    getBool(tbl, "livestock", false),
		Special:      getBool(tbl, "special", false),
		EnemyID:      types.NoIndex,
		Ranged:       types.NoIndex,
		Ammo:         types.NoIndex,
		Skills:       intMap(getTable(tbl, "skills")),
	}
	if a.Relationship <= types.RelationHostile {
		a.EnemyID = 0
	}
	return a, nil
}

func placeItems(w *types.World, cat *catalog.Catalog, owner int, list *lua.LTable) error {
	if list == nil {
		return nil
	}
	var err error
	list.ForEach(func(_, v lua.LValue) {
		tbl, ok := v.(*lua.LTable)
		if !ok || err != nil {
			return
		}
		err = placeItem(w, cat, owner, tbl)
	})
	return err
}

func placeItem(w *types.World, cat *catalog.Catalog, owner int, tbl *lua.LTable) error {
	id := getInt(tbl, "item", 0)
	t, ok := cat.Lookup(id)
	if !ok {
		return fmt.Errorf("placed item %d is not defined", id)
	}
	curse, err := getCode(tbl, "curse", curseNames, types.CurseNone)
	if err != nil {
		return fmt.Errorf("item %d: %w", id, err)
	}
	p := types.Point{X: getInt(tbl, "x", 0), Y: getInt(tbl, "y", 0)}
	idx := state.CreateItem(w, t, owner, p, getInt(tbl, "number", 1))
	w.Items[idx].Curse = curse
	if n, ok := tbl.RawGetString("count").(lua.LNumber); ok {
		w.Items[idx].Count = int(n)
	}
	return nil
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
