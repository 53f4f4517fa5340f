// Package state provides queries and primitive mutations over the world
// aggregate. Handlers compose these; none of them prompt or roll dice.
package state

import (
	"maps"
	"math"
	"slices"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/types"
)

// NewMap creates a width x height map of floor cells.
func NewMap(width, height int) types.Map {
	return types.Map{
		Width:  width,
		Height: height,
		Cells:  make([]types.Cell, width*height),
	}
}

// InBounds reports whether p lies on m.
func InBounds(m *types.Map, p types.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// CellAt returns the cell at p, or nil when p is off the map.
func CellAt(m *types.Map, p types.Point) *types.Cell {
	if !InBounds(m, p) {
		return nil
	}
	return &m.Cells[p.Y*m.Width+p.X]
}

// SetFeature replaces the feature at p and bumps the map revision.
func SetFeature(m *types.Map, p types.Point, f types.Feature) {
	c := CellAt(m, p)
	if c == nil {
		return
	}
	c.Feature = f
	m.Revision++
}

// ClearFeature removes the feature at p.
func ClearFeature(m *types.Map, p types.Point) {
	SetFeature(m, p, types.Feature{})
}

// blockingFeature reports feature kinds that occupy their cell.
func blockingFeature(kind int) bool {
	switch kind {
	case types.FeatClosedDoor, types.FeatHiddenPath, types.FeatQuestBoard,
		types.FeatVotingBox, types.FeatCityChart:
		return true
	}
	return false
}

// Walkable reports whether terrain at p admits an actor, ignoring other
// actors.
func Walkable(m *types.Map, p types.Point) bool {
	c := CellAt(m, p)
	if c == nil {
		return false
	}
	return c.Kind != types.TileWall && !blockingFeature(c.Feature.Kind)
}

// Passable reports whether an actor may step onto p right now.
func Passable(w *types.World, p types.Point) bool {
	return Walkable(&w.Map, p) && ActorAt(w, p) == types.NoIndex
}

// ActorAt returns the index of the living actor standing at p, or NoIndex.
func ActorAt(w *types.World, p types.Point) int {
	for i := range w.Actors {
		if w.Actors[i].Alive && w.Actors[i].Position == p {
			return i
		}
	}
	return types.NoIndex
}

// Alive reports whether idx names a living actor.
func Alive(w *types.World, idx int) bool {
	return idx >= 0 && idx < len(w.Actors) && w.Actors[idx].Alive
}

// IsParty reports whether idx is the player or an ally slot.
func IsParty(idx int) bool {
	return idx >= 0 && idx < types.MaxParty
}

// FreeAllySlot returns the first unused ally slot, or NoIndex when the
// party is full.
func FreeAllySlot(w *types.World) int {
	for i := 1; i < types.MaxParty; i++ {
		if i >= len(w.Actors) || !w.Actors[i].Alive {
			return i
		}
	}
	return types.NoIndex
}

// PutActor places a into slot idx, growing the actor table as needed.
func PutActor(w *types.World, idx int, a types.Actor) {
	for len(w.Actors) <= idx {
		w.Actors = append(w.Actors, types.Actor{EnemyID: types.NoIndex, Ranged: types.NoIndex, Ammo: types.NoIndex})
	}
	w.Actors[idx] = a
}

// FindActor returns the first living actor created from template id, or
// NoIndex.
func FindActor(w *types.World, templateID int) int {
	for i := range w.Actors {
		if w.Actors[i].Alive && w.Actors[i].TemplateID == templateID {
			return i
		}
	}
	return types.NoIndex
}

// Vanquish removes an actor from the map for good.
func Vanquish(w *types.World, idx int) {
	if idx < 0 || idx >= len(w.Actors) {
		return
	}
	w.Actors[idx].Alive = false
	w.Actors[idx].HP = 0
	for i := range w.Actors {
		if w.Actors[i].EnemyID == idx {
			w.Actors[i].EnemyID = types.NoIndex
		}
	}
}

// Swap exchanges the positions of two actors.
func Swap(w *types.World, a, b int) {
	w.Actors[a].Position, w.Actors[b].Position = w.Actors[b].Position, w.Actors[a].Position
}

// Dist is the rounded-down euclidean distance between two cells.
func Dist(a, b types.Point) int {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return int(math.Sqrt(dx*dx + dy*dy))
}

// Adjacent reports whether a and b are distinct and touch, diagonals
// included.
func Adjacent(a, b types.Point) bool {
	if a == b {
		return false
	}
	return abs(a.X-b.X) <= 1 && abs(a.Y-b.Y) <= 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ValidItem reports whether idx names a non-empty item slot.
func ValidItem(w *types.World, idx int) bool {
	return idx >= 0 && idx < len(w.Items) && w.Items[idx].Number > 0
}

// ItemsAt returns the ground items at p.
func ItemsAt(w *types.World, p types.Point) []int {
	var out []int
	for i := range w.Items {
		it := &w.Items[i]
		if it.Number > 0 && it.Owner == types.OwnerGround && it.Position == p {
			out = append(out, i)
		}
	}
	return out
}

// Inventory returns the items carried by owner.
func Inventory(w *types.World, owner int) []int {
	var out []int
	for i := range w.Items {
		if w.Items[i].Number > 0 && w.Items[i].Owner == owner {
			out = append(out, i)
		}
	}
	return out
}

// FindItem returns the first item of template id held by owner, or NoIndex.
func FindItem(w *types.World, owner, id int) int {
	for _, i := range Inventory(w, owner) {
		if w.Items[i].ID == id {
			return i
		}
	}
	return types.NoIndex
}

// FindItemAt returns the first ground item of template id at p, or NoIndex.
func FindItemAt(w *types.World, p types.Point, id int) int {
	for _, i := range ItemsAt(w, p) {
		if w.Items[i].ID == id {
			return i
		}
	}
	return types.NoIndex
}

// InventoryWeight sums the weight of everything owner carries.
func InventoryWeight(w *types.World, owner int) int {
	total := 0
	for _, i := range Inventory(w, owner) {
		total += w.Items[i].Weight * w.Items[i].Number
	}
	return total
}

// ModifyNumber changes a stack size, never below zero. An emptied slot
// stays in place so other indices remain valid for the rest of the action.
func ModifyNumber(w *types.World, idx, delta int) {
	it := &w.Items[idx]
	it.Number += delta
	if it.Number < 0 {
		it.Number = 0
	}
}

// Separate splits one item off a stack so it can be changed on its own.
// idx keeps a single item; the remainder moves to a new slot.
func Separate(w *types.World, idx int) int {
	it := w.Items[idx]
	if it.Number <= 1 {
		return idx
	}
	rest := it
	rest.Number = it.Number - 1
	w.Items[idx].Number = 1
	w.Items = append(w.Items, rest)
	return idx
}

// AddItem stores a new item and returns its index, reusing an empty slot.
func AddItem(w *types.World, it types.Item) int {
	for i := range w.Items {
		if w.Items[i].Number == 0 {
			w.Items[i] = it
			return i
		}
	}
	w.Items = append(w.Items, it)
	return len(w.Items) - 1
}

// CreateItem instantiates template t for owner at p.
func CreateItem(w *types.World, t catalog.Template, owner int, p types.Point, number int) int {
	it := t.Instance(number)
	it.Owner = owner
	it.Position = p
	return AddItem(w, it)
}

// Stackable reports whether a and b merge into one stack.
func Stackable(a, b *types.Item) bool {
	return a.ID == b.ID &&
		a.Owner == b.Owner &&
		(a.Owner != types.OwnerGround || a.Position == b.Position) &&
		a.Curse == b.Curse &&
		a.Flags == b.Flags &&
		a.Param1 == b.Param1 && a.Param2 == b.Param2 &&
		a.Param3 == b.Param3 && a.Param4 == b.Param4 &&
		a.Count == b.Count && a.Color == b.Color &&
		a.Subname == b.Subname && a.Enhancement == b.Enhancement &&
		slices.Equal(a.Enchantments, b.Enchantments) &&
		!a.Equipped && !b.Equipped
}

// StackItem merges idx into an identical stack of the same owner if one
// exists and returns the surviving index.
func StackItem(w *types.World, idx int) int {
	src := &w.Items[idx]
	if src.Number == 0 {
		return idx
	}
	for i := range w.Items {
		if i == idx || w.Items[i].Number == 0 {
			continue
		}
		if Stackable(&w.Items[i], src) {
			w.Items[i].Number += src.Number
			src.Number = 0
			return i
		}
	}
	return idx
}

// Drop moves one item from a stack to the ground at p and returns the
// dropped item's index.
func Drop(w *types.World, idx int, p types.Point) int {
	it := w.Items[idx]
	it.Number = 1
	it.Owner = types.OwnerGround
	it.Position = p
	it.Equipped = false
	ModifyNumber(w, idx, -1)
	return AddItem(w, it)
}

// AddMef places a map effect, replacing any effect already at its cell.
func AddMef(w *types.World, m types.Mef) {
	for i := range w.Mefs {
		if w.Mefs[i].Position == m.Position {
			w.Mefs[i] = m
			return
		}
	}
	w.Mefs = append(w.Mefs, m)
}

// Clone deep-copies the world so it can be restored after a failed action.
func Clone(w *types.World) *types.World {
	c := *w
	c.Map.Cells = slices.Clone(w.Map.Cells)
	c.Items = slices.Clone(w.Items)
	for i := range c.Items {
		c.Items[i].Enchantments = slices.Clone(c.Items[i].Enchantments)
	}
	c.Mefs = slices.Clone(w.Mefs)
	c.Actors = slices.Clone(w.Actors)
	for i := range c.Actors {
		a := &c.Actors[i]
		a.Lines = slices.Clone(a.Lines)
		a.Buffs = slices.Clone(a.Buffs)
		a.Skills = maps.Clone(a.Skills)
		a.Traits = maps.Clone(a.Traits)
		a.Spells = maps.Clone(a.Spells)
	}
	return &c
}

// Skill returns an actor's skill level, 0 when untrained.
func Skill(a *types.Actor, id int) int {
	return a.Skills[id]
}

// SetTrait sets a trait level, allocating the map on first use.
func SetTrait(a *types.Actor, id, level int) {
	if a.Traits == nil {
		a.Traits = map[int]int{}
	}
	a.Traits[id] = level
}

// GainSkill raises a skill, allocating the map on first use.
func GainSkill(a *types.Actor, id, amount int) {
	if a.Skills == nil {
		a.Skills = map[int]int{}
	}
	a.Skills[id] += amount
}

// AddBuff appends a timed buff, refreshing an existing one of the same id.
func AddBuff(a *types.Actor, b types.Buff) {
	for i := range a.Buffs {
		if a.Buffs[i].ID == b.ID {
			a.Buffs[i] = b
			return
		}
	}
	a.Buffs = append(a.Buffs, b)
}

// InterruptActivity cancels an in-progress activity and reports whether
// one was running.
func InterruptActivity(a *types.Actor) bool {
	if a.Activity.Kind == types.ActivityNone || a.Activity.Turns <= 0 {
		return false
	}
	a.Activity = types.Activity{}
	return true
}

// AddEnchantment attaches e to it, adding power to an enchantment of the
// same id.
func AddEnchantment(it *types.Item, e types.Enchantment) {
	for i := range it.Enchantments {
		if it.Enchantments[i].ID == e.ID {
			it.Enchantments[i].Power += e.Power
			return
		}
	}
	it.Enchantments = append(it.Enchantments, e)
}
