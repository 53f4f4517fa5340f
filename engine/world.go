package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/nathoo/turncore/engine/action"
	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/rng"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Terrain is the default terrain collaborator. Doors open when walked
// into and traps spring. Map effects burn whoever steps in them, and
// potion puddles splash their effect on the walker and dry up.
type Terrain struct {
	Dice   rng.Source
	Combat action.Combat
	Magic  action.Magic
}

// Enter moves actor onto p, or opens the closed door there.
func (t *Terrain) Enter(ctx context.Context, w *types.World, actor int, p types.Point, r *types.Result) (types.Outcome, error) {
	c := state.CellAt(&w.Map, p)
	if c.Feature.Kind == types.FeatClosedDoor {
		state.SetFeature(&w.Map, p, types.Feature{Kind: types.FeatOpenDoor})
		r.Say("terrain.door.open", "You open the door.", types.ToneNormal)
		r.Emit("door_opened", map[string]any{"x": p.X, "y": p.Y})
		return types.OutcomeTurnEnds, nil
	}

	w.Actors[actor].Position = p
	if c.Feature.Kind == types.FeatTrap {
		f := c.Feature
		f.Tile = types.TileTrap
		state.SetFeature(&w.Map, p, f)
		r.Say("terrain.trap", "You step on a trap!", types.ToneBad)
		if err := t.Combat.Damage(ctx, w, actor, t.Dice.Rnd(10)+1, "trap", r); err != nil {
			return 0, err
		}
	}
	for i := 0; i < len(w.Mefs); i++ {
		m := w.Mefs[i]
		if m.Position != p || m.Turns == 0 {
			continue
		}
		switch m.Kind {
		case types.MefFire:
			r.Say("terrain.mef.fire", "You are burnt.", types.ToneBad)
			if err := t.Combat.Damage(ctx, w, actor, t.Dice.Rnd(m.Power/20+1)+1, "fire", r); err != nil {
				return 0, err
			}
		case types.MefAcid:
			r.Say("terrain.mef.acid", "You step in acid.", types.ToneBad)
			if err := t.Combat.Damage(ctx, w, actor, t.Dice.Rnd(m.Power/25+1)+1, "acid", r); err != nil {
				return 0, err
			}
		case types.MefPotion:
			if t.Magic == nil {
				continue
			}
			w.Mefs = slices.Delete(w.Mefs, i, i+1)
			i--
			r.Say("terrain.mef.potion", "You step in a puddle.", types.ToneNormal)
			if _, err := t.Magic.Cast(ctx, w, action.Spell{
				ID:     m.ItemID,
				Power:  m.Power,
				Caster: m.Owner,
				Target: actor,
				Curse:  m.Curse,
				Item:   types.NoIndex,
				Source: action.SourceThrown,
				Origin: p,
			}, r); err != nil {
				return 0, err
			}
		}
	}
	return types.OutcomeTurnEnds, nil
}

// Feature describes the fixed feature at p.
func (t *Terrain) Feature(_ context.Context, w *types.World, _ int, p types.Point, r *types.Result) error {
	switch state.CellAt(&w.Map, p).Feature.Kind {
	case types.FeatVotingBox:
		r.Say("terrain.voting_box", "There is a voting box here. Nobody is running this season.", types.ToneNormal)
	case types.FeatCityChart:
		r.Say("terrain.city_chart", fmt.Sprintf("The chart shows a map of %s.", w.Map.Name), types.ToneNormal)
	}
	return nil
}

// Spawner is the default spawner. Actor names come from the templates
// seen in the starting world.
type Spawner struct {
	Names map[int]string
}

// NewSpawner indexes the template names of w's actors.
func NewSpawner(w *types.World) *Spawner {
	names := map[int]string{}
	for _, a := range w.Actors {
		if a.Name != "" {
			if _, ok := names[a.TemplateID]; !ok {
				names[a.TemplateID] = a.Name
			}
		}
	}
	return &Spawner{Names: names}
}

// Spawn places a new actor on the free cell nearest to p.
func (s *Spawner) Spawn(_ context.Context, w *types.World, templateID, level int, ally bool, p types.Point) (int, error) {
	slot := types.NoIndex
	if ally {
		slot = state.FreeAllySlot(w)
	} else {
		slot = types.MaxParty
		for slot < len(w.Actors) && w.Actors[slot].Alive {
			slot++
		}
	}
	if slot == types.NoIndex {
		return types.NoIndex, errs.Insufficient("Your party is already full.").WithKey("spawn.party_full")
	}
	at, ok := nearestFree(w, p)
	if !ok {
		return types.NoIndex, errs.Blocked("There's no room.").WithKey("spawn.no_room")
	}

	name, ok := s.Names[templateID]
	if !ok {
		name = fmt.Sprintf("creature #%d", templateID)
	}
	level = max(level, 1)
	rel := types.RelationEnemy
	enemy := 0
	if ally {
		rel, enemy = types.RelationAlly, types.NoIndex
	}
	state.PutActor(w, slot, types.Actor{
		TemplateID:   templateID,
		Name:         name,
		Alive:        true,
		Position:     at,
		Relationship: rel,
		Level:        level,
		HP:           level * 10,
		MaxHP:        level * 10,
		SP:           100,
		EnemyID:      enemy,
		Ranged:       types.NoIndex,
		Ammo:         types.NoIndex,
	})
	return slot, nil
}

// nearestFree searches rings around p for a passable cell.
func nearestFree(w *types.World, p types.Point) (types.Point, bool) {
	for r := 0; r <= 3; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				q := p.Add(types.Point{X: dx, Y: dy})
				if state.Passable(w, q) {
					return q, true
				}
			}
		}
	}
	return types.Point{}, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Looter is the default box filler: gold plus one random consumable.
type Looter struct {
	Catalog *catalog.Catalog
	Dice    rng.Source
}

var lootCategories = []int{catalog.CategoryFood, catalog.CategoryPotion, catalog.CategoryScroll}

// OpenBox fills the box's loot into the opener's inventory.
func (l *Looter) OpenBox(_ context.Context, w *types.World, opener, box int, r *types.Result) error {
	level := max(w.Items[box].Param1, 1)
	gold := l.Dice.Rnd(level*100+100) + 1
	w.Actors[opener].Gold += gold
	r.Say("loot.gold", fmt.Sprintf("You find %d gold pieces.", gold), types.ToneGood)

	cat := lootCategories[l.Dice.Rnd(len(lootCategories))]
	if t, ok := l.pick(cat, level); ok {
		l.give(w, opener, t, r)
	}
	return nil
}

// OpenGift hands out a random potion.
func (l *Looter) OpenGift(_ context.Context, w *types.World, opener, _ int, r *types.Result) error {
	r.Say("loot.gift", "Happy New Year!", types.ToneGood)
	if t, ok := l.pick(catalog.CategoryPotion, 20); ok {
		l.give(w, opener, t, r)
	}
	return nil
}

// pick draws a template of category cat no deeper than level, weighted
// by rarity.
func (l *Looter) pick(cat, level int) (catalog.Template, bool) {
	var pool []catalog.Template
	var weights []int
	for _, t := range l.Catalog.InCategory(cat) {
		if t.Rarity > 0 && t.Level <= level {
			pool = append(pool, t)
			weights = append(weights, t.Rarity)
		}
	}
	if len(pool) == 0 {
		return catalog.Template{}, false
	}
	total := 0
	for _, wt := range weights {
		total += wt
	}
	roll := l.Dice.Rnd(total)
	for i, wt := range weights {
		if roll < wt {
			return pool[i], true
		}
		roll -= wt
	}
	return pool[len(pool)-1], true
}

func (l *Looter) give(w *types.World, opener int, t catalog.Template, r *types.Result) {
	idx := state.CreateItem(w, t, opener, w.Actors[opener].Position, 1)
	state.StackItem(w, idx)
	r.Say("loot.item", fmt.Sprintf("You find %s.", t.Name), types.ToneGood)
}
