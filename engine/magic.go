package engine

import (
	"context"
	"fmt"

	"github.com/nathoo/turncore/engine/action"
	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/rng"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

type spellFunc func(ctx context.Context, m *Magic, w *types.World, s action.Spell, r *types.Result) (bool, error)

// Magic is the default spell collaborator. It covers the effects of the
// built-in potions, scrolls, rods and tool effects; anything else fizzles.
type Magic struct {
	Catalog *catalog.Catalog
	Dice    rng.Source
	Combat  action.Combat
}

// Cast resolves one spell and reports whether it did anything.
func (m *Magic) Cast(ctx context.Context, w *types.World, s action.Spell, r *types.Result) (bool, error) {
	table := itemSpells
	if s.Source == action.SourceUse || s.Source == action.SourceCast {
		table = effectSpells
	}
	if s.Target == types.NoIndex {
		s.Target = s.Caster
		if enemy := w.Actors[s.Caster].EnemyID; s.Source == action.SourceZap && state.Alive(w, enemy) {
			s.Target = enemy
		}
	}
	fn, ok := table[s.ID]
	if !ok || !state.Alive(w, s.Target) {
		return false, nil
	}
	did, err := fn(ctx, m, w, s, r)
	if err == nil && did {
		r.Emit("spell_cast", map[string]any{"spell": s.ID, "source": string(s.Source), "target": s.Target})
	}
	return did, err
}

var itemSpells = map[int]spellFunc{
	68:                     healBy(100),
	69:                     healBy(300),
	70:                     status("is confused.", func(a *types.Actor, n int) { a.Confused += n }),
	71:                     status("falls asleep.", func(a *types.Actor, n int) { a.Sleep += n }),
	72:                     status("is blinded.", func(a *types.Actor, n int) { a.Blind += n }),
	73:                     status("gets drunk.", func(a *types.Actor, n int) { a.Drunk += n }),
	catalog.ItemWater:      status("gets wet.", func(a *types.Actor, n int) { a.Wet += n }),
	catalog.ItemPoison:     harm(15, "poison"),
	catalog.ItemAcidBottle: harm(25, "acid"),
	catalog.ItemMolotov:    molotov,
	catalog.ItemLovePotion: lovePotion,
	14:                     identify,
	16:                     teleport,
	19:                     harm(20, "magic missile"),
	20:                     healBy(150),
}

var effectSpells = map[int]spellFunc{
	action.SpellHeal:          healBy(50),
	action.SpellIdentify:      identify,
	action.SpellUncurse:       uncurse,
	action.SpellEnchantWeapon: enchantWeapon,
	action.SpellRepair:        message("Your equipment is repaired."),
	action.SpellPurify:        message("You feel purified."),
	action.SpellFountain:      message("Water springs from the ground."),
}

// scaled applies curse and power to a base amount.
func scaled(base int, s action.Spell) int {
	n := base * s.Power / 100
	switch {
	case s.Curse == types.CurseBlessed:
		n = n * 3 / 2
	case s.Curse.IsCursed():
		n /= 2
	}
	return max(n, 1)
}

func healBy(base int) spellFunc {
	return func(_ context.Context, _ *Magic, w *types.World, s action.Spell, r *types.Result) (bool, error) {
		t := &w.Actors[s.Target]
		t.HP = min(t.MaxHP, t.HP+scaled(base, s))
		r.Say("magic.heal", fmt.Sprintf("%s is healed.", t.Name), types.ToneGood)
		return true, nil
	}
}

func status(text string, apply func(a *types.Actor, n int)) spellFunc {
	return func(_ context.Context, m *Magic, w *types.World, s action.Spell, r *types.Result) (bool, error) {
		t := &w.Actors[s.Target]
		apply(t, scaled(m.Dice.Rnd(5)+5, s))
		r.Say("magic.status", fmt.Sprintf("%s %s", t.Name, text), types.ToneBad)
		return true, nil
	}
}

func harm(base int, cause string) spellFunc {
	return func(ctx context.Context, m *Magic, w *types.World, s action.Spell, r *types.Result) (bool, error) {
		if err := m.Combat.Damage(ctx, w, s.Target, scaled(base, s), cause, r); err != nil {
			return false, err
		}
		return true, nil
	}
}

func molotov(ctx context.Context, m *Magic, w *types.World, s action.Spell, r *types.Result) (bool, error) {
	state.AddMef(w, types.Mef{Position: s.Origin, Kind: types.MefFire, Turns: m.Dice.Rnd(10) + 5, Power: s.Power, Owner: s.Caster})
	return harm(20, "fire")(ctx, m, w, s, r)
}

func lovePotion(_ context.Context, _ *Magic, w *types.World, s action.Spell, r *types.Result) (bool, error) {
	t := &w.Actors[s.Target]
	if s.Target == s.Caster {
		r.Say("magic.love.self", "You feel a strange longing.", types.ToneNormal)
		return true, nil
	}
	if t.Relationship < types.RelationNeutral {
		t.Relationship = types.RelationNeutral
		t.EnemyID = types.NoIndex
	}
	r.Say("magic.love", fmt.Sprintf("%s looks at you lovingly.", t.Name), types.ToneGood)
	return true, nil
}

func identify(_ context.Context, _ *Magic, _ *types.World, _ action.Spell, r *types.Result) (bool, error) {
	r.Say("magic.identify", "You sense the quality of your belongings.", types.ToneNormal)
	return true, nil
}

func teleport(_ context.Context, m *Magic, w *types.World, s action.Spell, r *types.Result) (bool, error) {
	t := &w.Actors[s.Target]
	for range 100 {
		p := types.Point{X: m.Dice.Rnd(w.Map.Width), Y: m.Dice.Rnd(w.Map.Height)}
		if state.Passable(w, p) {
			t.Position = p
			r.Say("magic.teleport", fmt.Sprintf("%s vanishes suddenly.", t.Name), types.ToneNormal)
			return true, nil
		}
	}
	return false, nil
}

func uncurse(_ context.Context, _ *Magic, w *types.World, s action.Spell, r *types.Result) (bool, error) {
	n := 0
	for _, i := range state.Inventory(w, s.Target) {
		if w.Items[i].Curse == types.CurseCursed || (s.Curse == types.CurseBlessed && w.Items[i].Curse == types.CurseDoomed) {
			w.Items[i].Curse = types.CurseNone
			n++
		}
	}
	if n == 0 {
		r.Say("magic.uncurse.none", "Nothing happens.", types.ToneNormal)
		return false, nil
	}
	r.Say("magic.uncurse", fmt.Sprintf("The curse is lifted from %d item(s).", n), types.ToneGood)
	return true, nil
}

func enchantWeapon(_ context.Context, m *Magic, w *types.World, s action.Spell, r *types.Result) (bool, error) {
	for _, i := range state.Inventory(w, s.Target) {
		if w.Items[i].Equipped && m.Catalog.Category(w.Items[i].ID) == catalog.CategoryMeleeWeapon {
			w.Items[i].Enhancement++
			r.Say("magic.enchant", fmt.Sprintf("%s glows.", m.Catalog.Name(w.Items[i].ID)), types.ToneGood)
			return true, nil
		}
	}
	return false, nil
}

func message(text string) spellFunc {
	return func(_ context.Context, _ *Magic, _ *types.World, _ action.Spell, r *types.Result) (bool, error) {
		r.Say("magic.effect", text, types.ToneNormal)
		return true, nil
	}
}
