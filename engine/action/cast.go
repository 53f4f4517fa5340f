package action

import (
	"context"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

const castPower = 100

// spellNames are the spells a player can name when casting.
var spellNames = map[string]int{
	"heal":           SpellHeal,
	"identify":       SpellIdentify,
	"uncurse":        SpellUncurse,
	"enchant weapon": SpellEnchantWeapon,
	"repair":         SpellRepair,
	"purify":         SpellPurify,
	"fountain":       SpellFountain,
}

// SpellByName resolves a spell name typed by the player.
func SpellByName(name string) (int, bool) {
	id, ok := spellNames[name]
	return id, ok
}

func (d *Dispatcher) cast(ctx context.Context, at *attempt) (types.Outcome, error) {
	return at.castSpell(ctx, at.cmd.Spell)
}

// castSpell spends one stock of a learnt spell. A spell that does nothing
// is refunded.
func (at *attempt) castSpell(ctx context.Context, id int) (types.Outcome, error) {
	a := at.actor()
	if a.Spells[id] <= 0 {
		return 0, errs.Insufficient("You can't cast that spell anymore.").WithKey("action.cast.no_stock")
	}
	a.Spells[id]--
	did, err := at.cast(ctx, Spell{
		ID:     id,
		Power:  castPower,
		Caster: at.cmd.Actor,
		Target: at.cmd.Target,
		Item:   types.NoIndex,
		Source: SourceCast,
		Origin: a.Position,
	})
	if err != nil {
		return 0, err
	}
	if !did {
		return 0, errs.InvalidTarget("Nothing happens...").WithKey("common.nothing_happens")
	}
	return turnEnds()
}

// shortcut runs the command stored in a shortcut slot.
func (d *Dispatcher) shortcut(ctx context.Context, at *attempt) (types.Outcome, error) {
	slot := at.cmd.Slot
	unassigned := errs.InvalidTarget("The key is unassigned.").WithKey("action.shortcut.unassigned")
	if slot < 0 || slot >= types.MaxShortcuts {
		return 0, unassigned
	}
	sc := at.w.Game.Shortcuts[slot]
	h, ok := d.handlers[sc.Kind]
	if !ok || sc.Kind == types.CmdShortcut || sc.Kind == types.CmdMove {
		return 0, unassigned
	}

	if sc.Kind == types.CmdCast {
		if at.w.Map.Type == types.MapWorld {
			return 0, errs.Blocked("You can't do that while you're in a global area.").WithKey("action.cannot_do_in_global")
		}
		if at.actor().Spells[sc.Spell] <= 0 {
			return 0, errs.Insufficient("You can't use this spell anymore.").WithKey("action.shortcut.cannot_use_spell_anymore")
		}
		at.cmd.Spell = sc.Spell
	}
	if sc.ItemID != 0 {
		at.cmd.Item = types.NoIndex
		for _, i := range state.Inventory(at.w, at.cmd.Actor) {
			if at.w.Items[i].ID == sc.ItemID {
				at.cmd.Item = i
				break
			}
		}
		if at.cmd.Item == types.NoIndex {
			return 0, errs.InvalidTarget("You don't have that.").WithKey("item.missing")
		}
	}
	at.cmd.Kind = sc.Kind
	return h(ctx, at)
}
