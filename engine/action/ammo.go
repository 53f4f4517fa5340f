package action

import (
	"context"
	"fmt"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/types"
)

// Enchantments with ID/10000 == ammoEnchantClass are special ammo modes.
// The remainder picks the name; power packs current and max rounds as
// max*1000 + current.
const ammoEnchantClass = 9

var ammoNames = []string{"rapid", "explosive", "piercing", "magic", "time stop", "burst"}

func ammoName(id int) string {
	if id < 0 || id >= len(ammoNames) {
		return "special"
	}
	return ammoNames[id]
}

// changeAmmo cycles the equipped ammo through its special modes and back
// to normal. Item.Count holds the enchantment index in use, or -1.
func (d *Dispatcher) changeAmmo(_ context.Context, at *attempt) (types.Outcome, error) {
	idx, it, err := at.itemAt(at.actor().Ammo)
	if err != nil {
		return 0, errs.InvalidItemState("You need to equip ammos.").WithKey("action.ammo.need_to_equip")
	}
	var modes []int
	cur := -1
	for i, e := range it.Enchantments {
		if e.ID/10000 != ammoEnchantClass {
			continue
		}
		if it.Count == i {
			cur = len(modes)
		}
		modes = append(modes, i)
	}
	if len(modes) == 0 {
		return 0, errs.InvalidItemState(fmt.Sprintf("%s is not capable of changing ammos.", at.itemName(it))).
			WithKey("action.ammo.is_not_capable")
	}

	cur++
	if cur >= len(modes) {
		it.Count = -1
	} else {
		it.Count = modes[cur]
	}

	at.say("action.ammo.current", "Current ammo type:", types.ToneNormal)
	for i := -1; i < len(modes); i++ {
		line := "normal:unlimited"
		mode := -1
		if i >= 0 {
			mode = modes[i]
			e := it.Enchantments[mode]
			line = fmt.Sprintf("%s:%d/%d", ammoName(e.ID%10000), e.Power%1000, e.Power/1000)
		}
		tone := types.ToneNormal
		if it.Count == mode {
			line = "[" + line + "]"
			tone = types.ToneGood
		} else {
			line = " " + line + " "
		}
		at.say("action.ammo.mode", " "+line, tone)
	}
	at.emit("ammo_changed", map[string]any{"item": idx, "mode": it.Count})
	return keep()
}
