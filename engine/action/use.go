package action

import (
	"context"
	"fmt"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Living weapons offer this many enchantment candidates when they grow.
const livingChoices = 3

// Enchantments used by living weapon growth.
const (
	enchantLivingMin    = 20
	enchantLivingKinds  = 30
	enchantRare         = 34
	enchantThreat       = 45
	livingBonusChoiceID = -1
)

// livingExp is the blood a living weapon of level lv must absorb to grow.
func livingExp(lv int) int {
	return 10000 + lv*lv*2000
}

// use runs the active item. A scripted callback replaces every built-in
// effect; otherwise gates, subcategory routes and the function table apply
// in that order.
func (d *Dispatcher) use(ctx context.Context, at *attempt) (types.Outcome, error) {
	idx, it, err := at.item()
	if err != nil {
		return 0, err
	}
	tmpl, ok := at.catalog().Lookup(it.ID)
	if !ok {
		return 0, errs.InvalidItemState("You can't use that.")
	}

	// 1. Scripted callback.
	if tmpl.HasCallback() {
		if tmpl.OnUse.Invoke(it, at.actor()) {
			return turnEnds()
		}
		return 0, errs.InvalidItemState("")
	}

	// 2. Cooldown and charge gates. Spending happens in place; a failure
	// later in the attempt rolls it back with everything else.
	if it.Flags.Cooldown() {
		if at.w.Game.Hours < it.Count {
			return 0, errs.Insufficient(fmt.Sprintf("You can use it again at hour %d.", it.Count)).WithKey("use.useable_again_at")
		}
		idx = state.Separate(at.w, idx)
		it = &at.w.Items[idx]
		it.Count = at.w.Game.Hours + it.Param3
	}
	if it.Flags.Charged() {
		if it.Count <= 0 {
			return 0, errs.Insufficient("It's out of charge.").WithKey("use.out_of_charge")
		}
		idx = state.Separate(at.w, idx)
		it = &at.w.Items[idx]
		it.Count--
	}

	// 3. Subcategory and id routes.
	switch tmpl.Subcategory {
	case catalog.SubcategorySeed:
		return at.submenu(types.SubmenuPlant, 0, 0, idx)
	case catalog.SubcategoryBlending:
		return at.submenu(types.SubmenuBlending, 0, 0, idx)
	case catalog.SubcategoryBed:
		if at.w.Game.ActiveHours < 15 {
			return 0, errs.InvalidItemState("You don't feel sleepy yet.").WithKey("use.not_sleepy")
		}
		at.actor().Activity = types.Activity{Kind: types.ActivitySleep, Turns: 100, Item: idx}
		return turnEnds()
	}
	switch it.ID {
	case catalog.ItemGachaMachine, catalog.ItemGachaMachineGold:
		return at.submenu(types.SubmenuGacha, it.ID, 0, idx)
	case catalog.ItemCasinoTable1, catalog.ItemCasinoTable2, catalog.ItemCasinoTable3, catalog.ItemCasinoTable4:
		return at.submenu(types.SubmenuCasino, 1, 0, idx)
	}
	switch tmpl.Function {
	case catalog.FuncCookingTool, catalog.FuncSewingKit, catalog.FuncAlchemyKit, catalog.FuncForge:
		return at.submenu(types.SubmenuCrafting, tmpl.Function, 0, idx)
	}

	// 4. Living weapons.
	if it.Flags.Living() {
		return d.growLiving(ctx, at, idx)
	}

	// 5. Function table.
	effect, ok := useEffects[tmpl.Function]
	if !ok {
		return at.nothing()
	}
	return effect(ctx, at, idx)
}

// growLiving lets a living weapon that has absorbed enough blood pick a
// bonus. It never costs a turn.
func (d *Dispatcher) growLiving(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	it := &at.w.Items[idx]
	name := at.itemName(it)
	if it.Param2 < livingExp(it.Param1) {
		at.say("use.living.needs_more_blood", "The weapon needs more blood.", types.ToneNormal)
		return keep()
	}

	at.sayf("use.living.ready_to_grow", types.ToneNormal, "%s sucked enough blood and is ready to grow!", name)
	if it.Param1 >= 4+at.rnd(12) {
		at.say("use.living.weird", "But you sense something weird.", types.ToneAlert)
	}

	var offers []types.Enchantment
	var options []prompt.Option
	for range livingChoices {
		e := types.Enchantment{ID: enchantLivingMin + at.rnd(enchantLivingKinds), Power: (at.rnd(10) + 1) * 50}
		if e.ID == enchantRare && at.rnd(3) != 0 {
			continue
		}
		options = append(options, prompt.Option{ID: len(offers), Label: fmt.Sprintf("Enchantment #%d (power %d)", e.ID, e.Power)})
		offers = append(offers, e)
	}
	options = append(options, prompt.Option{ID: livingBonusChoiceID, Label: "Bonus +1"})

	choice, err := at.choose(ctx, "It shows you how it can grow:", options)
	if errs.IsCancelled(err) {
		return 0, errs.New(errs.CodeCancelled, fmt.Sprintf("%s is displeased.", name)).WithKey("use.living.displeased")
	}
	if err != nil {
		return 0, err
	}

	if choice == livingBonusChoiceID {
		it.Enhancement++
	} else {
		state.AddEnchantment(it, offers[choice])
	}
	at.sayf("use.living.pleased", types.ToneGood, "%s vibrates as if she is pleased.", name)
	if it.Param1 >= 4+at.rnd(12) {
		at.say("use.living.becoming_a_threat", "Its power is becoming a threat.", types.ToneAlert)
		state.AddEnchantment(it, types.Enchantment{ID: enchantThreat, Power: 50})
	}
	it.Param2 = 0
	it.Param1++
	at.emit("item_grew", map[string]any{"item": idx, "level": it.Param1})
	return keep()
}
