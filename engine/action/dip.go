package action

import (
	"context"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Categories below this are equipment.
const equipmentCategoryLimit = 50000

// rottenImage is the picture of spoiled food.
const rottenImage = 336

// Well limits.
const (
	wellDryAt       = 20
	wellExhaustedAt = -5
	naturalPotionLv = 20
)

// dip applies the tool liquid (cmd.Tool) to the active item.
func (d *Dispatcher) dip(ctx context.Context, at *attempt) (types.Outcome, error) {
	idx, it, err := at.item()
	if err != nil {
		return 0, err
	}
	dipIdx, liquid, err := at.itemAt(at.cmd.Tool)
	if err != nil {
		return 0, err
	}
	if idx == dipIdx {
		return 0, errs.InvalidTarget("You can't dip it into itself.").WithKey("action.dip.self")
	}

	if liquid.ID == catalog.ItemBait {
		bait := liquid.Param1
		at.consume(dipIdx, 1)
		idx = state.Separate(at.w, idx)
		rod := &at.w.Items[idx]
		at.sayf("action.dip.result.bait_attachment", types.ToneNormal, "You bait %s with %s.", at.itemName(rod), at.catalog().Name(catalog.ItemBait))
		if rod.Param4 == bait {
			rod.Count += at.rnd(10) + 15
		} else {
			rod.Count = at.rnd(10) + 15
			rod.Param4 = bait
		}
		return turnEnds()
	}

	if at.catalog().Category(liquid.ID) == catalog.CategoryPotion && at.catalog().Subcategory(it.ID) == catalog.SubcategoryWell {
		return at.dipWell(idx, dipIdx)
	}

	cat := at.catalog().Category(it.ID)
	l := *liquid
	switch l.ID {
	case catalog.ItemLovePotion, catalog.ItemPoison:
		if cat != catalog.CategoryFood {
			break
		}
		at.consume(dipIdx, 1)
		idx = state.Separate(at.w, idx)
		food := &at.w.Items[idx]
		at.sayf("action.dip.result.love_food.made", types.ToneNormal, "You make %s out of %s.", at.itemName(food), at.itemName(&l))
		if l.Curse.IsCursed() {
			at.curseDip(idx)
		}
		if l.ID == catalog.ItemLovePotion {
			at.say("action.dip.result.love_food.grin", "You grin.", types.ToneNormal)
			at.w.Items[idx].Flags = at.w.Items[idx].Flags.With(types.FlagAphrodisiac, true)
		} else {
			at.say("action.dip.result.love_food.guilty", "You feel guilty...", types.ToneNormal)
			at.w.Items[idx].Flags = at.w.Items[idx].Flags.With(types.FlagPoisoned, true)
		}
		return turnEnds()

	case catalog.ItemDye:
		if l.Curse != types.CurseBlessed {
			idx = state.Separate(at.w, idx)
		}
		at.consume(dipIdx, 1)
		at.w.Items[idx].Color = l.Color
		at.sayf("action.dip.result.dyeing", types.ToneNormal, "You dye %s.", at.itemName(&at.w.Items[idx]))
		if at.w.Items[idx].Equipped {
			at.emit("appearance_changed", map[string]any{"actor": at.cmd.Actor})
		}
		return turnEnds()

	case catalog.ItemAcidproofLiquid, catalog.ItemFireproofLiquid:
		if l.Curse != types.CurseBlessed {
			idx = state.Separate(at.w, idx)
		}
		target := &at.w.Items[idx]
		at.sayf("action.dip.result.put_on", types.ToneNormal, "You put %s on %s.", at.itemName(&l), at.itemName(target))
		switch {
		case l.Curse.IsCursed():
			at.curseDip(idx)
		case l.ID == catalog.ItemAcidproofLiquid:
			target.Flags = target.Flags.With(types.FlagAcidproof, true)
			at.sayf("action.dip.result.gains_acidproof", types.ToneGood, "%s gains acidproof.", at.itemName(target))
		case target.ID == catalog.ItemFireproofBlanket:
			at.say("action.dip.result.good_idea_but", "A good idea! But...", types.ToneNormal)
		default:
			target.Flags = target.Flags.With(types.FlagFireproof, true)
			at.sayf("action.dip.result.gains_fireproof", types.ToneGood, "%s gains fireproof.", at.itemName(target))
		}
		at.consume(dipIdx, 1)
		return turnEnds()

	case catalog.ItemWater:
		at.consume(dipIdx, 1)
		target := &at.w.Items[idx]
		switch {
		case l.Curse == types.CurseBlessed:
			target.Curse = types.CurseBlessed
			at.sayf("action.dip.result.becomes_blessed", types.ToneGood, "%s shines silvery.", at.itemName(target))
			return turnEnds()
		case l.Curse.IsCursed():
			target.Curse = types.CurseCursed
			at.sayf("action.dip.result.becomes_cursed", types.ToneBad, "%s is wrapped by a dark aura.", at.itemName(target))
			return turnEnds()
		}
	}
	return at.nothing()
}

// dipWell pours a potion into a well, or draws from it with an empty
// bottle.
func (at *attempt) dipWell(wellIdx, dipIdx int) (types.Outcome, error) {
	wellIdx = state.Separate(at.w, wellIdx)
	liquidID := at.w.Items[dipIdx].ID
	at.consume(dipIdx, 1)
	well := &at.w.Items[wellIdx]
	name := at.itemName(well)

	if liquidID != catalog.ItemEmptyBottle {
		at.sayf("action.dip.execute", types.ToneNormal, "You dip %s into %s.", at.catalog().Name(liquidID), name)
		switch {
		case well.ID == catalog.ItemHolyWell:
			at.say("action.dip.result.holy_well_polluted", "The holy well is polluted.", types.ToneBad)
		case well.Param3 >= wellDryAt:
			at.sayf("action.dip.result.well_dry", types.ToneNormal, "%s is completely dry.", name)
		default:
			at.sayf("action.dip.result.well_refilled", types.ToneNormal, "%s is refilled.", name)
			if liquidID == catalog.ItemSnow {
				at.say("action.dip.result.snow_melts", "Snow melts.", types.ToneNormal)
			} else {
				well.Param1 += at.rnd(3)
			}
		}
		return turnEnds()
	}

	g := &at.w.Game
	if well.Param1 < wellExhaustedAt || well.Param3 >= wellDryAt || (well.ID == catalog.ItemHolyWell && g.HolyWellCount <= 0) {
		at.sayf("action.dip.result.natural_potion_dry", types.ToneNormal, "%s is dry.", name)
		at.say("action.dip.result.natural_potion_drop", "Ops! You drop the empty bottle into the well...", types.ToneNormal)
		return turnEnds()
	}

	var (
		got int
		err error
	)
	if well.ID == catalog.ItemHolyWell {
		g.HolyWellCount--
		got, err = at.create(catalog.ItemWater, at.cmd.Actor, types.Point{}, 1)
		if err != nil {
			return 0, err
		}
		at.w.Items[got].Curse = types.CurseBlessed
	} else {
		well.Param1 -= 3
		potion, ok := at.randomTemplate(catalog.CategoryPotion, naturalPotionLv)
		if !ok {
			return at.nothing()
		}
		got, err = at.create(potion.ID, at.cmd.Actor, types.Point{}, 1)
		if err != nil {
			return 0, err
		}
	}
	at.say("action.dip.result.natural_potion", "You draw water from the well.", types.ToneNormal)
	at.sayf("action.dip.you_get", types.ToneNormal, "You get %s.", at.itemName(&at.w.Items[got]))
	state.StackItem(at.w, got)
	return turnEnds()
}

// curseDip is the shared side effect of a cursed liquid applied to an item.
func (at *attempt) curseDip(idx int) {
	it := &at.w.Items[idx]
	cat := at.catalog().Category(it.ID)
	switch {
	case cat == catalog.CategoryFood:
		it.Param3 = -1
		it.Image = rottenImage
		at.sayf("action.dip.rots", types.ToneBad, "%s rots.", at.itemName(it))
	case cat < equipmentCategoryLimit:
		it.Enhancement--
		at.sayf("action.dip.rusts", types.ToneBad, "%s rusts.", at.itemName(it))
	default:
		at.say("common.nothing_happens", "Nothing happens...", types.ToneNormal)
	}
}

// randomTemplate picks a generated template of a category up to level lv.
func (at *attempt) randomTemplate(category, lv int) (catalog.Template, bool) {
	var pool []catalog.Template
	for _, t := range at.catalog().InCategory(category) {
		if t.Rarity > 0 && t.Level <= lv {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		return catalog.Template{}, false
	}
	return pool[at.rnd(len(pool))], true
}
