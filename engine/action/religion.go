package action

import (
	"context"
	"strings"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Gods in the order altars number them. An altar with Param1 0 is
// unclaimed.
var gods = []string{"", "mani", "lulwy", "itzpalt", "ehekatl", "opatos", "jure", "kumiromi"}

// Prayer thresholds. A god answers once both are reached.
const (
	prayerAnswered = 1000
	pietyAnswered  = 200
	convertPrayer  = 500
)

func godOf(n int) string {
	if n < 0 || n >= len(gods) {
		return ""
	}
	return gods[n]
}

func godNumber(god string) int {
	for i, g := range gods {
		if g == god {
			return i
		}
	}
	return 0
}

func godTitle(god string) string {
	if god == "" {
		return "nobody"
	}
	return strings.ToUpper(god[:1]) + god[1:]
}

// altarHere returns the altar under the actor, or NoIndex.
func (at *attempt) altarHere() int {
	for _, i := range state.ItemsAt(at.w, at.actor().Position) {
		if at.catalog().Subcategory(at.w.Items[i].ID) == catalog.SubcategoryAltar {
			return i
		}
	}
	return types.NoIndex
}

// pray asks the actor's god for help. Praying on another god's altar
// offers to convert instead.
func (d *Dispatcher) pray(ctx context.Context, at *attempt) (types.Outcome, error) {
	a := at.actor()
	if altar := at.altarHere(); altar != types.NoIndex {
		if g := godOf(at.w.Items[altar].Param1); g != "" && g != a.God {
			return at.convert(ctx, g)
		}
	}
	if a.God == "" {
		at.say("action.pray.do_not_believe", "You don't believe in any god.", types.ToneNormal)
		return turnEnds()
	}
	if err := at.confirm(ctx, "Really pray to "+godTitle(a.God)+"?"); err != nil {
		return 0, err
	}
	if a.Piety < pietyAnswered || a.Prayer < prayerAnswered {
		at.sayf("action.pray.indifferent", types.ToneNormal, "%s seems indifferent to you.", godTitle(a.God))
		return turnEnds()
	}
	a.Prayer = 0
	a.HP = a.MaxHP
	a.Confused, a.Blind, a.Dimmed, a.Drunk, a.Furious = 0, 0, 0, 0, 0
	at.sayf("action.pray.answered", types.ToneDivine, "%s answers your prayer. You feel refreshed.", godTitle(a.God))
	at.emit("prayer_answered", map[string]any{"god": a.God})
	return turnEnds()
}

// convert switches the actor's faith to god. The old god's favour is lost.
func (at *attempt) convert(ctx context.Context, god string) (types.Outcome, error) {
	a := at.actor()
	if err := at.confirm(ctx, "Do you want to believe in "+godTitle(god)+"?"); err != nil {
		return 0, err
	}
	if a.God != "" {
		at.sayf("action.pray.betray", types.ToneBad, "%s is enraged.", godTitle(a.God))
	}
	a.God = god
	a.Piety = 0
	a.Prayer = convertPrayer
	at.sayf("action.pray.believe", types.ToneDivine, "You believe in %s.", godTitle(god))
	at.emit("god_changed", map[string]any{"god": god})
	return turnEnds()
}

// offer sacrifices the active item on the altar underfoot. Offering on
// another god's altar tries to take it over.
func (d *Dispatcher) offer(ctx context.Context, at *attempt) (types.Outcome, error) {
	idx, it, err := at.item()
	if err != nil {
		return 0, err
	}
	a := at.actor()
	if a.God == "" {
		at.say("action.offer.do_not_believe", "You don't believe in any god.", types.ToneNormal)
		return turnEnds()
	}
	altar := at.altarHere()
	if altar == types.NoIndex {
		return 0, errs.InvalidTarget("There is no altar here.").WithKey("action.offer.no_altar")
	}
	if altar == idx {
		return 0, errs.InvalidItemState("You can't offer the altar itself.").WithKey("action.offer.altar")
	}

	worth := 25
	if it.ID == catalog.ItemCorpse {
		worth = min(max(it.Weight/200, 1), 50)
		if it.Param3 < 0 {
			worth = 1
		}
	}
	name := at.itemName(it)
	at.sayf("action.offer.execute", types.ToneNormal, "You put %s on the altar and offer it to %s.", name, godTitle(a.God))

	al := &at.w.Items[altar]
	switch owner := godOf(al.Param1); {
	case owner == a.God:
		at.offerResult(worth, name)
		a.Piety += worth
		a.Prayer += worth * 7
	case owner == "" || at.rnd(17) <= worth:
		if owner == "" {
			at.sayf("action.offer.claim", types.ToneNormal, "%s claims the empty altar.", godTitle(a.God))
		} else {
			at.sayf("action.offer.take_over.attempt", types.ToneNormal, "%s and %s fight over the altar.", godTitle(a.God), godTitle(owner))
			at.say("action.offer.take_over.shadow", "The shadow of the old god fades away.", types.ToneNormal)
		}
		a.Piety += worth * 5
		a.Prayer += worth * 30
		al.Param1 = godNumber(a.God)
		at.sayf("action.offer.take_over.succeed", types.ToneDivine, "%s takes over the altar.", godTitle(a.God))
		at.emit("altar_claimed", map[string]any{"god": a.God, "altar": altar})
	default:
		at.sayf("action.offer.take_over.attempt", types.ToneNormal, "%s and %s fight over the altar.", godTitle(a.God), godTitle(owner))
		at.sayf("action.offer.take_over.fail", types.ToneBad, "%s keeps the altar.", godTitle(owner))
		at.curseEquipment(owner)
	}
	at.consume(idx, 1)
	return turnEnds()
}

func (at *attempt) offerResult(worth int, name string) {
	switch {
	case worth >= 15:
		at.sayf("action.offer.result.best", types.ToneGood, "%s shines all around and disappears.", name)
	case worth >= 10:
		at.sayf("action.offer.result.good", types.ToneGood, "%s glitters and disappears.", name)
	case worth >= 5:
		at.sayf("action.offer.result.okay", types.ToneGood, "%s shines for a moment and disappears.", name)
	default:
		at.sayf("action.offer.result.poor", types.ToneNormal, "%s disappears.", name)
	}
}

// curseEquipment is the wrath of a god defending its altar: one random
// piece of the actor's equipment is cursed.
func (at *attempt) curseEquipment(god string) {
	var worn []int
	for _, i := range state.Inventory(at.w, at.cmd.Actor) {
		if at.w.Items[i].Equipped && !at.w.Items[i].Curse.IsCursed() {
			worn = append(worn, i)
		}
	}
	if len(worn) == 0 {
		return
	}
	it := &at.w.Items[worn[at.rnd(len(worn))]]
	it.Curse = types.CurseCursed
	at.sayf("action.offer.wrath", types.ToneBad, "%s curses your %s.", godTitle(god), at.itemName(it))
}
