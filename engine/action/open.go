package action

import (
	"context"
	"slices"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Storage files with placement rules.
const (
	FileInheritance = 3
	FileHomeA       = 4
	FileShop        = 5
	FileHomeB       = 6
)

// MoyerTemplate is the merchant the fire giant goes after when released.
const MoyerTemplate = 203

// coolerBoxWeight is added to the contents of a cooler box.
const coolerBoxWeight = 2500

func (d *Dispatcher) open(ctx context.Context, at *attempt) (types.Outcome, error) {
	idx, it, err := at.item()
	if err != nil {
		return 0, err
	}

	switch it.ID {
	case catalog.ItemShopTrunk:
		at.player().Karma -= 10
		return at.submenu(types.SubmenuShopTrunk, 0, it.Param1, idx)
	case catalog.ItemTaxBox:
		return at.submenu(types.SubmenuContainer, 0, 0, idx)
	case catalog.ItemSalaryChest:
		return at.submenu(types.SubmenuContainer, 2, 0, idx)
	case catalog.ItemRecipeHolder:
		return at.submenu(types.SubmenuContainer, 8, 0, idx)
	case catalog.ItemShackle:
		return at.openShackle()
	}
	if it.Count != 0 {
		return d.openStorage(ctx, at, idx)
	}

	if it.Param1 == 0 {
		at.say("action.open.empty", "It's empty!", types.ToneNormal)
		return turnEnds()
	}
	idx = state.Separate(at.w, idx)
	if it := &at.w.Items[idx]; it.Param2 != 0 && !at.unlock(it) {
		return turnEnds()
	}

	looter := at.d.deps.Looter
	if at.w.Items[idx].ID == catalog.ItemNewYearGift {
		err = looter.OpenGift(ctx, at.w, at.cmd.Actor, idx, at.res)
	} else {
		err = looter.OpenBox(ctx, at.w, at.cmd.Actor, idx, at.res)
	}
	if err != nil {
		return 0, err
	}
	at.w.Items[idx].Param1 = 0
	return turnEnds()
}

// unlock picks a box lock of difficulty Param2 and reports success.
func (at *attempt) unlock(it *types.Item) bool {
	skill := state.Skill(at.actor(), types.SkillLockpick)
	if at.rnd(skill*2+20) < it.Param2 {
		at.say("action.unlock.fail", "You fail to unlock it.", types.ToneNormal)
		return false
	}
	at.say("action.unlock.success", "You successfully unlock it.", types.ToneGood)
	it.Param2 = 0
	return true
}

func (at *attempt) openShackle() (types.Outcome, error) {
	at.say("action.open.shackle.text", "You unlock the shackle.", types.ToneNormal)
	g := &at.w.Game
	if at.w.Map.ID != types.MapIDNoyel || at.w.Map.DungeonLevel != 1 || g.ReleasedFireGiant {
		return turnEnds()
	}
	if !state.Alive(at.w, g.FireGiant) {
		return turnEnds()
	}
	if tc := state.FindActor(at.w, MoyerTemplate); tc != types.NoIndex && tc != 0 {
		at.say("action.open.shackle.dialog", "Moyer yells, \"You idiot!\"", types.ToneDialog)
		giant := &at.w.Actors[g.FireGiant]
		giant.EnemyID = tc
		giant.Hate = 1000
	}
	g.ReleasedFireGiant = true
	return turnEnds()
}

// openStorage loads a persisted container into the world, lets the player
// move items, then saves whatever is left inside. Nothing reaches the store
// unless the whole attempt succeeds up to the save, and an untouched
// container is not written back.
func (d *Dispatcher) openStorage(ctx context.Context, at *attempt, idx int) (types.Outcome, error) {
	box := at.w.Items[idx]
	file := box.Count
	switch file {
	case FileInheritance, FileHomeA, FileHomeB:
		if at.w.Map.ID != types.MapIDYourHome {
			return 0, errs.Blocked("You can only use it in your home.").WithKey("action.open.only_in_home")
		}
	case FileShop:
		if at.w.Map.ID != types.MapIDShop {
			return 0, errs.Blocked("You can only use it in your shop.").WithKey("action.open.only_in_shop")
		}
	}

	stored, _, err := d.deps.Containers.Load(ctx, file)
	if err != nil {
		return 0, errs.Wrapf(err, "storage %d could not be loaded", file)
	}
	for i := range stored {
		stored[i].Owner = types.OwnerContainer
		stored[i].Equipped = false
		state.AddItem(at.w, stored[i])
	}
	if file == FileInheritance {
		at.sayf("ui.inv.take.can_claim_more", types.ToneNormal, "You can claim %d more heirloom(s).", at.w.Game.RightsToSucceed)
	}

	if err := d.deps.ContainerMenu.Browse(ctx, at.w, at.cmd.Actor, file, at.res); err != nil {
		return 0, err
	}

	var kept []types.Item
	weight := 0
	for i := range at.w.Items {
		it := &at.w.Items[i]
		if it.Owner != types.OwnerContainer || it.Number == 0 {
			continue
		}
		kept = append(kept, *it)
		weight += it.Weight * it.Number
		it.Number = 0
	}
	if !sameContents(stored, kept) {
		if err := d.deps.Containers.Save(ctx, file, kept); err != nil {
			return 0, errs.Wrapf(err, "storage %d could not be saved", file)
		}
	}
	if box.ID == catalog.ItemCoolerBox {
		at.w.Items[idx].Weight = weight + coolerBoxWeight
	}
	return turnEnds()
}

// sameContents reports whether two container listings hold the same
// stacks in the same order.
func sameContents(a, b []types.Item) bool {
	return slices.EqualFunc(a, b, func(x, y types.Item) bool {
		return x.Number == y.Number && state.Stackable(&x, &y)
	})
}
