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

// ammoFor lists the ammo each ranged weapon accepts. Weapons missing from
// the table take any ammo.
var ammoFor = map[int]int{
	58: 61, // long bow: arrows
}

// Combat is the default combat collaborator. Damage is
// max(1, roll(1d6) + attack - defense) as in the classic rules.
type Combat struct {
	Catalog *catalog.Catalog
	Dice    rng.Source
}

// DamageCalc computes damage: max(1, roll(1d6) + attack - defense).
// Returns (damage, dieRoll).
func DamageCalc(attack, defense int, dice rng.Source) (damage, roll int) {
	roll = dice.Rnd(6) + 1
	damage = max(1, roll+attack-defense)
	return damage, roll
}

func attackOf(a *types.Actor) int  { return a.Level/2 + 1 }
func defenseOf(a *types.Actor) int { return a.Level / 4 }

// Melee runs one exchange of blows.
func (c *Combat) Melee(ctx context.Context, w *types.World, attacker, defender int, r *types.Result) error {
	a, d := &w.Actors[attacker], &w.Actors[defender]
	provoke(w, attacker, defender)

	damage, roll := DamageCalc(attackOf(a), defenseOf(d), c.Dice)
	if attacker == 0 {
		r.Say("combat.melee.player", fmt.Sprintf("You strike the %s! [%d]", d.Name, roll), types.ToneNormal)
	} else {
		r.Say("combat.melee.other", fmt.Sprintf("The %s attacks %s! [%d]", a.Name, d.Name, roll), types.ToneNormal)
	}
	return c.Damage(ctx, w, defender, damage, "melee", r)
}

// CanFire reports whether attacker is ready to shoot.
func (c *Combat) CanFire(w *types.World, attacker int) int {
	a := &w.Actors[attacker]
	if !state.ValidItem(w, a.Ranged) {
		return action.FireNoWeapon
	}
	if !state.ValidItem(w, a.Ammo) {
		return action.FireNoAmmo
	}
	if want, ok := ammoFor[w.Items[a.Ranged].ID]; ok && w.Items[a.Ammo].ID != want {
		return action.FireWrongAmmo
	}
	return action.FireReady
}

// Ranged shoots one piece of ammo at defender.
func (c *Combat) Ranged(ctx context.Context, w *types.World, attacker, defender int, r *types.Result) error {
	a, d := &w.Actors[attacker], &w.Actors[defender]
	weapon, _ := c.Catalog.Lookup(w.Items[a.Ranged].ID)
	state.ModifyNumber(w, a.Ammo, -1)
	provoke(w, attacker, defender)

	damage := 0
	for range max(weapon.DiceX, 1) {
		damage += c.Dice.Rnd(max(weapon.DiceY, 1)) + 1
	}
	damage = max(1, damage+weapon.DamageBonus-defenseOf(d))
	r.Say("combat.ranged", fmt.Sprintf("%s shoots the %s.", a.Name, d.Name), types.ToneNormal)
	return c.Damage(ctx, w, defender, damage, "ranged", r)
}

// Damage lowers victim's hit points and handles death.
func (c *Combat) Damage(_ context.Context, w *types.World, victim, amount int, cause string, r *types.Result) error {
	v := &w.Actors[victim]
	if !v.Alive {
		return nil
	}
	v.HP -= amount
	r.Say("combat.damage", fmt.Sprintf("%s takes %d damage.", v.Name, amount), types.ToneBad)
	if v.HP > 0 {
		return nil
	}

	r.Emit("actor_died", map[string]any{"actor": victim, "cause": cause})
	if victim == 0 {
		v.HP = 0
		v.Alive = false
		r.Say("combat.death.player", "You die...", types.ToneAlert)
		return nil
	}
	r.Say("combat.death", fmt.Sprintf("The %s is killed.", v.Name), types.ToneGood)
	state.Vanquish(w, victim)
	return nil
}

// provoke turns a non-party defender against its attacker.
func provoke(w *types.World, attacker, defender int) {
	if state.IsParty(defender) {
		return
	}
	d := &w.Actors[defender]
	if state.IsParty(attacker) && d.Relationship > types.RelationHostile {
		d.Relationship = types.RelationHostile
	}
	d.EnemyID = attacker
}
