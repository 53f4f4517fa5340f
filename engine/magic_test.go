package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/turncore/engine/action"
	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/rng"
	"github.com/nathoo/turncore/types"
)

func newMagic(draws ...int) *Magic {
	cat := catalog.MustNew(catalog.Builtin()...)
	dice := rng.NewFixed(draws...)
	return &Magic{Catalog: cat, Dice: dice, Combat: &Combat{Catalog: cat, Dice: dice}}
}

func TestCast_Heal(t *testing.T) {
	tests := []struct {
		name  string
		curse types.CurseState
		hp    int
		want  int
	}{
		{"normal", types.CurseNone, 100, 200},
		{"blessed", types.CurseBlessed, 100, 250},
		{"cursed", types.CurseCursed, 100, 150},
		{"capped", types.CurseNone, 390, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorld()
			w.Actors[0].HP, w.Actors[0].MaxHP = tt.hp, 400
			var res types.Result

			did, err := newMagic().Cast(context.Background(), w, action.Spell{
				ID: 68, Power: 100, Caster: 0, Target: types.NoIndex, Curse: tt.curse, Source: action.SourceDrink,
			}, &res)
			require.NoError(t, err)
			assert.True(t, did)
			assert.Equal(t, tt.want, w.Actors[0].HP)
			require.Len(t, res.Events, 1)
			assert.Equal(t, "spell_cast", res.Events[0].Type)
		})
	}
}

func TestCast_UnknownFizzles(t *testing.T) {
	w := testWorld()
	var res types.Result

	did, err := newMagic().Cast(context.Background(), w, action.Spell{ID: 9999, Power: 100, Target: types.NoIndex, Source: action.SourceRead}, &res)
	require.NoError(t, err)
	assert.False(t, did)
	assert.Empty(t, res.Events)
}

func TestCast_EffectTableForUse(t *testing.T) {
	w := testWorld()
	w.Actors[0].HP = 1
	var res types.Result

	// 183 is an apple as an item but the heal effect as a use spell.
	did, err := newMagic().Cast(context.Background(), w, action.Spell{ID: action.SpellHeal, Power: 100, Target: types.NoIndex, Source: action.SourceUse}, &res)
	require.NoError(t, err)
	assert.True(t, did)
	assert.Equal(t, 20, w.Actors[0].HP)
}

func TestCast_ZapDefaultsToEnemy(t *testing.T) {
	w := testWorld()
	rat := addActor(w, types.MaxParty, types.Actor{Name: "rat", Level: 1, HP: 50, MaxHP: 50, Position: types.Point{X: 5, Y: 5}, EnemyID: types.NoIndex})
	w.Actors[0].EnemyID = rat
	var res types.Result

	did, err := newMagic().Cast(context.Background(), w, action.Spell{ID: 19, Power: 100, Target: types.NoIndex, Source: action.SourceZap}, &res)
	require.NoError(t, err)
	assert.True(t, did)
	assert.Equal(t, 30, w.Actors[rat].HP)
	assert.Equal(t, 20, w.Actors[0].HP)
}

func TestCast_StatusAndMolotov(t *testing.T) {
	w := testWorld()
	orc := addActor(w, types.MaxParty, types.Actor{Name: "orc", Level: 1, HP: 100, MaxHP: 100, Position: types.Point{X: 5, Y: 3}, EnemyID: types.NoIndex})
	var res types.Result
	m := newMagic(2, 3)

	did, err := m.Cast(context.Background(), w, action.Spell{ID: 71, Power: 100, Target: orc, Source: action.SourceThrown}, &res)
	require.NoError(t, err)
	assert.True(t, did)
	assert.Equal(t, 7, w.Actors[orc].Sleep)

	did, err = m.Cast(context.Background(), w, action.Spell{ID: catalog.ItemMolotov, Power: 100, Target: orc, Source: action.SourceThrown, Origin: types.Point{X: 5, Y: 3}}, &res)
	require.NoError(t, err)
	assert.True(t, did)
	require.Len(t, w.Mefs, 1)
	assert.Equal(t, types.MefFire, w.Mefs[0].Kind)
	assert.Equal(t, 8, w.Mefs[0].Turns)
	assert.Equal(t, 80, w.Actors[orc].HP)
}

func TestCast_LovePotionCalmsEnemy(t *testing.T) {
	w := testWorld()
	orc := addActor(w, types.MaxParty, types.Actor{Name: "orc", Level: 1, HP: 10, MaxHP: 10, Relationship: types.RelationHostile, EnemyID: 0})
	var res types.Result

	_, err := newMagic().Cast(context.Background(), w, action.Spell{ID: catalog.ItemLovePotion, Power: 100, Target: orc, Source: action.SourceThrown}, &res)
	require.NoError(t, err)
	assert.Equal(t, types.RelationNeutral, w.Actors[orc].Relationship)
	assert.Equal(t, types.NoIndex, w.Actors[orc].EnemyID)
}

func TestCast_Uncurse(t *testing.T) {
	cat := catalog.MustNew(catalog.Builtin()...)
	w := testWorld()
	cursed := give(w, cat, 0, 1, 1)
	doomed := give(w, cat, 0, 2, 1)
	w.Items[cursed].Curse = types.CurseCursed
	w.Items[doomed].Curse = types.CurseDoomed
	var res types.Result

	did, err := newMagic().Cast(context.Background(), w, action.Spell{ID: action.SpellUncurse, Power: 100, Target: types.NoIndex, Source: action.SourceUse}, &res)
	require.NoError(t, err)
	assert.True(t, did)
	assert.Equal(t, types.CurseNone, w.Items[cursed].Curse)
	assert.Equal(t, types.CurseDoomed, w.Items[doomed].Curse, "doom needs a blessed spell")
}

func TestCast_EnchantWeapon(t *testing.T) {
	cat := catalog.MustNew(catalog.Builtin()...)
	w := testWorld()
	sword := give(w, cat, 0, 1, 1)
	var res types.Result

	did, err := newMagic().Cast(context.Background(), w, action.Spell{ID: action.SpellEnchantWeapon, Power: 100, Target: types.NoIndex, Source: action.SourceUse}, &res)
	require.NoError(t, err)
	assert.False(t, did, "nothing equipped")

	w.Items[sword].Equipped = true
	did, err = newMagic().Cast(context.Background(), w, action.Spell{ID: action.SpellEnchantWeapon, Power: 100, Target: types.NoIndex, Source: action.SourceUse}, &res)
	require.NoError(t, err)
	assert.True(t, did)
	assert.Equal(t, 1, w.Items[sword].Enhancement)
}
