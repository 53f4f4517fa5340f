package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/turncore/types"
)

func TestNew_LookupInserted(t *testing.T) {
	c, err := New(
		Template{ID: 10, Name: "apple", Category: CategoryFood},
		Template{ID: 20, Name: "torch", Category: CategoryTool, Function: FuncTorch},
	)
	require.NoError(t, err)

	got, ok := c.Lookup(20)
	require.True(t, ok)
	assert.Equal(t, "torch", got.Name)
	assert.Equal(t, FuncTorch, got.Function)

	_, ok = c.Lookup(30)
	assert.False(t, ok, "never-inserted id must be absent")
	assert.Equal(t, 2, c.Len())
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New(
		Template{ID: 7, Name: "first", Category: CategoryTool},
		Template{ID: 7, Name: "second", Category: CategoryTool},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate item id 7")
}

func TestNew_InvalidTemplate(t *testing.T) {
	tests := []struct {
		name string
		tmpl Template
	}{
		{name: "zero id", tmpl: Template{ID: 0, Name: "x", Category: CategoryTool}},
		{name: "missing name", tmpl: Template{ID: 1, Category: CategoryTool}},
		{name: "missing category", tmpl: Template{ID: 1, Name: "x"}},
		{name: "negative weight", tmpl: Template{ID: 1, Name: "x", Category: CategoryTool, Weight: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tmpl)
			assert.Error(t, err)
		})
	}
}

func TestAll_SortedByID(t *testing.T) {
	c := MustNew(
		Template{ID: 3, Name: "c", Category: CategoryTool},
		Template{ID: 1, Name: "a", Category: CategoryTool},
		Template{ID: 2, Name: "b", Category: CategoryPotion},
	)

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})

	potions := c.InCategory(CategoryPotion)
	require.Len(t, potions, 1)
	assert.Equal(t, 2, potions[0].ID)
}

func TestTemplate_Callback(t *testing.T) {
	called := false
	tmpl := Template{ID: 1, Name: "x", Category: CategoryTool, OnUse: CallbackFunc(func(item *types.Item, user *types.Actor) bool {
		called = true
		return item.ID == 1 && user.Name == "you"
	})}
	require.True(t, tmpl.HasCallback())

	item := tmpl.Instance(1)
	assert.True(t, tmpl.OnUse.Invoke(&item, &types.Actor{Name: "you"}))
	assert.True(t, called)
	assert.False(t, Template{}.HasCallback())
}

func TestTemplate_Instance(t *testing.T) {
	tmpl := Template{ID: 9, Name: "rod", Category: CategoryRod, ChargeLevel: 4, Weight: 800, Param1: 2, Flags: types.FlagCharged}
	item := tmpl.Instance(3)

	assert.Equal(t, 9, item.ID)
	assert.Equal(t, 3, item.Number)
	assert.Equal(t, 4, item.Count)
	assert.Equal(t, 2, item.Param1)
	assert.Equal(t, types.OwnerGround, item.Owner)
	assert.True(t, item.Flags.Charged())
}

func TestBuiltin_Valid(t *testing.T) {
	c, err := New(Builtin()...)
	require.NoError(t, err)

	for _, id := range []int{ItemMonsterBall, ItemSnow, ItemHolyWell, ItemShopTrunk, ItemTomato} {
		_, ok := c.Lookup(id)
		assert.True(t, ok, "builtin must define item %d", id)
	}
	assert.Equal(t, SubcategoryWell, c.Subcategory(ItemWell))
	assert.Equal(t, CategoryPotion, c.Category(ItemSnow))
	assert.Equal(t, "item #99999", c.Name(99999))
}
