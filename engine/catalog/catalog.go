// Package catalog holds the read-only item definition table. It is built
// once at startup and consulted by identifier for the rest of the session.
package catalog

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/nathoo/turncore/types"
)

// Categories and subcategories the handlers branch on.
const (
	CategoryMeleeWeapon  = 10000
	CategoryArmor        = 12000
	CategoryRangedWeapon = 24000
	CategoryAmmo         = 25000
	CategoryPotion       = 52000
	CategoryScroll       = 53000
	CategorySpellbook    = 54000
	CategoryRod          = 56000
	CategoryFood         = 57000
	CategoryTool         = 59000
	CategoryFurniture    = 60000
	CategoryContainer    = 72000
	CategoryGold         = 68000
	CategoryOre          = 77000

	SubcategorySeed     = 58500
	SubcategoryBlending = 59500
	SubcategoryWell     = 60001
	SubcategoryAltar    = 60002
	SubcategoryBed      = 60004
)

// Callback is a scripted replacement for an item's built-in use effect.
// Invoke receives live handles into the world and reports success.
type Callback interface {
	Invoke(item *types.Item, user *types.Actor) bool
}

// CallbackFunc adapts a plain function to Callback.
type CallbackFunc func(item *types.Item, user *types.Actor) bool

// Invoke calls f.
func (f CallbackFunc) Invoke(item *types.Item, user *types.Actor) bool {
	return f(item, user)
}

// Template is the immutable definition of one item kind.
type Template struct {
	ID          int    `validate:"gt=0"`
	Name        string `validate:"required"`
	Image       int    `validate:"gte=0"`
	Value       int    `validate:"gte=0"`
	Weight      int    `validate:"gte=0"`
	DiceX       int    `validate:"gte=0"`
	DiceY       int    `validate:"gte=0"`
	HitBonus    int
	DamageBonus int
	PV          int
	DV          int
	Material    int `validate:"gte=0"`
	ChargeLevel int `validate:"gte=0"`
	Category    int `validate:"gt=0"`
	Subcategory int `validate:"gte=0"`
	Rarity      int `validate:"gte=0"`
	Level       int `validate:"gte=0"`
	Function    int `validate:"gte=0"`
	Param1      int
	Param2      int
	Param3      int
	Flags       types.ItemFlags `validate:"-"`
	OnUse       Callback        `validate:"-"`
}

// HasCallback reports whether using the item runs a script instead of the
// built-in effect.
func (t Template) HasCallback() bool {
	return t.OnUse != nil
}

// Catalog maps item identifiers to templates.
type Catalog struct {
	byID map[int]Template
}

var validate = validator.New()

// New builds a catalog. It fails on an invalid template or when two
// templates share an identifier.
func New(templates ...Template) (*Catalog, error) {
	c := &Catalog{byID: make(map[int]Template, len(templates))}
	for _, t := range templates {
		if err := validate.Struct(t); err != nil {
			return nil, fmt.Errorf("item %d: %w", t.ID, err)
		}
		if prev, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %d (%q and %q)", t.ID, prev.Name, t.Name)
		}
		c.byID[t.ID] = t
	}
	return c, nil
}

// MustNew is New for fixed definition sets; it panics on error.
func MustNew(templates ...Template) *Catalog {
	c, err := New(templates...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the template for id.
func (c *Catalog) Lookup(id int) (Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// All returns every template ordered by identifier.
func (c *Catalog) All() []Template {
	out := make([]Template, 0, len(c.byID))
	for _, t := range c.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InCategory returns the templates of a category ordered by identifier.
func (c *Catalog) InCategory(category int) []Template {
	var out []Template
	for _, t := range c.All() {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Category returns the category of id, or 0 when id is unknown.
func (c *Catalog) Category(id int) int {
	return c.byID[id].Category
}

// Subcategory returns the subcategory of id, or 0 when id is unknown.
func (c *Catalog) Subcategory(id int) int {
	return c.byID[id].Subcategory
}

// Name returns the display name of id.
func (c *Catalog) Name(id int) string {
	if t, ok := c.byID[id]; ok {
		return t.Name
	}
	return fmt.Sprintf("item #%d", id)
}

// Instance creates a live item of template t with its default attributes.
func (t Template) Instance(number int) types.Item {
	return types.Item{
		ID:       t.ID,
		Number:   number,
		Owner:    types.OwnerGround,
		Param1:   t.Param1,
		Param2:   t.Param2,
		Param3:   t.Param3,
		Count:    t.ChargeLevel,
		Flags:    t.Flags,
		Weight:   t.Weight,
		Value:    t.Value,
		Material: t.Material,
		Image:    t.Image,
	}
}
