package action

import (
	"context"

	"github.com/nathoo/turncore/engine/movement"
	"github.com/nathoo/turncore/types"
)

// Source tells the magic collaborator how a spell was set off.
type Source string

const (
	SourceUse    Source = "use"
	SourceDrink  Source = "drink"
	SourceRead   Source = "read"
	SourceZap    Source = "zap"
	SourceThrown Source = "thrown"
	SourceCast   Source = "cast"
)

// Spell is one request to the magic collaborator. For drink, read, zap and
// thrown sources ID is the item template; for use and cast it is an
// effect id.
type Spell struct {
	ID     int
	Power  int
	Caster int
	Target int
	Curse  types.CurseState
	Item   int // item index the spell came from, or NoIndex
	Source Source
	Origin types.Point
}

// Magic resolves spell effects. It reports whether the spell did anything.
type Magic interface {
	Cast(ctx context.Context, w *types.World, s Spell, r *types.Result) (bool, error)
}

// Ranged-attack readiness failures reported by Combat.CanFire.
const (
	FireReady     = 0
	FireNoWeapon  = -1
	FireNoAmmo    = -2
	FireWrongAmmo = -3
)

// Combat resolves attacks and damage. The numeric model is its own.
type Combat interface {
	movement.Combat
	CanFire(w *types.World, attacker int) int
	Ranged(ctx context.Context, w *types.World, attacker, defender int, r *types.Result) error
	Damage(ctx context.Context, w *types.World, victim, amount int, cause string, r *types.Result) error
}

// Spawner creates actors from templates.
type Spawner interface {
	// Spawn places a new actor near p. Allies take a free party slot.
	Spawn(ctx context.Context, w *types.World, templateID, level int, ally bool, p types.Point) (int, error)
}

// Looter fills opened boxes.
type Looter interface {
	OpenBox(ctx context.Context, w *types.World, opener, box int, r *types.Result) error
	OpenGift(ctx context.Context, w *types.World, opener, box int, r *types.Result) error
}

// ContainerStore persists the contents of numbered storage containers.
type ContainerStore interface {
	// Load returns the saved contents of file. ok is false when nothing
	// was ever saved under it.
	Load(ctx context.Context, file int) (items []types.Item, ok bool, err error)
	Save(ctx context.Context, file int, items []types.Item) error
}

// ContainerMenu lets the player move items between their inventory and
// the open container, whose items are owned by types.OwnerContainer.
type ContainerMenu interface {
	Browse(ctx context.Context, w *types.World, actor, file int, r *types.Result) error
}
