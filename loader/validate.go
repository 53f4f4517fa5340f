package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// ValidationError collects every problem found in loaded content.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) add(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// validate checks that the compiled world is consistent with its map.
func validate(c *Content) error {
	ve := &ValidationError{}
	w := c.World

	if c.Title == "" {
		ve.add("Game.title is required")
	}

	occupied := map[types.Point]string{}
	for i := range w.Actors {
		a := &w.Actors[i]
		if !a.Alive {
			continue
		}
		switch {
		case !state.InBounds(&w.Map, a.Position):
			ve.add("actor %q at (%d,%d) is off the map", a.Name, a.Position.X, a.Position.Y)
			continue
		case !state.Walkable(&w.Map, a.Position):
			ve.add("actor %q at (%d,%d) stands in a wall", a.Name, a.Position.X, a.Position.Y)
		}
		if other, ok := occupied[a.Position]; ok {
			ve.add("actors %q and %q share cell (%d,%d)", other, a.Name, a.Position.X, a.Position.Y)
		}
		occupied[a.Position] = a.Name
		if a.HP <= 0 || a.HP > a.MaxHP {
			ve.add("actor %q has hp %d of %d", a.Name, a.HP, a.MaxHP)
		}
	}

	for i := range w.Items {
		it := &w.Items[i]
		if it.Owner != types.OwnerGround {
			continue
		}
		if !state.InBounds(&w.Map, it.Position) {
			ve.add("%s at (%d,%d) is off the map", c.Catalog.Name(it.ID), it.Position.X, it.Position.Y)
		}
		if it.Number <= 0 {
			ve.add("%s at (%d,%d) has number %d", c.Catalog.Name(it.ID), it.Position.X, it.Position.Y, it.Number)
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
