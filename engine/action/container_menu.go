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

// maxContainerSteps bounds one storage session.
const maxContainerSteps = 1000

const (
	containerTake = iota
	containerPut
	containerClose
)

// PromptContainerMenu is the default ContainerMenu. It moves one stack at
// a time through plain choice prompts.
type PromptContainerMenu struct {
	Prompter prompt.Prompter
	Catalog  *catalog.Catalog
}

// Browse runs the take/put loop until the player closes the container.
// Cancelling any prompt cancels the whole session.
func (m PromptContainerMenu) Browse(ctx context.Context, w *types.World, actor, file int, r *types.Result) error {
	menu := []prompt.Option{
		{ID: containerTake, Label: "Take an item."},
		{ID: containerPut, Label: "Put an item."},
		{ID: containerClose, Label: "Close it."},
	}
	for range maxContainerSteps {
		choice, err := m.Prompter.Choose(ctx, fmt.Sprintf("Storage #%d", file), menu)
		if err != nil {
			return err
		}
		from, to := types.OwnerContainer, actor
		switch choice {
		case containerClose:
			return nil
		case containerPut:
			from, to = actor, types.OwnerContainer
		}

		stacks := state.Inventory(w, from)
		if len(stacks) == 0 {
			r.Say("ui.inv.nothing_to_move", "There is nothing to move.", types.ToneNormal)
			continue
		}
		options := make([]prompt.Option, 0, len(stacks))
		for _, i := range stacks {
			options = append(options, prompt.Option{ID: i, Label: fmt.Sprintf("%s x%d", m.Catalog.Name(w.Items[i].ID), w.Items[i].Number)})
		}
		pick, err := m.Prompter.Choose(ctx, "Which item?", options)
		if err != nil {
			return err
		}

		it := &w.Items[pick]
		it.Owner = to
		it.Equipped = false
		it.Position = types.Point{}
		name := m.Catalog.Name(it.ID)
		state.StackItem(w, pick)
		if to == types.OwnerContainer {
			r.Say("ui.inv.put", fmt.Sprintf("You put %s in.", name), types.ToneNormal)
		} else {
			r.Say("ui.inv.take", fmt.Sprintf("You take out %s.", name), types.ToneNormal)
		}
	}
	return errs.Cancelled()
}
