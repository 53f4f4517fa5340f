package action

import (
	"context"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/movement"
	"github.com/nathoo/turncore/types"
)

func (d *Dispatcher) move(ctx context.Context, at *attempt) (types.Outcome, error) {
	if !at.cmd.HasDest {
		return 0, errs.InvalidTarget("Which direction?").WithKey("action.which_direction.default")
	}
	res, err := d.mover.Resolve(ctx, at.w, movement.Step{
		Actor:   at.cmd.Actor,
		Dest:    at.cmd.Dest,
		Running: at.cmd.Running,
		Skip:    at.cmd.Skip,
	})
	at.res.Messages = append(at.res.Messages, res.Messages...)
	at.res.Events = append(at.res.Events, res.Events...)
	if err != nil {
		return 0, err
	}
	at.res.Exit = res.Exit
	at.res.Submenu = res.Submenu
	return res.Outcome, nil
}
