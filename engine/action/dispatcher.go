// Package action routes a command to its handler and normalizes the
// handler's result into exactly one outcome.
//
// Every handler validates before it mutates. When a handler fails, or a
// sub-prompt is cancelled, the dispatcher restores the world to its state
// before the attempt, so a failed attempt never leaves partial effects.
package action

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/movement"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/rng"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/engine/target"
	"github.com/nathoo/turncore/types"
)

// Recorder receives one observation per action attempt.
type Recorder interface {
	RecordAction(command, outcome string)
	RecordFailure(code string)
}

// Saver persists the session when the player quits.
type Saver interface {
	Save(ctx context.Context, w *types.World) error
}

// Deps are the collaborators handlers call. Selector, ContainerMenu,
// Saver, Recorder and Logger are optional; the rest are required.
type Deps struct {
	Catalog       *catalog.Catalog
	Prompter      prompt.Prompter
	Dice          rng.Source
	Magic         Magic
	Combat        Combat
	Talker        movement.Talker
	Terrain       movement.Terrain
	Spawner       Spawner
	Looter        Looter
	Containers    ContainerStore
	ContainerMenu ContainerMenu
	Selector      *target.Selector
	Saver         Saver
	Recorder      Recorder
	Logger        *slog.Logger
}

// Options are player preferences.
type Options struct {
	AttackNeutralNPCs bool
}

type handler func(ctx context.Context, at *attempt) (types.Outcome, error)

// Dispatcher maps commands to handlers.
type Dispatcher struct {
	deps     Deps
	opts     Options
	mover    *movement.Resolver
	handlers map[types.CommandKind]handler
}

// New creates a Dispatcher. A nil Selector, ContainerMenu or Logger is
// replaced with the default.
func New(deps Deps, opts Options) (*Dispatcher, error) {
	if deps.Catalog == nil || deps.Prompter == nil || deps.Dice == nil {
		return nil, errs.Internal("dispatcher needs a catalog, a prompter and dice")
	}
	if deps.Magic == nil || deps.Combat == nil || deps.Talker == nil || deps.Terrain == nil ||
		deps.Spawner == nil || deps.Looter == nil || deps.Containers == nil {
		return nil, errs.Internal("dispatcher is missing a world collaborator")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Selector == nil {
		sel, err := target.New(target.Config{})
		if err != nil {
			return nil, err
		}
		deps.Selector = sel
	}
	if deps.ContainerMenu == nil {
		deps.ContainerMenu = PromptContainerMenu{Prompter: deps.Prompter, Catalog: deps.Catalog}
	}

	d := &Dispatcher{deps: deps, opts: opts}
	d.mover = movement.New(movement.Deps{
		Combat:   deps.Combat,
		Talker:   deps.Talker,
		Terrain:  deps.Terrain,
		Prompter: deps.Prompter,
		Dice:     deps.Dice,
	}, movement.Options{AttackNeutralNPCs: opts.AttackNeutralNPCs})
	d.handlers = map[types.CommandKind]handler{
		types.CmdMove:     d.move,
		types.CmdUse:      d.use,
		types.CmdThrow:    d.throw,
		types.CmdOpen:     d.open,
		types.CmdDip:      d.dip,
		types.CmdSearch:   d.search,
		types.CmdInteract: d.interact,
		types.CmdGive:     d.give,
		types.CmdLook:     d.look,
		types.CmdFire:     d.fire,
		types.CmdClose:    d.close,
		types.CmdDrink:    d.drink,
		types.CmdRead:     d.read,
		types.CmdZap:      d.zap,
		types.CmdEat:      d.eat,
		types.CmdRest:     d.rest,
		types.CmdGet:      d.get,
		types.CmdGoDown:   d.goDown,
		types.CmdGoUp:     d.goUp,
		types.CmdExit:     d.exit,
		types.CmdBash:     d.bash,
		types.CmdDig:      d.dig,
		types.CmdPray:     d.pray,
		types.CmdOffer:    d.offer,
		types.CmdAmmo:     d.changeAmmo,
		types.CmdCast:     d.cast,
		types.CmdShortcut: d.shortcut,
	}
	return d, nil
}

// Commands lists the command kinds the dispatcher handles.
func (d *Dispatcher) Commands() []types.CommandKind {
	out := make([]types.CommandKind, 0, len(d.handlers))
	for k := range d.handlers {
		out = append(out, k)
	}
	return out
}

// Dispatch resolves one action attempt and always returns a concrete
// outcome. On failure the world is restored and the outcome is
// turn_continues_with_error carrying the failure message.
func (d *Dispatcher) Dispatch(ctx context.Context, w *types.World, cmd types.Command) types.Result {
	log := d.deps.Logger.With("command", string(cmd.Kind), "actor", cmd.Actor)

	h, ok := d.handlers[cmd.Kind]
	if !ok {
		return d.fail(log, cmd, &types.Result{}, errs.InvalidTarget("Unknown command.").WithMeta("command", cmd.Kind))
	}
	if !state.Alive(w, cmd.Actor) {
		return d.fail(log, cmd, &types.Result{}, errs.InvalidTarget("That actor cannot act."))
	}

	// 1. Snapshot so a failed attempt can be undone wholesale.
	snapshot := state.Clone(w)

	// 2. Run the handler.
	at := &attempt{d: d, w: w, cmd: cmd, res: &types.Result{}}
	out, err := h(ctx, at)
	if err == nil && out == 0 {
		err = errs.Internalf("%s handler returned no outcome", cmd.Kind)
	}

	// 3. Failure: restore and report.
	if err != nil {
		*w = *snapshot
		return d.fail(log, cmd, at.res, err)
	}

	at.res.Outcome = out
	log.Debug("action resolved", "outcome", out.String())
	d.record(cmd, out)
	return *at.res
}

func (d *Dispatcher) fail(log *slog.Logger, cmd types.Command, partial *types.Result, err error) types.Result {
	code := errs.CodeOf(err)
	if code == errs.CodeInternal {
		log.Error("action failed", "error", err)
	} else {
		log.Debug("action rejected", "code", code.String(), "error", err)
	}
	res := types.Result{
		Outcome:  types.OutcomeTurnContinuesWithError,
		Messages: partial.Messages,
	}
	if msg := failureMessage(err); msg != "" {
		res.Say(failureKey(err), msg, types.ToneBad)
	}
	if d.deps.Recorder != nil {
		d.deps.Recorder.RecordFailure(code.String())
	}
	d.record(cmd, res.Outcome)
	return res
}

func (d *Dispatcher) record(cmd types.Command, out types.Outcome) {
	if d.deps.Recorder != nil {
		d.deps.Recorder.RecordAction(string(cmd.Kind), out.String())
	}
}

func failureMessage(err error) string {
	var e *errs.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong."
}

func failureKey(err error) string {
	var e *errs.Error
	if errors.As(err, &e) && e.Key != "" {
		return e.Key
	}
	return "error." + string(errs.CodeOf(err))
}
