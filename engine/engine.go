// Package engine provides the Step() orchestrator that wires the action
// dispatcher to its default collaborators and runs one action attempt per
// call.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nathoo/turncore/engine/action"
	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/dialogue"
	"github.com/nathoo/turncore/engine/events"
	"github.com/nathoo/turncore/engine/movement"
	"github.com/nathoo/turncore/engine/parser"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/rng"
	"github.com/nathoo/turncore/engine/save"
	"github.com/nathoo/turncore/engine/target"
	"github.com/nathoo/turncore/types"
)

// Options configure an Engine. Prompter and Containers are required; the
// collaborator fields override the defaults when set.
type Options struct {
	Logger     *slog.Logger
	Prompter   prompt.Prompter
	Containers action.ContainerStore
	Recorder   action.Recorder

	Title             string
	Seed              int64
	SavePath          string // session file written on quit; empty disables saving
	AttackNeutralNPCs bool
	Wizard            bool
	PageSize          int
	RouteCacheSize    int

	Magic   action.Magic
	Combat  action.Combat
	Talker  movement.Talker
	Terrain movement.Terrain
	Spawner action.Spawner
	Looter  action.Looter
}

// Engine holds the catalog and the mutable world.
type Engine struct {
	World   *types.World
	Catalog *catalog.Catalog
	RNG     *rng.RNG
	Bus     *events.Bus

	opts       Options
	log        *slog.Logger
	dispatcher *action.Dispatcher
}

// New creates an engine over w, seeding the RNG from opts.Seed.
func New(w *types.World, cat *catalog.Catalog, opts Options) (*Engine, error) {
	return build(w, cat, opts, rng.New(opts.Seed))
}

// Load resumes the session saved at path. The saved RNG stream is
// replayed to its recorded position.
func Load(path string, cat *catalog.Catalog, opts Options) (*Engine, error) {
	s, err := save.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if opts.SavePath == "" {
		opts.SavePath = path
	}
	if opts.Title == "" {
		opts.Title = s.Game
	}
	opts.Seed = s.RNGSeed
	s.World.TurnCount = s.Turn
	return build(s.World, cat, opts, rng.Restore(s.RNGSeed, s.RNGPosition))
}

func build(w *types.World, cat *catalog.Catalog, opts Options, r *rng.RNG) (*Engine, error) {
	if w == nil || len(w.Actors) == 0 {
		return nil, fmt.Errorf("engine needs a world with a player")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	w.Game.Wizard = opts.Wizard

	e := &Engine{
		World:   w,
		Catalog: cat,
		RNG:     r,
		Bus:     events.New(),
		opts:    opts,
		log:     opts.Logger.With("game", opts.Title),
	}

	combat := opts.Combat
	if combat == nil {
		combat = &Combat{Catalog: cat, Dice: r}
	}
	magic := opts.Magic
	if magic == nil {
		magic = &Magic{Catalog: cat, Dice: r, Combat: combat}
	}
	talker := opts.Talker
	if talker == nil {
		talker = dialogue.New(r, opts.Prompter)
	}
	terrain := opts.Terrain
	if terrain == nil {
		terrain = &Terrain{Dice: r, Combat: combat, Magic: magic}
	}
	spawner := opts.Spawner
	if spawner == nil {
		spawner = NewSpawner(w)
	}
	looter := opts.Looter
	if looter == nil {
		looter = &Looter{Catalog: cat, Dice: r}
	}

	sel, err := target.New(target.Config{PageSize: opts.PageSize, CacheSize: opts.RouteCacheSize})
	if err != nil {
		return nil, err
	}
	d, err := action.New(action.Deps{
		Catalog:    cat,
		Prompter:   opts.Prompter,
		Dice:       r,
		Magic:      magic,
		Combat:     combat,
		Talker:     talker,
		Terrain:    terrain,
		Spawner:    spawner,
		Looter:     looter,
		Containers: opts.Containers,
		Selector:   sel,
		Saver:      e,
		Recorder:   opts.Recorder,
		Logger:     opts.Logger,
	}, action.Options{AttackNeutralNPCs: opts.AttackNeutralNPCs})
	if err != nil {
		return nil, err
	}
	e.dispatcher = d

	e.Bus.Subscribe("", func(ev types.Event) {
		e.log.Debug("event", "type", ev.Type, "data", ev.Data)
	})
	return e, nil
}

// Command parses input and binds it to the player's surroundings.
func (e *Engine) Command(input string) (types.Command, error) {
	in, err := parser.Parse(input)
	if err != nil {
		return types.Command{}, err
	}
	return parser.Bind(e.World, e.Catalog, 0, in)
}

// Step resolves one action attempt and returns the result.
func (e *Engine) Step(ctx context.Context, cmd types.Command) types.Result {
	if !e.World.Actors[0].Alive {
		var res types.Result
		res.Outcome = types.OutcomeTurnContinuesWithError
		res.Say("game.over", "You are dead. Load a save or quit.", types.ToneAlert)
		return res
	}

	res := e.dispatcher.Dispatch(ctx, e.World, cmd)
	if res.Outcome == types.OutcomeTurnEnds {
		e.World.TurnCount++
		e.tickMefs()
	}
	e.Bus.Dispatch(res.Events)
	return res
}

// Turn returns the number of completed turns.
func (e *Engine) Turn() int {
	return e.World.TurnCount
}

// tickMefs ages map effects and drops the expired ones. Effects with
// negative turns are permanent.
func (e *Engine) tickMefs() {
	kept := e.World.Mefs[:0]
	for _, m := range e.World.Mefs {
		if m.Turns < 0 {
			kept = append(kept, m)
			continue
		}
		m.Turns--
		if m.Turns > 0 {
			kept = append(kept, m)
		}
	}
	e.World.Mefs = kept
}

// Session captures the world and RNG stream position.
func (e *Engine) Session() save.Session {
	return save.Session{
		Game:        e.opts.Title,
		Turn:        e.World.TurnCount,
		RNGSeed:     e.RNG.Seed(),
		RNGPosition: e.RNG.Position(),
		World:       e.World,
	}
}

// Save writes the session to the configured save path. It implements
// action.Saver, so quitting through the exit command saves too.
func (e *Engine) Save(ctx context.Context, w *types.World) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.opts.SavePath == "" {
		e.log.Debug("no save path configured, skipping save")
		return nil
	}
	s := e.Session()
	s.World = w
	if err := save.WriteFile(e.opts.SavePath, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	e.log.Info("session saved", "path", e.opts.SavePath, "turn", s.Turn)
	return nil
}
