package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nathoo/turncore/cli"
	"github.com/nathoo/turncore/config"
	"github.com/nathoo/turncore/engine"
	"github.com/nathoo/turncore/engine/action"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/save"
	"github.com/nathoo/turncore/engine/save/redisstore"
	"github.com/nathoo/turncore/engine/save/sqlitestore"
	"github.com/nathoo/turncore/engine/script"
	"github.com/nathoo/turncore/loader"
	"github.com/nathoo/turncore/logger"
	"github.com/nathoo/turncore/metrics"
	"github.com/nathoo/turncore/tui"
)

var (
	playPlain  bool
	playTrace  bool
	playScript string
	playResume bool
	playEnv    string
)

var playCmd = &cobra.Command{
	Use:   "play <game-dir>",
	Short: "Play a game directory",
	Long: `Load the Lua files in <game-dir> and start a session. Settings come from
TURNCORE_* environment variables and an optional .env file.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playPlain, "plain", false, "use the line-based interface")
	playCmd.Flags().BoolVar(&playTrace, "trace", false, "print outcomes and events after each command")
	playCmd.Flags().StringVar(&playScript, "script", "", "read commands from a file (implies --plain)")
	playCmd.Flags().BoolVar(&playResume, "resume", false, "continue the saved session in the save directory")
	playCmd.Flags().StringVar(&playEnv, "env", ".env", "settings file to load before the environment")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(playEnv)
	if err != nil {
		return err
	}
	useTUI := !playPlain && playScript == "" && isTerminal()
	logOut := io.Writer(os.Stderr)
	if useTUI {
		// The full-screen UI owns the terminal.
		logOut = io.Discard
	}
	log := logger.New(cfg.Logger(), logOut)
	slog.SetDefault(log)

	rec := metrics.New()
	if cfg.MetricsAddr != "" {
		srv := rec.NewServer(cfg.MetricsAddr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info("serving metrics", "addr", cfg.MetricsAddr)
	}

	content, err := loader.Load(args[0], script.Options{Logger: log, Recorder: rec})
	if err != nil {
		return fmt.Errorf("loading game: %w", err)
	}
	defer content.Close()

	containers, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// The prompter must exist before the engine; the TUI bridge is
	// attached to its program later.
	var (
		line   *cli.CLI
		bridge *tui.Bridge
		p      prompt.Prompter
	)
	if useTUI {
		bridge = tui.NewBridge()
		p = bridge
	} else {
		in := io.Reader(os.Stdin)
		if playScript != "" {
			f, err := os.Open(playScript)
			if err != nil {
				return fmt.Errorf("opening script: %w", err)
			}
			defer f.Close()
			in = f
		}
		line = cli.New(in, os.Stdout)
		line.EchoInput = playScript != ""
		line.Trace = playTrace
		p = line
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = content.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := engine.Options{
		Logger:            log,
		Prompter:          p,
		Containers:        containers,
		Recorder:          rec,
		Title:             content.Title,
		Seed:              seed,
		SavePath:          filepath.Join(cfg.SaveDir, "session.json"),
		AttackNeutralNPCs: cfg.AttackNeutralNPCs,
		Wizard:            cfg.Wizard,
		PageSize:          cfg.PageSize,
		RouteCacheSize:    cfg.RouteCacheSize,
	}

	var eng *engine.Engine
	if playResume {
		eng, err = engine.Load(opts.SavePath, content.Catalog, opts)
	} else {
		eng, err = engine.New(content.World, content.Catalog, opts)
	}
	if err != nil {
		return err
	}
	log.Info("session started", "game", content.Title, "seed", seed, "resume", playResume, "store", cfg.Store)

	intro := content.Title
	if content.Intro != "" {
		intro += "\n\n" + content.Intro
	}
	if useTUI {
		return tui.Run(ctx, eng, bridge, intro)
	}
	line.Engine = eng
	return line.Run(ctx, intro)
}

// openStore returns the configured container store and its closer.
func openStore(ctx context.Context, cfg *config.Config) (action.ContainerStore, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		s, err := redisstore.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.StoreSQLite:
		s, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		s, err := save.NewFileStore(cfg.SaveDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
