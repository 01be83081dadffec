// Command coderush plays the portfolio intro and Code Rush in a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/soumaysikchi/portfolio/internal/clock"
	"github.com/soumaysikchi/portfolio/internal/game"
	"github.com/soumaysikchi/portfolio/internal/lifecycle"
	"github.com/soumaysikchi/portfolio/internal/logger"
	"github.com/soumaysikchi/portfolio/internal/store"
	"github.com/soumaysikchi/portfolio/internal/tui"
)

type options struct {
	db           string
	logFile      string
	logLevel     string
	noIntro      bool
	mute         bool
	seed         uint64
	loadingDelay time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "coderush",
		Short: "Dodge bugs and collect the stack in your terminal",
		Long: `Play the portfolio intro and the Code Rush mini-game in a terminal.

  coderush                  Loading screen, intro, then the game
  coderush --no-intro       Go straight to the game after loading
  coderush --seed 7 --mute  Reproducible spawns without sound`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.loadingDelay < 0 {
				return fmt.Errorf("--loading-delay must not be negative")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}

	cmd.SilenceUsage = true

	f := cmd.Flags()
	f.StringVar(&opts.db, "db", "coderush.db", "SQLite file holding the high score")
	f.StringVar(&opts.logFile, "log", "", "write logs to this file; logging is off when empty")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level")
	f.BoolVar(&opts.noIntro, "no-intro", false, "skip the intro sequence")
	f.BoolVar(&opts.mute, "mute", false, "disable sound")
	f.Uint64Var(&opts.seed, "seed", 0, "seed spawns for a reproducible run; random when 0")
	f.DurationVar(&opts.loadingDelay, "loading-delay", 4*time.Second, "how long the loading screen shows")
	return cmd
}

func run(ctx context.Context, opts options) error {
	// The screen owns stdout, so logs go to a file or nowhere.
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetupWriter(f, opts.logLevel, false)
	} else {
		logger.SetupWriter(io.Discard, "disabled", false)
	}

	st, err := store.Open(ctx, opts.db)
	if err != nil {
		return err
	}
	defer st.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	cfg := tui.Config{
		Lifecycle: lifecycle.DefaultConfig(),
		Rules:     game.DefaultRules(),
		Clock:     clock.Real{},
		Sound:     tui.Mute{},
	}
	cfg.Lifecycle.LoadingDelay = opts.loadingDelay
	cfg.Lifecycle.IntroEnabled = !opts.noIntro
	if opts.seed != 0 {
		cfg.Random = rand.New(rand.NewPCG(opts.seed, opts.seed))
	}
	if !opts.mute {
		spk, err := tui.NewSpeaker()
		if err != nil {
			log.Warn().Err(err).Msg("audio unavailable, playing muted")
		} else {
			cfg.Sound = spk
		}
	}

	// Saves must finish even when the run is interrupted.
	app := tui.NewApp(context.WithoutCancel(ctx), screen, st, cfg)
	return app.Run(ctx)
}
