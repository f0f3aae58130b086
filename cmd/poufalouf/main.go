package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/siana-blue/poufalouf/analytics"
	"github.com/siana-blue/poufalouf/audio"
	"github.com/siana-blue/poufalouf/config"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/debug"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/level"
	"github.com/siana-blue/poufalouf/logger"
	"github.com/siana-blue/poufalouf/object"
	"github.com/siana-blue/poufalouf/render"
)

// The terminal owns stdout, so logs go to a file unless the configuration names one
const defaultLogFile = "poufalouf.log"

type options struct {
	configPath string
	seed       uint64
	debugAddr  string
	mute       bool
	logFile    string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("poufalouf", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "TOML configuration file")
	fs.Uint64Var(&o.seed, "seed", 0, "level seed, overrides the configuration")
	fs.StringVar(&o.debugAddr, "debug", "", "debug server address, overrides the configuration")
	fs.BoolVar(&o.mute, "mute", false, "disable audio")
	fs.StringVar(&o.logFile, "log", "", "log file, overrides the configuration")
	err := fs.Parse(args)
	return o, err
}

// loadConfig reads the configuration and applies command-line overrides
func loadConfig(o options) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.seed != 0 {
		cfg.Level.Seed = o.seed
	}
	if o.debugAddr != "" {
		cfg.Debug.Addr = o.debugAddr
	}
	if o.mute {
		cfg.Audio.Enabled = false
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}
	return cfg, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "poufalouf: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close(log)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.RegisterCrashFinalizer(screen)
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return play(ctx, cfg, screen, log)
}

// play builds the world and its collaborators and runs until quit, a signal or ctx ends
func play(ctx context.Context, cfg *config.Config, screen tcell.Screen, log *logrus.Logger) error {
	grid, err := engine.NewGrid(cfg.World.Width, cfg.World.Height, cfg.World.CellSize)
	if err != nil {
		return err
	}
	w := engine.NewWorld(grid, engine.WithLogger(log), engine.WithAnimationLoader(object.Animations()))
	sim := engine.NewSimulation(w, engine.WithInvariantChecks(cfg.Debug.Invariants))

	keys := render.NewKeyboard(cfg.Keys)
	lv, err := level.Build(w, cfg.Level, keys, log)
	if err != nil {
		return fmt.Errorf("build level: %w", err)
	}

	if cfg.Audio.Enabled {
		sound := audio.NewSoundManager(log)
		if err := sound.Initialize(); err != nil {
			log.WithError(err).Warn("audio unavailable, continuing muted")
		} else {
			defer sound.Cleanup()
			sim.RegisterEventHandler(sound)
		}
	}

	if cfg.Analytics.Path != "" {
		rec, err := analytics.Open(cfg.Analytics.Path, lv.Seed, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.WithError(err).Error("analytics not closed cleanly")
			}
		}()
		sim.RegisterEventHandler(rec)
		sim.OnAfterTick(rec.Flush)
	}

	if cfg.Debug.Addr != "" {
		feed := debug.NewFeed(sim.Status(), log)
		sim.RegisterEventHandler(feed)
		sim.OnAfterTick(feed.Observe)
		srv := debug.NewServer(cfg.Debug.Addr, feed, log)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("debug server shutdown")
			}
		}()
	}

	term := render.NewTerminal(screen)
	sched := engine.NewClockScheduler(sim, nil, cfg.Tick.Interval.Duration)
	hud := func(paused bool) render.HUD {
		return render.HUD{Player: lv.Player, Seed: lv.Seed, Paused: paused}
	}
	sim.OnAfterTick(func(w *engine.World) { term.Draw(w, hud(false)) })
	sched.OnPaused(func(w *engine.World) { term.Draw(w, hud(true)) })

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	core.Go(func() { done <- sched.Run(ctx) })

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	log.WithFields(logrus.Fields{"seed": lv.Seed, "interval": cfg.Tick.Interval.Duration}).Info("game started")
	for {
		select {
		case <-ctx.Done():
			return wait(done, sched, log)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch keys.HandleKey(ev) {
				case render.ActionQuit:
					cancel()
				case render.ActionPause:
					paused := sched.TogglePause()
					log.WithField("paused", paused).Debug("pause toggled")
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}

// wait joins the scheduler goroutine; cancellation is the normal way out
func wait(done <-chan error, sched *engine.ClockScheduler, log logrus.FieldLogger) error {
	err := <-done
	log.WithField("ticks", sched.TickCount()).Info("game stopped")
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
