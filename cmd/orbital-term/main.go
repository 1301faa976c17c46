package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/1siamBot/orbital-bus/engine/audio"
	"github.com/1siamBot/orbital-bus/engine/config"
	"github.com/1siamBot/orbital-bus/engine/game"
	"github.com/1siamBot/orbital-bus/engine/logger"
	"github.com/1siamBot/orbital-bus/engine/render"
	"github.com/1siamBot/orbital-bus/engine/replay"
	"github.com/1siamBot/orbital-bus/engine/term"
)

func main() {
	startLevel := flag.Int("level", 0, "level to start on (default: the saved level)")
	logPath := flag.String("log", filepath.Join(os.TempDir(), "orbital-term.log"), "log file; the terminal is busy drawing")
	recordPath := flag.String("record", "", "record every tick to this replay file")
	flag.Parse()

	if err := run(*startLevel, *logPath, *recordPath); err != nil {
		fmt.Fprintf(os.Stderr, "orbital-term: %v\n", err)
		os.Exit(1)
	}
}

func run(startLevel int, logPath, recordPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger.Init(cfg.Logging, logFile)
	log := logger.Component("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := game.LoadCatalog(cfg.Assets)
	if err != nil {
		return err
	}
	tracker, store, err := game.OpenTracker(ctx, cfg.Progress)
	if err != nil {
		return err
	}
	defer store.Close()

	dir := cfg.Assets.Dir
	if dir == "" {
		dir = render.AssetsDir()
	}
	sampler := term.Sampler{CellW: cfg.Term.CellWidth, CellH: cfg.Term.CellHeight}
	assets := render.NewAssetCache(os.DirFS(dir), sampler.Convert)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	r := term.NewRunner(screen, catalog, assets, cfg.Term.CellWidth, cfg.Term.CellHeight)
	session := game.NewSession(game.Options{
		ScreenW:      float64(cfg.Screen.Width),
		ScreenH:      float64(cfg.Screen.Height),
		CameraMargin: cfg.Screen.CameraMargin,
	}, catalog, assets, tracker, r)
	r.Attach(session)

	if recordPath != "" {
		rec, err := replay.CreateRecorder(recordPath)
		if err != nil {
			return fmt.Errorf("create replay: %w", err)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.WithError(err).Error("replay incomplete")
			}
			log.WithField("frames", rec.Frames()).Info("replay saved")
		}()
		session.Observer = rec
	}

	if cfg.Audio.Enabled {
		am := audio.NewAudioManager(cfg.Audio.Volume)
		if err := am.Init(); err != nil {
			log.WithError(err).Warn("audio disabled")
		} else {
			defer am.Close()
			am.Bind(session.Bus)
		}
	}

	if startLevel <= 0 {
		startLevel = tracker.Current()
	}
	if err := session.Start(startLevel); err != nil {
		return err
	}
	log.WithField("level", startLevel).Info("terminal session started")

	return r.Run(ctx)
}
