package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/1siamBot/orbital-bus/engine/audio"
	"github.com/1siamBot/orbital-bus/engine/config"
	"github.com/1siamBot/orbital-bus/engine/desktop"
	"github.com/1siamBot/orbital-bus/engine/game"
	"github.com/1siamBot/orbital-bus/engine/logger"
	"github.com/1siamBot/orbital-bus/engine/render"
)

func main() {
	startLevel := flag.Int("level", 0, "start this level directly instead of showing the level select")
	flag.Parse()

	// run returns so its deferred closes happen before the exit
	if err := run(*startLevel); err != nil {
		logger.Log.WithError(err).Error("game exited")
		os.Exit(1)
	}
}

func run(startLevel int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("bad configuration: %w", err)
	}
	logger.Init(cfg.Logging, nil)
	log := logger.Component("main")

	ctx := context.Background()
	catalog, err := game.LoadCatalog(cfg.Assets)
	if err != nil {
		return fmt.Errorf("cannot load levels: %w", err)
	}
	tracker, store, err := game.OpenTracker(ctx, cfg.Progress)
	if err != nil {
		return fmt.Errorf("cannot load progress: %w", err)
	}
	defer store.Close()

	dir := cfg.Assets.Dir
	if dir == "" {
		dir = render.AssetsDir()
	}
	assets := render.NewAssetCache(os.DirFS(dir), desktop.ToImage)

	g := desktop.NewGame(cfg.Screen.Width, cfg.Screen.Height, assets)
	session := game.NewSession(game.Options{
		ScreenW:      float64(cfg.Screen.Width),
		ScreenH:      float64(cfg.Screen.Height),
		CameraMargin: cfg.Screen.CameraMargin,
	}, catalog, assets, tracker, g)
	g.Attach(session, catalog.IDs(), tracker.Unlocked)

	if cfg.Audio.Enabled {
		am := audio.NewAudioManager(cfg.Audio.Volume)
		if err := am.Init(); err != nil {
			log.WithError(err).Warn("audio disabled")
		} else {
			defer am.Close()
			am.Bind(session.Bus)
		}
	}

	if startLevel > 0 {
		g.Play(startLevel)
	}

	log.WithFields(logrus.Fields{
		"levels":    len(catalog.IDs()),
		"max_level": tracker.Max(),
		"assets":    dir,
	}).Info("starting Orbital Bus")

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle("Orbital Bus")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	return ebiten.RunGame(g)
}
