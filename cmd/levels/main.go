package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/1siamBot/orbital-bus/engine/config"
	"github.com/1siamBot/orbital-bus/engine/game"
	"github.com/1siamBot/orbital-bus/engine/level"
	"github.com/1siamBot/orbital-bus/engine/logger"
	"github.com/1siamBot/orbital-bus/engine/replay"
)

const usage = `usage:
  levels check [levels.json]     validate a level file (default: built-in levels)
  levels replay <file> [levels]  run a recorded replay headless and report the outcome`

func main() {
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	log := logger.Component("levels")

	var err error
	switch flag.Arg(0) {
	case "check":
		err = check(flag.Arg(1))
	case "replay":
		if flag.Arg(1) == "" {
			flag.Usage()
			os.Exit(2)
		}
		err = playBack(flag.Arg(1), flag.Arg(2))
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.WithError(err).Fatal(flag.Arg(0) + " failed")
	}
}

func check(path string) error {
	catalog, err := game.LoadCatalog(config.AssetsConfig{LevelsFile: path})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tPLANETS\tSHIP\tFUEL\tEND")
	for _, wd := range catalog.Worlds {
		fmt.Fprintf(tw, "%d\t%d\t(%.0f, %.0f)\t%.0f\t(%.0f, %.0f)\n",
			wd.ID, len(wd.Planets),
			wd.Spaceship.X, wd.Spaceship.Y, wd.Spaceship.Fuel,
			wd.End.X, wd.End.Y)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Printf("✅ %d levels OK\n", len(catalog.Worlds))
	return nil
}

// outcome follows the terminal runner's navigation, so replays recorded there
// play back across level changes
type outcome struct {
	s         *game.Session
	catalog   *level.Catalog
	crashes   int
	completes int
}

func (o *outcome) ShowLevelSelect() {
	o.completes++
	if next, ok := o.catalog.Next(o.s.Level); ok {
		_ = o.s.Start(next)
		return
	}
	_ = o.s.Start(o.catalog.IDs()[0])
}

func (o *outcome) ReloadLevel() {
	o.crashes++
	_ = o.s.Restart()
}

func playBack(path, levels string) error {
	rp, err := replay.Load(path)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if levels != "" {
		cfg.Assets.LevelsFile = levels
	}
	catalog, err := game.LoadCatalog(cfg.Assets)
	if err != nil {
		return err
	}

	res := &outcome{catalog: catalog}
	res.s = game.NewSession(game.Options{
		ScreenW:      float64(cfg.Screen.Width),
		ScreenH:      float64(cfg.Screen.Height),
		CameraMargin: cfg.Screen.CameraMargin,
	}, catalog, nil, nil, res)
	if err := replay.Play(res.s, rp); err != nil {
		return err
	}

	state := "in flight"
	if rs := res.s.RunState(); rs != nil && rs.Finished {
		state = "crashed"
		if rs.Succeeded() {
			state = "level complete"
		}
	}
	fmt.Printf("%d frames from level %d, ended on level %d: %s (%d crashes, %d completions)\n",
		len(rp.Frames), rp.Level(), res.s.Level, state, res.crashes, res.completes)
	return nil
}
