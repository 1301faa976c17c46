package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/orbital-bus/engine/game"
	"github.com/1siamBot/orbital-bus/engine/logger"
	"github.com/1siamBot/orbital-bus/engine/render"
)

type mode uint8

const (
	modeMenu mode = iota
	modePlaying
)

// Game implements ebiten.Game: a level select screen and the session it
// launches.
type Game struct {
	ScreenW, ScreenH int

	Session *game.Session
	Assets  render.AssetResolver
	Menu    *LevelSelect

	painter *Painter
	poller  *Poller
	mode    mode
}

// NewGame wraps a session. The caller builds the session with the returned
// game as its navigator via Attach.
func NewGame(screenW, screenH int, assets render.AssetResolver) *Game {
	return &Game{
		ScreenW: screenW,
		ScreenH: screenH,
		Assets:  assets,
		painter: &Painter{Fonts: NewFontCache()},
		poller:  NewPoller(),
	}
}

// Attach connects the session and builds the level select over its levels
func (g *Game) Attach(s *game.Session, levels []int, unlocked func(int) bool) {
	g.Session = s
	g.Menu = NewLevelSelect(g.ScreenW, g.ScreenH, levels, unlocked)
	g.Menu.OnSelect = g.play
}

func (g *Game) play(level int) {
	if err := g.Session.Start(level); err != nil {
		logger.Component("desktop").WithError(err).WithField("level", level).Error("cannot start level")
		return
	}
	g.mode = modePlaying
}

// ShowLevelSelect returns to the menu
func (g *Game) ShowLevelSelect() {
	g.mode = modeMenu
}

// ReloadLevel restarts the current level
func (g *Game) ReloadLevel() {
	if err := g.Session.Restart(); err != nil {
		logger.Component("desktop").WithError(err).Error("cannot restart level")
		g.mode = modeMenu
	}
}

// Play jumps straight into level, skipping the menu
func (g *Game) Play(level int) {
	g.play(level)
}

func (g *Game) Update() error {
	g.poller.Update()

	switch g.mode {
	case modeMenu:
		x, y, tapped := g.poller.Tapped()
		if !tapped {
			x, y = g.poller.MouseX, g.poller.MouseY
		}
		g.Menu.Update(1.0/float64(ebiten.TPS()), x, y, tapped)
	case modePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.mode = modeMenu
			return nil
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.ReloadLevel()
		}
		g.poller.Apply(g.Session.Controls, g.Session.Pad)
		g.Session.Frame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Screen = screen
	switch g.mode {
	case modeMenu:
		g.Menu.Draw(screen, g.painter)
	case modePlaying:
		screen.Fill(color.RGBA{4, 6, 16, 255})
		// skipped visuals are logged by the session
		_ = g.Session.Draw(g.painter, g.Assets)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenW, g.ScreenH
}
