package ebitenhost

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

// RunConfig configures a window opened by Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the window size in logical pixels. Zero
	// defaults to 640x480.
	Width, Height int
	// Resizable lets the user resize the window.
	Resizable bool
	// ShowFPS draws FPS and TPS in the top-left corner.
	ShowFPS bool
	// Script, if set, is replayed against the chart one step per tick.
	Script *Script
	// ExitWhenDone closes the window once Script finishes.
	ExitWhenDone bool
	// ScreenshotDir is where screenshots are written. Defaults to
	// "screenshots".
	ScreenshotDir string
}

// Game hosts a chart as an ebiten.Game. Input is polled in Update and
// forwarded through Chart.Dispatch; Draw renders one frame.
//
// Keys: R resets the view, F12 takes a screenshot.
type Game struct {
	chart   *charts.Chart
	surface *Surface
	poller  poller
	size    charts.Size

	ShowFPS       bool
	Script        *Script
	ExitWhenDone  bool
	ScreenshotDir string

	shots []string
	errs  int
}

// NewGame returns a game drawing chart. The chart must have been created
// with an *ebitenhost.Surface.
func NewGame(chart *charts.Chart) (*Game, error) {
	s, ok := chart.Surface().(*Surface)
	if !ok {
		return nil, fmt.Errorf("ebitenhost: chart surface is %T, want *ebitenhost.Surface", chart.Surface())
	}
	return &Game{chart: chart, surface: s}, nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	raw := readRaw(g.poller.touchBuf)
	g.poller.touchBuf = raw.touches
	g.poller.process(raw, g.surface.DeviceScale(), g.size, g.dispatch)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.chart.ResetView(0.4)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.Screenshot("manual")
	}
	g.chart.Advance(1 / float32(ebiten.TPS()))

	if g.Script != nil {
		g.Script.step(g.chart, g.Screenshot)
		if g.ExitWhenDone && g.Script.Done() && len(g.shots) == 0 {
			return ebiten.Termination
		}
	}
	return nil
}

func (g *Game) dispatch(ev charts.Event) { g.chart.Dispatch(ev) }

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	report := g.chart.RenderFrame(g.size)
	g.surface.SetTarget(nil)
	if n := len(report.Errors); n != g.errs {
		if n > 0 {
			charts.Logger().Warn("frame errors", "frame", report.Frame, "err", report.Err())
		}
		g.errs = n
	}
	g.flushScreenshots(screen)
	if g.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(w, h int) (int, int) {
	dw, dh := g.LayoutF(float64(w), float64(h))
	return int(dw), int(dh)
}

// LayoutF renders at device resolution: the chart lays out in logical
// pixels and the surface scales by the monitor's device scale factor.
func (g *Game) LayoutF(w, h float64) (float64, float64) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	g.surface.SetScale(scale)
	g.size = charts.Size{Width: w, Height: h}
	return math.Ceil(w * scale), math.Ceil(h * scale)
}

// Run opens a window and runs chart until the window closes. The chart
// must have been created with an *ebitenhost.Surface.
func Run(chart *charts.Chart, cfg RunConfig) error {
	g, err := NewGame(chart)
	if err != nil {
		return err
	}
	g.ShowFPS = cfg.ShowFPS
	g.Script = cfg.Script
	g.ExitWhenDone = cfg.ExitWhenDone
	g.ScreenshotDir = cfg.ScreenshotDir

	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = 640, 480
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("ebitenhost: run: %w", err)
	}
	return nil
}
