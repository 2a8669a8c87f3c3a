// Package game wires the particle core to an ebiten window: input, the
// brew panel, rendering and the settings store.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/coffee-particles/internal/config"
	"github.com/olivierh59500/coffee-particles/internal/particle"
	"github.com/olivierh59500/coffee-particles/internal/store"
	"github.com/olivierh59500/coffee-particles/internal/telemetry"
)

var modeKeys = map[ebiten.Key]particle.Mode{
	ebiten.KeyDigit0: particle.Setting,
	ebiten.KeyDigit1: particle.ShowOne,
	ebiten.KeyDigit2: particle.ShowTwo,
	ebiten.KeyDigit3: particle.ShowThree,
	ebiten.KeyDigit4: particle.ShowFour,
}

// Options configures a Game. Store and Recorder may be nil.
type Options struct {
	Config   *config.Config
	Seed     int64
	Mode     particle.Mode
	Store    *store.BrewStore
	Recorder *telemetry.Recorder
	Logger   *slog.Logger
}

// Game implements ebiten.Game around a particle controller.
type Game struct {
	cfg     *config.Config
	ctrl    *particle.Controller
	brew    particle.Brew
	panel   *Panel
	preview *Preview
	store   *store.BrewStore
	rec     *telemetry.Recorder
	view    view
	canvas  screenCanvas
	log     *slog.Logger
}

// New creates a game in opts.Mode with the brew from the store, falling back
// to the configured default.
func New(opts Options) *Game {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	g := &Game{
		cfg:     cfg,
		brew:    cfg.Brew,
		panel:   NewPanel(cfg.Limits),
		preview: NewPreview(cfg.Preview, opts.Seed),
		store:   opts.Store,
		rec:     opts.Recorder,
		view:    newView(cfg.Screen.Width, cfg.Screen.Height),
		log:     log,
	}
	g.canvas.view = g.view
	g.ctrl = particle.NewController(particle.Options{
		Bounds:       cfg.Derived.Bounds,
		GridAnchor:   cfg.Derived.GridAnchor,
		CellSize:     cfg.Grid.CellSize,
		StreamOrigin: cfg.Derived.StreamOrigin,
		Broadphase:   cfg.Derived.Broadphase,
		Rand:         rand.New(rand.NewSource(opts.Seed)),
		Logger:       log,
	})
	g.loadBrew()
	g.ctrl.SetMode(opts.Mode)
	return g
}

// Controller exposes the simulation for headless drivers.
func (g *Game) Controller() *particle.Controller { return g.ctrl }

// Brew returns the current brew.
func (g *Game) Brew() particle.Brew { return g.brew }

// Step advances the simulation one tick with the pointer at ptr (world
// coordinates) and records telemetry.
func (g *Game) Step(ptr r2.Vec) {
	g.ctrl.Update(particle.Input{Brew: g.brew, Pointer: ptr})
	if g.ctrl.Mode() == particle.Setting {
		g.preview.Advance()
	}
	if err := g.rec.Observe(g.ctrl); err != nil {
		g.log.Warn("telemetry write failed", "error", err)
	}
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	mx, my := g.handleInput()
	g.Step(g.view.toWorld(mx, my))
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	g.canvas.dst = screen

	if g.ctrl.Mode() == particle.Setting {
		g.preview.Draw(&g.canvas, g.brew)
	} else {
		g.ctrl.Draw(&g.canvas)
	}

	g.panel.Draw(screen, g.brew, g.ctrl.Mode())
	ebitenutil.DebugPrintAt(screen, g.status(), panelX, g.cfg.Screen.Height-20)
}

// Layout returns the screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Screen.Width, g.cfg.Screen.Height
}

// Close saves the brew.
func (g *Game) Close() {
	g.saveBrew()
}

func (g *Game) status() string {
	n := 0
	if ps := g.ctrl.Active(); ps != nil {
		n = ps.Len()
	}
	s := fmt.Sprintf("%s  particles: %d  TPS: %0.1f", g.ctrl.Mode(), n, ebiten.ActualTPS())
	if ps := g.ctrl.Active(); ps != nil && ps.Intact() {
		s += "  (right click to shatter)"
	}
	return s
}

// handleInput processes keyboard and mouse input and returns the cursor
// position in screen pixels.
func (g *Game) handleInput() (int, int) {
	mx, my := ebiten.CursorPosition()

	ptr := pointer{
		X:        mx,
		Y:        my,
		Down:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	if mode, ok := g.panel.Update(ptr, &g.brew); ok {
		g.ctrl.SetMode(mode)
	}

	for k, mode := range modeKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.ctrl.SetMode(mode)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.Shatter()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveBrew()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.loadBrew()
	}
	return mx, my
}

func (g *Game) saveBrew() {
	if g.store == nil {
		return
	}
	if err := g.store.Save(g.brew); err != nil {
		g.log.Warn("could not save brew", "error", err)
	}
}

func (g *Game) loadBrew() {
	if g.store == nil {
		return
	}
	b, ok, err := g.store.Load(g.brew)
	if err != nil {
		g.log.Warn("could not load brew", "error", err)
	}
	if ok {
		g.brew = b
	}
}
