package game

import (
	"image"
	"io"
	"log/slog"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/coffee-particles/internal/config"
	"github.com/olivierh59500/coffee-particles/internal/particle"
	"github.com/olivierh59500/coffee-particles/internal/store"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestView(t *testing.T) {
	v := newView(1000, 800)
	tests := []struct {
		world  r2.Vec
		sx, sy float64
	}{
		{r2.Vec{}, 500, 400},
		{r2.Vec{X: -500, Y: 400}, 0, 0},
		{r2.Vec{X: 500, Y: -400}, 1000, 800},
		{r2.Vec{X: 100, Y: 100}, 600, 300},
	}
	for _, tt := range tests {
		x, y := v.toScreen(tt.world)
		if x != tt.sx || y != tt.sy {
			t.Errorf("toScreen(%v) = %v,%v want %v,%v", tt.world, x, y, tt.sx, tt.sy)
		}
		if back := v.toWorld(int(tt.sx), int(tt.sy)); back != tt.world {
			t.Errorf("toWorld(%v,%v) = %v, want %v", tt.sx, tt.sy, back, tt.world)
		}
	}
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h, s, v float64
		r, g, b float64
	}{
		{0, 1, 1, 1, 0, 0},
		{120, 1, 1, 0, 1, 0},
		{240, 1, 1, 0, 0, 1},
		{360, 1, 1, 1, 0, 0},
		{-120, 1, 1, 0, 0, 1},
		{77, 0, 0.5, 0.5, 0.5, 0.5},
		{10, 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := hsvToRGB(tt.h, tt.s, tt.v)
		if math.Abs(r-tt.r) > 1e-9 || math.Abs(g-tt.g) > 1e-9 || math.Abs(b-tt.b) > 1e-9 {
			t.Errorf("hsvToRGB(%v,%v,%v) = %v,%v,%v want %v,%v,%v", tt.h, tt.s, tt.v, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestToNRGBA(t *testing.T) {
	c := toNRGBA(particle.HSVA{Alpha: 0.5})
	if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 128 {
		t.Errorf("toNRGBA(black, 0.5) = %+v", c)
	}
	if c := toNRGBA(particle.HSVA{Alpha: -1}); c.A != 0 {
		t.Errorf("negative alpha gave %d", c.A)
	}
}

func TestPolygon(t *testing.T) {
	v := newView(1000, 800)
	pts := polygon(v, r2.Vec{}, 10, 4)
	if len(pts) != 4 {
		t.Fatalf("got %d vertices", len(pts))
	}
	want := [][2]float32{{510, 400}, {500, 390}, {490, 400}, {500, 410}}
	for i, p := range pts {
		if math.Abs(float64(p[0]-want[i][0])) > 1e-4 || math.Abs(float64(p[1]-want[i][1])) > 1e-4 {
			t.Errorf("vertex %d = %v, want %v", i, p, want[i])
		}
	}
}

func center(r image.Rectangle) (int, int) {
	return (r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2
}

func TestPanelButtonClick(t *testing.T) {
	p := NewPanel(loadConfig(t).Limits)
	var brew particle.Brew

	for _, btn := range p.buttons {
		x, y := center(btn.rect)
		if _, ok := p.Update(pointer{X: x, Y: y, Down: true, Pressed: true}, &brew); ok {
			t.Fatalf("%s fired on press", btn.label)
		}
		mode, ok := p.Update(pointer{X: x, Y: y, Released: true}, &brew)
		if !ok || mode != btn.mode {
			t.Errorf("%s click = %v,%v want %v", btn.label, mode, ok, btn.mode)
		}
	}
}

func TestPanelClickCancelledByLeaving(t *testing.T) {
	p := NewPanel(loadConfig(t).Limits)
	var brew particle.Brew
	x, y := center(p.buttons[2].rect)
	p.Update(pointer{X: x, Y: y, Down: true, Pressed: true}, &brew)
	if _, ok := p.Update(pointer{X: 900, Y: 700, Released: true}, &brew); ok {
		t.Error("release away from the button still clicked")
	}
}

func TestPanelSliders(t *testing.T) {
	cfg := loadConfig(t)
	p := NewPanel(cfg.Limits)
	brew := cfg.Brew

	size := p.sliders[1].rect
	mid := size.Min.X + size.Dx()/2
	y := size.Min.Y + 2
	p.Update(pointer{X: mid, Y: y, Down: true, Pressed: true}, &brew)
	want := cfg.Limits.RadiusMin + float64(mid-size.Min.X)/float64(size.Dx())*(cfg.Limits.RadiusMax-cfg.Limits.RadiusMin)
	if math.Abs(brew.Radius-want) > 1e-9 {
		t.Errorf("radius = %v, want %v", brew.Radius, want)
	}

	// Dragging past the end clamps while the button is held.
	p.Update(pointer{X: size.Max.X + 500, Y: y + 300, Down: true}, &brew)
	if brew.Radius != cfg.Limits.RadiusMax {
		t.Errorf("radius = %v, want %v", brew.Radius, cfg.Limits.RadiusMax)
	}
	p.Update(pointer{X: size.Max.X + 500, Y: y, Released: true}, &brew)

	// After release the slider no longer follows the pointer.
	p.Update(pointer{X: size.Min.X, Y: y + 300, Down: true}, &brew)
	if brew.Radius != cfg.Limits.RadiusMax {
		t.Errorf("released slider moved radius to %v", brew.Radius)
	}

	shape := p.sliders[0].rect
	p.Update(pointer{X: shape.Min.X, Y: shape.Min.Y + 1, Down: true, Pressed: true}, &brew)
	if brew.Resolution != cfg.Limits.ResolutionMin {
		t.Errorf("resolution = %d, want %d", brew.Resolution, cfg.Limits.ResolutionMin)
	}
	if brew.Color != cfg.Brew.Color {
		t.Errorf("colour changed to %+v", brew.Color)
	}
}

func TestPanelContains(t *testing.T) {
	p := NewPanel(loadConfig(t).Limits)
	if !p.Contains(panelX+1, panelY+1) {
		t.Error("panel corner not contained")
	}
	if p.Contains(900, 700) {
		t.Error("far point contained")
	}
}

func TestPreviewRadius(t *testing.T) {
	cfg := loadConfig(t)
	pv := NewPreview(cfg.Preview, 7)
	const base = 40.0
	lo, hi := base*(1-cfg.Preview.Wobble), base*(1+cfg.Preview.Wobble)
	for i := 0; i < 500; i++ {
		if r := pv.Radius(base); r < lo || r > hi {
			t.Fatalf("tick %d radius %v outside [%v,%v]", i, r, lo, hi)
		}
		pv.Advance()
	}
}

func TestGameStepHeadless(t *testing.T) {
	cfg := loadConfig(t)
	g := New(Options{
		Config: cfg,
		Seed:   1,
		Mode:   particle.ShowTwo,
		Store:  store.New(nil, cfg.Limits, quiet),
		Logger: quiet,
	})
	if g.Brew() != cfg.Brew {
		t.Errorf("brew = %+v, want config default", g.Brew())
	}
	for i := 0; i < 10; i++ {
		g.Step(r2.Vec{})
	}
	if n := g.Controller().Active().Len(); n != 10 {
		t.Errorf("stream len = %d, want 10", n)
	}
	g.Close()
}

func TestGameTrailUsesPointer(t *testing.T) {
	cfg := loadConfig(t)
	g := New(Options{Config: cfg, Seed: 1, Mode: particle.ShowFour, Logger: quiet})
	ptr := g.view.toWorld(123, 456)
	g.Step(ptr)
	ps := g.Controller().Active().Particles()
	if len(ps) != 1 || ps[0].Pos != ptr {
		t.Errorf("trail = %+v, want one particle at %v", ps, ptr)
	}
}
