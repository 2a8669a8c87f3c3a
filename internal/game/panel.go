package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/coffee-particles/internal/particle"
)

// Panel dimensions
const (
	panelX       = 10
	panelY       = 10
	panelWidth   = 240
	buttonHeight = 22
	buttonGap    = 4
	sliderHeight = 12
	rowHeight    = 34
)

var (
	panelBG      = color.NRGBA{R: 40, G: 40, B: 48, A: 220}
	buttonIdle   = color.NRGBA{R: 80, G: 80, B: 96, A: 255}
	buttonHover  = color.NRGBA{R: 120, G: 120, B: 150, A: 255}
	buttonActive = color.NRGBA{R: 200, G: 110, B: 90, A: 255}
	sliderTrack  = color.NRGBA{R: 70, G: 70, B: 80, A: 255}
	sliderFill   = color.NRGBA{R: 230, G: 140, B: 110, A: 255}
)

// pointer is one tick's mouse state in screen pixels.
type pointer struct {
	X, Y     int
	Down     bool // left button held
	Pressed  bool // left button went down this tick
	Released bool // left button went up this tick
}

type button struct {
	label string
	mode  particle.Mode
	rect  image.Rectangle
}

type slider struct {
	label    string
	min, max float64
	get      func(particle.Brew) float64
	set      func(*particle.Brew, float64)
	rect     image.Rectangle
}

func (s *slider) fraction(b particle.Brew) float64 {
	return clamp01((s.get(b) - s.min) / (s.max - s.min))
}

// Panel is the on-screen brew editor and mode switcher.
type Panel struct {
	buttons []button
	sliders []slider
	bounds  image.Rectangle
	limits  particle.Limits
	hover   int // button index under the pointer, -1 if none
	pressed int // button index the press started on
	drag    int // slider index being dragged, -1 if none
}

// NewPanel lays out the buttons and sliders for the given limits.
func NewPanel(limits particle.Limits) *Panel {
	p := &Panel{limits: limits, hover: -1, pressed: -1, drag: -1}

	labels := []struct {
		label string
		mode  particle.Mode
	}{
		{"Brew", particle.Setting},
		{"Teabag", particle.ShowOne},
		{"Sprinkle", particle.ShowTwo},
		{"Spread", particle.ShowThree},
		{"Follow", particle.ShowFour},
	}
	x, y := panelX+8, panelY+8
	w := (panelWidth - 16 - buttonGap) / 2
	for i, l := range labels {
		bx := x + (i%2)*(w+buttonGap)
		by := y + (i/2)*(buttonHeight+buttonGap)
		p.buttons = append(p.buttons, button{
			label: l.label,
			mode:  l.mode,
			rect:  image.Rect(bx, by, bx+w, by+buttonHeight),
		})
	}

	y += ((len(labels)+1)/2)*(buttonHeight+buttonGap) + 8
	p.sliders = []slider{
		{
			label: "Shape",
			min:   float64(limits.ResolutionMin),
			max:   float64(limits.ResolutionMax),
			get:   func(b particle.Brew) float64 { return float64(b.Resolution) },
			set:   func(b *particle.Brew, v float64) { b.Resolution = int(v + 0.5) },
		},
		{
			label: "Size",
			min:   limits.RadiusMin,
			max:   limits.RadiusMax,
			get:   func(b particle.Brew) float64 { return b.Radius },
			set:   func(b *particle.Brew, v float64) { b.Radius = v },
		},
		{
			label: "Hue",
			min:   0,
			max:   359.99,
			get:   func(b particle.Brew) float64 { return b.Color.Hue },
			set:   func(b *particle.Brew, v float64) { b.Color.Hue = v },
		},
		{
			label: "Saturation",
			min:   0,
			max:   1,
			get:   func(b particle.Brew) float64 { return b.Color.Saturation },
			set:   func(b *particle.Brew, v float64) { b.Color.Saturation = v },
		},
		{
			label: "Value",
			min:   0,
			max:   1,
			get:   func(b particle.Brew) float64 { return b.Color.Value },
			set:   func(b *particle.Brew, v float64) { b.Color.Value = v },
		},
	}
	for i := range p.sliders {
		sy := y + i*rowHeight + 14
		p.sliders[i].rect = image.Rect(x, sy, panelX+panelWidth-8, sy+sliderHeight)
	}
	p.bounds = image.Rect(panelX, panelY, panelX+panelWidth, y+len(p.sliders)*rowHeight+4)
	return p
}

// Contains reports whether the screen point is over the panel.
func (p *Panel) Contains(x, y int) bool {
	return image.Pt(x, y).In(p.bounds)
}

// Update applies one tick of pointer input. It edits brew in place and
// returns the mode of a button clicked this tick, if any.
func (p *Panel) Update(ptr pointer, brew *particle.Brew) (particle.Mode, bool) {
	at := image.Pt(ptr.X, ptr.Y)

	p.hover = -1
	for i := range p.buttons {
		if at.In(p.buttons[i].rect) {
			p.hover = i
		}
	}

	if ptr.Pressed {
		p.pressed = p.hover
		for i := range p.sliders {
			if at.In(p.sliders[i].rect) {
				p.drag = i
			}
		}
	}
	if p.drag >= 0 && ptr.Down {
		s := &p.sliders[p.drag]
		f := clamp01(float64(ptr.X-s.rect.Min.X) / float64(s.rect.Dx()))
		s.set(brew, s.min+f*(s.max-s.min))
		*brew = brew.Clamp(p.limits)
	}

	var clicked bool
	var mode particle.Mode
	if ptr.Released {
		if p.pressed >= 0 && p.pressed == p.hover {
			clicked, mode = true, p.buttons[p.pressed].mode
		}
		p.pressed = -1
		p.drag = -1
	}
	return mode, clicked
}

// Draw renders the panel with the current brew and mode.
func (p *Panel) Draw(dst *ebiten.Image, brew particle.Brew, mode particle.Mode) {
	b := p.bounds
	vector.DrawFilledRect(dst, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), panelBG, false)

	for i, btn := range p.buttons {
		c := buttonIdle
		switch {
		case btn.mode == mode:
			c = buttonActive
		case i == p.hover:
			c = buttonHover
		}
		r := btn.rect
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
		ebitenutil.DebugPrintAt(dst, btn.label, r.Min.X+6, r.Min.Y+3)
	}

	for i := range p.sliders {
		s := &p.sliders[i]
		r := s.rect
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%s: %s", s.label, formatValue(s.get(brew))), r.Min.X, r.Min.Y-15)
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), sliderTrack, false)
		w := float32(float64(r.Dx()) * s.fraction(brew))
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), w, float32(r.Dy()), sliderFill, false)
	}
}

func formatValue(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.2f", v)
}
