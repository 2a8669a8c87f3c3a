package game

import (
	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/coffee-particles/internal/config"
	"github.com/olivierh59500/coffee-particles/internal/particle"
)

// Preview shows the current brew while the simulation is idle. Its radius
// breathes with 1D Perlin noise so slider changes are easy to spot.
type Preview struct {
	noise  *perlin.Perlin
	center r2.Vec
	wobble float64
	speed  float64
	t      float64
}

// NewPreview builds a preview from cfg with a seeded noise source.
func NewPreview(cfg config.PreviewConfig, seed int64) *Preview {
	return &Preview{
		noise:  perlin.NewPerlin(2, 2, 3, seed),
		center: r2.Vec{X: cfg.X, Y: cfg.Y},
		wobble: cfg.Wobble,
		speed:  cfg.NoiseSpeed,
	}
}

// Advance moves the noise forward by one tick.
func (p *Preview) Advance() {
	p.t += p.speed
}

// Radius is base scaled by the current noise sample, within ±wobble.
func (p *Preview) Radius(base float64) float64 {
	n := p.noise.Noise1D(p.t)
	if n > 1 {
		n = 1
	} else if n < -1 {
		n = -1
	}
	return base * (1 + p.wobble*n)
}

// Draw renders brew as a fully opaque shape at the preview point.
func (p *Preview) Draw(cv particle.Canvas, brew particle.Brew) {
	cv.FillCircle(p.center, p.Radius(brew.Radius), brew.Resolution, particle.HSVA{HSV: brew.Color, Alpha: 1})
}
