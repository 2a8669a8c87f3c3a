// Package particle implements the simulation core: particles, the per-variant
// populations that spawn and cull them, the pairwise repulsion pass and the
// mode controller that decides which population is driven each tick.
package particle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Simulation constants
const (
	InitialLife   = 255.0
	RepelStrength = 0.5
	Gravity       = 0.05 // Baseline downward bias for non-interacting variants
)

// HSV is a colour with hue in degrees [0,360) and saturation/value in [0,1].
type HSV struct {
	Hue        float64 `yaml:"hue"`
	Saturation float64 `yaml:"saturation"`
	Value      float64 `yaml:"value"`
}

// Brew is the panel-editable look of newly spawned particles. It is always
// passed by value so a spawn sees a snapshot of it.
type Brew struct {
	Radius     float64 `yaml:"radius"`
	Color      HSV     `yaml:"color"`
	Resolution int     `yaml:"resolution"`
}

// Limits bounds the brew fields the panel may set.
type Limits struct {
	RadiusMin     float64 `yaml:"radius_min"`
	RadiusMax     float64 `yaml:"radius_max"`
	ResolutionMin int     `yaml:"resolution_min"`
	ResolutionMax int     `yaml:"resolution_max"`
}

// Clamp returns b with every field forced into range.
func (b Brew) Clamp(l Limits) Brew {
	b.Radius = clampF(b.Radius, l.RadiusMin, l.RadiusMax)
	if b.Resolution < l.ResolutionMin {
		b.Resolution = l.ResolutionMin
	}
	if b.Resolution > l.ResolutionMax {
		b.Resolution = l.ResolutionMax
	}
	b.Color.Hue = math.Mod(b.Color.Hue, 360)
	if b.Color.Hue < 0 {
		b.Color.Hue += 360
	}
	b.Color.Saturation = clampF(b.Color.Saturation, 0, 1)
	b.Color.Value = clampF(b.Color.Value, 0, 1)
	return b
}

// Particle is a single simulated point. Visual attributes are fixed at spawn.
type Particle struct {
	ID         uint64
	Pos        r2.Vec
	Vel        r2.Vec
	Acc        r2.Vec
	Life       float64
	Radius     float64
	Color      HSV
	Resolution int
}

// Dead reports whether the particle has run out of life.
func (p *Particle) Dead() bool {
	return p.Life < 0
}

// Alpha maps remaining life to an opacity in [0,1].
func (p *Particle) Alpha() float64 {
	return clampF(p.Life/InitialLife, 0, 1)
}

func clampF(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
