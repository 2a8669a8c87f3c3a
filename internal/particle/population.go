package particle

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Grid layout
const (
	GridCols = 50
	GridRows = 50
)

// Rect is an axis-aligned rectangle in world coordinates.
type Rect struct {
	Min, Max r2.Vec
}

// Width of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether v lies inside r, edges included.
func (r Rect) Contains(v r2.Vec) bool {
	return v.X >= r.Min.X && v.X <= r.Max.X && v.Y >= r.Min.Y && v.Y <= r.Max.Y
}

// Input is what the outside world supplies to a population each tick.
type Input struct {
	Brew    Brew
	Pointer r2.Vec
}

// Population is an ordered set of particles with one variant's spawn, update
// and removal rules.
type Population struct {
	variant    Variant
	policy     Policy
	particles  []Particle
	origin     r2.Vec
	bounds     Rect
	cell       float64
	intact     bool
	nextID     uint64
	broadphase Broadphase
	rng        *rand.Rand
}

// NewStaticGrid lays out a 50x50 motionless grid starting at origin, one cell
// apart, left to right then top to bottom.
func NewStaticGrid(origin r2.Vec, cell float64, rng *rand.Rand) *Population {
	ps := newPopulation(StaticGrid, rng)
	ps.origin = origin
	ps.cell = cell
	ps.intact = true
	ps.particles = make([]Particle, 0, GridCols*GridRows)
	for i := 0; i < GridCols*GridRows; i++ {
		pos := r2.Vec{
			X: origin.X + float64(i%GridCols)*cell,
			Y: origin.Y - float64(i/GridCols)*cell,
		}
		ps.add(pos, Brew{Radius: cell, Resolution: 4})
	}
	return ps
}

// NewStream creates an empty stream emitting at origin.
func NewStream(origin r2.Vec, rng *rand.Rand) *Population {
	ps := newPopulation(Stream, rng)
	ps.origin = origin
	return ps
}

// NewRepellingCloud creates an empty cloud that spawns anywhere inside bounds.
func NewRepellingCloud(bounds Rect, bp Broadphase, rng *rand.Rand) *Population {
	ps := newPopulation(RepellingCloud, rng)
	ps.bounds = bounds
	ps.broadphase = bp
	return ps
}

// NewTrailingCursor creates an empty trail that follows the pointer.
func NewTrailingCursor(rng *rand.Rand) *Population {
	return newPopulation(TrailingCursor, rng)
}

func newPopulation(v Variant, rng *rand.Rand) *Population {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Population{
		variant: v,
		policy:  PolicyFor(v),
		rng:     rng,
	}
}

// Variant of the population.
func (ps *Population) Variant() Variant { return ps.variant }

// Policy of the population.
func (ps *Population) Policy() Policy { return ps.policy }

// Particles returns the live particles. The slice is owned by the population
// and is only valid until the next Step.
func (ps *Population) Particles() []Particle { return ps.particles }

// Len returns the number of live particles.
func (ps *Population) Len() int { return len(ps.particles) }

// Origin is the point the most recent particle was spawned at.
func (ps *Population) Origin() r2.Vec { return ps.origin }

// Intact reports whether a grid is still frozen. Other variants are never intact.
func (ps *Population) Intact() bool { return ps.intact }

// CellSize is the grid spacing, zero for other variants.
func (ps *Population) CellSize() float64 { return ps.cell }

// Shatter releases a frozen grid. It returns false for other variants.
func (ps *Population) Shatter() bool {
	if ps.variant != StaticGrid {
		return false
	}
	ps.intact = false
	return true
}

// Reset drops every particle.
func (ps *Population) Reset() {
	ps.particles = ps.particles[:0]
}

// Step runs one tick: the repulsion pass when the variant interacts, then
// integration with removal of expired particles right after their own update,
// then the spawn of this tick's particle.
func (ps *Population) Step(in Input) {
	if ps.variant == StaticGrid && ps.intact {
		return
	}
	if ps.policy.Interacts {
		interact(ps.particles, ps.broadphase)
	}
	for i := len(ps.particles) - 1; i >= 0; i-- {
		ps.particles[i].Integrate(ps.policy)
		if ps.policy.Culls && ps.particles[i].Dead() {
			ps.particles = append(ps.particles[:i], ps.particles[i+1:]...)
		}
	}
	ps.spawn(in)
}

func (ps *Population) spawn(in Input) {
	switch ps.policy.Spawn {
	case SpawnNone:
		return
	case SpawnRandomOrigin:
		ps.origin = r2.Vec{
			X: ps.bounds.Min.X + ps.rng.Float64()*ps.bounds.Width(),
			Y: ps.bounds.Min.Y + ps.rng.Float64()*ps.bounds.Height(),
		}
	case SpawnPointerOrigin:
		ps.origin = in.Pointer
	}
	ps.add(ps.origin, in.Brew)
}

func (ps *Population) add(pos r2.Vec, b Brew) {
	vel := r2.Vec{X: ps.rng.Float64()*2 - 1, Y: ps.rng.Float64() - 1}
	if ps.policy.FullSpread {
		vel.Y = ps.rng.Float64()*2 - 1
	}
	ps.particles = append(ps.particles, Particle{
		ID:         ps.nextID,
		Pos:        pos,
		Vel:        vel,
		Acc:        ps.policy.Gravity,
		Life:       InitialLife,
		Radius:     b.Radius,
		Color:      b.Color,
		Resolution: b.Resolution,
	})
	ps.nextID++
}
