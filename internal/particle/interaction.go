package particle

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Broadphase selects how neighbour candidates are found for the repulsion pass.
type Broadphase int

const (
	Naive Broadphase = iota // every pair, O(n²)
	Grid                    // uniform bins sized to the largest radius
)

// ParseBroadphase maps a config string to a Broadphase.
func ParseBroadphase(s string) (Broadphase, error) {
	switch s {
	case "", "naive":
		return Naive, nil
	case "grid":
		return Grid, nil
	}
	return Naive, fmt.Errorf("unknown broadphase %q", s)
}

func (b Broadphase) String() string {
	if b == Grid {
		return "grid"
	}
	return "naive"
}

// Repulsion returns the force acting on p from every other particle in
// snapshot. A neighbour closer than p.Radius pushes with RepelStrength along
// the unit vector from it to p. Coincident particles contribute nothing.
func Repulsion(p *Particle, snapshot []Particle) r2.Vec {
	var f r2.Vec
	for i := range snapshot {
		f = r2.Add(f, pairForce(p, &snapshot[i]))
	}
	return f
}

func pairForce(p, q *Particle) r2.Vec {
	if q.ID == p.ID {
		return r2.Vec{}
	}
	dir := r2.Sub(p.Pos, q.Pos)
	d := r2.Norm(dir)
	if d >= p.Radius || d == 0 || math.IsNaN(d) {
		return r2.Vec{}
	}
	return r2.Vec{X: dir.X / d * RepelStrength, Y: dir.Y / d * RepelStrength}
}

// interact accumulates repulsion into every particle. Forces are computed
// from a frozen copy so the pass is independent of iteration order.
func interact(ps []Particle, bp Broadphase) {
	if len(ps) < 2 {
		return
	}
	snapshot := make([]Particle, len(ps))
	copy(snapshot, ps)

	if bp == Grid {
		interactBinned(ps, snapshot)
		return
	}
	for i := range ps {
		ps[i].ApplyForce(Repulsion(&ps[i], snapshot))
	}
}

type binKey struct{ x, y int }

// interactBinned buckets the snapshot into square cells no smaller than the
// largest radius, so every neighbour in range sits in the 3x3 block around a
// particle's own cell.
func interactBinned(ps, snapshot []Particle) {
	size := 0.0
	for i := range snapshot {
		size = math.Max(size, snapshot[i].Radius)
	}
	if size <= 0 {
		return
	}

	bins := make(map[binKey][]int)
	for i := range snapshot {
		k := cellOf(snapshot[i].Pos, size)
		bins[k] = append(bins[k], i)
	}

	for i := range ps {
		p := &ps[i]
		k := cellOf(snapshot[i].Pos, size)
		var f r2.Vec
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range bins[binKey{k.x + dx, k.y + dy}] {
					f = r2.Add(f, pairForce(p, &snapshot[j]))
				}
			}
		}
		p.ApplyForce(f)
	}
}

func cellOf(v r2.Vec, size float64) binKey {
	return binKey{int(math.Floor(v.X / size)), int(math.Floor(v.Y / size))}
}
