package particle

import "gonum.org/v1/gonum/spatial/r2"

// Integrate advances p by one explicit Euler step. Displacement is subtracted
// from the position, so a positive Y acceleration drifts particles down in the
// Y-up world.
func (p *Particle) Integrate(pol Policy) {
	p.Vel = r2.Add(p.Vel, p.Acc)
	p.Pos = r2.Sub(p.Pos, p.Vel)
	p.Life -= pol.Decrement
	if pol.ResetAcceleration {
		p.Acc = r2.Vec{}
	}
}

// ApplyForce accumulates f into the acceleration.
func (p *Particle) ApplyForce(f r2.Vec) {
	p.Acc = r2.Add(p.Acc, f)
}
