package particle

import "gonum.org/v1/gonum/spatial/r2"

// HSVA is an HSV colour with straight alpha in [0,1].
type HSVA struct {
	HSV
	Alpha float64
}

// Canvas is the drawing surface the core renders into. Coordinates are world
// coordinates: origin at the centre of the visible area, Y up.
type Canvas interface {
	// FillCircle draws a filled regular polygon with the given segment count.
	FillCircle(center r2.Vec, radius float64, segments int, c HSVA)
	// FillSquare draws an axis-aligned filled square centred on center.
	FillSquare(center r2.Vec, side float64, c HSVA)
}

var gridInk = HSV{} // black

// Draw renders every particle. Grid particles are black squares; stream and
// trail particles use the brew radius as their diameter, the cloud uses it
// as the radius.
func (ps *Population) Draw(cv Canvas) {
	for i := range ps.particles {
		p := &ps.particles[i]
		if p.Dead() && ps.policy.Culls {
			continue
		}
		c := HSVA{HSV: p.Color, Alpha: p.Alpha()}
		switch ps.variant {
		case StaticGrid:
			cv.FillSquare(p.Pos, p.Radius, HSVA{HSV: gridInk, Alpha: p.Alpha()})
		case RepellingCloud:
			cv.FillCircle(p.Pos, p.Radius, p.Resolution, c)
		default:
			cv.FillCircle(p.Pos, p.Radius/2, p.Resolution, c)
		}
	}
}

// Draw renders the active population. Setting draws nothing here; the brew
// preview belongs to the caller.
func (c *Controller) Draw(cv Canvas) {
	if ps := c.Active(); ps != nil {
		ps.Draw(cv)
	}
}
