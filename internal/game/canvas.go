package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/coffee-particles/internal/particle"
)

var whiteSubImage *ebiten.Image

// solid returns a 1x1 white source image for DrawTriangles.
func solid() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// view maps the Y-up world, centred on the origin, onto screen pixels.
type view struct {
	halfW, halfH float64
}

func newView(width, height int) view {
	return view{halfW: float64(width) / 2, halfH: float64(height) / 2}
}

func (v view) toScreen(p r2.Vec) (float64, float64) {
	return p.X + v.halfW, v.halfH - p.Y
}

func (v view) toWorld(x, y int) r2.Vec {
	return r2.Vec{X: float64(x) - v.halfW, Y: v.halfH - float64(y)}
}

// screenCanvas draws particles onto an ebiten image.
type screenCanvas struct {
	view
	dst *ebiten.Image
	vs  []ebiten.Vertex
	is  []uint16
}

// FillCircle draws a regular polygon; fewer than three segments are drawn as
// a triangle since nothing smaller encloses an area.
func (c *screenCanvas) FillCircle(center r2.Vec, radius float64, segments int, col particle.HSVA) {
	if segments < 3 {
		segments = 3
	}
	var path vector.Path
	for i, pt := range polygon(c.view, center, radius, segments) {
		if i == 0 {
			path.MoveTo(pt[0], pt[1])
		} else {
			path.LineTo(pt[0], pt[1])
		}
	}
	path.Close()

	c.vs, c.is = path.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	r, g, b := hsvToRGB(col.Hue, col.Saturation, col.Value)
	for i := range c.vs {
		c.vs[i].SrcX = 1
		c.vs[i].SrcY = 1
		c.vs[i].ColorR = float32(r)
		c.vs[i].ColorG = float32(g)
		c.vs[i].ColorB = float32(b)
		c.vs[i].ColorA = float32(col.Alpha)
	}
	c.dst.DrawTriangles(c.vs, c.is, solid(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// FillSquare draws an axis-aligned square centred on center.
func (c *screenCanvas) FillSquare(center r2.Vec, side float64, col particle.HSVA) {
	x, y := c.toScreen(center)
	vector.DrawFilledRect(c.dst,
		float32(x-side/2), float32(y-side/2), float32(side), float32(side),
		toNRGBA(col), false)
}

// polygon returns the screen-space vertices of a regular polygon.
func polygon(v view, center r2.Vec, radius float64, segments int) [][2]float32 {
	pts := make([][2]float32, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x, y := v.toScreen(r2.Vec{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
		pts[i] = [2]float32{float32(x), float32(y)}
	}
	return pts
}

func toNRGBA(c particle.HSVA) color.NRGBA {
	r, g, b := hsvToRGB(c.Hue, c.Saturation, c.Value)
	return color.NRGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: uint8(math.Round(clamp01(c.Alpha) * 255)),
	}
}

// hsvToRGB converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
