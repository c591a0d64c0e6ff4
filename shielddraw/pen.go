package shielddraw

import (
	"math"

	"github.com/llgcode/draw2d/draw2dimg"
)

// pen traces paths onto a graphic context, optionally mirrored top to bottom
// so that one outline serves both the pointing-down and pointing-up variants
type pen struct {
	gc     *draw2dimg.GraphicContext
	height float64
	flipY  bool
}

func (p *pen) y(y float64) float64 {
	if p.flipY {
		return p.height - y
	}
	return y
}

func (p *pen) moveTo(x, y float64) {
	p.gc.MoveTo(x, p.y(y))
}

func (p *pen) lineTo(x, y float64) {
	p.gc.LineTo(x, p.y(y))
}

func (p *pen) quadCurveTo(cx, cy, x, y float64) {
	p.gc.QuadCurveTo(cx, p.y(cy), x, p.y(y))
}

func (p *pen) close() {
	p.gc.Close()
}

type vertex struct {
	x, y, radius float64
}

// roundedPolygon traces a closed polygon. Each corner is cut at the vertex's
// radius along both edges and joined with a curve using the vertex as control point.
// A radius is limited to half of the shorter adjacent edge.
func (p *pen) roundedPolygon(vertices []vertex) {
	count := len(vertices)
	for i, v := range vertices {
		prev := vertices[(i+count-1)%count]
		next := vertices[(i+1)%count]

		radius := math.Min(v.radius, math.Min(distance(v, prev), distance(v, next))/2)

		inX, inY := towards(v, prev, radius)
		outX, outY := towards(v, next, radius)

		if i == 0 {
			p.moveTo(inX, inY)
		} else {
			p.lineTo(inX, inY)
		}

		if radius > 0 {
			p.quadCurveTo(v.x, v.y, outX, outY)
		}
	}
	p.close()
}

func distance(a, b vertex) float64 {
	return math.Hypot(b.x-a.x, b.y-a.y)
}

// towards gives the point at the given distance from a, in the direction of b
func towards(a, b vertex, dist float64) (float64, float64) {
	length := distance(a, b)
	if length == 0 {
		return a.x, a.y
	}
	return a.x + (b.x-a.x)*dist/length, a.y + (b.y-a.y)*dist/length
}
