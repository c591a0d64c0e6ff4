package shielddraw

import (
	"math"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

// Draw rasterises a shape at the given size (badge units).
// It is a pure function of its arguments.
func Draw(shape Shape, width, height, pixelRatio float64) *Raster {
	raster := NewRaster(width, height, pixelRatio)

	gc := draw2dimg.NewGraphicContext(raster.Img)
	gc.SetFillColor(shape.FillColor)
	gc.SetLineJoin(draw2d.MiterJoin)

	outline := shape.outlineWidth() * pixelRatio
	if shape.StrokeColor != nil {
		gc.SetStrokeColor(shape.StrokeColor)
		gc.SetLineWidth(outline)
	}

	b := &box{
		x1: outline / 2,
		y1: outline / 2,
		x2: float64(raster.Width()) - outline/2,
		y2: float64(raster.Height()) - outline/2,
	}

	p := &pen{gc: gc, height: float64(raster.Height())}

	gc.BeginPath()
	traceOutline(p, b, shape, pixelRatio)

	if shape.StrokeColor != nil {
		gc.FillStroke()
	} else {
		gc.Fill()
	}

	return raster
}

// box is the area inside the outline, in pixels
type box struct {
	x1, y1, x2, y2 float64
}

func (b *box) width() float64 {
	return b.x2 - b.x1
}

func (b *box) height() float64 {
	return b.y2 - b.y1
}

func (b *box) centerX() float64 {
	return (b.x1 + b.x2) / 2
}

func (b *box) centerY() float64 {
	return (b.y1 + b.y2) / 2
}

func traceOutline(p *pen, b *box, shape Shape, pixelRatio float64) {
	px := func(units float64) float64 {
		return units * pixelRatio
	}
	tan := math.Tan(shape.Angle * math.Pi / 180)

	switch shape.Kind {
	case KindEllipse:
		draw2dkit.Ellipse(p.gc, b.centerX(), b.centerY(), b.width()/2, b.height()/2)
	case KindRoundedRectangle:
		radius := math.Min(px(shape.Radius), math.Min(b.width(), b.height())/2)
		draw2dkit.RoundedRectangle(p.gc, b.x1, b.y1, b.x2, b.y2, radius*2, radius*2)
	case KindEscutcheon:
		p.flipY = shape.PointUp
		traceEscutcheon(p, b, px(shape.Offset), px(shape.Radius))
	case KindFishhead:
		p.flipY = shape.PointUp
		traceFishhead(p, b, px(shape.Radius))
	case KindTriangle:
		p.flipY = shape.PointUp
		radius := px(shape.Radius)
		p.roundedPolygon([]vertex{
			{b.x1, b.y1, radius},
			{b.x2, b.y1, radius},
			{b.centerX(), b.y2, radius},
		})
	case KindTrapezoid:
		p.flipY = shape.ShortSideUp
		radius := px(shape.Radius)
		inset := b.height() * tan
		p.roundedPolygon([]vertex{
			{b.x1, b.y1, radius},
			{b.x2, b.y1, radius},
			{b.x2 - inset, b.y2, radius},
			{b.x1 + inset, b.y2, radius},
		})
	case KindDiamond:
		radius := px(shape.Radius)
		p.roundedPolygon([]vertex{
			{b.centerX(), b.y1, radius},
			{b.x2, b.centerY(), radius},
			{b.centerX(), b.y2, radius},
			{b.x1, b.centerY(), radius},
		})
	case KindPentagon:
		// drawn pointing down, flipped when pointing up
		p.flipY = shape.PointUp
		offset := px(shape.Offset)
		flatRadius := px(shape.Radius2)
		pointRadius := px(shape.Radius1)
		inset := (b.height() - offset) * tan
		p.roundedPolygon([]vertex{
			{b.x1 + inset, b.y1, flatRadius},
			{b.x2 - inset, b.y1, flatRadius},
			{b.x2, b.y2 - offset, pointRadius},
			{b.centerX(), b.y2, pointRadius},
			{b.x1, b.y2 - offset, pointRadius},
		})
	case KindHexagonVertical:
		offset := px(shape.Offset)
		radius := px(shape.Radius)
		p.roundedPolygon([]vertex{
			{b.centerX(), b.y1, radius},
			{b.x2, b.y1 + offset, radius},
			{b.x2, b.y2 - offset, radius},
			{b.centerX(), b.y2, radius},
			{b.x1, b.y2 - offset, radius},
			{b.x1, b.y1 + offset, radius},
		})
	case KindHexagonHorizontal:
		radius := px(shape.Radius)
		inset := b.height() / 2 * tan
		p.roundedPolygon([]vertex{
			{b.x1 + inset, b.y1, radius},
			{b.x2 - inset, b.y1, radius},
			{b.x2, b.centerY(), radius},
			{b.x2 - inset, b.y2, radius},
			{b.x1 + inset, b.y2, radius},
			{b.x1, b.centerY(), radius},
		})
	case KindOctagonVertical:
		offset := px(shape.Offset)
		radius := px(shape.Radius)
		inset := offset * tan
		p.roundedPolygon([]vertex{
			{b.x1 + inset, b.y1, radius},
			{b.x2 - inset, b.y1, radius},
			{b.x2, b.y1 + offset, radius},
			{b.x2, b.y2 - offset, radius},
			{b.x2 - inset, b.y2, radius},
			{b.x1 + inset, b.y2, radius},
			{b.x1, b.y2 - offset, radius},
			{b.x1, b.y1 + offset, radius},
		})
	default:
		// unreachable for validated shapes; a plain rectangle keeps the badge visible
		draw2dkit.Rectangle(p.gc, b.x1, b.y1, b.x2, b.y2)
	}
}

// traceEscutcheon: a heraldic shield. Rounded top corners, straight sides,
// then two curves meeting in a point at the bottom.
func traceEscutcheon(p *pen, b *box, offset, radius float64) {
	radius = math.Min(radius, b.width()/2)
	sideBottom := b.y2 - offset

	p.moveTo(b.x1, b.y1+radius)
	p.quadCurveTo(b.x1, b.y1, b.x1+radius, b.y1)
	p.lineTo(b.x2-radius, b.y1)
	p.quadCurveTo(b.x2, b.y1, b.x2, b.y1+radius)
	p.lineTo(b.x2, sideBottom)
	p.quadCurveTo(b.x2, sideBottom+offset/2, b.centerX(), b.y2)
	p.quadCurveTo(b.x1, sideBottom+offset/2, b.x1, sideBottom)
	p.close()
}

// traceFishhead: flat top, sides running halfway down, then concave curves into the point
func traceFishhead(p *pen, b *box, radius float64) {
	radius = math.Min(radius, b.width()/2)
	sideBottom := b.centerY()
	halfWidth := b.width() / 2
	curveDepth := b.y2 - sideBottom

	p.moveTo(b.x1, b.y1+radius)
	p.quadCurveTo(b.x1, b.y1, b.x1+radius, b.y1)
	p.lineTo(b.x2-radius, b.y1)
	p.quadCurveTo(b.x2, b.y1, b.x2, b.y1+radius)
	p.lineTo(b.x2, sideBottom)
	p.quadCurveTo(b.centerX()+halfWidth*0.3, sideBottom+curveDepth*0.4, b.centerX(), b.y2)
	p.quadCurveTo(b.centerX()-halfWidth*0.3, sideBottom+curveDepth*0.4, b.x1, sideBottom)
	p.close()
}
