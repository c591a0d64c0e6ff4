package shieldtext

import (
	"math"

	"github.com/jamesrr39/goutil/errorsx"
)

// ConstraintKind describes how the usable area for text narrows inside a badge
type ConstraintKind int

const (
	ConstraintRect ConstraintKind = iota
	ConstraintRoundedRect
	ConstraintEllipse
	ConstraintTriangleDown
	ConstraintDiamond
)

var constraintNames = map[ConstraintKind]string{
	ConstraintRect:         "rect",
	ConstraintRoundedRect:  "roundedRect",
	ConstraintEllipse:      "ellipse",
	ConstraintTriangleDown: "triangleDown",
	ConstraintDiamond:      "diamond",
}

func (k ConstraintKind) String() string {
	name, ok := constraintNames[k]
	if !ok {
		return "unknown"
	}
	return name
}

func ParseConstraintKind(name string) (ConstraintKind, errorsx.Error) {
	for kind, kindName := range constraintNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, errorsx.Errorf("unknown text constraint %q", name)
}

type VerticalAlign int

const (
	AlignMiddle VerticalAlign = iota
	AlignTop
)

type Size struct {
	Width, Height float64
}

type Constraint struct {
	Kind ConstraintKind
	// Radius of the corners, for ConstraintRoundedRect. Same unit as the sizes passed to Scale.
	Radius float64
}

// Scale is the largest factor the text box can be multiplied by and still fit in the space.
// The text fits as it is when the result is at least 1.
func (c Constraint) Scale(space, text Size) float64 {
	if text.Width <= 0 || text.Height <= 0 {
		return math.Inf(1)
	}
	if space.Width <= 0 || space.Height <= 0 {
		return 0
	}

	switch c.Kind {
	case ConstraintRoundedRect:
		// the largest box inside a quarter circle corner loses r*(2-√2) on each axis
		shrink := c.Radius * (2 - math.Sqrt2)
		return rectScale(Size{space.Width - shrink, space.Height - shrink}, text)
	case ConstraintEllipse:
		a, b := space.Width, space.Height
		return a * b / math.Sqrt(a*a*text.Height*text.Height+b*b*text.Width*text.Width)
	case ConstraintTriangleDown, ConstraintDiamond:
		// width available at a depth d below the widest line shrinks linearly: w * (1 - d/h)
		return space.Width / (text.Width + space.Width*text.Height/space.Height)
	default:
		return rectScale(space, text)
	}
}

func rectScale(space, text Size) float64 {
	if space.Width <= 0 || space.Height <= 0 {
		return 0
	}
	return math.Min(space.Width/text.Width, space.Height/text.Height)
}

func (c Constraint) MaxLines() int {
	switch c.Kind {
	case ConstraintTriangleDown, ConstraintDiamond:
		return 1
	default:
		return 2
	}
}

func (c Constraint) VerticalAlign() VerticalAlign {
	if c.Kind == ConstraintTriangleDown {
		return AlignTop
	}
	return AlignMiddle
}

// Padding is the distance, in badge units, between the badge edge and the text area
type Padding struct {
	Left, Right, Top, Bottom float64
}

func UniformPadding(p float64) Padding {
	return Padding{p, p, p, p}
}

func (p Padding) Validate() errorsx.Error {
	for _, value := range []float64{p.Left, p.Right, p.Top, p.Bottom} {
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return errorsx.Errorf("malformed padding: %+v", p)
		}
	}
	return nil
}
