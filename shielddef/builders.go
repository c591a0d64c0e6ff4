package shielddef

import (
	"image/color"
	"math"

	"github.com/jamesrr39/ownmap-shields/shielddraw"
	"github.com/jamesrr39/ownmap-shields/shieldtext"
)

// Each builder returns a new definition. A nil textColor means the text is
// written in the outline colour. A rectWidth of 0 makes the badge as wide as the ref needs.

func shapeDefinition(shape shielddraw.Shape, textColor color.Color, constraint shieldtext.Constraint, padding shieldtext.Padding) *Definition {
	if textColor == nil {
		textColor = shape.StrokeColor
	}
	return &Definition{
		Shape:          &shape,
		TextConstraint: constraint,
		Padding:        padding,
		TextColor:      textColor,
	}
}

func ellipseConstraint() shieldtext.Constraint {
	return shieldtext.Constraint{Kind: shieldtext.ConstraintEllipse}
}

func roundedRectConstraint(radius float64) shieldtext.Constraint {
	return shieldtext.Constraint{Kind: shieldtext.ConstraintRoundedRect, Radius: radius}
}

func tanDegrees(angle float64) float64 {
	return math.Tan(angle * math.Pi / 180)
}

func OvalShield(fill, stroke, textColor color.Color, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindEllipse, FillColor: fill, StrokeColor: stroke, RectWidth: rectWidth},
		textColor,
		ellipseConstraint(),
		shieldtext.UniformPadding(2),
	)
}

func CircleShield(fill, stroke, textColor color.Color) *Definition {
	return OvalShield(fill, stroke, textColor, 20)
}

func RoundedRectShield(fill, stroke, textColor color.Color, rectWidth, radius float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindRoundedRectangle, FillColor: fill, StrokeColor: stroke, RectWidth: rectWidth, Radius: radius},
		textColor,
		roundedRectConstraint(radius),
		shieldtext.UniformPadding(3),
	)
}

// PillShield is a rectangle with fully rounded ends
func PillShield(fill, stroke, textColor color.Color, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindRoundedRectangle, FillColor: fill, StrokeColor: stroke, RectWidth: rectWidth, Radius: 10},
		textColor,
		ellipseConstraint(),
		shieldtext.UniformPadding(2),
	)
}

// EscutcheonDownShield: offset is the height of the curved part at the bottom
func EscutcheonDownShield(offset float64, fill, stroke, textColor color.Color, radius, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindEscutcheon, Offset: offset, FillColor: fill, StrokeColor: stroke, RectWidth: rectWidth, Radius: radius, OutlineWidth: 1},
		textColor,
		roundedRectConstraint(radius),
		shieldtext.Padding{Left: 2, Right: 2, Top: 2, Bottom: offset / 2},
	)
}

func FishheadDownShield(fill, stroke, textColor color.Color, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindFishhead, FillColor: fill, StrokeColor: stroke, RectWidth: rectWidth, OutlineWidth: 1},
		textColor,
		roundedRectConstraint(0),
		shieldtext.Padding{Left: 3, Right: 3, Top: 2, Bottom: 6},
	)
}

func TriangleDownShield(fill, stroke, textColor color.Color, radius, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindTriangle, FillColor: fill, StrokeColor: stroke, RectWidth: rectWidth, Radius: radius},
		textColor,
		shieldtext.Constraint{Kind: shieldtext.ConstraintTriangleDown},
		shieldtext.Padding{Left: 1, Right: 1, Top: 2, Bottom: 1},
	)
}

// TrapezoidDownShield has its short side at the bottom. angle is how far the sides lean, in degrees.
func TrapezoidDownShield(angle float64, fill, stroke, textColor color.Color, radius, rectWidth float64) *Definition {
	side := 2 + 10*tanDegrees(angle)
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindTrapezoid, Angle: angle, FillColor: fill, StrokeColor: stroke, RectWidth: rectWidth, Radius: radius},
		textColor,
		roundedRectConstraint(radius),
		shieldtext.Padding{Left: side, Right: side, Top: 2, Bottom: 4},
	)
}

func TrapezoidUpShield(angle float64, fill, stroke, textColor color.Color, radius, rectWidth float64) *Definition {
	side := 2 + 10*tanDegrees(angle)
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindTrapezoid, ShortSideUp: true, Angle: angle, FillColor: fill, StrokeColor: stroke, RectWidth: rectWidth, Radius: radius},
		textColor,
		roundedRectConstraint(radius),
		shieldtext.Padding{Left: side, Right: side, Top: 4, Bottom: 2},
	)
}

func DiamondShield(fill, stroke, textColor color.Color, radius, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindDiamond, FillColor: fill, StrokeColor: stroke, RectWidth: rectWidth, Radius: radius},
		textColor,
		shieldtext.Constraint{Kind: shieldtext.ConstraintDiamond},
		shieldtext.UniformPadding(1),
	)
}

// PentagonUpShield points up. offset is the height of the pointed part; angle is how far the sides lean in towards the bottom.
func PentagonUpShield(offset, angle float64, fill, stroke, textColor color.Color, radius1, radius2, rectWidth float64) *Definition {
	side := 2 + (20-offset)*tanDegrees(angle)/2
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindPentagon, PointUp: true, Offset: offset, Angle: angle, FillColor: fill, StrokeColor: stroke, Radius1: radius1, Radius2: radius2, RectWidth: rectWidth},
		textColor,
		shieldtext.Constraint{Kind: shieldtext.ConstraintRect},
		shieldtext.Padding{Left: side, Right: side, Top: 1 + offset/2, Bottom: 3},
	)
}

// HomePlateDownShield is a pentagon with vertical sides and the point at the bottom
func HomePlateDownShield(offset float64, fill, stroke, textColor color.Color, radius1, radius2, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindPentagon, Offset: offset, FillColor: fill, StrokeColor: stroke, Radius1: radius1, Radius2: radius2, RectWidth: rectWidth},
		textColor,
		roundedRectConstraint(radius2),
		shieldtext.Padding{Left: 2, Right: 2, Top: 2, Bottom: 1 + offset},
	)
}

func HomePlateUpShield(offset float64, fill, stroke, textColor color.Color, radius1, radius2, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindPentagon, PointUp: true, Offset: offset, FillColor: fill, StrokeColor: stroke, Radius1: radius1, Radius2: radius2, RectWidth: rectWidth},
		textColor,
		roundedRectConstraint(radius2),
		shieldtext.Padding{Left: 2, Right: 2, Top: 1 + offset, Bottom: 2},
	)
}

func HexagonVerticalShield(offset float64, fill, stroke, textColor color.Color, radius, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindHexagonVertical, Offset: offset, FillColor: fill, StrokeColor: stroke, Radius: radius, RectWidth: rectWidth},
		textColor,
		roundedRectConstraint(radius),
		shieldtext.Padding{Left: 2, Right: 2, Top: 1 + offset, Bottom: 1 + offset},
	)
}

// HexagonHorizontalShield has points on the left and right. angle is how far the sides lean, in degrees.
func HexagonHorizontalShield(angle float64, fill, stroke, textColor color.Color, radius, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindHexagonHorizontal, Angle: angle, FillColor: fill, StrokeColor: stroke, Radius: radius, RectWidth: rectWidth},
		textColor,
		ellipseConstraint(),
		shieldtext.Padding{Left: 3, Right: 3, Top: 2, Bottom: 2},
	)
}

func OctagonVerticalShield(offset, angle float64, fill, stroke, textColor color.Color, radius, rectWidth float64) *Definition {
	return shapeDefinition(
		shielddraw.Shape{Kind: shielddraw.KindOctagonVertical, Offset: offset, Angle: angle, FillColor: fill, StrokeColor: stroke, Radius: radius, RectWidth: rectWidth},
		textColor,
		ellipseConstraint(),
		shieldtext.UniformPadding(2),
	)
}

// SpriteShield draws the badge from sprite artwork. With several names, the narrowest
// one that leaves room for a readable ref is picked.
func SpriteShield(textColor color.Color, constraint shieldtext.Constraint, padding shieldtext.Padding, spriteNames ...string) *Definition {
	return &Definition{
		ArtworkNames:   spriteNames,
		TextConstraint: constraint,
		Padding:        padding,
		TextColor:      textColor,
	}
}

// PictorialShield is artwork with no ref written on it
func PictorialShield(spriteName string) *Definition {
	return &Definition{
		ArtworkNames: []string{spriteName},
		NoText:       true,
	}
}

// Bannered adds plaques above a copy of the definition
func Bannered(def *Definition, banners ...string) *Definition {
	c := def.clone()
	c.Banners = append(c.Banners, banners...)
	return c
}

// WithColorSwap recolours a copy of the definition: black becomes lighten, white becomes darken.
// The recolouring happens after the text is drawn, so textColor is the colour before the swap.
func WithColorSwap(def *Definition, textColor, lighten, darken color.Color) *Definition {
	c := def.clone()
	c.TextColor = textColor
	c.ColorLighten = lighten
	c.ColorDarken = darken
	return c
}

// Reflected turns a copy of an artwork definition upside down, with new padding
func Reflected(def *Definition, padding shieldtext.Padding) *Definition {
	c := def.clone()
	c.VerticalReflect = !c.VerticalReflect
	c.Padding = padding
	return c
}

// Multi-use templates, built on shared sprite artwork

func TriangleConvexDownShield() *Definition {
	return SpriteShield(Black, ellipseConstraint(), shieldtext.Padding{Left: 2, Right: 2, Top: 1, Bottom: 5}, "shield_tri_convex_2", "shield_tri_convex_3")
}

func TriangleConvexDownShieldBlue() *Definition {
	return WithColorSwap(TriangleConvexDownShield(), Black, White, Blue)
}

func TriangleConvexDownShieldRedBlue() *Definition {
	return WithColorSwap(TriangleConvexDownShield(), Black, Blue, Red)
}

func TriangleConvexUpShield() *Definition {
	return Reflected(TriangleConvexDownShield(), shieldtext.Padding{Left: 2, Right: 2, Top: 5, Bottom: 1})
}

func BadgeShield() *Definition {
	return SpriteShield(Black, shieldtext.Constraint{Kind: shieldtext.ConstraintRect}, shieldtext.Padding{Left: 2, Right: 2, Top: 4, Bottom: 5}, "shield_badge_2", "shield_badge_3")
}

func BadgeShieldCrossbar() *Definition {
	return SpriteShield(Black, shieldtext.Constraint{Kind: shieldtext.ConstraintRect}, shieldtext.Padding{Left: 1, Right: 1, Top: 6, Bottom: 4}, "shield_badge_crossbar_2", "shield_badge_crossbar_3")
}
