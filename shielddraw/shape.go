package shielddraw

import (
	"image/color"

	"github.com/jamesrr39/goutil/errorsx"
)

// Kind is the closed set of outlines the drawer knows about
type Kind int

const (
	KindUnknown Kind = iota
	KindRoundedRectangle
	KindEllipse
	KindEscutcheon
	KindFishhead
	KindTriangle
	KindTrapezoid
	KindDiamond
	KindPentagon
	KindHexagonVertical
	KindHexagonHorizontal
	KindOctagonVertical
)

var kindNames = map[Kind]string{
	KindRoundedRectangle:  "roundedRectangle",
	KindEllipse:           "ellipse",
	KindEscutcheon:        "escutcheon",
	KindFishhead:          "fishhead",
	KindTriangle:          "triangle",
	KindTrapezoid:         "trapezoid",
	KindDiamond:           "diamond",
	KindPentagon:          "pentagon",
	KindHexagonVertical:   "hexagonVertical",
	KindHexagonHorizontal: "hexagonHorizontal",
	KindOctagonVertical:   "octagonVertical",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return "unknown"
	}
	return name
}

// ParseKind is only used while loading definition files; drawing switches on Kind
func ParseKind(name string) (Kind, errorsx.Error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}

	return KindUnknown, errorsx.Errorf("unknown shape %q", name)
}

const DefaultOutlineWidth = 1

// Shape holds the parameters for one outline. Lengths are in badge units, angles in degrees.
type Shape struct {
	Kind        Kind
	FillColor   color.Color
	StrokeColor color.Color
	// RectWidth fixes the width of the badge. Zero means the width follows the text.
	RectWidth float64
	// Radius rounds every corner
	Radius float64
	// Radius1 rounds the corners on the pointed side, Radius2 the corners on the flat side
	Radius1      float64
	Radius2      float64
	Offset       float64
	Angle        float64
	PointUp      bool
	ShortSideUp  bool
	OutlineWidth float64
}

func (s *Shape) IsVariableWidth() bool {
	return s.RectWidth == 0
}

func (s *Shape) outlineWidth() float64 {
	if s.OutlineWidth == 0 {
		return DefaultOutlineWidth
	}
	return s.OutlineWidth
}

func (s *Shape) Validate() errorsx.Error {
	if _, ok := kindNames[s.Kind]; !ok {
		return errorsx.Errorf("unknown shape kind: %d", s.Kind)
	}

	if s.FillColor == nil {
		return errorsx.Errorf("shape %s has no fill color", s.Kind)
	}

	for name, value := range map[string]float64{
		"rectWidth":    s.RectWidth,
		"radius":       s.Radius,
		"radius1":      s.Radius1,
		"radius2":      s.Radius2,
		"offset":       s.Offset,
		"outlineWidth": s.OutlineWidth,
	} {
		if value < 0 {
			return errorsx.Errorf("shape %s: %s must not be negative, but was %v", s.Kind, name, value)
		}
	}

	if s.Angle < 0 || s.Angle >= 90 {
		return errorsx.Errorf("shape %s: angle must be in [0, 90) degrees, but was %v", s.Kind, s.Angle)
	}

	return nil
}
