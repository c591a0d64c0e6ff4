package shielddef

import (
	"math"
	"testing"

	"github.com/jamesrr39/ownmap-shields/shielddraw"
	"github.com/jamesrr39/ownmap-shields/shieldtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_builders(t *testing.T) {
	tan30 := math.Tan(math.Pi / 6)

	tests := []struct {
		Name               string
		Definition         *Definition
		ExpectedKind       shielddraw.Kind
		ExpectedConstraint shieldtext.ConstraintKind
		ExpectedPadding    shieldtext.Padding
	}{
		{
			Name:               "escutcheon bottom padding is half the offset",
			Definition:         EscutcheonDownShield(8, White, Black, nil, 0, 0),
			ExpectedKind:       shielddraw.KindEscutcheon,
			ExpectedConstraint: shieldtext.ConstraintRoundedRect,
			ExpectedPadding:    shieldtext.Padding{Left: 2, Right: 2, Top: 2, Bottom: 4},
		}, {
			Name:               "trapezoid sides grow with the angle",
			Definition:         TrapezoidDownShield(30, White, Black, nil, 0, 0),
			ExpectedKind:       shielddraw.KindTrapezoid,
			ExpectedConstraint: shieldtext.ConstraintRoundedRect,
			ExpectedPadding:    shieldtext.Padding{Left: 2 + 10*tan30, Right: 2 + 10*tan30, Top: 2, Bottom: 4},
		}, {
			Name:               "pentagon",
			Definition:         PentagonUpShield(6, 30, White, Black, nil, 2, 0, 0),
			ExpectedKind:       shielddraw.KindPentagon,
			ExpectedConstraint: shieldtext.ConstraintRect,
			ExpectedPadding:    shieldtext.Padding{Left: 2 + 14*tan30/2, Right: 2 + 14*tan30/2, Top: 4, Bottom: 3},
		}, {
			Name:               "home plate down",
			Definition:         HomePlateDownShield(5, White, Black, nil, 2, 2, 0),
			ExpectedKind:       shielddraw.KindPentagon,
			ExpectedConstraint: shieldtext.ConstraintRoundedRect,
			ExpectedPadding:    shieldtext.Padding{Left: 2, Right: 2, Top: 2, Bottom: 6},
		}, {
			Name:               "triangle",
			Definition:         TriangleDownShield(White, Red, nil, 2, 0),
			ExpectedKind:       shielddraw.KindTriangle,
			ExpectedConstraint: shieldtext.ConstraintTriangleDown,
			ExpectedPadding:    shieldtext.Padding{Left: 1, Right: 1, Top: 2, Bottom: 1},
		}, {
			Name:               "pill",
			Definition:         PillShield(White, Black, nil, 0),
			ExpectedKind:       shielddraw.KindRoundedRectangle,
			ExpectedConstraint: shieldtext.ConstraintEllipse,
			ExpectedPadding:    shieldtext.UniformPadding(2),
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			require.NoError(t, test.Definition.Validate())
			assert.Equal(t, test.ExpectedKind, test.Definition.Shape.Kind)
			assert.Equal(t, test.ExpectedConstraint, test.Definition.TextConstraint.Kind)
			assert.InDelta(t, test.ExpectedPadding.Left, test.Definition.Padding.Left, 1e-9)
			assert.InDelta(t, test.ExpectedPadding.Right, test.Definition.Padding.Right, 1e-9)
			assert.InDelta(t, test.ExpectedPadding.Top, test.Definition.Padding.Top, 1e-9)
			assert.InDelta(t, test.ExpectedPadding.Bottom, test.Definition.Padding.Bottom, 1e-9)
		})
	}
}

func Test_textColorDefaultsToStroke(t *testing.T) {
	def := TriangleDownShield(White, Red, nil, 2, 0)
	assert.Equal(t, Red, def.DrawnTextColor())

	def = DiamondShield(Black, White, Yellow, 2, 24)
	assert.Equal(t, Yellow, def.DrawnTextColor())
	assert.Equal(t, float64(24), def.Shape.RectWidth)

	assert.Equal(t, float64(20), CircleShield(White, Black, nil).Shape.RectWidth)
}

func Test_Bannered(t *testing.T) {
	base := RoundedRectShield(White, Black, nil, 0, 2)
	bannered := Bannered(base, "TO", "ALT")

	assert.Equal(t, 0, base.BannerCount())
	assert.Equal(t, 2, bannered.BannerCount())
	assert.Equal(t, []string{"TO", "ALT"}, bannered.Banners)

	// the shape is copied, not shared
	bannered.Shape.FillColor = Yellow
	assert.Equal(t, White, base.Shape.FillColor)
}

func Test_templates(t *testing.T) {
	down := TriangleConvexDownShield()
	up := TriangleConvexUpShield()
	assert.False(t, down.VerticalReflect)
	assert.True(t, up.VerticalReflect)
	assert.Equal(t, down.ArtworkNames, up.ArtworkNames)
	assert.Equal(t, float64(5), up.Padding.Top)

	blue := TriangleConvexDownShieldBlue()
	assert.Equal(t, White, blue.ColorLighten)
	assert.Equal(t, Blue, blue.ColorDarken)
	assert.Equal(t, Black, blue.DrawnTextColor())
	assert.Nil(t, down.ColorDarken)

	redBlue := TriangleConvexDownShieldRedBlue()
	assert.Equal(t, Blue, redBlue.ColorLighten)
	assert.Equal(t, Red, redBlue.ColorDarken)

	assert.Len(t, BadgeShield().ArtworkNames, 2)
	assert.Equal(t, float64(6), BadgeShieldCrossbar().Padding.Top)

	shieldSet, err := NewShieldSet(map[string]*Definition{
		DefaultNetwork: RoundedRectShield(White, Black, nil, 0, 2),
		"tri":          down,
		"triUp":        up,
		"badge":        BadgeShield(),
		"crossbar":     BadgeShieldCrossbar(),
	}, BuiltinSprites(2), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, shieldSet.Networks(), 5)
}
