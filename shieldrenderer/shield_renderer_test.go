package shieldrenderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/jamesrr39/ownmap-shields/fonts"
	"github.com/jamesrr39/ownmap-shields/shield"
	"github.com/jamesrr39/ownmap-shields/shielddef"
	"github.com/jamesrr39/ownmap-shields/shielddraw"
	"github.com/jamesrr39/ownmap-shields/shieldtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidArtwork(name string, width, height int, c color.Color) *shielddef.Artwork {
	img := shielddraw.NewImageWithBackground(image.Rect(0, 0, width, height), c)
	return &shielddef.Artwork{Name: name, Image: img, PixelRatio: 2}
}

var testSprites = shielddef.MapSpriteSource{
	"narrow": solidArtwork("narrow", 40, 40, color.White),
	"wide":   solidArtwork("wide", 80, 40, color.White),
	"noref":  solidArtwork("noref", 30, 40, color.NRGBA{0xff, 0, 0, 0xff}),
	"picto":  solidArtwork("picto", 40, 40, color.NRGBA{0, 0xff, 0, 0xff}),
}

func newTestRenderer(t *testing.T, extra map[string]*shielddef.Definition) *ShieldRenderer {
	definitions := map[string]*shielddef.Definition{
		shielddef.DefaultNetwork: shielddef.RoundedRectShield(shielddef.White, shielddef.Black, nil, 0, 2),
	}
	for network, definition := range extra {
		definitions[network] = definition
	}

	shieldSet, err := shielddef.NewShieldSet(definitions, testSprites, shielddef.DefaultOptions())
	require.NoError(t, err)

	return NewShieldRenderer(shieldSet, shieldtext.NewEngine(fonts.ShieldFont(), nil), 2)
}

func Test_GetShieldDef(t *testing.T) {
	withNoref := shielddef.SpriteShield(shielddef.Black, shieldtext.Constraint{}, shieldtext.UniformPadding(2), "narrow")
	withNoref.NorefArtworkName = "noref"

	named := shielddef.OvalShield(shielddef.White, shielddef.Black, nil, 0)
	named.RefsByWayName = map[string]string{"Ring Road": "R1"}

	sr := newTestRenderer(t, map[string]*shielddef.Definition{
		"X:SHAPE": shielddef.DiamondShield(shielddef.Yellow, shielddef.Black, nil, 2, 24),
		"X:PICTO": shielddef.PictorialShield("picto"),
		"X:NOREF": withNoref,
		"X:NAMED": named,
	})

	tests := []struct {
		Name            string
		RouteRef        *shield.RouteRef
		ExpectedNetwork string
	}{
		{"no route", nil, ""},
		{"unknown network with ref gets the default", &shield.RouteRef{Network: "Nowhere", Ref: "5"}, shielddef.DefaultNetwork},
		{"unknown network without ref gets nothing", &shield.RouteRef{Network: "Nowhere"}, ""},
		{"unknown network with an overlong ref gets nothing", &shield.RouteRef{Network: "Nowhere", Ref: "1234567"}, ""},
		{"known network", &shield.RouteRef{Network: "X:SHAPE", Ref: "5"}, "X:SHAPE"},
		{"known network without ref gets nothing", &shield.RouteRef{Network: "X:SHAPE"}, ""},
		{"notext without ref", &shield.RouteRef{Network: "X:PICTO"}, "X:PICTO"},
		{"noref artwork without ref", &shield.RouteRef{Network: "X:NOREF"}, "X:NOREF"},
		{"ref from the road name", &shield.RouteRef{Network: "X:NAMED", WayName: "Ring Road"}, "X:NAMED"},
		{"road name not in the table", &shield.RouteRef{Network: "X:NAMED", WayName: "High Street"}, ""},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			definition := sr.GetShieldDef(test.RouteRef)
			if test.ExpectedNetwork == "" {
				assert.Nil(t, definition)
				return
			}

			expected, ok := sr.ShieldSet().Get(test.ExpectedNetwork)
			require.True(t, ok)
			assert.Same(t, expected, definition)
		})
	}
}

func Test_Render_noBadge(t *testing.T) {
	sr := newTestRenderer(t, nil)

	raster, err := sr.Render(&shield.RouteRef{Network: "Nowhere"})
	require.NoError(t, err)
	assert.Nil(t, raster)

	raster, err = sr.Render(nil)
	require.NoError(t, err)
	assert.Nil(t, raster)
}

func Test_Render_variableWidth(t *testing.T) {
	sr := newTestRenderer(t, nil)

	short, err := sr.Render(&shield.RouteRef{Network: "Nowhere", Ref: "1"})
	require.NoError(t, err)
	assert.Equal(t, 40, short.Width())
	assert.Equal(t, 40, short.Height())
	assert.False(t, short.IsTransparent())

	long, err := sr.Render(&shield.RouteRef{Network: "Nowhere", Ref: "A26/A7"})
	require.NoError(t, err)
	assert.Greater(t, long.Width(), short.Width())
	assert.LessOrEqual(t, long.Width(), 80)
	assert.Equal(t, 40, long.Height())
}

func Test_Render_fixedWidth(t *testing.T) {
	sr := newTestRenderer(t, map[string]*shielddef.Definition{
		"X": shielddef.DiamondShield(shielddef.Yellow, shielddef.Black, nil, 2, 24),
	})

	for _, ref := range []string{"1", "123456"} {
		raster, err := sr.Render(&shield.RouteRef{Network: "X", Ref: ref})
		require.NoError(t, err)
		assert.Equal(t, 48, raster.Width(), ref)
		assert.Equal(t, 40, raster.Height(), ref)
	}
}

func Test_Render_isDeterministic(t *testing.T) {
	sr := newTestRenderer(t, nil)
	routeRef := &shield.RouteRef{Network: "Nowhere", Ref: "H201"}

	first, err := sr.Render(routeRef)
	require.NoError(t, err)
	second, err := sr.Render(routeRef)
	require.NoError(t, err)

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func Test_Render_banners(t *testing.T) {
	plain := shielddef.RoundedRectShield(shielddef.White, shielddef.Black, nil, 30, 2)
	sr := newTestRenderer(t, map[string]*shielddef.Definition{
		"PLAIN":    plain,
		"BANNERED": shielddef.Bannered(plain, "TO", "ALT"),
	})

	plainRaster, err := sr.Render(&shield.RouteRef{Network: "PLAIN", Ref: "7"})
	require.NoError(t, err)

	banneredRaster, err := sr.Render(&shield.RouteRef{Network: "BANNERED", Ref: "7"})
	require.NoError(t, err)

	options := shielddef.DefaultOptions()
	width, height := CompoundShieldSize(options, 30, 20, 2)
	assert.Equal(t, float64(30), width)
	assert.Equal(t, float64(38), height)

	assert.Equal(t, plainRaster.Width(), banneredRaster.Width())
	assert.Equal(t, 76, banneredRaster.Height())

	// the badge sits below the banners, unchanged
	bannerPx := 36
	for y := 0; y < plainRaster.Height(); y++ {
		for x := 0; x < plainRaster.Width(); x++ {
			require.Equal(t, plainRaster.Img.RGBAAt(x, y), banneredRaster.Img.RGBAAt(x, y+bannerPx), "pixel %d,%d", x, y)
		}
	}

	// something is written in the banner strips
	bannerArea := &shielddraw.Raster{
		Img:        banneredRaster.Img.SubImage(image.Rect(0, 0, banneredRaster.Width(), bannerPx)).(*image.RGBA),
		PixelRatio: 2,
	}
	assert.False(t, bannerArea.IsTransparent())
}

func Test_Render_artworkSelection(t *testing.T) {
	sr := newTestRenderer(t, map[string]*shielddef.Definition{
		"X": shielddef.SpriteShield(shielddef.Black, shieldtext.Constraint{}, shieldtext.UniformPadding(2), "wide", "narrow"),
	})

	short, err := sr.Render(&shield.RouteRef{Network: "X", Ref: "1"})
	require.NoError(t, err)
	assert.Equal(t, 40, short.Width())

	long, err := sr.Render(&shield.RouteRef{Network: "X", Ref: "123456"})
	require.NoError(t, err)
	assert.Equal(t, 80, long.Width())
}

func Test_Render_norefArtwork(t *testing.T) {
	definition := shielddef.SpriteShield(shielddef.Black, shieldtext.Constraint{}, shieldtext.UniformPadding(2), "narrow")
	definition.NorefArtworkName = "noref"
	sr := newTestRenderer(t, map[string]*shielddef.Definition{"X": definition})

	raster, err := sr.Render(&shield.RouteRef{Network: "X"})
	require.NoError(t, err)
	require.NotNil(t, raster)
	assert.Equal(t, 30, raster.Width())
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, raster.Img.RGBAAt(15, 20))

	withRef, err := sr.Render(&shield.RouteRef{Network: "X", Ref: "5"})
	require.NoError(t, err)
	assert.Equal(t, 40, withRef.Width())
}

func Test_Render_notext(t *testing.T) {
	sr := newTestRenderer(t, map[string]*shielddef.Definition{
		"X": shielddef.PictorialShield("picto"),
	})

	withRef, err := sr.Render(&shield.RouteRef{Network: "X", Ref: "5"})
	require.NoError(t, err)
	withoutRef, err := sr.Render(&shield.RouteRef{Network: "X"})
	require.NoError(t, err)

	// the ref is never drawn
	assert.Equal(t, withoutRef.Bytes(), withRef.Bytes())
	for y := 0; y < withRef.Height(); y++ {
		for x := 0; x < withRef.Width(); x++ {
			require.Equal(t, color.RGBA{0, 0xff, 0, 0xff}, withRef.Img.RGBAAt(x, y))
		}
	}
}

func Test_Render_verticalReflect(t *testing.T) {
	half := shielddraw.NewImageWithBackground(image.Rect(0, 0, 40, 40), color.White)
	for y := 0; y < 10; y++ {
		for x := 0; x < 40; x++ {
			half.SetRGBA(x, y, color.RGBA{0, 0, 0xff, 0xff})
		}
	}
	testSprites["half"] = &shielddef.Artwork{Name: "half", Image: half, PixelRatio: 2}
	defer delete(testSprites, "half")

	down := shielddef.SpriteShield(shielddef.Black, shieldtext.Constraint{}, shieldtext.UniformPadding(2), "half")
	down.NoText = true
	up := shielddef.Reflected(down, shieldtext.UniformPadding(2))

	sr := newTestRenderer(t, map[string]*shielddef.Definition{"DOWN": down, "UP": up})

	downRaster, err := sr.Render(&shield.RouteRef{Network: "DOWN", Ref: "1"})
	require.NoError(t, err)
	upRaster, err := sr.Render(&shield.RouteRef{Network: "UP", Ref: "1"})
	require.NoError(t, err)

	blue := color.RGBA{0, 0, 0xff, 0xff}
	assert.Equal(t, blue, downRaster.Img.RGBAAt(20, 0))
	assert.Equal(t, blue, upRaster.Img.RGBAAt(20, 39))
	assert.NotEqual(t, blue, upRaster.Img.RGBAAt(20, 0))
}

func Test_Render_recolor(t *testing.T) {
	base := shielddef.RoundedRectShield(shielddef.White, shielddef.Black, nil, 30, 2)
	sr := newTestRenderer(t, map[string]*shielddef.Definition{
		"PLAIN":   base,
		"SWAPPED": shielddef.WithColorSwap(base, shielddef.Black, shielddef.White, shielddef.Blue),
	})

	plain, err := sr.Render(&shield.RouteRef{Network: "PLAIN", Ref: "7"})
	require.NoError(t, err)
	swapped, err := sr.Render(&shield.RouteRef{Network: "SWAPPED", Ref: "7"})
	require.NoError(t, err)

	// the white fill becomes blue
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, plain.Img.RGBAAt(6, 6))
	assert.Equal(t, color.RGBA{0x00, 0x3f, 0x87, 0xff}, swapped.Img.RGBAAt(6, 6))

	// transparency is kept
	assert.Equal(t, plain.Img.RGBAAt(0, 0).A, swapped.Img.RGBAAt(0, 0).A)
}

func Test_Render_builtinTable(t *testing.T) {
	sr := newBuiltinRenderer(t)

	for _, network := range sr.ShieldSet().Networks() {
		for _, ref := range shield.SampleRefs {
			raster, err := sr.Render(&shield.RouteRef{Network: network, Ref: ref})
			require.NoError(t, err, "%s=%s", network, ref)
			require.NotNil(t, raster, "%s=%s", network, ref)
			assert.False(t, raster.IsTransparent(), "%s=%s", network, ref)
			assert.Len(t, raster.Bytes(), raster.Width()*raster.Height()*4)
		}
	}
}

func newBuiltinRenderer(t *testing.T) *ShieldRenderer {
	shieldSet, err := shielddef.LoadShields(shielddef.BuiltinSprites(2))
	require.NoError(t, err)

	return NewShieldRenderer(shieldSet, shieldtext.NewEngine(fonts.ShieldFont(), nil), 2)
}

func Test_Render_variableWidthFontNeverGrows(t *testing.T) {
	sr := newBuiltinRenderer(t)
	options := sr.ShieldSet().Options()
	maxWidth := options.ShieldSize * options.MaxWidthRatio

	for _, network := range []string{shielddef.DefaultNetwork, "FSA:Z"} {
		t.Run(network, func(t *testing.T) {
			definition, ok := sr.ShieldSet().Get(network)
			require.True(t, ok)
			require.True(t, definition.Shape.IsVariableWidth())

			previous := math.Inf(1)
			for _, ref := range []string{"1", "12", "123", "1234", "12345", "123456"} {
				b := sr.selectBadge(definition, ref, true)
				layout := sr.layout(definition, ref, b.width, b.height)

				assert.LessOrEqual(t, layout.FontSize, previous, ref)
				previous = layout.FontSize

				if b.width < maxWidth {
					assert.True(t, layout.Fits, "%s: width %v", ref, b.width)
				}

				raster, err := sr.Render(&shield.RouteRef{Network: network, Ref: ref})
				require.NoError(t, err)
				assert.Equal(t, shielddraw.ToPixels(b.width, 2), raster.Width(), ref)
			}

			first := sr.layout(definition, "1", sr.selectBadge(definition, "1", true).width, options.ShieldSize)
			assert.Equal(t, shieldtext.DefaultFontLadder[0], first.FontSize)
		})
	}
}

func Test_Render_diamondWithWhiteText(t *testing.T) {
	sr := newBuiltinRenderer(t)

	definition, ok := sr.ShieldSet().Get("FSA:S")
	require.True(t, ok)
	require.Equal(t, shielddraw.KindDiamond, definition.Shape.Kind)

	b := sr.selectBadge(definition, "5", true)
	layout := sr.layout(definition, "5", b.width, b.height)
	assert.Equal(t, float64(14), layout.FontSize)
	assert.True(t, layout.Fits)

	raster, err := sr.Render(&shield.RouteRef{Network: "FSA:S", Ref: "5"})
	require.NoError(t, err)
	assert.Equal(t, 48, raster.Width())
	assert.Equal(t, 40, raster.Height())

	blackPixels := 0
	for y := 0; y < raster.Height(); y++ {
		for x := 0; x < raster.Width(); x++ {
			if raster.Img.RGBAAt(x, y) == (color.RGBA{0, 0, 0, 0xff}) {
				blackPixels++
			}
		}
	}
	assert.Greater(t, blackPixels, 100)

	centre := raster.Img.RGBAAt(raster.Width()/2, raster.Height()/2)
	assert.Equal(t, uint8(0xff), centre.A)
	assert.Greater(t, centre.R, uint8(0xc0))
	assert.Greater(t, centre.G, uint8(0xc0))
	assert.Greater(t, centre.B, uint8(0xc0))
}

func Test_Render_longRefFallsBackToSmallestFont(t *testing.T) {
	sr := newBuiltinRenderer(t)

	definition, ok := sr.ShieldSet().Get("Lutang:BB")
	require.True(t, ok)

	b := sr.selectBadge(definition, "123456", true)
	layout := sr.layout(definition, "123456", b.width, b.height)
	assert.Equal(t, float64(8), layout.FontSize)
	assert.False(t, layout.Fits)

	raster, err := sr.Render(&shield.RouteRef{Network: "Lutang:BB", Ref: "123456"})
	require.NoError(t, err)
	require.NotNil(t, raster)
	assert.False(t, raster.IsTransparent())
}

func Test_RenderDefinition_unresolved(t *testing.T) {
	sr := newTestRenderer(t, nil)

	_, err := sr.RenderDefinition(shielddef.SpriteShield(shielddef.Black, shieldtext.Constraint{}, shieldtext.Padding{}, "narrow"), "1")
	require.Error(t, err)
}

func Test_Blank(t *testing.T) {
	sr := newTestRenderer(t, nil)

	blank := sr.Blank()
	assert.Equal(t, 40, blank.Width())
	assert.Equal(t, 40, blank.Height())
	assert.True(t, blank.IsTransparent())
}
