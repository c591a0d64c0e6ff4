package shielddef

import (
	"image"
	"math"
	"testing"

	"github.com/jamesrr39/ownmap-shields/shieldtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtwork(name string, width, height int) *Artwork {
	return &Artwork{
		Name:       name,
		Image:      image.NewRGBA(image.Rect(0, 0, width, height)),
		PixelRatio: 2,
	}
}

func Test_LoadShields(t *testing.T) {
	shieldSet, err := LoadShields(BuiltinSprites(2))
	require.NoError(t, err)

	networks := shieldSet.Networks()
	assert.Contains(t, networks, DefaultNetwork)
	assert.Contains(t, networks, "Lutang:N")
	assert.Contains(t, networks, "FSA:AG")
	assert.IsIncreasing(t, networks)

	def := shieldSet.Default()
	require.NotNil(t, def.Shape)
	assert.True(t, def.Shape.IsVariableWidth())
	assert.Equal(t, Black, def.DrawnTextColor())

	lutangN, ok := shieldSet.Get("Lutang:N")
	require.True(t, ok)
	require.Len(t, lutangN.Artwork, 1)
	assert.Equal(t, "shield_lutang_n", lutangN.Artwork[0].Name)

	rtc, ok := shieldSet.Get("FSA:RTC")
	require.True(t, ok)
	assert.True(t, rtc.NoText)

	_, ok = shieldSet.Get("Nowhere:X")
	assert.False(t, ok)
}

func Test_LoadShields_missingSprite(t *testing.T) {
	_, err := LoadShields(MapSpriteSource{})
	require.Error(t, err)
}

func Test_NewShieldSet(t *testing.T) {
	sprites := MapSpriteSource{
		"wide":   testArtwork("wide", 60, 40),
		"narrow": testArtwork("narrow", 40, 40),
		"noref":  testArtwork("noref", 40, 40),
	}

	t.Run("default required", func(t *testing.T) {
		_, err := NewShieldSet(map[string]*Definition{
			"X": RoundedRectShield(White, Black, nil, 0, 2),
		}, sprites, DefaultOptions())
		require.Error(t, err)
	})

	t.Run("invalid definition", func(t *testing.T) {
		def := RoundedRectShield(White, Black, nil, 0, 2)
		def.Padding.Left = math.NaN()
		_, err := NewShieldSet(map[string]*Definition{
			DefaultNetwork: def,
		}, sprites, DefaultOptions())
		require.Error(t, err)
	})

	t.Run("neither shape nor artwork", func(t *testing.T) {
		_, err := NewShieldSet(map[string]*Definition{
			DefaultNetwork: RoundedRectShield(White, Black, nil, 0, 2),
			"X":            {TextColor: Black},
		}, sprites, DefaultOptions())
		require.Error(t, err)
	})

	t.Run("bad options", func(t *testing.T) {
		options := DefaultOptions()
		options.BannerPadding = 5
		_, err := NewShieldSet(map[string]*Definition{
			DefaultNetwork: RoundedRectShield(White, Black, nil, 0, 2),
		}, sprites, options)
		require.Error(t, err)
	})

	t.Run("artwork is resolved and sorted narrowest first", func(t *testing.T) {
		def := SpriteShield(Black, shieldtext.Constraint{}, shieldtext.UniformPadding(2), "wide", "narrow")
		def.NorefArtworkName = "noref"

		shieldSet, err := NewShieldSet(map[string]*Definition{
			DefaultNetwork: RoundedRectShield(White, Black, nil, 0, 2),
			"X":            def,
		}, sprites, DefaultOptions())
		require.NoError(t, err)

		resolved, ok := shieldSet.Get("X")
		require.True(t, ok)
		require.Len(t, resolved.Artwork, 2)
		assert.Equal(t, "narrow", resolved.Artwork[0].Name)
		assert.Equal(t, "wide", resolved.Artwork[1].Name)
		assert.Equal(t, "noref", resolved.NorefArtwork.Name)

		// the caller's definition is untouched
		assert.Nil(t, def.Artwork)
	})
}

func Test_Artwork_Size(t *testing.T) {
	width, height := testArtwork("a", 52, 40).Size()
	assert.Equal(t, float64(26), width)
	assert.Equal(t, float64(20), height)
}

func Test_BuiltinSprites(t *testing.T) {
	sprites := BuiltinSprites(2)

	for _, name := range BuiltinSpriteNames() {
		art, ok := sprites.Sprite(name)
		require.True(t, ok, name)
		assert.Equal(t, float64(2), art.PixelRatio)

		rgba, ok := art.Image.(*image.RGBA)
		require.True(t, ok)
		centre := rgba.RGBAAt(rgba.Bounds().Dx()/2, rgba.Bounds().Dy()/2)
		assert.NotZero(t, centre.A, name)
	}

	narrow, _ := sprites.Sprite("shield_badge_2")
	wide, _ := sprites.Sprite("shield_badge_3")
	narrowWidth, _ := narrow.Size()
	wideWidth, _ := wide.Size()
	assert.Less(t, narrowWidth, wideWidth)
}

func Test_LayeredSpriteSource(t *testing.T) {
	first := MapSpriteSource{"a": testArtwork("first a", 2, 2)}
	second := MapSpriteSource{"a": testArtwork("second a", 2, 2), "b": testArtwork("b", 2, 2)}

	layered := LayeredSpriteSource{first, second}

	a, ok := layered.Sprite("a")
	require.True(t, ok)
	assert.Equal(t, "first a", a.Name)

	_, ok = layered.Sprite("b")
	assert.True(t, ok)

	_, ok = layered.Sprite("c")
	assert.False(t, ok)
}
