package shieldconfig

import (
	"context"
	"io/ioutil"
	"testing"

	"github.com/jamesrr39/goutil/gofs/mockfs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-shields/shield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func Test_LoadRenderer(t *testing.T) {
	logger := logpkg.NewLogger(ioutil.Discard, logpkg.LogLevelInfo)
	fs := mockfs.NewMockFs()
	require.NoError(t, fs.MkdirAll("/shields", 0755))

	require.NoError(t, fs.WriteFile("/shields/overrides.toml", []byte(`
[networks."FSA:X"]
shape = "diamond"
fill = "#003f87"
stroke = "white"
`), 0644))
	require.NoError(t, fs.WriteFile("/shields/bad_overrides.toml", []byte(`
[networks."FSA:X"]
shape = "blob"
`), 0644))
	require.NoError(t, fs.WriteFile("/shields/regular.ttf", goregular.TTF, 0644))

	t.Run("built-in table", func(t *testing.T) {
		renderer, err := LoadRenderer(context.Background(), fs, logger, DefaultConfig())
		require.NoError(t, err)

		_, ok := renderer.ShieldSet().Get("FSA:X")
		assert.False(t, ok)
		assert.Equal(t, float64(DefaultPixelRatio), renderer.PixelRatio())
	})

	t.Run("with overrides and font", func(t *testing.T) {
		config := DefaultConfig()
		config.OverridesFile = "/shields/overrides.toml"
		config.FontFile = "/shields/regular.ttf"

		renderer, err := LoadRenderer(context.Background(), fs, logger, config)
		require.NoError(t, err)

		_, ok := renderer.ShieldSet().Get("FSA:X")
		require.True(t, ok)

		raster, err := renderer.Render(&shield.RouteRef{Network: "FSA:X", Ref: "12"})
		require.NoError(t, err)
		require.NotNil(t, raster)
	})

	errorTests := []struct {
		Name   string
		Modify func(config *Config)
	}{
		{"missing overrides", func(config *Config) { config.OverridesFile = "/shields/missing.toml" }},
		{"bad overrides", func(config *Config) { config.OverridesFile = "/shields/bad_overrides.toml" }},
		{"missing sprite sheet", func(config *Config) { config.SpriteDir = "/shields/sprites" }},
		{"font is not a font", func(config *Config) { config.FontFile = "/shields/overrides.toml" }},
	}

	for _, test := range errorTests {
		t.Run(test.Name, func(t *testing.T) {
			config := DefaultConfig()
			test.Modify(config)

			_, err := LoadRenderer(context.Background(), fs, logger, config)
			require.Error(t, err)
		})
	}
}

func Test_HasSpriteSheet(t *testing.T) {
	fs := mockfs.NewMockFs()
	for _, dir := range []string{"/a", "/b", "/c"} {
		require.NoError(t, fs.MkdirAll(dir, 0755))
	}
	require.NoError(t, fs.WriteFile("/a/sprite@2x.json", []byte("{}"), 0644))
	require.NoError(t, fs.WriteFile("/b/sprite.json", []byte("{}"), 0644))

	assert.True(t, HasSpriteSheet(fs, "/a"))
	assert.True(t, HasSpriteSheet(fs, "/b"))
	assert.False(t, HasSpriteSheet(fs, "/c"))
}
