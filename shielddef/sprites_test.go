package shielddef

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/jamesrr39/goutil/gofs/mockfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestSheet(t *testing.T, fs mockfs.MockFs, basePath, index string) {
	sheet := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			c := color.NRGBA{0xff, 0, 0, 0xff}
			if x >= 20 {
				c = color.NRGBA{0, 0, 0xff, 0xff}
			}
			sheet.SetNRGBA(x, y, c)
		}
	}

	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, sheet))

	require.NoError(t, fs.MkdirAll("/sprites", 0755))
	require.NoError(t, fs.WriteFile(basePath+".png", buf.Bytes(), 0644))
	require.NoError(t, fs.WriteFile(basePath+".json", []byte(index), 0644))
}

func Test_LoadSpriteSheet(t *testing.T) {
	fs := mockfs.NewMockFs()
	writeTestSheet(t, fs, "/sprites/sprite@2x", `{
		"red": {"x": 0, "y": 0, "width": 20, "height": 20, "pixelRatio": 2},
		"blue": {"x": 20, "y": 0, "width": 20, "height": 10, "pixelRatio": 2}
	}`)

	sheet, err := LoadSpriteSheet(fs, "/sprites/sprite")
	require.NoError(t, err)
	assert.Equal(t, 2, sheet.Len())

	blue, ok := sheet.Sprite("blue")
	require.True(t, ok)
	assert.Equal(t, float64(2), blue.PixelRatio)
	assert.Equal(t, image.Rect(0, 0, 20, 10), blue.Image.Bounds())

	r, g, b, a := blue.Image.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0, 0, 0xffff, 0xffff}, []uint32{r, g, b, a})

	_, ok = sheet.Sprite("green")
	assert.False(t, ok)
}

func Test_LoadSpriteSheet_fallsBackTo1x(t *testing.T) {
	fs := mockfs.NewMockFs()
	writeTestSheet(t, fs, "/sprites/sprite", `{"red": {"x": 0, "y": 0, "width": 20, "height": 20, "pixelRatio": 1}}`)

	sheet, err := LoadSpriteSheet(fs, "/sprites/sprite")
	require.NoError(t, err)

	red, ok := sheet.Sprite("red")
	require.True(t, ok)
	assert.Equal(t, float64(1), red.PixelRatio)
}

func Test_LoadSpriteSheet_errors(t *testing.T) {
	t.Run("no sheet", func(t *testing.T) {
		_, err := LoadSpriteSheet(mockfs.NewMockFs(), "/sprites/sprite")
		require.Error(t, err)
	})

	t.Run("sprite outside the image", func(t *testing.T) {
		fs := mockfs.NewMockFs()
		writeTestSheet(t, fs, "/sprites/sprite", `{"big": {"x": 30, "y": 0, "width": 20, "height": 20, "pixelRatio": 1}}`)

		_, err := LoadSpriteSheet(fs, "/sprites/sprite")
		require.Error(t, err)
	})

	t.Run("bad index", func(t *testing.T) {
		fs := mockfs.NewMockFs()
		writeTestSheet(t, fs, "/sprites/sprite", `[1, 2, 3]`)

		_, err := LoadSpriteSheet(fs, "/sprites/sprite")
		require.Error(t, err)
	})
}
