package shielddraw

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Blank(t *testing.T) {
	raster := Blank(20, 2)
	assert.Equal(t, 40, raster.Width())
	assert.Equal(t, 40, raster.Height())
	assert.True(t, raster.IsTransparent())
	assert.Len(t, raster.Bytes(), 40*40*4)
}

func Test_Raster_Bytes_unpremultiplied(t *testing.T) {
	raster := NewRaster(2, 1, 1)
	raster.Img.SetRGBA(0, 0, color.RGBA{0x40, 0, 0, 0x80})
	raster.Img.SetRGBA(1, 0, color.RGBA{0xff, 0xff, 0xff, 0xff})

	data := raster.Bytes()
	assert.Equal(t, []byte{0x7f, 0, 0, 0x80, 0xff, 0xff, 0xff, 0xff}, data)
}

func Test_Raster_DrawOver(t *testing.T) {
	dst := NewRaster(4, 4, 1)
	src := &Raster{NewImageWithBackground(image.Rect(0, 0, 2, 2), color.Black), 1}

	dst.DrawOver(src, 1, 2)
	assert.Equal(t, uint8(0), dst.Img.RGBAAt(0, 0).A)
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, dst.Img.RGBAAt(1, 2))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, dst.Img.RGBAAt(2, 3))
	assert.Equal(t, uint8(0), dst.Img.RGBAAt(3, 3).A)
}

func Test_DrawArtwork(t *testing.T) {
	art := image.NewRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(art, image.Rect(0, 0, 10, 5), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(art, image.Rect(0, 5, 10, 10), image.NewUniform(color.White), image.Point{}, draw.Src)

	t.Run("same pixel ratio", func(t *testing.T) {
		dst := NewRaster(10, 10, 1)
		DrawArtwork(dst, art, 1, 0, 0, false)
		assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, dst.Img.RGBAAt(0, 0))
		assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, dst.Img.RGBAAt(0, 9))
	})

	t.Run("reflected", func(t *testing.T) {
		dst := NewRaster(10, 10, 1)
		DrawArtwork(dst, art, 1, 0, 0, true)
		assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, dst.Img.RGBAAt(0, 0))
		assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, dst.Img.RGBAAt(0, 9))
	})

	t.Run("rescaled to a higher pixel ratio", func(t *testing.T) {
		dst := NewRaster(10, 10, 2)
		DrawArtwork(dst, art, 1, 0, 0, false)
		assert.Equal(t, uint8(0xff), dst.Img.RGBAAt(19, 19).A)
		assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, dst.Img.RGBAAt(2, 2))
	})
}

func Test_Recolor(t *testing.T) {
	newRaster := func() *Raster {
		raster := NewRaster(3, 1, 1)
		raster.Img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 0xff})
		raster.Img.SetRGBA(1, 0, color.RGBA{0xff, 0xff, 0xff, 0xff})
		raster.Img.SetRGBA(2, 0, color.RGBA{0, 0, 0, 0x80})
		return raster
	}

	t.Run("no colours is a no-op", func(t *testing.T) {
		raster := newRaster()
		before := append([]byte(nil), raster.Img.Pix...)
		Recolor(raster, nil, nil)
		assert.Equal(t, before, raster.Img.Pix)
	})

	t.Run("black to lighten, white to darken", func(t *testing.T) {
		raster := newRaster()
		lighten := color.RGBA{0x00, 0x33, 0x99, 0xff}
		darken := color.RGBA{0xff, 0xcc, 0x00, 0xff}
		Recolor(raster, lighten, darken)

		assert.Equal(t, lighten, raster.Img.RGBAAt(0, 0))
		assert.Equal(t, darken, raster.Img.RGBAAt(1, 0))

		// alpha preserved, colour premultiplied
		halfCovered := raster.Img.RGBAAt(2, 0)
		assert.Equal(t, uint8(0x80), halfCovered.A)
		assert.Equal(t, uint8(0), halfCovered.R)
		assert.InDelta(t, 0x33*0x80/0xff, int(halfCovered.G), 1)
	})

	t.Run("only darken", func(t *testing.T) {
		raster := newRaster()
		darken := color.RGBA{0x10, 0x20, 0x30, 0xff}
		Recolor(raster, nil, darken)

		assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, raster.Img.RGBAAt(0, 0))
		assert.Equal(t, darken, raster.Img.RGBAAt(1, 0))
	})
}
