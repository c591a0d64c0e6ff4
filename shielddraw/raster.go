package shielddraw

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Raster is a drawn shield, or part of one, in device pixels
type Raster struct {
	Img        *image.RGBA
	PixelRatio float64
}

// ToPixels converts a length in badge units to device pixels
func ToPixels(units, pixelRatio float64) int {
	return int(math.Round(units * pixelRatio))
}

// NewRaster creates a transparent raster. width and height are in badge units.
func NewRaster(width, height, pixelRatio float64) *Raster {
	rect := image.Rect(0, 0, ToPixels(width, pixelRatio), ToPixels(height, pixelRatio))
	return &Raster{image.NewRGBA(rect), pixelRatio}
}

// Blank is the transparent placeholder handed out when there is nothing to draw
func Blank(size, pixelRatio float64) *Raster {
	return NewRaster(size, size, pixelRatio)
}

func NewImageWithBackground(r image.Rectangle, c color.Color) *image.RGBA {
	img := image.NewRGBA(r)

	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)

	return img
}

func (r *Raster) Width() int {
	return r.Img.Bounds().Dx()
}

func (r *Raster) Height() int {
	return r.Img.Bounds().Dy()
}

// WidthUnits is the width in badge units
func (r *Raster) WidthUnits() float64 {
	return float64(r.Width()) / r.PixelRatio
}

// DrawOver composites src on top of this raster, with src's top left corner at (x, y) pixels
func (r *Raster) DrawOver(src *Raster, x, y int) {
	dstRect := src.Img.Bounds().Add(image.Pt(x, y))
	draw.Draw(r.Img, dstRect, src.Img, src.Img.Bounds().Min, draw.Over)
}

// NRGBA converts to non-premultiplied RGBA, which is what style image hosts expect
func (r *Raster) NRGBA() *image.NRGBA {
	bounds := r.Img.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(img, img.Bounds(), r.Img, bounds.Min, draw.Src)
	return img
}

// Bytes is the non-premultiplied RGBA8 pixel buffer, Width() * Height() * 4 bytes long, rows top to bottom
func (r *Raster) Bytes() []byte {
	img := r.NRGBA()
	if img.Stride == img.Rect.Dx()*4 {
		return img.Pix
	}

	// rows are padded; copy them out tightly packed
	width := img.Rect.Dx() * 4
	data := make([]byte, 0, width*img.Rect.Dy())
	for y := 0; y < img.Rect.Dy(); y++ {
		start := y * img.Stride
		data = append(data, img.Pix[start:start+width]...)
	}
	return data
}

// IsTransparent reports whether no pixel has any coverage
func (r *Raster) IsTransparent() bool {
	for i := 3; i < len(r.Img.Pix); i += 4 {
		if r.Img.Pix[i] != 0 {
			return false
		}
	}
	return true
}
