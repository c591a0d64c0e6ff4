package shielddraw

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// DrawArtwork copies fixed artwork onto the raster with its top left corner at (x, y) pixels.
// Artwork drawn at a different pixel ratio is rescaled.
func DrawArtwork(dst *Raster, art image.Image, artPixelRatio float64, x, y int, verticalReflect bool) {
	if verticalReflect {
		art = flipVertical(art)
	}

	artBounds := art.Bounds()
	width := ToPixels(float64(artBounds.Dx())/artPixelRatio, dst.PixelRatio)
	height := ToPixels(float64(artBounds.Dy())/artPixelRatio, dst.PixelRatio)
	dstRect := image.Rect(x, y, x+width, y+height)

	if width == artBounds.Dx() && height == artBounds.Dy() {
		draw.Draw(dst.Img, dstRect, art, artBounds.Min, draw.Over)
		return
	}

	xdraw.CatmullRom.Scale(dst.Img, dstRect, art, artBounds, xdraw.Over, nil)
}

func flipVertical(src image.Image) image.Image {
	bounds := src.Bounds()
	flipped := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			flipped.Set(x, bounds.Dy()-1-y, src.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return flipped
}
