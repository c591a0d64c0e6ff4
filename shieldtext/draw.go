package shieldtext

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/freetype"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-shields/shielddraw"
	"golang.org/x/image/math/fixed"
)

func floatToFixedPoint(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}

func (e *Engine) newContext(dst *shielddraw.Raster, fontPx float64, c color.Color) *freetype.Context {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(e.font)
	ctx.SetFontSize(fontPx)
	ctx.SetClip(dst.Img.Bounds())
	ctx.SetDst(dst.Img)
	ctx.SetSrc(image.NewUniform(c))
	return ctx
}

// DrawLayout draws laid out text onto the raster
func (e *Engine) DrawLayout(dst *shielddraw.Raster, layout *Layout, textColor color.Color) errorsx.Error {
	ctx := e.newContext(dst, layout.FontPx, textColor)

	for _, line := range layout.Lines {
		_, err := ctx.DrawString(line.Text, floatToFixedPoint(line.X, line.Baseline))
		if err != nil {
			return errorsx.Wrap(err, "text", line.Text)
		}
	}

	return nil
}

type BannerStyle struct {
	// Height and Padding in badge units
	Height    float64
	Padding   float64
	TextColor color.Color
	HaloColor color.Color
}

// DrawBanner draws a banner word centred in the strip starting at top (pixels).
// The font shrinks when the word is wider than the raster.
func (e *Engine) DrawBanner(dst *shielddraw.Raster, text string, top int, style BannerStyle) errorsx.Error {
	pixelRatio := dst.PixelRatio
	haloWidth := pixelRatio / 2
	maxWidth := float64(dst.Width()) - 2*haloWidth

	fontPx := (style.Height - 2*style.Padding) * pixelRatio
	face := e.newFace(fontPx)
	m := measure(face, text)
	face.Close()

	if m.width > maxWidth && m.width > 0 {
		fontPx = fontPx * maxWidth / m.width
		face = e.newFace(fontPx)
		m = measure(face, text)
		face.Close()
	}

	stripHeight := style.Height * pixelRatio
	x := (float64(dst.Width()) - m.width) / 2
	baseline := float64(top) + (stripHeight-m.height())/2 + m.ascent

	if style.HaloColor != nil {
		haloCtx := e.newContext(dst, fontPx, style.HaloColor)
		for _, offset := range [][2]float64{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}} {
			_, err := haloCtx.DrawString(text, floatToFixedPoint(x+offset[0]*haloWidth, baseline+offset[1]*haloWidth))
			if err != nil {
				return errorsx.Wrap(err, "banner", text)
			}
		}
	}

	ctx := e.newContext(dst, fontPx, style.TextColor)
	_, err := ctx.DrawString(text, floatToFixedPoint(x, baseline))
	if err != nil {
		return errorsx.Wrap(err, "banner", text)
	}

	return nil
}
