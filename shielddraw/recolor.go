package shielddraw

import (
	"image/color"
)

// Recolor maps the raster's colours in place: black becomes lighten, white becomes darken,
// and the values in between are interpolated channel by channel. Alpha is left alone.
// Either colour may be nil, meaning black and white respectively; both nil is a no-op.
func Recolor(raster *Raster, lighten, darken color.Color) {
	if lighten == nil && darken == nil {
		return
	}

	low := toNRGBA(lighten, color.NRGBA{0, 0, 0, 0xff})
	high := toNRGBA(darken, color.NRGBA{0xff, 0xff, 0xff, 0xff})

	pix := raster.Img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		alpha := uint32(pix[i+3])
		if alpha == 0 {
			continue
		}

		pix[i] = mapChannel(pix[i], alpha, low.R, high.R)
		pix[i+1] = mapChannel(pix[i+1], alpha, low.G, high.G)
		pix[i+2] = mapChannel(pix[i+2], alpha, low.B, high.B)
	}
}

// mapChannel works on a premultiplied value: unpremultiply, interpolate, premultiply again
func mapChannel(premultiplied uint8, alpha uint32, low, high uint8) uint8 {
	value := int32(uint32(premultiplied) * 0xff / alpha)
	if value > 0xff {
		value = 0xff
	}

	mapped := int32(low) + (int32(high)-int32(low))*value/0xff

	return uint8(uint32(mapped) * alpha / 0xff)
}

func toNRGBA(c color.Color, fallback color.NRGBA) color.NRGBA {
	if c == nil {
		return fallback
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
