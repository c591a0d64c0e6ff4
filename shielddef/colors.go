package shielddef

import (
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	White  = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	Black  = color.NRGBA{0x00, 0x00, 0x00, 0xff}
	Yellow = color.NRGBA{0xff, 0xd1, 0x16, 0xff}
	Blue   = color.NRGBA{0x00, 0x3f, 0x87, 0xff}
	Red    = color.NRGBA{0xb2, 0x22, 0x34, 0xff}
	Green  = color.NRGBA{0x00, 0x67, 0x47, 0xff}
	Brown  = color.NRGBA{0x6d, 0x45, 0x2a, 0xff}
	FSAFS  = color.NRGBA{0x1c, 0x3f, 0x94, 0xff}

	// BackgroundFill is the map background, used as the banner halo
	BackgroundFill = color.NRGBA{0xf8, 0xf4, 0xf0, 0xff}
)

var namedColors = map[string]color.NRGBA{
	"white":          White,
	"black":          Black,
	"yellow":         Yellow,
	"blue":           Blue,
	"red":            Red,
	"green":          Green,
	"brown":          Brown,
	"fsa_fs":         FSAFS,
	"backgroundFill": BackgroundFill,
}

var hslRegexp = regexp.MustCompile(`^hsl\(\s*([0-9.]+)\s*,\s*([0-9.]+)%\s*,\s*([0-9.]+)%\s*\)$`)

// ParseColor understands palette names, "#rgb", "#rrggbb" and "hsl(h, s%, l%)"
func ParseColor(value string) (color.NRGBA, errorsx.Error) {
	value = strings.TrimSpace(value)

	named, ok := namedColors[value]
	if ok {
		return named, nil
	}

	if strings.HasPrefix(value, "#") {
		c, err := colorful.Hex(value)
		if err != nil {
			return color.NRGBA{}, errorsx.Wrap(err, "color", value)
		}
		return toNRGBA(c), nil
	}

	matches := hslRegexp.FindStringSubmatch(value)
	if matches == nil {
		return color.NRGBA{}, errorsx.Errorf("could not understand color %q", value)
	}

	var hsl [3]float64
	for i, match := range matches[1:] {
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return color.NRGBA{}, errorsx.Wrap(err, "color", value)
		}
		hsl[i] = f
	}

	if hsl[0] > 360 || hsl[1] > 100 || hsl[2] > 100 {
		return color.NRGBA{}, errorsx.Errorf("hsl value out of range: %q", value)
	}

	return toNRGBA(colorful.Hsl(hsl[0], hsl[1]/100, hsl[2]/100)), nil
}

// MustParseColor is for colour literals in the built-in table
func MustParseColor(value string) color.NRGBA {
	c, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return c
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{r, g, b, 0xff}
}
