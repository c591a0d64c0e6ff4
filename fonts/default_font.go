package fonts

import (
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/jamesrr39/goutil/errorsx"
	"golang.org/x/image/font/gofont/gobold"
)

var shieldFont *truetype.Font

func init() {
	font, err := parseFont(gobold.TTF)
	if err != nil {
		panic(err)
	}

	shieldFont = font
}

func parseFont(fontBytes []byte) (*truetype.Font, errorsx.Error) {
	font, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return font, nil
}

// ShieldFont is the bold face used for refs and banners
func ShieldFont() *truetype.Font {
	return shieldFont
}

// LoadFont parses a TrueType font file, for tables that want a different face from the built-in one
func LoadFont(fontBytes []byte) (*truetype.Font, errorsx.Error) {
	return parseFont(fontBytes)
}
