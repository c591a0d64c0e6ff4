package shieldconfig

import (
	"context"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-shields/fonts"
	"github.com/jamesrr39/ownmap-shields/shielddef"
	"github.com/jamesrr39/ownmap-shields/shieldrenderer"
	"github.com/jamesrr39/ownmap-shields/shieldtext"
)

// spriteSheetName is the base name of a sprite sheet inside a sprite directory, as in sprite.json/sprite.png
const spriteSheetName = "sprite"

// LoadRenderer builds a renderer from the built-in definition table, with the configured sprite sheet and overrides applied.
// It is called again on every reload, so any error in the sources leaves the caller's current renderer in place.
func LoadRenderer(ctx context.Context, fs gofs.Fs, logger *logpkg.Logger, config *Config) (*shieldrenderer.ShieldRenderer, errorsx.Error) {
	sprites, err := loadSprites(ctx, fs, logger, config)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	definitions := shielddef.Definitions()
	if config.OverridesFile != "" {
		overrides, err := shielddef.LoadOverrides(fs, config.OverridesFile)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}

		err = overrides.Apply(definitions)
		if err != nil {
			return nil, errorsx.Wrap(err, "overridesFile", config.OverridesFile)
		}
		logger.Info("applied %d network overrides from %q", len(overrides.Networks), config.OverridesFile)
	}

	shieldSet, err := shielddef.NewShieldSet(definitions, sprites, shielddef.DefaultOptions())
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	font, err := loadFont(fs, config.FontFile)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return shieldrenderer.NewShieldRenderer(shieldSet, shieldtext.NewEngine(font, nil), config.PixelRatio), nil
}

func loadSprites(ctx context.Context, fs gofs.Fs, logger *logpkg.Logger, config *Config) (shielddef.SpriteSource, errorsx.Error) {
	builtins := shielddef.BuiltinSprites(config.PixelRatio)

	var sheet *shielddef.SpriteSheet
	var err errorsx.Error
	switch {
	case config.SpriteDir != "":
		sheet, err = shielddef.LoadSpriteSheet(fs, filepath.Join(config.SpriteDir, spriteSheetName))
	case config.SpriteURL != "":
		sheet, err = shielddef.FetchSpriteSheet(ctx, shielddef.NewSpriteClient(), config.SpriteURL)
	default:
		return builtins, nil
	}
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	logger.Info("loaded %d sprites", sheet.Len())

	// sheet sprites take precedence over the built-in drawings of the same name
	return shielddef.LayeredSpriteSource{sheet, builtins}, nil
}

func loadFont(fs gofs.Fs, fontFile string) (*truetype.Font, errorsx.Error) {
	if fontFile == "" {
		return fonts.ShieldFont(), nil
	}

	fontBytes, err := fs.ReadFile(fontFile)
	if err != nil {
		return nil, errorsx.Wrap(err, "fontFile", fontFile)
	}

	font, parseErr := fonts.LoadFont(fontBytes)
	if parseErr != nil {
		return nil, errorsx.Wrap(parseErr, "fontFile", fontFile)
	}

	return font, nil
}

// HasSpriteSheet reports whether dir holds a sprite sheet that LoadRenderer can use
func HasSpriteSheet(fs gofs.Fs, dir string) bool {
	for _, suffix := range []string{"@2x", ""} {
		_, err := fs.Stat(filepath.Join(dir, spriteSheetName+suffix+".json"))
		if err == nil {
			return true
		}
	}
	return false
}
