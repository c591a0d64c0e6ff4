package shieldconfig

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
)

const (
	DefaultPort                 = 9000
	DefaultPixelRatio           = 2
	DefaultMaxConcurrentRenders = 4
	DefaultImageCacheSize       = 4096
)

// Config is the serve configuration, read from config.toml. Flags given on the command line take precedence.
type Config struct {
	Addr string `toml:"addr"`
	// PixelRatio is the device pixel ratio shields are drawn at
	PixelRatio float64 `toml:"pixel_ratio"`
	// SpriteDir holds a sprite sheet (sprite.json + sprite.png, optionally @2x) that is layered over the built-in sprites
	SpriteDir string `toml:"sprite_dir"`
	// SpriteURL is the base URL of a remote sprite sheet, e.g. https://example.com/sprites/sprite
	SpriteURL            string `toml:"sprite_url"`
	OverridesFile        string `toml:"overrides_file"`
	FontFile             string `toml:"font_file"`
	TilesURL             string `toml:"tiles_url"`
	MaxConcurrentRenders uint   `toml:"max_concurrent_renders"`
	ImageCacheSize       int    `toml:"image_cache_size"`
	LogLevel             string `toml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Addr:                 "localhost:9000",
		PixelRatio:           DefaultPixelRatio,
		MaxConcurrentRenders: DefaultMaxConcurrentRenders,
		ImageCacheSize:       DefaultImageCacheSize,
		LogLevel:             "info",
	}
}

// LoadConfig reads the config file at path over the defaults. A missing file gives the defaults.
func LoadConfig(fs gofs.Fs, path string) (*Config, errorsx.Error) {
	config := DefaultConfig()

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, errorsx.Wrap(err, "path", path)
	}

	config, parseErr := ParseConfig(data)
	if parseErr != nil {
		return nil, errorsx.Wrap(parseErr, "path", path)
	}

	return config, nil
}

func ParseConfig(data []byte) (*Config, errorsx.Error) {
	config := DefaultConfig()

	metadata, err := toml.Decode(string(data), config)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	undecoded := metadata.Undecoded()
	if len(undecoded) != 0 {
		var keys []string
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, errorsx.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	validationErr := config.Validate()
	if validationErr != nil {
		return nil, validationErr
	}

	return config, nil
}

func (c *Config) Validate() errorsx.Error {
	if c.PixelRatio <= 0 {
		return errorsx.Errorf("pixel_ratio must be positive, got %v", c.PixelRatio)
	}

	if c.MaxConcurrentRenders == 0 {
		return errorsx.Errorf("max_concurrent_renders must be at least 1")
	}

	if c.ImageCacheSize <= 0 {
		return errorsx.Errorf("image_cache_size must be positive, got %d", c.ImageCacheSize)
	}

	if c.SpriteDir != "" && c.SpriteURL != "" {
		return errorsx.Errorf("only one of sprite_dir and sprite_url can be set")
	}

	_, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return err
	}

	return nil
}

func ParseLogLevel(level string) (logpkg.LogLevel, errorsx.Error) {
	switch strings.ToLower(level) {
	case "debug":
		return logpkg.LogLevelDebug, nil
	case "", "info":
		return logpkg.LogLevelInfo, nil
	case "warn", "warning":
		return logpkg.LogLevelWarn, nil
	case "error":
		return logpkg.LogLevelError, nil
	default:
		return 0, errorsx.Errorf("unknown log level: %q", level)
	}
}
