package shieldconfig

import (
	"testing"

	"github.com/jamesrr39/goutil/gofs/mockfs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseConfig(t *testing.T) {
	tests := []struct {
		Name          string
		Data          string
		Expected      *Config
		ExpectedError string
	}{
		{
			Name:     "empty file gives defaults",
			Data:     "",
			Expected: DefaultConfig(),
		}, {
			Name: "values given",
			Data: `
addr = ":9100"
pixel_ratio = 1.5
sprite_dir = "/srv/sprites"
overrides_file = "/etc/shields/overrides.toml"
max_concurrent_renders = 8
image_cache_size = 100
log_level = "debug"
`,
			Expected: &Config{
				Addr:                 ":9100",
				PixelRatio:           1.5,
				SpriteDir:            "/srv/sprites",
				OverridesFile:        "/etc/shields/overrides.toml",
				MaxConcurrentRenders: 8,
				ImageCacheSize:       100,
				LogLevel:             "debug",
			},
		}, {
			Name:          "unknown key",
			Data:          `colour = "red"`,
			ExpectedError: "unknown config keys: colour",
		}, {
			Name:          "zero pixel ratio",
			Data:          `pixel_ratio = 0`,
			ExpectedError: "pixel_ratio must be positive",
		}, {
			Name:          "no renders allowed",
			Data:          `max_concurrent_renders = 0`,
			ExpectedError: "max_concurrent_renders must be at least 1",
		}, {
			Name:          "both sprite sources",
			Data:          "sprite_dir = \"a\"\nsprite_url = \"http://example.com/sprite\"",
			ExpectedError: "only one of sprite_dir and sprite_url can be set",
		}, {
			Name:          "bad log level",
			Data:          `log_level = "loud"`,
			ExpectedError: "unknown log level",
		}, {
			Name:          "not toml",
			Data:          `addr = `,
			ExpectedError: "",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			config, err := ParseConfig([]byte(test.Data))
			if test.Expected == nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.ExpectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.Expected, config)
		})
	}
}

func Test_LoadConfig(t *testing.T) {
	fs := mockfs.NewMockFs()

	config, err := LoadConfig(fs, "/shields/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	require.NoError(t, fs.MkdirAll("/shields", 0755))
	writeErr := fs.WriteFile("/shields/config.toml", []byte(`image_cache_size = 10`), 0644)
	require.NoError(t, writeErr)

	config, err = LoadConfig(fs, "/shields/config.toml")
	require.NoError(t, err)
	assert.Equal(t, 10, config.ImageCacheSize)
	assert.Equal(t, float64(DefaultPixelRatio), config.PixelRatio)
}

func Test_ParseLogLevel(t *testing.T) {
	tests := []struct {
		Level    string
		Expected logpkg.LogLevel
	}{
		{"", logpkg.LogLevelInfo},
		{"DEBUG", logpkg.LogLevelDebug},
		{"warning", logpkg.LogLevelWarn},
		{"error", logpkg.LogLevelError},
	}

	for _, test := range tests {
		t.Run(test.Level, func(t *testing.T) {
			level, err := ParseLogLevel(test.Level)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, level)
		})
	}
}

func Test_PathsConfig(t *testing.T) {
	fs := mockfs.NewMockFs()

	pathsConfig := NewPathsConfig("/home/me/.local/share/shields")
	err := pathsConfig.EnsurePaths(fs)
	require.NoError(t, err)

	for _, dirPath := range []string{pathsConfig.RootDir, pathsConfig.SpritesDir, pathsConfig.ExportDir, pathsConfig.TraceDir} {
		fileInfo, statErr := fs.Stat(dirPath)
		require.NoError(t, statErr)
		assert.True(t, fileInfo.IsDir())
	}

	assert.Equal(t, "/home/me/.local/share/shields/config.toml", pathsConfig.ConfigFilePath())
	assert.Equal(t, "/home/me/.local/share/shields/overrides.toml", pathsConfig.OverridesFilePath())
}
