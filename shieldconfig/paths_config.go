package shieldconfig

import (
	"path/filepath"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/userextra"
)

const defaultRootDir = "~/.local/share/github.com/jamesrr39/ownmap-shields/"

type PathsConfig struct {
	RootDir    string
	SpritesDir string
	ExportDir  string
	TraceDir   string
}

func NewPathsConfig(rootDir string) *PathsConfig {
	return &PathsConfig{
		RootDir:    rootDir,
		SpritesDir: filepath.Join(rootDir, "sprites"),
		ExportDir:  filepath.Join(rootDir, "export"),
		TraceDir:   filepath.Join(rootDir, "trace"),
	}
}

func DefaultPathsConfig() (*PathsConfig, errorsx.Error) {
	rootDir, err := userextra.ExpandUser(defaultRootDir)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return NewPathsConfig(rootDir), nil
}

func (pc *PathsConfig) ConfigFilePath() string {
	return filepath.Join(pc.RootDir, "config.toml")
}

func (pc *PathsConfig) OverridesFilePath() string {
	return filepath.Join(pc.RootDir, "overrides.toml")
}

func (pc *PathsConfig) EnsurePaths(fs gofs.Fs) errorsx.Error {
	for _, dirPath := range []string{pc.RootDir, pc.SpritesDir, pc.ExportDir, pc.TraceDir} {
		err := fs.MkdirAll(dirPath, 0755)
		if err != nil {
			return errorsx.Wrap(err, "path", dirPath)
		}
	}

	return nil
}
