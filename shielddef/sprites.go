package shielddef

import (
	"bytes"
	"encoding/json"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
)

// SpriteSource looks up named artwork
type SpriteSource interface {
	Sprite(name string) (*Artwork, bool)
}

// MapSpriteSource is a SpriteSource backed by a map, keyed by sprite name
type MapSpriteSource map[string]*Artwork

func (m MapSpriteSource) Sprite(name string) (*Artwork, bool) {
	art, ok := m[name]
	return art, ok
}

// LayeredSpriteSource looks in each source in turn
type LayeredSpriteSource []SpriteSource

func (l LayeredSpriteSource) Sprite(name string) (*Artwork, bool) {
	for _, source := range l {
		art, ok := source.Sprite(name)
		if ok {
			return art, true
		}
	}
	return nil, false
}

type spriteIndexEntry struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	PixelRatio float64 `json:"pixelRatio"`
}

// SpriteSheet is a Mapbox-style sprite: an index file plus one image holding every sprite
type SpriteSheet struct {
	sprites map[string]*Artwork
}

func (s *SpriteSheet) Sprite(name string) (*Artwork, bool) {
	art, ok := s.sprites[name]
	return art, ok
}

func (s *SpriteSheet) Len() int {
	return len(s.sprites)
}

// LoadSpriteSheet loads "<basePath>@2x.json" and "<basePath>@2x.png", falling back to the
// 1x files "<basePath>.json" and "<basePath>.png" if there is no 2x sheet.
func LoadSpriteSheet(fs gofs.Fs, basePath string) (*SpriteSheet, errorsx.Error) {
	for _, suffix := range []string{"@2x", ""} {
		_, err := fs.Stat(basePath + suffix + ".json")
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errorsx.Wrap(err, "basePath", basePath)
		}

		return loadSpriteSheet(fs, basePath+suffix)
	}

	return nil, errorsx.Errorf("no sprite sheet found at %q", filepath.Clean(basePath))
}

func loadSpriteSheet(fs gofs.Fs, path string) (*SpriteSheet, errorsx.Error) {
	indexBytes, err := fs.ReadFile(path + ".json")
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	imageBytes, err := fs.ReadFile(path + ".png")
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	sheet, err := ParseSpriteSheet(indexBytes, imageBytes)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	return sheet, nil
}

// ParseSpriteSheet builds a sheet from the contents of the index file and the sheet image
func ParseSpriteSheet(indexBytes, imageBytes []byte) (*SpriteSheet, errorsx.Error) {
	index := make(map[string]spriteIndexEntry)
	err := json.Unmarshal(indexBytes, &index)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	kind, err := filetype.Match(imageBytes)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	if kind.MIME.Subtype != "png" {
		return nil, errorsx.Errorf("sprite sheet image must be a png, but was %q", kind.MIME.Value)
	}

	sheetImage, err := png.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	sheet := &SpriteSheet{sprites: make(map[string]*Artwork, len(index))}
	for name, entry := range index {
		art, err := cutSprite(sheetImage, name, entry)
		if err != nil {
			return nil, err
		}
		sheet.sprites[name] = art
	}

	return sheet, nil
}

func cutSprite(sheetImage image.Image, name string, entry spriteIndexEntry) (*Artwork, errorsx.Error) {
	rect := image.Rect(entry.X, entry.Y, entry.X+entry.Width, entry.Y+entry.Height)
	if entry.Width <= 0 || entry.Height <= 0 || !rect.In(sheetImage.Bounds()) {
		return nil, errorsx.Errorf("sprite %q is outside the sheet (%v)", name, rect)
	}

	pixelRatio := entry.PixelRatio
	if pixelRatio <= 0 {
		pixelRatio = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, entry.Width, entry.Height))
	draw.Draw(img, img.Bounds(), sheetImage, rect.Min, draw.Src)

	return &Artwork{
		Name:       name,
		Image:      img,
		PixelRatio: pixelRatio,
	}, nil
}
