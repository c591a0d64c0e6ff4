package shielddef

import (
	"image"
	"image/color"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-shields/shielddraw"
	"github.com/jamesrr39/ownmap-shields/shieldtext"
)

// Artwork is a fixed badge image, usually cut from a sprite sheet
type Artwork struct {
	Name       string
	Image      image.Image
	PixelRatio float64
}

// Size is the artwork's size in badge units
func (a *Artwork) Size() (float64, float64) {
	bounds := a.Image.Bounds()
	return float64(bounds.Dx()) / a.PixelRatio, float64(bounds.Dy()) / a.PixelRatio
}

// Definition describes how routes of one network are drawn.
// Definitions are built once when the table is loaded and not changed afterwards.
type Definition struct {
	// Shape draws the badge procedurally. Exactly one of Shape and ArtworkNames is set.
	Shape *shielddraw.Shape
	// ArtworkNames are sprite names, one per width variant.
	ArtworkNames []string
	// NorefArtworkName is the sprite drawn for routes with no usable ref.
	NorefArtworkName string
	VerticalReflect  bool

	TextConstraint shieldtext.Constraint
	Padding        shieldtext.Padding
	TextColor      color.Color
	NoText         bool
	Banners        []string

	ColorLighten color.Color
	ColorDarken  color.Color

	// RefsByWayName gives the ref to show for roads with no ref of their own, by road name
	RefsByWayName map[string]string

	// resolved from the names when the set is built, sorted narrowest first
	Artwork      []*Artwork
	NorefArtwork *Artwork
}

// DrawnTextColor is the colour the ref is written in
func (d *Definition) DrawnTextColor() color.Color {
	if d.TextColor != nil {
		return d.TextColor
	}
	if d.Shape != nil && d.Shape.StrokeColor != nil {
		return d.Shape.StrokeColor
	}
	return Black
}

func (d *Definition) BannerCount() int {
	return len(d.Banners)
}

// HasArtwork reports whether the badge comes from fixed images rather than a shape
func (d *Definition) HasArtwork() bool {
	return len(d.ArtworkNames) > 0
}

// RefForWayName looks up a ref by road name, for roads that have none tagged
func (d *Definition) RefForWayName(wayName string) (string, bool) {
	if d.RefsByWayName == nil || wayName == "" {
		return "", false
	}
	ref, ok := d.RefsByWayName[wayName]
	return ref, ok
}

func (d *Definition) Validate() errorsx.Error {
	if d.Shape != nil && d.HasArtwork() {
		return errorsx.Errorf("definition has both a shape and artwork")
	}

	if d.Shape == nil && !d.HasArtwork() {
		return errorsx.Errorf("definition has neither a shape nor artwork")
	}

	if d.Shape != nil {
		err := d.Shape.Validate()
		if err != nil {
			return errorsx.Wrap(err)
		}
	}

	err := d.Padding.Validate()
	if err != nil {
		return errorsx.Wrap(err)
	}

	if d.TextConstraint.Kind.String() == "unknown" {
		return errorsx.Errorf("unknown text constraint: %d", d.TextConstraint.Kind)
	}

	if d.TextConstraint.Radius < 0 {
		return errorsx.Errorf("text constraint radius must not be negative")
	}

	for _, banner := range d.Banners {
		if banner == "" {
			return errorsx.Errorf("empty banner text")
		}
	}

	return nil
}

// clone copies a definition, so that resolving artwork never touches the caller's value
func (d *Definition) clone() *Definition {
	c := *d
	if d.Shape != nil {
		shape := *d.Shape
		c.Shape = &shape
	}
	c.ArtworkNames = append([]string(nil), d.ArtworkNames...)
	c.Banners = append([]string(nil), d.Banners...)
	if d.RefsByWayName != nil {
		c.RefsByWayName = make(map[string]string, len(d.RefsByWayName))
		for k, v := range d.RefsByWayName {
			c.RefsByWayName[k] = v
		}
	}
	c.Artwork = nil
	c.NorefArtwork = nil
	return &c
}

// Options are the table-wide settings
type Options struct {
	// ShieldSize is the height of a badge, and the smallest width of a variable-width one, in badge units
	ShieldSize    float64
	BannerHeight  float64
	BannerPadding float64
	// MaxWidthRatio caps the width of variable-width badges at ShieldSize * MaxWidthRatio
	MaxWidthRatio       float64
	BannerTextColor     color.Color
	BannerTextHaloColor color.Color
	// MinAcceptableFontSize decides between artwork width variants, in badge units
	MinAcceptableFontSize float64
}

func DefaultOptions() Options {
	return Options{
		ShieldSize:            20,
		BannerHeight:          9,
		BannerPadding:         1,
		MaxWidthRatio:         2,
		BannerTextColor:       Black,
		BannerTextHaloColor:   BackgroundFill,
		MinAcceptableFontSize: 12,
	}
}

func (o Options) Validate() errorsx.Error {
	if o.ShieldSize <= 0 {
		return errorsx.Errorf("shield size must be positive")
	}
	if o.BannerHeight <= 2*o.BannerPadding || o.BannerPadding < 0 {
		return errorsx.Errorf("banner height (%v) must be more than twice the banner padding (%v)", o.BannerHeight, o.BannerPadding)
	}
	if o.MaxWidthRatio < 1 {
		return errorsx.Errorf("max width ratio must be at least 1")
	}
	return nil
}
