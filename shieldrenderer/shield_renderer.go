package shieldrenderer

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-shields/shield"
	"github.com/jamesrr39/ownmap-shields/shielddef"
	"github.com/jamesrr39/ownmap-shields/shielddraw"
	"github.com/jamesrr39/ownmap-shields/shieldtext"
)

// ShieldRenderer composes badges: artwork or shape, ref text, banners and colour swaps.
// It holds no per-call state and can be used from several goroutines at once.
type ShieldRenderer struct {
	shieldSet  *shielddef.ShieldSet
	textEngine *shieldtext.Engine
	pixelRatio float64
}

func NewShieldRenderer(shieldSet *shielddef.ShieldSet, textEngine *shieldtext.Engine, pixelRatio float64) *ShieldRenderer {
	return &ShieldRenderer{
		shieldSet,
		textEngine,
		pixelRatio,
	}
}

func (sr *ShieldRenderer) PixelRatio() float64 {
	return sr.pixelRatio
}

func (sr *ShieldRenderer) ShieldSet() *shielddef.ShieldSet {
	return sr.shieldSet
}

// Blank is the transparent badge drawn when there is no route to show
func (sr *ShieldRenderer) Blank() *shielddraw.Raster {
	return shielddraw.Blank(sr.shieldSet.Options().ShieldSize, sr.pixelRatio)
}

// drawnRef is the text to put on the badge. Roads with no ref of their own may get one from their name.
func drawnRef(definition *shielddef.Definition, routeRef *shield.RouteRef) string {
	if routeRef.Ref != "" {
		return routeRef.Ref
	}

	ref, ok := definition.RefForWayName(routeRef.WayName)
	if ok {
		return ref
	}

	return routeRef.Ref
}

// GetShieldDef picks the definition to draw a route with, or nil if the route gets no badge.
// Networks not in the table get the default badge, as long as they have a ref to show.
func (sr *ShieldRenderer) GetShieldDef(routeRef *shield.RouteRef) *shielddef.Definition {
	if routeRef == nil {
		return nil
	}

	definition, ok := sr.shieldSet.Get(routeRef.Network)
	if !ok {
		defaultDefinition := sr.shieldSet.Default()
		if !shield.IsValidRef(drawnRef(defaultDefinition, routeRef)) {
			return nil
		}
		return defaultDefinition
	}

	if !shield.IsValidRef(drawnRef(definition, routeRef)) && !definition.NoText && definition.NorefArtwork == nil {
		return nil
	}

	return definition
}

// Render draws the badge for a route. A nil raster and nil error mean the route gets no badge.
func (sr *ShieldRenderer) Render(routeRef *shield.RouteRef) (*shielddraw.Raster, errorsx.Error) {
	definition := sr.GetShieldDef(routeRef)
	if definition == nil {
		return nil, nil
	}

	return sr.RenderDefinition(definition, drawnRef(definition, routeRef))
}

// CompoundShieldSize is the size of a badge with its banners stacked on top, in badge units
func CompoundShieldSize(options shielddef.Options, width, height float64, bannerCount int) (float64, float64) {
	return width, height + float64(bannerCount)*options.BannerHeight
}

// badge is what was decided about the badge before anything is drawn
type badge struct {
	artwork       *shielddef.Artwork
	width, height float64
	layout        *shieldtext.Layout
}

// RenderDefinition draws a badge from an already chosen definition and ref
func (sr *ShieldRenderer) RenderDefinition(definition *shielddef.Definition, ref string) (*shielddraw.Raster, errorsx.Error) {
	options := sr.shieldSet.Options()
	refValid := shield.IsValidRef(ref)

	if definition.Shape == nil && len(definition.Artwork) == 0 {
		return nil, errorsx.Errorf("definition has no shape and no resolved artwork")
	}

	b := sr.selectBadge(definition, ref, refValid)

	badgeRaster := shielddraw.NewRaster(b.width, b.height, sr.pixelRatio)
	if b.artwork != nil {
		shielddraw.DrawArtwork(badgeRaster, b.artwork.Image, b.artwork.PixelRatio, 0, 0, definition.VerticalReflect)
	} else {
		badgeRaster.DrawOver(shielddraw.Draw(*definition.Shape, b.width, b.height, sr.pixelRatio), 0, 0)
	}

	if refValid && !definition.NoText {
		layout := b.layout
		if layout == nil {
			layout = sr.layout(definition, ref, b.width, b.height)
		}
		err := sr.textEngine.DrawLayout(badgeRaster, layout, definition.DrawnTextColor())
		if err != nil {
			return nil, errorsx.Wrap(err, "ref", ref)
		}
	}

	bannerCount := definition.BannerCount()
	width, height := CompoundShieldSize(options, b.width, b.height, bannerCount)
	raster := shielddraw.NewRaster(width, height, sr.pixelRatio)
	raster.DrawOver(badgeRaster, 0, shielddraw.ToPixels(float64(bannerCount)*options.BannerHeight, sr.pixelRatio))

	bannerStyle := shieldtext.BannerStyle{
		Height:    options.BannerHeight,
		Padding:   options.BannerPadding,
		TextColor: options.BannerTextColor,
		HaloColor: options.BannerTextHaloColor,
	}
	for i, banner := range definition.Banners {
		top := shielddraw.ToPixels(float64(i)*options.BannerHeight, sr.pixelRatio)
		err := sr.textEngine.DrawBanner(raster, banner, top, bannerStyle)
		if err != nil {
			return nil, errorsx.Wrap(err, "banner", banner)
		}
	}

	shielddraw.Recolor(raster, definition.ColorLighten, definition.ColorDarken)

	return raster, nil
}

func (sr *ShieldRenderer) layout(definition *shielddef.Definition, ref string, width, height float64) *shieldtext.Layout {
	return sr.textEngine.Layout(
		ref,
		definition.TextConstraint,
		definition.Padding,
		shieldtext.Size{Width: width, Height: height},
		sr.pixelRatio,
	)
}

func (sr *ShieldRenderer) selectBadge(definition *shielddef.Definition, ref string, refValid bool) *badge {
	options := sr.shieldSet.Options()

	if !refValid && definition.NorefArtwork != nil {
		width, height := definition.NorefArtwork.Size()
		return &badge{artwork: definition.NorefArtwork, width: width, height: height}
	}

	if definition.Shape == nil {
		return sr.selectArtwork(definition, ref, refValid)
	}

	width := definition.Shape.RectWidth
	if definition.Shape.IsVariableWidth() {
		width = options.ShieldSize
		if refValid && !definition.NoText {
			width = sr.textEngine.FitWidth(
				ref,
				definition.TextConstraint,
				definition.Padding,
				options.ShieldSize,
				options.ShieldSize,
				options.ShieldSize*options.MaxWidthRatio,
				sr.pixelRatio,
			)
		}
	}

	return &badge{width: width, height: options.ShieldSize}
}

// selectArtwork takes the narrowest artwork that leaves room for the ref at a readable size,
// or the widest if none does. Artwork is sorted narrowest first when the table is loaded.
func (sr *ShieldRenderer) selectArtwork(definition *shielddef.Definition, ref string, refValid bool) *badge {
	options := sr.shieldSet.Options()
	artworks := definition.Artwork

	if len(artworks) == 1 || !refValid || definition.NoText {
		art := artworks[0]
		width, height := art.Size()
		return &badge{artwork: art, width: width, height: height}
	}

	var b *badge
	for _, art := range artworks {
		width, height := art.Size()
		b = &badge{
			artwork: art,
			width:   width,
			height:  height,
			layout:  sr.layout(definition, ref, width, height),
		}
		if b.layout.FontSize >= options.MinAcceptableFontSize {
			return b
		}
	}

	return b
}
