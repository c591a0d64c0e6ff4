package shielddef

import (
	"sort"

	"github.com/jamesrr39/ownmap-shields/shielddraw"
)

// Sprite artwork that ships with the program. These are drawn with the same shape code
// as procedural badges, so the table works without a sprite sheet on disk.
// A sprite sheet, when configured, takes precedence.

type spriteLayer struct {
	shape         shielddraw.Shape
	x, y          float64
	width, height float64
}

type builtinSprite struct {
	width, height float64
	layers        []spriteLayer
}

func singleLayer(width, height float64, shape shielddraw.Shape) builtinSprite {
	return builtinSprite{
		width:  width,
		height: height,
		layers: []spriteLayer{{shape: shape, width: width, height: height}},
	}
}

func withLayers(base builtinSprite, layers ...spriteLayer) builtinSprite {
	base.layers = append(append([]spriteLayer(nil), base.layers...), layers...)
	return base
}

func triangleConvexSprite(width float64) builtinSprite {
	return singleLayer(width, 20, shielddraw.Shape{Kind: shielddraw.KindTriangle, FillColor: White, StrokeColor: Black, Radius: 3})
}

func badgeSprite(width float64) builtinSprite {
	return singleLayer(width, 20, shielddraw.Shape{Kind: shielddraw.KindEscutcheon, Offset: 6, FillColor: White, StrokeColor: Black, Radius: 1})
}

func badgeCrossbarSprite(width float64) builtinSprite {
	return withLayers(
		badgeSprite(width),
		spriteLayer{
			shape: shielddraw.Shape{Kind: shielddraw.KindRoundedRectangle, FillColor: Black},
			x:     1, y: 4, width: width - 2, height: 1,
		},
	)
}

var builtinSprites = map[string]builtinSprite{
	"shield_tri_convex_2":     triangleConvexSprite(20),
	"shield_tri_convex_3":     triangleConvexSprite(26),
	"shield_badge_2":          badgeSprite(20),
	"shield_badge_3":          badgeSprite(26),
	"shield_badge_crossbar_2": badgeCrossbarSprite(20),
	"shield_badge_crossbar_3": badgeCrossbarSprite(26),

	"shield_lutang_n": withLayers(
		singleLayer(24, 22, shielddraw.Shape{Kind: shielddraw.KindEscutcheon, Offset: 6, FillColor: Green, StrokeColor: White, Radius: 2}),
		spriteLayer{
			shape: shielddraw.Shape{Kind: shielddraw.KindRoundedRectangle, FillColor: White},
			x:     2, y: 3, width: 20, height: 1,
		},
	),
	"shield_lutang_ws": singleLayer(22, 20, shielddraw.Shape{Kind: shielddraw.KindPentagon, Offset: 5, FillColor: Yellow, StrokeColor: Black, Radius1: 2, Radius2: 2}),
	"shield_lutang_kt": withLayers(
		singleLayer(24, 24, shielddraw.Shape{Kind: shielddraw.KindRoundedRectangle, FillColor: White, StrokeColor: Black, Radius: 2}),
		spriteLayer{
			shape: shielddraw.Shape{Kind: shielddraw.KindTriangle, PointUp: true, FillColor: Brown},
			x:     15, y: 2, width: 7, height: 7,
		},
	),
	"shield_lutang_bb": singleLayer(24, 22, shielddraw.Shape{Kind: shielddraw.KindOctagonVertical, Offset: 5, Angle: 30, FillColor: White, StrokeColor: Red, Radius: 1}),

	"shield_fsa_fs": singleLayer(26, 20, shielddraw.Shape{Kind: shielddraw.KindRoundedRectangle, FillColor: White, StrokeColor: FSAFS, Radius: 4, OutlineWidth: 2}),
	"shield_fsa_me": singleLayer(26, 20, shielddraw.Shape{Kind: shielddraw.KindEllipse, FillColor: White, StrokeColor: Black}),
	"shield_fsa_al": withLayers(
		singleLayer(24, 20, shielddraw.Shape{Kind: shielddraw.KindRoundedRectangle, FillColor: White, StrokeColor: Black, Radius: 2}),
		spriteLayer{
			shape: shielddraw.Shape{Kind: shielddraw.KindRoundedRectangle, FillColor: Red},
			x:     1, y: 1, width: 3, height: 18,
		},
	),
	"shield_fsa_cl": singleLayer(26, 20, shielddraw.Shape{Kind: shielddraw.KindTrapezoid, Angle: 10, FillColor: White, StrokeColor: Black, Radius: 1}),
	"shield_fsa_rp": singleLayer(24, 22, shielddraw.Shape{Kind: shielddraw.KindPentagon, PointUp: true, Offset: 4, FillColor: White, StrokeColor: Black, Radius1: 1, Radius2: 2}),
	"shield_fsa_wm": withLayers(
		singleLayer(24, 22, shielddraw.Shape{Kind: shielddraw.KindEscutcheon, Offset: 8, FillColor: White, StrokeColor: Green, Radius: 1}),
		spriteLayer{
			shape: shielddraw.Shape{Kind: shielddraw.KindRoundedRectangle, FillColor: Green},
			x:     1, y: 1, width: 3, height: 14,
		},
	),
	"shield_fsa_mk": singleLayer(24, 24, shielddraw.Shape{Kind: shielddraw.KindOctagonVertical, Offset: 6, Angle: 30, FillColor: Yellow, StrokeColor: Black}),
	"shield_fsa_mc": singleLayer(24, 24, shielddraw.Shape{Kind: shielddraw.KindHexagonVertical, Offset: 4, FillColor: White, StrokeColor: Blue, Radius: 1}),
	"shield_fsa_wi": singleLayer(26, 22, shielddraw.Shape{Kind: shielddraw.KindEllipse, FillColor: Yellow, StrokeColor: Brown}),
	"shield_fsa_pq": singleLayer(26, 26, shielddraw.Shape{Kind: shielddraw.KindEllipse, FillColor: White, StrokeColor: Red, OutlineWidth: 2}),
	"shield_fsa_rtc": withLayers(
		singleLayer(20, 20, shielddraw.Shape{Kind: shielddraw.KindDiamond, FillColor: Red, StrokeColor: White, Radius: 2}),
		spriteLayer{
			shape: shielddraw.Shape{Kind: shielddraw.KindEllipse, FillColor: White},
			x:     7, y: 7, width: 6, height: 6,
		},
	),
}

// BuiltinSpriteNames lists the sprites BuiltinSprites draws, sorted
func BuiltinSpriteNames() []string {
	var names []string
	for name := range builtinSprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinSprites draws the built-in artwork at the given pixel ratio
func BuiltinSprites(pixelRatio float64) MapSpriteSource {
	source := make(MapSpriteSource, len(builtinSprites))
	for name, sprite := range builtinSprites {
		source[name] = sprite.draw(name, pixelRatio)
	}
	return source
}

func (s builtinSprite) draw(name string, pixelRatio float64) *Artwork {
	raster := shielddraw.NewRaster(s.width, s.height, pixelRatio)
	for _, layer := range s.layers {
		layerRaster := shielddraw.Draw(layer.shape, layer.width, layer.height, pixelRatio)
		raster.DrawOver(layerRaster, shielddraw.ToPixels(layer.x, pixelRatio), shielddraw.ToPixels(layer.y, pixelRatio))
	}

	return &Artwork{
		Name:       name,
		Image:      raster.Img,
		PixelRatio: pixelRatio,
	}
}
