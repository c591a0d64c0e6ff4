package styling

import (
	"fmt"

	"github.com/jamesrr39/ownmap-shields/shield"
	mgl "github.com/jamesrr39/ownmap-shields/styling/mapboxglstyle"
)

const (
	ShieldLayerID       = "road_shield"
	minZoomShields      = 8
	shieldSymbolSpacing = 400
)

// ShieldIconImage builds the image identifier for a road's nth route,
// "shield_\n<network>=<ref>\n<name>". Tiles carry route_<n> as "<network>=<ref>".
func ShieldIconImage(routeIndex int) mgl.Expression {
	return mgl.Concat(
		shield.IdentifierPrefix+"\n",
		mgl.Get(fmt.Sprintf("route_%d", routeIndex)),
		"\n",
		mgl.Coalesce(mgl.Get("name"), ""),
	)
}

// ShieldLayer draws the first route shield along roads that are part of a route
func ShieldLayer() *mgl.Layer {
	minZoom := float64(minZoomShields)

	return &mgl.Layer{
		ID:          ShieldLayerID,
		Type:        mgl.LayerTypeSymbol,
		Source:      openMapTilesSource,
		SourceLayer: mgl.SourceLayerTransportationName,
		MinZoom:     &minZoom,
		Filter: mgl.All(
			mgl.Has("route_1"),
			mgl.In(getClass, roadClasses...),
		),
		Layout: &mgl.Layout{
			Visibility:            "visible",
			SymbolPlacement:       "line",
			SymbolSpacing:         shieldSymbolSpacing,
			IconImage:             ShieldIconImage(1),
			IconRotationAlignment: "viewport",
			IconSize:              1,
			IconPadding:           5,
		},
	}
}
