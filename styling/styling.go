package styling

import (
	"github.com/jamesrr39/goutil/errorsx"
	mgl "github.com/jamesrr39/ownmap-shields/styling/mapboxglstyle"
)

const (
	DefaultStyleName   = "ownmap-shields"
	DefaultTilesURL    = "https://ogfvector.infinatio.us/data/openmaptiles.json"
	DefaultAttribution = `<a href="https://opengeofiction.net" target="_blank">&copy; OpenGeofiction contributors</a>`

	backgroundLayerID = "background"
)

type StyleOptions struct {
	Name            string
	TilesURL        string
	Attribution     string
	GlyphsURL       string
	SpriteURL       string
	BackgroundColor string
}

func DefaultStyleOptions() StyleOptions {
	return StyleOptions{
		Name:            DefaultStyleName,
		TilesURL:        DefaultTilesURL,
		Attribution:     DefaultAttribution,
		BackgroundColor: "hsl(30, 44%, 96%)",
	}
}

// BuildStyle generates the style document: background, road layers and the shield layer on top
func BuildStyle(options StyleOptions) (*mgl.Style, errorsx.Error) {
	if options.TilesURL == "" {
		return nil, errorsx.Errorf("no tiles URL given")
	}

	layers := []*mgl.Layer{{
		ID:   backgroundLayerID,
		Type: mgl.LayerTypeBackground,
		Paint: &mgl.Paint{
			BackgroundColor: options.BackgroundColor,
		},
	}}
	layers = append(layers, RoadLayers()...)
	layers = append(layers, ShieldLayer())

	style := &mgl.Style{
		Version: mgl.StyleVersion,
		Name:    options.Name,
		Sources: mgl.Sources{
			openMapTilesSource: {
				Type:        "vector",
				URL:         options.TilesURL,
				Attribution: options.Attribution,
			},
		},
		Sprite: options.SpriteURL,
		Glyphs: options.GlyphsURL,
		Layers: layers,
	}

	err := style.Validate()
	if err != nil {
		return nil, err
	}

	return style, nil
}
