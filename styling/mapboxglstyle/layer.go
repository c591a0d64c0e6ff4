package mapboxglstyle

import (
	"github.com/jamesrr39/goutil/errorsx"
)

type LayerType string

const (
	LayerTypeBackground LayerType = "background"
	LayerTypeFill       LayerType = "fill"
	LayerTypeLine       LayerType = "line"
	LayerTypeSymbol     LayerType = "symbol"
)

type Metadata map[string]interface{}

type Layer struct {
	ID          string    `json:"id"`
	Type        LayerType `json:"type"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	Source      string    `json:"source,omitempty"`
	SourceLayer string    `json:"source-layer,omitempty"`
	MinZoom     *float64  `json:"minzoom,omitempty"`
	MaxZoom     *float64  `json:"maxzoom,omitempty"`
	Filter      Filter    `json:"filter,omitempty"`
	Layout      *Layout   `json:"layout,omitempty"`
	Paint       *Paint    `json:"paint,omitempty"`
}

func (l *Layer) Validate() errorsx.Error {
	if l.ID == "" {
		return errorsx.Errorf("layer has no ID")
	}

	if l.MaxZoom != nil && l.MinZoom != nil {
		if *l.MaxZoom < *l.MinZoom {
			return errorsx.Errorf("layer %q: max zoom is smaller than min zoom", l.ID)
		}
	}

	if l.MaxZoom != nil && (*l.MaxZoom < 0 || *l.MaxZoom > 24) {
		return errorsx.Errorf("layer %q: max zoom must be between 0 and 24 (inclusive) but was %f", l.ID, *l.MaxZoom)
	}

	if l.MinZoom != nil && (*l.MinZoom < 0 || *l.MinZoom > 24) {
		return errorsx.Errorf("layer %q: min zoom must be between 0 and 24 (inclusive) but was %f", l.ID, *l.MinZoom)
	}

	if l.Type != LayerTypeBackground && l.Source == "" {
		return errorsx.Errorf("layer %q: no source", l.ID)
	}

	return nil
}

// IsShownAt reports whether a feature with these properties, from sourceLayer, is drawn by this layer at the zoom level
func (l *Layer) IsShownAt(sourceLayer string, properties Properties, zoomLevel float64) (bool, errorsx.Error) {
	if l.SourceLayer != sourceLayer {
		// feature doesn't "belong" in this sourceLayer
		return false, nil
	}

	if l.MinZoom != nil && zoomLevel < *l.MinZoom {
		return false, nil
	}

	if l.MaxZoom != nil && zoomLevel >= *l.MaxZoom {
		return false, nil
	}

	shown, err := IsFeatureShown(l.Filter, properties)
	if err != nil {
		return false, errorsx.Wrap(err, "layerID", l.ID)
	}

	return shown, nil
}

type Source struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	Attribution string `json:"attribution,omitempty"`
}

type Sources map[string]Source
