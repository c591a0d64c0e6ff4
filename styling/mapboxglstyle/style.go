package mapboxglstyle

import (
	"github.com/jamesrr39/goutil/errorsx"
)

const StyleVersion = 8

// Style is a style document, as loaded by a vector tile renderer
type Style struct {
	Version int      `json:"version"`
	Name    string   `json:"name"`
	Sources Sources  `json:"sources"`
	Sprite  string   `json:"sprite,omitempty"`
	Glyphs  string   `json:"glyphs,omitempty"`
	Layers  []*Layer `json:"layers"`
}

func (s *Style) Validate() errorsx.Error {
	if s.Version != StyleVersion {
		return errorsx.Errorf("unsupported style version: %d", s.Version)
	}

	seenIDs := make(map[string]bool)
	for _, layer := range s.Layers {
		if seenIDs[layer.ID] {
			return errorsx.Errorf("duplicate layer ID found: %q", layer.ID)
		}
		seenIDs[layer.ID] = true

		err := layer.Validate()
		if err != nil {
			return err
		}

		if layer.Source != "" {
			_, ok := s.Sources[layer.Source]
			if !ok {
				return errorsx.Errorf("layer %q refers to unknown source %q", layer.ID, layer.Source)
			}
		}
	}

	return nil
}

func (s *Style) Layer(id string) *Layer {
	for _, layer := range s.Layers {
		if layer.ID == id {
			return layer
		}
	}
	return nil
}

// LayersShowing lists, bottom to top, the layers that draw a feature
func (s *Style) LayersShowing(sourceLayer string, properties Properties, zoomLevel float64) ([]string, errorsx.Error) {
	var ids []string
	for _, layer := range s.Layers {
		shown, err := layer.IsShownAt(sourceLayer, properties, zoomLevel)
		if err != nil {
			return nil, err
		}

		if shown {
			ids = append(ids, layer.ID)
		}
	}
	return ids, nil
}
