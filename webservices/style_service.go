package webservices

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-shields/styling"
	"github.com/jamesrr39/ownmap-shields/styling/mapboxglstyle"
)

// StyleService serves the generated style document and the legend data that goes with it
type StyleService struct {
	logger *logpkg.Logger
	style  *mapboxglstyle.Style
	chi.Router
}

func NewStyleService(logger *logpkg.Logger, options styling.StyleOptions) (*StyleService, errorsx.Error) {
	style, err := styling.BuildStyle(options)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	ws := &StyleService{logger, style, chi.NewRouter()}
	ws.Get("/style.json", ws.handleGetStyle)
	ws.Get("/layers", ws.handleGetLayers)
	ws.Get("/legend", ws.handleGetLegend)
	ws.Get("/networks/legend", ws.handleGetNetworksLegend)

	return ws, nil
}

func (ws *StyleService) handleGetStyle(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, ws.style)
}

func (ws *StyleService) handleGetLegend(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, styling.LegendEntries())
}

func (ws *StyleService) handleGetNetworksLegend(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, styling.LegendBindings())
}

var numericFeatureProperties = []string{"ramp", "toll", "expressway", "layer"}

// handleGetLayers lists the layers that would draw a feature, e.g.
// /layers?zoom=12&sourceLayer=transportation&class=primary&brunnel=bridge&toll=1
func (ws *StyleService) handleGetLayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	zoomStr := query.Get("zoom")
	zoom, err := strconv.ParseFloat(zoomStr, 64)
	if err != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(err, "zoom", zoomStr), http.StatusBadRequest)
		return
	}

	sourceLayer := query.Get("sourceLayer")
	if sourceLayer == "" {
		sourceLayer = mapboxglstyle.SourceLayerTransportation
	}

	properties := make(mapboxglstyle.Properties)
	for key := range query {
		switch key {
		case "zoom", "sourceLayer":
			continue
		}
		properties[key] = query.Get(key)
	}

	for _, key := range numericFeatureProperties {
		value, ok := properties[key]
		if !ok {
			continue
		}

		number, err := strconv.ParseFloat(value.(string), 64)
		if err != nil {
			errorsx.HTTPError(w, ws.logger, errorsx.Wrap(err, "property", key), http.StatusBadRequest)
			return
		}
		properties[key] = number
	}

	layerIDs, layersErr := ws.style.LayersShowing(sourceLayer, properties, zoom)
	if layersErr != nil {
		errorsx.HTTPError(w, ws.logger, layersErr, http.StatusBadRequest)
		return
	}

	if layerIDs == nil {
		layerIDs = []string{}
	}

	render.JSON(w, r, layerIDs)
}
