package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-shields/shieldrenderer"
)

type RendererProvider interface {
	Renderer() *shieldrenderer.ShieldRenderer
}

func NewInfoService(logger *logpkg.Logger, rendererProvider RendererProvider) *InfoService {
	ws := &InfoService{logger, rendererProvider, chi.NewRouter()}
	ws.Get("/", ws.handleGet)

	return ws
}

type InfoService struct {
	logger           *logpkg.Logger
	rendererProvider RendererProvider
	chi.Router
}

type optionsType struct {
	ShieldSize            float64 `json:"shieldSize"`
	BannerHeight          float64 `json:"bannerHeight"`
	MaxWidthRatio         float64 `json:"maxWidthRatio"`
	MinAcceptableFontSize float64 `json:"minAcceptableFontSize"`
}

type infoType struct {
	Networks   []string    `json:"networks"`
	PixelRatio float64     `json:"pixelRatio"`
	Options    optionsType `json:"options"`
}

func (ws *InfoService) handleGet(w http.ResponseWriter, r *http.Request) {
	renderer := ws.rendererProvider.Renderer()
	shieldSet := renderer.ShieldSet()
	options := shieldSet.Options()

	render.JSON(w, r, infoType{
		Networks:   shieldSet.Networks(),
		PixelRatio: renderer.PixelRatio(),
		Options: optionsType{
			ShieldSize:            options.ShieldSize,
			BannerHeight:          options.BannerHeight,
			MaxWidthRatio:         options.MaxWidthRatio,
			MinAcceptableFontSize: options.MinAcceptableFontSize,
		},
	})
}
