package missingimage

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-shields/shield"
	"github.com/jamesrr39/ownmap-shields/shielddraw"
)

// StyleImage is an image as a style host takes it: non-premultiplied RGBA8 rows, top to bottom
type StyleImage struct {
	Width      int
	Height     int
	Data       []byte
	PixelRatio float64
}

func NewStyleImage(raster *shielddraw.Raster) *StyleImage {
	return &StyleImage{
		Width:      raster.Width(),
		Height:     raster.Height(),
		Data:       raster.Bytes(),
		PixelRatio: raster.PixelRatio,
	}
}

// ImageRegistry is the host renderer's store of named style images
type ImageRegistry interface {
	AddImage(id string, img *StyleImage) error
	HasImage(id string) bool
}

type ShieldRenderer interface {
	Render(routeRef *shield.RouteRef) (*shielddraw.Raster, errorsx.Error)
	Blank() *shielddraw.Raster
}

// Bridge answers the host renderer when it asks for an image it does not have.
// Whatever goes wrong, an image is registered under the identifier; failures are logged, never passed on.
type Bridge struct {
	logger   *logpkg.Logger
	renderer ShieldRenderer
	registry ImageRegistry
}

func NewBridge(logger *logpkg.Logger, renderer ShieldRenderer, registry ImageRegistry) *Bridge {
	return &Bridge{logger, renderer, registry}
}

func (b *Bridge) OnMissingImage(id string) {
	raster := b.compose(id)

	err := b.registry.AddImage(id, NewStyleImage(raster))
	if err != nil {
		b.logger.Error("could not register image %q: %s", id, err)
	}
}

func (b *Bridge) compose(id string) (raster *shielddraw.Raster) {
	defer func() {
		r := recover()
		if r != nil {
			b.logger.Error("panic while drawing shield %q: %v", id, r)
			raster = b.blank()
		}
	}()

	routeRef, err := shield.ParseIdentifier(id)
	if err != nil {
		b.logger.Warn("could not parse shield identifier %q: %s", id, err)
		return b.blank()
	}

	raster, err = b.renderer.Render(routeRef)
	if err != nil {
		b.logger.Error("could not draw shield %q: %s\nStack:\n%s", id, err, err.Stack())
		return b.blank()
	}

	if raster == nil {
		b.logger.Debug("no shield for %q", id)
		return b.blank()
	}

	return raster
}

func (b *Bridge) blank() *shielddraw.Raster {
	return b.renderer.Blank()
}
