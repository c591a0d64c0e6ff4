package webservices

import (
	"context"
	"image"
	"image/png"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/go-chi/chi"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-shields/missingimage"
	"github.com/jamesrr39/ownmap-shields/shield"
	"github.com/jamesrr39/ownmap-shields/shieldrenderer"
	"github.com/jamesrr39/semaphore"
	"github.com/pkg/profile"
	"golang.org/x/sync/singleflight"
)

// shieldHost is the renderer with the images it has drawn so far. Reloading swaps the whole thing.
type shieldHost struct {
	renderer *shieldrenderer.ShieldRenderer
	registry *missingimage.MemoryRegistry
	bridge   *missingimage.Bridge
}

// ShieldService plays the part of a map renderer's image store: images are looked up by identifier,
// and drawn through the missing image bridge the first time they are asked for.
type ShieldService struct {
	logger               *logpkg.Logger
	host                 atomic.Pointer[shieldHost]
	cacheSize            int
	maxConcurrentRenders uint
	sema                 *semaphore.Semaphore
	renderGroup          singleflight.Group
	shouldProfile        bool
	chi.Router
}

// NewShieldService creates the service. With shouldProfile set, each render is CPU profiled;
// the profiler is process-wide, so renders then run one at a time whatever maxConcurrentRenders says.
func NewShieldService(logger *logpkg.Logger, renderer *shieldrenderer.ShieldRenderer, maxConcurrentRenders uint, cacheSize int, shouldProfile bool) *ShieldService {
	if shouldProfile || maxConcurrentRenders == 0 {
		maxConcurrentRenders = 1
	}

	ss := &ShieldService{
		logger:               logger,
		cacheSize:            cacheSize,
		maxConcurrentRenders: maxConcurrentRenders,
		sema:                 semaphore.NewSemaphore(maxConcurrentRenders),
		shouldProfile:        shouldProfile,
		Router:               chi.NewRouter(),
	}
	ss.SetRenderer(renderer)

	ss.Get("/image", ss.handleGetImage)
	ss.Get("/{network}/{ref}", ss.handleGetRoute)

	return ss
}

// SetRenderer swaps in a new renderer, and forgets the images drawn by the old one
func (ss *ShieldService) SetRenderer(renderer *shieldrenderer.ShieldRenderer) {
	registry := missingimage.NewMemoryRegistry(ss.cacheSize)
	ss.host.Store(&shieldHost{
		renderer: renderer,
		registry: registry,
		bridge:   missingimage.NewBridge(ss.logger, renderer, registry),
	})
}

func (ss *ShieldService) Renderer() *shieldrenderer.ShieldRenderer {
	return ss.host.Load().renderer
}

type shieldServiceStats struct {
	CachedImages         int  `json:"cachedImages"`
	RendersInFlight      int  `json:"rendersInFlight"`
	MaxConcurrentRenders uint `json:"maxConcurrentRenders"`
	MaxCachedImages      int  `json:"maxCachedImages"`
}

func (ss *ShieldService) stats() shieldServiceStats {
	return shieldServiceStats{
		CachedImages:         ss.host.Load().registry.Len(),
		RendersInFlight:      ss.sema.CurrentlyRunning(),
		MaxConcurrentRenders: ss.maxConcurrentRenders,
		MaxCachedImages:      ss.cacheSize,
	}
}

func (ss *ShieldService) handleGetImage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		errorsx.HTTPError(w, ss.logger, errorsx.Errorf("no image id given"), http.StatusBadRequest)
		return
	}

	ss.serveImage(w, r, id)
}

func (ss *ShieldService) handleGetRoute(w http.ResponseWriter, r *http.Request) {
	network, err := url.PathUnescape(chi.URLParam(r, "network"))
	if err != nil {
		errorsx.HTTPError(w, ss.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	ref, err := url.PathUnescape(chi.URLParam(r, "ref"))
	if err != nil {
		errorsx.HTTPError(w, ss.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	routeRef := &shield.RouteRef{
		Network: network,
		Ref:     ref,
		WayName: r.URL.Query().Get("name"),
	}

	ss.serveImage(w, r, routeRef.Identifier())
}

func (ss *ShieldService) serveImage(w http.ResponseWriter, r *http.Request, id string) {
	styleImage, err := ss.getImage(r.Context(), id)
	if err != nil {
		errorsx.HTTPError(w, ss.logger, errorsx.Wrap(err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")

	encodeErr := png.Encode(w, toNRGBA(styleImage))
	if encodeErr != nil {
		switch encodeErr.(type) {
		case *net.OpError:
			// broken pipe (request cancelled). Do nothing
		default:
			errorsx.HTTPError(w, ss.logger, errorsx.Wrap(encodeErr), http.StatusInternalServerError)
		}
		return
	}
}

// getImage returns the registered image, drawing it first if this is the first time it is asked for.
// Concurrent requests for the same image share one render.
func (ss *ShieldService) getImage(ctx context.Context, id string) (*missingimage.StyleImage, errorsx.Error) {
	host := ss.host.Load()

	styleImage, ok := host.registry.GetImage(id)
	if ok {
		return styleImage, nil
	}

	result, err, _ := ss.renderGroup.Do(id, func() (interface{}, error) {
		ss.sema.Add()
		defer ss.sema.Done()

		if ss.shouldProfile {
			defer profile.Start(profile.CPUProfile).Stop()
		}

		span := tracing.StartSpan(ctx, "draw shield")
		host.bridge.OnMissingImage(id)
		span.End(ctx)

		styleImage, ok := host.registry.GetImage(id)
		if !ok {
			return nil, errorsx.Errorf("image %q was not registered", id)
		}

		return styleImage, nil
	})
	if err != nil {
		return nil, errorsx.Wrap(err, "id", id)
	}

	return result.(*missingimage.StyleImage), nil
}

func toNRGBA(styleImage *missingimage.StyleImage) *image.NRGBA {
	return &image.NRGBA{
		Pix:    styleImage.Data,
		Stride: styleImage.Width * 4,
		Rect:   image.Rect(0, 0, styleImage.Width, styleImage.Height),
	}
}
