package shieldrenderer

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"regexp"
	"sync/atomic"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-shields/shield"
	"github.com/jamesrr39/ownmap-shields/shielddraw"
	"golang.org/x/sync/errgroup"
)

func WritePNG(w io.Writer, raster *shielddraw.Raster) errorsx.Error {
	err := png.Encode(w, raster.NRGBA())
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

var unsafeFileNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ExportFileName is a file system safe name for a route's image, e.g. "FSA-TM_5A.png"
func ExportFileName(routeRef shield.RouteRef) string {
	name := unsafeFileNameChars.ReplaceAllString(routeRef.Network, "-") + "_" + unsafeFileNameChars.ReplaceAllString(routeRef.Ref, "-")
	if routeRef.WayName != "" {
		name += "_" + unsafeFileNameChars.ReplaceAllString(routeRef.WayName, "-")
	}
	return name + ".png"
}

type ExportResult struct {
	Written int
	// NoShield counts routes with nothing to draw, such as an unknown network with a ref too long for the default badge
	NoShield int
	Failed   int
}

func (r ExportResult) String() string {
	return fmt.Sprintf("%d written, %d with no shield, %d failed", r.Written, r.NoShield, r.Failed)
}

// Export draws every route into outDir, maxConcurrent at a time. A route that cannot be drawn is logged and skipped.
func (sr *ShieldRenderer) Export(ctx context.Context, fs gofs.Fs, logger *logpkg.Logger, routeRefs []shield.RouteRef, outDir string, maxConcurrent int) (ExportResult, errorsx.Error) {
	err := fs.MkdirAll(outDir, 0755)
	if err != nil {
		return ExportResult{}, errorsx.Wrap(err, "outDir", outDir)
	}

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	var written, noShield, failed int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrent)

	for _, routeRef := range routeRefs {
		routeRef := routeRef
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}

			raster, err := sr.Render(&routeRef)
			if err != nil {
				logger.Error("could not draw %s: %s\nStack:\n%s", routeRef.String(), err, err.Stack())
				atomic.AddInt64(&failed, 1)
				return nil
			}

			if raster == nil {
				logger.Debug("no shield for %s", routeRef.String())
				atomic.AddInt64(&noShield, 1)
				return nil
			}

			var buf bytes.Buffer
			err = WritePNG(&buf, raster)
			if err != nil {
				return errorsx.Wrap(err, "route", routeRef.String())
			}

			filePath := filepath.Join(outDir, ExportFileName(routeRef))
			writeErr := fs.WriteFile(filePath, buf.Bytes(), 0644)
			if writeErr != nil {
				return errorsx.Wrap(writeErr, "path", filePath)
			}

			atomic.AddInt64(&written, 1)
			return nil
		})
	}

	result := func() ExportResult {
		return ExportResult{
			Written:  int(atomic.LoadInt64(&written)),
			NoShield: int(atomic.LoadInt64(&noShield)),
			Failed:   int(atomic.LoadInt64(&failed)),
		}
	}

	groupErr := group.Wait()
	if groupErr != nil {
		return result(), errorsx.Wrap(groupErr)
	}

	return result(), nil
}
