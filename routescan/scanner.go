package routescan

import (
	"context"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-shields/shield"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

// Scanner is the part of the osmpbf and osmxml scanners that route scanning needs
type Scanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

type FileType string

const (
	FileTypePBF FileType = "pbf"
	FileTypeXML FileType = "xml"
)

func FileTypeFromPath(path string) (FileType, errorsx.Error) {
	switch {
	case strings.HasSuffix(path, ".pbf"):
		return FileTypePBF, nil
	case strings.HasSuffix(path, ".osm"), strings.HasSuffix(path, ".xml"):
		return FileTypeXML, nil
	default:
		return "", errorsx.Errorf("unrecognised OSM file extension %q (expected .pbf, .osm or .xml)", filepath.Ext(path))
	}
}

// NewScanner reads OSM objects from r. PBF scanning skips nodes and ways, as routes are only read from relations.
func NewScanner(ctx context.Context, r io.Reader, fileType FileType) (Scanner, errorsx.Error) {
	switch fileType {
	case FileTypePBF:
		scanner := osmpbf.New(ctx, r, runtime.NumCPU())
		scanner.SkipNodes = true
		scanner.SkipWays = true
		return scanner, nil
	case FileTypeXML:
		return osmxml.New(ctx, r), nil
	default:
		return nil, errorsx.Errorf("unknown file type: %q", fileType)
	}
}

// countingReader keeps track of how far through the file the scanner is
type countingReader struct {
	io.Reader
	count int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	atomic.AddInt64(&r.count, int64(n))
	return n, err
}

func (r *countingReader) BytesRead() int64 {
	return atomic.LoadInt64(&r.count)
}

// FileScanner is a Scanner over a file on disk, that knows how much of the file has been read
type FileScanner struct {
	Scanner
	file      gofs.File
	reader    *countingReader
	totalSize int64
}

func OpenFile(ctx context.Context, fs gofs.Fs, path string) (*FileScanner, errorsx.Error) {
	fileType, err := FileTypeFromPath(path)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	file, openErr := fs.Open(path)
	if openErr != nil {
		return nil, errorsx.Wrap(openErr, "path", path)
	}

	fileInfo, statErr := file.Stat()
	if statErr != nil {
		file.Close()
		return nil, errorsx.Wrap(statErr, "path", path)
	}

	reader := &countingReader{Reader: file}

	scanner, err := NewScanner(ctx, reader, fileType)
	if err != nil {
		file.Close()
		return nil, errorsx.Wrap(err)
	}

	return &FileScanner{scanner, file, reader, fileInfo.Size()}, nil
}

func (s *FileScanner) TotalSize() int64 {
	return s.totalSize
}

func (s *FileScanner) BytesRead() int64 {
	return s.reader.BytesRead()
}

func (s *FileScanner) Close() error {
	err := s.Scanner.Close()
	if err != nil {
		s.file.Close()
		return errorsx.Wrap(err)
	}

	err = s.file.Close()
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

// ScanRouteRefs reads every route relation and returns the distinct routes they describe
func ScanRouteRefs(scanner Scanner) ([]shield.RouteRef, errorsx.Error) {
	var routeRefs []shield.RouteRef
	for scanner.Scan() {
		relation, ok := scanner.Object().(*osm.Relation)
		if !ok {
			continue
		}

		routeRefs = append(routeRefs, shield.RouteRefsFromRelation(relation)...)
	}

	err := scanner.Err()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return shield.Dedupe(routeRefs), nil
}

// LogProgress logs how far through the file the scan is, until finishedChan is closed
func LogProgress(logger *logpkg.Logger, scanner *FileScanner, interval time.Duration, finishedChan <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-finishedChan:
			return
		case <-ticker.C:
			bytesRead := scanner.BytesRead()
			totalSize := scanner.TotalSize()
			if totalSize == 0 {
				continue
			}
			logger.Info("scanned bytes so far: %d/%d (%0.02f%%)", bytesRead, totalSize, float64(bytesRead)*100/float64(totalSize))
		}
	}
}
