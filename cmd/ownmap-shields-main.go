package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/httpextra"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/goutil/open"
	"github.com/jamesrr39/ownmap-shields/routescan"
	"github.com/jamesrr39/ownmap-shields/shield"
	"github.com/jamesrr39/ownmap-shields/shieldconfig"
	"github.com/jamesrr39/ownmap-shields/shielddef"
	"github.com/jamesrr39/ownmap-shields/shieldrenderer"
	"github.com/jamesrr39/ownmap-shields/styling"
	"github.com/jamesrr39/ownmap-shields/webservices"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/pkg/profile"
)

const (
	MAX_SERVER_RUNNING_ATTEMPTS = 50

	adminPath       = "admin"
	shieldsBasePath = "/api/shields"

	// editors often write a file in several steps; wait for them to finish before reloading
	reloadDelay = 300 * time.Millisecond
)

var (
	logger     *logpkg.Logger
	verbose    *bool
	configPath *string
)

func main() {
	if len(os.Args) == 1 {
		logger = logpkg.NewLogger(os.Stderr, logpkg.LogLevelInfo)
		// start in desktop "double-click" visual mode
		err := setupDesktopMode()
		if err != nil {
			log.Fatalf("failed to start server: %q\n%s\n", err.Error(), err.Stack())
		}
		return
	}

	verbose = kingpin.Flag("v", "verbose logging").Bool()
	configPath = kingpin.Flag("config", "path to the config file. Defaults to config.toml in the data directory").String()

	kingpin.CommandLine.PreAction(func(ctx *kingpin.ParseContext) error {
		logLevel := logpkg.LogLevelInfo
		if *verbose {
			logLevel = logpkg.LogLevelDebug
		}
		logger = logpkg.NewLogger(os.Stderr, logLevel)
		return nil
	})

	setupServe()
	setupRender()
	setupExport()
	setupNetworks()

	kingpin.Parse()
}

// runAction adapts a command to kingpin, printing the stack trace of any error
func runAction(run func() errorsx.Error) kingpin.Action {
	return func(ctx *kingpin.ParseContext) error {
		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	}
}

// loadConfig reads the config file and fills in the data directory's sprite sheet and overrides file, if they exist
func loadConfig(fs gofs.Fs) (*shieldconfig.Config, *shieldconfig.PathsConfig, errorsx.Error) {
	pathsConfig, err := shieldconfig.DefaultPathsConfig()
	if err != nil {
		return nil, nil, errorsx.Wrap(err)
	}

	err = pathsConfig.EnsurePaths(fs)
	if err != nil {
		return nil, nil, errorsx.Wrap(err)
	}

	path := pathsConfig.ConfigFilePath()
	if configPath != nil && *configPath != "" {
		path = *configPath
	}

	config, err := shieldconfig.LoadConfig(fs, path)
	if err != nil {
		return nil, nil, errorsx.Wrap(err)
	}

	if verbose == nil || !*verbose {
		logLevel, err := shieldconfig.ParseLogLevel(config.LogLevel)
		if err != nil {
			return nil, nil, errorsx.Wrap(err)
		}
		logger = logpkg.NewLogger(os.Stderr, logLevel)
	}

	if config.OverridesFile == "" {
		_, statErr := fs.Stat(pathsConfig.OverridesFilePath())
		if statErr == nil {
			config.OverridesFile = pathsConfig.OverridesFilePath()
		}
	}

	if config.SpriteDir == "" && config.SpriteURL == "" && shieldconfig.HasSpriteSheet(fs, pathsConfig.SpritesDir) {
		config.SpriteDir = pathsConfig.SpritesDir
	}

	return config, pathsConfig, nil
}

func setupDesktopMode() errorsx.Error {
	fs := gofs.NewOsFs()

	config, pathsConfig, err := loadConfig(fs)
	if err != nil {
		return errorsx.Wrap(err)
	}

	renderer, err := shieldconfig.LoadRenderer(context.Background(), fs, logger, config)
	if err != nil {
		return errorsx.Wrap(err)
	}

	shouldProfile := false
	router, err := createServer(fs, config, pathsConfig, renderer, shouldProfile, true)
	if err != nil {
		return errorsx.Wrap(err)
	}

	server := httpextra.NewServerWithTimeouts()
	server.Addr = fmt.Sprintf("localhost:%d", shieldconfig.DefaultPort)
	server.Handler = router

	errChan := make(chan errorsx.Error, 2)

	go func() {
		err := server.ListenAndServe()
		if err != nil {
			errChan <- errorsx.Wrap(err)
			return
		}
	}()

	go func() {
		// test server is running
		for i := 0; i < MAX_SERVER_RUNNING_ATTEMPTS; i++ {
			r, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://%s/api/info", server.Addr), nil)
			if err != nil {
				errChan <- errorsx.Wrap(err)
				return
			}

			client := http.Client{
				Timeout: time.Second * 10,
			}
			resp, err := client.Do(r)
			if err != nil {
				// retry after wait
				time.Sleep(time.Millisecond * 500)
				continue
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errChan <- errorsx.Errorf("expected response code %d from /api/info call, but got %d", http.StatusOK, resp.StatusCode)
				return
			}

			errChan <- nil
			return
		}

		errChan <- errorsx.Errorf("server did not start after %d attempts", MAX_SERVER_RUNNING_ATTEMPTS)
	}()

	err = <-errChan
	if err != nil {
		return errorsx.Wrap(err)
	}

	openErr := open.OpenURL(fmt.Sprintf("http://%s/%s/", server.Addr, adminPath))
	if openErr != nil {
		return errorsx.Wrap(openErr)
	}

	// serve until the server fails
	return <-errChan
}

var addrHelp = fmt.Sprintf(
	`address to serve on. Ex: ':%d' listen on port %d to traffic from anywhere. 'localhost:%d' listen on port %d to traffic from localhost`,
	shieldconfig.DefaultPort, shieldconfig.DefaultPort, shieldconfig.DefaultPort, shieldconfig.DefaultPort,
)

func setupServe() {
	cmd := kingpin.Command("serve", "serve shield images, the style document and the shield test page")
	addr := cmd.Flag("addr", addrHelp).String()
	pixelRatio := cmd.Flag("pixel-ratio", "device pixel ratio to draw shields at").Float64()
	overridesFile := cmd.Flag("overrides", "TOML file of network definitions to add to or replace in the built-in table").String()
	spriteDir := cmd.Flag("sprite-dir", "directory holding a sprite sheet (sprite.json and sprite.png)").String()
	spriteURL := cmd.Flag("sprite-url", "base URL of a sprite sheet, without the .json/.png extension").String()
	maxConcurrentRenders := cmd.Flag("max-concurrent-renders", "maximum amount of shields drawn at the same time").Uint()
	noWatch := cmd.Flag("no-watch", "don't reload when the overrides file or sprite directory changes").Bool()
	shouldProfile := cmd.Flag("profile", "profile the drawing performance").Bool()
	cmd.Action(runAction(func() errorsx.Error {
		fs := gofs.NewOsFs()

		config, pathsConfig, err := loadConfig(fs)
		if err != nil {
			return errorsx.Wrap(err)
		}

		if *addr != "" {
			config.Addr = *addr
		}
		if *pixelRatio > 0 {
			config.PixelRatio = *pixelRatio
		}
		if *overridesFile != "" {
			config.OverridesFile = *overridesFile
		}
		if *spriteDir != "" {
			config.SpriteDir = *spriteDir
			config.SpriteURL = ""
		}
		if *spriteURL != "" {
			config.SpriteURL = *spriteURL
			config.SpriteDir = ""
		}
		if *maxConcurrentRenders > 0 {
			config.MaxConcurrentRenders = *maxConcurrentRenders
		}

		err = config.Validate()
		if err != nil {
			return errorsx.Wrap(err)
		}

		renderer, err := shieldconfig.LoadRenderer(context.Background(), fs, logger, config)
		if err != nil {
			return errorsx.Wrap(err)
		}

		router, err := createServer(fs, config, pathsConfig, renderer, *shouldProfile, !*noWatch)
		if err != nil {
			return errorsx.Wrap(err)
		}

		server := httpextra.NewServerWithTimeouts()
		server.Addr = config.Addr
		server.Handler = router

		logger.Info("about to start serving on %q", config.Addr)

		listenErr := server.ListenAndServe()
		if listenErr != nil {
			return errorsx.Wrap(listenErr)
		}
		return nil
	}))
}

// routeRefFromArgs reads either a whole image identifier, or a network and a ref
func routeRefFromArgs(networkOrID, ref, wayName string) (*shield.RouteRef, errorsx.Error) {
	if ref == "" && wayName == "" && strings.HasPrefix(networkOrID, shield.IdentifierPrefix) {
		return shield.ParseIdentifier(networkOrID)
	}

	return &shield.RouteRef{Network: networkOrID, Ref: ref, WayName: wayName}, nil
}

func setupRender() {
	cmd := kingpin.Command("render", "draw one shield to a PNG file")
	networkOrID := cmd.Arg("network", "route network (e.g. FSA:TM), or a whole image identifier").Required().String()
	ref := cmd.Arg("ref", "route ref").String()
	wayName := cmd.Flag("name", "name of the road, for networks that take their ref from it").String()
	outPath := cmd.Flag("out", "file to write").Default("shield.png").String()
	pixelRatio := cmd.Flag("pixel-ratio", "device pixel ratio to draw the shield at").Float64()
	cmd.Action(runAction(func() errorsx.Error {
		fs := gofs.NewOsFs()

		config, _, err := loadConfig(fs)
		if err != nil {
			return errorsx.Wrap(err)
		}

		if *pixelRatio > 0 {
			config.PixelRatio = *pixelRatio
		}

		renderer, err := shieldconfig.LoadRenderer(context.Background(), fs, logger, config)
		if err != nil {
			return errorsx.Wrap(err)
		}

		routeRef, err := routeRefFromArgs(*networkOrID, *ref, *wayName)
		if err != nil {
			return errorsx.Wrap(err)
		}

		if routeRef == nil {
			return errorsx.Errorf("the identifier does not describe a route")
		}

		raster, err := renderer.Render(routeRef)
		if err != nil {
			return errorsx.Wrap(err, "route", routeRef.String())
		}

		if raster == nil {
			return errorsx.Errorf("no shield is drawn for %s", routeRef.String())
		}

		file, createErr := fs.Create(*outPath)
		if createErr != nil {
			return errorsx.Wrap(createErr)
		}
		defer file.Close()

		err = shieldrenderer.WritePNG(file, raster)
		if err != nil {
			return errorsx.Wrap(err)
		}

		logger.Info("wrote %s (%dx%d) to %q", routeRef.String(), raster.Width(), raster.Height(), *outPath)
		return nil
	}))
}

// filterRouteRefs keeps the routes whose network matches one of the patterns
func filterRouteRefs(routeRefs []shield.RouteRef, patterns []string) ([]shield.RouteRef, errorsx.Error) {
	if len(patterns) == 0 {
		return routeRefs, nil
	}

	var networks []string
	seen := make(map[string]bool)
	for _, routeRef := range routeRefs {
		if !seen[routeRef.Network] {
			seen[routeRef.Network] = true
			networks = append(networks, routeRef.Network)
		}
	}

	matched, err := shielddef.MatchNetworks(networks, patterns)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	matchedSet := make(map[string]bool)
	for _, network := range matched {
		matchedSet[network] = true
	}

	var filtered []shield.RouteRef
	for _, routeRef := range routeRefs {
		if matchedSet[routeRef.Network] {
			filtered = append(filtered, routeRef)
		}
	}

	return filtered, nil
}

func setupExport() {
	cmd := kingpin.Command("export", "draw the shield of every route relation in an OSM file (.osm.pbf or .osm)")
	filePath := cmd.Arg("file", "OSM file to scan for route relations").Required().String()
	outDir := cmd.Flag("out-dir", "directory to write the images to. Defaults to the export directory in the data directory").String()
	networkPatterns := cmd.Flag("networks", `only export networks matching this glob pattern, e.g. "FSA:*". Can be given more than once`).Strings()
	concurrency := cmd.Flag("concurrency", "amount of shields to draw at the same time").Default(fmt.Sprintf("%d", runtime.NumCPU())).Int()
	shouldProfile := cmd.Flag("profile", "profile the export performance").Bool()
	cmd.Action(runAction(func() errorsx.Error {
		fs := gofs.NewOsFs()
		ctx := context.Background()

		config, pathsConfig, err := loadConfig(fs)
		if err != nil {
			return errorsx.Wrap(err)
		}

		if *outDir == "" {
			*outDir = filepath.Join(pathsConfig.ExportDir, time.Now().Format("2006-01-02__15_04_05"))
		}

		if *shouldProfile {
			defer profile.Start(profile.ProfilePath(*outDir), profile.CPUProfile).Stop()
		}

		renderer, err := shieldconfig.LoadRenderer(ctx, fs, logger, config)
		if err != nil {
			return errorsx.Wrap(err)
		}

		startTime := time.Now()

		scanner, err := routescan.OpenFile(ctx, fs, *filePath)
		if err != nil {
			return errorsx.Wrap(err)
		}
		defer scanner.Close()

		finishedChan := make(chan struct{})
		go routescan.LogProgress(logger, scanner, 5*time.Second, finishedChan)

		routeRefs, err := routescan.ScanRouteRefs(scanner)
		close(finishedChan)
		if err != nil {
			return errorsx.Wrap(err, "file", *filePath)
		}

		routeRefs, err = filterRouteRefs(routeRefs, *networkPatterns)
		if err != nil {
			return errorsx.Wrap(err)
		}

		logger.Info("found %d distinct routes in %s. Drawing them into %q", len(routeRefs), time.Since(startTime), *outDir)

		result, err := renderer.Export(ctx, fs, logger, routeRefs, *outDir, *concurrency)
		if err != nil {
			return errorsx.Wrap(err)
		}

		logger.Info("export finished in %s: %s", time.Since(startTime), result)
		return nil
	}))
}

func setupNetworks() {
	cmd := kingpin.Command("networks", "list the networks shields are defined for")
	networkPatterns := cmd.Flag("networks", `only list networks matching this glob pattern, e.g. "FSA:*"`).Strings()
	cmd.Action(runAction(func() errorsx.Error {
		fs := gofs.NewOsFs()

		config, _, err := loadConfig(fs)
		if err != nil {
			return errorsx.Wrap(err)
		}

		renderer, err := shieldconfig.LoadRenderer(context.Background(), fs, logger, config)
		if err != nil {
			return errorsx.Wrap(err)
		}

		networks, err := shielddef.MatchNetworks(renderer.ShieldSet().Networks(), *networkPatterns)
		if err != nil {
			return errorsx.Wrap(err)
		}

		for _, network := range networks {
			fmt.Println(network)
		}
		return nil
	}))
}

func isLocalhost(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	return host == "::1" || host == "127.0.0.1"
}

func createLocalhostMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if !isLocalhost(r.RemoteAddr) {
				http.Error(w, "connections only allowed from the same computer the server is running on", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func createServer(fs gofs.Fs, config *shieldconfig.Config, pathsConfig *shieldconfig.PathsConfig, renderer *shieldrenderer.ShieldRenderer, shouldProfile, watch bool) (chi.Router, errorsx.Error) {
	if shouldProfile {
		logger.Info("profiling is on; drawing one shield at a time")
	}

	shieldService := webservices.NewShieldService(logger, renderer, config.MaxConcurrentRenders, config.ImageCacheSize, shouldProfile)

	reload := func() errorsx.Error {
		newRenderer, err := shieldconfig.LoadRenderer(context.Background(), fs, logger, config)
		if err != nil {
			return errorsx.Wrap(err)
		}

		shieldService.SetRenderer(newRenderer)
		return nil
	}

	if watch {
		err := watchForChanges(fs, config, reload)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
	}

	styleOptions := styling.DefaultStyleOptions()
	if config.TilesURL != "" {
		styleOptions.TilesURL = config.TilesURL
	}
	if config.SpriteURL != "" {
		styleOptions.SpriteURL = config.SpriteURL
	}

	styleService, err := webservices.NewStyleService(logger, styleOptions)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	adminService := webservices.NewAdminService(logger, shieldService, reload, shieldsBasePath)

	traceFilePath := filepath.Join(pathsConfig.TraceDir, fmt.Sprintf("trace_%s.pbf", time.Now().Format("2006-01-02__15_04_05")))
	logger.Info("tracing at %q", traceFilePath)

	traceFile, createErr := fs.Create(traceFilePath)
	if createErr != nil {
		return nil, errorsx.Wrap(createErr)
	}

	tracer := tracing.NewTracer(traceFile)

	router := chi.NewRouter()
	router.Use(middleware.DefaultLogger)
	router.Use(tracing.Middleware(tracer))
	router.Route("/api/", func(r chi.Router) {
		r.Mount("/info", webservices.NewInfoService(logger, shieldService))
		r.Mount("/shields", shieldService)
		r.Mount("/style", styleService)
	})
	router.Route(fmt.Sprintf("/%s/", adminPath), func(r chi.Router) {
		r.Use(createLocalhostMiddleware())
		r.Mount("/", adminService)
	})
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, fmt.Sprintf("/%s/", adminPath), http.StatusFound)
	})

	return router, nil
}

// watchForChanges reloads the renderer whenever the overrides file or the sprite directory changes
func watchForChanges(fs gofs.Fs, config *shieldconfig.Config, reload webservices.ReloadFunc) errorsx.Error {
	var paths []string
	if config.OverridesFile != "" {
		paths = append(paths, config.OverridesFile)
	}
	if config.SpriteDir != "" {
		paths = append(paths, config.SpriteDir)
	}

	if len(paths) == 0 {
		return nil
	}

	watcher, err := shieldconfig.NewWatcher(fs, logger, paths...)
	if err != nil {
		return errorsx.Wrap(err)
	}

	logger.Info("watching %q for changes", paths)

	go func() {
		for range watcher.Events() {
			time.Sleep(reloadDelay)
			// drop the signal for any writes made while waiting
			select {
			case <-watcher.Events():
			default:
			}

			err := reload()
			if err != nil {
				logger.Error("could not reload shield definitions, keeping the current ones. Error: %s\nStack:\n%s", err, err.Stack())
				continue
			}
			logger.Info("reloaded shield definitions")
		}
	}()

	return nil
}
