package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ancientlore/cachefs"
	"github.com/ancientlore/folio/content"
	"github.com/ancientlore/folio/store"
	"github.com/ancientlore/folio/web"
	"github.com/facebookgo/flagenv"
	"github.com/golang/groupcache"
)

// main is where it all begins. 😀
func main() {
	// Setup flags
	var (
		fPort              = flag.Int("port", 8080, "Port to listen on.")
		fReadTimeout       = flag.Duration("readtimeout", 10*time.Second, "HTTP server read timeout.")
		fReadHeaderTimeout = flag.Duration("readheadertimeout", 5*time.Second, "HTTP server read header timeout.")
		fWriteTimeout      = flag.Duration("writetimeout", 30*time.Second, "HTTP server write timeout.")
		fRoot              = flag.String("root", ".", "Root of web site.")
		fCacheSize         = flag.Int64("cachesize", 10*1024*1024, "Size of the file cache in bytes, 0 to disable.")
		fCacheDuration     = flag.Duration("cacheduration", 10*time.Second, "Approximate lifetime of cached files.")
		fAccessLog         = flag.Bool("accesslog", false, "Log every request.")
	)
	flag.Parse()
	flagenv.Parse()

	// Create HTTP server
	var srv = http.Server{
		Addr:              fmt.Sprintf(":%d", *fPort),
		ReadTimeout:       *fReadTimeout,
		WriteTimeout:      *fWriteTimeout,
		ReadHeaderTimeout: *fReadHeaderTimeout,
	}

	// Open site folder, cached when requested
	fi, err := os.Stat(*fRoot)
	if err != nil || !fi.IsDir() {
		log.Printf("Cannot use root %q: %v", *fRoot, err)
		os.Exit(1)
	}
	var fsys fs.FS = os.DirFS(*fRoot)
	if *fCacheSize > 0 {
		groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })
		fsys = cachefs.New(fsys, &cachefs.Config{GroupName: "folio", SizeInBytes: *fCacheSize, Duration: *fCacheDuration})
		log.Printf("Caching %q with %d bytes", *fRoot, *fCacheSize)
	} else {
		log.Printf("Serving %q", *fRoot)
	}

	// Create content catalog
	catalog, err := store.New(fsys)
	if err != nil {
		log.Printf("Cannot open site: %s", err)
		os.Exit(2)
	}
	cfg := catalog.Config()
	lib := content.New(catalog, &content.Options{Concurrency: cfg.Concurrency})

	// Parse templates
	site, err := web.New(lib, fsys, web.Options{
		Title:      cfg.Title,
		Drafts:     cfg.Drafts,
		AccessLog:  *fAccessLog,
		APIOrigins: cfg.APIOrigins,
	})
	if err != nil {
		log.Printf("Cannot parse templates: %s", err)
		os.Exit(3)
	}
	log.Print("Loaded templates")

	// Setup handlers
	srv.Handler = web.HeaderHandler(
		web.ExpiresHandler(
			gziphandler.GzipHandler(
				web.ErrorHandler(site.Handler(), fsys),
			),
			time.Duration(cfg.Expires),
			time.Duration(cfg.StaticExpires),
		),
		cfg.Headers)
	log.Print("Created handlers")

	// Create signal handler for graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)

		// interrupt signal sent from terminal
		signal.Notify(sigint, os.Interrupt)
		// sigterm signal sent from kubernetes
		signal.Notify(sigint, syscall.SIGTERM)

		<-sigint

		// We received an interrupt signal, shut down.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			// Error from closing listeners, or context timeout:
			log.Printf("HTTP server Shutdown: %v", err)
		}
	}()

	// Listen for requests
	log.Print("Listening for requests")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Printf("HTTP server: %v", err)
	} else {
		log.Print("Goodbye.")
	}
}
