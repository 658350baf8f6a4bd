package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/muurk/zy/internal/cachepolicy"
	"github.com/muurk/zy/internal/config"
	"github.com/muurk/zy/internal/resolve"
)

// attempt is one step of the fallback chain. It reports whether it wrote
// the response.
type attempt func(c *gin.Context, p string) bool

// Dispatcher answers GET and HEAD requests from the served root.
//
// Fallback chain, first success wins:
//  1. the requested file
//  2. the index file, when SPA mode is on and the client accepts HTML
//  3. the not-found file, with status 404
//  4. an empty 404
//
// Resolution and I/O failures only move to the next step; the dispatcher
// never produces a 5xx.
type Dispatcher struct {
	cfg      *config.Config
	resolver *resolve.Resolver
	log      *zap.Logger
	chain    []attempt
}

// NewDispatcher creates a dispatcher serving cfg.Root through resolver.
func NewDispatcher(cfg *config.Config, resolver *resolve.Resolver, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		cfg:      cfg,
		resolver: resolver,
		log:      log,
	}
	d.chain = []attempt{
		d.serveRequested,
		d.serveSPA,
		d.serveNotFoundPage,
		d.serveEmptyNotFound,
	}
	return d
}

// Handle is the gin handler for the catch-all route.
func (d *Dispatcher) Handle(c *gin.Context) {
	p := c.Param("path")
	for _, try := range d.chain {
		if try(c, p) {
			return
		}
	}
}

func (d *Dispatcher) serveRequested(c *gin.Context, p string) bool {
	asset, err := d.resolver.Resolve(p, resolve.Client)
	if err != nil {
		if d.cfg.Verbose {
			d.log.Debug("Resolution failed", zap.String("path", p), zap.Error(err))
		}
		return false
	}
	return d.serve(c, asset, 0)
}

func (d *Dispatcher) serveSPA(c *gin.Context, _ string) bool {
	if !d.cfg.SPA || !acceptsHTML(c.GetHeader("Accept")) {
		return false
	}
	if d.cfg.Verbose {
		d.log.Info(fmt.Sprintf("SPA routing to %s", d.cfg.Index))
	}
	asset, err := d.resolver.Resolve(d.cfg.Index, resolve.Server)
	if err != nil {
		return false
	}
	return d.serve(c, asset, 0)
}

func (d *Dispatcher) serveNotFoundPage(c *gin.Context, _ string) bool {
	if d.cfg.Verbose {
		d.log.Info(fmt.Sprintf("not found, serving %s", d.cfg.NotFound))
	}
	asset, err := d.resolver.Resolve(d.cfg.NotFound, resolve.Server)
	if err != nil {
		return false
	}
	return d.serve(c, asset, http.StatusNotFound)
}

func (d *Dispatcher) serveEmptyNotFound(c *gin.Context, _ string) bool {
	if d.cfg.Verbose {
		d.log.Info(fmt.Sprintf("%s not found, omitting response body", d.cfg.NotFound))
	}
	c.AbortWithStatus(http.StatusNotFound)
	return true
}

// serve writes asset. A zero status lets http.ServeContent pick it
// (200, 206, 304, 412 ...); any other status is forced and conditional
// headers are ignored. It returns false if the file can no longer be
// opened.
func (d *Dispatcher) serve(c *gin.Context, asset *resolve.Asset, status int) bool {
	f, err := os.Open(asset.Path)
	if err != nil {
		d.log.Debug("Open failed", zap.String("path", asset.Rel), zap.Error(err))
		return false
	}
	defer f.Close()

	policy := cachepolicy.Classify(asset.MIME, asset.Ext)
	w := &cacheWriter{
		ResponseWriter: c.Writer,
		cacheControl:   policy.Header(d.cfg.Cache),
	}

	h := w.Header()
	h.Set("Content-Type", asset.ContentType)

	if status == 0 {
		h.Set("ETag", etag(asset.Info))
		http.ServeContent(w, c.Request, asset.Info.Name(), asset.Info.ModTime(), f)
		return true
	}

	// Cache headers follow the file's own 200, not the forced status.
	if w.cacheControl != "" {
		h.Set("Cache-Control", w.cacheControl)
	}
	h.Set("Content-Length", strconv.FormatInt(asset.Info.Size(), 10))
	h.Set("Last-Modified", asset.Info.ModTime().UTC().Format(http.TimeFormat))
	c.Status(status)
	c.Writer.WriteHeaderNow()

	if c.Request.Method != http.MethodHead {
		if _, err := io.Copy(c.Writer, f); err != nil {
			d.log.Debug("Write failed", zap.String("path", asset.Rel), zap.Error(err))
		}
	}
	return true
}

// cacheWriter adds Cache-Control when the status is 200 or 206.
type cacheWriter struct {
	http.ResponseWriter
	cacheControl string
}

func (w *cacheWriter) WriteHeader(code int) {
	if w.cacheControl != "" && (code == http.StatusOK || code == http.StatusPartialContent) {
		w.Header().Set("Cache-Control", w.cacheControl)
	}
	w.ResponseWriter.WriteHeader(code)
}

// etag derives a strong validator from modification time and size.
func etag(info os.FileInfo) string {
	return fmt.Sprintf(`"%x-%x"`, info.ModTime().UnixNano(), info.Size())
}

// acceptsHTML reports whether an Accept header lists text/html.
func acceptsHTML(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, _ := strings.Cut(part, ";")
		if strings.EqualFold(strings.TrimSpace(mediaType), "text/html") {
			return true
		}
	}
	return false
}
