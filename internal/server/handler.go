package server

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"github.com/muurk/zy/internal/config"
	"github.com/muurk/zy/internal/resolve"
)

// NewHandler builds the HTTP handler: a gin engine with one GET/HEAD
// catch-all route, wrapped in gzip compression. Other methods get gin's
// 404.
func NewHandler(cfg *config.Config, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	httpLog := log.Named("http")
	serveLog := log.Named("serve")

	engine := gin.New()
	engine.Use(ginzap.RecoveryWithZap(httpLog, true))
	if cfg.Verbose {
		engine.Use(RequestID(), AccessLog(serveLog.Named("request")))
	}
	engine.Use(Headers(cfg))

	d := NewDispatcher(cfg, resolve.NewResolver(cfg, serveLog), serveLog)
	engine.GET("/*path", Ping(), d.Handle)
	engine.HEAD("/*path", Ping(), d.Handle)

	return gzhttp.GzipHandler(engine)
}
