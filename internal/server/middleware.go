package server

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/muurk/zy/internal/config"
	"github.com/muurk/zy/internal/version"
)

// PingPath answers liveness probes ahead of the file lookup.
const PingPath = "/ping"

// RequestIDKey is the gin context key holding the per-request id.
const RequestIDKey = "request_id"

// Headers sets the response headers every reply carries, error and
// not-found responses included.
func Headers(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		if !cfg.Anonymize {
			h.Set("Server", version.Product)
		}
		if !cfg.NoCORS {
			h.Set("Access-Control-Allow-Origin", "*")
		}
		c.Next()
	}
}

// Ping replies "pong" to PingPath and stops the chain. A file named "ping"
// in the root is shadowed.
func Ping() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path != PingPath {
			c.Next()
			return
		}
		c.String(http.StatusOK, "pong")
		c.Abort()
	}
}

// RequestID tags the request with a fresh uuid under RequestIDKey.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RequestIDKey, uuid.NewString())
		c.Next()
	}
}

// AccessLog logs one debug line per request, carrying the protocol
// version and the id set by RequestID.
func AccessLog(log *zap.Logger) gin.HandlerFunc {
	return ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat:   time.RFC3339,
		UTC:          true,
		DefaultLevel: zapcore.DebugLevel,
		Context:      func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{
				zap.String("version", c.Request.Proto),
				zap.String("uri", c.Request.RequestURI),
				zap.String(RequestIDKey, c.GetString(RequestIDKey)),
			}
		},
	})
}
