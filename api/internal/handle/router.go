package handle

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"screen-solve/api/internal/solve"
)

const requestIDHeader = "X-Request-Id"

// NewRouter builds the gin engine: request ids, access log, recovery, CORS and routes.
func NewRouter(h *Handle, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(requestID(), accessLog(h.log), gin.CustomRecovery(func(c *gin.Context, rec any) {
		h.log.ErrorContext(c.Request.Context(), "panic recovered", "request_id", solve.RequestIDFrom(c.Request.Context()), "panic", rec)
		writeDetail(c, http.StatusInternalServerError, "Internal Server Error")
	}))
	r.Use(cors.New(corsConfig(allowOrigins)))

	r.NoRoute(func(c *gin.Context) { writeDetail(c, http.StatusNotFound, "Not Found") })
	r.NoMethod(func(c *gin.Context) { writeDetail(c, http.StatusMethodNotAllowed, "Method Not Allowed") })

	r.GET("/health", h.Health)
	r.POST("/screen-solve", h.ScreenSolve)
	return r
}

func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:           []string{http.MethodGet, http.MethodPost},
		AllowHeaders:           []string{"*"},
		ExposeHeaders:          []string{requestIDHeader},
		AllowBrowserExtensions: true,
		MaxAge:                 12 * time.Hour,
	}
	for _, o := range allowOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = allowOrigins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(solve.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func accessLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		fields := []any{
			"request_id", solve.RequestIDFrom(c.Request.Context()),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case status >= 500:
			log.ErrorContext(c.Request.Context(), "http request", fields...)
		case status >= 400:
			log.WarnContext(c.Request.Context(), "http request", fields...)
		default:
			log.InfoContext(c.Request.Context(), "http request", fields...)
		}
	}
}
