package handle

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"screen-solve/api/internal/solve"
	"screen-solve/api/internal/solve/types"
)

type Handle struct {
	solver        *solve.Solver
	timeout       time.Duration
	keyConfigured func() bool
	log           *slog.Logger
}

// New wires the HTTP handlers. keyConfigured is consulted on every /health call.
func New(solver *solve.Solver, timeout time.Duration, keyConfigured func() bool) *Handle {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Handle{
		solver:        solver,
		timeout:       timeout,
		keyConfigured: keyConfigured,
		log:           slog.Default().With("module", "http"),
	}
}

func writeJSON(c *gin.Context, code int, v any) {
	c.JSON(code, v)
}

func writeDetail(c *gin.Context, code int, detail string) {
	writeJSON(c, code, types.ErrorResponse{Detail: detail})
}

// statusFor maps a solve outcome kind to its HTTP status.
func statusFor(kind solve.Kind) int {
	switch kind {
	case solve.KindOK:
		return http.StatusOK
	case solve.KindInvalidInput:
		return http.StatusBadRequest
	case solve.KindMalformedOutput:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// requestContext bounds the solve by X-Request-Timeout / timeoutSec (seconds)
// or the configured default.
func (h *Handle) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	deadline := h.timeout
	if ts := c.GetHeader("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	} else if ts := c.Query("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	}
	return context.WithTimeout(c.Request.Context(), deadline)
}
