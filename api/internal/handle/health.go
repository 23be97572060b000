package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"screen-solve/api/internal/solve/types"
)

func (h *Handle) Health(c *gin.Context) {
	configured := false
	if h.keyConfigured != nil {
		configured = h.keyConfigured()
	}
	writeJSON(c, http.StatusOK, types.HealthResponse{
		Status:              "ok",
		OpenAIKeyConfigured: configured,
	})
}
