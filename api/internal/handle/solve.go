package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"screen-solve/api/internal/solve"
	"screen-solve/api/internal/solve/types"
)

// ScreenSolve handles POST /screen-solve.
func (h *Handle) ScreenSolve(c *gin.Context) {
	var req types.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeJSON(c, http.StatusUnprocessableEntity, validationDetail(err, req))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	out, err := h.solver.Solve(ctx, *req.ImageDataURL)
	if err != nil {
		code := statusFor(solve.KindOf(err))
		writeDetail(c, code, err.Error())
		return
	}

	writeJSON(c, http.StatusOK, out)
}
