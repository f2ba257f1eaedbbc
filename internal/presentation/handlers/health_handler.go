package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the fixed liveness body
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// healthy never depends on the GitHub credential or upstream reachability
var healthy = HealthResponse{
	Status:  "healthy",
	Message: "GitViz backend is running",
}

// HealthHandler answers the liveness probe on the root path
type HealthHandler struct {
	body HealthResponse
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{body: healthy}
}

// Health handles GET /
// @Summary Liveness check
// @Description Fixed body, no GitHub call
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router / [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.body)
}
