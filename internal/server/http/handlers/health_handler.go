package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberscripts/storefront/internal/server/http/dto"
)

// HealthChecker reports storage connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates HealthHandler instance.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.checker.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.Error("storage unreachable"))
		return
	}
	respondOK(c, "ok", nil)
}
