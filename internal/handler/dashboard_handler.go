package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/urbanmove/service-mobility/internal/application"
	"github.com/urbanmove/service-mobility/internal/platform/response"
)

// DashboardHandler serves the public city-wide dashboard.
type DashboardHandler struct {
	service *application.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes registers the dashboard route.
func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/dashboard", h.Summary)
}

// Summary handles GET /api/v1/dashboard.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, summary)
}
