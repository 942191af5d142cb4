package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/urbanmove/service-mobility/internal/application"
	"github.com/urbanmove/service-mobility/internal/platform/auth"
	"github.com/urbanmove/service-mobility/internal/platform/middleware"
	"github.com/urbanmove/service-mobility/internal/platform/response"
)

// RouteHandler handles HTTP requests for route estimation.
type RouteHandler struct {
	service *application.RouteService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service *application.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes registers all route estimation routes on the given router group.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup, sessions *auth.SessionManager) {
	routes := r.Group("/api/v1/routes")
	{
		routes.POST("/estimate", middleware.OptionalAuthMiddleware(sessions), h.EstimateRoute)
		routes.GET("", middleware.AuthMiddleware(sessions), h.ListRoutes)
	}
}

// EstimateRoute handles POST /api/v1/routes/estimate. Signed-in users get the
// estimate saved to their history.
func (h *RouteHandler) EstimateRoute(c *gin.Context) {
	var req application.EstimateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.EstimateRoute(c.Request.Context(), middleware.OptionalUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Saved {
		response.Created(c, result)
		return
	}
	response.Success(c, result)
}

// ListRoutes handles GET /api/v1/routes.
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.ListRoutes(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
