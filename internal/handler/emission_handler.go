package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/urbanmove/service-mobility/internal/application"
	"github.com/urbanmove/service-mobility/internal/platform/auth"
	"github.com/urbanmove/service-mobility/internal/platform/middleware"
	"github.com/urbanmove/service-mobility/internal/platform/response"
)

// EmissionHandler handles HTTP requests for CO2 emission estimates.
type EmissionHandler struct {
	service *application.EmissionService
}

// NewEmissionHandler creates a new EmissionHandler.
func NewEmissionHandler(service *application.EmissionService) *EmissionHandler {
	return &EmissionHandler{service: service}
}

// RegisterRoutes registers emission routes.
func (h *EmissionHandler) RegisterRoutes(r *gin.RouterGroup, sessions *auth.SessionManager) {
	emissions := r.Group("/api/v1/emissions")
	{
		emissions.POST("/estimate", middleware.OptionalAuthMiddleware(sessions), h.Calculate)
		emissions.GET("/compare", h.Compare)
		emissions.GET("", middleware.AuthMiddleware(sessions), h.History)
	}
}

// Calculate handles POST /api/v1/emissions/estimate.
func (h *EmissionHandler) Calculate(c *gin.Context) {
	var req application.CalculateEmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Calculate(c.Request.Context(), middleware.OptionalUserID(c), req)
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

// Compare handles GET /api/v1/emissions/compare?distance_km=.
func (h *EmissionHandler) Compare(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Query("distance_km"), 64)
	if err != nil {
		response.BadRequest(c, "distance_km must be a number")
		return
	}

	result, err := h.service.Compare(distance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// History handles GET /api/v1/emissions.
func (h *EmissionHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.History(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}
