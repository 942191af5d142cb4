package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/urbanmove/service-mobility/internal/application"
	"github.com/urbanmove/service-mobility/internal/platform/auth"
	"github.com/urbanmove/service-mobility/internal/platform/middleware"
	"github.com/urbanmove/service-mobility/internal/platform/response"
)

// FavoriteHandler handles HTTP requests for favorite transit lines.
type FavoriteHandler struct {
	service *application.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *application.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// RegisterRoutes registers favorite routes. Every route requires a session.
func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup, sessions *auth.SessionManager) {
	favorites := r.Group("/api/v1/favorites")
	favorites.Use(middleware.AuthMiddleware(sessions))
	{
		favorites.GET("", h.List)
		favorites.POST("/:line/toggle", h.Toggle)
		favorites.PUT("/:line", h.Set)
	}
}

// List handles GET /api/v1/favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	lines, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, lines)
}

// Toggle handles POST /api/v1/favorites/:line/toggle.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), userID, c.Param("line"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Set handles PUT /api/v1/favorites/:line.
func (h *FavoriteHandler) Set(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.SetFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Set(c.Request.Context(), userID, c.Param("line"), *req.Favorite)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
