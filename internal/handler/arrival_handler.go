package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/urbanmove/service-mobility/internal/application"
	"github.com/urbanmove/service-mobility/internal/platform/auth"
	"github.com/urbanmove/service-mobility/internal/platform/middleware"
	"github.com/urbanmove/service-mobility/internal/platform/response"
)

// ArrivalHandler serves the arrivals board.
type ArrivalHandler struct {
	service *application.ArrivalService
}

// NewArrivalHandler creates a new ArrivalHandler.
func NewArrivalHandler(service *application.ArrivalService) *ArrivalHandler {
	return &ArrivalHandler{service: service}
}

// RegisterRoutes registers the arrivals route.
func (h *ArrivalHandler) RegisterRoutes(r *gin.RouterGroup, sessions *auth.SessionManager) {
	r.GET("/api/v1/arrivals", middleware.AuthMiddleware(sessions), h.Board)
}

// Board handles GET /api/v1/arrivals.
func (h *ArrivalHandler) Board(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	board, err := h.service.Board(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, board)
}
