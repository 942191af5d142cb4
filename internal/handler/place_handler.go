package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/urbanmove/service-mobility/internal/application"
	"github.com/urbanmove/service-mobility/internal/platform/response"
)

// PlaceHandler handles address completion requests.
type PlaceHandler struct {
	service *application.PlaceService
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(service *application.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// RegisterRoutes registers place routes. They are public.
func (h *PlaceHandler) RegisterRoutes(r *gin.RouterGroup) {
	places := r.Group("/api/v1/places")
	{
		places.GET("/autocomplete", h.Autocomplete)
		places.GET("/:placeId", h.Details)
	}
}

// Autocomplete handles GET /api/v1/places/autocomplete?input=.
func (h *PlaceHandler) Autocomplete(c *gin.Context) {
	response.Success(c, h.service.Predict(c.Request.Context(), c.Query("input")))
}

// Details handles GET /api/v1/places/:placeId.
func (h *PlaceHandler) Details(c *gin.Context) {
	details, err := h.service.Details(c.Request.Context(), c.Param("placeId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, details)
}
