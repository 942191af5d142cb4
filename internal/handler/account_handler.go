package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/urbanmove/service-mobility/internal/application"
	"github.com/urbanmove/service-mobility/internal/platform/auth"
	"github.com/urbanmove/service-mobility/internal/platform/middleware"
	"github.com/urbanmove/service-mobility/internal/platform/response"
)

// AccountHandler handles sign-up, sessions and the profile.
type AccountHandler struct {
	service *application.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *application.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRoutes registers account routes.
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup, sessions *auth.SessionManager) {
	authMW := middleware.AuthMiddleware(sessions)

	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/signup", h.SignUp)
		authGroup.POST("/signin", h.SignIn)
		authGroup.POST("/signout", authMW, h.SignOut)
	}

	me := r.Group("/api/v1/me")
	me.Use(authMW)
	{
		me.GET("", h.Profile)
		me.PUT("/address", h.UpdateAddress)
	}
}

// SignUp handles POST /api/v1/auth/signup.
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req application.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, session)
}

// SignIn handles POST /api/v1/auth/signin.
func (h *AccountHandler) SignIn(c *gin.Context) {
	var req application.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, session)
}

// SignOut handles POST /api/v1/auth/signout.
func (h *AccountHandler) SignOut(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.service.SignOut(c.Request.Context(), session); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Profile handles GET /api/v1/me.
func (h *AccountHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	overview, err := h.service.Overview(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, overview)
}

// UpdateAddress handles PUT /api/v1/me/address.
func (h *AccountHandler) UpdateAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.service.UpdateAddress(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}
