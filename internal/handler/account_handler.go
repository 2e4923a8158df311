package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/petit-bistro/service-reservation/internal/application"
	"github.com/petit-bistro/service-reservation/internal/middleware"
	"github.com/petit-bistro/service-reservation/internal/response"
)

// AccountHandler handles HTTP requests for client accounts.
type AccountHandler struct {
	service *application.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *application.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRoutes registers account routes on the given router group. Only
// logout requires an authenticated caller.
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	accounts := r.Group("/api/v1/auth")
	{
		accounts.POST("/signup", h.Signup)
		accounts.POST("/login", h.Login)
		accounts.POST("/logout", authMW, h.Logout)
	}
}

// Signup handles POST /api/v1/auth/signup.
func (h *AccountHandler) Signup(c *gin.Context) {
	var req application.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, token)
}

// Login handles POST /api/v1/auth/login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, token)
}

// Logout handles POST /api/v1/auth/logout.
func (h *AccountHandler) Logout(c *gin.Context) {
	identity, ok := middleware.GetClient(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.service.Logout(c.Request.Context(), identity.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "logout was successful"})
}
