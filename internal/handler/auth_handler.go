package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/service"
	"github.com/Alkan41/yakit-takip-api/pkg/response"
)

// AuthHandler serves admin authentication.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Admin credentials"
// @Success 200 {object} response.Envelope{data=models.LoginResponse}
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindingError(err))
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}
