package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberscripts/storefront/internal/server/http/dto"
)

// AuthHandler processes registration, login and profile reads.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "malformed request body")
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondCreated(c, "registration successful", dto.AuthData{Token: token, User: dto.UserFromModel(user)})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "malformed request body")
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, "login successful", dto.AuthData{Token: token, User: dto.UserFromModel(user)})
}

// Profile handles GET /api/v1/auth/me.
func (h *AuthHandler) Profile(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.facade.Profile(c.Request.Context(), identity.UserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, "", dto.UserFromModel(user))
}
