package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
	"github.com/cyberscripts/storefront/internal/server/http/dto"
)

// AdminHandler covers back-office user management and direct product grants.
type AdminHandler struct {
	users        AdminFacade
	entitlements EntitlementFacade
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(users AdminFacade, entitlements EntitlementFacade) *AdminHandler {
	return &AdminHandler{users: users, entitlements: entitlements}
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	users, err := h.users.Users(c.Request.Context(), identity.UserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "", dto.UsersFromModel(users))
}

// GetUser handles GET /api/v1/admin/users/:id.
func (h *AdminHandler) GetUser(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.User(c.Request.Context(), identity.UserID, id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "", dto.UserFromModel(user))
}

// UpdateUser handles PATCH /api/v1/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "malformed request body")
		return
	}

	update := repository.UserUpdate{Name: req.Name, IsActive: req.IsActive}
	if req.Role != nil {
		role := model.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.users.UpdateUser(c.Request.Context(), identity.UserID, id, update)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "user updated", dto.UserFromModel(user))
}

// DeleteUser handles DELETE /api/v1/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), identity.UserID, id); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "user deleted", nil)
}

// AssignProduct handles POST /api/v1/admin/users/:id/products.
func (h *AdminHandler) AssignProduct(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AssignProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID <= 0 {
		respondFail(c, http.StatusBadRequest, "malformed request body")
		return
	}

	err := h.entitlements.AssignProduct(c.Request.Context(), identity.UserID, id, req.ProductID, model.ProductCategory(req.ProductType))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "product assigned", nil)
}

// RemoveProduct handles DELETE /api/v1/admin/users/:id/products/:productId.
func (h *AdminHandler) RemoveProduct(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	if err := h.entitlements.RemoveProduct(c.Request.Context(), identity.UserID, id, productID); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "product removed", nil)
}
