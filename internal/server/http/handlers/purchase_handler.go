package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberscripts/storefront/internal/server/http/dto"
)

// PurchaseHandler serves the caller's entitlements.
type PurchaseHandler struct {
	facade EntitlementFacade
}

// NewPurchaseHandler creates PurchaseHandler instance.
func NewPurchaseHandler(facade EntitlementFacade) *PurchaseHandler {
	return &PurchaseHandler{facade: facade}
}

// List handles GET /api/v1/purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	purchases, err := h.facade.Purchases(c.Request.Context(), identity.UserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "", dto.PurchasesFromModel(purchases))
}
