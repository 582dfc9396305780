package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/server/http/dto"
	"github.com/cyberscripts/storefront/internal/usecase"
)

// OrderHandler processes checkout and the admin verification flow.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler creates OrderHandler instance.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

func checkoutInput(req dto.CreateOrderRequest) usecase.CheckoutInput {
	items := make([]usecase.CheckoutItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = usecase.CheckoutItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}
	return usecase.CheckoutInput{
		Items:             items,
		PaymentMethod:     req.PaymentMethod,
		TransactionID:     req.UpiTransactionID,
		PaymentScreenshot: req.PaymentScreenshot,
		CustomerPhone:     req.CustomerPhone,
	}
}

// Create handles POST /api/v1/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "malformed request body")
		return
	}

	order, err := h.facade.Checkout(c.Request.Context(), identity.UserID, checkoutInput(req))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondCreated(c, "order placed, awaiting verification", dto.OrderFromModel(order))
}

// List handles GET /api/v1/orders.
func (h *OrderHandler) List(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), identity.UserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "", dto.OrdersFromModel(orders))
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id, identity.UserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "", dto.OrderFromModel(order))
}

// ListAll handles GET /api/v1/admin/orders.
func (h *OrderHandler) ListAll(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	status := model.OrderStatus(c.Query("status"))
	orders, err := h.facade.AllOrders(c.Request.Context(), identity.UserID, status)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "", dto.OrdersFromModel(orders))
}

// Verify handles PATCH /api/v1/admin/orders/:id/verify.
func (h *OrderHandler) Verify(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.VerifyOrder(c.Request.Context(), id, identity.UserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "order verified", dto.OrderFromModel(order))
}

// Reject handles PATCH /api/v1/admin/orders/:id/reject.
func (h *OrderHandler) Reject(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RejectOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, "malformed request body")
			return
		}
	}

	order, err := h.facade.RejectOrder(c.Request.Context(), id, identity.UserID, req.Reason)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "order rejected", dto.OrderFromModel(order))
}
