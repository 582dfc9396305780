package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberscripts/storefront/internal/server/http/dto"
	"github.com/cyberscripts/storefront/internal/usecase"
)

// signatureHeader carries the gateway's webhook HMAC.
const signatureHeader = "X-Gateway-Signature"

// PaymentHandler drives the automated gateway flow.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler creates PaymentHandler instance.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// CreateIntent handles POST /api/v1/payments/intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "malformed request body")
		return
	}

	items := make([]usecase.CheckoutItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = usecase.CheckoutItem{ProductID: it.ProductID, Name: it.Name, Price: it.Price, Quantity: it.Quantity}
	}

	order, intent, err := h.facade.CreatePaymentIntent(c.Request.Context(), identity.UserID, usecase.CheckoutInput{
		Items:         items,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondCreated(c, "payment intent created", dto.IntentData{
		OrderID:      order.ID,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	})
}

// Confirm handles POST /api/v1/payments/confirm.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		respondFail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IntentID == "" {
		respondFail(c, http.StatusBadRequest, "malformed request body")
		return
	}

	order, err := h.facade.ConfirmPayment(c.Request.Context(), identity.UserID, req.IntentID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "payment confirmed", dto.OrderFromModel(order))
}

// Webhook handles POST /api/v1/payments/webhook. The raw body is read before
// decoding so the signature covers exactly what the provider sent.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondFail(c, http.StatusBadRequest, "unreadable body")
		return
	}

	if !h.facade.VerifyWebhookSignature(body, c.GetHeader(signatureHeader)) {
		respondFail(c, http.StatusUnauthorized, "invalid signature")
		return
	}

	var event usecase.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		respondFail(c, http.StatusBadRequest, "malformed event")
		return
	}

	if err := h.facade.HandlePaymentWebhook(c.Request.Context(), event); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "event accepted", nil)
}
