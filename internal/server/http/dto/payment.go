package dto

// CreateIntentRequest describes a gateway checkout.
type CreateIntentRequest struct {
	Items         []OrderItemPayload `json:"items"`
	CustomerPhone string             `json:"customerPhone"`
}

// IntentData links the created order to the provider intent.
type IntentData struct {
	OrderID      int64  `json:"orderId"`
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}

// ConfirmPaymentRequest asks the service to settle an intent.
type ConfirmPaymentRequest struct {
	IntentID string `json:"intentId"`
}
