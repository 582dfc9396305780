package model

// IntentStatus mirrors the payment provider's intent lifecycle.
type IntentStatus string

const (
	IntentStatusRequiresPayment IntentStatus = "requires_payment"
	IntentStatusProcessing      IntentStatus = "processing"
	IntentStatusSucceeded       IntentStatus = "succeeded"
	IntentStatusCanceled        IntentStatus = "canceled"
)

// PaymentIntent is the provider-side record backing a gateway order.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	Amount       float64
}
