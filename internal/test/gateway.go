package test

import (
	"context"

	"github.com/cyberscripts/storefront/internal/adapter/gateway"
	"github.com/cyberscripts/storefront/internal/domain/model"
)

// GatewayClientStub simulates the payment gateway.
type GatewayClientStub struct {
	CreateIntentFn func(context.Context, float64, string) (*model.PaymentIntent, error)
	GetIntentFn    func(context.Context, string) (*model.PaymentIntent, error)
	VerifyFn       func([]byte, string) bool

	Intents map[string]*model.PaymentIntent
}

// CreateIntent returns a deterministic intent unless overridden.
func (s *GatewayClientStub) CreateIntent(ctx context.Context, amount float64, reference string) (*model.PaymentIntent, error) {
	if s.CreateIntentFn != nil {
		return s.CreateIntentFn(ctx, amount, reference)
	}
	return &model.PaymentIntent{ID: "pi_stub", ClientSecret: "cs_stub", Status: model.IntentStatusRequiresPayment, Amount: amount}, nil
}

// GetIntent returns the configured intent or not found.
func (s *GatewayClientStub) GetIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error) {
	if s.GetIntentFn != nil {
		return s.GetIntentFn(ctx, intentID)
	}
	if intent, ok := s.Intents[intentID]; ok {
		return intent, nil
	}
	return nil, gateway.ErrIntentNotFound
}

// VerifySignature accepts everything unless overridden.
func (s *GatewayClientStub) VerifySignature(body []byte, signature string) bool {
	if s.VerifyFn != nil {
		return s.VerifyFn(body, signature)
	}
	return true
}

var _ gateway.Client = (*GatewayClientStub)(nil)
