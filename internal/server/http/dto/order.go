package dto

import (
	"time"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// OrderItemPayload is one cart line supplied at checkout. Name and price are
// cart-time snapshots.
type OrderItemPayload struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CreateOrderRequest describes a manual checkout.
type CreateOrderRequest struct {
	Items             []OrderItemPayload `json:"items"`
	PaymentMethod     string             `json:"paymentMethod"`
	UpiTransactionID  string             `json:"upiTransactionId"`
	PaymentScreenshot string             `json:"paymentScreenshot"`
	CustomerPhone     string             `json:"customerPhone"`
}

// RejectOrderRequest carries the optional rejection reason.
type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderItemResponse is the wire form of a line item.
type OrderItemResponse struct {
	ProductID   int64   `json:"productId"`
	ProductType string  `json:"productType"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// OrderResponse is the wire form of an order.
type OrderResponse struct {
	ID                int64               `json:"id"`
	Kind              string              `json:"kind"`
	Status            string              `json:"status"`
	Items             []OrderItemResponse `json:"items"`
	TotalAmount       float64             `json:"totalAmount"`
	PaymentMethod     string              `json:"paymentMethod"`
	UpiTransactionID  string              `json:"upiTransactionId,omitempty"`
	PaymentScreenshot string              `json:"paymentScreenshot,omitempty"`
	IntentID          string              `json:"intentId,omitempty"`
	CustomerName      string              `json:"customerName"`
	CustomerEmail     string              `json:"customerEmail"`
	CustomerPhone     string              `json:"customerPhone,omitempty"`
	VerifiedBy        *int64              `json:"verifiedBy,omitempty"`
	VerifiedAt        *time.Time          `json:"verifiedAt,omitempty"`
	RejectionReason   string              `json:"rejectionReason,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
}

// OrderFromModel maps the domain order to its wire form.
func OrderFromModel(o *model.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:   it.ProductID,
			ProductType: string(it.ProductType),
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
		}
	}
	return OrderResponse{
		ID:                o.ID,
		Kind:              string(o.Kind),
		Status:            string(o.Status),
		Items:             items,
		TotalAmount:       o.TotalAmount,
		PaymentMethod:     o.PaymentMethod,
		UpiTransactionID:  o.TransactionID,
		PaymentScreenshot: o.PaymentScreenshot,
		IntentID:          o.IntentID,
		CustomerName:      o.CustomerName,
		CustomerEmail:     o.CustomerEmail,
		CustomerPhone:     o.CustomerPhone,
		VerifiedBy:        o.VerifiedBy,
		VerifiedAt:        o.VerifiedAt,
		RejectionReason:   o.RejectionReason,
		CreatedAt:         o.CreatedAt,
	}
}

// OrdersFromModel maps an order slice.
func OrdersFromModel(orders []model.Order) []OrderResponse {
	result := make([]OrderResponse, len(orders))
	for i := range orders {
		result[i] = OrderFromModel(&orders[i])
	}
	return result
}
