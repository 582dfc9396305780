package dto

import (
	"time"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// PurchaseResponse is the wire form of an entitlement.
type PurchaseResponse struct {
	ProductID      int64      `json:"productId"`
	ProductName    string     `json:"productName"`
	Amount         float64    `json:"amount"`
	LicenseKey     string     `json:"licenseKey"`
	DownloadCount  int        `json:"downloadCount"`
	LastDownloaded *time.Time `json:"lastDownloaded,omitempty"`
	PurchasedAt    time.Time  `json:"purchasedAt"`
}

// PurchasesFromModel maps a purchase slice.
func PurchasesFromModel(purchases []model.Purchase) []PurchaseResponse {
	result := make([]PurchaseResponse, len(purchases))
	for i, p := range purchases {
		result[i] = PurchaseResponse{
			ProductID:      p.ProductID,
			ProductName:    p.ProductName,
			Amount:         p.Amount,
			LicenseKey:     p.LicenseKey,
			DownloadCount:  p.DownloadCount,
			LastDownloaded: p.LastDownloaded,
			PurchasedAt:    p.PurchasedAt,
		}
	}
	return result
}

// AssignProductRequest grants a product to a user directly.
type AssignProductRequest struct {
	ProductID   int64  `json:"productId"`
	ProductType string `json:"productType"`
}
