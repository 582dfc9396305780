package dto

import (
	"time"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// ProductResponse is the wire form of a catalog entry.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	Sales       int       `json:"sales"`
	Revenue     float64   `json:"revenue"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductFromModel maps the domain product to its wire form.
func ProductFromModel(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Category:    string(p.Category),
		Price:       p.Price,
		Status:      string(p.Status),
		Sales:       p.Sales,
		Revenue:     p.Revenue,
		CreatedAt:   p.CreatedAt,
	}
}

// ProductsFromModel maps a product slice.
func ProductsFromModel(products []model.Product) []ProductResponse {
	result := make([]ProductResponse, len(products))
	for i := range products {
		result[i] = ProductFromModel(&products[i])
	}
	return result
}

// CreateProductRequest describes a new catalog entry.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
}

// UpdateProductRequest carries optional catalog edits.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Status      *string  `json:"status"`
}
