package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/server/http/dto"
	"github.com/cyberscripts/storefront/internal/usecase"
)

// CatalogHandler serves the public storefront and the admin catalog CRUD.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler creates CatalogHandler instance.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Storefront handles GET /api/v1/products.
func (h *CatalogHandler) Storefront(c *gin.Context) {
	products, err := h.facade.Storefront(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "", dto.ProductsFromModel(products))
}

// Get handles GET /api/v1/products/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "", dto.ProductFromModel(product))
}

// List handles GET /api/v1/admin/products.
func (h *CatalogHandler) List(c *gin.Context) {
	category := model.ProductCategory(c.Query("category"))
	products, err := h.facade.Products(c.Request.Context(), category)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "", dto.ProductsFromModel(products))
}

// Create handles POST /api/v1/admin/products.
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "malformed request body")
		return
	}

	product, err := h.facade.CreateProduct(c.Request.Context(), &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    model.ProductCategory(req.Category),
		Price:       req.Price,
		Status:      model.ProductStatus(req.Status),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondCreated(c, "product created", dto.ProductFromModel(product))
}

// Update handles PATCH /api/v1/admin/products/:id.
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "malformed request body")
		return
	}

	update := usecase.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.Category != nil {
		category := model.ProductCategory(*req.Category)
		update.Category = &category
	}
	if req.Status != nil {
		status := model.ProductStatus(*req.Status)
		update.Status = &status
	}

	product, err := h.facade.UpdateProduct(c.Request.Context(), id, update)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, "product updated", dto.ProductFromModel(product))
}

// Delete handles DELETE /api/v1/admin/products/:id.
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, "product deleted", nil)
}
