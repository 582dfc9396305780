package test

import (
	"context"

	"github.com/cyberscripts/storefront/internal/cache"
	"github.com/cyberscripts/storefront/internal/domain/model"
)

// ProductCacheStub records cache traffic for catalog tests.
type ProductCacheStub struct {
	Stored []model.Product
	Warm   bool

	GetCalls        int
	SetCalls        int
	InvalidateCalls int
}

// GetPublished returns the stored listing when warm.
func (s *ProductCacheStub) GetPublished(ctx context.Context) ([]model.Product, bool) {
	s.GetCalls++
	if s.Warm {
		return s.Stored, true
	}
	return nil, false
}

// SetPublished warms the stub with the given listing.
func (s *ProductCacheStub) SetPublished(ctx context.Context, products []model.Product) {
	s.SetCalls++
	s.Stored = products
	s.Warm = true
}

// Invalidate drops the stored listing.
func (s *ProductCacheStub) Invalidate(ctx context.Context) {
	s.InvalidateCalls++
	s.Stored = nil
	s.Warm = false
}

var _ cache.ProductCache = (*ProductCacheStub)(nil)
