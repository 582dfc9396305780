package cache

import (
	"context"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// ProductCache caches the published product listing, the single hottest read
// path of the storefront. A miss is never an error: callers fall through to
// the database.
type ProductCache interface {
	GetPublished(ctx context.Context) ([]model.Product, bool)
	SetPublished(ctx context.Context, products []model.Product)
	Invalidate(ctx context.Context)
}

// NoopCache disables caching. Used when no redis address is configured.
type NoopCache struct{}

func (NoopCache) GetPublished(context.Context) ([]model.Product, bool) { return nil, false }
func (NoopCache) SetPublished(context.Context, []model.Product)       {}
func (NoopCache) Invalidate(context.Context)                          {}
