package cache

import (
	"context"
	"testing"
)

func TestNoopCacheAlwaysMisses(t *testing.T) {
	var c ProductCache = NoopCache{}
	ctx := context.Background()

	c.SetPublished(ctx, nil)
	if products, ok := c.GetPublished(ctx); ok || products != nil {
		t.Fatalf("expected miss, got %v (ok=%v)", products, ok)
	}
	c.Invalidate(ctx)
}
