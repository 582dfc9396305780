package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/cyberscripts/storefront/internal/adapter/gateway"
	"github.com/cyberscripts/storefront/internal/app"
	"github.com/cyberscripts/storefront/internal/cache"
	"github.com/cyberscripts/storefront/internal/config"
	"github.com/cyberscripts/storefront/internal/domain/repository"
	"github.com/cyberscripts/storefront/internal/storage/postgres"
	"github.com/cyberscripts/storefront/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		GatewayAddress:    "http://localhost",
		GatewaySecret:     "whsec",
		JWTSecret:         "secret",
		TokenTTL:          time.Hour,
		CacheTTL:          time.Minute,
		ReconcileInterval: time.Millisecond,
		ReconcileAge:      time.Minute,
		ReconcileBatch:    1,
		WorkerPoolSize:    1,
		ShutdownTimeout:   time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	productRepo := test.NewProductRepositoryStub()
	orderRepo := &test.OrderRepositoryStub{}

	var facade *app.StoreFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.ProductRepository(productRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(gateway.Client(&test.GatewayClientStub{})),
			fx.Replace(cache.ProductCache(&test.ProductCacheStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected store facade instance")
	}
}
