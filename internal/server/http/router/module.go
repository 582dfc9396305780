package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"github.com/cyberscripts/storefront/internal/app"
	"github.com/cyberscripts/storefront/internal/server/http/handlers"
	"github.com/cyberscripts/storefront/internal/storage/postgres"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(
	Setup,
	newRegistry,
	func(facade *app.StoreFacade) handlers.StoreFacade { return facade },
	func(storage *postgres.Storage) handlers.HealthChecker { return storage },
)

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}
