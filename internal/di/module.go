package di

import (
	"go.uber.org/fx"

	"github.com/cyberscripts/storefront/internal/adapter/gateway"
	"github.com/cyberscripts/storefront/internal/app"
	"github.com/cyberscripts/storefront/internal/cache"
	"github.com/cyberscripts/storefront/internal/config"
	"github.com/cyberscripts/storefront/internal/logger"
	"github.com/cyberscripts/storefront/internal/pkg/auth"
	"github.com/cyberscripts/storefront/internal/server/http/router"
	"github.com/cyberscripts/storefront/internal/storage/postgres"
	"github.com/cyberscripts/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		gateway.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
