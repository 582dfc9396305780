package auth

import (
	"go.uber.org/fx"

	"github.com/cyberscripts/storefront/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{TTL: p.Config.TokenTTL})
}
