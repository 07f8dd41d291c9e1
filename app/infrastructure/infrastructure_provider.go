package infrastructure

import (
	"github.com/google/wire"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/aiprovider"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/cache"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/ratelimit"
)

var InfrastructureProvider = wire.NewSet(
	cache.NewKeyValueStore,
	cache.ProvideKeyGenerator,
	cache.NewResponseCache,
	ratelimit.NewRateLimiterFromConfig,
	wire.Bind(new(ai.AdmissionController), new(*ratelimit.RateLimiter)),
	aiprovider.NewExecutorFromConfig,
	aiprovider.NewProviderFactory,
	wire.Bind(new(ai.Factory), new(*aiprovider.ProviderFactory)),
)
