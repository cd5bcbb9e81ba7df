package callcache

import (
	"go.uber.org/zap"

	"github.com/arloliu/kernelcall/internal/options"
)

// cacheConfig holds the cache configuration assembled by options.
type cacheConfig struct {
	decoder Decoder
	stats   Stats
	logger  *zap.Logger
}

func defaultCacheConfig() *cacheConfig {
	return &cacheConfig{
		stats:  NewNoopStats(),
		logger: zap.NewNop(),
	}
}

// Option represents a functional option for configuring a Cache.
type Option = options.Option[*cacheConfig]

// WithDecoder sets the decoder used on cache misses.
// If not set, a decoder with the package defaults is used.
func WithDecoder(d Decoder) Option {
	return options.NoError(func(c *cacheConfig) {
		c.decoder = d
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(s Stats) Option {
	return options.NoError(func(c *cacheConfig) {
		c.stats = s
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(c *cacheConfig) {
		c.logger = l
	})
}
