// Package kernelcallfx provides an fx module wiring a kernel call decoder
// and cache into an application.
package kernelcallfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/arloliu/kernelcall"
	"github.com/arloliu/kernelcall/callcache"
	"github.com/arloliu/kernelcall/gpu"
)

// DefaultCacheCapacity is the cache capacity used when Config does not set
// one.
const DefaultCacheCapacity = 1024

// Config holds configuration for the kernel call module.
// Supplying it is optional; the zero value selects the package defaults.
type Config struct {
	// CacheCapacity is the number of decoded records to cache.
	// Default is DefaultCacheCapacity.
	CacheCapacity int

	// MaxDecodedSize bounds adaptive decompression growth in bytes.
	// Zero keeps the package default.
	MaxDecodedSize int
}

// Module provides a shared decoder and call cache.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("kernelcall",
	fx.Provide(
		newStats,
		newKernelCall,
	),
)

func newStats(log *zap.Logger) callcache.Stats {
	return callcache.NewLogStats(log.Named("kernelcall.stats"))
}

// Params holds dependencies for creating the decoder and cache.
type Params struct {
	fx.In

	Config Config `optional:"true"`
	Logger *zap.Logger
	Stats  callcache.Stats
}

// Result holds the provided decoder and cache.
type Result struct {
	fx.Out

	Decoder *kernelcall.Decoder
	Cache   *callcache.Cache
}

func newKernelCall(p Params) (Result, error) {
	capacity := p.Config.CacheCapacity
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}

	var opts []kernelcall.Option
	if p.Config.MaxDecodedSize > 0 {
		opts = append(opts, kernelcall.WithMaxDecodedSize(p.Config.MaxDecodedSize))
	}

	decoder, err := kernelcall.NewDecoder(opts...)
	if err != nil {
		return Result{}, err
	}

	cache, err := callcache.New(capacity,
		callcache.WithDecoder(decoder),
		callcache.WithStats(p.Stats),
		callcache.WithLogger(p.Logger.Named("kernelcall")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Logger.Debug("kernel call module initialized",
		zap.Int("cacheCapacity", capacity),
		zap.Bool("gpuSupported", gpu.Supported()),
	)

	return Result{Decoder: decoder, Cache: cache}, nil
}
