// Package callcache caches decoded kernel call records, keyed by the payload
// bytes themselves.
//
// Kernel call payloads are immutable once produced: a compiled artifact is
// launched many times, and every launch hands the runtime the same opaque
// blob. Caching decoded records by content hash skips the decompress-and-
// parse work on repeat launches.
//
// Example usage:
//
//	cache, err := callcache.New(1024)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec, err := cache.Decode(opaque)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("kernel=%s\n", rec.Name)
package callcache

import (
	"bytes"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/arloliu/kernelcall"
	"github.com/arloliu/kernelcall/envelope"
	"github.com/arloliu/kernelcall/internal/hash"
	"github.com/arloliu/kernelcall/internal/options"
)

// Decoder decodes opaque payloads into records. *kernelcall.Decoder
// implements it.
type Decoder interface {
	Decode(opaque []byte) (envelope.Record, error)
}

// hashFn keys cache entries by payload content. Swapped in tests to force
// collisions.
var hashFn = hash.ID

// entry pairs a decoded record with a copy of the payload that produced it.
// The copy is compared on every hit so a hash collision degrades to a miss
// instead of returning another payload's record.
type entry struct {
	opaque []byte
	record envelope.Record
}

// Cache is a fixed-capacity LRU cache of decoded kernel call records.
// A Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	decoder Decoder
	cache   *lru.Cache[uint64, entry]
	stats   Stats
	logger  *zap.Logger
}

// New creates a cache holding up to capacity decoded records.
// If no options are provided, payloads decode with the package defaults
// (zlib, default decoded-size bound).
func New(capacity int, opts ...Option) (*Cache, error) {
	cfg := defaultCacheConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.decoder == nil {
		decoder, err := kernelcall.NewDecoder()
		if err != nil {
			return nil, err
		}
		cfg.decoder = decoder
	}

	c := &Cache{
		decoder: cfg.decoder,
		stats:   cfg.stats,
		logger:  cfg.logger,
	}

	cache, err := lru.NewWithEvict(capacity, func(uint64, entry) {
		c.stats.IncCounter(MetricEvictions, 1)
	})
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	c.cache = cache

	c.logger.Debug("call cache initialized", zap.Int("capacity", capacity))

	return c, nil
}

// Decode returns the decoded record for an opaque payload, decoding it on
// the first sight and serving repeats from the cache.
//
// The returned record is shared with the cache; callers must not modify its
// Metadata. Decode failures are returned verbatim and never cached, so a
// payload that failed once is retried on the next call.
func (c *Cache) Decode(opaque []byte) (envelope.Record, error) {
	c.stats.IncCounter(MetricLookups, 1)

	key := hashFn(opaque)
	if ent, ok := c.cache.Get(key); ok {
		if bytes.Equal(ent.opaque, opaque) {
			c.stats.IncCounter(MetricHits, 1)

			return ent.record, nil
		}

		// Same 64-bit key, different payload. Treat as a miss; the decode
		// below overwrites the slot.
		c.stats.IncCounter(MetricCollisions, 1)
		c.logger.Warn("hash collision between distinct payloads",
			zap.Uint64("key", key),
			zap.Int("cachedSize", len(ent.opaque)),
			zap.Int("payloadSize", len(opaque)),
		)
	}

	c.stats.IncCounter(MetricMisses, 1)

	start := time.Now()
	rec, err := c.decoder.Decode(opaque)
	if err != nil {
		return envelope.Record{}, err
	}
	c.stats.ObserveHistogram(MetricDecodeSeconds, time.Since(start).Seconds())

	c.cache.Add(key, entry{opaque: bytes.Clone(opaque), record: rec})
	c.stats.SetGauge(MetricSize, int64(c.cache.Len()))

	return rec, nil
}

// Name returns the kernel function name of an opaque payload, using the
// cache.
func (c *Cache) Name(opaque []byte) (string, error) {
	rec, err := c.Decode(opaque)
	if err != nil {
		return "", err
	}

	return rec.Name, nil
}

// Metadata returns the serialized launch metadata of an opaque payload,
// using the cache. The returned bytes are shared with the cache; callers
// must not modify them.
func (c *Cache) Metadata(opaque []byte) ([]byte, error) {
	rec, err := c.Decode(opaque)
	if err != nil {
		return nil, err
	}

	return rec.Metadata, nil
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached record. The eviction callback runs for each.
func (c *Cache) Purge() {
	c.cache.Purge()
	c.stats.SetGauge(MetricSize, 0)
}
