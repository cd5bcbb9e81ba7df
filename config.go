package kernelcall

import (
	"fmt"

	"github.com/arloliu/kernelcall/compress"
	"github.com/arloliu/kernelcall/format"
	"github.com/arloliu/kernelcall/internal/options"
)

// Config holds the shared configuration for Decoder and Encoder instances.
//
// A Config is only manipulated through functional options; the zero value is
// never used directly. Both constructors start from the package defaults
// (zlib compression, 128MiB decoded-size cap) and apply options in order.
type Config struct {
	compression    format.CompressionType
	codec          compress.Codec
	maxDecodedSize int
}

func defaultConfig() *Config {
	return &Config{
		compression:    format.CompressionZlib,
		maxDecodedSize: compress.DefaultMaxDecodedSize,
	}
}

// setCompression selects a built-in codec by compression type.
func (c *Config) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZlib, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.compression = comp
		c.codec = nil

		return nil
	default:
		return fmt.Errorf("invalid compression type: %v", comp)
	}
}

// setCodec installs a caller-provided codec.
func (c *Config) setCodec(codec compress.Codec) error {
	if codec == nil {
		return fmt.Errorf("codec cannot be nil")
	}
	c.codec = codec

	return nil
}

// setMaxDecodedSize bounds adaptive decompression growth.
func (c *Config) setMaxDecodedSize(n int) error {
	if n < 0 {
		return fmt.Errorf("max decoded size cannot be negative: %d", n)
	}
	c.maxDecodedSize = n

	return nil
}

// buildCodec resolves the configured codec instance.
//
// A codec installed with WithCodec wins over WithCompression. The decoded-size
// cap only applies to the block-oriented codecs (zlib, lz4) whose streams do
// not carry the output size; zstd and s2 frames are self-describing.
func (c *Config) buildCodec() (compress.Codec, error) {
	if c.codec != nil {
		return c.codec, nil
	}

	switch c.compression { //nolint: exhaustive
	case format.CompressionZlib:
		return compress.NewZlibCompressorWithMaxSize(c.maxDecodedSize), nil
	case format.CompressionLZ4:
		return compress.NewLZ4CompressorWithMaxSize(c.maxDecodedSize), nil
	default:
		return compress.CreateCodec(c.compression)
	}
}

// Option represents a functional option for configuring a Decoder or Encoder.
// This is a type alias for the generic Option interface specialized for Config.
type Option = options.Option[*Config]

// WithCompression selects one of the built-in compression codecs.
//
// The default is format.CompressionZlib, the algorithm kernel call payloads
// are produced with. Returns an error for unknown compression types.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		return c.setCompression(comp)
	})
}

// WithCodec installs a caller-provided codec, overriding WithCompression.
//
// Use this to plug in a codec implementation not built into the compress
// package. The codec must be safe for concurrent use if the Decoder or
// Encoder is shared across goroutines.
func WithCodec(codec compress.Codec) Option {
	return options.New(func(c *Config) error {
		return c.setCodec(codec)
	})
}

// WithMaxDecodedSize bounds the output size of adaptive decompression.
//
// Payload streams do not declare their decompressed size, so the zlib and
// lz4 codecs grow their output buffer until the data fits. The bound caps
// that growth; decoding data that would exceed it fails with
// errs.ErrDecodedTooLarge. A value of 0 removes the bound. The default is
// compress.DefaultMaxDecodedSize (128MiB).
func WithMaxDecodedSize(n int) Option {
	return options.New(func(c *Config) error {
		return c.setMaxDecodedSize(n)
	})
}
