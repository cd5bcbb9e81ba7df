// Package kernelcall decodes the opaque payloads that carry GPU kernel launch
// information from a compiler toolchain to the host runtime.
//
// A payload is a zlib-compressed kernel call message. The message transports
// the kernel function name together with a serialized launch-metadata blob
// whose contents are owned by the producer; this package decompresses the
// payload, parses the message framing, and projects the two fields without
// interpreting the metadata.
//
// # Core Features
//
//   - Adaptive decompression for streams that do not declare their output
//     size, with a configurable growth bound
//   - Tolerant message parsing: unknown fields from newer producers are
//     skipped, structural corruption is rejected
//   - Pluggable compression codecs (Zlib, Zstd, S2, LZ4, None)
//   - Stateless decoders, safe for concurrent use
//   - Sentinel errors for precise failure classification with errors.Is
//
// # Basic Usage
//
// Decoding a payload:
//
//	import "github.com/arloliu/kernelcall"
//
//	rec, err := kernelcall.Decode(opaque)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("kernel=%s metadata=%d bytes\n", rec.Name, len(rec.Metadata))
//
// Projecting a single field:
//
//	name, err := kernelcall.Name(opaque)
//	metadata, err := kernelcall.Metadata(opaque)
//
// Producing a payload (for tests, tooling, or debug fixtures):
//
//	opaque, err := kernelcall.Encode(envelope.Record{
//	    Name:     "fused_attention_kernel_fwd",
//	    Metadata: metadataBytes,
//	})
//
// Custom configuration:
//
//	decoder, err := kernelcall.NewDecoder(
//	    kernelcall.WithCompression(format.CompressionZstd),
//	    kernelcall.WithMaxDecodedSize(512*1024*1024),
//	)
//	rec, err := decoder.Decode(opaque)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the compress and
// envelope packages, covering the common decode paths. For fine-grained
// control (custom codecs, direct message access) use those packages directly;
// callcache adds content-addressed caching of decode results on top.
package kernelcall

import (
	"github.com/arloliu/kernelcall/compress"
	"github.com/arloliu/kernelcall/envelope"
	"github.com/arloliu/kernelcall/internal/options"
)

// Decoder turns opaque kernel call payloads back into records.
//
// A Decoder is configured once at construction and holds no per-call state
// afterwards, so a single instance is safe for concurrent use.
type Decoder struct {
	codec compress.Codec
}

// Encoder produces the opaque payloads a Decoder consumes.
//
// Like Decoder, an Encoder is immutable after construction and safe for
// concurrent use.
type Encoder struct {
	codec compress.Codec
}

// NewDecoder creates a decoder for opaque kernel call payloads.
//
// Without options the decoder matches the payload producer: zlib compression
// with the default decoded-size bound.
//
// Parameters:
//   - opts: Optional configuration functions (see Option)
//
// Returns:
//   - *Decoder: The created decoder.
//   - error: An error if the configuration is invalid.
//
// Available options:
//   - WithCompression(format.CompressionZlib|Zstd|S2|LZ4|None)
//   - WithCodec(custom compress.Codec)
//   - WithMaxDecodedSize(bytes)
//
// Example:
//
//	decoder, err := kernelcall.NewDecoder(
//	    kernelcall.WithMaxDecodedSize(0), // unbounded
//	)
func NewDecoder(opts ...Option) (*Decoder, error) {
	codec, err := resolveCodec(opts)
	if err != nil {
		return nil, err
	}

	return &Decoder{codec: codec}, nil
}

// NewEncoder creates an encoder producing opaque kernel call payloads.
//
// It accepts the same options as NewDecoder; an encoder and decoder built
// with the same options round-trip.
//
// Parameters:
//   - opts: Optional configuration functions (see Option)
//
// Returns:
//   - *Encoder: The created encoder.
//   - error: An error if the configuration is invalid.
func NewEncoder(opts ...Option) (*Encoder, error) {
	codec, err := resolveCodec(opts)
	if err != nil {
		return nil, err
	}

	return &Encoder{codec: codec}, nil
}

func resolveCodec(opts []Option) (compress.Codec, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg.buildCodec()
}

// Decode decompresses the payload and parses the kernel call message.
//
// The returned record's Metadata may alias the decompressed buffer, which is
// private to this call. Failures surface as errors matching
// errs.ErrInvalidInput, errs.ErrDecodedTooLarge, or errs.ErrMalformedRecord.
func (d *Decoder) Decode(opaque []byte) (envelope.Record, error) {
	payload, err := d.codec.Decompress(opaque)
	if err != nil {
		return envelope.Record{}, err
	}

	return envelope.Decode(payload)
}

// Name decodes the payload and returns the kernel function name.
func (d *Decoder) Name(opaque []byte) (string, error) {
	rec, err := d.Decode(opaque)
	if err != nil {
		return "", err
	}

	return rec.Name, nil
}

// Metadata decodes the payload and returns the serialized launch metadata.
// The bytes are opaque to this package; callers interpret them.
func (d *Decoder) Metadata(opaque []byte) ([]byte, error) {
	rec, err := d.Decode(opaque)
	if err != nil {
		return nil, err
	}

	return rec.Metadata, nil
}

// Encode serializes the record and compresses it into an opaque payload.
func (e *Encoder) Encode(rec envelope.Record) ([]byte, error) {
	data, err := e.codec.Compress(rec.Marshal())
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Package-level instances with the producer's zlib configuration. Both are
// stateless, so sharing them across goroutines is safe.
var (
	defaultDecoder = &Decoder{codec: compress.NewZlibCompressor()}
	defaultEncoder = &Encoder{codec: compress.NewZlibCompressor()}
)

// Decode decompresses and parses an opaque payload with the default zlib
// decoder.
//
// This is the common entry point: payloads produced by the compiler
// toolchain decode with no configuration.
//
// Example:
//
//	rec, err := kernelcall.Decode(opaque)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Decode(opaque []byte) (envelope.Record, error) {
	return defaultDecoder.Decode(opaque)
}

// Name returns the kernel function name of an opaque payload using the
// default zlib decoder.
func Name(opaque []byte) (string, error) {
	return defaultDecoder.Name(opaque)
}

// Metadata returns the serialized launch metadata of an opaque payload using
// the default zlib decoder.
func Metadata(opaque []byte) ([]byte, error) {
	return defaultDecoder.Metadata(opaque)
}

// Encode produces an opaque payload from a record using the default zlib
// encoder. The result decodes with Decode.
func Encode(rec envelope.Record) ([]byte, error) {
	return defaultEncoder.Encode(rec)
}
