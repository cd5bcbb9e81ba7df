// Package compress provides the codecs that wrap opaque kernel call payloads.
//
// A compiled kernel call ships as a single compressed byte blob. This package
// turns those blobs back into serialized envelope bytes, and produces new
// blobs for tooling that packages kernel calls. Zlib is the wire format of
// the payloads produced by the compiler toolchain; the remaining algorithms
// serve storage, caching, and debug scenarios.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are obtained directly from their constructors or through the
// factory functions:
//
//	codec, err := compress.CreateCodec(format.CompressionZlib) // fresh instance
//	codec, err := compress.GetCodec(format.CompressionZlib)    // shared built-in
//
// # Adaptive Decompression
//
// The payload formats decoded here do not record their decompressed size:
// a zlib stream only reveals its length by ending, and an LZ4 block is sized
// by whoever compressed it. Decompression therefore sizes its output
// adaptively:
//
//  1. Allocate a buffer a small multiple of the compressed size (5x for
//     zlib, 4x for LZ4), which covers typical metadata expansion ratios in
//     a single pass.
//  2. If the stream turns out to hold more data than the buffer fits,
//     double the buffer and decompress again from the start.
//  3. Any other failure aborts immediately with errs.ErrInvalidInput;
//     corruption is never retried.
//
// The result is always trimmed to the exact decoded length. Buffer growth
// is bounded by DefaultMaxDecodedSize (configurable per codec); exceeding
// the bound fails with errs.ErrDecodedTooLarge, so a tiny hostile payload
// cannot demand unbounded memory.
//
// Only the codec's own signal decides between "buffer too small" and
// "corrupt input". Nothing in the payload is trusted to size the output.
//
// # Supported Algorithms
//
// **Zlib** (format.CompressionZlib)
//
//	codec := compress.NewZlibCompressor()
//	envelopeBytes, err := codec.Decompress(opaque)
//
// The primary codec: opaque kernel call payloads are zlib streams. Backed
// by klauspost/compress/zlib with pooled readers and writers. This is the
// default everywhere a compression type is configurable.
//
// **Zstandard (Zstd)** (format.CompressionZstd)
//
//	codec := compress.NewZstdCompressor()
//	compressed, _ := codec.Compress(data) // Best compression ratio
//
// Best ratio of the supported algorithms. Zstd frames carry their content
// size, so decompression is single-pass. cgo builds use libzstd via
// valyala/gozstd; pure Go builds use klauspost/compress/zstd.
//
// Use when:
//   - Payloads are archived or shipped over constrained links
//   - Decompression is rare compared to storage time
//
// **S2 (Snappy Alternative)** (format.CompressionS2)
//
//	codec := compress.NewS2Compressor()
//
// Balanced speed and ratio. Good default for caches that re-compress
// decoded envelopes.
//
// **LZ4** (format.CompressionLZ4)
//
//	codec := compress.NewLZ4Compressor()
//
// Fastest decompression; block format with adaptive output sizing as
// described above.
//
// **NoOp** (format.CompressionNone)
//
//	codec := compress.NewNoOpCompressor()
//
// Pass-through for tests and for inspecting uncompressed envelopes.
//
// # Error Handling
//
// Decompression failures are classified with the sentinels in the errs
// package:
//
//	_, err := codec.Decompress(opaque)
//	switch {
//	case errors.Is(err, errs.ErrInvalidInput):    // corrupt or truncated stream
//	case errors.Is(err, errs.ErrDecodedTooLarge): // output exceeds the configured bound
//	}
//
// # Thread Safety
//
// All codecs in this package are stateless values safe for concurrent use.
// Internal buffer and encoder pools are synchronized.
package compress
