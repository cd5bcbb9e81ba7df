package compress

// ZstdCompressor provides Zstandard compression for kernel call payloads.
//
// Zstd frames record their content size, so decompression needs no adaptive
// buffer growth. The codec favors compression ratio over raw speed, making
// it a good fit for payloads that are stored or shipped over the wire and
// decoded rarely.
//
// Two implementations back this type, selected at build time:
//   - cgo builds use the libzstd bindings (valyala/gozstd)
//   - pure Go builds use klauspost/compress/zstd
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
