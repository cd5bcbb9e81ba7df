package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/kernelcall/errs"
)

// lz4SizeFactor sizes the first decompression buffer as a multiple of the
// compressed input (common expansion ratio for serialized metadata).
const lz4SizeFactor = 4

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

type LZ4Compressor struct {
	maxDecodedSize int
}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 block codec with the default decoded size limit.
//
// Returns:
//   - LZ4Compressor: New LZ4 codec instance
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{maxDecodedSize: DefaultMaxDecodedSize}
}

// NewLZ4CompressorWithMaxSize creates an LZ4 block codec whose decompression
// refuses to grow the output buffer beyond maxDecodedSize bytes.
// A maxDecodedSize of 0 or less removes the limit entirely.
func NewLZ4CompressorWithMaxSize(maxDecodedSize int) LZ4Compressor {
	return LZ4Compressor{maxDecodedSize: maxDecodedSize}
}

// Compress compresses the input data using LZ4 block compression.
//
// Uses a pooled lz4.Compressor for better performance.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	// Get compressor from pool
	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block using an adaptive output buffer.
//
// LZ4 blocks do not record their decompressed size, so the method starts
// with a buffer lz4SizeFactor times the compressed size and doubles it on
// the library's short-buffer signal. Other failures map to
// errs.ErrInvalidInput, and growth past the configured limit fails with
// errs.ErrDecodedTooLarge.
//
// Parameters:
//   - data: Compressed data to decompress
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: Decompression error if any
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return decompressAdaptive(len(data), lz4SizeFactor, c.maxDecodedSize, func(dst []byte) (int, blockOutcome, error) {
		n, err := lz4.UncompressBlock(data, dst)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
				return 0, blockShortBuffer, nil
			}

			return 0, blockFatal, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
		}

		return n, blockOK, nil
	})
}
