package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/kernelcall/errs"
	"github.com/arloliu/kernelcall/internal/pool"
)

// zlibSizeFactor sizes the first decompression buffer as a multiple of the
// compressed input. Serialized kernel call metadata typically inflates well
// under 5x, so most payloads decode in a single attempt.
const zlibSizeFactor = 5

// zlibWriterPool pools zlib writers for reuse across Compress calls.
// Writers are re-armed with Reset before each use.
var zlibWriterPool = sync.Pool{
	New: func() any {
		return zlib.NewWriter(nil)
	},
}

// zlibReaderPool pools zlib readers. The pool has no New func because a
// reader can only be constructed against a live stream; see getZlibReader.
var zlibReaderPool sync.Pool

// ZlibCompressor is the codec for opaque kernel call payloads. Compiled
// kernel call blobs are zlib streams, so this codec is the default
// throughout the library.
type ZlibCompressor struct {
	maxDecodedSize int
}

var _ Codec = (*ZlibCompressor)(nil)

// NewZlibCompressor creates a zlib codec with the default decoded size limit.
//
// Returns:
//   - ZlibCompressor: New zlib codec instance
func NewZlibCompressor() ZlibCompressor {
	return ZlibCompressor{maxDecodedSize: DefaultMaxDecodedSize}
}

// NewZlibCompressorWithMaxSize creates a zlib codec whose decompression
// refuses to grow the output buffer beyond maxDecodedSize bytes.
// A maxDecodedSize of 0 or less removes the limit entirely.
func NewZlibCompressorWithMaxSize(maxDecodedSize int) ZlibCompressor {
	return ZlibCompressor{maxDecodedSize: maxDecodedSize}
}

// Compress deflates data into a zlib stream.
//
// Output is staged through a pooled buffer and copied out at its exact
// size. Compressing an empty payload yields a valid zlib stream that
// decompresses back to an empty payload.
func (c ZlibCompressor) Compress(data []byte) ([]byte, error) {
	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	zw, _ := zlibWriterPool.Get().(*zlib.Writer)
	defer zlibWriterPool.Put(zw)
	zw.Reset(buf)

	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decompress inflates a zlib stream using an adaptive output buffer.
//
// Nothing in an opaque kernel call payload records its decompressed size, so
// the method starts with a buffer zlibSizeFactor times the compressed size
// and doubles it whenever the stream holds more data than the buffer fits.
// Only that short-buffer signal triggers a retry; corrupt or truncated
// streams fail immediately with errs.ErrInvalidInput, and growth past the
// configured limit fails with errs.ErrDecodedTooLarge.
func (c ZlibCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty zlib stream", errs.ErrInvalidInput)
	}

	return decompressAdaptive(len(data), zlibSizeFactor, c.maxDecodedSize, func(dst []byte) (int, blockOutcome, error) {
		return zlibInflateBlock(data, dst)
	})
}

// zlibInflateBlock inflates data into dst in one pass and reports whether
// dst was large enough to hold the whole stream. Each call restarts from
// the beginning of data.
func zlibInflateBlock(data, dst []byte) (int, blockOutcome, error) {
	zr, err := getZlibReader(data)
	if err != nil {
		return 0, blockFatal, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
	}
	defer zlibReaderPool.Put(zr)

	total := 0
	for total < len(dst) {
		n, err := zr.Read(dst[total:])
		total += n
		if err == io.EOF {
			return total, blockOK, nil
		}
		if err != nil {
			return 0, blockFatal, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
		}
	}

	// dst is full. Probe for one more byte to distinguish an exact fit from
	// a stream larger than the buffer.
	var probe [1]byte
	n, err := zr.Read(probe[:])
	switch {
	case n == 0 && err == io.EOF:
		return total, blockOK, nil
	case err != nil && err != io.EOF:
		return 0, blockFatal, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
	default:
		return 0, blockShortBuffer, nil
	}
}

// getZlibReader returns a pooled reader re-armed over data, or a fresh one
// when the pool is empty. Reset and NewReader both validate the two-byte
// stream header, so malformed input surfaces here.
func getZlibReader(data []byte) (io.ReadCloser, error) {
	src := bytes.NewReader(data)
	if zr, ok := zlibReaderPool.Get().(io.ReadCloser); ok {
		if err := zr.(zlib.Resetter).Reset(src, nil); err != nil {
			zlibReaderPool.Put(zr)
			return nil, err
		}

		return zr, nil
	}

	return zlib.NewReader(src)
}
