package compress

import (
	"fmt"

	"github.com/arloliu/kernelcall/errs"
)

// DefaultMaxDecodedSize bounds the adaptive decompression buffer. A payload
// claiming to inflate past this limit is rejected with errs.ErrDecodedTooLarge
// rather than growing the buffer indefinitely.
const DefaultMaxDecodedSize = 128 * 1024 * 1024 // 128MB

// blockOutcome classifies a single decompression attempt into a fixed-size
// buffer. It separates the one recoverable condition, a buffer too small for
// the output, from genuine stream corruption.
type blockOutcome uint8

const (
	// blockOK: the whole stream fit; the attempt reports the decoded length.
	blockOK blockOutcome = iota
	// blockShortBuffer: the buffer filled before the stream ended. Retry
	// with a larger buffer.
	blockShortBuffer
	// blockFatal: the stream is corrupt or of the wrong format. No buffer
	// size can succeed.
	blockFatal
)

// blockFunc attempts one full decompression into dst. It returns the decoded
// length for blockOK, and the failure cause for blockFatal. Each call must
// restart decompression from the beginning of the source.
type blockFunc func(dst []byte) (int, blockOutcome, error)

// decompressAdaptive drives block decompression when the output size is not
// recorded in the stream.
//
// The first attempt uses a buffer of srcLen*factor bytes, a heuristic that
// covers typical expansion ratios in one pass. Whenever an attempt reports
// blockShortBuffer the buffer size doubles and the attempt repeats; any
// other failure aborts immediately. The returned slice is trimmed to the
// exact decoded length.
//
// maxSize bounds the buffer growth; once an attempt at maxSize still cannot
// fit the output, errs.ErrDecodedTooLarge is returned. A maxSize of 0 or
// less disables the bound.
func decompressAdaptive(srcLen, factor, maxSize int, attempt blockFunc) ([]byte, error) {
	bufSize := srcLen * factor
	if maxSize > 0 && bufSize > maxSize {
		bufSize = maxSize
	}

	for {
		buf := make([]byte, bufSize)
		n, outcome, err := attempt(buf)
		switch outcome {
		case blockOK:
			return buf[:n], nil
		case blockShortBuffer:
			if maxSize > 0 && bufSize >= maxSize {
				return nil, fmt.Errorf("%w: output does not fit in %d bytes", errs.ErrDecodedTooLarge, maxSize)
			}

			bufSize *= 2
			if maxSize > 0 && bufSize > maxSize {
				bufSize = maxSize
			}
		default:
			return nil, err
		}
	}
}
