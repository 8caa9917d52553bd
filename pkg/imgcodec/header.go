// Package imgcodec implements the YB image codec: a byte-aligned,
// bit-flagged LZ-style decompressor/compressor with a delta predictor
// and a dummy-alpha heuristic.
package imgcodec

import (
	"fmt"

	"github.com/sumireworks/ybarc/pkg/byteio"
)

// HeaderSize is the fixed size in bytes of a YB image header.
const HeaderSize = 16

// FlagDelta marks that the delta predictor was applied during encoding.
const FlagDelta = 0x80

// Header is the 16-byte YB image header.
type Header struct {
	Flag            byte
	BytesPerPixel   int
	PackedSize      uint32
	Width           int
	Height          int
}

// HasDelta reports whether the delta predictor bit is set.
func (h *Header) HasDelta() bool {
	return h.Flag&FlagDelta != 0
}

// ParseHeader reads a 16-byte YB header from data. It fails if the magic
// bytes are not "YB" or bpp is not 3 or 4.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("image header: need %d bytes, got %d", HeaderSize, len(data))
	}
	if data[0] != 'Y' || data[1] != 'B' {
		return nil, fmt.Errorf("image header: bad magic %q", data[0:2])
	}
	bpp := int(data[3])
	if bpp != 3 && bpp != 4 {
		return nil, fmt.Errorf("image header: unsupported bytes-per-pixel %d", bpp)
	}
	return &Header{
		Flag:          data[2],
		BytesPerPixel: bpp,
		PackedSize:    byteio.Uint32LE(data, 4),
		Width:         int(byteio.Uint16LE(data, 12)),
		Height:        int(byteio.Uint16LE(data, 14)),
	}, nil
}

// WriteHeader serializes h to a 16-byte buffer. Bytes 8-11 are reserved
// and left zero.
func WriteHeader(h *Header) []byte {
	buf := make([]byte, HeaderSize)
	buf[0], buf[1] = 'Y', 'B'
	buf[2] = h.Flag
	buf[3] = byte(h.BytesPerPixel)
	byteio.PutUint32LE(buf, 4, h.PackedSize)
	byteio.PutUint16LE(buf, 12, uint16(h.Width))
	byteio.PutUint16LE(buf, 14, uint16(h.Height))
	return buf
}

// PixelBufferSize returns the raw pixel buffer length for the header's
// dimensions and pixel format.
func (h *Header) PixelBufferSize() int {
	return h.Width * h.Height * h.BytesPerPixel
}
