package imgcodec

import (
	"bytes"
	"fmt"
)

// Image is the result of decoding a YB image: RGB(A) pixels in row-major
// order with dummy alpha already dropped where detected.
type Image struct {
	Width    int
	Height   int
	Channels int // 3 or 4
	Pixels   []byte
}

// Decode parses a complete YB image file (header + compressed payload)
// and returns its decoded RGB(A) pixel buffer.
func Decode(data []byte) (*Image, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	payloadEnd := HeaderSize + int(hdr.PackedSize)
	if payloadEnd > len(data) {
		return nil, fmt.Errorf("image decode: packed_size %d exceeds available data", hdr.PackedSize)
	}
	payload := data[HeaderSize:payloadEnd]

	output := make([]byte, hdr.PixelBufferSize())
	if err := decompress(payload, output); err != nil {
		return nil, err
	}

	if hdr.HasDelta() {
		applyDeltaUndo(output, hdr.BytesPerPixel)
	}

	channels := hdr.BytesPerPixel
	if channels == 4 && isDummyAlpha(output) {
		output = dropAlpha(output)
		channels = 3
	}

	swapChannels(output, channels)

	return &Image{
		Width:    hdr.Width,
		Height:   hdr.Height,
		Channels: channels,
		Pixels:   output,
	}, nil
}

// decompress fills output by running the bit-flagged LZ stream in payload.
// The control bit cursor and the data bytes are drawn from the same
// sequential reader, and remaining tracks unconsumed payload bytes the
// same way the reference decoder does, so a truncated control byte at
// the very end of the payload terminates the loop rather than erroring.
func decompress(payload []byte, output []byte) error {
	r := bytes.NewReader(payload)
	remaining := len(payload)
	outputLen := len(output)
	dst := 0

	var control byte
	var mask byte

	readByte := func() (byte, error) {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		remaining--
		return b, nil
	}

	for remaining > 0 && dst < outputLen {
		mask >>= 1
		if mask == 0 {
			b, err := readByte()
			if err != nil {
				break
			}
			control = b
			mask = 0x80
		}
		if remaining <= 0 {
			break
		}

		if control&mask == 0 {
			// Literal copy.
			b, err := readByte()
			if err != nil {
				return fmt.Errorf("image decode: truncated literal: %w", err)
			}
			output[dst] = b
			dst++
			continue
		}

		b, err := readByte()
		if err != nil {
			return fmt.Errorf("image decode: truncated match opcode: %w", err)
		}

		var shift, length int
		if b&0x80 == 0 {
			// Short form.
			length = int(b >> 2)
			tag := b & 3
			if tag == 3 {
				runLen := length + 9
				for i := 0; i < runLen && dst < outputLen; i++ {
					c, err := readByte()
					if err != nil {
						return fmt.Errorf("image decode: truncated literal run: %w", err)
					}
					output[dst] = c
					dst++
				}
				continue
			}
			shift = length
			length = int(tag) + 2
		} else if b&0x40 == 0 {
			// Medium form.
			if remaining <= 0 {
				break
			}
			lo, err := readByte()
			if err != nil {
				return fmt.Errorf("image decode: truncated medium opcode: %w", err)
			}
			sh := (int(b&0x3F) << 8) | int(lo)
			length = (sh & 0xF) + 3
			shift = sh >> 4
		} else {
			// Long form.
			if remaining <= 0 {
				break
			}
			lo, err := readByte()
			if err != nil {
				return fmt.Errorf("image decode: truncated long opcode: %w", err)
			}
			sh := (int(b&0x3F) << 8) | int(lo)
			if remaining <= 0 {
				break
			}
			idx, err := readByte()
			if err != nil {
				return fmt.Errorf("image decode: truncated long opcode: %w", err)
			}
			shift = sh
			length = lengthTable[idx]
		}

		shift++
		if dst < shift {
			return fmt.Errorf("image decode: invalid offset value")
		}
		if n := outputLen - dst; length > n {
			length = n
		}
		for i := 0; i < length; i++ {
			output[dst] = output[dst-shift] + output[dst]
			dst++
		}
	}

	return nil
}

// applyDeltaUndo inverts the horizontal per-channel delta predictor:
// output[i] = (output[i] + output[i-depth]) mod 256 for i in [depth, len).
func applyDeltaUndo(buf []byte, depth int) {
	for i := depth; i < len(buf); i++ {
		buf[i] = buf[i] + buf[i-depth]
	}
}

// isDummyAlpha reports whether every alpha sample equals the first one
// and that value is not 0xFF (i.e. the alpha channel carries no real
// transparency data).
func isDummyAlpha(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	a := buf[3]
	if a == 0xFF {
		return false
	}
	for i := 7; i < len(buf); i += 4 {
		if buf[i] != a {
			return false
		}
	}
	return true
}

// dropAlpha compacts a 4-byte-per-pixel buffer down to 3 bytes per pixel.
func dropAlpha(buf []byte) []byte {
	pixels := len(buf) / 4
	out := make([]byte, pixels*3)
	for p := 0; p < pixels; p++ {
		copy(out[p*3:p*3+3], buf[p*4:p*4+3])
	}
	return out
}

// swapChannels swaps byte 0 and byte 2 of every pixel (B<->R), applied
// uniformly whether the pixel is 3 or 4 bytes wide.
func swapChannels(buf []byte, channels int) {
	for p := 0; p+channels <= len(buf); p += channels {
		buf[p], buf[p+2] = buf[p+2], buf[p]
	}
}
