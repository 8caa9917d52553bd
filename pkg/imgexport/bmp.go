package imgexport

import (
	"fmt"
	"io"

	"github.com/sumireworks/ybarc/pkg/byteio"
)

// fileHeaderSize and infoHeaderSize mirror pkg/agf's BitmapFileHeader/
// BitmapInfoHeader layout (14 and 40 bytes), without that package's
// AGF-specific 2-byte inter-header gap: this is a plain Windows BMP.
const (
	fileHeaderSize = 14
	infoHeaderSize = 40
)

// EncodeBMP writes pix as an uncompressed, bottom-up 24-bit or 32-bit
// Windows BMP. pix is RGB (channels 3) or RGBA (channels 4) and is
// stored as BGR or BGRA; rows are written
// from the bottom up and 24-bit rows are padded to a 4-byte boundary,
// matching the format every BMP reader expects.
func EncodeBMP(w io.Writer, pix []byte, width, height, channels int) error {
	if channels != 3 && channels != 4 {
		return fmt.Errorf("imgexport: encode bmp: unsupported channel count: %d", channels)
	}
	if len(pix) != width*height*channels {
		return fmt.Errorf("imgexport: encode bmp: pixel buffer length %d, want %d", len(pix), width*height*channels)
	}

	rowSize := width * channels
	stride := (rowSize + 3) &^ 3
	pixelDataSize := stride * height
	offsetBits := uint32(fileHeaderSize + infoHeaderSize)
	fileSize := offsetBits + uint32(pixelDataSize)

	fileHeader := make([]byte, fileHeaderSize)
	fileHeader[0], fileHeader[1] = 'B', 'M'
	byteio.PutUint32LE(fileHeader, 2, fileSize)
	byteio.PutUint32LE(fileHeader, 10, offsetBits)

	infoHeader := make([]byte, infoHeaderSize)
	byteio.PutUint32LE(infoHeader, 0, infoHeaderSize)
	byteio.PutUint32LE(infoHeader, 4, uint32(width))
	byteio.PutUint32LE(infoHeader, 8, uint32(height))
	byteio.PutUint16LE(infoHeader, 12, 1)
	byteio.PutUint16LE(infoHeader, 14, uint16(channels*8))
	byteio.PutUint32LE(infoHeader, 20, uint32(pixelDataSize))

	if _, err := w.Write(fileHeader); err != nil {
		return fmt.Errorf("imgexport: write bmp file header: %w", err)
	}
	if _, err := w.Write(infoHeader); err != nil {
		return fmt.Errorf("imgexport: write bmp info header: %w", err)
	}

	row := make([]byte, stride)
	for y := height - 1; y >= 0; y-- {
		src := pix[y*rowSize : (y+1)*rowSize]
		for x := 0; x < width; x++ {
			p := src[x*channels : x*channels+channels]
			row[x*channels] = p[2]
			row[x*channels+1] = p[1]
			row[x*channels+2] = p[0]
			if channels == 4 {
				row[x*channels+3] = p[3]
			}
		}
		for i := rowSize; i < stride; i++ {
			row[i] = 0
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("imgexport: write bmp row: %w", err)
		}
	}
	return nil
}

// DecodeBMP reads an uncompressed 24-bit or 32-bit Windows BMP and
// returns its pixels as a tightly packed top-down RGB/RGBA buffer.
func DecodeBMP(r io.Reader) (pix []byte, width, height, channels int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("imgexport: decode bmp: %w", err)
	}
	if len(data) < fileHeaderSize+infoHeaderSize {
		return nil, 0, 0, 0, fmt.Errorf("imgexport: decode bmp: file too small for headers")
	}
	if data[0] != 'B' || data[1] != 'M' {
		return nil, 0, 0, 0, fmt.Errorf("imgexport: decode bmp: missing \"BM\" signature")
	}

	offsetBits := byteio.Uint32LE(data, 10)
	width = int(int32(byteio.Uint32LE(data, fileHeaderSize+4)))
	rawHeight := int32(byteio.Uint32LE(data, fileHeaderSize+8))
	bitCount := byteio.Uint16LE(data, fileHeaderSize+14)

	if bitCount != 24 && bitCount != 32 {
		return nil, 0, 0, 0, fmt.Errorf("imgexport: decode bmp: unsupported bit depth %d", bitCount)
	}
	channels = int(bitCount / 8)

	topDown := rawHeight < 0
	height = int(rawHeight)
	if height < 0 {
		height = -height
	}

	rowSize := width * channels
	stride := (rowSize + 3) &^ 3
	pixelDataSize := stride * height
	if int(offsetBits)+pixelDataSize > len(data) {
		return nil, 0, 0, 0, fmt.Errorf("imgexport: decode bmp: pixel data exceeds file size")
	}
	pixelData := data[offsetBits : int(offsetBits)+pixelDataSize]

	pix = make([]byte, width*height*channels)
	for row := 0; row < height; row++ {
		srcRow := row
		if !topDown {
			srcRow = height - 1 - row
		}
		src := pixelData[srcRow*stride : srcRow*stride+rowSize]
		dst := pix[row*rowSize : (row+1)*rowSize]
		for x := 0; x < width; x++ {
			s := src[x*channels : x*channels+channels]
			dst[x*channels] = s[2]
			dst[x*channels+1] = s[1]
			dst[x*channels+2] = s[0]
			if channels == 4 {
				dst[x*channels+3] = s[3]
			}
		}
	}
	return pix, width, height, channels, nil
}
