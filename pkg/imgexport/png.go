// Package imgexport bridges the toolkit's raw pixel buffers (as produced
// by pkg/imgcodec) to portable PNG and BMP files. It does no filtering,
// resizing, or codec work of its own — it only repacks an
// already-decoded buffer into the standard library's image encoders and
// back.
package imgexport

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// EncodePNG writes pix (width*height*channels bytes, channels 3 or 4,
// RGB/RGBA order) to w as a PNG. A 3-channel buffer is widened to
// opaque NRGBA since the image package has no 24-bit RGB image type;
// image/png then writes a fully opaque image as truecolor without alpha.
func EncodePNG(w io.Writer, pix []byte, width, height, channels int) error {
	img, err := toNRGBA(pix, width, height, channels)
	if err != nil {
		return fmt.Errorf("imgexport: encode png: %w", err)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("imgexport: encode png: %w", err)
	}
	return nil
}

// DecodePNG reads a PNG from r and returns its pixels as a tightly
// packed RGB or RGBA buffer. channels is 4 if the PNG's own color type
// declares an alpha channel (truecolor+alpha, grayscale+alpha, or a
// paletted image whose palette carries a tRNS entry), 3 otherwise —
// decided from the decoded image's concrete type, not by scanning
// pixel values, so a PNG file stored as truecolor+alpha is reported as
// 4-channel even when every pixel is opaque.
func DecodePNG(r io.Reader) (pix []byte, width, height, channels int, err error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("imgexport: decode png: %w", err)
	}

	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()

	channels = 3
	if pngDeclaresAlpha(img) {
		channels = 4
	}

	pix = make([]byte, width*height*channels)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// NRGBA keeps straight (non-premultiplied) samples, matching
			// what EncodePNG writes.
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix[i] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			if channels == 4 {
				pix[i+3] = c.A
			}
			i += channels
		}
	}
	return pix, width, height, channels, nil
}

// pngDeclaresAlpha reports whether the PNG color type img was decoded
// from carries an alpha channel at all, independent of the actual
// sample values: image/png decodes truecolor+alpha and grayscale+alpha
// into *image.NRGBA/*image.NRGBA64, truecolor and grayscale without
// alpha into *image.RGBA/*image.RGBA64/*image.Gray/*image.Gray16, and
// paletted images into *image.Paletted, whose palette only carries
// non-opaque entries when the file had a tRNS chunk.
func pngDeclaresAlpha(img image.Image) bool {
	switch v := img.(type) {
	case *image.NRGBA, *image.NRGBA64:
		return true
	case *image.Paletted:
		for _, c := range v.Palette {
			if _, _, _, a := c.RGBA(); a != 0xFFFF {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func toNRGBA(pix []byte, width, height, channels int) (*image.NRGBA, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}
	if len(pix) != width*height*channels {
		return nil, fmt.Errorf("pixel buffer length %d, want %d", len(pix), width*height*channels)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if channels == 4 {
		copy(img.Pix, pix)
		return img, nil
	}

	for i, p := 0, 0; p < len(pix); p += 3 {
		img.Pix[i] = pix[p]
		img.Pix[i+1] = pix[p+1]
		img.Pix[i+2] = pix[p+2]
		img.Pix[i+3] = 0xFF
		i += 4
	}
	return img, nil
}
