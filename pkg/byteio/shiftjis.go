package byteio

import (
	"bytes"

	"golang.org/x/text/encoding/japanese"
)

// ReadFixedShiftJIS decodes buf as Shift-JIS text up to the first null
// byte. Falling back to UTF-8 here would silently corrupt every Japanese
// filename and script key literal the archive format carries, so a
// decode failure returns the raw bytes reinterpreted as Latin-1 rather
// than guessing at an encoding.
func ReadFixedShiftJIS(buf []byte) string {
	end := bytes.IndexByte(buf, 0)
	if end == -1 {
		end = len(buf)
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(buf[:end])
	if err != nil {
		latin1 := make([]rune, end)
		for i, b := range buf[:end] {
			latin1[i] = rune(b)
		}
		return string(latin1)
	}
	return string(decoded)
}

// WriteFixedShiftJIS encodes s as Shift-JIS, truncated to length-1 bytes,
// and returns a length-byte buffer with the remainder zero-padded.
func WriteFixedShiftJIS(s string, length int) []byte {
	out := make([]byte, length)
	if length == 0 {
		return out
	}
	encoded, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	if err != nil {
		encoded = []byte(s)
	}
	n := len(encoded)
	if n > length-1 {
		n = length - 1
	}
	copy(out, encoded[:n])
	return out
}

// EncodeShiftJIS encodes s to raw Shift-JIS bytes with no padding or
// truncation, used for key literals read from the game key catalogue.
func EncodeShiftJIS(s string) ([]byte, error) {
	return japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
}
